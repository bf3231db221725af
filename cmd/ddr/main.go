// Copyright © 2018 One Concern

package main

import (
	"github.com/oneconcern/ddr/cmd/ddr/cmd"
)

func main() {
	cmd.Execute()
}

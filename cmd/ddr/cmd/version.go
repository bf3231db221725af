package cmd

import (
	"runtime"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"
)

// Build information, set with -ldflags "-X github.com/oneconcern/ddr/cmd/ddr/cmd.Version=..."
var (
	Version   string
	BuildDate string
	GitCommit string
	GitState  string
)

// VersionInfo describes the build of this binary.
// Its Version goes into the app_release entry of the header of written documents.
type VersionInfo struct {
	Version   string `yaml:"version"`
	BuildDate string `yaml:"build_date,omitempty"`
	GitCommit string `yaml:"commit,omitempty"`
	GitState  string `yaml:"tree,omitempty"`
	GoVersion string `yaml:"go"`
}

// NewVersionInfo reports the build information. Unreleased builds are "dev".
func NewVersionInfo() VersionInfo {
	v := VersionInfo{
		Version:   Version,
		BuildDate: BuildDate,
		GitCommit: GitCommit,
		GitState:  GitState,
		GoVersion: runtime.Version(),
	}
	switch {
	case v.Version == "":
		v.Version = "dev"
	case v.GitState == "":
		v.GitState = "clean"
	}
	return v
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Prints the version of ddr",
	Long: `Prints the version of ddr: the release tag, the date of the build,
the commit it was built from, and whether the tree had uncommitted changes.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		b, err := yaml.Marshal(NewVersionInfo())
		if err != nil {
			wrapFatalln("failed to render version", err)
			return
		}
		logStdOut("%s", b)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// Package rand generates random identifiers for test fixtures.
package rand

import (
	"fmt"
	"math/rand"
	"sync"
	"time"
)

const (
	letters = "abcdefghijklmnopqrstuvwxyz"
	hexa    = "0123456789abcdef"
)

var (
	onceSource sync.Once
	rgen       *rand.Rand
	randMutex  sync.Mutex
)

func seed() {
	rgen = rand.New(rand.NewSource(time.Now().UnixNano())) // #nosec
}

func pick(alphabet string, n int) string {
	onceSource.Do(seed)
	buf := make([]byte, n)
	randMutex.Lock()
	for i := range buf {
		buf[i] = alphabet[rgen.Intn(len(alphabet))]
	}
	randMutex.Unlock()
	return string(buf)
}

// LetterString returns a random string picked in the [a-z] range
func LetterString(n int) string {
	return pick(letters, n)
}

// SHA1 returns a random string shaped like a hex-encoded sha1 digest
func SHA1() string {
	return pick(hexa, 40)
}

// Number returns a random number in [1, n]
func Number(n int) int {
	onceSource.Do(seed)
	randMutex.Lock()
	defer randMutex.Unlock()
	return rgen.Intn(n) + 1
}

// CollectionID returns the id of a random collection in the "ddr-<org>" organization
func CollectionID(org string) string {
	return fmt.Sprintf("ddr-%s-%d", org, Number(9999))
}

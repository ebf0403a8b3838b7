//go:build debug

package debug

import (
	"log"
	"os"
	"strings"
	"sync/atomic"

	"github.com/davecgh/go-spew/spew"
)

const Enabled = true

var logger = log.New(os.Stdout, "|DEBUG| ", 0)
var indent atomic.Int32

type guard struct{}

func prefix() string {
	return strings.Repeat("  ", int(indent.Load()))
}

// Printf prints debug messages. Only available if compiled with "debug" tag
func Printf(f string, args ...any) {
	logger.Printf(prefix()+f, args...)
}

// IPrintf prints a message and indents everything that follows until
// IRelease is called on the returned guard.
func IPrintf(f string, args ...any) guard {
	Printf(f, args...)
	indent.Add(1)
	return guard{}
}

func (guard) IRelease(f string, args ...any) {
	indent.Add(-1)
	Printf(f, args...)
}

// Dump writes the structure of v to the debug output
func Dump(v ...any) {
	logger.Print(spew.Sdump(v...))
}

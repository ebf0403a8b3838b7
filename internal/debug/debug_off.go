//go:build !debug

package debug

const Enabled = false

type guard struct{}

// Printf is no op unless you compile with the `debug` tag
func Printf(f string, args ...any) {}

// IPrintf is no op unless you compile with the `debug` tag
func IPrintf(f string, args ...any) guard {
	return guard{}
}

func (guard) IRelease(f string, args ...any) {}

// Dump dumps the objects using go-spew
func Dump(v ...any) {}

// Package buildinfo guarda a versão injetada via -ldflags no build.
package buildinfo

import "fmt"

var (
	Version = "1.0.0"
	Commit  = "none"
	Date    = "unknown"
)

func String() string {
	return fmt.Sprintf("romanserver %s (commit=%s, date=%s)", Version, Commit, Date)
}

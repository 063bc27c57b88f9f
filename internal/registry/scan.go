package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/spanrun/spanrun/internal/version"
)

// ScanLayout describes an on-disk install layout of the form
// <prefix>/<DirPrefix><version>/bin/<Binary>, e.g.
// /opt/all-python/Python-3.7.3/bin/python.
type ScanLayout struct {
	Prefix    string
	DirPrefix string
	Binary    string
}

// DefaultPythonLayout is the historical CPython install layout.
var DefaultPythonLayout = ScanLayout{
	Prefix:    "/opt/all-python",
	DirPrefix: "Python-",
	Binary:    "python",
}

// Scan builds a registry by globbing the install prefix. A version directory
// whose binary is missing on disk is still registered; launching it later
// yields a launch_failed run rather than a registry failure.
func Scan(layout ScanLayout, war *WorkaroundTable) (*Registry, error) {
	if layout.Prefix == "" || layout.DirPrefix == "" || layout.Binary == "" {
		return nil, &Error{Msg: "scan layout is incomplete"}
	}
	info, err := os.Stat(layout.Prefix)
	if err != nil {
		return nil, &Error{Msg: fmt.Sprintf("install prefix %s", layout.Prefix), Err: err}
	}
	if !info.IsDir() {
		return nil, &Error{Msg: fmt.Sprintf("install prefix %s is not a directory", layout.Prefix)}
	}

	// Glob version directories rather than binaries so that a version
	// whose binary was removed still registers and later reports as a
	// launch_failed run.
	pattern := filepath.Join(layout.Prefix, layout.DirPrefix+"*")
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, &Error{Msg: fmt.Sprintf("glob %s", pattern), Err: err}
	}

	verRe := regexp.MustCompile(`^` + regexp.QuoteMeta(layout.DirPrefix) + `(.+)$`)

	entries := make([]InterpreterEntry, 0, len(matches))
	for _, dir := range matches {
		m := verRe.FindStringSubmatch(filepath.Base(dir))
		if m == nil {
			continue
		}
		v := version.Parse(m[1])
		binDir := filepath.Join(dir, "bin")
		entries = append(entries, InterpreterEntry{
			Version:     v,
			BinPath:     filepath.Join(binDir, layout.Binary),
			BinDir:      binDir,
			Workarounds: war.Lookup(v),
		})
	}
	return New(entries)
}

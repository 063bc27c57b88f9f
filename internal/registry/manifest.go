package registry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/spanrun/spanrun/internal/version"
)

// manifestRoot maps the TOML manifest file. Interpreters are declared as
// [[interpreters]] entries; [[workarounds]] records build-time fix data.
type manifestRoot struct {
	Interpreters []manifestEntry  `toml:"interpreters"`
	Workarounds  []WorkaroundSpec `toml:"workarounds"`
}

type manifestEntry struct {
	Version string `toml:"version"`
	Bin     string `toml:"bin"`
}

// LoadManifest builds a registry from a TOML manifest file. Relative binary
// paths resolve against the manifest's directory. Binaries need not exist on
// disk; a missing one surfaces later as a launch_failed run.
func LoadManifest(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Msg: fmt.Sprintf("read manifest %s", path), Err: err}
	}
	var root manifestRoot
	if err := toml.Unmarshal(data, &root); err != nil {
		return nil, &Error{Msg: fmt.Sprintf("parse manifest %s", path), Err: err}
	}
	if len(root.Interpreters) == 0 {
		return nil, &Error{Msg: fmt.Sprintf("manifest %s declares no interpreters", path)}
	}

	war, err := NewWorkaroundTable(root.Workarounds)
	if err != nil {
		return nil, err
	}

	baseDir := filepath.Dir(path)
	entries := make([]InterpreterEntry, 0, len(root.Interpreters))
	for _, me := range root.Interpreters {
		if me.Version == "" || me.Bin == "" {
			return nil, &Error{Msg: fmt.Sprintf("manifest %s: entry requires version and bin", path)}
		}
		bin := me.Bin
		if !filepath.IsAbs(bin) {
			bin = filepath.Join(baseDir, bin)
		}
		v := version.Parse(me.Version)
		entries = append(entries, InterpreterEntry{
			Version:     v,
			BinPath:     bin,
			BinDir:      filepath.Dir(bin),
			Workarounds: war.Lookup(v),
		})
	}
	return New(entries)
}

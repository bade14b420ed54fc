package main

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	"github.com/Limetric/schemaferry/migration"
)

// scriptName matches NNNN_description.up.sql and NNNN_description.down.sql.
var scriptName = regexp.MustCompile(`^(\d+)_(.+)\.(up|down)\.sql$`)

// scriptMigration runs a pair of SQL files through ExecuteSqlScript, so
// $(name) tokens are replaced with the configured parameters.
type scriptMigration struct {
	info   migration.Info
	up     string
	down   string
	params map[string]string
}

func (m *scriptMigration) Info() migration.Info { return m.info }

func (m *scriptMigration) Up(c *migration.Context) {
	c.Execute().Script(m.up, m.params)
}

func (m *scriptMigration) Down(c *migration.Context) {
	if m.down == "" {
		// Validation rejects the empty path, so the rollback stops here.
		c.Execute().Script("", nil)
		return
	}
	c.Execute().Script(m.down, m.params)
}

// loadScriptMigrations reads every migration script in dir. Files that do
// not follow the naming scheme are ignored; a down script without an up
// script is an error.
func loadScriptMigrations(dir string, params map[string]string) ([]migration.Migration, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read migrations dir: %w", err)
	}

	byVersion := make(map[int64]*scriptMigration)
	var order []int64
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		m := scriptName.FindStringSubmatch(entry.Name())
		if m == nil {
			continue
		}
		version, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("migration %s: version: %w", entry.Name(), err)
		}
		sm, ok := byVersion[version]
		if !ok {
			sm = &scriptMigration{info: migration.Info{Version: version, Description: m[2]}, params: params}
			byVersion[version] = sm
			order = append(order, version)
		} else if sm.info.Description != m[2] {
			return nil, fmt.Errorf("migration version %d has two names: %s and %s", version, sm.info.Description, m[2])
		}
		path := filepath.Join(dir, entry.Name())
		if m[3] == "up" {
			sm.up = path
		} else {
			sm.down = path
		}
	}

	out := make([]migration.Migration, 0, len(order))
	for _, v := range order {
		sm := byVersion[v]
		if sm.up == "" {
			return nil, fmt.Errorf("migration %s has a down script but no up script", sm.info)
		}
		out = append(out, sm)
	}
	migration.Sort(out)
	return out, nil
}

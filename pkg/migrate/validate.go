package migrate

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var migrationFileRe = regexp.MustCompile(`^(\d{14})_([a-z0-9_]+)\.sql$`)

const (
	upMarker   = "-- +goose Up"
	downMarker = "-- +goose Down"
)

type migrationFile struct {
	version string
	name    string
	file    string
}

func parseMigrationFile(file string) (migrationFile, bool) {
	m := migrationFileRe.FindStringSubmatch(file)
	if m == nil {
		return migrationFile{}, false
	}
	return migrationFile{version: m[1], name: m[2], file: file}, true
}

// listMigrations returns the .sql files in dir, rejecting badly named ones.
func listMigrations(dir string) ([]migrationFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %q: %w", dir, err)
	}
	var files []migrationFile
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".sql") {
			continue
		}
		mf, ok := parseMigrationFile(e.Name())
		if !ok {
			return nil, fmt.Errorf("invalid migration filename %q (expected YYYYMMDDHHMMSS_name.sql)", e.Name())
		}
		files = append(files, mf)
	}
	return files, nil
}

// ValidateDir checks filenames, unique versions and names, and that every
// file carries both goose sections with the Up section before Down.
func ValidateDir(dir string) error {
	if dir == "" {
		return fmt.Errorf("dir is required")
	}
	files, err := listMigrations(dir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no migrations found in %q", dir)
	}

	versions := map[string]string{}
	names := map[string]string{}
	for _, mf := range files {
		if prev, ok := versions[mf.version]; ok {
			return fmt.Errorf("duplicate migration version %s in %q and %q", mf.version, prev, mf.file)
		}
		versions[mf.version] = mf.file
		if prev, ok := names[mf.name]; ok {
			return fmt.Errorf("duplicate migration name %q in %q and %q", mf.name, prev, mf.file)
		}
		names[mf.name] = mf.file

		full := filepath.Join(dir, mf.file)
		b, err := os.ReadFile(full)
		if err != nil {
			return fmt.Errorf("read file %q: %w", full, err)
		}
		txt := string(b)
		up, down := strings.Index(txt, upMarker), strings.Index(txt, downMarker)
		switch {
		case up < 0:
			return fmt.Errorf("migration %q missing %q", mf.file, upMarker)
		case down < 0:
			return fmt.Errorf("migration %q missing %q", mf.file, downMarker)
		case down < up:
			return fmt.Errorf("migration %q declares Down before Up", mf.file)
		}
	}
	return nil
}

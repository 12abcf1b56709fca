package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
)

// Migrate applies docs/schema.sql. The statements all use IF NOT EXISTS, so
// running it on every startup is safe. STREAMHUB_SCHEMA_PATH overrides the
// lookup; otherwise the file is searched relative to the working directory
// and then next to the binary, so the commands work from the repo root and
// from an installed location.
func Migrate(db *sql.DB) error {
	path, err := schemaPath()
	if err != nil {
		return err
	}

	ddl, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read schema %s: %w", path, err)
	}
	if _, err := db.Exec(string(ddl)); err != nil {
		return fmt.Errorf("apply schema %s: %w", path, err)
	}
	return nil
}

func schemaPath() (string, error) {
	if p := os.Getenv("STREAMHUB_SCHEMA_PATH"); p != "" {
		return p, nil
	}

	candidates := []string{"docs/schema.sql"}
	if exe, err := os.Executable(); err == nil {
		candidates = append(candidates, filepath.Join(filepath.Dir(exe), "docs", "schema.sql"))
	}
	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c, nil
		}
	}
	return "", fmt.Errorf("schema not found (tried %v), set STREAMHUB_SCHEMA_PATH", candidates)
}

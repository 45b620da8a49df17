package zombiezen

import (
	"context"
	"embed"
	"fmt"
	"path"

	"zombiezen.com/go/sqlite/sqlitex"
)

// sqlFiles embeds all SQL scripts from the sql/ subdirectory.
//
//go:embed sql/*.sql
var sqlFiles embed.FS

const (
	DocsSchema  = "docs.sql"
	RulesSchema = "rules.sql"
)

// CreateSchemas runs the embedded SQL scripts (e.g. DocsSchema). The
// scripts only create missing tables, so running them again is harmless.
func CreateSchemas(pool *sqlitex.Pool, schemaNames ...string) error {
	conn, err := pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer pool.Put(conn)

	for _, schemaName := range schemaNames {
		scriptPath := path.Join("sql", schemaName)
		script, err := sqlFiles.ReadFile(scriptPath)
		if err != nil {
			return fmt.Errorf("read embedded sql file %s: %w", scriptPath, err)
		}

		// ExecuteScript handles multi-statement strings.
		if err := sqlitex.ExecuteScript(conn, string(script), nil); err != nil {
			return fmt.Errorf("execute script %s: %w", schemaName, err)
		}
	}

	return nil
}

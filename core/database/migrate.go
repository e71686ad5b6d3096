package database

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/Ecospace254/employee-sub000/core/logger"
)

//go:embed schema.sql
var schemaSQL string

// Migrate applies the embedded schema. Statements are idempotent
// (CREATE ... IF NOT EXISTS) so this is safe to run on every start.
func (d *Database) Migrate(ctx context.Context) error {
	if _, err := d.sqlx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	logger.Info("Schema applied")
	return nil
}

package config

import (
	"context"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/grupoclick/clickcheck/migrations"
)

// Migrate applies the embedded SQL migrations against the connected
// database. Connect must have been called first.
func Migrate(ctx context.Context) error {
	if DB == nil {
		return fmt.Errorf("migrate: database not connected")
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}

	goose.SetBaseFS(migrations.FS)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	return goose.UpContext(ctx, sqlDB, ".")
}

package repositories

import (
	"context"
	"database/sql"

	"github.com/ekarabulut/social-wall/internal/migrations"
	"github.com/pressly/goose/v3"
)

// RunMigrations applies the embedded goose migrations against the provided
// database connection.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}

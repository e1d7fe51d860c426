package repositories

import (
	"context"

	"todolist/internal/models"
)

type AppRepository interface {
	// Upsert inserts the app row when missing and never modifies an
	// existing one. It reports whether a row was inserted.
	Upsert(ctx context.Context, app models.App) (bool, error)
}

type appRepository struct {
	db DBTX
}

func NewAppRepository(db DBTX) AppRepository {
	return &appRepository{db: db}
}

func (r *appRepository) Upsert(ctx context.Context, app models.App) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO apps (type, status)
		VALUES ($1, $2)
		ON CONFLICT (type) DO NOTHING
	`, app.Type, app.Status)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

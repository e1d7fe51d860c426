package repositories

import (
	"context"
	"fmt"
	"strings"

	"todolist/internal/models"
)

type LogRepository interface {
	CreateMany(ctx context.Context, logs []models.Log) error
}

type logRepository struct {
	db DBTX
}

func NewLogRepository(db DBTX) LogRepository {
	return &logRepository{db: db}
}

// CreateMany inserts the batch with a single multi-row statement.
func (r *logRepository) CreateMany(ctx context.Context, logs []models.Log) error {
	if len(logs) == 0 {
		return nil
	}
	var sb strings.Builder
	sb.WriteString(`INSERT INTO logs (user_id, message, level) VALUES `)
	args := make([]any, 0, len(logs)*3)
	for i, l := range logs {
		if i > 0 {
			sb.WriteString(", ")
		}
		n := i * 3
		fmt.Fprintf(&sb, "($%d, $%d, $%d)", n+1, n+2, n+3)
		args = append(args, l.UserID, l.Message, l.Level)
	}
	_, err := r.db.ExecContext(ctx, sb.String(), args...)
	return err
}

package repositories

import (
	"context"
	"database/sql"
	"errors"

	"todolist/internal/models"
)

type UserRepository interface {
	WithTx(tx DBTX) UserRepository

	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	Update(ctx context.Context, user *models.User) error
	SetEmailActivation(ctx context.Context, id int64, activated bool) (*models.User, error)
	Delete(ctx context.Context, id int64) (*models.User, error)
}

type userRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) WithTx(tx DBTX) UserRepository {
	return &userRepository{db: tx}
}

const userColumns = `id, email, password, name, role, status, is_email_activated, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*models.User, error) {
	u := &models.User{}
	err := row.Scan(
		&u.ID, &u.Email, &u.Password, &u.Name, &u.Role, &u.Status,
		&u.IsEmailActivated, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// scanOneUser maps sql.ErrNoRows to (nil, nil).
func scanOneUser(row *sql.Row) (*models.User, error) {
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return u, err
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	const q = `
		INSERT INTO users (email, password, name, role, status, is_email_activated)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`
	if user.Role == "" {
		user.Role = models.RoleCommon
	}
	if user.Status == "" {
		user.Status = models.UserStatusPending
	}
	return r.db.QueryRowContext(ctx, q,
		user.Email,
		user.Password,
		user.Name,
		user.Role,
		user.Status,
		user.IsEmailActivated,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanOneUser(r.db.QueryRowContext(ctx, q, id))
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanOneUser(r.db.QueryRowContext(ctx, q, email))
}

func (r *userRepository) List(ctx context.Context) ([]*models.User, error) {
	q := `SELECT ` + userColumns + ` FROM users ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	res := []*models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, u)
	}
	return res, rows.Err()
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	const q = `
		UPDATE users
		SET
			email=$1,
			password=$2,
			name=$3,
			role=$4,
			status=$5,
			is_email_activated=$6,
			updated_at=NOW()
		WHERE id=$7
		RETURNING updated_at
	`
	return r.db.QueryRowContext(ctx, q,
		user.Email,
		user.Password,
		user.Name,
		user.Role,
		user.Status,
		user.IsEmailActivated,
		user.ID,
	).Scan(&user.UpdatedAt)
}

// SetEmailActivation also moves the user to Active.
func (r *userRepository) SetEmailActivation(ctx context.Context, id int64, activated bool) (*models.User, error) {
	q := `
		UPDATE users
		SET is_email_activated=$1, status=$2, updated_at=NOW()
		WHERE id=$3
		RETURNING ` + userColumns
	return scanOneUser(r.db.QueryRowContext(ctx, q, activated, models.UserStatusActive, id))
}

func (r *userRepository) Delete(ctx context.Context, id int64) (*models.User, error) {
	q := `DELETE FROM users WHERE id=$1 RETURNING ` + userColumns
	return scanOneUser(r.db.QueryRowContext(ctx, q, id))
}

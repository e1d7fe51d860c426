package repositories

import (
	"context"
	"database/sql"
	"errors"

	"todolist/internal/models"
)

type OtpRepository interface {
	WithTx(tx DBTX) OtpRepository

	Create(ctx context.Context, otp *models.Otp) error
	DeleteByUserAndUseCase(ctx context.Context, userID int64, useCase models.OtpUseCase) (int64, error)
	FindLatest(ctx context.Context, userID int64, code string) (*models.Otp, error)
	Delete(ctx context.Context, id, userID int64, code string) error
}

type otpRepository struct {
	db DBTX
}

func NewOtpRepository(db DBTX) OtpRepository {
	return &otpRepository{db: db}
}

func (r *otpRepository) WithTx(tx DBTX) OtpRepository {
	return &otpRepository{db: tx}
}

func (r *otpRepository) Create(ctx context.Context, otp *models.Otp) error {
	const q = `
		INSERT INTO otps (user_id, code, use_case, expires_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRowContext(ctx, q, otp.UserID, otp.Code, otp.UseCase, otp.ExpiresAt).
		Scan(&otp.ID, &otp.CreatedAt, &otp.UpdatedAt)
}

func (r *otpRepository) DeleteByUserAndUseCase(ctx context.Context, userID int64, useCase models.OtpUseCase) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM otps WHERE user_id=$1 AND use_case=$2`, userID, useCase)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// FindLatest returns the most recent OTP for (userID, code), or nil.
func (r *otpRepository) FindLatest(ctx context.Context, userID int64, code string) (*models.Otp, error) {
	const q = `
		SELECT id, user_id, code, use_case, expires_at, created_at, updated_at
		FROM otps
		WHERE user_id=$1 AND code=$2
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`
	o := &models.Otp{}
	err := r.db.QueryRowContext(ctx, q, userID, code).Scan(
		&o.ID, &o.UserID, &o.Code, &o.UseCase, &o.ExpiresAt, &o.CreatedAt, &o.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (r *otpRepository) Delete(ctx context.Context, id, userID int64, code string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM otps WHERE id=$1 AND user_id=$2 AND code=$3`, id, userID, code)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

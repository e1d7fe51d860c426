package services

import (
	"context"
	"fmt"
	"time"

	"todolist/internal/logger"
	"todolist/internal/models"
	"todolist/internal/repositories"
	"todolist/internal/utils"
)

type OtpService interface {
	// WithTx returns a copy whose repository calls run inside tx.
	WithTx(tx repositories.DBTX) OtpService

	Create(ctx context.Context, userID int64, useCase models.OtpUseCase) (*models.Otp, error)
	CreateWith(ctx context.Context, userID int64, useCase models.OtpUseCase, length int, duration string) (*models.Otp, error)
	Validate(ctx context.Context, userID int64, code string) (*models.Otp, error)
	Delete(ctx context.Context, id, userID int64, code string) error
	VerifyOtp(ctx context.Context, userID int64, code string, useCase models.OtpUseCase) (*models.User, error)
	ResendOtp(ctx context.Context, email string, useCase models.OtpUseCase) error
}

type OtpSettings struct {
	Length    int
	ExpiresIn string
}

type otpService struct {
	otps     repositories.OtpRepository
	users    repositories.UserRepository
	mail     MailService
	settings OtpSettings
	log      logger.Logger
	now      func() time.Time
}

func NewOtpService(
	otps repositories.OtpRepository,
	users repositories.UserRepository,
	mail MailService,
	settings OtpSettings,
	log logger.Logger,
) OtpService {
	return &otpService{
		otps:     otps,
		users:    users,
		mail:     mail,
		settings: settings,
		log:      log,
		now:      time.Now,
	}
}

func (s *otpService) WithTx(tx repositories.DBTX) OtpService {
	cp := *s
	cp.otps = s.otps.WithTx(tx)
	cp.users = s.users.WithTx(tx)
	return &cp
}

func (s *otpService) Create(ctx context.Context, userID int64, useCase models.OtpUseCase) (*models.Otp, error) {
	return s.CreateWith(ctx, userID, useCase, s.settings.Length, s.settings.ExpiresIn)
}

// CreateWith replaces any OTP the user holds for useCase with a fresh one.
func (s *otpService) CreateWith(ctx context.Context, userID int64, useCase models.OtpUseCase, length int, duration string) (*models.Otp, error) {
	nc, err := utils.SplitNumChar(duration)
	if err != nil {
		return nil, err
	}
	expiresAt, err := utils.AddNumChar(s.now(), nc)
	if err != nil {
		return nil, err
	}

	removed, err := s.otps.DeleteByUserAndUseCase(ctx, userID, useCase)
	if err != nil {
		return nil, fmt.Errorf("delete previous otp: %w", err)
	}
	if removed > 0 {
		s.log.Debug("[otp][create] [user %d] replaced %d %s code(s)", userID, removed, useCase)
	}

	otp := &models.Otp{
		UserID:    userID,
		Code:      utils.NewNumericCode(length, utils.Digits),
		UseCase:   useCase,
		ExpiresAt: expiresAt,
	}
	if err := s.otps.Create(ctx, otp); err != nil {
		return nil, fmt.Errorf("create otp: %w", err)
	}
	return otp, nil
}

func (s *otpService) Validate(ctx context.Context, userID int64, code string) (*models.Otp, error) {
	otp, err := s.otps.FindLatest(ctx, userID, code)
	if err != nil {
		return nil, err
	}
	if otp == nil {
		return nil, ErrOtpNotFound
	}
	if !otp.ExpiresAt.After(s.now()) {
		return nil, ErrOtpExpired
	}
	return otp, nil
}

func (s *otpService) Delete(ctx context.Context, id, userID int64, code string) error {
	return s.otps.Delete(ctx, id, userID, code)
}

// VerifyOtp dispatches on the use case stored with the code; the caller's
// useCase is only compared for logging.
func (s *otpService) VerifyOtp(ctx context.Context, userID int64, code string, useCase models.OtpUseCase) (*models.User, error) {
	otp, err := s.Validate(ctx, userID, code)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, BadRequest("User not found.")
	}
	if user.Status == models.UserStatusBlocked {
		return nil, BadRequest(fmt.Sprintf("Unable to verify OTP. User is %s", user.Status))
	}

	if useCase != "" && useCase != otp.UseCase {
		s.log.Warn("[otp][verify] [user %d] requested use case %s, code was issued for %s", userID, useCase, otp.UseCase)
	}

	switch otp.UseCase {
	case models.OtpAccountActivation:
		updated, err := s.users.SetEmailActivation(ctx, userID, true)
		if err != nil {
			return nil, err
		}
		if err := s.otps.Delete(ctx, otp.ID, userID, code); err != nil {
			return nil, fmt.Errorf("delete used otp: %w", err)
		}
		s.log.Log("[otp][verify] [user %d] account activated", userID)
		return updated, nil
	}
	return nil, ErrInvalidOtpUseCase
}

// ResendOtp issues and mails a new code. Only account activation is
// implemented; other use cases are a no-op.
func (s *otpService) ResendOtp(ctx context.Context, email string, useCase models.OtpUseCase) error {
	if useCase != models.OtpAccountActivation {
		return nil
	}
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFoundKey
	}
	otp, err := s.Create(ctx, user.ID, models.OtpAccountActivation)
	if err != nil {
		return err
	}
	if err := s.mail.SendActivationCodeMail(ctx, user.ID, user.Name, user.Email, otp.Code); err != nil {
		return err
	}
	s.log.Log("[otp][resend] [user %d] activation code sent", user.ID)
	return nil
}

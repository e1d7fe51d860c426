package services

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"todolist/internal/logger"
	"todolist/internal/models"
	"todolist/internal/repositories"
	"todolist/internal/validation"
)

type UserService interface {
	Create(ctx context.Context, req models.CreateUserRequest) (*models.User, error)
	FindAll(ctx context.Context) ([]*models.User, error)
	FindOneByID(ctx context.Context, id int64) (*models.User, error)
	Update(ctx context.Context, id int64, req models.UpdateUserRequest) (*models.User, error)
	SetEmailActivation(ctx context.Context, id int64, activated bool) (*models.User, error)
	Remove(ctx context.Context, id int64) (*models.User, error)
	ResendEmailActivationCode(ctx context.Context, email string) error
}

type userService struct {
	tx         repositories.TxRunner
	users      repositories.UserRepository
	otp        OtpService
	bcryptCost int
	log        logger.Logger
}

func NewUserService(
	tx repositories.TxRunner,
	users repositories.UserRepository,
	otp OtpService,
	bcryptCost int,
	log logger.Logger,
) UserService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &userService{tx: tx, users: users, otp: otp, bcryptCost: bcryptCost, log: log}
}

func (s *userService) hash(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(h), nil
}

// Create inserts the user, issues the activation OTP and mails it in one
// transaction. A mail failure rolls the user back.
func (s *userService) Create(ctx context.Context, req models.CreateUserRequest) (*models.User, error) {
	hashed, err := s.hash(req.Password)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Name:     strings.TrimSpace(req.Name),
		Email:    strings.TrimSpace(req.Email),
		Password: hashed,
	}

	err = s.tx.WithTx(ctx, func(tx repositories.DBTX) error {
		if err := s.users.WithTx(tx).Create(ctx, user); err != nil {
			return err
		}
		return s.otp.WithTx(tx).ResendOtp(ctx, user.Email, models.OtpAccountActivation)
	})
	if err != nil {
		if repositories.IsUniqueViolation(err) {
			return nil, uniqueUserViolation(err)
		}
		return nil, err
	}
	s.log.Log("[users][create] [user %d] registered %s", user.ID, user.Email)
	return user, nil
}

// uniqueUserViolation covers the race between the DontExist check and the
// insert.
func uniqueUserViolation(err error) error {
	field := "email"
	if strings.Contains(err.Error(), "name") {
		field = "name"
	}
	return &validation.Errors{Violations: []validation.Violation{{
		Field:   field,
		Rule:    "dontExist",
		Message: fmt.Sprintf("%s already exists", field),
	}}}
}

func (s *userService) FindAll(ctx context.Context) ([]*models.User, error) {
	return s.users.List(ctx)
}

func (s *userService) FindOneByID(ctx context.Context, id int64) (*models.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *userService) Update(ctx context.Context, id int64, req models.UpdateUserRequest) (*models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, NotFound("User not found")
	}

	if req.Name != nil {
		user.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		user.Email = strings.TrimSpace(*req.Email)
	}
	if req.Password != nil {
		hashed, err := s.hash(*req.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hashed
	}
	if req.Role != nil {
		user.Role = *req.Role
	}
	if req.Status != nil {
		user.Status = *req.Status
	}
	if req.IsEmailActivated != nil {
		user.IsEmailActivated = *req.IsEmailActivated
	}

	if err := s.users.Update(ctx, user); err != nil {
		if repositories.IsUniqueViolation(err) {
			return nil, uniqueUserViolation(err)
		}
		return nil, err
	}
	s.log.Log("[users][update] [user %d] updated", user.ID)
	return user, nil
}

func (s *userService) SetEmailActivation(ctx context.Context, id int64, activated bool) (*models.User, error) {
	return s.users.SetEmailActivation(ctx, id, activated)
}

func (s *userService) Remove(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.users.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, NotFound("User not found")
	}
	s.log.Log("[users][remove] [user %d] removed", id)
	return user, nil
}

func (s *userService) ResendEmailActivationCode(ctx context.Context, email string) error {
	return s.otp.ResendOtp(ctx, email, models.OtpAccountActivation)
}

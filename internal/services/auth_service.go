package services

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"todolist/internal/logger"
	"todolist/internal/models"
	"todolist/internal/repositories"
	"todolist/internal/utils"
)

// Claims is the access token payload: {"userId": n} plus the registered
// claims.
type Claims struct {
	UserID int64 `json:"userId"`
	jwt.RegisteredClaims
}

type TokenManager struct {
	secret    []byte
	expiresIn string
	now       func() time.Time
}

func NewTokenManager(secret, expiresIn string) *TokenManager {
	return &TokenManager{secret: []byte(secret), expiresIn: expiresIn, now: time.Now}
}

func (m *TokenManager) Sign(userID int64) (string, error) {
	now := m.now()
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if m.expiresIn != "" {
		exp, err := utils.Expiry(now, m.expiresIn)
		if err != nil {
			return "", fmt.Errorf("jwt expiry: %w", err)
		}
		claims.ExpiresAt = jwt.NewNumericDate(exp)
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// Parse verifies signature and expiry. Only HMAC methods are accepted.
func (m *TokenManager) Parse(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now))
	if err != nil {
		return nil, err
	}
	if !parsed.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

// DecodeUnverified reads the payload without checking the signature. Only
// use it for logging.
func DecodeUnverified(token string) (*Claims, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (*models.LoginResponse, error)
}

type authService struct {
	users  repositories.UserRepository
	tokens *TokenManager
	log    logger.Logger
}

func NewAuthService(users repositories.UserRepository, tokens *TokenManager, log logger.Logger) AuthService {
	return &authService{users: users, tokens: tokens, log: log}
}

func (s *authService) Login(ctx context.Context, email, password string) (*models.LoginResponse, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, NotFound("No user found for email: " + email)
	}
	if !user.IsEmailActivated {
		return nil, Unauthorized("User email not activated.")
	}
	if user.Status != models.UserStatusActive {
		return nil, Unauthorized(fmt.Sprintf("User status is %s.", user.Status))
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		s.log.Debug("[auth][login] [user %d] password rejected: %v", user.ID, err)
		return nil, Unauthorized("Invalid password")
	}

	token, err := s.tokens.Sign(user.ID)
	if err != nil {
		return nil, err
	}
	s.log.Log("[auth][login] [user %d] signed in", user.ID)
	return &models.LoginResponse{AccessToken: token}, nil
}

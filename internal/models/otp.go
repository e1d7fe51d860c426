package models

import "time"

type OtpUseCase string

const (
	OtpAccountActivation OtpUseCase = "AccountActivation"
)

var OtpUseCases = []string{string(OtpAccountActivation)}

type Otp struct {
	ID        int64      `json:"id"`
	UserID    int64      `json:"userId"`
	Code      string     `json:"code"`
	UseCase   OtpUseCase `json:"useCase"`
	ExpiresAt time.Time  `json:"expiresAt"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

type ResendOtpRequest struct {
	UserEmail  string     `json:"userEmail"`
	OtpUseCase OtpUseCase `json:"otpUseCase"`
}

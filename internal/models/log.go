package models

import "time"

type LogLevel string

const (
	LogLevelLog     LogLevel = "Log"
	LogLevelError   LogLevel = "Error"
	LogLevelWarn    LogLevel = "Warn"
	LogLevelDebug   LogLevel = "Debug"
	LogLevelVerbose LogLevel = "Verbose"
	LogLevelFatal   LogLevel = "Fatal"
)

type Log struct {
	ID        int64     `json:"id"`
	UserID    *int64    `json:"userId,omitempty"`
	Message   string    `json:"message"`
	Level     LogLevel  `json:"level"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

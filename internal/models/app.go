package models

type AppType string

const AppTypeTodoList AppType = "TodoList"

type AppStatus string

const (
	AppStatusActive   AppStatus = "Active"
	AppStatusInactive AppStatus = "Inactive"
)

// App is a static registry row, seeded once per deployment.
type App struct {
	ID     int64     `json:"id"`
	Type   AppType   `json:"type"`
	Status AppStatus `json:"status"`
}

package models

import "time"

type TodoTaskStatus string

const (
	TodoTaskPending   TodoTaskStatus = "Pending"
	TodoTaskCompleted TodoTaskStatus = "Completed"
)

var TodoTaskStatuses = []string{string(TodoTaskPending), string(TodoTaskCompleted)}

type TodoTask struct {
	ID          int64          `json:"id"`
	UserID      int64          `json:"userId"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Status      TodoTaskStatus `json:"status"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

type CreateTodoTaskRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type UpdateTodoTaskRequest struct {
	ID          int64          `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Status      TodoTaskStatus `json:"status"`
}

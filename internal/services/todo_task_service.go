package services

import (
	"context"
	"fmt"
	"time"

	"todolist/internal/i18n"
	"todolist/internal/logger"
	"todolist/internal/models"
	"todolist/internal/pdf"
	"todolist/internal/repositories"
)

type TodoTaskService interface {
	FindAll(ctx context.Context, userID int64) ([]models.TodoTask, error)
	FindAllWithStatus(ctx context.Context, userID int64, status models.TodoTaskStatus) ([]models.TodoTask, error)
	Create(ctx context.Context, req models.CreateTodoTaskRequest, userID int64) (*models.TodoTask, error)
	Update(ctx context.Context, req models.UpdateTodoTaskRequest, userID int64) (*models.TodoTask, error)
	Delete(ctx context.Context, id, userID int64) (*models.TodoTask, error)
	ExportPDF(ctx context.Context, user *models.User) ([]byte, error)
}

type todoTaskService struct {
	repo    repositories.TodoTaskRepository
	pdf     pdf.Generator
	catalog *i18n.Catalog
	log     logger.Logger
	now     func() time.Time
}

func NewTodoTaskService(repo repositories.TodoTaskRepository, gen pdf.Generator, catalog *i18n.Catalog, log logger.Logger) TodoTaskService {
	return &todoTaskService{repo: repo, pdf: gen, catalog: catalog, log: log, now: time.Now}
}

func (s *todoTaskService) FindAll(ctx context.Context, userID int64) ([]models.TodoTask, error) {
	return s.repo.FindAllByUser(ctx, userID)
}

func (s *todoTaskService) FindAllWithStatus(ctx context.Context, userID int64, status models.TodoTaskStatus) ([]models.TodoTask, error) {
	return s.repo.FindAllByUserAndStatus(ctx, userID, status)
}

func (s *todoTaskService) Create(ctx context.Context, req models.CreateTodoTaskRequest, userID int64) (*models.TodoTask, error) {
	task := &models.TodoTask{
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
		Status:      models.TodoTaskPending,
	}
	if err := s.repo.Create(ctx, task); err != nil {
		if repositories.IsUniqueViolation(err) {
			return nil, ErrTaskNameExists
		}
		return nil, err
	}
	s.log.Log("[todo-task][create] [user %d] task %d created", userID, task.ID)
	return task, nil
}

// Update rejects a name held by any other task, across all users, before
// checking that the caller owns the task.
func (s *todoTaskService) Update(ctx context.Context, req models.UpdateTodoTaskRequest, userID int64) (*models.TodoTask, error) {
	same, err := s.repo.FindByName(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	for _, t := range same {
		if t.ID != req.ID {
			return nil, ErrTaskNameExists
		}
	}

	task, err := s.repo.FindByIDAndUser(ctx, req.ID, userID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, ErrTaskNotFound
	}

	task.Name = req.Name
	task.Description = req.Description
	task.Status = req.Status
	if err := s.repo.Update(ctx, task); err != nil {
		if repositories.IsUniqueViolation(err) {
			return nil, ErrTaskNameExists
		}
		return nil, err
	}
	s.log.Log("[todo-task][update] [user %d] task %d updated", userID, task.ID)
	return task, nil
}

func (s *todoTaskService) Delete(ctx context.Context, id, userID int64) (*models.TodoTask, error) {
	n, err := s.repo.CountByIDAndUser(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, ErrTaskNotFound
	}
	task, err := s.repo.Delete(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, ErrTaskNotFound
	}
	s.log.Log("[todo-task][delete] [user %d] task %d deleted", userID, id)
	return task, nil
}

func (s *todoTaskService) ExportPDF(ctx context.Context, user *models.User) ([]byte, error) {
	tasks, err := s.repo.FindAllByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	tr := s.catalog.FromContext(ctx)

	rows := make([]pdf.TaskListRow, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, pdf.TaskListRow{
			Name:        t.Name,
			Description: t.Description,
			Status:      string(t.Status),
		})
	}
	out, err := s.pdf.GenerateTaskList(pdf.TaskListData{
		Title:            tr.T("all.todo_task.export_title"),
		Owner:            fmt.Sprintf("%s <%s>", user.Name, user.Email),
		NameLabel:        tr.T("all.todo_task.name"),
		DescriptionLabel: tr.T("all.todo_task.description"),
		StatusLabel:      tr.T("all.todo_task.status"),
		GeneratedAtLabel: tr.T("all.todo_task.generated_at"),
		GeneratedAt:      s.now(),
		Rows:             rows,
	})
	if err != nil {
		return nil, fmt.Errorf("render task list: %w", err)
	}
	s.log.Debug("[todo-task][export] [user %d] exported %d task(s)", user.ID, len(rows))
	return out, nil
}

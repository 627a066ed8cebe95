package taskRepo

import "github.com/KazChe/ai-task-scheduler/models"

// TaskRepository persists scheduled tasks.
type TaskRepository interface {
	Create(task *models.Task) error
	GetByID(id string) (*models.Task, error)
	ListByUser(userID string) ([]models.Task, error)
	UpdateStatus(id, status string) error
}

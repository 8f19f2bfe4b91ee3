package entities

// TaskStatus is the status of a follow-up task.
//
// The nominal progression is active -> completed -> {closed, archived};
// like application statuses it is not validated on write.
type TaskStatus string

const (
	TaskStatusActive    TaskStatus = "active"
	TaskStatusCompleted TaskStatus = "completed"
	TaskStatusClosed    TaskStatus = "closed"
	TaskStatusArchived  TaskStatus = "archived"
)

// Task is a follow-up action item under an application. Every task belongs to
// exactly one application and is cascade-deleted with it.
type Task struct {
	ID            string
	ApplicationID string
	Name          string
	Description   string
	Status        TaskStatus
	Notes         []Note
	DueDate       string
	CreatedAt     string
	UpdatedAt     string
}

package domain

import (
	"time"

	"github.com/lib/pq"
)

type TodoStatus string

const (
	StatusBacklog    TodoStatus = "BACKLOG"
	StatusPending    TodoStatus = "PENDING"
	StatusInProgress TodoStatus = "IN_PROGRESS"
	StatusCompleted  TodoStatus = "COMPLETED"
)

// TodoStatuses lists every status in board order.
var TodoStatuses = []TodoStatus{StatusBacklog, StatusPending, StatusInProgress, StatusCompleted}

func (s TodoStatus) Valid() bool {
	for _, status := range TodoStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// Todo is a user-owned task. The same struct is mapped by GORM (postgres)
// and by the mongo driver, so it carries both tag sets.
type Todo struct {
	ID          string         `gorm:"primaryKey;size:26" bson:"_id"`
	OwnerID     string         `gorm:"size:26;not null;index" bson:"ownerId"`
	Title       string         `gorm:"not null" bson:"title"`
	Description string         `gorm:"size:2000" bson:"description,omitempty"`
	Status      TodoStatus     `gorm:"size:16;not null;default:PENDING;index" bson:"status"`
	DueDate     *time.Time     `gorm:"index" bson:"dueDate,omitempty"`
	Tags        pq.StringArray `gorm:"type:text[]" bson:"tags"`
	CreatedAt   time.Time      `bson:"createdAt"`
	UpdatedAt   time.Time      `bson:"updatedAt"`
}

// Overdue reports whether the todo is past due and still open at now.
func (t *Todo) Overdue(now time.Time) bool {
	return t.DueDate != nil && t.DueDate.Before(now) && t.Status != StatusCompleted
}

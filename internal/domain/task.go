package domain

import (
	"errors"
	"time"
)

// ErrContentRequired is returned when a task is created without content.
var ErrContentRequired = errors.New("content is required")

type Task struct {
	ID          int64     `db:"id" json:"id"`
	Content     string    `db:"content" json:"content"`
	Completed   bool      `db:"completed" json:"completed"`
	DateCreated time.Time `db:"date_created" json:"date_created"`
}

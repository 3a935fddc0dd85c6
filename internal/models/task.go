package models

import "time"

type Task struct {
	ID          int64
	UserID      string
	Title       string
	Description string
	IsCompleted bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

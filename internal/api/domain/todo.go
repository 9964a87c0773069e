package domain

import "time"

type Todo struct {
	ID        int64
	Title     string
	Message   string
	Complete  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

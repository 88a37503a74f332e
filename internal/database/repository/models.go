package repository

import "time"

// Script represents a saved script row.
type Script struct {
	ID        string
	Name      string
	Body      string
	LastRunAt *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Entry represents a kv row, exposed to scripts via the store integration.
type Entry struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}

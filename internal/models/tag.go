package models

import "time"

// Tag is a label that can be attached to entries. Default tags have no owner.
type Tag struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id,omitempty"`
	Name      string    `json:"name" validate:"required,max=50"`
	Color     string    `json:"color" validate:"omitempty,hexcolor"`
	IsDefault bool      `json:"is_default"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EntryTag links a tag to an entry
type EntryTag struct {
	ID        string    `json:"id"`
	EntryID   string    `json:"entry_id"`
	TagID     string    `json:"tag_id"`
	CreatedAt time.Time `json:"created_at"`
}

package models

import "time"

type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username" validate:"required,min=1,max=50"`
	PINHash   string    `json:"-"`
	DarkMode  bool      `json:"dark_mode"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Category groups entries for a user (e.g. "Personal", "Work")
type Category struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id" validate:"required"`
	Name      string    `json:"name" validate:"required,max=50"`
	Color     string    `json:"color" validate:"omitempty,hexcolor"`
	Icon      string    `json:"icon"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

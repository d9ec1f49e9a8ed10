package model

import "time"

// DefaultGardenIcon is used when a garden is created without an icon.
const DefaultGardenIcon = "🏠"

// Garden is a named grouping boundary. Every friend lives in exactly one.
type Garden struct {
	ID          string    `json:"id" yaml:"id"`
	Name        string    `json:"name" yaml:"name"`
	Icon        string    `json:"icon" yaml:"icon"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	IsDemo      bool      `json:"is_demo,omitempty" yaml:"is_demo,omitempty"`
	CreatedAt   time.Time `json:"created_at" yaml:"created_at"`
}

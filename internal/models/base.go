package models

import (
	"time"
)

// Base carries the columns shared by every table. The numeric primary key is
// internal, it never leaves the API.
type Base struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

package models

import "time"

// Customer is keyed by an external identifier such as a national ID.
// Sales reference it by value, so deleting a customer leaves its sales intact.
type Customer struct {
	ID        string    `gorm:"primaryKey;size:64" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

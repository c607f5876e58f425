package services

import "time"

// Service is an offered logistics service (customs clearance, trucking,
// freight forwarding) referenced by bills and price lists.
type Service struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

package entity

import (
	"time"

	"github.com/google/uuid"
)

type Product struct {
	Id        uuid.UUID
	Name      string
	Image     string
	Price     float64
	GstRate   float64 // percent, zero means use the configured default
	Stock     int
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

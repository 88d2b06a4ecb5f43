package entity

import (
	"time"

	"github.com/google/uuid"
)

type CartItem struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	ProductId uuid.UUID
	Quantity  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

package entity

import (
	"time"

	"github.com/google/uuid"
)

type Principle struct {
	Id          uuid.UUID
	Code        string
	Name        string
	Description string
	Weight      float64
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

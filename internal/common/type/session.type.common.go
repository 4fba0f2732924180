package types

import (
	"github.com/google/uuid"
)

type UserWithAuth struct {
	ID      uuid.UUID `json:"id" validate:"required"`
	Email   string    `json:"email" validate:"required,email"`
	Name    string    `json:"name" validate:"omitempty"`
	IsVerif bool      `json:"is_verif" validate:"omitempty"`
}

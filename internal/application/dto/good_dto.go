package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateGoodRequest entrada para crear un bien. Stock solo se fija aquí; luego lo mueve el motor.
type CreateGoodRequest struct {
	ID       int64           `json:"id" validate:"required,min=1"`
	Name     string          `json:"name" validate:"required,min=1,max=200"`
	Material string          `json:"material" validate:"required,oneof=steel silver leather wood cloth alchemical mithril"`
	Weight   float64         `json:"weight" validate:"gt=0,lte=1000"`
	Value    decimal.Decimal `json:"value" validate:"min=0"`
	Stock    int             `json:"stock" validate:"min=0,max=2147483647"`
}

// UpdateGoodRequest entrada para actualizar un bien (sin Stock).
type UpdateGoodRequest struct {
	Name     *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Material *string          `json:"material" validate:"omitempty,oneof=steel silver leather wood cloth alchemical mithril"`
	Weight   *float64         `json:"weight" validate:"omitempty,gt=0,lte=1000"`
	Value    *decimal.Decimal `json:"value" validate:"omitempty,min=0"`
}

// GoodResponse salida de un bien.
type GoodResponse struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Material  string          `json:"material"`
	Weight    float64         `json:"weight"`
	Value     decimal.Decimal `json:"value"`
	Stock     int             `json:"stock"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// GoodListResponse lista paginada de bienes.
type GoodListResponse struct {
	Items []GoodResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

package dto

import "time"

// CreateClientRequest entrada para crear un comprador o un proveedor.
type CreateClientRequest struct {
	Name  string `json:"name" validate:"required,min=1,max=200"`
	Notes string `json:"notes" validate:"max=2000"`
}

// ClientResponse salida de un comprador o proveedor.
type ClientResponse struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Name      string    `json:"name"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ClientListResponse lista paginada de clientes.
type ClientListResponse struct {
	Items []ClientResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}

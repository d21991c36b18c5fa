package dto

import "time"

// AddressRequest dirección dentro de create/update de cliente.
// En update, una dirección con ID se actualiza; sin ID se crea.
type AddressRequest struct {
	ID     string `json:"id,omitempty"`
	Street string `json:"street" validate:"required"`
	Number string `json:"number" validate:"required"`
	City   string `json:"city" validate:"required"`
	State  string `json:"state" validate:"required"`
	CEP    string `json:"cep"`
	Type   string `json:"type" validate:"required,oneof=HOME WORK"`
}

// CreateClientRequest entrada para crear un cliente con sus direcciones.
type CreateClientRequest struct {
	Name        string           `json:"name" validate:"required"`
	LastName    string           `json:"last_name" validate:"required"`
	Email       string           `json:"email" validate:"required,email"`
	CPF         string           `json:"cpf"`
	SocialMedia string           `json:"social_media"`
	Addresses   []AddressRequest `json:"addresses"`
}

// UpdateClientRequest entrada parcial para actualizar un cliente.
type UpdateClientRequest struct {
	Name        *string          `json:"name"`
	LastName    *string          `json:"last_name"`
	Email       *string          `json:"email"`
	CPF         *string          `json:"cpf"`
	SocialMedia *string          `json:"social_media"`
	Addresses   []AddressRequest `json:"addresses"`
}

// AddressResponse salida de una dirección.
type AddressResponse struct {
	ID       string `json:"id"`
	ClientID string `json:"client_id"`
	Street   string `json:"street"`
	Number   string `json:"number"`
	City     string `json:"city"`
	State    string `json:"state"`
	CEP      string `json:"cep,omitempty"`
	Type     string `json:"type"`
}

// ClientResponse salida de un cliente con sus direcciones.
type ClientResponse struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	LastName    string            `json:"last_name"`
	Email       string            `json:"email"`
	CPF         string            `json:"cpf,omitempty"`
	SocialMedia string            `json:"social_media,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
	DeletedAt   *time.Time        `json:"deleted_at,omitempty"`
	Addresses   []AddressResponse `json:"addresses,omitempty"`
}

// ClientListResponse listado paginado de clientes.
type ClientListResponse struct {
	Items []ClientResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}

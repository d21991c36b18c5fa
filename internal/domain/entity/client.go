package entity

import "time"

// Client representa un cliente (comprador). Se elimina con soft delete:
// DeletedAt != nil lo excluye de lecturas sin borrar la fila.
type Client struct {
	ID          string
	Name        string
	LastName    string
	Email       string
	CPF         string
	SocialMedia string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}

// Tipos de dirección válidos.
const (
	AddressTypeHome = "HOME"
	AddressTypeWork = "WORK"
)

// Address dirección de un cliente. Un cliente puede tener varias.
type Address struct {
	ID        string
	ClientID  string
	Street    string
	Number    string
	City      string
	State     string
	CEP       string
	Type      string // HOME, WORK
	CreatedAt time.Time
	UpdatedAt time.Time
}

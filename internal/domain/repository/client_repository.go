package repository

import "github.com/jhoicas/ventas-api/internal/domain/entity"

// ClientRepository puerto de persistencia para Client y sus direcciones.
// GetByID y List excluyen clientes con soft delete.
type ClientRepository interface {
	Create(client *entity.Client) error
	GetByID(id string) (*entity.Client, error)
	GetByEmail(email string) (*entity.Client, error)
	List(limit, offset int) ([]*entity.Client, error)
	Update(client *entity.Client) error
	SoftDelete(id string) error

	CreateAddress(address *entity.Address) error
	UpdateAddress(address *entity.Address) error
	ListAddresses(clientID string) ([]*entity.Address, error)
}

package repository

import "github.com/jhoicas/ventas-api/internal/domain/entity"

// ProductRepository puerto de persistencia para Product.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	// ListByIDs resuelve un lote de IDs en una sola consulta. Los IDs que no
	// existen simplemente no aparecen en el resultado.
	ListByIDs(ids []string) ([]*entity.Product, error)
	List(limit, offset int) ([]*entity.Product, error)
	Update(product *entity.Product) error
	Delete(id string) error
}

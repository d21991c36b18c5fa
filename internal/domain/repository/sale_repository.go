package repository

import "github.com/jhoicas/ventas-api/internal/domain/entity"

// SaleRepository puerto de persistencia para Sale y sus líneas.
// Dentro de una transacción (ver TxRunner en infraestructura) la misma
// interfaz opera sobre la tx, de modo que cabecera y líneas se escriben
// como una sola unidad lógica.
type SaleRepository interface {
	Create(sale *entity.Sale) error
	Update(sale *entity.Sale) error
	GetByID(id string) (*entity.Sale, error)
	List() ([]*entity.Sale, error)
	Delete(id string) error

	CreateItem(item *entity.SaleItem) error
	ListItemsBySaleID(saleID string) ([]*entity.SaleItem, error)
	DeleteItemsBySaleID(saleID string) error
}

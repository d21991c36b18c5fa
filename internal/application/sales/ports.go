package sales

import (
	"context"

	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción del store, con un
// SaleRepository atado a la tx. Cabecera y líneas de una venta se persisten
// siempre a través de este contrato.
type TxRunner interface {
	RunSale(ctx context.Context, fn func(saleRepo repository.SaleRepository) error) error
}

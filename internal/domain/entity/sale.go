package entity

import "time"

// Sale cabecera de una venta. TotalAmountCents es derivado: se recalcula en
// cada create/update que toca las líneas y nunca lo aporta el caller.
type Sale struct {
	ID               string
	ClientID         string
	TotalAmountCents int64
	SaleDate         time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// SaleItem línea de una venta: (producto, cantidad) valorada al precio vigente
// en el momento de la mutación. Las líneas solo existen junto a su venta y en
// un update con líneas se reemplazan completas (delete-all + recreate).
type SaleItem struct {
	ID        string
	SaleID    string
	ProductID string
	Quantity  int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

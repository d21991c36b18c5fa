package entity

import "time"

// Product representa un producto vendible. El precio se maneja en centavos
// enteros; nunca hay aritmética de punto flotante sobre dinero.
// Quantity es el stock declarado; la venta no lo descuenta.
type Product struct {
	ID         string
	Name       string
	PriceCents int64
	Quantity   int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

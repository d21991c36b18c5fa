package dto

import "time"

// SaleItemRequest línea solicitada: producto + cantidad. El precio no lo
// aporta el caller, se resuelve del producto vigente.
type SaleItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int64  `json:"quantity" validate:"required,gt=0"`
}

// CreateSaleRequest entrada para crear una venta.
type CreateSaleRequest struct {
	ClientID string            `json:"client_id" validate:"required,uuid"`
	SaleDate time.Time         `json:"sale_date"`
	Products []SaleItemRequest `json:"products" validate:"required,min=1,dive"`
}

// UpdateSaleRequest entrada parcial para actualizar una venta.
// Si Products viene con elementos, el conjunto de líneas se reemplaza completo
// y el total se recalcula; si viene vacío u omitido, solo se tocan los
// escalares presentes y las líneas/total quedan como estaban.
type UpdateSaleRequest struct {
	ClientID *string           `json:"client_id"`
	SaleDate *time.Time        `json:"sale_date"`
	Products []SaleItemRequest `json:"products"`
}

// SaleItemResponse salida de una línea, con el detalle del producto resuelto
// en las rutas de lectura.
type SaleItemResponse struct {
	ID        string           `json:"id"`
	ProductID string           `json:"product_id"`
	Quantity  int64            `json:"quantity"`
	Product   *ProductResponse `json:"product,omitempty"`
}

// SaleResponse salida de una venta. Client y Products solo se pueblan en las
// rutas de lectura; el create devuelve únicamente la cabecera.
type SaleResponse struct {
	ID               string             `json:"id"`
	ClientID         string             `json:"client_id"`
	TotalAmountCents int64              `json:"total_amount_cents"`
	SaleDate         time.Time          `json:"sale_date"`
	CreatedAt        time.Time          `json:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at"`
	Client           *ClientResponse    `json:"client,omitempty"`
	Products         []SaleItemResponse `json:"products,omitempty"`
}

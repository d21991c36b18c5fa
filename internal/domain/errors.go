package domain

import (
	"errors"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado para ese email")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInternal           = errors.New("la operación no produjo registro")
)

// ProductsNotFoundError indica qué productos referenciados no existen.
// Enumera exactamente los IDs faltantes para que el caller no tenga que
// reintentar uno por uno.
type ProductsNotFoundError struct {
	IDs []string
}

func (e *ProductsNotFoundError) Error() string {
	return "productos con ids " + strings.Join(e.IDs, ", ") + " no encontrados"
}

// Unwrap permite que errors.Is(err, ErrNotFound) funcione sobre este error.
func (e *ProductsNotFoundError) Unwrap() error {
	return ErrNotFound
}

package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

var _ repository.ClientRepository = (*ClientRepo)(nil)

// ClientRepo implementación de ClientRepository (usable con pool o tx).
type ClientRepo struct {
	q Querier
}

// NewClientRepository construye el adaptador. Pasar pool o tx (Querier).
func NewClientRepository(q Querier) *ClientRepo {
	return &ClientRepo{q: q}
}

// Create persiste un nuevo cliente.
func (r *ClientRepo) Create(client *entity.Client) error {
	query := `
		INSERT INTO clients (id, name, last_name, email, cpf, social_media, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		client.ID, client.Name, client.LastName, client.Email,
		nullIfEmpty(client.CPF), nullIfEmpty(client.SocialMedia),
		client.CreatedAt, client.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert client: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID. Excluye soft-deleted; (nil, nil) si no existe.
func (r *ClientRepo) GetByID(id string) (*entity.Client, error) {
	query := `
		SELECT id, name, last_name, email, COALESCE(cpf, ''), COALESCE(social_media, ''),
		       created_at, updated_at, deleted_at
		FROM clients WHERE id = $1 AND deleted_at IS NULL`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetByEmail obtiene un cliente por email. Excluye soft-deleted; (nil, nil) si no existe.
func (r *ClientRepo) GetByEmail(email string) (*entity.Client, error) {
	query := `
		SELECT id, name, last_name, email, COALESCE(cpf, ''), COALESCE(social_media, ''),
		       created_at, updated_at, deleted_at
		FROM clients WHERE email = $1 AND deleted_at IS NULL LIMIT 1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, email))
}

func (r *ClientRepo) scanOne(row pgx.Row) (*entity.Client, error) {
	var c entity.Client
	err := row.Scan(
		&c.ID, &c.Name, &c.LastName, &c.Email, &c.CPF, &c.SocialMedia,
		&c.CreatedAt, &c.UpdatedAt, &c.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client: %w", err)
	}
	return &c, nil
}

// List lista clientes activos (sin soft delete) con paginación.
func (r *ClientRepo) List(limit, offset int) ([]*entity.Client, error) {
	query := `
		SELECT id, name, last_name, email, COALESCE(cpf, ''), COALESCE(social_media, ''),
		       created_at, updated_at, deleted_at
		FROM clients WHERE deleted_at IS NULL ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()
	var list []*entity.Client
	for rows.Next() {
		var c entity.Client
		if err := rows.Scan(&c.ID, &c.Name, &c.LastName, &c.Email, &c.CPF, &c.SocialMedia,
			&c.CreatedAt, &c.UpdatedAt, &c.DeletedAt); err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Update actualiza un cliente.
func (r *ClientRepo) Update(client *entity.Client) error {
	query := `
		UPDATE clients SET name = $2, last_name = $3, email = $4, cpf = $5, social_media = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		client.ID, client.Name, client.LastName, client.Email,
		nullIfEmpty(client.CPF), nullIfEmpty(client.SocialMedia), client.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("update client: %w", err)
	}
	return nil
}

// SoftDelete marca el cliente como eliminado vía deleted_at, sin borrar la fila.
func (r *ClientRepo) SoftDelete(id string) error {
	query := `UPDATE clients SET deleted_at = $2 WHERE id = $1 AND deleted_at IS NULL`
	_, err := r.q.Exec(context.Background(), query, id, time.Now())
	if err != nil {
		return fmt.Errorf("soft delete client: %w", err)
	}
	return nil
}

// CreateAddress persiste una dirección del cliente.
func (r *ClientRepo) CreateAddress(address *entity.Address) error {
	query := `
		INSERT INTO addresses (id, client_id, street, number, city, state, cep, type, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		address.ID, address.ClientID, address.Street, address.Number,
		address.City, address.State, nullIfEmpty(address.CEP), address.Type,
		address.CreatedAt, address.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert address: %w", err)
	}
	return nil
}

// UpdateAddress actualiza una dirección existente.
func (r *ClientRepo) UpdateAddress(address *entity.Address) error {
	query := `
		UPDATE addresses SET street = $2, number = $3, city = $4, state = $5, cep = $6, type = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		address.ID, address.Street, address.Number, address.City, address.State,
		nullIfEmpty(address.CEP), address.Type, address.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update address: %w", err)
	}
	return nil
}

// ListAddresses obtiene todas las direcciones de un cliente.
func (r *ClientRepo) ListAddresses(clientID string) ([]*entity.Address, error) {
	query := `
		SELECT id, client_id, street, number, city, state, COALESCE(cep, ''), type, created_at, updated_at
		FROM addresses WHERE client_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, clientID)
	if err != nil {
		return nil, fmt.Errorf("list addresses: %w", err)
	}
	defer rows.Close()
	var list []*entity.Address
	for rows.Next() {
		var a entity.Address
		if err := rows.Scan(&a.ID, &a.ClientID, &a.Street, &a.Number, &a.City, &a.State,
			&a.CEP, &a.Type, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan address: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

// ClientUseCase casos de uso CRUD para clientes y sus direcciones.
// La eliminación es soft delete (deleted_at).
type ClientUseCase struct {
	repo repository.ClientRepository
}

// NewClientUseCase construye el caso de uso.
func NewClientUseCase(repo repository.ClientRepository) *ClientUseCase {
	return &ClientUseCase{repo: repo}
}

// Create crea un cliente junto con sus direcciones.
// Devuelve ErrConflict si ya existe un cliente con ese email.
func (uc *ClientUseCase) Create(in dto.CreateClientRequest) (*dto.ClientResponse, error) {
	if in.Name == "" || in.LastName == "" || in.Email == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, _ := uc.repo.GetByEmail(in.Email)
	if existing != nil {
		return nil, domain.ErrConflict
	}
	now := time.Now()
	client := &entity.Client{
		ID:          uuid.New().String(),
		Name:        in.Name,
		LastName:    in.LastName,
		Email:       in.Email,
		CPF:         in.CPF,
		SocialMedia: in.SocialMedia,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(client); err != nil {
		return nil, err
	}
	for _, a := range in.Addresses {
		if err := uc.repo.CreateAddress(&entity.Address{
			ID:        uuid.New().String(),
			ClientID:  client.ID,
			Street:    a.Street,
			Number:    a.Number,
			City:      a.City,
			State:     a.State,
			CEP:       a.CEP,
			Type:      a.Type,
			CreatedAt: now,
			UpdatedAt: now,
		}); err != nil {
			return nil, err
		}
	}
	return uc.composeResponse(client)
}

// GetByID obtiene un cliente activo con sus direcciones. (nil, nil) si no existe.
func (uc *ClientUseCase) GetByID(id string) (*dto.ClientResponse, error) {
	client, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, nil
	}
	return uc.composeResponse(client)
}

// List lista clientes activos con sus direcciones.
func (uc *ClientUseCase) List(limit, offset int) (*dto.ClientListResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ClientResponse, 0, len(list))
	for _, c := range list {
		composed, err := uc.composeResponse(c)
		if err != nil {
			return nil, err
		}
		items = append(items, *composed)
	}
	return &dto.ClientListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Update actualiza parcialmente un cliente. Direcciones con ID se actualizan;
// sin ID se crean nuevas.
func (uc *ClientUseCase) Update(id string, in dto.UpdateClientRequest) (*dto.ClientResponse, error) {
	client, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, nil
	}
	if in.Name != nil {
		client.Name = *in.Name
	}
	if in.LastName != nil {
		client.LastName = *in.LastName
	}
	if in.Email != nil {
		client.Email = *in.Email
	}
	if in.CPF != nil {
		client.CPF = *in.CPF
	}
	if in.SocialMedia != nil {
		client.SocialMedia = *in.SocialMedia
	}
	now := time.Now()
	client.UpdatedAt = now
	if err := uc.repo.Update(client); err != nil {
		return nil, err
	}
	for _, a := range in.Addresses {
		if a.ID == "" {
			if err := uc.repo.CreateAddress(&entity.Address{
				ID:        uuid.New().String(),
				ClientID:  client.ID,
				Street:    a.Street,
				Number:    a.Number,
				City:      a.City,
				State:     a.State,
				CEP:       a.CEP,
				Type:      a.Type,
				CreatedAt: now,
				UpdatedAt: now,
			}); err != nil {
				return nil, err
			}
			continue
		}
		if err := uc.repo.UpdateAddress(&entity.Address{
			ID:        a.ID,
			ClientID:  client.ID,
			Street:    a.Street,
			Number:    a.Number,
			City:      a.City,
			State:     a.State,
			CEP:       a.CEP,
			Type:      a.Type,
			UpdatedAt: now,
		}); err != nil {
			return nil, err
		}
	}
	return uc.composeResponse(client)
}

// SoftDelete marca el cliente como eliminado y devuelve el snapshot.
func (uc *ClientUseCase) SoftDelete(id string) (*dto.ClientResponse, error) {
	snapshot, err := uc.GetByID(id)
	if err != nil {
		return nil, err
	}
	if snapshot == nil {
		return nil, nil
	}
	if err := uc.repo.SoftDelete(id); err != nil {
		return nil, err
	}
	now := time.Now()
	snapshot.DeletedAt = &now
	return snapshot, nil
}

func (uc *ClientUseCase) composeResponse(c *entity.Client) (*dto.ClientResponse, error) {
	addresses, err := uc.repo.ListAddresses(c.ID)
	if err != nil {
		return nil, err
	}
	out := &dto.ClientResponse{
		ID:          c.ID,
		Name:        c.Name,
		LastName:    c.LastName,
		Email:       c.Email,
		CPF:         c.CPF,
		SocialMedia: c.SocialMedia,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
		DeletedAt:   c.DeletedAt,
	}
	for _, a := range addresses {
		out.Addresses = append(out.Addresses, dto.AddressResponse{
			ID:       a.ID,
			ClientID: a.ClientID,
			Street:   a.Street,
			Number:   a.Number,
			City:     a.City,
			State:    a.State,
			CEP:      a.CEP,
			Type:     a.Type,
		})
	}
	return out, nil
}

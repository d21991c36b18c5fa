package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

// SaleUseCase motor de ventas: valida cliente y productos, calcula el total
// en centavos y persiste cabecera + líneas como una sola unidad.
type SaleUseCase struct {
	txRunner    TxRunner
	saleRepo    repository.SaleRepository
	clientRepo  repository.ClientRepository
	productRepo repository.ProductRepository
}

// NewSaleUseCase construye el caso de uso.
func NewSaleUseCase(
	txRunner TxRunner,
	saleRepo repository.SaleRepository,
	clientRepo repository.ClientRepository,
	productRepo repository.ProductRepository,
) *SaleUseCase {
	return &SaleUseCase{
		txRunner:    txRunner,
		saleRepo:    saleRepo,
		clientRepo:  clientRepo,
		productRepo: productRepo,
	}
}

// Create valida cliente y productos, calcula el total y persiste la venta con
// sus líneas en una transacción. Toda validación ocurre antes de escribir:
// con una referencia rota no queda mutación parcial.
// Devuelve solo la cabecera; las relaciones se pueblan en las rutas de lectura.
func (uc *SaleUseCase) Create(ctx context.Context, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if in.ClientID == "" || len(in.Products) == 0 {
		return nil, domain.ErrInvalidInput
	}

	client, err := uc.clientRepo.GetByID(in.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}

	products, err := uc.resolveProducts(in.Products)
	if err != nil {
		return nil, err
	}
	total := computeTotalCents(in.Products, products)

	now := time.Now()
	saleDate := in.SaleDate
	if saleDate.IsZero() {
		saleDate = now
	}
	sale := &entity.Sale{
		ID:               uuid.New().String(),
		ClientID:         in.ClientID,
		TotalAmountCents: total,
		SaleDate:         saleDate,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	err = uc.txRunner.RunSale(ctx, func(saleRepo repository.SaleRepository) error {
		if err := saleRepo.Create(sale); err != nil {
			return err
		}
		for _, item := range in.Products {
			if err := saleRepo.CreateItem(&entity.SaleItem{
				ID:        uuid.New().String(),
				SaleID:    sale.ID,
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				CreatedAt: now,
				UpdatedAt: now,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &dto.SaleResponse{
		ID:               sale.ID,
		ClientID:         sale.ClientID,
		TotalAmountCents: sale.TotalAmountCents,
		SaleDate:         sale.SaleDate,
		CreatedAt:        sale.CreatedAt,
		UpdatedAt:        sale.UpdatedAt,
	}, nil
}

// Update actualiza una venta. Si vienen líneas, el conjunto se reemplaza
// completo (delete-all + recreate) y el total se recalcula igual que en
// Create; si no vienen, solo se actualizan los escalares presentes y las
// líneas y el total quedan intactos. La asimetría es deliberada.
func (uc *SaleUseCase) Update(ctx context.Context, id string, in dto.UpdateSaleRequest) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}

	if in.ClientID != nil {
		sale.ClientID = *in.ClientID
	}
	if in.SaleDate != nil {
		sale.SaleDate = *in.SaleDate
	}
	now := time.Now()
	sale.UpdatedAt = now

	if len(in.Products) > 0 {
		products, err := uc.resolveProducts(in.Products)
		if err != nil {
			return nil, err
		}
		sale.TotalAmountCents = computeTotalCents(in.Products, products)

		err = uc.txRunner.RunSale(ctx, func(saleRepo repository.SaleRepository) error {
			if err := saleRepo.DeleteItemsBySaleID(sale.ID); err != nil {
				return err
			}
			for _, item := range in.Products {
				if err := saleRepo.CreateItem(&entity.SaleItem{
					ID:        uuid.New().String(),
					SaleID:    sale.ID,
					ProductID: item.ProductID,
					Quantity:  item.Quantity,
					CreatedAt: now,
					UpdatedAt: now,
				}); err != nil {
					return err
				}
			}
			return saleRepo.Update(sale)
		})
		if err != nil {
			return nil, err
		}
	} else {
		if err := uc.saleRepo.Update(sale); err != nil {
			return nil, err
		}
	}

	return uc.compose(sale)
}

// GetByID obtiene una venta con cliente y detalle de producto por línea.
func (uc *SaleUseCase) GetByID(ctx context.Context, id string) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	return uc.compose(sale)
}

// List lista todas las ventas con relaciones, más reciente primero.
func (uc *SaleUseCase) List(ctx context.Context) ([]dto.SaleResponse, error) {
	sales, err := uc.saleRepo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.SaleResponse, 0, len(sales))
	for _, s := range sales {
		composed, err := uc.compose(s)
		if err != nil {
			return nil, err
		}
		out = append(out, *composed)
	}
	return out, nil
}

// Remove verifica existencia (mismo contrato que GetByID), elimina la venta
// con sus líneas y devuelve el snapshot eliminado con relaciones.
func (uc *SaleUseCase) Remove(ctx context.Context, id string) (*dto.SaleResponse, error) {
	snapshot, err := uc.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	err = uc.txRunner.RunSale(ctx, func(saleRepo repository.SaleRepository) error {
		return saleRepo.Delete(id)
	})
	if err != nil {
		return nil, err
	}
	return snapshot, nil
}

// resolveProducts resuelve el conjunto de IDs distintos en un solo lote.
// Si faltan productos, el error enumera exactamente los IDs ausentes.
func (uc *SaleUseCase) resolveProducts(items []dto.SaleItemRequest) (map[string]*entity.Product, error) {
	distinct := make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		if item.ProductID == "" || item.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
		if _, ok := seen[item.ProductID]; ok {
			continue
		}
		seen[item.ProductID] = struct{}{}
		distinct = append(distinct, item.ProductID)
	}

	found, err := uc.productRepo.ListByIDs(distinct)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*entity.Product, len(found))
	for _, p := range found {
		byID[p.ID] = p
	}
	if len(byID) < len(distinct) {
		var missing []string
		for _, id := range distinct {
			if _, ok := byID[id]; !ok {
				missing = append(missing, id)
			}
		}
		return nil, &domain.ProductsNotFoundError{IDs: missing}
	}
	return byID, nil
}

// computeTotalCents suma price_cents * quantity por línea. Solo enteros:
// nada de punto flotante sobre dinero.
func computeTotalCents(items []dto.SaleItemRequest, products map[string]*entity.Product) int64 {
	var total int64
	for _, item := range items {
		if p, ok := products[item.ProductID]; ok {
			total += p.PriceCents * item.Quantity
		}
	}
	return total
}

// compose arma la respuesta de lectura: cabecera + cliente + líneas con
// detalle de producto.
func (uc *SaleUseCase) compose(sale *entity.Sale) (*dto.SaleResponse, error) {
	out := &dto.SaleResponse{
		ID:               sale.ID,
		ClientID:         sale.ClientID,
		TotalAmountCents: sale.TotalAmountCents,
		SaleDate:         sale.SaleDate,
		CreatedAt:        sale.CreatedAt,
		UpdatedAt:        sale.UpdatedAt,
	}

	client, err := uc.clientRepo.GetByID(sale.ClientID)
	if err != nil {
		return nil, err
	}
	if client != nil {
		out.Client = &dto.ClientResponse{
			ID:          client.ID,
			Name:        client.Name,
			LastName:    client.LastName,
			Email:       client.Email,
			CPF:         client.CPF,
			SocialMedia: client.SocialMedia,
			CreatedAt:   client.CreatedAt,
			UpdatedAt:   client.UpdatedAt,
		}
	}

	items, err := uc.saleRepo.ListItemsBySaleID(sale.ID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return out, nil
	}

	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ProductID)
	}
	products, err := uc.productRepo.ListByIDs(ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*entity.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	out.Products = make([]dto.SaleItemResponse, 0, len(items))
	for _, it := range items {
		resp := dto.SaleItemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
		}
		if p, ok := byID[it.ProductID]; ok {
			resp.Product = &dto.ProductResponse{
				ID:         p.ID,
				Name:       p.Name,
				PriceCents: p.PriceCents,
				Quantity:   p.Quantity,
				CreatedAt:  p.CreatedAt,
				UpdatedAt:  p.UpdatedAt,
			}
		}
		out.Products = append(out.Products, resp)
	}
	return out, nil
}

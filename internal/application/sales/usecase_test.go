package sales_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/application/sales"
	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeSaleRepo struct {
	sales map[string]*entity.Sale
	items map[string][]*entity.SaleItem // por saleID
}

func newFakeSaleRepo() *fakeSaleRepo {
	return &fakeSaleRepo{
		sales: make(map[string]*entity.Sale),
		items: make(map[string][]*entity.SaleItem),
	}
}

func (f *fakeSaleRepo) Create(sale *entity.Sale) error {
	cp := *sale
	f.sales[sale.ID] = &cp
	return nil
}

func (f *fakeSaleRepo) Update(sale *entity.Sale) error {
	cp := *sale
	f.sales[sale.ID] = &cp
	return nil
}

func (f *fakeSaleRepo) GetByID(id string) (*entity.Sale, error) {
	s, ok := f.sales[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (f *fakeSaleRepo) List() ([]*entity.Sale, error) {
	var out []*entity.Sale
	for _, s := range f.sales {
		cp := *s
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeSaleRepo) Delete(id string) error {
	delete(f.sales, id)
	delete(f.items, id)
	return nil
}

func (f *fakeSaleRepo) CreateItem(item *entity.SaleItem) error {
	cp := *item
	f.items[item.SaleID] = append(f.items[item.SaleID], &cp)
	return nil
}

func (f *fakeSaleRepo) ListItemsBySaleID(saleID string) ([]*entity.SaleItem, error) {
	return f.items[saleID], nil
}

func (f *fakeSaleRepo) DeleteItemsBySaleID(saleID string) error {
	delete(f.items, saleID)
	return nil
}

type fakeClientRepo struct {
	clients map[string]*entity.Client
}

func (f *fakeClientRepo) Create(c *entity.Client) error { f.clients[c.ID] = c; return nil }
func (f *fakeClientRepo) GetByID(id string) (*entity.Client, error) {
	c, ok := f.clients[id]
	if !ok {
		return nil, nil
	}
	return c, nil
}
func (f *fakeClientRepo) GetByEmail(string) (*entity.Client, error)       { return nil, nil }
func (f *fakeClientRepo) List(int, int) ([]*entity.Client, error)         { return nil, nil }
func (f *fakeClientRepo) Update(*entity.Client) error                     { return nil }
func (f *fakeClientRepo) SoftDelete(string) error                         { return nil }
func (f *fakeClientRepo) CreateAddress(*entity.Address) error             { return nil }
func (f *fakeClientRepo) UpdateAddress(*entity.Address) error             { return nil }
func (f *fakeClientRepo) ListAddresses(string) ([]*entity.Address, error) { return nil, nil }

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func (f *fakeProductRepo) Create(p *entity.Product) error { f.products[p.ID] = p; return nil }
func (f *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, nil
	}
	return p, nil
}
func (f *fakeProductRepo) ListByIDs(ids []string) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, id := range ids {
		if p, ok := f.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}
func (f *fakeProductRepo) List(int, int) ([]*entity.Product, error) { return nil, nil }
func (f *fakeProductRepo) Update(*entity.Product) error             { return nil }
func (f *fakeProductRepo) Delete(string) error                      { return nil }

// fakeTxRunner ejecuta el callback directamente sobre el repo en memoria.
type fakeTxRunner struct {
	saleRepo *fakeSaleRepo
}

func (f *fakeTxRunner) RunSale(_ context.Context, fn func(repository.SaleRepository) error) error {
	return fn(f.saleRepo)
}

func buildUseCase() (*sales.SaleUseCase, *fakeSaleRepo, *fakeClientRepo, *fakeProductRepo) {
	saleRepo := newFakeSaleRepo()
	clientRepo := &fakeClientRepo{clients: make(map[string]*entity.Client)}
	productRepo := &fakeProductRepo{products: make(map[string]*entity.Product)}
	uc := sales.NewSaleUseCase(&fakeTxRunner{saleRepo: saleRepo}, saleRepo, clientRepo, productRepo)
	return uc, saleRepo, clientRepo, productRepo
}

func seedClient(repo *fakeClientRepo, id string) {
	repo.clients[id] = &entity.Client{ID: id, Name: "Ana", LastName: "Pérez", Email: id + "@test.local"}
}

func seedProduct(repo *fakeProductRepo, id string, priceCents int64) {
	repo.products[id] = &entity.Product{ID: id, Name: "producto " + id, PriceCents: priceCents, Quantity: 100}
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

// El total es exactamente Σ price_cents × quantity: P1 1000¢ ×2 + P2 2000¢ ×1 = 4000¢.
func TestCreateSale_CalculaTotalEnCentavos(t *testing.T) {
	uc, _, clientRepo, productRepo := buildUseCase()
	seedClient(clientRepo, "c1")
	seedProduct(productRepo, "p1", 1000)
	seedProduct(productRepo, "p2", 2000)

	out, err := uc.Create(context.Background(), dto.CreateSaleRequest{
		ClientID: "c1",
		SaleDate: time.Now(),
		Products: []dto.SaleItemRequest{
			{ProductID: "p1", Quantity: 2},
			{ProductID: "p2", Quantity: 1},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(4000), out.TotalAmountCents)
	assert.Equal(t, "c1", out.ClientID)
	// El create devuelve solo la cabecera; las relaciones son de las rutas de lectura.
	assert.Nil(t, out.Client)
	assert.Empty(t, out.Products)
}

func TestCreateSale_ClienteInexistente_SinEscritura(t *testing.T) {
	uc, saleRepo, _, productRepo := buildUseCase()
	seedProduct(productRepo, "p1", 1000)

	_, err := uc.Create(context.Background(), dto.CreateSaleRequest{
		ClientID: "no-existe",
		Products: []dto.SaleItemRequest{{ProductID: "p1", Quantity: 1}},
	})

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, saleRepo.sales, "no debe quedar venta persistida")
	assert.Empty(t, saleRepo.items, "no deben quedar líneas persistidas")
}

// Con [p1, p-fantasma] el error enumera exactamente el ID ausente.
func TestCreateSale_ProductoFaltante_EnumeraIDs(t *testing.T) {
	uc, saleRepo, clientRepo, productRepo := buildUseCase()
	seedClient(clientRepo, "c1")
	seedProduct(productRepo, "p1", 1000)

	_, err := uc.Create(context.Background(), dto.CreateSaleRequest{
		ClientID: "c1",
		Products: []dto.SaleItemRequest{
			{ProductID: "p1", Quantity: 1},
			{ProductID: "p-fantasma", Quantity: 3},
		},
	})

	var missing *domain.ProductsNotFoundError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []string{"p-fantasma"}, missing.IDs)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), "p-fantasma")
	assert.Empty(t, saleRepo.sales, "validación fallida no debe dejar mutación parcial")
}

func TestCreateSale_CantidadNoPositiva_Rechazada(t *testing.T) {
	uc, _, clientRepo, productRepo := buildUseCase()
	seedClient(clientRepo, "c1")
	seedProduct(productRepo, "p1", 1000)

	_, err := uc.Create(context.Background(), dto.CreateSaleRequest{
		ClientID: "c1",
		Products: []dto.SaleItemRequest{{ProductID: "p1", Quantity: 0}},
	})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Update
// ──────────────────────────────────────────────────────────────────────────────

func createSale(t *testing.T, uc *sales.SaleUseCase) *dto.SaleResponse {
	t.Helper()
	out, err := uc.Create(context.Background(), dto.CreateSaleRequest{
		ClientID: "c1",
		SaleDate: time.Now(),
		Products: []dto.SaleItemRequest{
			{ProductID: "p1", Quantity: 2},
			{ProductID: "p2", Quantity: 1},
		},
	})
	require.NoError(t, err)
	return out
}

// Un update con líneas reemplaza el conjunto completo: nunca queda la unión
// de viejas y nuevas.
func TestUpdateSale_ReemplazaLineasCompletas(t *testing.T) {
	uc, _, clientRepo, productRepo := buildUseCase()
	seedClient(clientRepo, "c1")
	seedProduct(productRepo, "p1", 1000)
	seedProduct(productRepo, "p2", 2000)
	seedProduct(productRepo, "p3", 500)
	created := createSale(t, uc)

	updated, err := uc.Update(context.Background(), created.ID, dto.UpdateSaleRequest{
		Products: []dto.SaleItemRequest{{ProductID: "p3", Quantity: 4}},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(2000), updated.TotalAmountCents, "500¢ × 4")

	fetched, err := uc.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	require.Len(t, fetched.Products, 1, "solo debe quedar el conjunto nuevo")
	assert.Equal(t, "p3", fetched.Products[0].ProductID)
	assert.Equal(t, int64(4), fetched.Products[0].Quantity)
}

// Un update sin líneas solo toca los escalares presentes: total y líneas
// quedan intactos.
func TestUpdateSale_SinLineas_NoTocaTotalNiLineas(t *testing.T) {
	uc, _, clientRepo, productRepo := buildUseCase()
	seedClient(clientRepo, "c1")
	seedProduct(productRepo, "p1", 1000)
	seedProduct(productRepo, "p2", 2000)
	created := createSale(t, uc)

	newDate := time.Now().Add(48 * time.Hour)
	updated, err := uc.Update(context.Background(), created.ID, dto.UpdateSaleRequest{
		SaleDate: &newDate,
	})
	require.NoError(t, err)

	assert.Equal(t, created.TotalAmountCents, updated.TotalAmountCents, "el total no debe recalcularse")
	assert.WithinDuration(t, newDate, updated.SaleDate, time.Second)

	fetched, err := uc.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Len(t, fetched.Products, 2, "las líneas existentes deben conservarse")
}

func TestUpdateSale_ProductoFaltante_NoMutaNada(t *testing.T) {
	uc, saleRepo, clientRepo, productRepo := buildUseCase()
	seedClient(clientRepo, "c1")
	seedProduct(productRepo, "p1", 1000)
	seedProduct(productRepo, "p2", 2000)
	created := createSale(t, uc)
	before := saleRepo.items[created.ID]

	_, err := uc.Update(context.Background(), created.ID, dto.UpdateSaleRequest{
		Products: []dto.SaleItemRequest{{ProductID: "p-borrado", Quantity: 1}},
	})

	var missing *domain.ProductsNotFoundError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []string{"p-borrado"}, missing.IDs)
	assert.Equal(t, before, saleRepo.items[created.ID], "las líneas previas no deben tocarse")
}

func TestUpdateSale_Inexistente(t *testing.T) {
	uc, _, _, _ := buildUseCase()

	_, err := uc.Update(context.Background(), "nada", dto.UpdateSaleRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// GetByID / Remove
// ──────────────────────────────────────────────────────────────────────────────

func TestGetSale_IncluyeClienteYProductos(t *testing.T) {
	uc, _, clientRepo, productRepo := buildUseCase()
	seedClient(clientRepo, "c1")
	seedProduct(productRepo, "p1", 1000)
	seedProduct(productRepo, "p2", 2000)
	created := createSale(t, uc)

	out, err := uc.GetByID(context.Background(), created.ID)
	require.NoError(t, err)

	require.NotNil(t, out.Client)
	assert.Equal(t, "c1", out.Client.ID)
	require.Len(t, out.Products, 2)
	for _, item := range out.Products {
		require.NotNil(t, item.Product, "cada línea debe traer el detalle del producto")
	}
}

func TestGetSale_Inexistente(t *testing.T) {
	uc, _, _, _ := buildUseCase()

	_, err := uc.GetByID(context.Background(), "nada")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRemoveSale_DevuelveSnapshotYElimina(t *testing.T) {
	uc, saleRepo, clientRepo, productRepo := buildUseCase()
	seedClient(clientRepo, "c1")
	seedProduct(productRepo, "p1", 1000)
	seedProduct(productRepo, "p2", 2000)
	created := createSale(t, uc)

	snapshot, err := uc.Remove(context.Background(), created.ID)
	require.NoError(t, err)

	assert.Equal(t, created.ID, snapshot.ID)
	assert.NotNil(t, snapshot.Client, "el snapshot devuelto conserva relaciones")
	assert.Len(t, snapshot.Products, 2)
	assert.Empty(t, saleRepo.sales)
	assert.Empty(t, saleRepo.items)

	_, err = uc.GetByID(context.Background(), created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

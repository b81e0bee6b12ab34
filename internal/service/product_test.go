package service

import (
	"context"
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/shopkart/commerce-api/internal/domain"
	"github.com/shopkart/commerce-api/internal/events"
	"github.com/shopkart/commerce-api/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// stubStorage satisfies files.Storage without touching the filesystem.
type stubStorage struct{}

func (stubStorage) Save(path string, contents io.Reader) error { return nil }
func (stubStorage) Get(path string) (*os.File, error)          { return nil, os.ErrNotExist }

// spyProductRepo counts writes so tests can assert that no-op updates
// never reach storage.
type spyProductRepo struct {
	ProductRepo
	updates int
}

func (s *spyProductRepo) Update(ctx context.Context, id primitive.ObjectID, u domain.ProductUpdate) (*domain.Product, error) {
	s.updates++
	return s.ProductRepo.Update(ctx, id, u)
}

func newTestProductService(t *testing.T) (ProductService, *spyProductRepo) {
	t.Helper()
	repo := &spyProductRepo{ProductRepo: repository.NewMemoryProductRepository()}
	svc := NewProductService(repo, stubStorage{}, events.NewEventBus[any](), hclog.NewNullLogger())
	return svc, repo
}

func validInput(title string) domain.NewProductInput {
	return domain.NewProductInput{
		Title:          title,
		Description:    "a fine product",
		Price:          "100",
		CurrencyID:     "INR",
		CurrencyFormat: "₹",
		AvailableSizes: "S,M",
		Image:          &domain.FileUpload{Name: "img.png", Content: strings.NewReader("png")},
	}
}

func TestCreateProduct(t *testing.T) {
	svc, _ := newTestProductService(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, validInput("Blue Shirt"))
	require.NoError(t, err)
	assert.False(t, p.ID.IsZero())
	assert.Equal(t, "INR", p.CurrencyID)
	assert.Equal(t, []string{"S", "M"}, p.AvailableSizes)
	assert.True(t, strings.HasPrefix(p.ProductImage, "/uploads/products/"))
}

func TestCreateProductDuplicateTitle(t *testing.T) {
	svc, _ := newTestProductService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, validInput("Blue Shirt"))
	require.NoError(t, err)

	// same title after trimming must conflict
	input := validInput(" Blue Shirt ")
	_, err = svc.Create(ctx, input)
	assert.ErrorIs(t, err, domain.ErrDuplicateTitle)
}

func TestCreateProductValidation(t *testing.T) {
	svc, _ := newTestProductService(t)
	ctx := context.Background()

	testCases := []struct {
		name   string
		mutate func(*domain.NewProductInput)
		field  string
	}{
		{"blank title", func(i *domain.NewProductInput) { i.Title = "  " }, "title"},
		{"numeric title", func(i *domain.NewProductInput) { i.Title = "Shirt 9000" }, "title"},
		{"blank description", func(i *domain.NewProductInput) { i.Description = "" }, "description"},
		{"negative price", func(i *domain.NewProductInput) { i.Price = "-5" }, "price"},
		{"bad shipping flag", func(i *domain.NewProductInput) { i.IsFreeShipping = "maybe" }, "isFreeShipping"},
		{"wrong currency", func(i *domain.NewProductInput) { i.CurrencyID = "USD" }, "currencyId"},
		{"wrong currency format", func(i *domain.NewProductInput) { i.CurrencyFormat = "$" }, "currencyFormat"},
		{"unknown size", func(i *domain.NewProductInput) { i.AvailableSizes = "S,HUGE" }, "availableSizes"},
		{"bad installments", func(i *domain.NewProductInput) { i.Installments = "three" }, "installments"},
		{"missing image", func(i *domain.NewProductInput) { i.Image = nil }, "productImage"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			input := validInput("Product " + tc.name)
			tc.mutate(&input)

			_, err := svc.Create(ctx, input)
			var fieldErr *domain.ValidationError
			require.ErrorAs(t, err, &fieldErr)
			assert.Equal(t, tc.field, fieldErr.Field)
		})
	}
}

func TestUpdateProductScalarFields(t *testing.T) {
	svc, _ := newTestProductService(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, validInput("Blue Shirt"))
	require.NoError(t, err)

	price := "250"
	style := "Casual"
	shipping := "true"
	updated, wrote, err := svc.Update(ctx, p.ID.Hex(), domain.ProductPatch{
		Price:          &price,
		Style:          &style,
		IsFreeShipping: &shipping,
	})
	require.NoError(t, err)
	assert.True(t, wrote)
	assert.Equal(t, 250.0, updated.Price)
	assert.Equal(t, "Casual", updated.Style)
	assert.True(t, updated.IsFreeShipping)
	// untouched fields survive the merge
	assert.Equal(t, "Blue Shirt", updated.Title)
	assert.Equal(t, []string{"S", "M"}, updated.AvailableSizes)
}

func TestUpdateProductBlankFieldRejected(t *testing.T) {
	svc, _ := newTestProductService(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, validInput("Blue Shirt"))
	require.NoError(t, err)

	blank := "   "
	_, _, err = svc.Update(ctx, p.ID.Hex(), domain.ProductPatch{Description: &blank})
	var fieldErr *domain.ValidationError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "description", fieldErr.Field)
}

func TestUpdateProductTitleUniqueness(t *testing.T) {
	svc, _ := newTestProductService(t)
	ctx := context.Background()

	p1, err := svc.Create(ctx, validInput("Blue Shirt"))
	require.NoError(t, err)
	_, err = svc.Create(ctx, validInput("Red Shirt"))
	require.NoError(t, err)

	taken := "Red Shirt"
	_, _, err = svc.Update(ctx, p1.ID.Hex(), domain.ProductPatch{Title: &taken})
	assert.ErrorIs(t, err, domain.ErrDuplicateTitle)

	// renaming to its own title is not a collision
	own := "Blue Shirt"
	_, wrote, err := svc.Update(ctx, p1.ID.Hex(), domain.ProductPatch{Title: &own})
	require.NoError(t, err)
	assert.True(t, wrote)
}

func TestUpdateProductAppendSize(t *testing.T) {
	svc, repo := newTestProductService(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, validInput("Blue Shirt"))
	require.NoError(t, err)

	t.Run("appends a new token to the stored set", func(t *testing.T) {
		token := "xl"
		updated, wrote, err := svc.Update(ctx, p.ID.Hex(), domain.ProductPatch{AvailableSize: &token})
		require.NoError(t, err)
		assert.True(t, wrote)
		assert.Equal(t, []string{"S", "M", "XL"}, updated.AvailableSizes)
	})

	t.Run("existing token conflicts and leaves the set unchanged", func(t *testing.T) {
		token := "S"
		_, _, err := svc.Update(ctx, p.ID.Hex(), domain.ProductPatch{AvailableSize: &token})
		assert.ErrorIs(t, err, domain.ErrDuplicateSize)

		stored, err := repo.FindByID(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"S", "M", "XL"}, stored.AvailableSizes)
	})

	t.Run("unknown token is rejected", func(t *testing.T) {
		token := "HUGE"
		_, _, err := svc.Update(ctx, p.ID.Hex(), domain.ProductPatch{AvailableSize: &token})
		var fieldErr *domain.ValidationError
		require.ErrorAs(t, err, &fieldErr)
	})
}

func TestUpdateProductNoOp(t *testing.T) {
	svc, repo := newTestProductService(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, validInput("Blue Shirt"))
	require.NoError(t, err)

	current, wrote, err := svc.Update(ctx, p.ID.Hex(), domain.ProductPatch{})
	require.NoError(t, err)
	assert.False(t, wrote)
	assert.Equal(t, p.ID, current.ID)
	assert.Zero(t, repo.updates, "a no-op update must never issue a storage write")
}

func TestUpdateProductImageRequiresFile(t *testing.T) {
	svc, _ := newTestProductService(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, validInput("Blue Shirt"))
	require.NoError(t, err)

	_, _, err = svc.Update(ctx, p.ID.Hex(), domain.ProductPatch{ImageRequested: true})
	var fieldErr *domain.ValidationError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "productImage", fieldErr.Field)
}

func TestDeleteProductIdempotent(t *testing.T) {
	svc, repo := newTestProductService(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, validInput("Blue Shirt"))
	require.NoError(t, err)

	already, err := svc.Delete(ctx, p.ID.Hex())
	require.NoError(t, err)
	assert.False(t, already)

	stored, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.DeletedAt)
	firstDeletedAt := *stored.DeletedAt

	time.Sleep(5 * time.Millisecond)
	already, err = svc.Delete(ctx, p.ID.Hex())
	require.NoError(t, err)
	assert.True(t, already)

	stored, err = repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, firstDeletedAt, *stored.DeletedAt, "repeat delete must not move deletedAt")
}

func TestGetProduct(t *testing.T) {
	svc, _ := newTestProductService(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, validInput("Blue Shirt"))
	require.NoError(t, err)

	got, err := svc.Get(ctx, p.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)

	_, err = svc.Get(ctx, "zzz")
	var fieldErr *domain.ValidationError
	assert.ErrorAs(t, err, &fieldErr)

	_, err = svc.Get(ctx, primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	_, err = svc.Delete(ctx, p.ID.Hex())
	require.NoError(t, err)
	_, err = svc.Get(ctx, p.ID.Hex())
	assert.ErrorIs(t, err, domain.ErrProductDeleted)
}

func TestListProducts(t *testing.T) {
	svc, _ := newTestProductService(t)
	ctx := context.Background()

	cheap := validInput("Cheap Shirt")
	cheap.Price = "50"
	cheap.AvailableSizes = "S"
	_, err := svc.Create(ctx, cheap)
	require.NoError(t, err)

	mid := validInput("Mid Shirt")
	mid.Price = "100"
	mid.AvailableSizes = "XS"
	_, err = svc.Create(ctx, mid)
	require.NoError(t, err)

	dear := validInput("Dear Shirt")
	dear.Price = "200"
	dear.AvailableSizes = "XXL"
	_, err = svc.Create(ctx, dear)
	require.NoError(t, err)

	t.Run("price bound is exclusive", func(t *testing.T) {
		products, err := svc.List(ctx, domain.ProductFilter{PriceLessThan: 100})
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, "Cheap Shirt", products[0].Title)
	})

	t.Run("size filter intersects", func(t *testing.T) {
		products, err := svc.List(ctx, domain.ProductFilter{Sizes: []string{"S", "XS"}})
		require.NoError(t, err)
		require.Len(t, products, 2)
	})

	t.Run("results sort by ascending price", func(t *testing.T) {
		products, err := svc.List(ctx, domain.ProductFilter{})
		require.NoError(t, err)
		require.Len(t, products, 3)
		assert.Equal(t, "Cheap Shirt", products[0].Title)
		assert.Equal(t, "Dear Shirt", products[2].Title)
	})

	t.Run("empty result is reported as not found", func(t *testing.T) {
		_, err := svc.List(ctx, domain.ProductFilter{Name: "trousers"})
		assert.ErrorIs(t, err, domain.ErrProductNotFound)
	})

	t.Run("soft-deleted products are excluded", func(t *testing.T) {
		products, err := svc.List(ctx, domain.ProductFilter{Name: "cheap"})
		require.NoError(t, err)
		_, err = svc.Delete(ctx, products[0].ID.Hex())
		require.NoError(t, err)

		_, err = svc.List(ctx, domain.ProductFilter{Name: "cheap"})
		assert.ErrorIs(t, err, domain.ErrProductNotFound)
	})
}

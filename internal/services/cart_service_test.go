package services

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"golang-storefront/internal/models"
	"golang-storefront/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProducts() []models.Product {
	return []models.Product{
		{ID: "1", Name: "A", Price: price("100"), Category: "books"},
		{ID: "2", Name: "B", Price: price("50"), Category: "toys"},
		{ID: "3", Name: "C", Price: price("0.10"), Category: "books"},
		{ID: "4", Name: "D", Price: price("0.20"), Category: "garden"},
	}
}

func TestCartController_RepeatedAddsCollapseIntoOneLine(t *testing.T) {
	ctx := context.Background()
	products := testProducts()
	rng := rand.New(rand.NewSource(42))

	for round := 0; round < 20; round++ {
		c := NewCartController(ctx, &memoryCartStore{})
		counts := make(map[models.ProductID]int)
		for i := 0; i < 30; i++ {
			p := products[rng.Intn(len(products))]
			require.NoError(t, c.AddOrIncrement(ctx, p))
			counts[p.ID]++
		}

		items := c.Items()
		assert.Len(t, items, len(counts))
		require.NoError(t, items.Validate())
		for _, item := range items {
			assert.Equal(t, counts[item.ID], item.Quantity, "quantity for %s", item.ID)
		}
	}
}

func TestCartController_AddKeepsFirstSeenOrder(t *testing.T) {
	ctx := context.Background()
	p := testProducts()
	c := NewCartController(ctx, &memoryCartStore{})

	require.NoError(t, c.AddOrIncrement(ctx, p[1]))
	require.NoError(t, c.AddOrIncrement(ctx, p[0]))
	require.NoError(t, c.AddOrIncrement(ctx, p[1]))

	items := c.Items()
	require.Len(t, items, 2)
	assert.Equal(t, models.ProductID("2"), items[0].ID)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, models.ProductID("1"), items[1].ID)
}

func TestCartController_AddThenRemoveRestoresTotal(t *testing.T) {
	ctx := context.Background()
	p := testProducts()
	c := NewCartController(ctx, &memoryCartStore{})
	require.NoError(t, c.AddOrIncrement(ctx, p[2]))
	require.NoError(t, c.AddOrIncrement(ctx, p[2]))

	before := c.Total()
	require.NoError(t, c.AddOrIncrement(ctx, p[3]))
	assert.Equal(t, "0.4", c.Total().String())
	require.NoError(t, c.Remove(ctx, p[3].ID))

	assert.True(t, before.Equal(c.Total()))
	assert.True(t, c.Total().Equal(c.Items().Total()))
}

func TestCartController_SetQuantityBelowOneIsIgnored(t *testing.T) {
	ctx := context.Background()
	store := &memoryCartStore{}
	c := NewCartController(ctx, store)
	require.NoError(t, c.AddOrIncrement(ctx, testProducts()[0]))
	saves := store.saves

	for _, q := range []int{0, -1, -100} {
		require.NoError(t, c.SetQuantity(ctx, "1", q))
	}

	assert.Equal(t, 1, c.Items()[0].Quantity)
	assert.Equal(t, saves, store.saves)
}

func TestCartController_SetQuantity(t *testing.T) {
	ctx := context.Background()
	store := &memoryCartStore{}
	c := NewCartController(ctx, store)
	require.NoError(t, c.AddOrIncrement(ctx, testProducts()[1]))

	require.NoError(t, c.SetQuantity(ctx, "2", 5))
	assert.Equal(t, "250", c.Total().String())
	assert.Equal(t, 5, store.cart[0].Quantity)

	assert.ErrorIs(t, c.SetQuantity(ctx, "99", 3), ErrNotInCart)
	assert.ErrorIs(t, c.Remove(ctx, "99"), ErrNotInCart)
}

func TestCartController_FailedSaveLeavesCartUnchanged(t *testing.T) {
	ctx := context.Background()
	store := &memoryCartStore{saveErr: errors.New("disk full")}
	c := NewCartController(ctx, store)

	assert.Error(t, c.AddOrIncrement(ctx, testProducts()[0]))
	assert.True(t, c.IsEmpty())
}

func TestCartController_TotalScenario(t *testing.T) {
	ctx := context.Background()
	store := &memoryCartStore{cart: models.Cart{
		{ID: "1", Name: "A", Price: price("100"), Quantity: 2},
		{ID: "2", Name: "B", Price: price("50"), Quantity: 1},
	}}
	c := NewCartController(ctx, store)

	assert.Equal(t, "250", c.Total().String())
	assert.Equal(t, "250.00", c.TotalDisplay())
	assert.False(t, c.View().Empty)
}

func TestLocalCartStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	storage := repositories.NewMemoryStorage()
	store := NewLocalCartStore(storage, "profile-1")
	image := "a.png"
	cart := models.Cart{
		{ID: "1", Name: "A", Price: price("19.99"), Image: &image, Quantity: 3},
		{ID: "sku-9", Name: "B", Price: price("0.10"), Quantity: 1},
	}

	require.NoError(t, store.Save(ctx, cart))
	loaded := store.Load(ctx)

	require.Len(t, loaded, len(cart))
	for i := range cart {
		assert.Equal(t, cart[i].ID, loaded[i].ID)
		assert.Equal(t, cart[i].Quantity, loaded[i].Quantity)
		assert.True(t, cart[i].Price.Equal(loaded[i].Price))
	}

	require.NoError(t, store.Clear(ctx))
	assert.Empty(t, store.Load(ctx))
}

func TestLocalCartStore_MalformedContentLoadsEmpty(t *testing.T) {
	ctx := context.Background()
	storage := repositories.NewMemoryStorage()
	store := NewLocalCartStore(storage, "profile-1")

	for _, raw := range []string{
		"{not json",
		"null",
		`{"id":1}`,
		`[{"id":1,"name":"A","price":10,"quantity":0}]`,
		`[{"id":1,"price":10,"quantity":1},{"id":1,"price":10,"quantity":2}]`,
	} {
		require.NoError(t, storage.SetItem(ctx, "profile-1", models.StorageKeyCartItems, raw))
		cart := store.Load(ctx)
		assert.NotNil(t, cart, raw)
		assert.Empty(t, cart, raw)
	}
}

func TestCartService_AddProductPersists(t *testing.T) {
	ctx := context.Background()
	storage := repositories.NewMemoryStorage()
	svc := NewCartService(storage, NewProfileLocks(), &fakeCatalog{products: testProducts()})

	_, err := svc.AddProduct(ctx, "p1", "tok", "1")
	require.NoError(t, err)
	view, err := svc.AddProduct(ctx, "p1", "tok", "1")
	require.NoError(t, err)
	assert.Equal(t, "200.00", view.TotalDisplay)

	raw, ok, err := storage.GetItem(ctx, "p1", models.StorageKeyCartItems)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `[{"id":1,"name":"A","price":100,"image":null,"quantity":2}]`, raw)

	assert.True(t, svc.GetCart(ctx, "p2").Empty)

	_, err = svc.AddProduct(ctx, "p1", "tok", "404")
	assert.Error(t, err)
}

func TestCartService_AddsProductWithZeroPaddedID(t *testing.T) {
	ctx := context.Background()
	storage := repositories.NewMemoryStorage()
	catalog := &fakeCatalog{products: []models.Product{{ID: "007", Name: "Bond", Price: price("7")}}}
	svc := NewCartService(storage, NewProfileLocks(), catalog)

	_, err := svc.AddProduct(ctx, "p1", "tok", "007")
	require.NoError(t, err)
	view, err := svc.AddProduct(ctx, "p1", "tok", "007")
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 2, view.Items[0].Quantity)

	raw, ok, err := storage.GetItem(ctx, "p1", models.StorageKeyCartItems)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `[{"id":"007","name":"Bond","price":7,"image":null,"quantity":2}]`, raw)
	assert.Equal(t, models.ProductID("007"), svc.GetCart(ctx, "p1").Items[0].ID)
}

func TestCartService_ConcurrentAddsAreNotLost(t *testing.T) {
	ctx := context.Background()
	svc := NewCartService(repositories.NewMemoryStorage(), NewProfileLocks(), &fakeCatalog{products: testProducts()})

	done := make(chan error)
	for i := 0; i < 25; i++ {
		go func() {
			_, err := svc.AddProduct(ctx, "p1", "tok", "3")
			done <- err
		}()
	}
	for i := 0; i < 25; i++ {
		require.NoError(t, <-done)
	}

	view := svc.GetCart(ctx, "p1")
	require.Len(t, view.Items, 1)
	assert.Equal(t, 25, view.Items[0].Quantity)
	assert.Equal(t, "2.5", view.Total.String())
}

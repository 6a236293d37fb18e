package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/Shehap111/big-store-server/internal/domain"
)

// setupTestDB starts a single-node replica set so CommitOrder's transaction
// runs for real.
func setupTestDB(t *testing.T) (*MongoStore, func()) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	ctx := context.Background()

	mongoContainer, err := mongodb.Run(ctx, "mongo:7", mongodb.WithReplicaSet("rs0"))
	require.NoError(t, err)

	uri, err := mongoContainer.ConnectionString(ctx)
	require.NoError(t, err)

	db, err := ConnectMongoDB(ctx, uri, "testdb")
	require.NoError(t, err)

	store := NewMongoStore(db)
	require.NoError(t, store.CreateIndexes(ctx))

	cleanup := func() {
		if err := mongoContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	}
	return store, cleanup
}

func seedProduct(t *testing.T, store *MongoStore, id string, stock, sales int64) {
	t.Helper()
	_, err := store.products.InsertOne(context.Background(),
		bson.M{"_id": id, "stock": stock, "sales": sales})
	require.NoError(t, err)
}

func productCounter(t *testing.T, store *MongoStore, id string) (int64, int64) {
	t.Helper()
	var doc struct {
		Stock int64 `bson:"stock"`
		Sales int64 `bson:"sales"`
	}
	err := store.products.FindOne(context.Background(), bson.M{"_id": id}).Decode(&doc)
	require.NoError(t, err)
	return doc.Stock, doc.Sales
}

func TestMongoGetCart_NotFound(t *testing.T) {
	store, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := store.GetCart(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, ErrCartNotFound)
}

func TestMongoCreateAndGetCart(t *testing.T) {
	store, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	item := domain.CartItem{
		ID:       1,
		Title:    map[string]string{"en": "Blue Shirt"},
		Price:    19.99,
		Quantity: 2,
	}
	cartID, err := store.CreateCart(ctx, &domain.CartSnapshot{
		UserID:   "user123",
		Products: []domain.CartItem{item},
	})
	require.NoError(t, err)
	require.NotEmpty(t, cartID)

	cart, err := store.GetCart(ctx, cartID)
	require.NoError(t, err)
	assert.Equal(t, "user123", cart.UserID)
	assert.Equal(t, domain.CartStatusOpen, cart.Status)
	assert.False(t, cart.CreatedAt.IsZero())
	require.Len(t, cart.Products, 1)
	assert.Equal(t, int64(1), cart.Products[0].ID)
	assert.Equal(t, "Blue Shirt", cart.Products[0].Title["en"])
}

func TestMongoCommitOrder(t *testing.T) {
	store, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	seedProduct(t, store, "1", 10, 0)

	item := domain.CartItem{ID: 1, Title: map[string]string{"en": "Blue Shirt"}, Price: 10, Quantity: 2}
	cartID, err := store.CreateCart(ctx, &domain.CartSnapshot{UserID: "user123", Products: []domain.CartItem{item}})
	require.NoError(t, err)

	err = store.CommitOrder(ctx, orderFor(cartID, item))
	require.NoError(t, err)

	cart, err := store.GetCart(ctx, cartID)
	require.NoError(t, err)
	assert.Equal(t, domain.CartStatusPaid, cart.Status)

	stock, sales := productCounter(t, store, "1")
	assert.Equal(t, int64(8), stock)
	assert.Equal(t, int64(2), sales)

	count, err := store.orders.CountDocuments(ctx, bson.M{"cart_id": cartID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestMongoCommitOrder_Idempotent(t *testing.T) {
	store, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	seedProduct(t, store, "2", 5, 0)

	item := domain.CartItem{ID: 2, Title: map[string]string{"en": "Hat"}, Price: 7.5, Quantity: 1}
	cartID, err := store.CreateCart(ctx, &domain.CartSnapshot{UserID: "user123", Products: []domain.CartItem{item}})
	require.NoError(t, err)

	require.NoError(t, store.CommitOrder(ctx, orderFor(cartID, item)))

	err = store.CommitOrder(ctx, orderFor(cartID, item))
	assert.ErrorIs(t, err, ErrCartAlreadyPaid)

	stock, sales := productCounter(t, store, "2")
	assert.Equal(t, int64(4), stock)
	assert.Equal(t, int64(1), sales)

	count, err := store.orders.CountDocuments(ctx, bson.M{"cart_id": cartID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestMongoCommitOrder_CartNotFound(t *testing.T) {
	store, cleanup := setupTestDB(t)
	defer cleanup()

	err := store.CommitOrder(context.Background(), orderFor("000000000000000000000000"))
	assert.ErrorIs(t, err, ErrCartNotFound)
}

package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Shehap111/big-store-server/internal/domain"
)

// Collection names mirror the storefront's existing database.
const (
	cartsCollection    = "carts"
	ordersCollection   = "Orders"
	productsCollection = "products"
)

type MongoStore struct {
	client   *mongo.Client
	carts    *mongo.Collection
	orders   *mongo.Collection
	products *mongo.Collection
}

func ConnectMongoDB(ctx context.Context, uri, database string) (*mongo.Database, error) {
	clientOpts := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(10 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetTimeout(10 * time.Second).
		SetMaxPoolSize(100)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return client.Database(database), nil
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{
		client:   db.Client(),
		carts:    db.Collection(cartsCollection),
		orders:   db.Collection(ordersCollection),
		products: db.Collection(productsCollection),
	}
}

func (m *MongoStore) CreateCart(ctx context.Context, cart *domain.CartSnapshot) (string, error) {
	if cart.ID == "" {
		cart.ID = primitive.NewObjectID().Hex()
	}
	if cart.Status == "" {
		cart.Status = domain.CartStatusOpen
	}
	if cart.CreatedAt.IsZero() {
		cart.CreatedAt = time.Now().UTC()
	}

	if _, err := m.carts.InsertOne(ctx, cart); err != nil {
		return "", fmt.Errorf("%w: insert cart: %v", ErrStoreUnavailable, err)
	}
	return cart.ID, nil
}

func (m *MongoStore) GetCart(ctx context.Context, cartID string) (*domain.CartSnapshot, error) {
	var cart domain.CartSnapshot
	err := m.carts.FindOne(ctx, bson.M{"_id": cartID}).Decode(&cart)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCartNotFound
		}
		return nil, fmt.Errorf("%w: get cart: %v", ErrStoreUnavailable, err)
	}
	return &cart, nil
}

// CommitOrder runs the whole fulfillment commit in one transaction. The
// conditional status flip doubles as the idempotency gate: a concurrent or
// repeated confirmation for the same cart matches zero documents and aborts
// with ErrCartAlreadyPaid before any order or inventory write is issued.
func (m *MongoStore) CommitOrder(ctx context.Context, order *domain.Order) error {
	if order.ID == "" {
		order.ID = primitive.NewObjectID().Hex()
	}

	session, err := m.client.StartSession()
	if err != nil {
		return fmt.Errorf("%w: start session: %v", ErrStoreUnavailable, err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (any, error) {
		res, err := m.carts.UpdateOne(sc,
			bson.M{"_id": order.CartID, "status": domain.CartStatusOpen},
			bson.M{"$set": bson.M{"status": domain.CartStatusPaid}})
		if err != nil {
			return nil, fmt.Errorf("flip cart status: %w", err)
		}
		if res.MatchedCount == 0 {
			if err := m.carts.FindOne(sc, bson.M{"_id": order.CartID}).Err(); err != nil {
				if errors.Is(err, mongo.ErrNoDocuments) {
					return nil, ErrCartNotFound
				}
				return nil, fmt.Errorf("check cart: %w", err)
			}
			return nil, ErrCartAlreadyPaid
		}

		// Keyed by cart id, not by a fresh identifier: a retry after a
		// partial failure upserts onto the same document.
		_, err = m.orders.UpdateOne(sc,
			bson.M{"cart_id": order.CartID},
			bson.M{"$setOnInsert": order},
			options.Update().SetUpsert(true))
		if err != nil {
			return nil, fmt.Errorf("upsert order: %w", err)
		}

		for _, item := range order.Products {
			_, err = m.products.UpdateOne(sc,
				bson.M{"_id": strconv.FormatInt(item.ID, 10)},
				bson.M{"$inc": bson.M{"stock": -item.Quantity, "sales": item.Quantity}})
			if err != nil {
				return nil, fmt.Errorf("apply inventory delta for product %d: %w", item.ID, err)
			}
		}
		return nil, nil
	})

	if errors.Is(err, ErrCartNotFound) || errors.Is(err, ErrCartAlreadyPaid) {
		return err
	}
	if err != nil {
		return fmt.Errorf("%w: commit order: %v", ErrStoreUnavailable, err)
	}
	return nil
}

// CreateIndexes backs the idempotent order upsert with a unique index so
// two racing upserts cannot both insert.
func (m *MongoStore) CreateIndexes(ctx context.Context) error {
	_, err := m.orders.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "cart_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

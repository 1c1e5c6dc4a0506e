package service

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/261361-VetNurse/Backend/internal/model"
)

// listLimit caps List results. There is no pagination cursor; callers needing
// more than this must be told it is a known limitation.
const listLimit = 100

// ItemService provides item persistence in the items collection.
type ItemService struct {
	collection *mongo.Collection
}

// NewItemService creates an ItemService against the given database.
func NewItemService(db *mongo.Database) *ItemService {
	return &ItemService{collection: db.Collection("items")}
}

// List returns up to 100 items in store order.
func (s *ItemService) List(ctx context.Context) ([]*model.ItemResponse, error) {
	cursor, err := s.collection.Find(ctx, bson.M{}, options.Find().SetLimit(listLimit))
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer cursor.Close(ctx)

	items := []*model.ItemResponse{}
	for cursor.Next(ctx) {
		var item model.Item
		if err := cursor.Decode(&item); err != nil {
			return nil, fmt.Errorf("decoding item: %w", err)
		}
		items = append(items, item.Response())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	return items, nil
}

// GetByID returns the item with the given id. A malformed id is
// indistinguishable from a missing one: both yield ErrNotFound.
func (s *ItemService) GetByID(ctx context.Context, id string) (*model.ItemResponse, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, model.ErrNotFound
	}
	return s.getByObjectID(ctx, oid)
}

// Create validates the payload, inserts it, and returns the stored
// representation. The document is re-read after insertion rather than echoed
// back, so store-assigned values are reflected.
func (s *ItemService) Create(ctx context.Context, req *model.CreateItemRequest) (*model.ItemResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	result, err := s.collection.InsertOne(ctx, req.Document())
	if err != nil {
		return nil, fmt.Errorf("inserting item: %w", err)
	}
	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("unexpected inserted id type %T", result.InsertedID)
	}
	return s.getByObjectID(ctx, oid)
}

// Update applies the fields present in the payload to the stored item and
// returns the resulting state. An update carrying no effective change skips
// the write and returns the current state. A malformed or unknown id yields
// ErrNotFound.
func (s *ItemService) Update(ctx context.Context, id string, req *model.UpdateItemRequest) (*model.ItemResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, model.ErrNotFound
	}
	if changes := req.Changes(); len(changes) > 0 {
		_, err = s.collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": changes})
		if err != nil {
			return nil, fmt.Errorf("updating item: %w", err)
		}
	}
	return s.getByObjectID(ctx, oid)
}

// Delete removes the item with the given id and reports whether a document
// was actually removed. A malformed id means there is nothing to delete.
func (s *ItemService) Delete(ctx context.Context, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}
	result, err := s.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, fmt.Errorf("deleting item: %w", err)
	}
	return result.DeletedCount > 0, nil
}

func (s *ItemService) getByObjectID(ctx context.Context, oid primitive.ObjectID) (*model.ItemResponse, error) {
	var item model.Item
	err := s.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&item)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("fetching item: %w", err)
	}
	return item.Response(), nil
}

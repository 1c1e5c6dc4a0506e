package model

import (
	"fmt"
	"unicode/utf8"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Name length bounds for an item, in characters.
const (
	NameMinLen = 1
	NameMaxLen = 100
)

// Item is the stored representation of an item document. Description is a
// pointer so an unset value stays absent from the document rather than being
// stored as an empty string.
type Item struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Description *string            `bson:"description,omitempty"`
	Price       float64            `bson:"price"`
}

// Response converts the stored item into its wire shape, rendering the
// ObjectID as a hex string.
func (i *Item) Response() *ItemResponse {
	return &ItemResponse{
		ID:          i.ID.Hex(),
		Name:        i.Name,
		Description: i.Description,
		Price:       i.Price,
	}
}

// CreateItemRequest is the payload for creating a new item. Price is a
// pointer so a missing field can be told apart from an explicit zero.
type CreateItemRequest struct {
	Name        string   `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
}

// Validate checks the creation payload against the item rules. It must be
// called before any store interaction.
func (r *CreateItemRequest) Validate() error {
	if err := validateName(r.Name); err != nil {
		return err
	}
	if r.Price == nil {
		return fmt.Errorf("%w: price is required", ErrInvalidInput)
	}
	return validatePrice(*r.Price)
}

// Document builds the document to insert from a validated creation payload.
func (r *CreateItemRequest) Document() *Item {
	return &Item{
		Name:        r.Name,
		Description: r.Description,
		Price:       *r.Price,
	}
}

// UpdateItemRequest is the payload for a partial update. A nil field, whether
// omitted from the payload or sent as an explicit null, leaves the stored
// value unchanged.
type UpdateItemRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
}

// Validate checks the fields that are present against the item rules.
func (r *UpdateItemRequest) Validate() error {
	if r.Name != nil {
		if err := validateName(*r.Name); err != nil {
			return err
		}
	}
	if r.Price != nil {
		return validatePrice(*r.Price)
	}
	return nil
}

// Changes returns the update document holding only the fields that were set.
// An empty map means the update carries no effective change.
func (r *UpdateItemRequest) Changes() bson.M {
	changes := bson.M{}
	if r.Name != nil {
		changes["name"] = *r.Name
	}
	if r.Description != nil {
		changes["description"] = *r.Description
	}
	if r.Price != nil {
		changes["price"] = *r.Price
	}
	return changes
}

// ItemResponse is the wire-facing shape of an item.
type ItemResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Price       float64 `json:"price"`
}

func validateName(name string) error {
	n := utf8.RuneCountInString(name)
	if n < NameMinLen || n > NameMaxLen {
		return fmt.Errorf("%w: name must be between %d and %d characters", ErrInvalidInput, NameMinLen, NameMaxLen)
	}
	return nil
}

func validatePrice(price float64) error {
	if price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}
	return nil
}

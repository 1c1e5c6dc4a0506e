// Package schema declares the collections of the pet medical records
// database: per-collection validators and index definitions. It is pure data,
// read only at provisioning time. Adding a collection means adding a table
// entry here.
package schema

import "go.mongodb.org/mongo-driver/bson"

// Sort directions for index keys.
const (
	Ascending  = 1
	Descending = -1
)

// Index declares one index to build on a collection. Keys are ordered, so
// compound indexes keep their field order. A non-nil ExpireAfterSeconds makes
// the index a TTL index; zero means documents may be purged as soon as the
// indexed timestamp has passed.
type Index struct {
	Keys               bson.D
	Unique             bool
	ExpireAfterSeconds *int32
}

// Collection declares one collection: its name, the $jsonSchema validator the
// store enforces on writes, and the indexes to build.
type Collection struct {
	Name      string
	Validator bson.M
	Indexes   []Index
}

// Collections is the full registry, consumed by the provisioning routine.
var Collections = []Collection{
	{
		Name: "USERS",
		Validator: bson.M{
			"$jsonSchema": bson.M{
				"bsonType": "object",
				"required": bson.A{"line_id", "fname", "lname", "phone", "create_date"},
				"properties": bson.M{
					"line_id":     bson.M{"bsonType": "string"},
					"fname":       bson.M{"bsonType": "string"},
					"lname":       bson.M{"bsonType": "string"},
					"gender":      bson.M{"bsonType": "string", "enum": bson.A{"Male", "Female", "Other"}},
					"phone":       bson.M{"bsonType": "string"},
					"email":       bson.M{"bsonType": "string"},
					"address":     bson.M{"bsonType": "object"},
					"create_date": bson.M{"bsonType": "date"},
					"update_date": bson.M{"bsonType": "date"},
				},
			},
		},
		Indexes: []Index{
			{Keys: bson.D{{Key: "line_id", Value: Ascending}}, Unique: true},
			{Keys: bson.D{{Key: "email", Value: Ascending}}},
		},
	},
	{
		Name: "PETS",
		Validator: bson.M{
			"$jsonSchema": bson.M{
				"bsonType": "object",
				"required": bson.A{"user_id", "name", "species", "birth_date", "sex", "create_date"},
				"properties": bson.M{
					"user_id":     bson.M{"bsonType": "objectId"},
					"image_url":   bson.M{"bsonType": "string"},
					"name":        bson.M{"bsonType": "string"},
					"species":     bson.M{"bsonType": "string"},
					"breed":       bson.M{"bsonType": "string"},
					"birth_date":  bson.M{"bsonType": "date"},
					"sex":         bson.M{"bsonType": "string", "enum": bson.A{"Male", "Female", "Unknown"}},
					"color":       bson.M{"bsonType": "string"},
					"create_date": bson.M{"bsonType": "date"},
					"update_date": bson.M{"bsonType": "date"},
				},
			},
		},
		Indexes: []Index{
			{Keys: bson.D{{Key: "user_id", Value: Ascending}}},
		},
	},
	{
		Name: "NOTES",
		Validator: bson.M{
			"$jsonSchema": bson.M{
				"bsonType": "object",
				"required": bson.A{"pet_id", "user_id", "symptom", "create_date"},
				"properties": bson.M{
					"pet_id":       bson.M{"bsonType": "objectId"},
					"user_id":      bson.M{"bsonType": "objectId"},
					"image_urls":   bson.M{"bsonType": "array", "items": bson.M{"bsonType": "string"}},
					"symptom":      bson.M{"bsonType": "string"},
					"relapse_date": bson.M{"bsonType": "date"},
					"create_date":  bson.M{"bsonType": "date"},
					"update_date":  bson.M{"bsonType": "date"},
				},
			},
		},
	},
	{
		Name: "APPOINTMENTS",
		Validator: bson.M{
			"$jsonSchema": bson.M{
				"bsonType": "object",
				"required": bson.A{"pet_id", "user_id", "date", "status", "create_date"},
				"properties": bson.M{
					"pet_id":      bson.M{"bsonType": "objectId"},
					"user_id":     bson.M{"bsonType": "objectId"},
					"location":    bson.M{"bsonType": "string"},
					"date":        bson.M{"bsonType": "date"},
					"status":      bson.M{"bsonType": "string", "enum": bson.A{"pending", "confirmed", "completed", "cancelled"}},
					"note":        bson.M{"bsonType": "string"},
					"create_date": bson.M{"bsonType": "date"},
					"update_date": bson.M{"bsonType": "date"},
				},
			},
		},
		Indexes: []Index{
			{Keys: bson.D{{Key: "date", Value: Ascending}, {Key: "status", Value: Ascending}}},
			{Keys: bson.D{{Key: "user_id", Value: Ascending}}},
		},
	},
	{
		Name: "MEDICINES",
		Validator: bson.M{
			"$jsonSchema": bson.M{
				"bsonType": "object",
				"required": bson.A{"pet_id", "drug_name", "dosage", "status", "next_dose_time"},
				"properties": bson.M{
					"pet_id":     bson.M{"bsonType": "objectId"},
					"drug_name":  bson.M{"bsonType": "string"},
					"dosage":     bson.M{"bsonType": "string"},
					"indication": bson.M{"bsonType": "string"},
					"note":       bson.M{"bsonType": "string"},
					"frequency_config": bson.M{
						"bsonType": "object",
						"properties": bson.M{
							"type":           bson.M{"bsonType": "string", "enum": bson.A{"interval", "specific_time"}},
							"interval_hours": bson.M{"bsonType": "int"},
							"time_slots":     bson.M{"bsonType": "array", "items": bson.M{"bsonType": "string"}},
						},
					},
					"start_date":     bson.M{"bsonType": "date"},
					"end_date":       bson.M{"bsonType": "date"},
					"next_dose_time": bson.M{"bsonType": "date"},
					"status":         bson.M{"bsonType": "string", "enum": bson.A{"active", "completed", "cancelled"}},
					"create_date":    bson.M{"bsonType": "date"},
					"update_date":    bson.M{"bsonType": "date"},
				},
			},
		},
		Indexes: []Index{
			{Keys: bson.D{{Key: "status", Value: Ascending}, {Key: "next_dose_time", Value: Ascending}}},
			{Keys: bson.D{{Key: "pet_id", Value: Ascending}}},
		},
	},
	{
		Name: "NOTIFICATIONS",
		Validator: bson.M{
			"$jsonSchema": bson.M{
				"bsonType": "object",
				"required": bson.A{"user_id", "type", "title", "message", "is_read", "create_date"},
				"properties": bson.M{
					"user_id":     bson.M{"bsonType": "objectId"},
					"type":        bson.M{"bsonType": "string", "enum": bson.A{"medicine", "appointment", "system"}},
					"title":       bson.M{"bsonType": "string"},
					"message":     bson.M{"bsonType": "string"},
					"related_id":  bson.M{"bsonType": "objectId"},
					"is_read":     bson.M{"bsonType": "bool"},
					"create_date": bson.M{"bsonType": "date"},
				},
			},
		},
		Indexes: []Index{
			{Keys: bson.D{{Key: "user_id", Value: Ascending}, {Key: "is_read", Value: Ascending}}},
			{Keys: bson.D{{Key: "create_date", Value: Descending}}},
		},
	},
	{
		Name: "JWT",
		Validator: bson.M{
			"$jsonSchema": bson.M{
				"bsonType": "object",
				"required": bson.A{"token", "user_id", "type", "expires_at"},
				"properties": bson.M{
					"token":       bson.M{"bsonType": "string"},
					"user_id":     bson.M{"bsonType": "objectId"},
					"type":        bson.M{"bsonType": "string", "enum": bson.A{"access", "refresh"}},
					"expires_at":  bson.M{"bsonType": "date"},
					"create_date": bson.M{"bsonType": "date"},
				},
			},
		},
		Indexes: []Index{
			// Tokens are purged as soon as expires_at has passed.
			{Keys: bson.D{{Key: "expires_at", Value: Ascending}}, ExpireAfterSeconds: int32Ptr(0)},
		},
	},
}

func int32Ptr(v int32) *int32 { return &v }

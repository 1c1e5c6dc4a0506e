package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func collectionByName(t *testing.T, name string) Collection {
	t.Helper()
	for _, c := range Collections {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("collection %s not in registry", name)
	return Collection{}
}

func jsonSchema(t *testing.T, c Collection) bson.M {
	t.Helper()
	s, ok := c.Validator["$jsonSchema"].(bson.M)
	require.True(t, ok, "%s validator must carry a $jsonSchema", c.Name)
	return s
}

func fieldEnum(t *testing.T, s bson.M, path ...string) bson.A {
	t.Helper()
	props, ok := s["properties"].(bson.M)
	require.True(t, ok)
	for _, p := range path[:len(path)-1] {
		nested, ok := props[p].(bson.M)
		require.True(t, ok, "missing nested field %s", p)
		props, ok = nested["properties"].(bson.M)
		require.True(t, ok, "field %s has no properties", p)
	}
	field, ok := props[path[len(path)-1]].(bson.M)
	require.True(t, ok, "missing field %s", path[len(path)-1])
	enum, ok := field["enum"].(bson.A)
	require.True(t, ok, "field %s has no enum", path[len(path)-1])
	return enum
}

func TestRegistryCoversAllCollections(t *testing.T) {
	var names []string
	for _, c := range Collections {
		names = append(names, c.Name)
	}
	assert.ElementsMatch(t,
		[]string{"USERS", "PETS", "NOTES", "APPOINTMENTS", "MEDICINES", "NOTIFICATIONS", "JWT"},
		names)
}

func TestEveryCollectionHasValidator(t *testing.T) {
	for _, c := range Collections {
		s := jsonSchema(t, c)
		assert.Equal(t, "object", s["bsonType"], c.Name)
		required, ok := s["required"].(bson.A)
		require.True(t, ok, "%s must declare required fields", c.Name)
		assert.NotEmpty(t, required, c.Name)
	}
}

func TestRequiredFields(t *testing.T) {
	tests := map[string]bson.A{
		"USERS":         {"line_id", "fname", "lname", "phone", "create_date"},
		"PETS":          {"user_id", "name", "species", "birth_date", "sex", "create_date"},
		"NOTES":         {"pet_id", "user_id", "symptom", "create_date"},
		"APPOINTMENTS":  {"pet_id", "user_id", "date", "status", "create_date"},
		"MEDICINES":     {"pet_id", "drug_name", "dosage", "status", "next_dose_time"},
		"NOTIFICATIONS": {"user_id", "type", "title", "message", "is_read", "create_date"},
		"JWT":           {"token", "user_id", "type", "expires_at"},
	}
	for name, want := range tests {
		s := jsonSchema(t, collectionByName(t, name))
		assert.Equal(t, want, s["required"], name)
	}
}

func TestEnumConstraints(t *testing.T) {
	appointments := jsonSchema(t, collectionByName(t, "APPOINTMENTS"))
	assert.Equal(t, bson.A{"pending", "confirmed", "completed", "cancelled"},
		fieldEnum(t, appointments, "status"))

	medicines := jsonSchema(t, collectionByName(t, "MEDICINES"))
	assert.Equal(t, bson.A{"active", "completed", "cancelled"},
		fieldEnum(t, medicines, "status"))
	assert.Equal(t, bson.A{"interval", "specific_time"},
		fieldEnum(t, medicines, "frequency_config", "type"))

	notifications := jsonSchema(t, collectionByName(t, "NOTIFICATIONS"))
	assert.Equal(t, bson.A{"medicine", "appointment", "system"},
		fieldEnum(t, notifications, "type"))

	jwt := jsonSchema(t, collectionByName(t, "JWT"))
	assert.Equal(t, bson.A{"access", "refresh"}, fieldEnum(t, jwt, "type"))
}

func TestNotificationsIsReadIsBool(t *testing.T) {
	s := jsonSchema(t, collectionByName(t, "NOTIFICATIONS"))
	props := s["properties"].(bson.M)
	isRead, ok := props["is_read"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, "bool", isRead["bsonType"])
}

func TestUsersLineIDUnique(t *testing.T) {
	users := collectionByName(t, "USERS")
	var found bool
	for _, idx := range users.Indexes {
		if len(idx.Keys) == 1 && idx.Keys[0].Key == "line_id" {
			found = true
			assert.True(t, idx.Unique, "line_id index must be unique")
		}
	}
	assert.True(t, found, "USERS must index line_id")
}

func TestCompoundIndexKeyOrder(t *testing.T) {
	appointments := collectionByName(t, "APPOINTMENTS")
	require.NotEmpty(t, appointments.Indexes)
	compound := appointments.Indexes[0]
	require.Len(t, compound.Keys, 2)
	assert.Equal(t, "date", compound.Keys[0].Key)
	assert.Equal(t, "status", compound.Keys[1].Key)

	medicines := collectionByName(t, "MEDICINES")
	require.NotEmpty(t, medicines.Indexes)
	compound = medicines.Indexes[0]
	require.Len(t, compound.Keys, 2)
	assert.Equal(t, "status", compound.Keys[0].Key)
	assert.Equal(t, "next_dose_time", compound.Keys[1].Key)
}

func TestNotificationsCreateDateDescending(t *testing.T) {
	notifications := collectionByName(t, "NOTIFICATIONS")
	var found bool
	for _, idx := range notifications.Indexes {
		if len(idx.Keys) == 1 && idx.Keys[0].Key == "create_date" {
			found = true
			assert.Equal(t, Descending, idx.Keys[0].Value)
		}
	}
	assert.True(t, found, "NOTIFICATIONS must index create_date")
}

func TestJWTExpiryIndex(t *testing.T) {
	jwt := collectionByName(t, "JWT")
	require.Len(t, jwt.Indexes, 1)
	idx := jwt.Indexes[0]
	require.Len(t, idx.Keys, 1)
	assert.Equal(t, "expires_at", idx.Keys[0].Key)
	require.NotNil(t, idx.ExpireAfterSeconds, "expires_at index must be a TTL index")
	assert.Equal(t, int32(0), *idx.ExpireAfterSeconds, "tokens purge immediately on expiry")
}

func TestOnlyJWTHasTTL(t *testing.T) {
	for _, c := range Collections {
		for _, idx := range c.Indexes {
			if c.Name != "JWT" {
				assert.Nil(t, idx.ExpireAfterSeconds, "%s must not declare a TTL index", c.Name)
			}
		}
	}
}

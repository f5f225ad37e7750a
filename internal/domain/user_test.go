package domain

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserJSONNeverExposesPasswordHash(t *testing.T) {
	user := &User{
		ID:           1,
		Name:         "Ayşe",
		Email:        "ayse@example.com",
		PasswordHash: "$2a$10$cokgizlihash",
	}

	data, err := json.Marshal(user)
	require.NoError(t, err)

	assert.NotContains(t, string(data), "password")
	assert.NotContains(t, string(data), "cokgizlihash")

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.NotContains(t, decoded, "password_hash")
}

func TestPersistenceError(t *testing.T) {
	cause := errors.New("bağlantı koptu")
	err := NewPersistenceError("kullanıcı oluşturulamadı", cause)

	assert.Equal(t, "kullanıcı oluşturulamadı: bağlantı koptu", err.Error())
	assert.ErrorIs(t, err, cause)

	var pErr *PersistenceError
	assert.ErrorAs(t, err, &pErr)
	assert.Equal(t, "kullanıcı oluşturulamadı", pErr.Op)
}

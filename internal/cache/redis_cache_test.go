package cache_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/shopsphere/ecommerce-backend/internal/cache"
	"github.com/shopsphere/ecommerce-backend/internal/config"
	"github.com/shopsphere/ecommerce-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCacheTest(t *testing.T) (cache.Cache, redismock.ClientMock) {
	t.Helper()

	client, mock := redismock.NewClientMock()

	store := cache.NewRedisCache(client, &config.CacheConfig{DefaultTTL: 5 * time.Minute})
	require.NotNil(t, store)

	return store, mock
}

func TestCacheGet(t *testing.T) {
	t.Run("Success - Hit Unmarshals Value", func(t *testing.T) {
		// Arrange
		store, mock := setupCacheTest(t)

		want := models.Category{ID: 3, Name: "Electronics"}
		data, err := json.Marshal(want)
		require.NoError(t, err)

		mock.ExpectGet("category:3").SetVal(string(data))

		// Act
		var got models.Category
		found, err := store.Get(t.Context(), "category:3", &got)

		// Assert
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, want, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - Miss Is Not An Error", func(t *testing.T) {
		// Arrange
		store, mock := setupCacheTest(t)

		mock.ExpectGet("category:404").RedisNil()

		// Act
		var got models.Category
		found, err := store.Get(t.Context(), "category:404", &got)

		// Assert
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("Failure - Redis Error", func(t *testing.T) {
		// Arrange
		store, mock := setupCacheTest(t)

		mock.ExpectGet("category:3").SetErr(errors.New("connection refused"))

		// Act
		var got models.Category
		found, err := store.Get(t.Context(), "category:3", &got)

		// Assert
		require.Error(t, err)
		assert.False(t, found)
	})
}

func TestCacheSet(t *testing.T) {
	t.Run("Success - Zero TTL Falls Back To Default", func(t *testing.T) {
		// Arrange
		store, mock := setupCacheTest(t)

		value := models.Category{ID: 3, Name: "Electronics"}
		data, err := json.Marshal(value)
		require.NoError(t, err)

		mock.ExpectSet("category:3", data, 5*time.Minute).SetVal("OK")

		// Act & Assert
		assert.NoError(t, store.Set(t.Context(), "category:3", value, 0))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - Explicit TTL Wins", func(t *testing.T) {
		// Arrange
		store, mock := setupCacheTest(t)

		value := models.Category{ID: 3, Name: "Electronics"}
		data, err := json.Marshal(value)
		require.NoError(t, err)

		mock.ExpectSet("category:3", data, time.Hour).SetVal("OK")

		// Act & Assert
		assert.NoError(t, store.Set(t.Context(), "category:3", value, time.Hour))
	})
}

func TestCacheDelete(t *testing.T) {
	t.Run("Success - Evicts Key", func(t *testing.T) {
		// Arrange
		store, mock := setupCacheTest(t)

		mock.ExpectDel("product:7").SetVal(1)

		// Act & Assert
		assert.NoError(t, store.Delete(t.Context(), "product:7"))
	})
}

func TestKey(t *testing.T) {
	assert.Equal(t, "product:7", cache.Key(cache.ProductKeyPrefix, "7"))
}

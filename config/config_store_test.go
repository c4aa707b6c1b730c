package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithStoreDefaults(t *testing.T) {
	t.Run("nil store gets every default", func(t *testing.T) {
		store := withStoreDefaults(nil)

		assert.Equal(t, int64(5000), store.ShippingCost)
		assert.Equal(t, "AJ", store.OrderNumberPrefix)
		assert.Equal(t, 5_000_000, store.MaxPaymentProofLength)
		assert.Equal(t, 10, store.LowStockThreshold)
		assert.False(t, store.EnforceStatusTransitions)
		assert.Empty(t, store.ProofBucketURL)
	})

	t.Run("configured values are kept", func(t *testing.T) {
		store := withStoreDefaults(&StoreConfig{
			ShippingCost:             12000,
			OrderNumberPrefix:        "ZZ",
			MaxPaymentProofLength:    100,
			LowStockThreshold:        3,
			EnforceStatusTransitions: true,
		})

		assert.Equal(t, int64(12000), store.ShippingCost)
		assert.Equal(t, "ZZ", store.OrderNumberPrefix)
		assert.Equal(t, 100, store.MaxPaymentProofLength)
		assert.Equal(t, 3, store.LowStockThreshold)
		assert.True(t, store.EnforceStatusTransitions)
	})

	t.Run("blank prefix falls back", func(t *testing.T) {
		store := withStoreDefaults(&StoreConfig{OrderNumberPrefix: "   "})

		assert.Equal(t, "AJ", store.OrderNumberPrefix)
	})
}

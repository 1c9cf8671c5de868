package handler

import (
	"encoding/json"
	"testing"

	"artisan/internal/domain/entity"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductResponse_UnknownSellerIsNull(t *testing.T) {
	product := &entity.Product{ID: "p1", SellerID: "gone", Name: "Bowl", Price: decimal.RequireFromString("24")}

	raw, err := json.Marshal(newProductResponse(product, nil))
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	seller, ok := body["seller"]
	assert.True(t, ok, "seller key must be present")
	assert.Nil(t, seller)
}

func TestProductResponse_Prices(t *testing.T) {
	original := decimal.RequireFromString("30")
	product := &entity.Product{ID: "p1", Price: decimal.RequireFromString("24.5"), OriginalPrice: &original}

	resp := newProductResponse(product, &entity.SellerSummary{ID: "s1", Name: "Clay Studio"})
	assert.Equal(t, json.Number("24.50"), resp.Price)
	assert.Equal(t, json.Number("30.00"), resp.OriginalPrice)
	require.NotNil(t, resp.Seller)
	assert.Equal(t, "Clay Studio", resp.Seller.Name)
}

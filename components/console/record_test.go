package console

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRecordLookupPaths(t *testing.T) {
	r := Record{
		"orderId": "ORD-7",
		"address": map[string]any{"city": "Kochi"},
		"total":   float64(1250.5),
		"active":  true,
	}
	assert.Equal(t, "ORD-7", r.Text("order_id"), "snake case falls back to camel")
	assert.Equal(t, "Kochi", r.Text("address.city"))
	assert.Equal(t, "", r.Text("address.zip"))
	assert.Equal(t, "", r.Text("orderId.nested"))
	assert.Equal(t, "1250.5", r.Text("total"))
	assert.Equal(t, "true", r.Text("active"))
}

func TestAggregateAccessors(t *testing.T) {
	a := Aggregate{
		"totalVendors":  "14",
		"totalRevenue":  "10250.75",
		"activeClinics": float64(9),
		"avgRating":     "n/a",
	}
	assert.Equal(t, int64(14), a.Int("totalVendors"))
	assert.True(t, a.Decimal("totalRevenue").Equal(decimal.RequireFromString("10250.75")))
	assert.Equal(t, int64(9), a.Int("activeClinics"))
	assert.True(t, a.Decimal("avgRating").IsZero())
	assert.Equal(t, int64(0), a.Int("missing"))
}

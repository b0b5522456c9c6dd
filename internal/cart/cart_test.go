package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"farmgate/internal/domain"
)

func prod(id int64, price string) domain.Product {
	return domain.Product{ID: id, Name: "p", Price: decimal.RequireFromString(price)}
}

func TestAddMergesSameProduct(t *testing.T) {
	c := New()
	c.Add(prod(1, "500"))
	c.Add(prod(1, "500"))

	require.Equal(t, 1, c.Len())
	require.Equal(t, 2, c.Lines()[0].Quantity)
}

func TestAddKeepsInsertionOrder(t *testing.T) {
	c := New()
	c.Add(prod(3, "1"))
	c.Add(prod(1, "1"))
	c.Add(prod(2, "1"))
	c.Add(prod(1, "1"))

	ids := []int64{}
	for _, l := range c.Lines() {
		ids = append(ids, l.Product.ID)
	}
	require.Equal(t, []int64{3, 1, 2}, ids)
}

func TestUpdateQuantityBelowOneIsNoop(t *testing.T) {
	c := New()
	c.Add(prod(1, "500"))
	c.UpdateQuantity(1, 3)
	require.Equal(t, 3, c.Lines()[0].Quantity)

	c.UpdateQuantity(1, 0)
	require.Equal(t, 3, c.Lines()[0].Quantity, "zero must not change or remove the line")

	c.UpdateQuantity(1, -2)
	require.Equal(t, 3, c.Lines()[0].Quantity)
}

func TestRemoveAbsentIsNoop(t *testing.T) {
	c := New()
	c.Add(prod(1, "500"))
	c.Remove(99)
	require.Equal(t, 1, c.Len())

	c.Remove(1)
	require.Equal(t, 0, c.Len())
}

func TestTotalUsesCurrentPrice(t *testing.T) {
	c := New()
	c.Add(prod(1, "500"))
	c.Add(prod(1, "500"))
	c.Add(prod(2, "300"))

	require.True(t, c.Total().Equal(decimal.RequireFromString("1300")), "got %s", c.Total())
}

func TestClear(t *testing.T) {
	c := New()
	c.Add(prod(1, "10"))
	c.Clear()
	require.Equal(t, 0, c.Len())
	require.True(t, c.Total().IsZero())
}

package order_test

import (
	"testing"
	"time"

	"boutique/internal/core/domain/model/order"
	"boutique/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 4, 12, 18, 30, 0, 0, time.UTC)

func testItems(t *testing.T) []order.LineItem {
	t.Helper()
	item, err := order.NewLineItem(3, "Coffret découverte", "25g", 2, 25)
	require.NoError(t, err)
	return []order.LineItem{item}
}

func TestNewLineItem_Validation(t *testing.T) {
	cases := []struct {
		name      string
		productID int64
		itemName  string
		quantity  int
		unitPrice float64
	}{
		{"zero product id", 0, "Coffret", 1, 10},
		{"empty name", 3, "", 1, 10},
		{"zero quantity", 3, "Coffret", 0, 10},
		{"negative quantity", 3, "Coffret", -2, 10},
		{"zero price", 3, "Coffret", 1, 0},
		{"negative price", 3, "Coffret", 1, -5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := order.NewLineItem(tc.productID, tc.itemName, "", tc.quantity, tc.unitPrice)
			require.Error(t, err)
		})
	}

	t.Run("line total is derived", func(t *testing.T) {
		item, err := order.NewLineItem(3, "Coffret", "25g", 3, 12.5)
		require.NoError(t, err)
		assert.InDelta(t, 37.5, item.LineTotal(), 0.001)
	})
}

func TestNewOrder(t *testing.T) {
	t.Run("trusted customer starts pending", func(t *testing.T) {
		o, err := order.NewOrder("@reda12", "Livraison sur Millau", "12 rue Droite", testItems(t), 50, false, testNow)
		require.NoError(t, err)

		assert.Equal(t, order.Pending, o.Status())
		assert.Equal(t, int64(0), o.ID())
		assert.InDelta(t, 50.0, o.Total(), 0.001)
		assert.InDelta(t, 50.0, o.TotalCharged(), 0.001)
		assert.Equal(t, testNow, o.CreatedAt())
	})

	t.Run("unknown customer starts pending_approval", func(t *testing.T) {
		o, err := order.NewOrder("@newguy", "Livraison sur Millau", "12 rue Droite", testItems(t), 50, true, testNow)
		require.NoError(t, err)
		assert.Equal(t, order.PendingApproval, o.Status())
	})

	t.Run("address required for delivery", func(t *testing.T) {
		_, err := order.NewOrder("@reda12", "Livraison sur Millau", "", testItems(t), 50, false, testNow)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("pickup needs no address", func(t *testing.T) {
		o, err := order.NewOrder("@reda12", "À emporter", "", testItems(t), 50, false, testNow)
		require.NoError(t, err)
		assert.True(t, o.IsPickup())
	})

	t.Run("empty items rejected", func(t *testing.T) {
		_, err := order.NewOrder("@reda12", "Livraison sur Millau", "12 rue Droite", nil, 50, false, testNow)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("zero total rejected", func(t *testing.T) {
		_, err := order.NewOrder("@reda12", "Livraison sur Millau", "12 rue Droite", testItems(t), 0, false, testNow)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestOrder_Validate(t *testing.T) {
	var zero order.Order
	require.ErrorIs(t, zero.Validate(), order.ErrOrderIsNotConstructed)

	o, err := order.NewOrder("@reda12", "Livraison sur Millau", "12 rue Droite", testItems(t), 50, false, testNow)
	require.NoError(t, err)
	require.NoError(t, o.Validate())
}

func TestOrder_AssignID(t *testing.T) {
	o, err := order.NewOrder("@reda12", "Livraison sur Millau", "12 rue Droite", testItems(t), 50, false, testNow)
	require.NoError(t, err)

	require.NoError(t, o.AssignID(7))
	assert.Equal(t, int64(7), o.ID())

	require.ErrorIs(t, o.AssignID(8), order.ErrIDAlreadyAssigned)
}

func TestOrder_ApplyDiscount(t *testing.T) {
	o, err := order.NewOrder("@reda12", "Livraison sur Millau", "12 rue Droite", testItems(t), 50, false, testNow)
	require.NoError(t, err)

	require.NoError(t, o.ApplyDiscount(5))
	assert.InDelta(t, 5.0, o.Discount(), 0.001)
	assert.InDelta(t, 45.0, o.TotalCharged(), 0.001)

	t.Run("applied only once", func(t *testing.T) {
		require.ErrorIs(t, o.ApplyDiscount(3), order.ErrDiscountAlreadyApplied)
		assert.InDelta(t, 5.0, o.Discount(), 0.001)
	})

	t.Run("never negative", func(t *testing.T) {
		o2, err := order.NewOrder("@reda12", "Livraison sur Millau", "12 rue Droite", testItems(t), 50, false, testNow)
		require.NoError(t, err)
		require.Error(t, o2.ApplyDiscount(-1))
	})
}

func TestEtaBuckets_ReturnsACopy(t *testing.T) {
	buckets := order.EtaBuckets()
	assert.Equal(t, []int{15, 30, 45, 60}, buckets)

	buckets[0] = 5
	assert.Error(t, order.ValidateEta(5))
	assert.NoError(t, order.ValidateEta(15))
	assert.Equal(t, []int{15, 30, 45, 60}, order.EtaBuckets())
}

func TestValidateEta(t *testing.T) {
	for _, minutes := range []int{15, 30, 45, 60} {
		assert.NoError(t, order.ValidateEta(minutes))
	}
	for _, minutes := range []int{0, 10, 20, 90, -15} {
		assert.ErrorIs(t, order.ValidateEta(minutes), errs.ErrValueIsOutOfRange)
	}
}

func TestOrder_Lifecycle(t *testing.T) {
	later := testNow.Add(10 * time.Minute)

	t.Run("deferred order approval then full delivery", func(t *testing.T) {
		o, err := order.NewOrder("@newguy", "Livraison sur Millau", "12 rue Droite", testItems(t), 50, true, testNow)
		require.NoError(t, err)

		require.NoError(t, o.Approve(later))
		assert.Equal(t, order.Pending, o.Status())
		assert.Equal(t, later, o.UpdatedAt())

		require.NoError(t, o.StartDelivery(30, later))
		assert.Equal(t, order.EnRoute, o.Status())
		require.NotNil(t, o.EtaMinutes())
		assert.Equal(t, 30, *o.EtaMinutes())

		require.NoError(t, o.Complete(later))
		assert.Equal(t, order.Delivered, o.Status())
	})

	t.Run("eta outside buckets rejected", func(t *testing.T) {
		o, err := order.NewOrder("@reda12", "Livraison sur Millau", "12 rue Droite", testItems(t), 50, false, testNow)
		require.NoError(t, err)
		require.ErrorIs(t, o.StartDelivery(20, later), errs.ErrValueIsOutOfRange)
		assert.Equal(t, order.Pending, o.Status())
	})

	t.Run("complete before start is rejected", func(t *testing.T) {
		o, err := order.NewOrder("@reda12", "Livraison sur Millau", "12 rue Droite", testItems(t), 50, false, testNow)
		require.NoError(t, err)
		require.ErrorIs(t, o.Complete(later), order.ErrIllegalTransition)
	})

	t.Run("cancel is terminal", func(t *testing.T) {
		o, err := order.NewOrder("@reda12", "Livraison sur Millau", "12 rue Droite", testItems(t), 50, false, testNow)
		require.NoError(t, err)
		require.NoError(t, o.Cancel(later))
		require.ErrorIs(t, o.StartDelivery(15, later), order.ErrIllegalTransition)
		require.ErrorIs(t, o.Cancel(later), order.ErrIllegalTransition)
	})
}

func TestRestoreOrder(t *testing.T) {
	eta := 45
	o, err := order.RestoreOrder(12, "@reda12", "Livraison extérieure", "Lieu-dit Les Fonts",
		testItems(t), 70, 7, order.EnRoute, "exterieur", &eta, testNow, testNow)
	require.NoError(t, err)

	assert.Equal(t, int64(12), o.ID())
	assert.Equal(t, "exterieur", o.Zone())
	assert.InDelta(t, 63.0, o.TotalCharged(), 0.001)
	require.NoError(t, o.Validate())

	t.Run("invalid id rejected", func(t *testing.T) {
		_, err := order.RestoreOrder(0, "@reda12", "x", "y", testItems(t), 70, 0, order.Pending, "", nil, testNow, testNow)
		require.Error(t, err)
	})

	t.Run("invalid status rejected", func(t *testing.T) {
		_, err := order.RestoreOrder(12, "@reda12", "x", "y", testItems(t), 70, 0, order.Unknown, "", nil, testNow, testNow)
		require.Error(t, err)
	})
}

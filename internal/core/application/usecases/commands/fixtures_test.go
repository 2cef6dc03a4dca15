package commands_test

import (
	"testing"
	"time"

	"boutique/internal/core/domain/model/order"
	"boutique/internal/core/domain/services"

	"github.com/stretchr/testify/require"
)

const (
	testCourierID = "courier-centre"
	testZoneName  = "centre"
)

func testRouter(t *testing.T) *services.ZoneRouter {
	t.Helper()

	router, err := services.NewZoneRouter([]services.Zone{
		{Name: testZoneName, Keywords: []string{"livraison", "centre"}, CourierID: testCourierID},
		{Name: "nord", Keywords: []string{"nord"}, CourierID: ""},
	}, testZoneName)
	require.NoError(t, err)
	return router
}

func testItems(t *testing.T) []order.LineItem {
	t.Helper()

	item, err := order.NewLineItem(1, "Classique", "3.5g", 2, 25)
	require.NoError(t, err)
	return []order.LineItem{item}
}

// restoredOrder builds a persisted-looking order in the given status, the
// shape command handlers read back from the repository.
func restoredOrder(t *testing.T, id int64, customer string, status order.Status) *order.Order {
	t.Helper()

	var eta *int
	if status == order.EnRoute {
		minutes := 30
		eta = &minutes
	}

	created := time.Now().Add(-time.Hour)
	o, err := order.RestoreOrder(
		id, customer, "livraison centre", "12 rue des Lilas",
		testItems(t), 50, 0, status, testZoneName, eta, created, created,
	)
	require.NoError(t, err)
	return o
}

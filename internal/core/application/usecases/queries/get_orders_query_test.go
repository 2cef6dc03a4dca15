package queries_test

import (
	"testing"

	"boutique/internal/core/application/usecases/queries"
	"boutique/internal/core/domain/model/order"
	"boutique/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetOrdersQuery_Defaults(t *testing.T) {
	q, err := queries.NewGetOrdersQuery("", 0)
	require.NoError(t, err)
	assert.Equal(t, order.Unknown, q.Status())
	assert.Equal(t, 100, q.Limit())
	assert.NoError(t, q.Validate())
}

func TestNewGetOrdersQuery_StatusFilter(t *testing.T) {
	q, err := queries.NewGetOrdersQuery("en_route", 25)
	require.NoError(t, err)
	assert.Equal(t, order.EnRoute, q.Status())
	assert.Equal(t, 25, q.Limit())
}

func TestNewGetOrdersQuery_UnknownStatus(t *testing.T) {
	_, err := queries.NewGetOrdersQuery("shipped", 0)
	require.Error(t, err)
}

func TestNewGetOrdersQuery_LimitTooLarge(t *testing.T) {
	_, err := queries.NewGetOrdersQuery("", 10_000)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}

func TestGetOrdersQuery_ZeroValueFailsValidate(t *testing.T) {
	var q queries.GetOrdersQuery
	require.ErrorIs(t, q.Validate(), queries.ErrGetOrdersQueryIsNotConstructed)
}

func TestNewGetStockReportQuery_Defaults(t *testing.T) {
	q, err := queries.NewGetStockReportQuery(0)
	require.NoError(t, err)
	assert.Equal(t, 50, q.MovementsLimit())
	assert.NoError(t, q.Validate())
}

func TestNewGetStockReportQuery_LimitTooLarge(t *testing.T) {
	_, err := queries.NewGetStockReportQuery(501)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}

func TestNewGetLedgerQuery_Defaults(t *testing.T) {
	q, err := queries.NewGetLedgerQuery("", 0)
	require.NoError(t, err)
	assert.Empty(t, q.Category())
	assert.Equal(t, 100, q.Limit())
	assert.NoError(t, q.Validate())
}

func TestNewGetLedgerQuery_CategoryAndLimit(t *testing.T) {
	q, err := queries.NewGetLedgerQuery("encaissement", 25)
	require.NoError(t, err)
	assert.Equal(t, "encaissement", q.Category())
	assert.Equal(t, 25, q.Limit())
}

func TestNewGetLedgerQuery_LimitTooLarge(t *testing.T) {
	_, err := queries.NewGetLedgerQuery("", 501)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}

func TestGetLedgerQuery_ZeroValueFailsValidate(t *testing.T) {
	var q queries.GetLedgerQuery
	require.ErrorIs(t, q.Validate(), queries.ErrGetLedgerQueryIsNotConstructed)
}

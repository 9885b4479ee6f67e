package ledger_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackyeh168/loyalty_crm/src/internal/domain/customer"
	"github.com/jackyeh168/loyalty_crm/src/internal/domain/ledger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAdapter struct {
	name string
	txs  []*ledger.Transaction
	err  error
}

func (s *stubAdapter) Name() string { return s.name }

func (s *stubAdapter) ListCompletedTransactions(ctx context.Context, customerID customer.CustomerID) ([]*ledger.Transaction, error) {
	return s.txs, s.err
}

func mustTx(t *testing.T, cid customer.CustomerID, amount string, source ledger.Source, ref string, status ledger.Status) *ledger.Transaction {
	t.Helper()
	tx, err := ledger.NewTransaction(cid, decimal.RequireFromString(amount), source, ref, status, time.Time{})
	require.NoError(t, err)
	return tx
}

func TestSpendAggregator_NoTransactions_ReturnsZero(t *testing.T) {
	agg := ledger.NewSpendAggregator(&stubAdapter{name: "native"})

	total, err := agg.CalculateTotalSpend(context.Background(), customer.NewCustomerID())

	require.NoError(t, err)
	assert.True(t, total.IsZero())
}

func TestSpendAggregator_OnlyCompletedCount(t *testing.T) {
	cid := customer.NewCustomerID()
	agg := ledger.NewSpendAggregator(&stubAdapter{name: "native", txs: []*ledger.Transaction{
		mustTx(t, cid, "100", ledger.SourceManual, "A", ledger.StatusCompleted),
		mustTx(t, cid, "200", ledger.SourceManual, "B", ledger.StatusPending),
		mustTx(t, cid, "300", ledger.SourceManual, "C", ledger.StatusRefunded),
		mustTx(t, cid, "400", ledger.SourceManual, "D", ledger.StatusCancelled),
		mustTx(t, cid, "50.25", ledger.SourceManual, "E", ledger.StatusCompleted),
	}})

	total, err := agg.CalculateTotalSpend(context.Background(), cid)

	require.NoError(t, err)
	assert.Equal(t, "150.25", total.String())
}

// 同一筆外部銷售被多個來源回報時只計一次，重複回報的次數不影響結果
func TestSpendAggregator_DeduplicatesAcrossSources(t *testing.T) {
	cid := customer.NewCustomerID()
	native := &stubAdapter{name: "native", txs: []*ledger.Transaction{
		mustTx(t, cid, "750", ledger.SourceManual, "ORD-1", ledger.StatusCompleted),
		mustTx(t, cid, "120", ledger.SourceStorefront, "#1001", ledger.StatusCompleted),
	}}
	storefront := &stubAdapter{name: "storefront", txs: []*ledger.Transaction{
		mustTx(t, cid, "120", ledger.SourceStorefront, "#1001", ledger.StatusCompleted),
		mustTx(t, cid, "80", ledger.SourceStorefront, "#1002", ledger.StatusCompleted),
	}}
	pos := &stubAdapter{name: "pos", txs: []*ledger.Transaction{
		mustTx(t, cid, "750", ledger.SourcePOSTerminal, "ORD-1", ledger.StatusCompleted),
	}}

	once, err := ledger.NewSpendAggregator(native, storefront, pos).CalculateTotalSpend(context.Background(), cid)
	require.NoError(t, err)
	assert.Equal(t, "950.00", once.String())

	twice, err := ledger.NewSpendAggregator(native, storefront, pos, storefront, native).CalculateTotalSpend(context.Background(), cid)
	require.NoError(t, err)
	assert.True(t, once.Equals(twice))
}

func TestSpendAggregator_DedupFirstAdapterWins(t *testing.T) {
	cid := customer.NewCustomerID()
	first := &stubAdapter{name: "first", txs: []*ledger.Transaction{
		mustTx(t, cid, "100", ledger.SourceManual, "X", ledger.StatusCompleted),
	}}
	second := &stubAdapter{name: "second", txs: []*ledger.Transaction{
		mustTx(t, cid, "999", ledger.SourcePOSTerminal, "X", ledger.StatusCompleted),
	}}

	total, err := ledger.NewSpendAggregator(first, second).CalculateTotalSpend(context.Background(), cid)

	require.NoError(t, err)
	assert.Equal(t, "100.00", total.String())
}

func TestSpendAggregator_PropagatesSourceError(t *testing.T) {
	boom := errors.New("connection refused")
	agg := ledger.NewSpendAggregator(
		&stubAdapter{name: "native"},
		&stubAdapter{name: "pos", err: boom},
	)

	_, err := agg.CalculateTotalSpend(context.Background(), customer.NewCustomerID())

	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "pos")
	assert.Equal(t, []string{"native", "pos"}, agg.Sources())
}

func TestSumCompleted_PendingDuplicateDoesNotShadowCompleted(t *testing.T) {
	cid := customer.NewCustomerID()

	total := ledger.SumCompleted([]*ledger.Transaction{
		mustTx(t, cid, "40", ledger.SourceStorefront, "#7", ledger.StatusPending),
		mustTx(t, cid, "40", ledger.SourcePOSTerminal, "#7", ledger.StatusCompleted),
		nil,
	})

	assert.Equal(t, "40.00", total.String())
}

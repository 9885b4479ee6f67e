package ledger_test

import (
	"testing"
	"time"

	"github.com/jackyeh168/loyalty_crm/src/internal/domain/customer"
	"github.com/jackyeh168/loyalty_crm/src/internal/domain/ledger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTransaction_Success(t *testing.T) {
	customerID := customer.NewCustomerID()
	occurred := time.Date(2026, 2, 14, 18, 30, 0, 0, time.UTC)

	tx, err := ledger.NewTransaction(customerID, decimal.RequireFromString("750"), ledger.SourceManual, " ORD-1 ", ledger.StatusCompleted, occurred)

	require.NoError(t, err)
	assert.False(t, tx.ID().IsEmpty())
	assert.True(t, tx.CustomerID().Equals(customerID))
	assert.Equal(t, "750.00", tx.Amount().String())
	assert.Equal(t, "ORD-1", tx.ReferenceID())
	assert.Equal(t, ledger.SourceManual, tx.Source())
	assert.Equal(t, occurred, tx.OccurredAt())
}

func TestNewTransaction_RejectsInvalidInput(t *testing.T) {
	customerID := customer.NewCustomerID()

	tests := []struct {
		name   string
		cid    customer.CustomerID
		amount string
		source ledger.Source
		ref    string
		status ledger.Status
		want   error
	}{
		{"零元", customerID, "0", ledger.SourceManual, "R1", ledger.StatusCompleted, ledger.ErrInvalidAmount},
		{"負數", customerID, "-10", ledger.SourceManual, "R1", ledger.StatusCompleted, ledger.ErrInvalidAmount},
		{"超過兩位小數", customerID, "0.004", ledger.SourceManual, "R1", ledger.StatusCompleted, ledger.ErrInvalidAmount},
		{"三位小數非零", customerID, "19.995", ledger.SourceManual, "R1", ledger.StatusCompleted, ledger.ErrInvalidAmount},
		{"空參考編號", customerID, "10", ledger.SourceManual, "  ", ledger.StatusCompleted, ledger.ErrInvalidReference},
		{"未知來源", customerID, "10", ledger.Source("fax"), "R1", ledger.StatusCompleted, ledger.ErrInvalidSource},
		{"未知狀態", customerID, "10", ledger.SourceManual, "R1", ledger.Status("lost"), ledger.ErrInvalidStatus},
		{"缺少顧客", customer.CustomerID{}, "10", ledger.SourceManual, "R1", ledger.StatusCompleted, customer.ErrInvalidCustomerID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ledger.NewTransaction(tt.cid, decimal.RequireFromString(tt.amount), tt.source, tt.ref, tt.status, time.Time{})
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestNewTransaction_NormalisesAmountScaleSourceAndStatus(t *testing.T) {
	// Test 1: 尾端為零的小數位數可以接受
	tx, err := ledger.NewTransaction(customer.NewCustomerID(), decimal.RequireFromString("12.500"), ledger.SourceManual, "R1", ledger.StatusCompleted, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, "12.50", tx.Amount().String())

	// Test 2: 來源與狀態儲存正規化後的值
	tx, err = ledger.NewTransaction(customer.NewCustomerID(), decimal.NewFromInt(10), ledger.Source(" MANUAL "), "R2", ledger.Status("Completed"), time.Time{})
	require.NoError(t, err)
	assert.Equal(t, ledger.SourceManual, tx.Source())
	assert.Equal(t, ledger.StatusCompleted, tx.Status())
	assert.True(t, tx.Status().CountsTowardSpend())
}

func TestTransaction_StatusTransitions(t *testing.T) {
	newTx := func(status ledger.Status) *ledger.Transaction {
		tx, err := ledger.NewTransaction(customer.NewCustomerID(), decimal.NewFromInt(100), ledger.SourcePOSTerminal, "S-1", status, time.Time{})
		require.NoError(t, err)
		return tx
	}

	t.Run("已完成可退款", func(t *testing.T) {
		tx := newTx(ledger.StatusCompleted)
		require.NoError(t, tx.Refund())
		assert.Equal(t, ledger.StatusRefunded, tx.Status())
		assert.ErrorIs(t, tx.Refund(), ledger.ErrInvalidTransition)
	})

	t.Run("待處理不可退款", func(t *testing.T) {
		tx := newTx(ledger.StatusPending)
		assert.ErrorIs(t, tx.Refund(), ledger.ErrInvalidTransition)
	})

	t.Run("待處理可完成或取消", func(t *testing.T) {
		tx := newTx(ledger.StatusPending)
		require.NoError(t, tx.Complete())
		assert.Equal(t, ledger.StatusCompleted, tx.Status())
		assert.ErrorIs(t, tx.Cancel(), ledger.ErrInvalidTransition)

		tx = newTx(ledger.StatusPending)
		require.NoError(t, tx.Cancel())
		assert.Equal(t, ledger.StatusCancelled, tx.Status())
	})
}

func TestParseSourceAndStatus(t *testing.T) {
	src, err := ledger.ParseSource("POS-Terminal")
	require.NoError(t, err)
	assert.Equal(t, ledger.SourcePOSTerminal, src)

	_, err = ledger.ParseSource("shopify")
	assert.ErrorIs(t, err, ledger.ErrInvalidSource)

	st, err := ledger.ParseStatus("partially_refunded")
	require.NoError(t, err)
	assert.False(t, st.CountsTowardSpend())
	assert.True(t, ledger.StatusCompleted.CountsTowardSpend())
}

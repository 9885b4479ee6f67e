package adapters

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jackyeh168/loyalty_crm/src/internal/domain/customer"
	"github.com/jackyeh168/loyalty_crm/src/internal/domain/ledger"
	"github.com/jackyeh168/loyalty_crm/src/internal/domain/shared"
	"github.com/jackyeh168/loyalty_crm/src/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func serve(t *testing.T, wantPath string, status int, body string, check func(r *http.Request)) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, wantPath, r.URL.Path)
		if check != nil {
			check(r)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

const storefrontOrders = `{"orders":[
	{"id":1,"name":"#1001","total_price":"199.00","financial_status":"paid","cancelled_at":null,"created_at":"2026-03-01T10:00:00Z"},
	{"id":2,"name":"#1002","total_price":"50.00","financial_status":"pending","cancelled_at":null},
	{"id":3,"name":"#1003","total_price":"75.00","financial_status":"paid","cancelled_at":"2026-03-02T10:00:00Z"},
	{"id":4,"name":"","total_price":"20.00","financial_status":"voided","cancelled_at":null},
	{"id":5,"name":"#1005","total_price":"30.00","financial_status":"partially_refunded"}
]}`

func TestStorefrontAdapter_ParsesOrders(t *testing.T) {
	customerID := customer.NewCustomerID()
	srv := serve(t, "/customers/"+customerID.String()+"/orders.json", http.StatusOK, storefrontOrders, func(r *http.Request) {
		assert.Equal(t, "shop-token", r.Header.Get(StorefrontAccessTokenHeader))
	})

	a := NewStorefrontAdapter(config.EndpointConfig{BaseURL: srv.URL + "/", Token: "shop-token"}, time.Second, zap.NewNop(), nil)
	txs, err := a.ListCompletedTransactions(context.Background(), customerID)

	require.NoError(t, err)
	require.Len(t, txs, 5)

	tests := []struct {
		ref    string
		status ledger.Status
	}{
		{"#1001", ledger.StatusCompleted},
		{"#1002", ledger.StatusPending},
		{"#1003", ledger.StatusCancelled},
		{"4", ledger.StatusCancelled},
		{"#1005", ledger.StatusPartiallyRefunded},
	}
	for i, tt := range tests {
		assert.Equal(t, tt.ref, txs[i].ReferenceID())
		assert.Equal(t, tt.status, txs[i].Status(), tt.ref)
		assert.Equal(t, ledger.SourceStorefront, txs[i].Source())
	}
	assert.Equal(t, time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC), txs[0].OccurredAt().UTC())
	assert.Equal(t, "199.00", ledger.SumCompleted(txs).String())
}

func TestStorefrontAdapter_NotFoundIsEmpty(t *testing.T) {
	customerID := customer.NewCustomerID()
	srv := serve(t, "/customers/"+customerID.String()+"/orders.json", http.StatusNotFound, `{"errors":"Not Found"}`, nil)

	a := NewStorefrontAdapter(config.EndpointConfig{BaseURL: srv.URL}, time.Second, zap.NewNop(), nil)
	txs, err := a.ListCompletedTransactions(context.Background(), customerID)

	require.NoError(t, err)
	assert.Empty(t, txs)
}

func TestStorefrontAdapter_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{"伺服器錯誤", http.StatusBadGateway, `{}`, ledger.ErrSourceUnavailable},
		{"格式錯誤", http.StatusOK, `{"orders":`, ledger.ErrSourcePayloadInvalid},
		{"orders 不是陣列", http.StatusOK, `{"orders":{}}`, ledger.ErrSourcePayloadInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			customerID := customer.NewCustomerID()
			srv := serve(t, "/customers/"+customerID.String()+"/orders.json", tt.status, tt.body, nil)

			a := NewStorefrontAdapter(config.EndpointConfig{BaseURL: srv.URL}, time.Second, zap.NewNop(), nil)
			_, err := a.ListCompletedTransactions(context.Background(), customerID)

			assert.ErrorIs(t, err, tt.want)
		})
	}
}

type recordingSkips struct {
	reasons map[string]int
}

func (r *recordingSkips) RecordSkipped(source, reason string) {
	if r.reasons == nil {
		r.reasons = map[string]int{}
	}
	r.reasons[source+"/"+reason]++
}

// 單筆壞資料只略過該筆，其餘訂單照常計算
func TestStorefrontAdapter_SkipsBadOrders(t *testing.T) {
	// Arrange
	customerID := customer.NewCustomerID()
	body := `{"orders":[
		{"name":"#1001","total_price":"120.00","financial_status":"paid"},
		{"name":"#1002","total_price":"0.00","financial_status":"paid"},
		{"name":"#1003","total_price":"80.00","financial_status":"expired"},
		{"name":"#1004","total_price":"n/a","financial_status":"paid"},
		{"name":"#1005","total_price":"30.00","financial_status":"paid","created_at":"yesterday"}
	]}`
	srv := serve(t, "/customers/"+customerID.String()+"/orders.json", http.StatusOK, body, nil)
	core, logs := observer.New(zap.WarnLevel)
	skips := &recordingSkips{}
	a := NewStorefrontAdapter(config.EndpointConfig{BaseURL: srv.URL}, time.Second, zap.New(core), skips)

	// Act
	txs, err := a.ListCompletedTransactions(context.Background(), customerID)

	// Assert
	require.NoError(t, err)
	require.Len(t, txs, 3)
	assert.Equal(t, "#1001", txs[0].ReferenceID())
	assert.Equal(t, "#1003", txs[1].ReferenceID())
	assert.Equal(t, ledger.StatusFailed, txs[1].Status())
	assert.Equal(t, "#1005", txs[2].ReferenceID())
	assert.False(t, txs[2].OccurredAt().IsZero())
	assert.Equal(t, "150.00", ledger.SumCompleted(txs).String())

	assert.Equal(t, map[string]int{
		"storefront/invalid_amount":    2,
		"storefront/unknown_status":    1,
		"storefront/invalid_timestamp": 1,
	}, skips.reasons)
	assert.Equal(t, 4, logs.Len())
	assert.Equal(t, 2, logs.FilterMessage("record skipped").Len())
	assert.Equal(t, "#1002", logs.FilterMessage("record skipped").All()[0].ContextMap()["reference_id"])
}

func TestStorefrontAdapter_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	a := NewStorefrontAdapter(config.EndpointConfig{BaseURL: url}, time.Second, zap.NewNop(), nil)
	_, err := a.ListCompletedTransactions(context.Background(), customer.NewCustomerID())

	assert.ErrorIs(t, err, ledger.ErrSourceUnavailable)
	assert.Equal(t, shared.KindInternal, shared.KindOf(err))
}

func TestPOSAdapter_ParsesSales(t *testing.T) {
	customerID := customer.NewCustomerID()
	body := `{"data":[
		{"sale_id":"S-1","reference":"POS-0001","total":"250.00","status":"completed"},
		{"sale_id":"S-2","reference":"","total":99.5,"status":"voided"},
		{"sale_id":"S-3","reference":"POS-0003","total":"10","status":"REFUNDED"}
	]}`
	srv := serve(t, "/customers/"+customerID.String()+"/sales", http.StatusOK, body, func(r *http.Request) {
		assert.Equal(t, "Bearer pos-token", r.Header.Get("Authorization"))
	})

	a := NewPOSAdapter(config.EndpointConfig{BaseURL: srv.URL, Token: "pos-token"}, time.Second, zap.NewNop(), nil)
	txs, err := a.ListCompletedTransactions(context.Background(), customerID)

	require.NoError(t, err)
	require.Len(t, txs, 3)
	assert.Equal(t, "POS-0001", txs[0].ReferenceID())
	assert.Equal(t, "S-2", txs[1].ReferenceID())
	assert.Equal(t, ledger.StatusCancelled, txs[1].Status())
	assert.Equal(t, "99.50", txs[1].Amount().String())
	assert.Equal(t, ledger.StatusRefunded, txs[2].Status())
	assert.Equal(t, ledger.SourcePOSTerminal, txs[0].Source())
}

func TestPOSAdapter_InvalidPayload(t *testing.T) {
	customerID := customer.NewCustomerID()
	srv := serve(t, "/customers/"+customerID.String()+"/sales", http.StatusOK, `{"sales":[]}`, nil)

	a := NewPOSAdapter(config.EndpointConfig{BaseURL: srv.URL}, time.Second, zap.NewNop(), nil)
	_, err := a.ListCompletedTransactions(context.Background(), customerID)

	assert.ErrorIs(t, err, ledger.ErrSourcePayloadInvalid)
}

func TestPOSAdapter_SkipsBadSales(t *testing.T) {
	customerID := customer.NewCustomerID()
	body := `{"data":[
		{"reference":"POS-1","total":"250.00","status":"completed"},
		{"reference":"POS-2","total":"0","status":"completed"},
		{"reference":"POS-3","total":"40.00","status":"on_hold"},
		{"reference":"","sale_id":"","total":"10.00","status":"completed"}
	]}`
	srv := serve(t, "/customers/"+customerID.String()+"/sales", http.StatusOK, body, nil)
	skips := &recordingSkips{}
	a := NewPOSAdapter(config.EndpointConfig{BaseURL: srv.URL}, time.Second, nil, skips)

	txs, err := a.ListCompletedTransactions(context.Background(), customerID)

	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, ledger.StatusFailed, txs[1].Status())
	assert.Equal(t, "250.00", ledger.SumCompleted(txs).String())
	assert.Equal(t, map[string]int{
		"pos-terminal/invalid_amount": 1,
		"pos-terminal/unknown_status": 1,
		"pos-terminal/invalid_record": 1,
	}, skips.reasons)
}

func TestAggregator_DedupAcrossSources(t *testing.T) {
	customerID := customer.NewCustomerID()
	storefront := serve(t, "/customers/"+customerID.String()+"/orders.json", http.StatusOK,
		`{"orders":[{"name":"SHARED-1","total_price":"100.00","financial_status":"paid"},{"name":"WEB-2","total_price":"40.00","financial_status":"paid"}]}`, nil)
	pos := serve(t, "/customers/"+customerID.String()+"/sales", http.StatusOK,
		`{"data":[{"reference":"SHARED-1","total":"100.00","status":"completed"},{"reference":"POS-3","total":"60.00","status":"completed"}]}`, nil)

	cfg := config.AdaptersConfig{
		Storefront: config.EndpointConfig{BaseURL: storefront.URL},
		POS:        config.EndpointConfig{BaseURL: pos.URL},
		Timeout:    time.Second,
	}
	sources := FromConfig(cfg, NewNativeLedgerAdapter(emptyLedger{}), zap.NewNop(), nil)
	require.Len(t, sources, 3)

	agg := ledger.NewSpendAggregator(sources...)
	total, err := agg.CalculateTotalSpend(context.Background(), customerID)
	require.NoError(t, err)
	assert.Equal(t, "200.00", total.String())

	again, err := agg.CalculateTotalSpend(context.Background(), customerID)
	require.NoError(t, err)
	assert.True(t, total.Equals(again))
}

func TestFromConfig_OnlyNativeByDefault(t *testing.T) {
	sources := FromConfig(config.AdaptersConfig{}, NewNativeLedgerAdapter(emptyLedger{}), zap.NewNop(), nil)

	require.Len(t, sources, 1)
	assert.Equal(t, "native", sources[0].Name())
}

type emptyLedger struct{ ledger.Repository }

func (emptyLedger) ListByCustomer(ctx shared.TransactionContext, id customer.CustomerID) ([]*ledger.Transaction, error) {
	return nil, nil
}

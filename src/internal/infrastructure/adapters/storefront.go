package adapters

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jackyeh168/loyalty_crm/src/internal/domain/customer"
	"github.com/jackyeh168/loyalty_crm/src/internal/domain/ledger"
	"github.com/jackyeh168/loyalty_crm/src/internal/infrastructure/config"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// StorefrontAccessTokenHeader 電商平台 API 的認證標頭
const StorefrontAccessTokenHeader = "X-Storefront-Access-Token"

// storefrontStatuses financial_status → 交易狀態
var storefrontStatuses = map[string]ledger.Status{
	"paid":               ledger.StatusCompleted,
	"pending":            ledger.StatusPending,
	"authorized":         ledger.StatusPending,
	"partially_paid":     ledger.StatusPending,
	"refunded":           ledger.StatusRefunded,
	"partially_refunded": ledger.StatusPartiallyRefunded,
	"voided":             ledger.StatusCancelled,
}

// StorefrontAdapter 電商平台訂單
//
//	GET {base}/customers/{id}/orders.json
//	{"orders":[{"id":450789469,"name":"#1001","total_price":"199.00","financial_status":"paid","cancelled_at":null}]}
type StorefrontAdapter struct {
	src     httpSource
	records recordNormalizer
}

// NewStorefrontAdapter 建構函數
func NewStorefrontAdapter(endpoint config.EndpointConfig, timeout time.Duration, log *zap.Logger, skips SkipObserver) *StorefrontAdapter {
	token := endpoint.Token
	return &StorefrontAdapter{
		src: newHTTPSource(ledger.SourceStorefront.String(), endpoint, timeout, func(req *http.Request) {
			if token != "" {
				req.Header.Set(StorefrontAccessTokenHeader, token)
			}
		}),
		records: newRecordNormalizer(ledger.SourceStorefront, log, skips),
	}
}

func (a *StorefrontAdapter) Name() string { return ledger.SourceStorefront.String() }

// ListCompletedTransactions 整份回應無法解析時返回 ErrSourcePayloadInvalid；單筆訂單有問題只略過該筆
func (a *StorefrontAdapter) ListCompletedTransactions(ctx context.Context, customerID customer.CustomerID) ([]*ledger.Transaction, error) {
	body, found, err := a.src.get(ctx, "/customers/"+url.PathEscape(customerID.String())+"/orders.json")
	if err != nil || !found {
		return nil, err
	}
	if !gjson.ValidBytes(body) {
		return nil, ledger.ErrSourcePayloadInvalid.WithContext("source", a.Name(), "reason", "malformed json")
	}

	orders := gjson.GetBytes(body, "orders")
	if !orders.IsArray() {
		return nil, ledger.ErrSourcePayloadInvalid.WithContext("source", a.Name(), "reason", "orders is not an array")
	}

	var txs []*ledger.Transaction
	for i, order := range orders.Array() {
		if tx, ok := a.records.normalize(customerID, i, parseOrder(order)); ok {
			txs = append(txs, tx)
		}
	}
	return txs, nil
}

func parseOrder(order gjson.Result) externalRecord {
	reference := strings.TrimSpace(order.Get("name").String())
	if reference == "" {
		reference = order.Get("id").String()
	}

	financial := strings.ToLower(strings.TrimSpace(order.Get("financial_status").String()))
	status, known := storefrontStatuses[financial]
	if cancelled := order.Get("cancelled_at"); cancelled.Exists() && cancelled.Type != gjson.Null && cancelled.String() != "" {
		status, known = ledger.StatusCancelled, true
	}

	return externalRecord{
		reference:  reference,
		status:     financial,
		mapped:     status,
		known:      known,
		amount:     order.Get("total_price").String(),
		occurredAt: order.Get("created_at").String(),
	}
}

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

// POSAdapter 門市 POS 終端銷售
//
//	GET {base}/customers/{id}/sales
//	{"data":[{"sale_id":"S-1","reference":"POS-0001","total":"250.00","status":"completed"}]}
type POSAdapter struct {
	src     httpSource
	records recordNormalizer
}

// NewPOSAdapter 建構函數（Token 以 Bearer 傳送）
func NewPOSAdapter(endpoint config.EndpointConfig, timeout time.Duration, log *zap.Logger, skips SkipObserver) *POSAdapter {
	token := endpoint.Token
	return &POSAdapter{
		src: newHTTPSource(ledger.SourcePOSTerminal.String(), endpoint, timeout, func(req *http.Request) {
			if token != "" {
				req.Header.Set("Authorization", "Bearer "+token)
			}
		}),
		records: newRecordNormalizer(ledger.SourcePOSTerminal, log, skips),
	}
}

func (a *POSAdapter) Name() string { return ledger.SourcePOSTerminal.String() }

func (a *POSAdapter) ListCompletedTransactions(ctx context.Context, customerID customer.CustomerID) ([]*ledger.Transaction, error) {
	body, found, err := a.src.get(ctx, "/customers/"+url.PathEscape(customerID.String())+"/sales")
	if err != nil || !found {
		return nil, err
	}

	sales := gjson.GetBytes(body, "data")
	if !gjson.ValidBytes(body) || !sales.IsArray() {
		return nil, ledger.ErrSourcePayloadInvalid.WithContext("source", a.Name(), "reason", "data is not an array")
	}

	var txs []*ledger.Transaction
	for i, sale := range sales.Array() {
		if tx, ok := a.records.normalize(customerID, i, parseSale(sale)); ok {
			txs = append(txs, tx)
		}
	}
	return txs, nil
}

func parseSale(sale gjson.Result) externalRecord {
	reference := strings.TrimSpace(sale.Get("reference").String())
	if reference == "" {
		reference = sale.Get("sale_id").String()
	}

	raw := strings.ToLower(strings.TrimSpace(sale.Get("status").String()))
	mapped := raw
	if mapped == "voided" {
		mapped = ledger.StatusCancelled.String()
	}
	status, err := ledger.ParseStatus(mapped)

	return externalRecord{
		reference:  reference,
		status:     raw,
		mapped:     status,
		known:      err == nil,
		amount:     sale.Get("total").String(),
		occurredAt: sale.Get("sold_at").String(),
	}
}

package adapters

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jackyeh168/loyalty_crm/src/internal/domain/ledger"
	"github.com/jackyeh168/loyalty_crm/src/internal/infrastructure/config"
)

// maxPayloadBytes 單次回應的讀取上限
const maxPayloadBytes = 8 << 20

// httpSource 外部來源共用的 HTTP 呼叫（單次請求、不重試）
type httpSource struct {
	name    string
	baseURL string
	client  *http.Client
	auth    func(req *http.Request)
}

func newHTTPSource(name string, endpoint config.EndpointConfig, timeout time.Duration, auth func(req *http.Request)) httpSource {
	return httpSource{
		name:    name,
		baseURL: strings.TrimRight(endpoint.BaseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		auth:    auth,
	}
}

// get 返回回應本文；404 視為顧客在該來源沒有資料（found = false）
func (s httpSource) get(ctx context.Context, path string) (body []byte, found bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+path, nil)
	if err != nil {
		return nil, false, fmt.Errorf("build %s request: %w", s.name, err)
	}
	req.Header.Set("Accept", "application/json")
	if s.auth != nil {
		s.auth(req)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %w", ledger.ErrSourceUnavailable.WithContext("source", s.name), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, false, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, false, ledger.ErrSourceUnavailable.WithContext("source", s.name, "status", resp.StatusCode)
	}

	body, err = io.ReadAll(io.LimitReader(resp.Body, maxPayloadBytes))
	if err != nil {
		return nil, false, fmt.Errorf("%w: %w", ledger.ErrSourceUnavailable.WithContext("source", s.name), err)
	}
	return body, true, nil
}

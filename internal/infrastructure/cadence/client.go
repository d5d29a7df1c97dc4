package cadence

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"github.com/aravind238/funding-sub001/internal/infrastructure/config"
)

// reconciliationPath is the Cadence endpoint listing invoices already
// purchased for a client
const reconciliationPath = "api/v1/cadence/getClientDebtorInvoices"

// maxResponseSize caps the Cadence response body (10MB)
const maxResponseSize = 10 * 1024 * 1024

// Client fetches reference data from the Cadence system of record over
// HTTP. Cadence holds the authoritative purchased-invoice ledger; this
// client is read-only.
type Client struct {
	cfg        config.CadenceConfig
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a Cadence client. The configured timeout bounds every
// call; validation requests block on this lookup, so it must stay short.
func NewClient(cfg config.CadenceConfig, logger *zap.Logger) *Client {
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
	}
}

// reconciliationRequest is the wire shape of the purchased-invoice lookup.
// Debtors and invoice numbers scope the lookup to the batch being
// validated so Cadence does not return the client's whole ledger.
type reconciliationRequest struct {
	ClientKey int64    `json:"clientKey"`
	Debtors   []int64  `json:"debtors"`
	Invoices  []string `json:"invoices"`
}

// reconciliationResponse carries "refKey|InvoiceNumber" membership tokens
type reconciliationResponse struct {
	Invoices []string `json:"invoices"`
}

// PurchasedInvoices returns the membership set of invoices Cadence has
// already purchased, keyed "refKey|InvoiceNumber" with the number in its
// original case.
func (c *Client) PurchasedInvoices(ctx context.Context, clientRefKey int64, debtorRefKeys []int64, invoiceNumbers []string) (map[string]struct{}, error) {
	endpoint, err := url.JoinPath(c.cfg.BaseURL, reconciliationPath)
	if err != nil {
		return nil, fmt.Errorf("cadence: building url: %w", err)
	}

	payload, err := json.Marshal(reconciliationRequest{
		ClientKey: clientRefKey,
		Debtors:   debtorRefKeys,
		Invoices:  invoiceNumbers,
	})
	if err != nil {
		return nil, fmt.Errorf("cadence: encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("cadence: building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.cfg.APIKey != "" {
		req.Header.Set("X-Api-Key", c.cfg.APIKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cadence: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseSize))
		return nil, fmt.Errorf("cadence: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("cadence: reading response: %w", err)
	}

	var parsed reconciliationResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("cadence: decoding response: %w", err)
	}

	purchased := make(map[string]struct{}, len(parsed.Invoices))
	for _, token := range parsed.Invoices {
		purchased[token] = struct{}{}
	}

	c.logger.Debug("cadence purchased invoices fetched",
		zap.Int64("client_ref_key", clientRefKey),
		zap.Int("count", len(purchased)),
	)
	return purchased, nil
}

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"smartsub/internal/config"
	"time"
)

// PayoutClient moves withdrawn funds out to a creator's address through the
// wallet gateway. The ledger debit must already be in place when Transfer is
// called; a Transfer error aborts the surrounding transaction.
type PayoutClient interface {
	Transfer(ctx context.Context, toAddress string, amountWei uint64, reference string) error
}

type payoutClientImpl struct {
	httpClient *http.Client
	baseApiURL string
	apiKey     string
}

func NewPayoutClient(payoutCfg *config.Payout) PayoutClient {
	return &payoutClientImpl{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseApiURL: payoutCfg.BaseAPIURL,
		apiKey:     payoutCfg.APIKey,
	}
}

func (c *payoutClientImpl) Transfer(ctx context.Context, toAddress string, amountWei uint64, reference string) error {
	payload := map[string]interface{}{
		"to_address": toAddress,
		"amount_wei": amountWei,
		"reference":  reference, // idempotency key, one per withdrawal
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal req payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST",
		c.baseApiURL+"/v1/transfers",
		bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("http new request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("wallet gateway transfer failed: status %d, body %s", resp.StatusCode, string(respBody))
	}

	return nil
}

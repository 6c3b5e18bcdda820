package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/xssnick/tonutils-go/address"
)

// Token is a ledger-side token record.
type Token struct {
	ID       string `json:"id"`
	Metadata string `json:"metadata"`
}

// Client is the boundary to the external ledger contract. Mint assigns the
// token identifier; this service never invents one locally.
type Client interface {
	// IssueToken mints a token for the owner and returns the ledger id.
	// Fails when the owner has no verified ledger session or the ledger is
	// unreachable; no internal retry.
	IssueToken(ctx context.Context, ownerAddress, metadata string) (string, error)
	// ListTokens returns every token minted for the owner.
	ListTokens(ctx context.Context, ownerAddress string) ([]Token, error)
}

// HTTPClient talks to the ledger gateway over HTTP.
type HTTPClient struct {
	baseURL    string
	apiToken   string
	network    string
	httpClient *http.Client
}

func NewHTTPClient(baseURL, apiToken, network string, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = 8 * time.Second
	}
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiToken:   apiToken,
		network:    network,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type mintRequest struct {
	AccountID string `json:"account_id"`
	Metadata  string `json:"metadata"`
	Network   string `json:"network,omitempty"`
}

type mintResponse struct {
	TokenID string `json:"token_id"`
}

func (c *HTTPClient) IssueToken(ctx context.Context, ownerAddress, metadata string) (string, error) {
	normalized, err := normalizeAddress(ownerAddress)
	if err != nil {
		return "", err
	}

	body, err := json.Marshal(mintRequest{AccountID: normalized, Metadata: metadata, Network: c.network})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/tokens/mint", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("ledger mint request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("ledger mint http %d", resp.StatusCode)
	}

	var out mintResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("ledger mint response: %w", err)
	}
	if out.TokenID == "" {
		return "", fmt.Errorf("ledger mint returned empty token id")
	}
	return out.TokenID, nil
}

func (c *HTTPClient) ListTokens(ctx context.Context, ownerAddress string) ([]Token, error) {
	normalized, err := normalizeAddress(ownerAddress)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/tokens/"+normalized, nil)
	if err != nil {
		return nil, err
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ledger list request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ledger list http %d", resp.StatusCode)
	}

	var out struct {
		Tokens []Token `json:"tokens"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("ledger list response: %w", err)
	}
	return out.Tokens, nil
}

func (c *HTTPClient) setHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	if c.apiToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiToken)
	}
}

// normalizeAddress parses the owner address and re-renders it in the
// canonical bounceable form the ledger gateway expects.
func normalizeAddress(raw string) (string, error) {
	addr, err := address.ParseAddr(raw)
	if err != nil {
		return "", fmt.Errorf("invalid ledger address %q: %w", raw, err)
	}
	return addr.String(), nil
}

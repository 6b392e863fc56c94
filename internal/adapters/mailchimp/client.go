package mailchimp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"conferencesite/internal/domain"
)

const (
	memberExistsTitle = "Member Exists"
	maxErrorBody      = 64 << 10
)

// Config holds the Mailchimp API settings. BaseURL overrides the endpoint derived
// from the API key's data center suffix (e.g. "…-us6").
type Config struct {
	APIKey  string
	BaseURL string
}

type client struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewClient returns a MailingListSubscriber backed by the Mailchimp Marketing API v3.
func NewClient(cfg Config, httpClient *http.Client) domain.MailingListSubscriber {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &client{
		apiKey:  cfg.APIKey,
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		client:  httpClient,
	}
}

type memberRequest struct {
	EmailAddress string            `json:"email_address"`
	Status       string            `json:"status"`
	MergeFields  map[string]string `json:"merge_fields,omitempty"`
}

// apiError is Mailchimp's problem-details error body.
type apiError struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail"`
}

// Subscribe adds req.Email to the list. With double opt-in disabled the member is
// created as "subscribed", otherwise as "pending".
func (c *client) Subscribe(ctx context.Context, listID string, req domain.SubscribeRequest) error {
	if c.apiKey == "" {
		return fmt.Errorf("%w: api key is not configured", domain.ErrMailingList)
	}
	if listID == "" {
		return fmt.Errorf("%w: list id is empty", domain.ErrMailingList)
	}
	base, err := c.endpoint()
	if err != nil {
		return err
	}

	status := "subscribed"
	if req.DoubleOptIn {
		status = "pending"
	}
	body, err := json.Marshal(memberRequest{EmailAddress: req.Email, Status: status, MergeFields: req.MergeFields})
	if err != nil {
		return fmt.Errorf("%w: encode member: %v", domain.ErrMailingList, err)
	}

	endpoint := fmt.Sprintf("%s/lists/%s/members", base, url.PathEscape(listID))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", domain.ErrMailingList, err)
	}
	httpReq.SetBasicAuth("apikey", c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrMailingListUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBody))
		return nil
	}

	var apiErr apiError
	_ = json.NewDecoder(io.LimitReader(resp.Body, maxErrorBody)).Decode(&apiErr)
	switch {
	case resp.StatusCode == http.StatusBadRequest && apiErr.Title == memberExistsTitle:
		return fmt.Errorf("%w: %s", domain.ErrAlreadySubscribed, req.Email)
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return fmt.Errorf("%w: mailchimp api returned status %d: %s", domain.ErrMailingListUnavailable, resp.StatusCode, apiErr.Title)
	default:
		return fmt.Errorf("%w: mailchimp api returned status %d: %s: %s", domain.ErrMailingList, resp.StatusCode, apiErr.Title, apiErr.Detail)
	}
}

func (c *client) endpoint() (string, error) {
	if c.baseURL != "" {
		return c.baseURL, nil
	}
	return BaseURLForKey(c.apiKey)
}

// BaseURLForKey derives the API root from the data center suffix of an API key.
func BaseURLForKey(apiKey string) (string, error) {
	i := strings.LastIndex(apiKey, "-")
	if i < 0 || i == len(apiKey)-1 {
		return "", fmt.Errorf("%w: api key has no data center suffix", domain.ErrMailingList)
	}
	dc := apiKey[i+1:]
	for _, r := range dc {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return "", fmt.Errorf("%w: invalid data center %q", domain.ErrMailingList, dc)
		}
	}
	return "https://" + dc + ".api.mailchimp.com/3.0", nil
}

package wix

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"
)

// Client wraps the Wix Events, Ticket Definition and Site Media APIs with
// uniform authentication, retry and error handling.
type Client struct {
	cfg  Config
	http *retryablehttp.Client
	log  *zap.Logger
}

// APIError is returned for any non-2xx response that the retry policy does
// not absorb.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("wix: unexpected status %d: %s", e.StatusCode, e.Body)
}

// NewClient creates a Wix API client. APIKey and SiteID are required; the
// account id is optional but needed for Site Media uploads.
func NewClient(cfg Config, log *zap.Logger) (*Client, error) {
	if cfg.APIKey == "" || cfg.SiteID == "" {
		return nil, fmt.Errorf("wix: api_key and site_id are required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://www.wixapis.com"
	}

	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}

	rc := retryablehttp.NewClient()
	rc.HTTPClient.Timeout = time.Duration(timeout) * time.Second
	rc.RetryMax = 3
	rc.RetryWaitMin = 1 * time.Second
	rc.RetryWaitMax = 8 * time.Second
	rc.CheckRetry = retryPolicy
	// DefaultBackoff doubles the wait per attempt and honors Retry-After on 429.
	rc.Backoff = retryablehttp.DefaultBackoff
	rc.Logger = nil

	return &Client{cfg: cfg, http: rc, log: log}, nil
}

// retryPolicy retries transport-level failures (timeouts, connection resets)
// and HTTP 429. Every other error status surfaces immediately.
func retryPolicy(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}
	if err != nil {
		return true, nil
	}
	if resp != nil && resp.StatusCode == http.StatusTooManyRequests {
		return true, nil
	}
	return false, nil
}

// do issues one API request, encoding body as JSON when non-nil and decoding
// the response into out when non-nil.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request for %s: %w", path, err)
		}
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, payload)
	if err != nil {
		return fmt.Errorf("build request for %s: %w", path, err)
	}
	req.Header.Set("Authorization", c.cfg.APIKey)
	req.Header.Set("wix-site-id", c.cfg.SiteID)
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.AccountID != "" {
		req.Header.Set("wix-account-id", c.cfg.AccountID)
	}

	c.log.Debug("Wix API request", zap.String("method", method), zap.String("path", path))

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response from %s: %w", path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(data))}
	}
	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode response from %s: %w", path, err)
		}
	}
	return nil
}

type eventsQuery struct {
	Paging queryPaging    `json:"paging"`
	Filter map[string]any `json:"filter,omitempty"`
}

type eventsQueryRequest struct {
	Query eventsQuery `json:"query"`
}

type eventsQueryResponse struct {
	Events         []Event        `json:"events"`
	PagingMetadata pagingMetadata `json:"pagingMetadata"`
}

// queryEventsPage fetches a single page of the events listing.
func (c *Client) queryEventsPage(ctx context.Context, paging queryPaging, filter map[string]any) (*eventsQueryResponse, error) {
	req := eventsQueryRequest{Query: eventsQuery{Paging: paging, Filter: filter}}
	var resp eventsQueryResponse
	if err := c.do(ctx, http.MethodPost, "/events/v3/events/query", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListEvents returns at most limit events from the first page of the listing.
func (c *Client) ListEvents(ctx context.Context, limit int) ([]Event, error) {
	resp, err := c.queryEventsPage(ctx, queryPaging{Limit: limit}, nil)
	if err != nil {
		return nil, err
	}
	events := resp.Events
	if len(events) > limit {
		events = events[:limit]
	}
	return events, nil
}

// ListAllEvents walks the full events listing. It follows
// pagingMetadata.nextCursor when the platform returns one and otherwise falls
// back to offset paging, stopping at the first empty page.
func (c *Client) ListAllEvents(ctx context.Context, pageSize int) ([]Event, error) {
	if pageSize <= 0 {
		pageSize = 100
	}

	var all []Event
	paging := queryPaging{Limit: pageSize}
	viaCursor := false

	for {
		resp, err := c.queryEventsPage(ctx, paging, nil)
		if err != nil {
			return nil, err
		}
		all = append(all, resp.Events...)

		if len(resp.Events) == 0 {
			break
		}
		if next := resp.PagingMetadata.NextCursor; next != "" {
			paging = queryPaging{Limit: pageSize, Cursor: next}
			viaCursor = true
			continue
		}
		if viaCursor {
			// Cursor chain exhausted.
			break
		}
		offset := len(all)
		paging = queryPaging{Limit: pageSize, Offset: &offset}
	}

	return all, nil
}

// GetEvent fetches a single event by id with the full fieldset.
func (c *Client) GetEvent(ctx context.Context, eventID string) (*Event, error) {
	var resp struct {
		Event Event `json:"event"`
	}
	path := fmt.Sprintf("/events/v3/events/%s?fieldsets=FULL", eventID)
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Event, nil
}

// CreateEvent creates a new event and returns the platform's copy of it.
func (c *Client) CreateEvent(ctx context.Context, event *Event) (*Event, error) {
	req := map[string]any{"event": event}
	var resp struct {
		Event Event `json:"event"`
	}
	if err := c.do(ctx, http.MethodPost, "/events/v3/events", req, &resp); err != nil {
		return nil, err
	}
	return &resp.Event, nil
}

// UpdateEvent replaces the mapped fields of an existing event.
func (c *Client) UpdateEvent(ctx context.Context, eventID string, event *Event) (*Event, error) {
	req := map[string]any{"event": event}
	var resp struct {
		Event Event `json:"event"`
	}
	if err := c.do(ctx, http.MethodPatch, "/events/v3/events/"+eventID, req, &resp); err != nil {
		return nil, err
	}
	return &resp.Event, nil
}

// DeleteEvent removes an event.
func (c *Client) DeleteEvent(ctx context.Context, eventID string) error {
	return c.do(ctx, http.MethodDelete, "/events/v3/events/"+eventID, nil, nil)
}

// PublishEvent moves a draft event to UPCOMING.
func (c *Client) PublishEvent(ctx context.Context, eventID string) (*Event, error) {
	var resp struct {
		Event Event `json:"event"`
	}
	if err := c.do(ctx, http.MethodPost, "/events/v3/events/"+eventID+"/publish", nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Event, nil
}

// SearchEventsByTitle returns events whose title contains the given text,
// case-insensitively.
func (c *Client) SearchEventsByTitle(ctx context.Context, title string) ([]Event, error) {
	events, err := c.ListEvents(ctx, 100)
	if err != nil {
		return nil, err
	}
	needle := strings.ToLower(title)
	var matches []Event
	for _, ev := range events {
		if strings.Contains(strings.ToLower(ev.Title), needle) {
			matches = append(matches, ev)
		}
	}
	return matches, nil
}

// CreateTicketDefinition creates a single fixed-price ticket type for a
// TICKETING event. A positive capacity limits the quantity available.
func (c *Client) CreateTicketDefinition(ctx context.Context, eventID, name string, price float64, capacity int, currency string) (*TicketDefinition, error) {
	if currency == "" {
		currency = "CAD"
	}
	def := TicketDefinition{
		EventID:          eventID,
		Name:             name,
		LimitPerCheckout: 10,
		PricingMethod: &PricingMethod{
			FixedPrice: &Money{Value: fmt.Sprintf("%.2f", price), Currency: currency},
		},
		// Buyer pays fees, the standard configuration.
		FeeType: "FEE_ADDED_AT_CHECKOUT",
	}
	if capacity > 0 {
		def.Limited = true
		def.Quantity = capacity
	}

	req := map[string]any{"ticketDefinition": def}
	var resp struct {
		TicketDefinition TicketDefinition `json:"ticketDefinition"`
	}
	if err := c.do(ctx, http.MethodPost, "/events-ticket-definitions/v3/ticket-definitions", req, &resp); err != nil {
		return nil, err
	}
	return &resp.TicketDefinition, nil
}

// QueryRSVPs returns up to limit RSVPs, optionally filtered by event.
func (c *Client) QueryRSVPs(ctx context.Context, eventID string, limit int) ([]RSVP, error) {
	query := eventsQuery{Paging: queryPaging{Limit: limit}}
	if eventID != "" {
		query.Filter = map[string]any{"eventId": eventID}
	}
	var resp struct {
		RSVPs []RSVP `json:"rsvps"`
	}
	if err := c.do(ctx, http.MethodPost, "/events/v3/rsvps/query", eventsQueryRequest{Query: query}, &resp); err != nil {
		return nil, err
	}
	return resp.RSVPs, nil
}

// QueryOrders returns up to limit ticket orders, optionally filtered by event.
func (c *Client) QueryOrders(ctx context.Context, eventID string, limit int) ([]Order, error) {
	query := eventsQuery{Paging: queryPaging{Limit: limit}}
	if eventID != "" {
		query.Filter = map[string]any{"eventId": eventID}
	}
	var resp struct {
		Orders []Order `json:"orders"`
	}
	if err := c.do(ctx, http.MethodPost, "/events/v3/orders/query", eventsQueryRequest{Query: query}, &resp); err != nil {
		return nil, err
	}
	return resp.Orders, nil
}

// UploadImage pushes image bytes through the Media Manager's two-phase
// protocol: request an upload URL, then PUT the payload to it. The returned
// descriptor carries the media id and image dimensions.
func (c *Client) UploadImage(ctx context.Context, data []byte, filename, mimeType string) (*FileDescriptor, error) {
	genReq := map[string]any{"mimeType": mimeType, "fileName": filename}
	var genResp struct {
		UploadURL string `json:"uploadUrl"`
	}
	if err := c.do(ctx, http.MethodPost, "/site-media/v1/files/generate-upload-url", genReq, &genResp); err != nil {
		return nil, err
	}
	if genResp.UploadURL == "" {
		return nil, fmt.Errorf("wix: generate-upload-url returned no uploadUrl")
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPut, genResp.UploadURL, data)
	if err != nil {
		return nil, fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Content-Type", mimeType)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upload to media url: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read upload response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var uploadResp struct {
		File *FileDescriptor `json:"file"`
	}
	if err := json.Unmarshal(body, &uploadResp); err != nil {
		return nil, fmt.Errorf("decode upload response: %w", err)
	}
	if uploadResp.File == nil {
		return nil, fmt.Errorf("wix: upload succeeded but no file descriptor returned")
	}
	return uploadResp.File, nil
}

package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shelftui/shelf/internal/domain"
)

const (
	defaultTimeout = 30 * time.Second
	userAgent      = "Shelf/1.0"
)

// Client talks to the remote catalog service. Each operation is a single
// request/response round trip: no retry, no caching, no state between calls.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new catalog API client
func NewClient(baseURL string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logger,
	}
}

// errorResponse is the error body shape returned by the catalog service
type errorResponse struct {
	Message string `json:"message"`
}

// doRequest performs an HTTP request with a JSON body and returns the
// response body for 2xx responses. Non-2xx responses are mapped onto the
// domain error taxonomy.
func (c *Client) doRequest(ctx context.Context, method, path string, payload any) ([]byte, error) {
	reqURL := c.baseURL + path

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debug("catalog request", "method", method, "url", reqURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("catalog request failed", "error", err)
		return nil, domain.ErrServerOffline
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return respBody, nil
	}

	c.logger.Error("catalog request error", "status", resp.StatusCode, "body", string(respBody))

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, domain.ErrBadCredentials
	case resp.StatusCode == http.StatusNotFound:
		return nil, domain.ErrNotFound
	case resp.StatusCode >= 500:
		return nil, &domain.ServerError{StatusCode: resp.StatusCode}
	default:
		// 4xx: the service rejected the payload; surface its message verbatim
		var er errorResponse
		if json.Unmarshal(respBody, &er) == nil && er.Message != "" {
			return nil, &domain.ValidationError{Message: er.Message}
		}
		return nil, &domain.ValidationError{Message: fmt.Sprintf("request rejected (status %d)", resp.StatusCode)}
	}
}

// ListBooks returns all books in the catalog, in server response order.
func (c *Client) ListBooks(ctx context.Context) ([]domain.Book, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/books", nil)
	if err != nil {
		return nil, err
	}

	var books []domain.Book
	if err := json.Unmarshal(body, &books); err != nil {
		c.logger.Error("JSON parse error", "error", err, "bodyLen", len(body))
		return nil, fmt.Errorf("failed to parse book list: %w", err)
	}
	return books, nil
}

// CreateBook adds a new book to the catalog. The service assigns the ID.
func (c *Client) CreateBook(ctx context.Context, draft domain.Draft) (domain.Book, error) {
	body, err := c.doRequest(ctx, http.MethodPost, "/books", draft)
	if err != nil {
		return domain.Book{}, err
	}

	var book domain.Book
	if err := json.Unmarshal(body, &book); err != nil {
		return domain.Book{}, fmt.Errorf("failed to parse created book: %w", err)
	}
	return book, nil
}

// UpdateBook replaces the fields of an existing book. The response is
// awaited before success is reported.
func (c *Client) UpdateBook(ctx context.Context, id string, draft domain.Draft) error {
	_, err := c.doRequest(ctx, http.MethodPut, "/books/"+url.PathEscape(id), draft)
	return err
}

// DeleteBook removes a book from the catalog.
func (c *Client) DeleteBook(ctx context.Context, id string) error {
	_, err := c.doRequest(ctx, http.MethodDelete, "/books/"+url.PathEscape(id), nil)
	return err
}

// Login authenticates against the catalog service. A 401 maps to
// domain.ErrBadCredentials so the UI can distinguish bad credentials from
// an unavailable server.
func (c *Client) Login(ctx context.Context, username, password string) (domain.LoginResult, error) {
	payload := map[string]string{
		"username": username,
		"password": password,
	}

	body, err := c.doRequest(ctx, http.MethodPost, "/login", payload)
	if err != nil {
		return domain.LoginResult{}, err
	}

	var result domain.LoginResult
	if err := json.Unmarshal(body, &result); err != nil {
		return domain.LoginResult{}, fmt.Errorf("failed to parse login response: %w", err)
	}
	return result, nil
}

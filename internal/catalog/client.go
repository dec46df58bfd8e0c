package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/recollect-app/recollect/internal/topic"
)

const defaultTimeout = 10 * time.Second

// Client is the HTTP implementation of Source.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewClient creates a catalog client for the given base URL. The API
// key is sent as a Bearer token on every request.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: defaultTimeout},
	}
}

// FetchCategories returns active categories ordered by sort_order.
func (c *Client) FetchCategories(ctx context.Context) ([]topic.Category, error) {
	var cats []topic.Category
	q := url.Values{"active": {"true"}, "order": {"sort_order"}}
	if err := c.get(ctx, "/v1/categories", q, &cats); err != nil {
		return nil, err
	}
	return cats, nil
}

// FetchTopics returns active topics with their category denormalized.
func (c *Client) FetchTopics(ctx context.Context) ([]topic.Topic, error) {
	var topics []topic.Topic
	q := url.Values{"active": {"true"}, "expand": {"category"}}
	if err := c.get(ctx, "/v1/topics", q, &topics); err != nil {
		return nil, err
	}
	return topics, nil
}

// FetchHistory returns the user's most recent history entries, newest first.
func (c *Client) FetchHistory(ctx context.Context, userID string, limit int) ([]topic.HistoryEntry, error) {
	var entries []topic.HistoryEntry
	q := url.Values{"order": {"shown_at.desc"}, "limit": {strconv.Itoa(limit)}}
	if err := c.get(ctx, "/v1/users/"+url.PathEscape(userID)+"/history", q, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// InsertHistory appends one history entry for the user.
func (c *Client) InsertHistory(ctx context.Context, userID string, entry topic.HistoryEntry) error {
	body := map[string]any{
		"topic_id": entry.TopicID,
		"shown_at": entry.ShownAt.UTC().Format(time.RFC3339),
		"was_used": entry.WasUsed,
	}
	if entry.MemoryID != "" {
		body["memory_id"] = entry.MemoryID
	}
	return c.send(ctx, "POST", "/v1/users/"+url.PathEscape(userID)+"/history", body)
}

// UpdateHistory marks the user's unmarked entry for topicID as used.
func (c *Client) UpdateHistory(ctx context.Context, userID, topicID, memoryID string) error {
	body := map[string]any{
		"topic_id":  topicID,
		"was_used":  true,
		"memory_id": memoryID,
	}
	return c.send(ctx, "PATCH", "/v1/users/"+url.PathEscape(userID)+"/history", body)
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, "GET", u, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	return c.do(req, out)
}

func (c *Client) send(ctx context.Context, method, path string, body any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, nil)
}

func (c *Client) do(req *http.Request, out any) error {
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("catalog %s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("catalog %s %s: status %d: %s", req.Method, req.URL.Path, resp.StatusCode, respBody)
	}
	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

package channel

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/minhland/adhub/internal/config"
)

// FeedClient posts listings to the configured Facebook page feed.
type FeedClient struct {
	client  *http.Client
	baseURL string
	pageID  string
	token   string
	logger  *zap.Logger
}

func NewFeedClient(cfg *config.FacebookConfig, logger *zap.Logger) *FeedClient {
	return &FeedClient{
		client:  &http.Client{Timeout: 30 * time.Second},
		baseURL: cfg.BaseURL,
		pageID:  cfg.PageID,
		token:   cfg.AccessToken,
		logger:  logger,
	}
}

func (c *FeedClient) Name() string {
	return PlatformFacebook
}

func (c *FeedClient) Publish(ctx context.Context, content Content) (*Result, error) {
	message := fmt.Sprintf("%s\nLiên hệ: %s\nĐịa chỉ: %s", content.Body, content.Mobile, content.Address)

	payload := map[string]any{"message": message}
	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	url := fmt.Sprintf("%s/%s/feed", c.baseURL, c.pageID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrChannelUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", ErrChannelUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		return &Result{Raw: raw}, fmt.Errorf("%w: facebook API returned status %d: %s", ErrChannelUnavailable, resp.StatusCode, string(raw))
	}

	var response struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(raw, &response); err != nil {
		return &Result{Raw: raw}, fmt.Errorf("failed to decode feed response: %w", err)
	}

	c.logger.Info("Published Facebook post",
		zap.String("record_id", content.RecordID),
		zap.String("post_id", response.ID))

	return &Result{
		PublishID:   response.ID,
		Raw:         raw,
		PublishedAt: time.Now(),
	}, nil
}

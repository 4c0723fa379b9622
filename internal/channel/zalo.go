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

// ArticleClient publishes listings as Zalo OA articles.
type ArticleClient struct {
	client  *http.Client
	baseURL string
	token   string
	logger  *zap.Logger
}

func NewArticleClient(cfg *config.ZaloConfig, logger *zap.Logger) *ArticleClient {
	return &ArticleClient{
		client:  &http.Client{Timeout: 30 * time.Second},
		baseURL: cfg.BaseURL,
		token:   cfg.AccessToken,
		logger:  logger,
	}
}

func (c *ArticleClient) Name() string {
	return PlatformZaloArticle
}

func (c *ArticleClient) Publish(ctx context.Context, content Content) (*Result, error) {
	coverType := "text"
	var coverPhoto map[string]any
	if content.PhotoID != "" {
		coverType = "photo"
		coverPhoto = map[string]any{"photo_id": content.PhotoID}
	}

	body := map[string]any{
		"title":        fmt.Sprintf("%s - %s", content.Name, content.Address),
		"cover_type":   coverType,
		"cover_status": "show",
		"body": []map[string]any{
			{
				"type":    "text",
				"content": ContactText(content.Body, content.Mobile),
			},
		},
		"status": "show",
	}
	if coverPhoto != nil {
		body["cover_photo"] = coverPhoto
	}

	raw, err := postZalo(ctx, c.client, c.baseURL+"/v2.0/oa/article/create", c.token, body)
	if err != nil {
		return &Result{Raw: raw}, err
	}

	var response struct {
		Data struct {
			ArticleID string `json:"article_id"`
		} `json:"data"`
	}
	if err := json.Unmarshal(raw, &response); err != nil {
		return &Result{Raw: raw}, fmt.Errorf("failed to decode article response: %w", err)
	}

	c.logger.Info("Published Zalo article",
		zap.String("record_id", content.RecordID),
		zap.String("article_id", response.Data.ArticleID))

	return &Result{
		PublishID:   response.Data.ArticleID,
		Raw:         raw,
		PublishedAt: time.Now(),
	}, nil
}

// MessageClient sends the listing as a Zalo customer-service message to one
// recipient. It requires the recipient's user id.
type MessageClient struct {
	client  *http.Client
	baseURL string
	token   string
	logger  *zap.Logger
}

func NewMessageClient(cfg *config.ZaloConfig, logger *zap.Logger) *MessageClient {
	return &MessageClient{
		client:  &http.Client{Timeout: 30 * time.Second},
		baseURL: cfg.BaseURL,
		token:   cfg.AccessToken,
		logger:  logger,
	}
}

func (c *MessageClient) Name() string {
	return PlatformZaloMessage
}

func (c *MessageClient) Publish(ctx context.Context, content Content) (*Result, error) {
	if content.RecipientID == "" {
		return nil, fmt.Errorf("recipient id is required for %s", c.Name())
	}

	body := map[string]any{
		"recipient": map[string]any{"user_id": content.RecipientID},
		"message": map[string]any{
			"text": ContactText(content.Body, content.Mobile),
		},
	}

	raw, err := postZalo(ctx, c.client, c.baseURL+"/v3.0/oa/message/cs", c.token, body)
	if err != nil {
		return &Result{Raw: raw}, err
	}

	var response struct {
		Data struct {
			MsgID string `json:"msg_id"`
		} `json:"data"`
	}
	if err := json.Unmarshal(raw, &response); err != nil {
		return &Result{Raw: raw}, fmt.Errorf("failed to decode message response: %w", err)
	}

	c.logger.Info("Sent Zalo message",
		zap.String("record_id", content.RecordID),
		zap.String("msg_id", response.Data.MsgID))

	return &Result{
		PublishID:   response.Data.MsgID,
		Raw:         raw,
		PublishedAt: time.Now(),
	}, nil
}

// postZalo posts a JSON payload with the OA access token header and returns
// the raw response body. The body is returned even on failure so it can be
// archived.
func postZalo(ctx context.Context, client *http.Client, url, token string, payload any) (json.RawMessage, error) {
	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("access_token", token)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrChannelUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", ErrChannelUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		return raw, fmt.Errorf("%w: zalo API returned status %d: %s", ErrChannelUnavailable, resp.StatusCode, string(raw))
	}

	return raw, nil
}

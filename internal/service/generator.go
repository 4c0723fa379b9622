package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/minhland/adhub/internal/config"
)

// GenerateRequest carries the listing fields the ad copy is written from.
type GenerateRequest struct {
	Name              string `json:"name"`
	Mobile            string `json:"mobile"`
	Source            string `json:"source"`
	Type              string `json:"type"`
	Demand            string `json:"demand"`
	Area              string `json:"area"`
	Price             string `json:"price"`
	Product           string `json:"product"`
	TransactionStatus string `json:"transactionStatus"`
	Note              string `json:"note"`
}

// GeneratorService asks the configured text-generation endpoint for ad copy.
// The model behind the endpoint is opaque to this service.
type GeneratorService struct {
	client    *http.Client
	endpoint  string
	maxLength int
	logger    *zap.Logger
}

func NewGeneratorService(cfg *config.GeneratorConfig, logger *zap.Logger) *GeneratorService {
	return &GeneratorService{
		client:    &http.Client{Timeout: 60 * time.Second},
		endpoint:  cfg.Endpoint,
		maxLength: cfg.MaxLength,
		logger:    logger,
	}
}

func (g *GeneratorService) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	payload := map[string]any{
		"prompt":     buildPrompt(req),
		"max_length": g.maxLength,
	}
	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request body: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("failed to reach generation service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("generation service returned status %d: %s", resp.StatusCode, string(body))
	}

	var response struct {
		GeneratedText string `json:"generated_text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", fmt.Errorf("failed to decode generation response: %w", err)
	}

	g.logger.Info("Generated ad content",
		zap.String("name", req.Name),
		zap.Int("length", len(response.GeneratedText)))
	return response.GeneratedText, nil
}

func buildPrompt(req GenerateRequest) string {
	orEmpty := func(s string) string {
		if s == "" {
			return "Không có"
		}
		return s
	}

	var b strings.Builder
	b.WriteString("Tạo một bài quảng cáo bất động sản ngắn gọn, hấp dẫn dựa trên thông tin sau:\n")
	b.WriteString("- Tên khách hàng: " + orEmpty(req.Name) + "\n")
	b.WriteString("- Số điện thoại: " + orEmpty(req.Mobile) + "\n")
	b.WriteString("- Nguồn biết tin: " + orEmpty(req.Source) + "\n")
	b.WriteString("- Loại khách hàng: " + orEmpty(req.Type) + "\n")
	b.WriteString("- Nhu cầu: " + orEmpty(req.Demand) + "\n")
	b.WriteString("- Khu vực: " + orEmpty(req.Area) + "\n")
	b.WriteString("- Giá: " + orEmpty(req.Price) + "\n")
	b.WriteString("- Sản phẩm: " + orEmpty(req.Product) + "\n")
	b.WriteString("- Tình trạng giao dịch: " + orEmpty(req.TransactionStatus) + "\n")
	b.WriteString("- Ghi chú: " + orEmpty(req.Note) + "\n\n")
	b.WriteString("Yêu cầu:\n")
	b.WriteString("- Ngắn gọn, tối đa 150 từ.\n")
	b.WriteString("- Ngôn ngữ tự nhiên, thu hút, đúng ngữ pháp tiếng Việt.\n")
	b.WriteString("- Tập trung vào sản phẩm, khu vực, giá, và nhu cầu.\n")
	b.WriteString("- Thêm lời kêu gọi hành động (VD: \"Liên hệ ngay!\").\n")
	return b.String()
}

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/minhland/adhub/internal/channel"
	"github.com/minhland/adhub/internal/sheet"
	"github.com/minhland/adhub/pkg/util"
)

var (
	// ErrValidation means the publish request is missing required input.
	ErrValidation = errors.New("invalid publish request")

	// ErrPersistence means the summarized row could not be written after the
	// channels were already attempted. Channel side effects are not rolled back.
	ErrPersistence = errors.New("failed to persist publish summary")
)

// Cell limits for the summarized row. The audit store keeps full payloads;
// only what goes back into the sheet is truncated.
const (
	maxContentLen = 1000
	maxPhotoLen   = 500
	maxStatusLen  = 100
	maxCellLen    = 50000

	perChannelTimeout = 30 * time.Second
)

// RecordUpdater is the slice of the record store the orchestrator writes
// its summary through.
type RecordUpdater interface {
	Update(ctx context.Context, position int, fields map[string]string, entered bool) error
}

type PublishRequest struct {
	Name      string   `json:"name"`
	Mobile    string   `json:"mobile"`
	Address   string   `json:"address"`
	Content   string   `json:"content"`
	Platforms []string `json:"platforms"`
	Photo     string   `json:"photo"`
	RowIndex  int      `json:"rowIndex"`
	AdID      string   `json:"adId"`
	ZaloID    string   `json:"zaloid"`
	Subpage   string   `json:"subpage"`
	Email     string   `json:"email"`
	Purpose   string   `json:"purpose"`
}

func (r *PublishRequest) Validate() error {
	switch {
	case r.Name == "":
		return fmt.Errorf("%w: name is required", ErrValidation)
	case r.Mobile == "":
		return fmt.Errorf("%w: mobile is required", ErrValidation)
	case r.Content == "":
		return fmt.Errorf("%w: content is required", ErrValidation)
	case len(r.Platforms) == 0:
		return fmt.Errorf("%w: platforms must not be empty", ErrValidation)
	case r.RowIndex < sheet.DataStartRow:
		return fmt.Errorf("%w: rowIndex %d is not a data row", ErrValidation, r.RowIndex)
	}
	return nil
}

// PublishResponse aggregates the per-channel outcomes. Results holds the raw
// payload of every successful channel keyed by channel key; a missing key
// means the channel was not requested or was skipped. Errors annotates the
// channels that failed.
type PublishResponse struct {
	Message string                     `json:"message"`
	Results map[string]json.RawMessage `json:"results"`
	Errors  map[string]string          `json:"errors,omitempty"`
}

// channelBinding ties a requestable platform name to its client, its result
// key and the status column the outcome is summarized into.
type channelBinding struct {
	platform    string
	key         string
	statusField string
	label       string
	publisher   channel.Publisher
	skip        func(*PublishRequest) bool
}

// PublisherService fans one publish request out to the requested channels,
// collects each outcome independently and writes the truncated summary back
// through the record store. A single channel's failure never aborts the
// remaining channels; only the final summary write is fatal.
type PublisherService struct {
	logger   *zap.Logger
	store    RecordUpdater
	audit    AuditRecorder
	channels []channelBinding
}

func NewPublisherService(store RecordUpdater, audit AuditRecorder, article, message, feed, website channel.Publisher, logger *zap.Logger) *PublisherService {
	// Declared channel order: article, message, feed, website
	channels := []channelBinding{
		{
			platform:    channel.PlatformZaloArticle,
			key:         "zaloArticle",
			statusField: sheet.FieldZaloArticleStatus,
			label:       "Article ID",
			publisher:   article,
		},
		{
			platform:    channel.PlatformZaloMessage,
			key:         "zaloMessage",
			statusField: sheet.FieldZaloMessageStatus,
			label:       "Message ID",
			publisher:   message,
			skip:        func(r *PublishRequest) bool { return r.ZaloID == "" },
		},
		{
			platform:    channel.PlatformFacebook,
			key:         "facebook",
			statusField: sheet.FieldFacebookStatus,
			label:       "Post ID",
			publisher:   feed,
		},
		{
			platform:    channel.PlatformWebsite,
			key:         "website",
			statusField: sheet.FieldWebsiteStatus,
			label:       "Ad ID",
			publisher:   website,
			skip:        func(r *PublishRequest) bool { return r.Subpage == "" },
		},
	}

	return &PublisherService{
		logger:   logger,
		store:    store,
		audit:    audit,
		channels: channels,
	}
}

func (s *PublisherService) Publish(ctx context.Context, req *PublishRequest) (*PublishResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if req.AdID == "" {
		req.AdID = uuid.NewString()
	}

	requested := make(map[string]bool, len(req.Platforms))
	for _, p := range req.Platforms {
		requested[p] = true
	}

	content := channel.Content{
		RecordID:    req.AdID,
		RowIndex:    req.RowIndex,
		Name:        req.Name,
		Mobile:      req.Mobile,
		Address:     req.Address,
		Body:        req.Content,
		PhotoID:     req.Photo,
		RecipientID: req.ZaloID,
		Subpage:     req.Subpage,
		Purpose:     req.Purpose,
		Platforms:   req.Platforms,
	}

	results := make(map[string]json.RawMessage)
	channelErrors := make(map[string]string)
	var errorParts []string

	statuses := map[string]string{
		sheet.FieldZaloArticleStatus: "",
		sheet.FieldZaloMessageStatus: "",
		sheet.FieldFacebookStatus:    "",
		sheet.FieldWebsiteStatus:     "",
	}

	for _, b := range s.channels {
		if !requested[b.platform] {
			continue
		}
		if b.skip != nil && b.skip(req) {
			// Missing auxiliary identifier: treated as not requested, not failed
			s.logger.Info("Skipping channel without auxiliary identifier",
				zap.String("channel", b.platform),
				zap.String("ad_id", req.AdID))
			continue
		}

		attemptCtx, cancel := context.WithTimeout(ctx, perChannelTimeout)
		result, err := b.publisher.Publish(attemptCtx, content)
		cancel()

		if result != nil && len(result.Raw) > 0 {
			s.recordAudit(ctx, req.AdID, b.key, result.Raw)
		}

		if err != nil {
			s.logger.Error("Channel publish failed",
				zap.String("channel", b.platform),
				zap.String("ad_id", req.AdID),
				zap.Error(err))
			errorParts = append(errorParts, fmt.Sprintf("%s failed: %v", b.platform, err))
			channelErrors[b.key] = err.Error()
			continue
		}

		results[b.key] = result.Raw
		publishID := result.PublishID
		if publishID == "" {
			publishID = "N/A"
		}
		statuses[b.statusField] = fmt.Sprintf("%s: %s", b.label, publishID)

		s.logger.Info("Channel publish succeeded",
			zap.String("channel", b.platform),
			zap.String("ad_id", req.AdID),
			zap.String("publish_id", publishID))
	}

	summary := s.summaryFields(req, statuses, strings.Join(errorParts, "; "))
	if err := s.store.Update(ctx, req.RowIndex, summary, false); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	return &PublishResponse{
		Message: "Published successfully",
		Results: results,
		Errors:  channelErrors,
	}, nil
}

// summaryFields builds the truncated row written back to the sheet. Every
// cell is additionally capped at the hard cell limit the sheet enforces.
func (s *PublisherService) summaryFields(req *PublishRequest, statuses map[string]string, errorMessage string) map[string]string {
	fields := map[string]string{
		sheet.FieldName:         req.Name,
		sheet.FieldMobile:       req.Mobile,
		sheet.FieldAdID:         req.AdID,
		sheet.FieldAdContent:    util.Truncate(req.Content, maxContentLen),
		sheet.FieldPhotoURL:     util.Truncate(req.Photo, maxPhotoLen),
		sheet.FieldEmail:        req.Email,
		sheet.FieldPlatforms:    strings.Join(req.Platforms, ","),
		sheet.FieldPurpose:      req.Purpose,
		sheet.FieldErrorMessage: errorMessage,
	}
	for field, status := range statuses {
		fields[field] = util.Truncate(status, maxStatusLen)
	}
	for field, value := range fields {
		fields[field] = util.Truncate(value, maxCellLen)
	}
	return fields
}

// recordAudit archives the full channel payload. Audit failures are logged
// and never fail the publish.
func (s *PublisherService) recordAudit(ctx context.Context, adID, channelKey string, raw json.RawMessage) {
	entry := newAuditEntry(adID, channelKey, raw)
	if err := s.audit.Record(ctx, entry); err != nil {
		s.logger.Error("Failed to record audit entry",
			zap.String("key", entry.Key()),
			zap.Error(err))
	}
}

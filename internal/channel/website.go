package channel

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/minhland/adhub/internal/models"
	"github.com/minhland/adhub/pkg/util"
)

// WebsiteStore publishes a listing to the company website, which is served
// out of the relational store. Re-publishing the same ad id overwrites the
// previous row.
type WebsiteStore struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewWebsiteStore(db *gorm.DB, logger *zap.Logger) *WebsiteStore {
	return &WebsiteStore{db: db, logger: logger}
}

func (w *WebsiteStore) Name() string {
	return PlatformWebsite
}

func (w *WebsiteStore) Publish(ctx context.Context, content Content) (*Result, error) {
	ad := models.PublishedAd{
		AdID:      content.RecordID,
		RowIndex:  content.RowIndex,
		Name:      content.Name,
		Mobile:    content.Mobile,
		Address:   content.Address,
		Content:   content.Body,
		PhotoURL:  content.PhotoID,
		Subpage:   content.Subpage,
		Purpose:   content.Purpose,
		Platforms: models.StringArray(content.Platforms),
	}

	err := w.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "ad_id"}},
			UpdateAll: true,
		}).
		Create(&ad).Error
	if err != nil {
		return nil, fmt.Errorf("%w: failed to store website ad: %v", ErrChannelUnavailable, err)
	}

	payload := map[string]any{
		"success": true,
		"adId":    content.RecordID,
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal website payload: %w", err)
	}

	w.logger.Info("Published website ad",
		zap.String("ad_id", content.RecordID),
		zap.String("name", util.Truncate(content.Name, 50)))

	return &Result{
		PublishID:   content.RecordID,
		Raw:         raw,
		PublishedAt: time.Now(),
	}, nil
}

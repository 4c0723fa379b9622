package channel

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// ErrChannelUnavailable wraps transport and remote failures of a channel API.
var ErrChannelUnavailable = errors.New("channel unavailable")

// Platform names as they appear in publish requests.
const (
	PlatformZaloArticle = "Zalo Article"
	PlatformZaloMessage = "Zalo Message"
	PlatformFacebook    = "Facebook"
	PlatformWebsite     = "Website"
)

// Content is the normalized payload handed to every channel. RecipientID is
// only meaningful for the direct-message channel and Subpage only for the
// website channel.
type Content struct {
	RecordID    string
	RowIndex    int
	Name        string
	Mobile      string
	Address     string
	Body        string
	PhotoID     string
	RecipientID string
	Subpage     string
	Purpose     string
	Platforms   []string
}

// Result is one channel attempt's outcome. Raw carries the channel's full
// response payload for auditing.
type Result struct {
	PublishID   string
	Raw         json.RawMessage
	PublishedAt time.Time
}

// Publisher posts normalized content to one external channel.
//
// On a remote rejection implementations return both a non-nil error and a
// Result whose Raw field holds the failure payload, so callers can archive
// what the channel actually said.
type Publisher interface {
	Name() string
	Publish(ctx context.Context, content Content) (*Result, error)
}

// ContactText appends the contact line the ad channels share.
func ContactText(body, mobile string) string {
	return body + "\nLiên hệ: " + mobile
}

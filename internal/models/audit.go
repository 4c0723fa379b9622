package models

import (
	"encoding/json"
	"time"
)

// AuditEntry holds the full, untruncated response of one channel attempt.
// One entry exists per (record, channel) pair; a re-publish overwrites the
// previous attempt for that key.
type AuditEntry struct {
	RecordID  string          `json:"record_id"`
	Channel   string          `json:"channel"`
	Response  json.RawMessage `json:"response"`
	Timestamp time.Time       `json:"timestamp"`
}

// Key is the store key for this entry.
func (e AuditEntry) Key() string {
	return e.RecordID + "_" + e.Channel
}

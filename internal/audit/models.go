package audit

import (
	"time"

	"github.com/google/uuid"
)

// Actions recorded against drafts.
const (
	ActionDraftBuilt   = "draft_built"
	ActionDraftFetched = "draft_fetched"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	ID        uuid.UUID `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Action    string    `json:"action"`
	DraftID   string    `json:"draft_id"`
	RequestID string    `json:"request_id,omitempty"`

	Subject  string `json:"subject,omitempty"`
	ClientID string `json:"client_id,omitempty"`
	ClientIP string `json:"client_ip,omitempty"`
	// Client is the parsed User-Agent, e.g. "Chrome 120 (Windows 10)".
	Client string `json:"client,omitempty"`

	Mode           string `json:"mode,omitempty"`
	Rejections     int    `json:"rejections"`
	DocumentDigest string `json:"document_digest,omitempty"`
}

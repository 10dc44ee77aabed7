package template

import (
	"time"

	"adstudioAPI/internal/canvas"
)

// Channel is the marketing channel a creative is produced for.
type Channel string

const (
	ChannelFacebook  Channel = "facebook"
	ChannelInstagram Channel = "instagram"
	ChannelLinkedIn  Channel = "linkedin"
	ChannelDisplay   Channel = "display"
)

func (c Channel) Valid() bool {
	switch c {
	case ChannelFacebook, ChannelInstagram, ChannelLinkedIn, ChannelDisplay:
		return true
	}
	return false
}

// Channels lists the accepted channel values, for error messages.
func Channels() []Channel {
	return []Channel{ChannelFacebook, ChannelInstagram, ChannelLinkedIn, ChannelDisplay}
}

type Status string

const (
	StatusDraft    Status = "draft"
	StatusActive   Status = "active"
	StatusArchived Status = "archived"
)

func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusActive, StatusArchived:
		return true
	}
	return false
}

func Statuses() []Status {
	return []Status{StatusDraft, StatusActive, StatusArchived}
}

// Template is a reusable canvas-bearing record, the source for derived
// designs. Canvas is nil when no canvas has been attached yet.
type Template struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Channel   Channel        `json:"channel"`
	Status    Status         `json:"status"`
	Canvas    *canvas.Canvas `json:"canvas"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

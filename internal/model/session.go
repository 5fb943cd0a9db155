package model

import (
	"time"

	"github.com/google/uuid"
)

// Session binds a short reply token to the notification that created it.
// The JSON shape is the durable contract the command receiver parses to
// resume a conversation by token: timestamps are stored both as RFC3339
// strings and unix-millisecond epochs.
type Session struct {
	ID           string           `json:"id"`
	Token        string           `json:"token"`
	Type         NotificationType `json:"type"`
	Created      string           `json:"created"`
	CreatedAt    int64            `json:"createdAt"`
	Expires      string           `json:"expires"`
	ExpiresAt    int64            `json:"expiresAt"`
	ContextRef   string           `json:"contextRef"`
	Project      string           `json:"project"`
	Notification Notification     `json:"notification"`
}

func NewSession(n Notification, token, contextRef string, now time.Time, ttl time.Duration) *Session {
	expires := now.Add(ttl)
	return &Session{
		ID:           uuid.NewString(),
		Token:        token,
		Type:         n.Type,
		Created:      now.UTC().Format(time.RFC3339),
		CreatedAt:    now.UnixMilli(),
		Expires:      expires.UTC().Format(time.RFC3339),
		ExpiresAt:    expires.UnixMilli(),
		ContextRef:   contextRef,
		Project:      n.Project,
		Notification: n,
	}
}

func (s *Session) IsExpired(now time.Time) bool {
	return now.UnixMilli() >= s.ExpiresAt
}

package model

type NotificationType string

const (
	TypeCompleted       NotificationType = "completed"
	TypeWaitingForInput NotificationType = "waiting-for-input"
)

func (t NotificationType) Valid() bool {
	return t == TypeCompleted || t == TypeWaitingForInput
}

// Metadata carries optional context captured alongside a notification.
// ContextRef is filled in by the channel from the context resolver when
// the caller leaves it empty.
type Metadata struct {
	UserQuestion   string `json:"userQuestion,omitempty"`
	ClaudeResponse string `json:"claudeResponse,omitempty"`
	ContextRef     string `json:"contextRef,omitempty"`
}

// Notification is the inbound event a caller asks the relay to deliver.
type Notification struct {
	Type     NotificationType `json:"type"`
	Project  string           `json:"project"`
	Message  string           `json:"message"`
	Metadata *Metadata        `json:"metadata,omitempty"`
}

// MessagePart is one bounded outbound message unit. Parts for a single
// notification are delivered strictly in slice order.
type MessagePart struct {
	Text string
	// Interactive marks the header part that carries the reply-routing
	// buttons; all other parts are plain text.
	Interactive bool
}

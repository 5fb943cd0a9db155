// Package channel implements the Telegram notification channel: it turns
// an internal task event into outbound chat messages and establishes a
// token-addressed session the recipient can reply to.
package channel

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/tasknotify/telegram-relay-go/internal/config"
	apperrors "github.com/tasknotify/telegram-relay-go/internal/errors"
	"github.com/tasknotify/telegram-relay-go/internal/model"
	"github.com/tasknotify/telegram-relay-go/internal/resolver"
	"github.com/tasknotify/telegram-relay-go/internal/store"
	"github.com/tasknotify/telegram-relay-go/internal/token"
)

// Channel orchestrates one notification send: issue a token, persist the
// session, compose the parts, deliver them. The session is written
// before the first network call and rolled back if delivery fails, so a
// session record never outlives a failed send.
type Channel struct {
	cfg      *config.Config
	store    store.SessionStore
	router   *Router
	resolver resolver.ContextResolver
	identity *identityCache
}

func New(cfg *config.Config, sessions store.SessionStore, transport Transport, contextResolver resolver.ContextResolver) *Channel {
	return &Channel{
		cfg:      cfg,
		store:    sessions,
		router:   NewRouter(transport),
		resolver: contextResolver,
		identity: newIdentityCache(transport, cfg.BotDisplayName),
	}
}

func (c *Channel) Name() string {
	return "telegram"
}

// SupportsReplies reports that recipients can route commands back to the
// originating context via the session token.
func (c *Channel) SupportsReplies() bool {
	return true
}

// MaxMessageLength is the largest single part the channel will send.
func (c *Channel) MaxMessageLength() int {
	return config.MessageChunkSize
}

// Validate checks the channel is usable before any storage or network
// activity.
func (c *Channel) Validate() error {
	if c.cfg.BotToken == "" {
		return apperrors.Config("TELEGRAM_BOT_TOKEN is not configured")
	}
	if c.cfg.Destination() == "" {
		return apperrors.Config("no destination chat configured: set TELEGRAM_CHAT_ID or TELEGRAM_GROUP_CHAT_ID")
	}
	return nil
}

// Send delivers one notification and creates its reply session.
func (c *Channel) Send(ctx context.Context, n model.Notification) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if !n.Type.Valid() {
		return apperrors.InvalidInput("type", "must be completed or waiting-for-input")
	}
	if n.Project == "" {
		return apperrors.MissingRequired("project")
	}

	n = c.enrichContext(ctx, n)

	tok, err := token.GenerateUnique(ctx, c.store)
	if err != nil {
		return apperrors.Internal("token generation failed").WithCause(err)
	}

	session := model.NewSession(n, tok, n.Metadata.ContextRef, time.Now(), config.SessionTTL)

	// Write-before-send: never reference a session that does not
	// durably exist.
	if err := c.store.Create(ctx, session); err != nil {
		return apperrors.Storage(err)
	}

	botName := c.identity.Name(ctx)
	parts := Compose(n, tok, botName)
	chatID := c.cfg.Destination()

	if err := c.router.Deliver(ctx, parts, chatID, tok); err != nil {
		// Roll back so no session outlives a failed send. Delete
		// failure is best-effort cleanup, logged but not escalated.
		if delErr := c.store.Delete(ctx, session.ID); delErr != nil {
			log.Error().Err(delErr).Str("sessionId", session.ID).Msg("session rollback delete failed")
		}
		return apperrors.Delivery(err)
	}

	log.Info().
		Str("sessionId", session.ID).
		Str("project", n.Project).
		Str("type", string(n.Type)).
		Str("contextRef", session.ContextRef).
		Int("parts", len(parts)).
		Msg("notification delivered")

	return nil
}

// enrichContext fills metadata.contextRef from the injected resolver when
// the caller left it empty, defaulting to the unresolvable sentinel.
func (c *Channel) enrichContext(ctx context.Context, n model.Notification) model.Notification {
	meta := model.Metadata{}
	if n.Metadata != nil {
		meta = *n.Metadata
	}

	if meta.ContextRef == "" && c.resolver != nil {
		ref, err := c.resolver.Resolve(ctx)
		if err != nil {
			log.Debug().Err(err).Msg("context resolver failed")
		} else {
			meta.ContextRef = ref
		}
	}
	if meta.ContextRef == "" {
		meta.ContextRef = resolver.Unresolvable
	}

	n.Metadata = &meta
	return n
}

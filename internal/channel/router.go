package channel

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/tasknotify/telegram-relay-go/internal/model"
	"github.com/tasknotify/telegram-relay-go/internal/telegram"
)

// Transport is the outbound chat API surface the channel consumes.
// *telegram.Client satisfies it; tests substitute mocks.
type Transport interface {
	GetMe(ctx context.Context) (*telegram.User, error)
	SendMessage(ctx context.Context, params telegram.SendMessageParams) error
}

// Router dispatches the ordered parts of one notification to a single
// chat, strictly sequentially: part N+1 is only sent after the transport
// acknowledged part N. The first failure aborts the remaining sends.
// Messages already delivered stay visible; undoing them is not possible.
type Router struct {
	transport Transport
}

func NewRouter(transport Transport) *Router {
	return &Router{transport: transport}
}

func (r *Router) Deliver(ctx context.Context, parts []model.MessagePart, chatID, token string) error {
	for i, part := range parts {
		params := telegram.SendMessageParams{
			ChatID:    chatID,
			Text:      part.Text,
			ParseMode: telegram.ParseModeMarkdown,
		}
		if part.Interactive {
			params.ReplyMarkup = replyKeyboard(token)
		}

		if err := r.transport.SendMessage(ctx, params); err != nil {
			log.Error().
				Err(err).
				Int("part", i+1).
				Int("total", len(parts)).
				Str("chatId", chatID).
				Msg("message part send failed, aborting remaining parts")
			return fmt.Errorf("send part %d of %d: %w", i+1, len(parts), err)
		}
	}
	return nil
}

// replyKeyboard builds the routing controls attached to the header part.
// Each button returns the token plus a routing discriminator, so a press
// tells the receiver which chat surface to continue on without the human
// retyping anything.
func replyKeyboard(token string) *telegram.InlineKeyboardMarkup {
	return &telegram.InlineKeyboardMarkup{
		InlineKeyboard: [][]telegram.InlineKeyboardButton{{
			{Text: "💬 Reply in personal chat", CallbackData: "route:personal:" + token},
			{Text: "👥 Reply in group chat", CallbackData: "route:group:" + token},
		}},
	}
}

// Package line adapts the LINE Messaging API to the bot's platform-neutral
// event and reply types.
package line

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"
	"github.com/line/line-bot-sdk-go/v8/linebot/webhook"

	"shuttle_booking_backend/internal/models"
	"shuttle_booking_backend/pkg/utils"
)

// ErrInvalidSignature is returned when a webhook body does not match its X-Line-Signature.
var ErrInvalidSignature = errors.New("invalid webhook signature")

// maxReplyMessages is the platform's per-reply message limit.
const maxReplyMessages = 5

// Client receives webhook deliveries and sends replies.
type Client interface {
	// ParseRequest verifies the delivery signature and returns the events the bot handles.
	ParseRequest(r *http.Request) ([]models.InboundEvent, error)
	// Reply sends one reply batch for replyToken.
	Reply(ctx context.Context, replyToken string, msgs []models.ReplyMessage) error
}

type client struct {
	channelSecret string
	api           *messaging_api.MessagingApiAPI
}

// NewClient creates a LINE client for the given channel credentials.
func NewClient(channelSecret, channelToken string) (Client, error) {
	api, err := messaging_api.NewMessagingApiAPI(channelToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create messaging api client: %w", err)
	}
	return &client{channelSecret: channelSecret, api: api}, nil
}

func (c *client) ParseRequest(r *http.Request) ([]models.InboundEvent, error) {
	cb, err := webhook.ParseRequest(c.channelSecret, r)
	if err != nil {
		if errors.Is(err, webhook.ErrInvalidSignature) {
			return nil, ErrInvalidSignature
		}
		return nil, fmt.Errorf("failed to parse webhook body: %w", err)
	}
	events := make([]models.InboundEvent, 0, len(cb.Events))
	for _, e := range cb.Events {
		if ev, ok := toInboundEvent(e); ok {
			events = append(events, ev)
		}
	}
	return events, nil
}

// toInboundEvent keeps text messages and postbacks from identifiable users.
func toInboundEvent(e webhook.EventInterface) (models.InboundEvent, bool) {
	switch ev := e.(type) {
	case webhook.MessageEvent:
		text, ok := ev.Message.(webhook.TextMessageContent)
		if !ok {
			return models.InboundEvent{}, false
		}
		userID := sourceUserID(ev.Source)
		if userID == "" {
			return models.InboundEvent{}, false
		}
		return models.InboundEvent{ChatIdentity: userID, Kind: models.EventText, Payload: text.Text, ReplyToken: ev.ReplyToken}, true
	case webhook.PostbackEvent:
		userID := sourceUserID(ev.Source)
		if userID == "" || ev.Postback == nil {
			return models.InboundEvent{}, false
		}
		return models.InboundEvent{ChatIdentity: userID, Kind: models.EventStructuredAction, Payload: ev.Postback.Data, ReplyToken: ev.ReplyToken}, true
	default:
		return models.InboundEvent{}, false
	}
}

func sourceUserID(src webhook.SourceInterface) string {
	switch s := src.(type) {
	case webhook.UserSource:
		return s.UserId
	case webhook.GroupSource:
		return s.UserId
	case webhook.RoomSource:
		return s.UserId
	default:
		return ""
	}
}

func (c *client) Reply(ctx context.Context, replyToken string, msgs []models.ReplyMessage) error {
	if replyToken == "" || len(msgs) == 0 {
		return nil
	}
	if len(msgs) > maxReplyMessages {
		utils.LogWarn("Reply batch truncated", map[string]interface{}{"messages": len(msgs)})
		msgs = msgs[:maxReplyMessages]
	}
	_, err := c.api.WithContext(ctx).ReplyMessage(&messaging_api.ReplyMessageRequest{
		ReplyToken: replyToken,
		Messages:   ToMessages(msgs),
	})
	if err != nil {
		return fmt.Errorf("failed to send reply: %w", err)
	}
	return nil
}

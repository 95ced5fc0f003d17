package line

import (
	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"

	"shuttle_booking_backend/internal/models"
)

// Platform limits for template and quick reply messages.
const (
	maxButtonsActions = 4
	maxQuickReplies   = 13
	maxActionLabel    = 20
	maxButtonsTitle   = 40
	maxButtonsText    = 60
	maxAltText        = 400
)

// ToMessages converts a reply batch into Messaging API messages. A buttons reply
// with more actions than a template allows becomes a text message whose actions
// are offered as quick replies.
func ToMessages(msgs []models.ReplyMessage) []messaging_api.MessageInterface {
	out := make([]messaging_api.MessageInterface, 0, len(msgs))
	for _, m := range msgs {
		switch m.Type {
		case models.ReplyImage:
			out = append(out, &messaging_api.ImageMessage{
				OriginalContentUrl: m.ImageURL,
				PreviewImageUrl:    m.ImageURL,
				QuickReply:         quickReply(m.QuickReplies),
			})
		case models.ReplyButtons:
			if len(m.Actions) > maxButtonsActions {
				text := m.Text
				if m.Title != "" {
					text = m.Title + "\n" + m.Text
				}
				out = append(out, &messaging_api.TextMessage{
					Text:       text,
					QuickReply: quickReply(append(append([]models.ReplyAction{}, m.Actions...), m.QuickReplies...)),
				})
				continue
			}
			out = append(out, &messaging_api.TemplateMessage{
				AltText: truncate(m.AltText, maxAltText),
				Template: &messaging_api.ButtonsTemplate{
					Title:   truncate(m.Title, maxButtonsTitle),
					Text:    truncate(m.Text, maxButtonsText),
					Actions: postbackActions(m.Actions),
				},
				QuickReply: quickReply(m.QuickReplies),
			})
		default:
			out = append(out, &messaging_api.TextMessage{
				Text:       m.Text,
				QuickReply: quickReply(m.QuickReplies),
			})
		}
	}
	return out
}

func postbackAction(a models.ReplyAction) *messaging_api.PostbackAction {
	return &messaging_api.PostbackAction{Label: truncate(a.Label, maxActionLabel), Data: a.Data}
}

func postbackActions(actions []models.ReplyAction) []messaging_api.ActionInterface {
	out := make([]messaging_api.ActionInterface, 0, len(actions))
	for _, a := range actions {
		out = append(out, postbackAction(a))
	}
	return out
}

func quickReply(actions []models.ReplyAction) *messaging_api.QuickReply {
	if len(actions) == 0 {
		return nil
	}
	if len(actions) > maxQuickReplies {
		actions = actions[:maxQuickReplies]
	}
	items := make([]messaging_api.QuickReplyItem, 0, len(actions))
	for _, a := range actions {
		items = append(items, messaging_api.QuickReplyItem{Type: "action", Action: postbackAction(a)})
	}
	return &messaging_api.QuickReply{Items: items}
}

// truncate shortens s to at most n runes.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

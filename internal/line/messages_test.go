package line

import (
	"testing"

	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"

	"shuttle_booking_backend/internal/models"
)

func TestToMessagesButtons(t *testing.T) {
	msgs := ToMessages([]models.ReplyMessage{
		models.ButtonsReply("Title", "Pick one", "Alt",
			models.ReplyAction{Label: "A", Data: "action=bus_booking"},
			models.ReplyAction{Label: "B", Data: "action=meal_booking"},
		),
	})
	if len(msgs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(msgs))
	}
	tm, ok := msgs[0].(*messaging_api.TemplateMessage)
	if !ok {
		t.Fatalf("expected template message, got %T", msgs[0])
	}
	bt, ok := tm.Template.(*messaging_api.ButtonsTemplate)
	if !ok {
		t.Fatalf("expected buttons template, got %T", tm.Template)
	}
	if bt.Title != "Title" || len(bt.Actions) != 2 {
		t.Errorf("unexpected template: %+v", bt)
	}
	pa := bt.Actions[1].(*messaging_api.PostbackAction)
	if pa.Data != "action=meal_booking" {
		t.Errorf("unexpected postback data %q", pa.Data)
	}
}

func TestToMessagesTooManyActionsFallsBackToQuickReplies(t *testing.T) {
	actions := make([]models.ReplyAction, 6)
	for i := range actions {
		actions[i] = models.ReplyAction{Label: "route", Data: "action=bus_route"}
	}
	msgs := ToMessages([]models.ReplyMessage{models.ButtonsReply("Routes", "Choose", "Routes", actions...)})

	text, ok := msgs[0].(*messaging_api.TextMessage)
	if !ok {
		t.Fatalf("expected text message, got %T", msgs[0])
	}
	if text.Text != "Routes\nChoose" {
		t.Errorf("unexpected text %q", text.Text)
	}
	if text.QuickReply == nil || len(text.QuickReply.Items) != 6 {
		t.Fatalf("expected 6 quick replies, got %+v", text.QuickReply)
	}
}

func TestToMessagesTextAndImage(t *testing.T) {
	msgs := ToMessages([]models.ReplyMessage{
		models.TextReply("hello", models.ReplyAction{Label: "🏠 Main Menu", Data: "action=main_menu"}),
		models.ImageReply("https://example.com/qr/IGA1-02849-20250115"),
	})
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	text := msgs[0].(*messaging_api.TextMessage)
	if text.QuickReply == nil || text.QuickReply.Items[0].Type != "action" {
		t.Errorf("expected a quick reply item, got %+v", text.QuickReply)
	}
	img := msgs[1].(*messaging_api.ImageMessage)
	if img.OriginalContentUrl != img.PreviewImageUrl || img.OriginalContentUrl == "" {
		t.Errorf("unexpected image urls: %+v", img)
	}
}

func TestTruncateCountsRunes(t *testing.T) {
	if got := truncate("🍱 3F - 便當, 麵食, 輕食, 自助餐, 飲料吧", 10); len([]rune(got)) != 10 {
		t.Errorf("expected 10 runes, got %d (%q)", len([]rune(got)), got)
	}
	if got := truncate("short", 20); got != "short" {
		t.Errorf("unexpected %q", got)
	}
}

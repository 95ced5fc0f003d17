package models

// EventKind distinguishes free text from structured postback events.
type EventKind string

const (
	EventText             EventKind = "text"
	EventStructuredAction EventKind = "structured_action"
)

// InboundEvent is a platform-neutral webhook event.
type InboundEvent struct {
	ChatIdentity string
	Kind         EventKind
	Payload      string
	ReplyToken   string
}

// ReplyType is the shape of an outbound message.
type ReplyType string

const (
	ReplyText    ReplyType = "text"
	ReplyImage   ReplyType = "image"
	ReplyButtons ReplyType = "buttons"
)

// ReplyAction is a button or quick reply that posts back Data.
type ReplyAction struct {
	Label string
	Data  string
}

// ReplyMessage is one outbound message of a reply batch.
type ReplyMessage struct {
	Type         ReplyType
	Text         string
	Title        string // buttons only
	AltText      string // buttons only
	ImageURL     string // image only
	Actions      []ReplyAction
	QuickReplies []ReplyAction
}

// TextReply builds a plain text message with optional quick replies.
func TextReply(text string, quick ...ReplyAction) ReplyMessage {
	return ReplyMessage{Type: ReplyText, Text: text, QuickReplies: quick}
}

// ButtonsReply builds a buttons template message.
func ButtonsReply(title, text, altText string, actions ...ReplyAction) ReplyMessage {
	return ReplyMessage{Type: ReplyButtons, Title: title, Text: text, AltText: altText, Actions: actions}
}

// ImageReply builds an image message.
func ImageReply(url string) ReplyMessage {
	return ReplyMessage{Type: ReplyImage, ImageURL: url}
}

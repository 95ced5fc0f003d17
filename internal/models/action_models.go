package models

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ActionKind is the closed set of postback actions the bot understands.
type ActionKind int

const (
	ActionMainMenu ActionKind = iota + 1
	ActionGenerateQR
	ActionLanguageMenu
	ActionChangeLanguage
	ActionCancelBooking
	ActionCancelConfirm
	ActionBusBooking
	ActionBusRoute
	ActionBusConfirm
	ActionMealBooking
	ActionMealConfirm
	ActionViewBooking
)

var actionNames = map[ActionKind]string{
	ActionMainMenu:       "main_menu",
	ActionGenerateQR:     "generate_qr",
	ActionLanguageMenu:   "language_menu",
	ActionChangeLanguage: "change_language",
	ActionCancelBooking:  "cancel_booking",
	ActionCancelConfirm:  "cancel_confirm",
	ActionBusBooking:     "bus_booking",
	ActionBusRoute:       "bus_route",
	ActionBusConfirm:     "bus_confirm",
	ActionMealBooking:    "meal_booking",
	ActionMealConfirm:    "meal_confirm",
	ActionViewBooking:    "view_booking",
}

var actionsByName = func() map[string]ActionKind {
	m := make(map[string]ActionKind, len(actionNames))
	for k, v := range actionNames {
		m[v] = k
	}
	return m
}()

// String returns the wire tag of the action.
func (k ActionKind) String() string {
	if name, ok := actionNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ActionKind(%d)", int(k))
}

var (
	// ErrMalformedAction is returned when a postback payload cannot be decoded.
	ErrMalformedAction = errors.New("malformed postback payload")
	// ErrUnknownAction is returned for an action tag outside the known set.
	ErrUnknownAction = errors.New("unknown postback action")
)

// Action is a decoded postback payload.
type Action struct {
	Kind   ActionKind
	Params url.Values
}

// Param returns the first value of key, or "".
func (a Action) Param(key string) string {
	return a.Params.Get(key)
}

// ParseAction decodes a payload such as "action=bus_confirm&schedule_id=3&time=17:45".
func ParseAction(payload string) (Action, error) {
	params, err := url.ParseQuery(strings.TrimSpace(payload))
	if err != nil {
		return Action{}, fmt.Errorf("%w: %v", ErrMalformedAction, err)
	}
	tag := params.Get("action")
	if tag == "" {
		return Action{}, fmt.Errorf("%w: missing action key", ErrMalformedAction)
	}
	kind, ok := actionsByName[tag]
	if !ok {
		return Action{}, fmt.Errorf("%w: %q", ErrUnknownAction, tag)
	}
	return Action{Kind: kind, Params: params}, nil
}

// EncodeAction builds a postback payload for kind with the given key/value pairs.
// Pairs keep their order so payloads stay readable in logs.
func EncodeAction(kind ActionKind, kv ...string) string {
	var b strings.Builder
	b.WriteString("action=")
	b.WriteString(kind.String())
	for i := 0; i+1 < len(kv); i += 2 {
		b.WriteString("&")
		b.WriteString(url.QueryEscape(kv[i]))
		b.WriteString("=")
		b.WriteString(url.QueryEscape(kv[i+1]))
	}
	return b.String()
}

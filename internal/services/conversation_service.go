package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"shuttle_booking_backend/internal/i18n"
	"shuttle_booking_backend/internal/models"
	"shuttle_booking_backend/pkg/utils"
)

var greetingKeywords = []string{"你好", "hi", "hello", "開始", "選單", "menu", "xin chào"}

// ConversationService turns one inbound chat event into one reply batch.
type ConversationService interface {
	HandleEvent(ctx context.Context, ev models.InboundEvent) []models.ReplyMessage
}

type conversationService struct {
	binding      BindingService
	catalog      CatalogService
	bookings     BookingService
	verification VerificationService
	employees    EmployeeService
	admission    AdmissionPolicy
	now          Clock
	qrBaseURL    string
}

// NewConversationService creates a new instance of ConversationService.
// publicBaseURL is the externally reachable origin serving /qr/:code.
func NewConversationService(
	binding BindingService,
	catalog CatalogService,
	bookings BookingService,
	verification VerificationService,
	employees EmployeeService,
	admission AdmissionPolicy,
	now Clock,
	publicBaseURL string,
) ConversationService {
	return &conversationService{
		binding:      binding,
		catalog:      catalog,
		bookings:     bookings,
		verification: verification,
		employees:    employees,
		admission:    admission,
		now:          now,
		qrBaseURL:    strings.TrimRight(publicBaseURL, "/") + "/qr/",
	}
}

func (s *conversationService) HandleEvent(ctx context.Context, ev models.InboundEvent) []models.ReplyMessage {
	switch ev.Kind {
	case models.EventText:
		return s.handleText(ctx, ev)
	case models.EventStructuredAction:
		return s.handleAction(ctx, ev)
	default:
		utils.LogDebug("Ignoring unsupported event", map[string]interface{}{"kind": ev.Kind})
		return nil
	}
}

func (s *conversationService) handleText(ctx context.Context, ev models.InboundEvent) []models.ReplyMessage {
	text := strings.TrimSpace(ev.Payload)
	employee, err := s.binding.Resolve(ctx, ev.ChatIdentity)
	if err != nil {
		utils.LogError(err, "Failed to resolve chat identity")
		return reply(models.TextReply(i18n.T(models.DefaultLanguage, i18n.SystemError)))
	}

	if employee == nil {
		if utils.LooksLikeEmployeeCode(text) {
			return s.bind(ctx, ev.ChatIdentity, text, models.DefaultLanguage)
		}
		return reply(models.TextReply(i18n.T(models.DefaultLanguage, i18n.BindRequired)))
	}

	lang := employee.PreferredLanguage
	switch {
	case isGreeting(text):
		return reply(mainMenu(lang))
	case utils.LooksLikeEmployeeCode(text):
		return s.bind(ctx, ev.ChatIdentity, text, lang)
	default:
		return reply(models.TextReply(i18n.T(lang, i18n.Welcome), homeAction(lang)))
	}
}

func isGreeting(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range greetingKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func (s *conversationService) bind(ctx context.Context, chatIdentity, code string, lang models.Language) []models.ReplyMessage {
	employee, err := s.binding.Bind(ctx, chatIdentity, code)
	if err != nil {
		if errors.Is(err, ErrEmployeeNotFound) {
			reason := i18n.T(lang, i18n.BindUnknownEmployee, utils.NormalizeEmployeeCode(code))
			return reply(models.TextReply(i18n.T(lang, i18n.BindFailed, reason)))
		}
		utils.LogError(err, "Binding failed")
		return reply(models.TextReply(i18n.T(lang, i18n.BindFailed, i18n.T(lang, i18n.SystemError))))
	}
	lang = employee.PreferredLanguage
	return reply(models.TextReply(i18n.T(lang, i18n.BindSuccess, employee.Name), homeAction(lang)))
}

func (s *conversationService) handleAction(ctx context.Context, ev models.InboundEvent) []models.ReplyMessage {
	employee, err := s.binding.Resolve(ctx, ev.ChatIdentity)
	if err != nil {
		utils.LogError(err, "Failed to resolve chat identity")
		return reply(models.TextReply(i18n.T(models.DefaultLanguage, i18n.SystemError)))
	}
	if employee == nil {
		return reply(models.TextReply(i18n.T(models.DefaultLanguage, i18n.BindRequired)))
	}
	lang := employee.PreferredLanguage

	action, err := models.ParseAction(ev.Payload)
	if err != nil {
		utils.LogWarn("Rejected postback", map[string]interface{}{"payload": ev.Payload, "error": err.Error()})
		return reply(models.TextReply(i18n.T(lang, i18n.SystemError)))
	}

	switch action.Kind {
	case models.ActionMainMenu:
		return reply(mainMenu(lang))
	case models.ActionGenerateQR:
		return s.generateQR(ctx, employee)
	case models.ActionLanguageMenu:
		return reply(languageMenu(lang))
	case models.ActionChangeLanguage:
		return s.changeLanguage(ctx, employee, action)
	case models.ActionCancelBooking:
		return reply(cancelMenu(lang))
	case models.ActionCancelConfirm:
		return s.cancelConfirm(ctx, employee, action)
	case models.ActionBusBooking:
		return s.busBooking(ctx, employee)
	case models.ActionBusRoute:
		return s.busRoute(ctx, employee, action)
	case models.ActionBusConfirm:
		return s.busConfirm(ctx, employee, action)
	case models.ActionMealBooking:
		return s.mealBooking(ctx, employee)
	case models.ActionMealConfirm:
		return s.mealConfirm(ctx, employee, action)
	case models.ActionViewBooking:
		return s.viewBooking(ctx, employee)
	default:
		return reply(models.TextReply(i18n.T(lang, i18n.SystemError)))
	}
}

func (s *conversationService) today() time.Time {
	return models.BookingDate(s.now())
}

func (s *conversationService) generateQR(ctx context.Context, employee *models.EmployeeSummary) []models.ReplyMessage {
	lang := employee.PreferredLanguage
	ticket, err := s.verification.Ticket(ctx, employee, s.today())
	if err != nil {
		if errors.Is(err, ErrNoMealOrder) {
			return reply(models.TextReply(i18n.T(lang, i18n.QRCodeInvalid), homeAction(lang)))
		}
		utils.LogError(err, "Failed to load meal ticket", map[string]interface{}{"employee_id": employee.Code})
		return reply(models.TextReply(i18n.T(lang, i18n.SystemError)))
	}

	text := i18n.T(lang, i18n.QRCodeTitle) + "\n\n" + i18n.T(lang, i18n.QRCodeDesc) + "\n\n" +
		i18n.T(lang, i18n.QRCodeDetails, ticket.EmployeeName, ticket.Restaurant.In(lang), ticket.Floor,
			ticket.Date.Format(models.DateLayout), ticket.Code)
	return reply(
		models.TextReply(text, homeAction(lang)),
		models.ImageReply(s.qrBaseURL+url.PathEscape(ticket.Code)),
	)
}

func (s *conversationService) changeLanguage(ctx context.Context, employee *models.EmployeeSummary, action models.Action) []models.ReplyMessage {
	newLang, ok := i18n.Match(action.Param("lang"))
	if !ok {
		return reply(models.TextReply(i18n.T(employee.PreferredLanguage, i18n.InvalidSelection), homeAction(employee.PreferredLanguage)))
	}
	if err := s.employees.SetLanguage(ctx, employee.ID, newLang); err != nil {
		utils.LogError(err, "Failed to change language", map[string]interface{}{"employee_id": employee.Code})
		return reply(models.TextReply(i18n.T(employee.PreferredLanguage, i18n.SystemError)))
	}
	return reply(models.TextReply(i18n.T(newLang, i18n.LanguageChanged, i18n.LanguageName(newLang)), homeAction(newLang)))
}

func (s *conversationService) cancelConfirm(ctx context.Context, employee *models.EmployeeSummary, action models.Action) []models.ReplyMessage {
	lang := employee.PreferredLanguage
	kind, err := models.ParseBookingKind(action.Param("type"))
	if err != nil {
		return reply(models.TextReply(i18n.T(lang, i18n.InvalidSelection), homeAction(lang)))
	}
	n, err := s.bookings.Cancel(ctx, employee.ID, s.today(), kind)
	if err != nil {
		utils.LogError(err, "Cancel failed", map[string]interface{}{"employee_id": employee.Code, "kind": kind})
		return reply(models.TextReply(i18n.T(lang, i18n.CancelFailed, i18n.T(lang, i18n.SystemError))))
	}
	if n == 0 {
		return reply(models.TextReply(i18n.T(lang, i18n.NothingToCancel), homeAction(lang)))
	}
	return reply(models.TextReply(i18n.T(lang, i18n.CancelSuccess, i18n.KindName(lang, kind)), homeAction(lang)))
}

// admitted runs the admission pre-check that guards the booking menus. A nil
// result means the menu may be shown.
func (s *conversationService) admitted(ctx context.Context, employee *models.EmployeeSummary, kind models.BookingKind) []models.ReplyMessage {
	err := s.admission.Admit(ctx, employee.ShiftType, kind, s.now())
	if err == nil {
		return nil
	}
	return reply(s.bookingErrorReply(employee, kind, err))
}

func (s *conversationService) bookingErrorReply(employee *models.EmployeeSummary, kind models.BookingKind, err error) models.ReplyMessage {
	lang := employee.PreferredLanguage
	var denied *DeniedError
	switch {
	case errors.As(err, &denied):
		return models.TextReply(i18n.T(lang, i18n.TimeLimitExceeded, denied.Deadline), homeAction(lang))
	case errors.Is(err, ErrInvalidSelection):
		return models.TextReply(i18n.T(lang, i18n.InvalidSelection), homeAction(lang))
	default:
		utils.LogError(err, "Booking failed", map[string]interface{}{"employee_id": employee.Code, "kind": kind})
		return models.TextReply(i18n.T(lang, i18n.BookingFailed, i18n.T(lang, i18n.SystemError)), homeAction(lang))
	}
}

func (s *conversationService) busBooking(ctx context.Context, employee *models.EmployeeSummary) []models.ReplyMessage {
	if denied := s.admitted(ctx, employee, models.BookingKindBus); denied != nil {
		return denied
	}
	lang := employee.PreferredLanguage
	routes, err := s.catalog.ListRoutes(ctx)
	if err != nil {
		utils.LogError(err, "Failed to list routes")
		return reply(models.TextReply(i18n.T(lang, i18n.SystemError)))
	}

	actions := make([]models.ReplyAction, 0, len(routes)+1)
	for _, r := range routes {
		actions = append(actions, models.ReplyAction{
			Label: "🚌 " + r.Name.In(lang),
			Data:  models.EncodeAction(models.ActionBusRoute, "route_id", utils.Int64ToStr(r.ID), "route_code", r.Code),
		})
	}
	actions = append(actions, backAction(lang))
	title := i18n.T(lang, i18n.RouteSelection)
	return reply(models.ButtonsReply(title, i18n.T(lang, i18n.RouteSelectionText), title, actions...))
}

func (s *conversationService) busRoute(ctx context.Context, employee *models.EmployeeSummary, action models.Action) []models.ReplyMessage {
	lang := employee.PreferredLanguage
	routeID, err := utils.StrToInt64(action.Param("route_id"))
	if err != nil {
		return reply(models.TextReply(i18n.T(lang, i18n.InvalidSelection), homeAction(lang)))
	}
	schedules, err := s.catalog.ListSchedules(ctx, routeID, employee.ShiftType)
	if err != nil {
		utils.LogError(err, "Failed to list schedules", map[string]interface{}{"route_id": routeID})
		return reply(models.TextReply(i18n.T(lang, i18n.SystemError)))
	}
	if len(schedules) == 0 {
		return reply(models.TextReply(i18n.T(lang, i18n.NoSchedules), homeAction(lang)))
	}

	actions := make([]models.ReplyAction, 0, len(schedules)+1)
	for _, sc := range schedules {
		label := strings.TrimSpace("🕐 " + sc.DepartureTime + " " + sc.Label.In(lang))
		actions = append(actions, models.ReplyAction{
			Label: label,
			Data:  models.EncodeAction(models.ActionBusConfirm, "schedule_id", utils.Int64ToStr(sc.ID), "time", sc.DepartureTime),
		})
	}
	actions = append(actions, backAction(lang))
	title := schedules[0].RouteName.In(lang)
	return reply(models.ButtonsReply(title, i18n.T(lang, i18n.ScheduleSelectionText), title, actions...))
}

func (s *conversationService) busConfirm(ctx context.Context, employee *models.EmployeeSummary, action models.Action) []models.ReplyMessage {
	lang := employee.PreferredLanguage
	scheduleID, err := utils.StrToInt64(action.Param("schedule_id"))
	if err != nil {
		return reply(models.TextReply(i18n.T(lang, i18n.InvalidSelection), homeAction(lang)))
	}
	now := s.now()
	today := models.BookingDate(now)
	if _, err := s.bookings.Create(ctx, employee, models.BookingKindBus, scheduleID, now); err != nil {
		return reply(s.bookingErrorReply(employee, models.BookingKindBus, err))
	}
	text := i18n.T(lang, i18n.BookingSuccess) + "\n\n" +
		i18n.T(lang, i18n.BusBooked, action.Param("time"), today.Format(models.DateLayout))
	return reply(models.TextReply(text,
		homeAction(lang),
		models.ReplyAction{Label: i18n.T(lang, i18n.BookAgainBus), Data: models.EncodeAction(models.ActionBusBooking)},
	))
}

func (s *conversationService) mealBooking(ctx context.Context, employee *models.EmployeeSummary) []models.ReplyMessage {
	if denied := s.admitted(ctx, employee, models.BookingKindMeal); denied != nil {
		return denied
	}
	lang := employee.PreferredLanguage
	floors, err := s.catalog.ListRestaurantsByFloor(ctx)
	if err != nil {
		utils.LogError(err, "Failed to list restaurants")
		return reply(models.TextReply(i18n.T(lang, i18n.SystemError)))
	}

	actions := make([]models.ReplyAction, 0, len(floors)+1)
	for _, g := range floors {
		names := make([]string, 0, len(g.Restaurants))
		ids := make([]string, 0, len(g.Restaurants))
		for _, r := range g.Restaurants {
			names = append(names, r.Name.In(lang))
			ids = append(ids, utils.Int64ToStr(r.ID))
		}
		actions = append(actions, models.ReplyAction{
			Label: fmt.Sprintf("🍱 %s - %s", g.Floor, strings.Join(names, ", ")),
			Data:  models.EncodeAction(models.ActionMealConfirm, "restaurant_ids", strings.Join(ids, ","), "floor", g.Floor),
		})
	}
	actions = append(actions, backAction(lang))
	title := i18n.T(lang, i18n.MealLocation)
	return reply(models.ButtonsReply(title, i18n.T(lang, i18n.MealLocationText), title, actions...))
}

func (s *conversationService) mealConfirm(ctx context.Context, employee *models.EmployeeSummary, action models.Action) []models.ReplyMessage {
	lang := employee.PreferredLanguage
	ids, err := utils.SplitInt64s(action.Param("restaurant_ids"))
	if err != nil || len(ids) == 0 {
		return reply(models.TextReply(i18n.T(lang, i18n.InvalidSelection), homeAction(lang)))
	}
	now := s.now()
	today := models.BookingDate(now)
	// A floor may list several restaurants; the first one takes the order.
	if _, err := s.bookings.Create(ctx, employee, models.BookingKindMeal, ids[0], now); err != nil {
		return reply(s.bookingErrorReply(employee, models.BookingKindMeal, err))
	}
	text := i18n.T(lang, i18n.BookingSuccess) + "\n\n" +
		i18n.T(lang, i18n.MealBooked, action.Param("floor"), today.Format(models.DateLayout))
	return reply(models.TextReply(text,
		homeAction(lang),
		models.ReplyAction{Label: i18n.T(lang, i18n.BookAgainMeal), Data: models.EncodeAction(models.ActionMealBooking)},
	))
}

func (s *conversationService) viewBooking(ctx context.Context, employee *models.EmployeeSummary) []models.ReplyMessage {
	lang := employee.PreferredLanguage
	today := s.today()
	bookings, err := s.bookings.ViewToday(ctx, employee.ID, today)
	if err != nil {
		utils.LogError(err, "Failed to list bookings", map[string]interface{}{"employee_id": employee.Code})
		return reply(models.TextReply(i18n.T(lang, i18n.SystemError)))
	}
	if len(bookings) == 0 {
		return reply(models.TextReply(i18n.T(lang, i18n.NoBookings), homeAction(lang)))
	}

	var b strings.Builder
	b.WriteString(i18n.T(lang, i18n.TodayBookings, today.Format(models.DateLayout)))
	b.WriteString("\n")
	for _, bk := range bookings {
		b.WriteString("\n")
		if bk.Kind == models.BookingKindBus {
			b.WriteString(i18n.T(lang, i18n.BusBookingLine, bk.Place.In(lang), bk.DepartureTime, bk.Detail.In(lang)))
		} else {
			b.WriteString(i18n.T(lang, i18n.MealBookingLine, bk.Floor, bk.Place.In(lang)))
		}
	}
	return reply(models.TextReply(b.String(), homeAction(lang)))
}

// --- menus ---

func reply(msgs ...models.ReplyMessage) []models.ReplyMessage {
	return msgs
}

func homeAction(lang models.Language) models.ReplyAction {
	return models.ReplyAction{Label: i18n.T(lang, i18n.MenuHome), Data: models.EncodeAction(models.ActionMainMenu)}
}

func backAction(lang models.Language) models.ReplyAction {
	return models.ReplyAction{Label: i18n.T(lang, i18n.BackToMenu), Data: models.EncodeAction(models.ActionMainMenu)}
}

func mainMenu(lang models.Language) models.ReplyMessage {
	title := i18n.T(lang, i18n.MainMenuTitle)
	msg := models.ButtonsReply(title, i18n.T(lang, i18n.MainMenuText), title,
		models.ReplyAction{Label: i18n.T(lang, i18n.MenuBusBooking), Data: models.EncodeAction(models.ActionBusBooking)},
		models.ReplyAction{Label: i18n.T(lang, i18n.MenuMealBooking), Data: models.EncodeAction(models.ActionMealBooking)},
		models.ReplyAction{Label: i18n.T(lang, i18n.MenuViewBooking), Data: models.EncodeAction(models.ActionViewBooking)},
		models.ReplyAction{Label: i18n.T(lang, i18n.MenuCancelBooking), Data: models.EncodeAction(models.ActionCancelBooking)},
	)
	msg.QuickReplies = []models.ReplyAction{
		{Label: i18n.T(lang, i18n.MenuQRCode), Data: models.EncodeAction(models.ActionGenerateQR)},
		{Label: i18n.T(lang, i18n.MenuLanguage), Data: models.EncodeAction(models.ActionLanguageMenu)},
	}
	return msg
}

// languageMenu offers every language except the current one.
func languageMenu(current models.Language) models.ReplyMessage {
	actions := []models.ReplyAction{}
	for _, l := range models.SupportedLanguages {
		if l == current {
			continue
		}
		actions = append(actions, models.ReplyAction{
			Label: i18n.LanguageName(l),
			Data:  models.EncodeAction(models.ActionChangeLanguage, "lang", string(l)),
		})
	}
	actions = append(actions, backAction(current))
	return models.ButtonsReply(i18n.T(current, i18n.LanguageMenuTitle), i18n.T(current, i18n.LanguageMenuText), "Language Settings", actions...)
}

func cancelMenu(lang models.Language) models.ReplyMessage {
	title := i18n.T(lang, i18n.CancelMenuTitle)
	return models.ButtonsReply(title, i18n.T(lang, i18n.CancelMenuText), title,
		models.ReplyAction{Label: i18n.T(lang, i18n.CancelBus), Data: models.EncodeAction(models.ActionCancelConfirm, "type", string(models.BookingKindBus))},
		models.ReplyAction{Label: i18n.T(lang, i18n.CancelMeal), Data: models.EncodeAction(models.ActionCancelConfirm, "type", string(models.BookingKindMeal))},
		backAction(lang),
	)
}

// Package i18n holds the bot's user-facing texts in every supported language.
package i18n

import (
	"fmt"

	"shuttle_booking_backend/internal/models"
)

// Key names one user-facing message.
type Key string

const (
	Welcome               Key = "welcome"
	BindRequired          Key = "bind_required"
	BindSuccess           Key = "bind_success"
	BindFailed            Key = "bind_failed"
	BindUnknownEmployee   Key = "bind_unknown_employee"
	MainMenuTitle         Key = "main_menu_title"
	MainMenuText          Key = "main_menu_text"
	MenuBusBooking        Key = "bus_booking"
	MenuMealBooking       Key = "meal_booking"
	MenuViewBooking       Key = "view_booking"
	MenuCancelBooking     Key = "cancel_booking"
	MenuLanguage          Key = "language"
	MenuQRCode            Key = "qr_code"
	MenuHome              Key = "home"
	RouteSelection        Key = "route_selection"
	RouteSelectionText    Key = "route_selection_text"
	ScheduleSelectionText Key = "schedule_selection_text"
	NoSchedules           Key = "no_schedules"
	MealLocation          Key = "meal_location"
	MealLocationText      Key = "meal_location_text"
	BackToMenu            Key = "back_to_menu"
	BookingSuccess        Key = "booking_success"
	BookingFailed         Key = "booking_failed"
	BusBooked             Key = "bus_booked"
	MealBooked            Key = "meal_booked"
	BookAgainBus          Key = "book_again_bus"
	BookAgainMeal         Key = "book_again_meal"
	InvalidSelection      Key = "invalid_selection"
	TimeLimitExceeded     Key = "time_limit_exceeded"
	NoBookings            Key = "no_bookings"
	TodayBookings         Key = "today_bookings"
	BusBookingLine        Key = "bus_booking_line"
	MealBookingLine       Key = "meal_booking_line"
	QRCodeTitle           Key = "qr_code_title"
	QRCodeDesc            Key = "qr_code_desc"
	QRCodeDetails         Key = "qr_code_details"
	QRCodeInvalid         Key = "qr_code_invalid"
	LanguageMenuTitle     Key = "language_menu_title"
	LanguageMenuText      Key = "language_menu_text"
	LanguageChanged       Key = "language_changed"
	CancelMenuTitle       Key = "cancel_menu_title"
	CancelMenuText        Key = "cancel_menu_text"
	CancelBus             Key = "cancel_bus"
	CancelMeal            Key = "cancel_meal"
	CancelSuccess         Key = "cancel_success"
	CancelFailed          Key = "cancel_failed"
	NothingToCancel       Key = "nothing_to_cancel"
	KindBus               Key = "kind_bus"
	KindMeal              Key = "kind_meal"
	SystemError           Key = "system_error"
)

var messages = map[models.Language]map[Key]string{
	models.LangZh: {
		Welcome:               "歡迎使用交通車預約訂餐系統！",
		BindRequired:          "請先輸入您的員工編號進行綁定\n格式：IGA1-02849",
		BindSuccess:           "✅ 綁定成功！歡迎 %s！",
		BindFailed:            "❌ 綁定失敗：%s",
		BindUnknownEmployee:   "找不到員工編號 %s",
		MainMenuTitle:         "交通車預約訂餐系統",
		MainMenuText:          "請選擇您要使用的功能：",
		MenuBusBooking:        "🚌 預約交通車",
		MenuMealBooking:       "🍱 訂餐服務",
		MenuViewBooking:       "📋 查看我的預約",
		MenuCancelBooking:     "❌ 取消預約",
		MenuLanguage:          "🌐 語言設定",
		MenuQRCode:            "🔢 領餐QR碼",
		MenuHome:              "🏠 主選單",
		RouteSelection:        "選擇交通車路線",
		RouteSelectionText:    "請選擇您要預約的路線：",
		ScheduleSelectionText: "請選擇班次時間：",
		NoSchedules:           "目前沒有可用的班次",
		MealLocation:          "選擇取餐地點",
		MealLocationText:      "請選擇您要訂餐的地點：",
		BackToMenu:            "🔙 返回主選單",
		BookingSuccess:        "✅ 預約成功！",
		BookingFailed:         "❌ 預約失敗：%s",
		BusBooked:             "🚌 班次時間：%s\n📅 日期：%s",
		MealBooked:            "🍱 取餐地點：%s\n📅 日期：%s",
		BookAgainBus:          "🚌 再預約",
		BookAgainMeal:         "🍱 再訂餐",
		InvalidSelection:      "選項已失效，請重新選擇",
		TimeLimitExceeded:     "❌ 超過預約時間限制（截止 %s）",
		NoBookings:            "您目前沒有預約記錄",
		TodayBookings:         "📋 今日預約記錄 (%s):",
		BusBookingLine:        "🚌 交通車：%s %s (%s)",
		MealBookingLine:       "🍱 訂餐：%s %s",
		QRCodeTitle:           "🍱 領餐認證QR碼",
		QRCodeDesc:            "請向餐廳人員出示此QR碼領取餐點",
		QRCodeDetails:         "👤 %s\n🍱 %s\n📍 %s\n📅 %s\n\n🔢 驗證碼：%s",
		QRCodeInvalid:         "❌ 您今日沒有訂餐記錄，無法生成QR碼",
		LanguageMenuTitle:     "語言設定 Language",
		LanguageMenuText:      "選擇語言 Choose Language:",
		LanguageChanged:       "✅ 語言已切換為：%s",
		CancelMenuTitle:       "取消預約",
		CancelMenuText:        "請選擇要取消的項目:",
		CancelBus:             "🚌 取消交通車",
		CancelMeal:            "🍱 取消訂餐",
		CancelSuccess:         "✅ 取消成功！ (%s)",
		CancelFailed:          "❌ 取消失敗：%s",
		NothingToCancel:       "❌ 沒有可取消的預約",
		KindBus:               "交通車",
		KindMeal:              "訂餐",
		SystemError:           "系統錯誤，請重新開始",
	},
	models.LangEn: {
		Welcome:               "Welcome to Bus & Meal Booking System!",
		BindRequired:          "Please enter your employee ID for binding\nFormat: IGA1-02849",
		BindSuccess:           "✅ Binding successful! Welcome %s!",
		BindFailed:            "❌ Binding failed: %s",
		BindUnknownEmployee:   "employee ID %s not found",
		MainMenuTitle:         "Bus & Meal Booking System",
		MainMenuText:          "Please select the function you want to use:",
		MenuBusBooking:        "🚌 Book Bus",
		MenuMealBooking:       "🍱 Order Meal",
		MenuViewBooking:       "📋 View My Bookings",
		MenuCancelBooking:     "❌ Cancel Booking",
		MenuLanguage:          "🌐 Language",
		MenuQRCode:            "🔢 Meal QR Code",
		MenuHome:              "🏠 Main Menu",
		RouteSelection:        "Select Bus Route",
		RouteSelectionText:    "Please select the route you want to book:",
		ScheduleSelectionText: "Please select departure time:",
		NoSchedules:           "No departures are available right now",
		MealLocation:          "Select Meal Location",
		MealLocationText:      "Please select where you want to order:",
		BackToMenu:            "🔙 Back to Main Menu",
		BookingSuccess:        "✅ Booking successful!",
		BookingFailed:         "❌ Booking failed: %s",
		BusBooked:             "🚌 Departure: %s\n📅 Date: %s",
		MealBooked:            "🍱 Pickup: %s\n📅 Date: %s",
		BookAgainBus:          "🚌 Book again",
		BookAgainMeal:         "🍱 Order again",
		InvalidSelection:      "This option is no longer available, please choose again",
		TimeLimitExceeded:     "❌ Booking time limit exceeded (deadline %s)",
		NoBookings:            "You have no current bookings",
		TodayBookings:         "📋 Today's bookings (%s):",
		BusBookingLine:        "🚌 Bus: %s %s (%s)",
		MealBookingLine:       "🍱 Meal: %s %s",
		QRCodeTitle:           "🍱 Meal Pickup QR Code",
		QRCodeDesc:            "Please show this QR code to restaurant staff",
		QRCodeDetails:         "👤 %s\n🍱 %s\n📍 %s\n📅 %s\n\n🔢 Code: %s",
		QRCodeInvalid:         "❌ No meal order today, cannot generate QR code",
		LanguageMenuTitle:     "語言設定 Language",
		LanguageMenuText:      "選擇語言 Choose Language:",
		LanguageChanged:       "✅ Language changed to: %s",
		CancelMenuTitle:       "Cancel Booking",
		CancelMenuText:        "Select item to cancel:",
		CancelBus:             "🚌 Cancel Bus",
		CancelMeal:            "🍱 Cancel Meal",
		CancelSuccess:         "✅ Cancelled successfully! (%s)",
		CancelFailed:          "❌ Cancel failed: %s",
		NothingToCancel:       "❌ Nothing to cancel",
		KindBus:               "Bus",
		KindMeal:              "Meal",
		SystemError:           "System error, please start again",
	},
	models.LangVi: {
		Welcome:               "Chào mừng đến với Hệ thống Đặt xe & Đặt cơm!",
		BindRequired:          "Vui lòng nhập mã nhân viên để liên kết\nĐịnh dạng: IGA1-02849",
		BindSuccess:           "✅ Liên kết thành công! Chào mừng %s!",
		BindFailed:            "❌ Liên kết thất bại: %s",
		BindUnknownEmployee:   "không tìm thấy mã nhân viên %s",
		MainMenuTitle:         "Hệ thống Đặt xe & Đặt cơm",
		MainMenuText:          "Vui lòng chọn chức năng bạn muốn sử dụng:",
		MenuBusBooking:        "🚌 Đặt xe",
		MenuMealBooking:       "🍱 Đặt cơm",
		MenuViewBooking:       "📋 Xem đặt chỗ của tôi",
		MenuCancelBooking:     "❌ Hủy đặt chỗ",
		MenuLanguage:          "🌐 Ngôn ngữ",
		MenuQRCode:            "🔢 Mã QR nhận cơm",
		MenuHome:              "🏠 Menu chính",
		RouteSelection:        "Chọn tuyến xe",
		RouteSelectionText:    "Vui lòng chọn tuyến bạn muốn đặt:",
		ScheduleSelectionText: "Vui lòng chọn giờ khởi hành:",
		NoSchedules:           "Hiện không có chuyến xe nào",
		MealLocation:          "Chọn địa điểm ăn",
		MealLocationText:      "Vui lòng chọn nơi bạn muốn đặt cơm:",
		BackToMenu:            "🔙 Về menu chính",
		BookingSuccess:        "✅ Đặt chỗ thành công!",
		BookingFailed:         "❌ Đặt chỗ thất bại: %s",
		BusBooked:             "🚌 Giờ khởi hành: %s\n📅 Ngày: %s",
		MealBooked:            "🍱 Nơi nhận cơm: %s\n📅 Ngày: %s",
		BookAgainBus:          "🚌 Đặt lại",
		BookAgainMeal:         "🍱 Đặt cơm lại",
		InvalidSelection:      "Lựa chọn không còn hiệu lực, vui lòng chọn lại",
		TimeLimitExceeded:     "❌ Đã quá thời gian đặt chỗ (hạn chót %s)",
		NoBookings:            "Bạn hiện tại không có đặt chỗ nào",
		TodayBookings:         "📋 Đặt chỗ hôm nay (%s):",
		BusBookingLine:        "🚌 Xe: %s %s (%s)",
		MealBookingLine:       "🍱 Cơm: %s %s",
		QRCodeTitle:           "🍱 Mã QR nhận cơm",
		QRCodeDesc:            "Vui lòng xuất trình mã QR này cho nhân viên nhà hàng",
		QRCodeDetails:         "👤 %s\n🍱 %s\n📍 %s\n📅 %s\n\n🔢 Mã xác nhận: %s",
		QRCodeInvalid:         "❌ Không có đơn đặt cơm hôm nay, không thể tạo mã QR",
		LanguageMenuTitle:     "語言設定 Language",
		LanguageMenuText:      "選擇語言 Choose Language:",
		LanguageChanged:       "✅ Đã chuyển ngôn ngữ sang: %s",
		CancelMenuTitle:       "Hủy đặt chỗ",
		CancelMenuText:        "Chọn mục cần hủy:",
		CancelBus:             "🚌 Hủy xe",
		CancelMeal:            "🍱 Hủy cơm",
		CancelSuccess:         "✅ Hủy thành công! (%s)",
		CancelFailed:          "❌ Hủy thất bại: %s",
		NothingToCancel:       "❌ Không có gì để hủy",
		KindBus:               "Xe",
		KindMeal:              "Cơm",
		SystemError:           "Lỗi hệ thống, vui lòng bắt đầu lại",
	},
}

// languageNames are shown in each language's own script.
var languageNames = map[models.Language]string{
	models.LangZh: "中文 🇹🇼",
	models.LangEn: "English 🇺🇸",
	models.LangVi: "Tiếng Việt 🇻🇳",
}

// T returns the message for key in lang, formatted with args. Unknown languages
// fall back to Chinese; unknown keys return the key itself.
func T(lang models.Language, key Key, args ...interface{}) string {
	table, ok := messages[lang]
	if !ok {
		table = messages[models.DefaultLanguage]
	}
	msg, ok := table[key]
	if !ok {
		return string(key)
	}
	if len(args) > 0 {
		return fmt.Sprintf(msg, args...)
	}
	return msg
}

// LanguageName returns the display name of lang.
func LanguageName(lang models.Language) string {
	if name, ok := languageNames[lang]; ok {
		return name
	}
	return string(lang)
}

// KindName returns the localized name of a booking kind.
func KindName(lang models.Language, kind models.BookingKind) string {
	if kind == models.BookingKindBus {
		return T(lang, KindBus)
	}
	return T(lang, KindMeal)
}

package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/skip2/go-qrcode"

	"shuttle_booking_backend/internal/models"
	"shuttle_booking_backend/pkg/utils"
)

// ErrMalformedVerificationCode is returned when a code is not <employee code>-YYYYMMDD.
var ErrMalformedVerificationCode = errors.New("malformed verification code")

const verificationDateLayout = "20060102"

// qrImageSize is the side length of rendered QR images in pixels.
const qrImageSize = 400

// GenerateVerificationCode derives the meal pickup code for an employee and date.
// It is deterministic and carries no secret.
func GenerateVerificationCode(employeeCode string, date time.Time) string {
	return employeeCode + "-" + date.Format(verificationDateLayout)
}

// ParseVerificationCode splits a code produced by GenerateVerificationCode. Employee
// codes contain '-' themselves, so the date is taken from the last segment.
func ParseVerificationCode(code string) (employeeCode string, date time.Time, err error) {
	code = strings.TrimSpace(code)
	i := strings.LastIndex(code, "-")
	if i <= 0 || i == len(code)-1 {
		return "", time.Time{}, fmt.Errorf("%w: %q", ErrMalformedVerificationCode, code)
	}
	date, err = time.Parse(verificationDateLayout, code[i+1:])
	if err != nil {
		return "", time.Time{}, fmt.Errorf("%w: %q", ErrMalformedVerificationCode, code)
	}
	return utils.NormalizeEmployeeCode(code[:i]), date, nil
}

// MealTicket is what restaurant staff see when scanning a pickup QR code.
type MealTicket struct {
	EmployeeName string
	EmployeeCode string
	Restaurant   models.LocalizedText
	Floor        string
	Date         time.Time
	Code         string
}

// QRContent is the text encoded into the pickup QR image. It is read by restaurant
// staff, so it is not localized.
func (t MealTicket) QRContent() string {
	return fmt.Sprintf("員工：%s\n編號：%s\n餐廳：%s\n樓層：%s\n日期：%s\n驗證碼：%s",
		t.EmployeeName, t.EmployeeCode, t.Restaurant.Zh, t.Floor, t.Date.Format(models.DateLayout), t.Code)
}

// RenderQRCode encodes content as a PNG image.
func RenderQRCode(content string) ([]byte, error) {
	png, err := qrcode.Encode(content, qrcode.Medium, qrImageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to render QR code: %w", err)
	}
	return png, nil
}

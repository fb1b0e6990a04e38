package utils

import (
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

// CheckinURL builds the canonical payload encoded into an enrollment's
// QR code. Scanning it hits the public check-in endpoint.
func CheckinURL(baseURL, eventID, userID, enrollmentID string) string {
	return fmt.Sprintf("%s/events/checkin/%s/%s/%s", baseURL, eventID, userID, enrollmentID)
}

// GenerateQRCodePNG renders the check-in URL as a PNG image.
func GenerateQRCodePNG(url string) ([]byte, error) {
	png, err := qrcode.Encode(url, qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("failed to encode QR code: %w", err)
	}
	return png, nil
}

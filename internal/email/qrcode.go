package email

import (
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

const bookingQRFileName = "booking-qr.png"

// BookingQRCode renders url as a PNG QR code attachment.
func BookingQRCode(url string) (Attachment, error) {
	png, err := qrcode.Encode(url, qrcode.Medium, 256)
	if err != nil {
		return Attachment{}, fmt.Errorf("encode booking qr code: %w", err)
	}
	return Attachment{
		Content:  png,
		FileName: bookingQRFileName,
		MIMEType: "image/png",
	}, nil
}

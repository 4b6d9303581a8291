package service

import (
	"github.com/pkg/errors"
	"github.com/skip2/go-qrcode"
)

const (
	PNGContentType = "image/png"

	QRCodeSize = 256
)

// EmployeeQRCode encodes the business employee id as a PNG.
func EmployeeQRCode(employeeID string) ([]byte, error) {
	png, err := qrcode.Encode(employeeID, qrcode.Medium, QRCodeSize)
	if err != nil {
		return nil, errors.Wrap(err, "encoding qr code")
	}

	return png, nil
}

package utils

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image/png"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"
)

// GenerateQRCode renders the given content as a QR code PNG and returns
// it base64 encoded, ready to embed in a data URI. Partners get one of
// these for their referral link.
func GenerateQRCode(content string, size int) (string, error) {
	if size <= 0 {
		size = 256
	}

	code, err := qr.Encode(content, qr.M, qr.Auto)
	if err != nil {
		return "", fmt.Errorf("failed to encode QR code: %v", err)
	}

	scaled, err := barcode.Scale(code, size, size)
	if err != nil {
		return "", fmt.Errorf("failed to scale QR code: %v", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, scaled); err != nil {
		return "", fmt.Errorf("failed to render QR code: %v", err)
	}

	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

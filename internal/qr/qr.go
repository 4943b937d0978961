package qr

import (
	"bytes"
	"errors"
	"image/png"

	"github.com/skip2/go-qrcode"
)

const DefaultSize = 320

// PNG renders content as a QR code PNG of size x size pixels.
func PNG(content string, size int) ([]byte, error) {
	if content == "" {
		return nil, errors.New("qr content is empty")
	}
	if size <= 0 {
		size = DefaultSize
	}

	code, err := qrcode.New(content, qrcode.Medium)
	if err != nil {
		return nil, err
	}

	buf := new(bytes.Buffer)
	if err := png.Encode(buf, code.Image(size)); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

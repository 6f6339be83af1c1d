package qr

import (
	qrcode "github.com/skip2/go-qrcode"
)

// Renderer renders a payload as a scannable code image on disk.
type Renderer interface {
	RenderToFile(payload, path string) error
}

// PNGRenderer writes QR codes as PNG files.
type PNGRenderer struct {
	Size int
}

func (r PNGRenderer) RenderToFile(payload, path string) error {
	size := r.Size
	if size == 0 {
		size = 256
	}
	return qrcode.WriteFile(payload, qrcode.Medium, size, path)
}

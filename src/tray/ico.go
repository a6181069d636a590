package tray

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
)

const (
	icoHeaderSize = 6
	icoEntrySize  = 16
)

// pngToICO wraps PNG bytes in a single-image ICO container.
func pngToICO(pngData []byte) ([]byte, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(pngData))
	if err != nil {
		return nil, fmt.Errorf("read icon header: %w", err)
	}
	if format != "png" {
		return nil, fmt.Errorf("icon is %s, want png", format)
	}

	var buf bytes.Buffer
	buf.Grow(icoHeaderSize + icoEntrySize + len(pngData))
	header := []uint16{0, 1, 1} // reserved, type icon, one image
	if err := binary.Write(&buf, binary.LittleEndian, header); err != nil {
		return nil, err
	}
	entry := struct {
		Width, Height, Colors, Reserved uint8
		Planes, BitCount                uint16
		Size, Offset                    uint32
	}{
		Width:    icoDim(cfg.Width),
		Height:   icoDim(cfg.Height),
		Planes:   1,
		BitCount: 32,
		Size:     uint32(len(pngData)),
		Offset:   icoHeaderSize + icoEntrySize,
	}
	if err := binary.Write(&buf, binary.LittleEndian, entry); err != nil {
		return nil, err
	}
	buf.Write(pngData)
	return buf.Bytes(), nil
}

// icoDim encodes 256 and larger as 0.
func icoDim(n int) uint8 {
	if n <= 0 || n >= 256 {
		return 0
	}
	return uint8(n)
}

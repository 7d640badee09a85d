// Package detector detects the byte order of input images.
package detector

import (
	"encoding/binary"

	"github.com/retroenv/mipsgodisasm/internal/mips"
	"github.com/retroenv/retrogolib/log"
)

// N64 ROM magic words in the three dump formats.
const (
	magicZ64 = 0x80371240 // big endian
	magicV64 = 0x37804012 // middle endian, halfword byte swapped
	magicN64 = 0x40123780 // little endian
)

// Detector detects input image properties.
type Detector struct {
	logger *log.Logger
}

// New creates a new detector.
func New(logger *log.Logger) *Detector {
	return &Detector{logger: logger}
}

// DetectEndian inspects the image magic and returns the byte order. The
// second return value reports whether a magic was recognized; without one
// the caller should fall back to configuration.
func (d *Detector) DetectEndian(data []byte) (mips.Endian, bool) {
	if len(data) < 4 {
		return mips.EndianBig, false
	}

	switch binary.BigEndian.Uint32(data[:4]) {
	case magicZ64:
		d.logger.Debug("detected big endian image (.z64)")
		return mips.EndianBig, true
	case magicV64:
		d.logger.Debug("detected middle endian image (.v64)")
		return mips.EndianMiddle, true
	case magicN64:
		d.logger.Debug("detected little endian image (.n64)")
		return mips.EndianLittle, true
	default:
		return mips.EndianBig, false
	}
}

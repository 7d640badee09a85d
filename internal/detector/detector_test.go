package detector

import (
	"testing"

	"github.com/retroenv/mipsgodisasm/internal/mips"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestDetectEndian(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		expected mips.Endian
		detected bool
	}{
		{"z64 big", []byte{0x80, 0x37, 0x12, 0x40}, mips.EndianBig, true},
		{"v64 middle", []byte{0x37, 0x80, 0x40, 0x12}, mips.EndianMiddle, true},
		{"n64 little", []byte{0x40, 0x12, 0x37, 0x80}, mips.EndianLittle, true},
		{"no magic", []byte{0x00, 0x00, 0x00, 0x00}, mips.EndianBig, false},
		{"short input", []byte{0x80}, mips.EndianBig, false},
	}

	detector := New(log.NewTestLogger(t))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			endian, ok := detector.DetectEndian(tt.data)
			assert.Equal(t, tt.detected, ok)
			assert.Equal(t, tt.expected, endian)
		})
	}
}

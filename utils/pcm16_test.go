// SPDX-License-Identifier: EPL-2.0

package utils

import (
	"math"
	"testing"

	"github.com/ik5/dmaudio/sample"
)

func TestS24ToInt16(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   uint32
		want int16
	}{
		{"zero", 0, 0},
		{"half", uint32(sample.FromFloat32(0.5)), 16384},
		{"minus half", uint32(sample.FromFloat32(-0.5)), -16384},
		{"positive rail", 0x7FFFFF, math.MaxInt16},
		{"negative rail", 0x800000, math.MinInt16},
		{"low byte dropped", 0x0000FF, 0},
		{"smallest negative", 0xFFFFFF, -1},
		{"upper byte ignored", 0xAB400000, 16384},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := S24ToInt16(tt.in); got != tt.want {
				t.Errorf("S24ToInt16(%#x) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestPutPCM16LE(t *testing.T) {
	t.Parallel()

	words := []uint32{0x400000, 0xC00000, 0x7FFFFF}

	dst := make([]byte, 6)
	if n := PutPCM16LE(dst, words); n != 6 {
		t.Fatalf("PutPCM16LE() = %d, want 6", n)
	}
	want := []byte{0x00, 0x40, 0x00, 0xC0, 0xFF, 0x7F}
	for i := range want {
		if dst[i] != want[i] {
			t.Errorf("byte %d = %#x, want %#x", i, dst[i], want[i])
		}
	}

	short := make([]byte, 3)
	if n := PutPCM16LE(short, words); n != 2 {
		t.Errorf("PutPCM16LE() into 3 bytes = %d, want 2", n)
	}
}

// SPDX-License-Identifier: EPL-2.0

package utils

import (
	"encoding/binary"

	"github.com/ik5/dmaudio/sample"
)

// S24ToInt16 drops the low byte of an S24 word. The upper byte of w is
// ignored.
func S24ToInt16(w uint32) int16 {
	return int16(sample.FromUint32(w).Value() >> 8)
}

// PutPCM16LE writes words as 16-bit little-endian PCM into dst and returns
// the number of bytes written. It stops when dst is full.
func PutPCM16LE(dst []byte, words []uint32) int {
	n := min(len(words), len(dst)/2)
	for i := range n {
		binary.LittleEndian.PutUint16(dst[2*i:], uint16(S24ToInt16(words[i])))
	}
	return 2 * n
}

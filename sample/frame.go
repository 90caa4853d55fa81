// SPDX-License-Identifier: EPL-2.0

package sample

// Frame is one stereo sample pair at a single instant.
type Frame struct {
	Left  float32
	Right float32
}

// EncodeFrame writes f into dst as two interleaved S24 words, left first.
// dst must hold at least two words.
func EncodeFrame(dst []uint32, f Frame) {
	_ = dst[1]
	dst[0] = FromFloat32(f.Left).Uint32()
	dst[1] = FromFloat32(f.Right).Uint32()
}

// DecodeFrame reads one interleaved left/right pair of S24 words.
func DecodeFrame(src []uint32) Frame {
	_ = src[1]
	return Frame{
		Left:  FromUint32(src[0]).Float32(),
		Right: FromUint32(src[1]).Float32(),
	}
}

// DecodeFrames decodes interleaved words into dst and returns the number of
// frames written, which is the smaller of len(dst) and len(src)/2.
func DecodeFrames(dst []Frame, src []uint32) int {
	n := min(len(dst), len(src)/2)
	for i := range n {
		dst[i] = DecodeFrame(src[i*2:])
	}

	return n
}

// EncodeFrames encodes frames into interleaved words and returns the number
// of frames written.
func EncodeFrames(dst []uint32, src []Frame) int {
	n := min(len(src), len(dst)/2)
	for i := range n {
		EncodeFrame(dst[i*2:], src[i])
	}

	return n
}

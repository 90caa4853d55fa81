// SPDX-License-Identifier: EPL-2.0

package sample

const (
	// FBipMax is the largest float accepted by FromFloat32 before clamping.
	FBipMax float32 = 0.999985
	// FBipMin is the smallest float accepted by FromFloat32 before clamping.
	FBipMin = -FBipMax

	f32ToS24Scale float32 = 8388608.0 // 2^23
	s24ToF32Scale         = 1.0 / f32ToS24Scale

	s24Sign int32 = 0x800000
	s24Mask int32 = 0xFFFFFF
)

// S24 is a 24-bit signed sample stored in the low 24 bits of a 32-bit word.
type S24 int32

// FromFloat32 converts a float sample to S24, clamping to [FBipMin, FBipMax]
// and truncating toward zero.
func FromFloat32(x float32) S24 {
	if x <= FBipMin {
		x = FBipMin
	} else if x >= FBipMax {
		x = FBipMax
	}

	return S24(int32(x * f32ToS24Scale))
}

// FromInt32 reinterprets x as an S24 word.
func FromInt32(x int32) S24 { return S24(x) }

// FromUint32 reinterprets the bits of x as an S24 word.
func FromUint32(x uint32) S24 { return S24(int32(x)) }

// Int32 returns the raw word.
func (s S24) Int32() int32 { return int32(s) }

// Uint32 returns the raw word as unsigned bits.
func (s S24) Uint32() uint32 { return uint32(s) }

// Value returns the low 24 bits sign-extended to a full int32. Bits above
// bit 23 are ignored.
func (s S24) Value() int32 {
	return ((int32(s) & s24Mask) ^ s24Sign) - s24Sign
}

// Float32 converts s back to the float domain. 0x800000 maps to exactly -1.0.
func (s S24) Float32() float32 {
	return float32(s.Value()) * s24ToF32Scale
}

// Saturates reports whether FromFloat32 would clamp x.
func Saturates(x float32) bool {
	return x > FBipMax || x < FBipMin
}

// SPDX-License-Identifier: EPL-2.0

// Package sample defines the sample representations used at the hardware
// boundary and the conversions between them.
//
// # Domains
//
// Application code works with float32 samples, nominally in [-1.0, 1.0].
// The audio codec peripheral works with 24-bit signed two's-complement words
// carried in the low 24 bits of a uint32 (S24).
//
//	s := sample.FromFloat32(0.5)   // 4194304
//	f := s.Float32()               // 0.5
//
// # Saturation
//
// FromFloat32 clamps its input to [FBipMin, FBipMax] before scaling. The
// bound sits just inside full scale so that the scaled value always fits in
// 24 bits; 1.0 would otherwise scale to 0x800000, which reads back as -1.0.
// Clamping is silent. Use Saturates to find out whether a value will clip.
//
// # Raw interop
//
// FromInt32, FromUint32, Int32 and Uint32 reinterpret bits and do no range
// checking. Only the low 24 bits carry meaning on read.
//
// # Frames
//
// A Frame is one left/right pair. Wherever frames are laid out in memory they
// are interleaved left first.
package sample

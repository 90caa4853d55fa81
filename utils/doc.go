// SPDX-License-Identifier: EPL-2.0

// Package utils holds small sample-level helpers shared by the resampler
// and the live monitor.
package utils

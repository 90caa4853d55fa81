// SPDX-License-Identifier: EPL-2.0

package dma

import "fmt"

type teeDAC []DAC

// Tee returns a DAC that drains every half into each of dacs in order. The
// first error stops the fan-out.
func Tee(dacs ...DAC) DAC {
	if len(dacs) == 1 {
		return dacs[0]
	}
	return teeDAC(dacs)
}

func (t teeDAC) Drain(words []uint32) error {
	for i, d := range t {
		if err := d.Drain(words); err != nil {
			return fmt.Errorf("tee %d: %w", i, err)
		}
	}
	return nil
}

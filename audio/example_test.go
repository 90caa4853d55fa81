// SPDX-License-Identifier: EPL-2.0

package audio_test

import (
	"fmt"
	"io"

	"github.com/ik5/dmaudio/audio"
	"github.com/ik5/dmaudio/internal/audiotest"
)

// Example_processingChain brings a mono 44.1 kHz source to the 48 kHz stereo
// stream expected by the transfer channel.
func Example_processingChain() {
	source := audiotest.NewConstantSource(44100, 1, 44100, 0.5) // 1 second

	chain := audio.NewStereoMixer(audio.NewResampler(source, 48000))

	fmt.Printf("Sample rate: %d Hz\n", chain.SampleRate())
	fmt.Printf("Channels: %d\n", chain.Channels())

	buf := make([]float32, 96) // one 48-frame block
	n, err := chain.ReadSamples(buf)
	if err != nil && err != io.EOF {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Printf("First block: %d samples, left=%.2f right=%.2f\n", n, buf[0], buf[1])
	// Output:
	// Sample rate: 48000 Hz
	// Channels: 2
	// First block: 96 samples, left=0.50 right=0.50
}

// Example_registry shows decoder lookup by file name.
func Example_registry() {
	registry := audio.NewRegistry()
	registry.Register("wav", nil)

	if _, err := registry.ForPath("take1.flac"); err != nil {
		fmt.Println(err)
	}
	// Output: unsupported audio format
}

// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"testing"
)

// mockMP3Reader simulates the gomp3.Decoder for testing. chunk limits the
// bytes returned per Read so odd splits can be exercised.
type mockMP3Reader struct {
	sampleRate int
	data       []byte
	offset     int
	chunk      int
	err        error
}

func newMockMP3Reader(rate, chunk int, samples ...int16) *mockMP3Reader {
	data := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(data[2*i:], uint16(s))
	}
	return &mockMP3Reader{sampleRate: rate, data: data, chunk: chunk}
}

func (m *mockMP3Reader) SampleRate() int { return m.sampleRate }

func (m *mockMP3Reader) Read(buf []byte) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	if m.offset >= len(m.data) {
		return 0, io.EOF
	}

	n := min(len(buf), len(m.data)-m.offset)
	if m.chunk > 0 {
		n = min(n, m.chunk)
	}
	copy(buf, m.data[m.offset:m.offset+n])
	m.offset += n

	return n, nil
}

func readAll(t *testing.T, s *source, size int) []float32 {
	t.Helper()

	var out []float32
	buf := make([]float32, size)
	for range 1000 {
		n, err := s.ReadSamples(buf)
		out = append(out, buf[:n]...)
		if errors.Is(err, io.EOF) {
			return out
		}
		if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
	}
	t.Fatal("ReadSamples() never reached EOF")
	return nil
}

func TestSource_Conversion(t *testing.T) {
	t.Parallel()

	dec := newMockMP3Reader(44100, 0, 16384, -16384, 32767, -32768)
	s := &source{dec: dec, sampleRate: dec.SampleRate()}

	got := readAll(t, s, 8)
	want := []float32{0.5, -0.5, 32767.0 / 32768, -1}

	if len(got) != len(want) {
		t.Fatalf("read %d samples, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sample %d = %v, want %v", i, got[i], want[i])
		}
	}
	if s.Channels() != 2 || s.SampleRate() != 44100 {
		t.Errorf("format = %d ch @ %d Hz, want 2 ch @ 44100 Hz", s.Channels(), s.SampleRate())
	}
}

func TestSource_OddByteSplit(t *testing.T) {
	t.Parallel()

	samples := []int16{1000, -1000, 2000, -2000, 3000, -3000}
	dec := newMockMP3Reader(48000, 3, samples...)
	s := &source{dec: dec, sampleRate: 48000}

	got := readAll(t, s, 4)
	if len(got) != len(samples) {
		t.Fatalf("read %d samples, want %d", len(got), len(samples))
	}
	for i, v := range samples {
		if want := float32(v) / 32768; got[i] != want {
			t.Errorf("sample %d = %v, want %v", i, got[i], want)
		}
	}
}

func TestSource_ReaderError(t *testing.T) {
	t.Parallel()

	s := &source{dec: &mockMP3Reader{err: io.ErrUnexpectedEOF}}

	n, err := s.ReadSamples(make([]float32, 4))
	if n != 0 || !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("ReadSamples() = (%d, %v), want (0, %v)", n, err, io.ErrUnexpectedEOF)
	}
}

func TestSource_EmptyDst(t *testing.T) {
	t.Parallel()

	s := &source{dec: newMockMP3Reader(8000, 0, 1, 2)}
	if n, err := s.ReadSamples(nil); n != 0 || err != nil {
		t.Errorf("ReadSamples(nil) = (%d, %v), want (0, nil)", n, err)
	}
}

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	for _, data := range [][]byte{nil, []byte("This is not MP3 data")} {
		if _, err := (Decoder{}).Decode(bytes.NewReader(data)); err == nil {
			t.Errorf("Decode(%q) error = nil, want error", data)
		}
	}
}

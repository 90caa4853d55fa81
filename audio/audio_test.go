// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"
	"sync"
	"testing"
)

type mockDecoder struct {
	name string
}

func (d *mockDecoder) Decode(r io.Reader) (Source, error) {
	return nil, nil
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	dec := &mockDecoder{name: "wav"}
	reg.Register("wav", dec)

	got, ok := reg.Get("wav")
	if !ok {
		t.Fatal("Get(\"wav\") returned false")
	}
	if got != dec {
		t.Errorf("Get(\"wav\") = %v, want %v", got, dec)
	}

	if _, ok := reg.Get("WAV"); !ok {
		t.Error("Get(\"WAV\") returned false, want case-insensitive match")
	}
	if _, ok := reg.Get("flac"); ok {
		t.Error("Get(\"flac\") returned true for unregistered format")
	}
}

func TestRegistry_ForPath(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	wav := &mockDecoder{name: "wav"}
	ogg := &mockDecoder{name: "ogg"}
	reg.Register("wav", wav)
	reg.Register("ogg", ogg)

	tests := []struct {
		path    string
		want    Decoder
		wantErr error
	}{
		{path: "in.wav", want: wav},
		{path: "/tmp/Loop.WAV", want: wav},
		{path: "music/track.ogg", want: ogg},
		{path: "track.flac", wantErr: ErrUnsupportedFormat},
		{path: "noext", wantErr: ErrUnsupportedFormat},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			got, err := reg.ForPath(tt.path)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ForPath(%q) error = %v, want %v", tt.path, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ForPath(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if i%2 == 0 {
				reg.Register("wav", &mockDecoder{})
			} else {
				reg.Get("wav")
			}
		}()
	}
	wg.Wait()

	if _, ok := reg.Get("wav"); !ok {
		t.Error("Get(\"wav\") returned false after concurrent registration")
	}
}

func TestErrors(t *testing.T) {
	t.Parallel()

	for _, err := range []error{ErrInvalidDstSize, ErrUnsupportedFormat, ErrNoChannels} {
		if err == nil || err.Error() == "" {
			t.Errorf("sentinel error %v has no message", err)
		}
		if !errors.Is(errors.Join(err, errors.New("context")), err) {
			t.Errorf("errors.Is() failed for joined %v", err)
		}
	}
}

func BenchmarkRegistry_Get(b *testing.B) {
	reg := NewRegistry()
	reg.Register("wav", &mockDecoder{})

	b.ResetTimer()
	for range b.N {
		reg.Get("wav")
	}
}

// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"bytes"
	"errors"
	"io"
)

var errNegativeOffset = errors.New("audiotest: negative offset")

// SeekBuffer is an in-memory io.WriteSeeker for encoders that patch their
// header on Close.
type SeekBuffer struct {
	buf []byte
	pos int
}

func (b *SeekBuffer) Write(p []byte) (int, error) {
	if end := b.pos + len(p); end > len(b.buf) {
		b.buf = append(b.buf, make([]byte, end-len(b.buf))...)
	}
	n := copy(b.buf[b.pos:], p)
	b.pos += n
	return n, nil
}

func (b *SeekBuffer) Seek(offset int64, whence int) (int64, error) {
	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = int64(b.pos) + offset
	case io.SeekEnd:
		abs = int64(len(b.buf)) + offset
	default:
		return 0, errors.New("audiotest: invalid whence")
	}
	if abs < 0 {
		return 0, errNegativeOffset
	}
	b.pos = int(abs)
	return abs, nil
}

// Bytes returns the written contents.
func (b *SeekBuffer) Bytes() []byte { return b.buf }

// Reader returns a fresh reader over the written contents.
func (b *SeekBuffer) Reader() *bytes.Reader { return bytes.NewReader(b.buf) }

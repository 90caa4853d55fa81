// SPDX-License-Identifier: EPL-2.0

package monitor

import (
	"io"
	"sync"
	"sync/atomic"

	"github.com/ik5/dmaudio/utils"
)

// queue hands 16-bit PCM from the engine goroutine to the audio device
// without ever blocking the producer. Buffers cycle between free and full;
// when no free buffer is left the half is dropped.
type queue struct {
	full chan []byte
	free chan []byte
	cur  []byte
	off  int

	dropped   atomic.Uint64
	done      chan struct{}
	closeOnce sync.Once
}

func newQueue(depth, halfWords int) *queue {
	q := &queue{
		full: make(chan []byte, depth),
		free: make(chan []byte, depth),
		done: make(chan struct{}),
	}
	for range depth {
		q.free <- make([]byte, 2*halfWords)
	}
	return q
}

// push converts words and queues them. It reports false when the half was
// dropped. Words beyond the buffer size given to newQueue are cut off.
func (q *queue) push(words []uint32) bool {
	var buf []byte
	select {
	case buf = <-q.free:
	default:
		q.dropped.Add(1)
		return false
	}

	buf = buf[:utils.PutPCM16LE(buf[:cap(buf)], words)]

	select {
	case q.full <- buf:
		return true
	default:
		q.free <- buf
		q.dropped.Add(1)
		return false
	}
}

// Read implements io.Reader for the device player. It blocks until data is
// queued and returns io.EOF after close.
func (q *queue) Read(p []byte) (int, error) {
	if q.off >= len(q.cur) {
		if q.cur != nil {
			q.free <- q.cur[:cap(q.cur)]
			q.cur = nil
		}

		select {
		case buf := <-q.full:
			q.cur, q.off = buf, 0
		case <-q.done:
			return 0, io.EOF
		}
	}

	n := copy(p, q.cur[q.off:])
	q.off += n
	return n, nil
}

func (q *queue) close() {
	q.closeOnce.Do(func() { close(q.done) })
}

// Package scratch is a reusable byte buffer for text rebuilt every frame,
// such as the frame-time window title.
package scratch

import "strconv"

// Buffer appends into storage that survives Reset. The zero value is ready
// to use; a Buffer must not be shared between goroutines.
type Buffer struct {
	buf []byte
}

func New(capacity int) *Buffer {
	if capacity <= 0 {
		capacity = 64
	}
	return &Buffer{buf: make([]byte, 0, capacity)}
}

func (b *Buffer) Reset()        { b.buf = b.buf[:0] }
func (b *Buffer) Len() int      { return len(b.buf) }
func (b *Buffer) Bytes() []byte { return b.buf }

// String copies the contents out.
func (b *Buffer) String() string { return string(b.buf) }

func (b *Buffer) S(s string) *Buffer {
	b.buf = append(b.buf, s...)
	return b
}

func (b *Buffer) C(c byte) *Buffer {
	b.buf = append(b.buf, c)
	return b
}

func (b *Buffer) I(v int) *Buffer {
	b.buf = strconv.AppendInt(b.buf, int64(v), 10)
	return b
}

// F appends v with prec digits after the decimal point.
func (b *Buffer) F(v float64, prec int) *Buffer {
	b.buf = strconv.AppendFloat(b.buf, v, 'f', prec, 64)
	return b
}

// Pad appends spaces until the buffer holds at least width bytes past mark.
func (b *Buffer) Pad(mark, width int) *Buffer {
	for len(b.buf)-mark < width {
		b.buf = append(b.buf, ' ')
	}
	return b
}

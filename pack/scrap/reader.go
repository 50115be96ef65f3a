package scrap

import (
	"encoding/binary"
	"math"

	"github.com/pkg/errors"

	"github.com/mogaika/scrap_remaster/utils"
)

// reader walks a little endian chunk. First failure sticks,
// following reads return zero values until err is checked.
type reader struct {
	b   []byte
	pos int
	err error
}

func newReader(b []byte) *reader {
	return &reader{b: b}
}

func (r *reader) need(n int, what string) bool {
	if r.err != nil {
		return false
	}
	if n < 0 || r.pos+n > len(r.b) {
		r.err = errors.Errorf("Unexpected end of data reading %s at 0x%x (need %d, have %d)",
			what, r.pos, n, len(r.b)-r.pos)
		return false
	}
	return true
}

func (r *reader) fail(format string, a ...interface{}) {
	if r.err == nil {
		r.err = errors.Errorf(format, a...)
	}
}

func (r *reader) magic(m string) {
	if !r.need(len(m), m+" magic") {
		return
	}
	if got := string(r.b[r.pos : r.pos+len(m)]); got != m {
		r.fail("Invalid magic %q at 0x%x, expected %q", utils.DumpToOneLineString([]byte(got)), r.pos, m)
		return
	}
	r.pos += len(m)
}

func (r *reader) u16(what string) uint16 {
	if !r.need(2, what) {
		return 0
	}
	v := binary.LittleEndian.Uint16(r.b[r.pos:])
	r.pos += 2
	return v
}

func (r *reader) u32(what string) uint32 {
	if !r.need(4, what) {
		return 0
	}
	v := binary.LittleEndian.Uint32(r.b[r.pos:])
	r.pos += 4
	return v
}

func (r *reader) bytes(n int, what string) []byte {
	if !r.need(n, what) {
		return nil
	}
	v := r.b[r.pos : r.pos+n]
	r.pos += n
	return v
}

// count*size as int, failing instead of overflowing on hostile headers
func (r *reader) span(count, size uint32, what string) int {
	total := uint64(count) * uint64(size)
	if total > uint64(len(r.b)) {
		r.fail("%s of %d*%d bytes exceeds data size %d", what, count, size, len(r.b))
		return 0
	}
	return int(total)
}

// pascal string: u32 length, bytes, zero terminated inside.
// Raw bytes are returned too, length may cover padding past the zero.
func (r *reader) pstring(what string) (string, []byte) {
	l := r.u32(what + " length")
	raw := r.bytes(r.span(l, 1, what), what)
	return utils.BytesToString(raw), raw
}

func f32(b []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b))
}

// Package ninebit packs 9-bit (control bit + byte) symbols into bytes.
//
// Symbols are written MSB first at a single bit cursor. Every group of 8
// symbols occupies exactly 9 bytes.
package ninebit

import (
	"errors"
	"fmt"
)

// Control bit values.
const (
	Command uint8 = 0 // Controller opcode
	Data    uint8 = 1 // Parameter or pixel byte
)

const (
	symbolBits = 9
	groupSize  = 8 // Symbols per aligned group
	groupBytes = 9 // Bytes per aligned group
)

var (
	// ErrBufferOverflow is returned when a symbol, or the padding added by
	// Flush, does not fit in the Packer's capacity.
	ErrBufferOverflow = errors.New("ninebit: buffer overflow")
	// ErrShortBuffer is returned by Unpack when the input holds fewer symbols
	// than requested.
	ErrShortBuffer = errors.New("ninebit: short buffer")
)

// Symbol is one control bit followed by an 8-bit payload.
// Only the lowest bit of Control is used.
type Symbol struct {
	Control uint8
	Payload byte
}

// NOP is the default filler symbol: opcode 0x00 with the command bit.
var NOP = Symbol{Control: Command, Payload: 0x00}

// String returns a short description like "C:2A" or "D:FF".
func (s Symbol) String() string {
	if s.Control&1 == Command {
		return fmt.Sprintf("C:%02X", s.Payload)
	}
	return fmt.Sprintf("D:%02X", s.Payload)
}

// value returns the 9-bit wire value of the symbol.
func (s Symbol) value() uint16 {
	return uint16(s.Control&1)<<8 | uint16(s.Payload)
}

// Sink receives a packed, byte-aligned buffer. Send must not retain b after
// it returns.
type Sink interface {
	Send(b []byte) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(b []byte) error

// Send calls f(b).
func (f SinkFunc) Send(b []byte) error {
	return f(b)
}

// Packer accumulates symbols in a fixed-capacity buffer.
//
// A Packer is not safe for concurrent use.
type Packer struct {
	buf     []byte // Arena, len(buf) is the capacity
	n       int    // Bytes in use
	symbols int    // Symbols packed since the last flush
	filler  Symbol
}

// New returns a Packer with a buffer of capacity bytes.
// It panics if capacity is negative.
func New(capacity int) *Packer {
	if capacity < 0 {
		panic("ninebit: negative capacity")
	}
	return &Packer{
		buf:    make([]byte, capacity),
		filler: NOP,
	}
}

// PackedLen returns the number of bytes occupied by the given number of
// symbols.
func PackedLen(symbols int) int {
	return (symbols*symbolBits + 7) / 8
}

// alignedLen returns the number of bytes occupied by the given number of
// symbols once padded to a whole group.
func alignedLen(symbols int) int {
	return (symbols + groupSize - 1) / groupSize * groupBytes
}

// Pack appends one symbol.
//
// It returns ErrBufferOverflow without modifying the buffer if the symbol
// does not fit.
func (p *Packer) Pack(control uint8, payload byte) error {
	cursor := p.symbols * symbolBits
	need := (cursor + symbolBits + 7) / 8
	if need > len(p.buf) {
		return ErrBufferOverflow
	}
	// Zero bytes the cursor reaches for the first time; the arena is reused
	// across transactions.
	for ; p.n < need; p.n++ {
		p.buf[p.n] = 0
	}
	// A symbol always spans bytes idx and idx+1. Align it in a 16-bit window
	// starting at buf[idx].
	idx, off := cursor/8, cursor%8
	w := Symbol{Control: control, Payload: payload}.value() << (7 - off)
	p.buf[idx] |= byte(w >> 8)
	p.buf[idx+1] |= byte(w)
	p.symbols++
	return nil
}

// PackSymbol appends s. See Pack.
func (p *Packer) PackSymbol(s Symbol) error {
	return p.Pack(s.Control, s.Payload)
}

// Flush pads the pending group with filler symbols, sends the buffer to s
// and resets the Packer.
//
// An empty Packer returns 0 without calling s. If the padded buffer would not
// fit, ErrBufferOverflow is returned, s is not called and the Packer is left
// untouched; call Reset to abandon the transaction.
//
// The Packer is reset whether or not s.Send succeeds. An error from s is
// returned as is.
func (p *Packer) Flush(s Sink) (int, error) {
	if p.n == 0 {
		return 0, nil
	}
	if alignedLen(p.symbols) > len(p.buf) {
		return 0, ErrBufferOverflow
	}
	for p.symbols%groupSize != 0 {
		if err := p.PackSymbol(p.filler); err != nil {
			// Unreachable: capacity was checked above.
			return 0, err
		}
	}
	n := p.n
	err := s.Send(p.buf[:n])
	p.Reset()
	if err != nil {
		return 0, err
	}
	return n, nil
}

// Reset discards all pending symbols.
func (p *Packer) Reset() {
	p.n = 0
	p.symbols = 0
}

// Len returns the number of bytes currently in use.
func (p *Packer) Len() int {
	return p.n
}

// Cap returns the buffer capacity in bytes.
func (p *Packer) Cap() int {
	return len(p.buf)
}

// Symbols returns the number of symbols packed since the last flush.
func (p *Packer) Symbols() int {
	return p.symbols
}

// Phase returns the position within the current group of 8 symbols. It is 0
// when the buffer is byte-aligned.
func (p *Packer) Phase() int {
	return p.symbols % groupSize
}

// Bytes returns the packed bytes. The slice aliases the internal buffer and
// is only valid until the next call to Pack, Flush or Reset.
func (p *Packer) Bytes() []byte {
	return p.buf[:p.n]
}

// Filler returns the symbol used to pad by Flush.
func (p *Packer) Filler() Symbol {
	return p.filler
}

// SetFiller changes the symbol used to pad by Flush.
func (p *Packer) SetFiller(s Symbol) {
	p.filler = Symbol{Control: s.Control & 1, Payload: s.Payload}
}

// Unpack decodes count symbols from b.
func Unpack(b []byte, count int) ([]Symbol, error) {
	// count <= len(b)*8/9 implies PackedLen(count) <= len(b) without
	// overflowing.
	if count < 0 || count > len(b)*8/9 {
		return nil, ErrShortBuffer
	}
	out := make([]Symbol, count)
	for i := range out {
		cursor := i * symbolBits
		idx, off := cursor/8, cursor%8
		w := uint16(b[idx]) << 8
		if idx+1 < len(b) {
			w |= uint16(b[idx+1])
		}
		v := (w >> (7 - off)) & 0x1FF
		out[i] = Symbol{Control: uint8(v >> 8), Payload: byte(v)}
	}
	return out, nil
}

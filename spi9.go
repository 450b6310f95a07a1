// Package spi9 drives display controllers over 3-wire (9-bit) SPI.
//
// The command/data selection that a 4-wire bus carries on a D/C pin is sent
// in-band as a ninth bit in front of every byte. See package ninebit for the
// bit layout.
package spi9

import (
	"errors"
	"fmt"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/devices/v3/spi9/ninebit"
)

// Opts is the configuration for the 3-wire bus.
type Opts struct {
	// SPI clock (default: 10MHz)
	Freq physic.Frequency

	// Transfer buffer size in bytes (default: 4608). It is rounded down to a
	// multiple of 9 and must be at least 9.
	Capacity int

	// Padding symbol (default: ninebit.NOP). Only change it if the
	// controller does not ignore opcode 0x00.
	Filler *ninebit.Symbol
}

// DefaultOpts is the configuration used when nil is passed to NewSPI or New.
var DefaultOpts = Opts{
	Freq:     10 * physic.MegaHertz,
	Capacity: 4608,
}

var errHalted = errors.New("spi9: halted")

// Dev is a handle to a display controller on a 3-wire SPI bus.
type Dev struct {
	c conn.Conn
	s txSink
	p *ninebit.Packer

	halted bool
}

// txSink sends packed buffers as a single write-only transfer.
type txSink struct {
	c conn.Conn
}

func (t txSink) Send(b []byte) error {
	return t.c.Tx(b, nil)
}

// NewSPI returns a Dev connected via SPI.
//
// The port is configured for Mode0 (CPOL=0, CPHA=0) and 8-bit words; the
// 9-bit framing is done in software.
//
// opts can be nil to use DefaultOpts.
func NewSPI(p spi.Port, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &DefaultOpts
	}
	f := opts.Freq
	if f == 0 {
		f = DefaultOpts.Freq
	}
	c, err := p.Connect(f, spi.Mode0, 8)
	if err != nil {
		return nil, fmt.Errorf("spi9: %w", err)
	}
	return New(c, opts)
}

// New returns a Dev that transfers over an already configured connection.
//
// opts can be nil to use DefaultOpts. opts.Freq is ignored.
func New(c conn.Conn, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &DefaultOpts
	}
	capacity := opts.Capacity
	if capacity == 0 {
		capacity = DefaultOpts.Capacity
	}
	if capacity < 9 {
		return nil, errors.New("spi9: capacity must be at least 9 bytes")
	}
	// Whole groups only, so a full buffer is always aligned.
	capacity -= capacity % 9

	d := &Dev{
		c: c,
		s: txSink{c: c},
		p: ninebit.New(capacity),
	}
	if opts.Filler != nil {
		d.p.SetFiller(*opts.Filler)
	}
	return d, nil
}

// Command sends a command byte followed by its parameters in one transfer.
func (d *Dev) Command(cmd byte, params ...byte) error {
	return d.Batch(func(b *Batch) error {
		return b.Command(cmd, params...)
	})
}

// Write sends p as data bytes, e.g. pixels following a memory write command.
//
// Large writes are split into several transfers on 9-byte boundaries, so no
// filler symbol is inserted until the end of p. On error, n is the number of
// bytes of p carried by the transfers that completed.
func (d *Dev) Write(p []byte) (int, error) {
	if d.halted {
		return 0, errHalted
	}
	n, err := d.pack(ninebit.Data, p)
	if err != nil {
		d.p.Reset()
		return n, err
	}
	if err := d.flush(); err != nil {
		return n, err
	}
	return len(p), nil
}

// Batch packs all commands and data issued by fn into a single transaction
// and sends it when fn returns.
//
// If fn returns an error, whatever was packed but not yet sent is discarded
// and the error is returned.
func (d *Dev) Batch(fn func(b *Batch) error) error {
	if d.halted {
		return errHalted
	}
	if err := fn(&Batch{d: d}); err != nil {
		d.p.Reset()
		return err
	}
	return d.flush()
}

// Halt discards any pending transaction. The Dev cannot be used afterwards.
func (d *Dev) Halt() error {
	d.p.Reset()
	d.halted = true
	return nil
}

// String returns a string representation of the device.
func (d *Dev) String() string {
	return fmt.Sprintf("spi9.Dev{%s}", d.c)
}

// pack appends payload with the given control bit. When the buffer fills up
// the complete groups are sent and packing resumes in an empty buffer.
//
// It returns the number of bytes of payload already sent.
func (d *Dev) pack(control uint8, payload []byte) (int, error) {
	sent := 0
	for i, v := range payload {
		err := d.p.Pack(control, v)
		if errors.Is(err, ninebit.ErrBufferOverflow) && d.p.Phase() == 0 && d.p.Len() > 0 {
			if err := d.flush(); err != nil {
				return sent, err
			}
			sent = i
			err = d.p.Pack(control, v)
		}
		if err != nil {
			return sent, fmt.Errorf("spi9: %w", err)
		}
	}
	return sent, nil
}

func (d *Dev) flush() error {
	if _, err := d.p.Flush(d.s); err != nil {
		return fmt.Errorf("spi9: %w", err)
	}
	return nil
}

// Batch accumulates commands and data for Dev.Batch.
type Batch struct {
	d *Dev
}

// Command appends a command byte followed by its parameters.
func (b *Batch) Command(cmd byte, params ...byte) error {
	if _, err := b.d.pack(ninebit.Command, []byte{cmd}); err != nil {
		return err
	}
	_, err := b.d.pack(ninebit.Data, params)
	return err
}

// Data appends data bytes.
func (b *Batch) Data(p []byte) error {
	_, err := b.d.pack(ninebit.Data, p)
	return err
}

var _ conn.Resource = &Dev{}

// Package ninebit packs 9-bit symbols into a byte stream for display
// controllers driven over 3-wire serial.
//
// In 3-wire mode a controller such as the ST7789 or ILI9341 has no D/C pin.
// Instead every byte on the wire is preceded by a control bit: 0 for a
// command opcode, 1 for a parameter or pixel byte. SPI hosts usually only
// move whole 8-bit words, so the 9-bit symbols are concatenated MSB first and
// sent as ordinary bytes.
//
// Eight symbols fill exactly nine bytes:
//
//	Symbols: C0 P0[7..0] | C1 P1[7..0] | ... | C7 P7[7..0]   (72 bits)
//	Bytes:   b0 b1 b2 b3 b4 b5 b6 b7 b8                       (72 bits)
//
// A transfer must end on such a 9-byte boundary, otherwise the controller
// would see trailing garbage bits. Flush pads the last group with filler
// symbols (command 0x00, NOP on the ST77xx/ILI9xxx family) before handing
// the buffer to a Sink.
//
// Example usage:
//
//	p := ninebit.New(4608)
//	p.Pack(ninebit.Command, 0x2A) // CASET
//	p.Pack(ninebit.Data, 0x00)
//	p.Pack(ninebit.Data, 0xEF)
//	n, err := p.Flush(ninebit.SinkFunc(func(b []byte) error {
//		return conn.Tx(b, nil)
//	}))
//
// The filler is a property of the receiving controller. Check that opcode
// 0x00 is harmless on your part, or set another filler with SetFiller.
package ninebit

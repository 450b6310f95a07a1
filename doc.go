// Package spi9 drives display controllers over 3-wire (9-bit) SPI.
//
// Many TFT controllers (ST7789, ST7735, ST7701, ILI9341, ILI9488 and friends)
// can be strapped for a 3-wire serial interface. In that mode there is no
// D/C pin: every byte is preceded by a control bit that tells the controller
// whether the byte is a command opcode (0) or a parameter/pixel byte (1).
//
// Most SPI hosts only transfer whole 8-bit words, so this package packs the
// 9-bit symbols into ordinary bytes (see package ninebit) and sends them as a
// normal 8-bit transfer. Eight symbols fit exactly in nine bytes; the last
// group of a transfer is padded with NOP commands (0x00).
//
// # Hardware Connection
//
//	Display Pin → System Pin
//	GND         → GND
//	VCC         → 3.3V
//	SCL/SCK     → SPI Clock (SCLK)
//	SDA/SDI     → SPI Data (MOSI)
//	CS          → SPI Chip Select
//	IM[3:0]     → 3-wire serial mode, see the controller datasheet
//
// The controller samples the stream relative to CS, so every transfer must
// be a single chip-select assertion. Dev sends each transaction with one
// conn.Conn.Tx call.
//
// # Basic Usage
//
//	package main
//
//	import (
//		"periph.io/x/conn/v3/spi/spireg"
//		"periph.io/x/devices/v3/spi9"
//		"periph.io/x/host/v3"
//	)
//
//	func main() {
//		host.Init()
//
//		b, _ := spireg.Open("")
//		defer b.Close()
//
//		dev, _ := spi9.NewSPI(b, nil)
//		defer dev.Halt()
//
//		dev.Command(0x11) // Sleep out
//		dev.Command(0x29) // Display on
//	}
//
// # Transactions
//
// Command and Write each send one transfer. Use Batch to group several
// commands into a single transfer, which saves the padding of each
// intermediate group:
//
//	dev.Batch(func(b *spi9.Batch) error {
//		if err := b.Command(0x2A, 0x00, 0x00, 0x00, 0xEF); err != nil { // CASET
//			return err
//		}
//		if err := b.Command(0x2B, 0x00, 0x00, 0x01, 0x3F); err != nil { // RASET
//			return err
//		}
//		return b.Command(0x2C) // RAMWR
//	})
//
// Pixel data larger than the transfer buffer is split on 9-byte boundaries.
// Since a full 9-byte group needs no padding, the controller sees one
// continuous data stream.
//
// # Filler Symbol
//
// Padding uses command 0x00, which is NOP on the controllers listed above.
// For a controller where 0x00 is not harmless, set Opts.Filler.
//
// # Compatibility with periph.io
//
// Dev implements conn.Resource and can be driven from any spi.Port, including
// the spitest fakes.
package spi9

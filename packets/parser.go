// SPDX-License-Identifier: MIT
// SPDX-FileCopyrightText: 2026 xiaostang

package packets

import (
	"bufio"
	"io"
)

// Parser reads framed MQTT packets from a buffered IO stream, one fixed
// header and remaining-length-delimited body at a time.
type Parser struct {
	R *bufio.Reader

	// FixedHeader is the fixed header from the last packet read.
	FixedHeader FixedHeader

	// MaximumPacketSize caps the total frame size accepted from the
	// stream. 0 means no cap beyond the protocol maximum.
	MaximumPacketSize uint32
}

// NewParser returns a parser reading from r.
func NewParser(r io.Reader) *Parser {
	return &Parser{
		R: bufio.NewReader(r),
	}
}

// ReadFixedHeader reads and decodes the next packet's fixed header,
// including the remaining length.
func (p *Parser) ReadFixedHeader(fh *FixedHeader) error {
	hb, err := p.R.ReadByte()
	if err != nil {
		return err
	}

	// [MQTT-2.2.2-2] invalid flags must close the network connection.
	if err := fh.Decode(hb); err != nil {
		return err
	}

	rem, bu, err := DecodeLength(p.R)
	if err != nil {
		return err
	}

	fh.Remaining = rem

	if p.MaximumPacketSize > 0 && uint32(1+bu+rem) > p.MaximumPacketSize { // [MQTT-3.1.2-24]
		return ErrPacketTooLarge
	}

	p.FixedHeader = *fh

	return nil
}

// Read reads the remaining bytes of the packet body following the last
// fixed header.
func (p *Parser) Read() ([]byte, error) {
	if p.FixedHeader.Remaining == 0 {
		return nil, nil
	}

	buf := make([]byte, p.FixedHeader.Remaining)
	if _, err := io.ReadFull(p.R, buf); err != nil {
		return nil, err
	}

	return buf, nil
}

// ReadPacket reads and decodes the next complete packet from the stream.
func (p *Parser) ReadPacket() (*Packet, error) {
	pk := new(Packet)
	if err := p.ReadFixedHeader(&pk.FixedHeader); err != nil {
		return nil, err
	}

	buf, err := p.Read()
	if err != nil {
		return nil, err
	}

	if err := pk.Decode(buf); err != nil {
		return nil, err
	}

	return pk, nil
}

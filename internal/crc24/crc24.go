// Package crc24 implements the 24-bit cyclic redundancy check used by OpenPGP armor, as defined in
// RFC 4880 section 6.1.
package crc24

import (
	"hash"
	"io"
)

const (
	// Init is the OpenPGP seed value.
	Init = 0xB704CE

	// Poly is the generator polynomial.
	Poly = 0x1864CFB

	// Size is the size of a CRC24 checksum in bytes.
	Size = 3

	mask = 0xFFFFFF
)

// Digest is a running CRC24 checksum.
type Digest struct {
	crc uint32
}

// New returns a Digest seeded with Init.
func New() *Digest {
	return &Digest{crc: Init}
}

// Update adds a single byte to the checksum.
func (d *Digest) Update(b byte) {
	d.crc ^= uint32(b) << 16

	for i := 0; i < 8; i++ {
		d.crc <<= 1
		if d.crc&0x1000000 != 0 {
			d.crc ^= Poly
		}
	}
}

// Sum24 returns the current checksum value.
func (d *Digest) Sum24() uint32 {
	return d.crc & mask
}

// Bytes returns the current checksum value, most significant byte first.
func (d *Digest) Bytes() [Size]byte {
	crc := d.Sum24()

	return [Size]byte{byte(crc >> 16), byte(crc >> 8), byte(crc)}
}

func (d *Digest) Write(p []byte) (n int, err error) {
	for _, b := range p {
		d.Update(b)
	}

	return len(p), nil
}

func (d *Digest) Sum(b []byte) []byte {
	sum := d.Bytes()

	return append(b, sum[:]...)
}

func (d *Digest) Reset() {
	d.crc = Init
}

func (d *Digest) Size() int {
	return Size
}

func (d *Digest) BlockSize() int {
	return 1
}

var (
	_ hash.Hash = &Digest{}
	_ io.Writer = &Digest{}
)

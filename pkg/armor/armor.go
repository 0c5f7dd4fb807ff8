// Package armor encodes OpenPGP data as ASCII armor, as described in RFC 4880 section 6.
//
// An Encoder writes each block as a BEGIN line naming the block type, a set of headers, a blank
// line, the payload as base64 wrapped at 64 characters, a CRC24 checksum line, and an END line:
//
//     -----BEGIN PGP MESSAGE-----
//     Version: github.com/codahale/armor
//
//     aGVsbG8gd29ybGQgaGVsbG8gd29ybGQgaGVsbG8gd29ybGQgaGVsbG8gd29ybGQg
//     =6Mb8
//     -----END PGP MESSAGE-----
//
// The block type is chosen from the packet tag of the first payload byte. An Encoder can also
// write the clear text portion of a clear-signed message, in which text is written as-is except
// for dash-escaping.
//
// Closing an Encoder finishes the current block but never closes the underlying writer, so any
// number of blocks can be written to it in sequence.
package armor

import (
	"fmt"
	"io"
	"strings"

	"github.com/codahale/armor/internal/chunk"
	"github.com/codahale/armor/internal/crc24"
	"github.com/emersion/go-textwrapper"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
)

// DefaultVersion is the value of the Version header unless WithVersion is used.
const DefaultVersion = "github.com/codahale/armor"

const (
	beginPrefix = "-----BEGIN PGP "
	endPrefix   = "-----END PGP "
	tail        = "-----"

	groupsPerLine = 16
	lineLen       = groupsPerLine * chunk.EncodedSize
)

var (
	// ErrUnsupportedHash is returned when a clear-signed message is started with a hash algorithm
	// which has no armor name.
	ErrUnsupportedHash = errors.New("unsupported hash algorithm")

	// ErrBlockOpen is returned when clear text is started before the current block is closed.
	ErrBlockOpen = errors.New("armor block is open")

	// ErrClearTextActive is returned when clear text is started twice.
	ErrClearTextActive = errors.New("clear text already started")
)

// Option configures an Encoder.
type Option func(*config)

type config struct {
	version       string
	headers       [][2]string
	newline       string
	logger        log.Logger
	blockChecksum bool
}

// WithVersion sets the value of the Version header.
func WithVersion(version string) Option {
	return func(c *config) {
		c.version = version
	}
}

// WithHeader adds an initial header entry. Headers are written in the order they are added. A
// Version entry is ignored; use WithVersion instead.
func WithHeader(name, value string) Option {
	return func(c *config) {
		c.headers = append(c.headers, [2]string{name, value})
	}
}

// WithNewline sets the line terminator. The default is "\n".
func WithNewline(nl string) Option {
	return func(c *config) {
		c.newline = nl
	}
}

// WithBlockChecksum restarts the checksum at the start of each block, so every block written to
// the same writer can be decoded on its own. By default the checksum runs over every byte written
// since the Encoder was created.
func WithBlockChecksum() Option {
	return func(c *config) {
		c.blockChecksum = true
	}
}

// WithLogger sets the logger used to report block boundaries at debug level.
func WithLogger(logger log.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// An Encoder writes armored blocks to an underlying writer.
//
// An Encoder is not safe for concurrent use.
type Encoder struct {
	dst           io.Writer
	nl            string
	headers       *Headers
	logger        log.Logger
	blockChecksum bool

	binary *binaryWriter
	mode   byteWriter
}

// byteWriter is the write path of the current mode: either *binaryWriter or *clearTextWriter.
type byteWriter interface {
	writeByte(c byte) error
}

// NewEncoder returns an Encoder which writes armored data to dst.
func NewEncoder(dst io.Writer, opts ...Option) *Encoder {
	c := config{
		version: DefaultVersion,
		newline: "\n",
		logger:  log.NewNopLogger(),
	}

	for _, opt := range opts {
		opt(&c)
	}

	headers := NewHeaders(c.version)

	for _, kv := range c.headers {
		if kv[0] != VersionHeader {
			headers.Set(kv[0], kv[1])
		}
	}

	e := &Encoder{
		dst:           dst,
		nl:            c.newline,
		headers:       headers,
		logger:        c.logger,
		blockChecksum: c.blockChecksum,
	}
	e.binary = &binaryWriter{e: e, crc: crc24.New()}
	e.mode = e.binary

	return e
}

// Armor returns data armored as a single block.
func Armor(data []byte, opts ...Option) (string, error) {
	var b strings.Builder

	enc := NewEncoder(&b, opts...)

	if _, err := enc.Write(data); err != nil {
		return "", err
	}

	if err := enc.Close(); err != nil {
		return "", err
	}

	return b.String(), nil
}

// SetHeader adds or replaces a header entry. Changes take effect at the start of the next block.
func (e *Encoder) SetHeader(name, value string) {
	e.headers.Set(name, value)
}

// ResetHeaders removes all header entries except Version.
func (e *Encoder) ResetHeaders() {
	e.headers.Reset()
}

// Headers returns a copy of the header entries written at the start of each block. Use SetHeader
// and ResetHeaders to change them.
func (e *Encoder) Headers() *Headers {
	return e.headers.Clone()
}

// Label returns the type of the open block, or the empty string if no block is open.
func (e *Encoder) Label() Label {
	return e.binary.label
}

// WriteByte writes a single byte.
func (e *Encoder) WriteByte(c byte) error {
	return e.mode.writeByte(c)
}

// Write writes p one byte at a time. It returns the number of bytes accepted before any error.
func (e *Encoder) Write(p []byte) (n int, err error) {
	for _, c := range p {
		if err := e.mode.writeByte(c); err != nil {
			return n, err
		}
		n++
	}

	return n, nil
}

// Close finishes the open block by writing any buffered data, the checksum, and the END line, and
// then flushes the underlying writer if it has a Flush method. The underlying writer is not
// closed. If no block is open, Close does nothing.
func (e *Encoder) Close() error {
	return e.binary.close()
}

func (e *Encoder) writeString(s string) error {
	_, err := io.WriteString(e.dst, s)

	return err
}

func (e *Encoder) flush() error {
	if f, ok := e.dst.(interface{ Flush() error }); ok {
		return f.Flush()
	}

	return nil
}

type blockState int

const (
	blockClosed blockState = iota
	blockOpen
)

type binaryWriter struct {
	e     *Encoder
	state blockState
	label Label
	lines io.Writer
	crc   *crc24.Digest
	buf   [chunk.Size]byte
	n     int
	total int64
}

func (w *binaryWriter) writeByte(c byte) error {
	if w.state == blockClosed {
		if err := w.open(c); err != nil {
			return err
		}
	}

	w.buf[w.n] = c
	w.n++
	w.total++
	w.crc.Update(c)

	if w.n == chunk.Size {
		return w.flushGroup()
	}

	return nil
}

// open writes the BEGIN line and headers for a block which starts with c.
func (w *binaryWriter) open(c byte) error {
	e := w.e
	label := Classify(c)

	var b strings.Builder

	b.WriteString(beginPrefix + string(label) + tail + e.nl)

	for _, name := range e.headers.Names() {
		v, _ := e.headers.Get(name)
		b.WriteString(name + ": " + v + e.nl)
	}

	b.WriteString(e.nl)

	if err := e.writeString(b.String()); err != nil {
		return err
	}

	// The wrapper only breaks a line when more data follows, so a payload which ends exactly at a
	// line boundary is not followed by an empty line.
	w.lines = textwrapper.New(e.dst, e.nl, lineLen)

	if e.blockChecksum {
		w.crc.Reset()
	}

	w.label = label
	w.total = 0
	w.state = blockOpen

	_ = level.Debug(e.logger).Log("msg", "opened armor block", "label", label, "headers", e.headers.Len())

	return nil
}

func (w *binaryWriter) flushGroup() error {
	var out [chunk.EncodedSize]byte

	n := chunk.Encode(out[:], w.buf[:w.n])
	w.n = 0

	if n == 0 {
		return nil
	}

	_, err := w.lines.Write(out[:n])

	return err
}

func (w *binaryWriter) close() error {
	if w.state != blockOpen {
		return nil
	}

	e := w.e

	if err := w.flushGroup(); err != nil {
		return err
	}

	sum := w.crc.Bytes()

	var out [chunk.EncodedSize]byte

	chunk.Encode(out[:], sum[:])

	footer := e.nl + "=" + string(out[:]) + e.nl + endPrefix + string(w.label) + tail + e.nl
	if err := e.writeString(footer); err != nil {
		return err
	}

	if err := e.flush(); err != nil {
		return err
	}

	_ = level.Debug(e.logger).Log("msg", "closed armor block", "label", w.label, "bytes", w.total,
		"crc", fmt.Sprintf("%06x", w.crc.Sum24()))

	w.state = blockClosed
	w.label = ""
	w.lines = nil

	return nil
}

var (
	_ io.WriteCloser = &Encoder{}
	_ io.ByteWriter  = &Encoder{}
)

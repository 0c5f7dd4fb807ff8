package armor

import (
	"github.com/go-kit/log/level"
)

const clearTextHeader = "-----BEGIN PGP SIGNED MESSAGE-----"

// BeginClearText starts the clear text part of a clear-signed message, declaring h as the hash
// algorithm of the signature which follows it. Until EndClearText is called, written bytes are
// passed through as-is, except that a dash at the start of a line is escaped as "- -".
func (e *Encoder) BeginClearText(h HashAlgorithm) error {
	if e.binary.state == blockOpen {
		return ErrBlockOpen
	}

	if _, ok := e.mode.(*clearTextWriter); ok {
		return ErrClearTextActive
	}

	name, err := h.Name()
	if err != nil {
		return err
	}

	if err := e.writeString(clearTextHeader + e.nl + "Hash: " + name + e.nl + e.nl); err != nil {
		return err
	}

	e.mode = &clearTextWriter{e: e, newLine: true}

	_ = level.Debug(e.logger).Log("msg", "started clear text", "hash", name)

	return nil
}

// EndClearText ends the clear text part of a clear-signed message. It writes nothing; the
// signature is written afterwards as a regular armored block.
func (e *Encoder) EndClearText() {
	e.mode = e.binary
}

type clearTextWriter struct {
	e       *Encoder
	newLine bool
	last    byte
}

func (w *clearTextWriter) writeByte(c byte) error {
	out := [3]byte{c}
	n := 1

	if w.newLine {
		// The LF of a CRLF pair still leaves the writer at the start of a line.
		if !(c == '\n' && w.last == '\r') {
			w.newLine = false
		}

		if c == '-' {
			out[1], out[2] = ' ', '-'
			n = 3
		}
	}

	if c == '\r' || (c == '\n' && w.last != '\r') {
		w.newLine = true
	}

	w.last = c

	_, err := w.e.dst.Write(out[:n])

	return err
}

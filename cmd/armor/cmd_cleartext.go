package main

import (
	"bufio"
	"io"

	"github.com/codahale/armor/pkg/armor"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
)

type clearTextCmd struct {
	Message string `arg:"" type:"existingfile" help:"The path to the message text."`
	Output  string `arg:"" optional:"" default:"-" type:"path" help:"The path to the clear-signed output."`

	Hash      string `default:"SHA256" enum:"MD5,SHA1,RIPEMD160,MD2,SHA256,SHA384,SHA512" help:"The hash algorithm of the signature."`
	Signature string `type:"existingfile" help:"The path to a binary signature packet to append."`
}

func (cmd *clearTextCmd) Run(rc *runContext) error {
	h, err := armor.ParseHashAlgorithm(cmd.Hash)
	if err != nil {
		return err
	}

	// Open the message input.
	src, err := openInput(cmd.Message, rc.logger)
	if err != nil {
		return err
	}

	defer func() { _ = src.Close() }()

	// Open the output.
	dst, err := openOutput(cmd.Output)
	if err != nil {
		return err
	}

	defer func() { _ = dst.Close() }()

	enc := armor.NewEncoder(dst, rc.opts...)

	// Write the dash-escaped message.
	if err := enc.BeginClearText(h); err != nil {
		return err
	}

	last := &lastByteWriter{}

	n, err := io.Copy(io.MultiWriter(enc, last), bufio.NewReader(src))
	if err != nil {
		return errors.Wrap(err, "unable to write clear text")
	}

	enc.EndClearText()

	_ = level.Info(rc.logger).Log("msg", "wrote clear text", "bytes", n, "hash", h)

	if cmd.Signature == "" {
		return dst.Close()
	}

	// The signature block starts on its own line.
	if n > 0 && last.b != '\n' {
		if _, err := io.WriteString(dst, rc.newline); err != nil {
			return err
		}
	}

	// Append the armored signature.
	sig, err := openInput(cmd.Signature, rc.logger)
	if err != nil {
		return err
	}

	defer func() { _ = sig.Close() }()

	if _, err := io.Copy(enc, bufio.NewReader(sig)); err != nil {
		return errors.Wrap(err, "unable to armor signature")
	}

	if enc.Label() != armor.LabelSignature {
		_ = level.Warn(rc.logger).Log("msg", "signature file does not start with a signature packet",
			"label", enc.Label())
	}

	if err := enc.Close(); err != nil {
		return err
	}

	return dst.Close()
}

// lastByteWriter records the last byte written to it.
type lastByteWriter struct {
	b byte
}

func (w *lastByteWriter) Write(p []byte) (int, error) {
	if len(p) > 0 {
		w.b = p[len(p)-1]
	}

	return len(p), nil
}

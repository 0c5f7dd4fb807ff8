package main

import (
	"bufio"
	"io"

	"github.com/codahale/armor/pkg/armor"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
)

type encodeCmd struct {
	Input  string `arg:"" optional:"" default:"-" help:"The path to the OpenPGP data."`
	Output string `arg:"" optional:"" default:"-" type:"path" help:"The path to the armored output."`

	Header []string `short:"H" help:"An additional header, as \"Name: value\". May be repeated."`
}

func (cmd *encodeCmd) Run(rc *runContext) error {
	opts := rc.opts

	// Parse the additional headers.
	for _, h := range cmd.Header {
		name, value, err := parseHeader(h)
		if err != nil {
			return err
		}

		opts = append(opts, armor.WithHeader(name, value))
	}

	// Open the input.
	src, err := openInput(cmd.Input, rc.logger)
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

	// Armor the input as a single block.
	enc := armor.NewEncoder(dst, opts...)

	n, err := io.Copy(enc, bufio.NewReader(src))
	if err != nil {
		return errors.Wrap(err, "unable to armor input")
	}

	if err := enc.Close(); err != nil {
		return err
	}

	_ = level.Info(rc.logger).Log("msg", "armored input", "bytes", n)

	return dst.Close()
}

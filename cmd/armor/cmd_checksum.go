package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/codahale/armor/internal/chunk"
	"github.com/codahale/armor/internal/crc24"
	"github.com/pkg/errors"
)

type checksumCmd struct {
	Input string `arg:"" optional:"" default:"-" help:"The path to the data."`
}

func (cmd *checksumCmd) Run(rc *runContext) error {
	src, err := openInput(cmd.Input, rc.logger)
	if err != nil {
		return err
	}

	defer func() { _ = src.Close() }()

	d := crc24.New()
	if _, err := io.Copy(d, bufio.NewReader(src)); err != nil {
		return errors.Wrap(err, "unable to read input")
	}

	sum := d.Bytes()

	var out [chunk.EncodedSize]byte

	chunk.Encode(out[:], sum[:])

	_, err = fmt.Fprintf(os.Stdout, "=%s\n", out[:])

	return err
}

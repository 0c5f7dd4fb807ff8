package main

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/codahale/armor/pkg/armor"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"golang.org/x/term"
)

type cli struct {
	Encode    encodeCmd    `cmd:"" help:"Armor an OpenPGP packet stream."`
	ClearText clearTextCmd `cmd:"" name:"cleartext" help:"Write the clear text part of a clear-signed message."`
	Checksum  checksumCmd  `cmd:"" help:"Print the armor checksum of a file."`

	VersionHeader string `name:"version-header" env:"ARMOR_VERSION" default:"${version}" help:"The value of the Version header."`
	CRLF          bool   `name:"crlf" env:"ARMOR_CRLF" help:"Terminate lines with CRLF."`
	LogLevel      string `name:"log-level" env:"ARMOR_LOG_LEVEL" enum:"debug,info,warn,error" default:"info" help:"The level of log messages to write to stderr."`
}

// runContext is bound to every command's Run method.
type runContext struct {
	logger  log.Logger
	opts    []armor.Option
	newline string
}

func main() {
	var cli cli

	ctx := kong.Parse(&cli,
		kong.Name("armor"),
		kong.Description("Encode OpenPGP data as ASCII armor."),
		kong.UsageOnError(),
		kong.Vars{"version": armor.DefaultVersion},
		kong.Configuration(kong.JSON, "~/.armor.json"),
	)

	logger := newLogger(cli.LogLevel)

	err := ctx.Run(&runContext{logger: logger, opts: cli.options(logger), newline: cli.newline()})
	if err != nil {
		_ = level.Error(logger).Log("msg", "command failed", "cmd", ctx.Command(), "err", err)
	}

	ctx.FatalIfErrorf(err)
}

func (c *cli) options(logger log.Logger) []armor.Option {
	opts := []armor.Option{
		armor.WithVersion(c.VersionHeader),
		armor.WithLogger(logger),
	}

	return append(opts, armor.WithNewline(c.newline()))
}

func (c *cli) newline() string {
	if c.CRLF {
		return "\r\n"
	}

	return "\n"
}

func newLogger(lvl string) log.Logger {
	logger := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	logger = log.With(logger, "ts", log.DefaultTimestampUTC)

	var allow level.Option

	switch lvl {
	case "debug":
		allow = level.AllowDebug()
	case "warn":
		allow = level.AllowWarn()
	case "error":
		allow = level.AllowError()
	default:
		allow = level.AllowInfo()
	}

	return level.NewFilter(logger, allow)
}

// parseHeader splits a "Name: value" header argument.
func parseHeader(s string) (name, value string, err error) {
	i := strings.Index(s, ":")
	if i <= 0 {
		return "", "", errors.Errorf("invalid header %q: expected \"Name: value\"", s)
	}

	return strings.TrimSpace(s[:i]), strings.TrimSpace(s[i+1:]), nil
}

func openInput(path string, logger log.Logger) (io.ReadCloser, error) {
	if path == "-" {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			_ = level.Info(logger).Log("msg", "reading from terminal, end input with Ctrl-D")
		}

		return io.NopCloser(os.Stdin), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "unable to open input")
	}

	return f, nil
}

func openOutput(path string) (*output, error) {
	var dst io.WriteCloser = nopWriteCloser{Writer: os.Stdout}

	if path != "-" {
		f, err := os.Create(path)
		if err != nil {
			return nil, errors.Wrap(err, "unable to create output")
		}

		dst = f
	}

	return &output{Writer: bufio.NewWriter(dst), dst: dst}, nil
}

// output is a buffered writer. The encoder flushes it at the end of each block; Close flushes any
// remainder and closes the underlying file.
type output struct {
	*bufio.Writer
	dst io.WriteCloser
}

func (o *output) Close() error {
	if err := o.Flush(); err != nil {
		_ = o.dst.Close()

		return err
	}

	return o.dst.Close()
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error {
	return nil
}

var _ io.WriteCloser = &output{}

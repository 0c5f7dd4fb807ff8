package armor

import (
	"bytes"
	"encoding/base64"
	"testing"

	"github.com/codahale/armor/internal/crc24"
	"github.com/codahale/gubbins/assert"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestClearText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		output string
	}{
		{
			name:   "leading dash",
			input:  "-hello",
			output: "- -hello",
		},
		{
			name:   "inner dash",
			input:  "a-b",
			output: "a-b",
		},
		{
			name:   "dash after lf",
			input:  "one\n-two\n--three",
			output: "one\n- -two\n- --three",
		},
		{
			name:   "dash after crlf",
			input:  "one\r\n-two\r\n",
			output: "one\r\n- -two\r\n",
		},
		{
			name:   "dash after cr",
			input:  "one\r-two",
			output: "one\r- -two",
		},
		{
			name:   "armor lines",
			input:  "-----BEGIN PGP MESSAGE-----\n",
			output: "- -----BEGIN PGP MESSAGE-----\n",
		},
		{
			name:   "blank lines",
			input:  "\n\n-\n",
			output: "\n\n- -\n",
		},
	}
	for _, test := range tests {
		test := test

		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			dst := bytes.NewBuffer(nil)
			enc := NewEncoder(dst)

			if err := enc.BeginClearText(SHA256); err != nil {
				t.Fatal(err)
			}

			if _, err := enc.Write([]byte(test.input)); err != nil {
				t.Fatal(err)
			}

			enc.EndClearText()

			assert.Equal(t, "clear text",
				"-----BEGIN PGP SIGNED MESSAGE-----\nHash: SHA256\n\n"+test.output,
				dst.String())
		})
	}
}

func TestClearSignedMessage(t *testing.T) {
	t.Parallel()

	dst := bytes.NewBuffer(nil)
	enc := NewEncoder(dst, WithNewline("\r\n"))

	if err := enc.BeginClearText(SHA512); err != nil {
		t.Fatal(err)
	}

	if _, err := enc.Write([]byte("- item one\r\n")); err != nil {
		t.Fatal(err)
	}

	// Closing while writing clear text does nothing.
	if err := enc.Close(); err != nil {
		t.Fatal(err)
	}

	enc.EndClearText()

	sig := []byte{0xc2, 0x01, 0x02}
	if _, err := enc.Write(sig); err != nil {
		t.Fatal(err)
	}

	if err := enc.Close(); err != nil {
		t.Fatal(err)
	}

	armoredSig, err := Armor(sig, WithNewline("\r\n"))
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, "clear-signed message",
		"-----BEGIN PGP SIGNED MESSAGE-----\r\n"+
			"Hash: SHA512\r\n"+
			"\r\n"+
			"- - item one\r\n"+
			armoredSig,
		dst.String())
}

func TestClearTextSkipsChecksum(t *testing.T) {
	t.Parallel()

	dst := bytes.NewBuffer(nil)
	enc := NewEncoder(dst)

	if err := enc.BeginClearText(SHA256); err != nil {
		t.Fatal(err)
	}

	text := []byte("some text which is not part of the checksum\n")
	if _, err := enc.Write(text); err != nil {
		t.Fatal(err)
	}

	enc.EndClearText()

	sig := []byte{0xc2, 0x01, 0x02}
	if _, err := enc.Write(sig); err != nil {
		t.Fatal(err)
	}

	if err := enc.Close(); err != nil {
		t.Fatal(err)
	}

	d := crc24.New()
	_, _ = d.Write(sig)
	sum := d.Bytes()

	assert.Equal(t, "checksum", "=nEqy", checksumLines(dst.String())[0])
	assert.Equal(t, "checksum of signature bytes", "=nEqy",
		"="+base64.StdEncoding.EncodeToString(sum[:]))
}

func TestBeginClearTextUnsupportedHash(t *testing.T) {
	t.Parallel()

	dst := bytes.NewBuffer(nil)
	enc := NewEncoder(dst)

	err := enc.BeginClearText(HashAlgorithm(4))

	assert.Equal(t, "error", ErrUnsupportedHash, err, cmpopts.EquateErrors())
	assert.Equal(t, "output", "", dst.String())

	// The encoder is still in binary mode.
	if err := enc.WriteByte(0xc6); err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, "label", LabelPublicKey, enc.Label())
}

func TestBeginClearTextWithOpenBlock(t *testing.T) {
	t.Parallel()

	enc := NewEncoder(bytes.NewBuffer(nil))

	if err := enc.WriteByte(0x01); err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, "error", ErrBlockOpen, enc.BeginClearText(SHA1), cmpopts.EquateErrors())
}

func TestBeginClearTextTwice(t *testing.T) {
	t.Parallel()

	enc := NewEncoder(bytes.NewBuffer(nil))

	if err := enc.BeginClearText(SHA1); err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, "error", ErrClearTextActive, enc.BeginClearText(SHA1), cmpopts.EquateErrors())
}

// Package encoding decodes uploaded text files (bank statements, backups) to
// UTF-8. Files exported by French banks and spreadsheet tools are UTF-8,
// UTF-16 with a BOM, or one of the two Western European legacy charsets.
package encoding

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Charset names a source encoding the decoder supports.
type Charset string

const (
	UTF8        Charset = "UTF-8"
	UTF16LE     Charset = "UTF-16LE"
	UTF16BE     Charset = "UTF-16BE"
	Windows1252 Charset = "windows-1252"
	// Latin9 is ISO-8859-15, Latin-1 with the euro sign at 0xA4.
	Latin9 Charset = "ISO-8859-15"
)

// sniffSize is how much of a file is inspected before decoding starts.
const sniffSize = 4096

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// Detection describes how a file was decoded.
type Detection struct {
	Charset Charset
	BOM     bool
	// Guessed is set when neither a BOM nor valid UTF-8 settled the charset.
	Guessed bool
	// Hint is chardet's best guess, kept for logging. Empty when unused.
	Hint string
}

// Reader yields the file's content as UTF-8.
type Reader struct {
	io.Reader
	Detection
}

// Open sniffs the head of r and returns a reader decoding the rest to UTF-8.
// A UTF-8 BOM is dropped.
func Open(r io.Reader) (*Reader, error) {
	br := bufio.NewReaderSize(r, sniffSize)

	head, err := br.Peek(sniffSize)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("reading file head: %w", err)
	}

	// A full window may end inside a multi-byte rune.
	d := sniff(head, err == nil)

	if d.Charset == UTF8 && d.BOM {
		if _, err := br.Discard(len(bomUTF8)); err != nil {
			return nil, fmt.Errorf("skipping BOM: %w", err)
		}
	}

	return &Reader{Reader: decode(br, d.Charset), Detection: d}, nil
}

func sniff(head []byte, truncated bool) Detection {
	switch {
	case bytes.HasPrefix(head, bomUTF8):
		return Detection{Charset: UTF8, BOM: true}
	case bytes.HasPrefix(head, bomUTF16LE):
		return Detection{Charset: UTF16LE, BOM: true}
	case bytes.HasPrefix(head, bomUTF16BE):
		return Detection{Charset: UTF16BE, BOM: true}
	}

	if truncated {
		head = trimPartialRune(head)
	}

	if utf8.Valid(head) {
		return Detection{Charset: UTF8}
	}

	d := Detection{Charset: westernCharset(head), Guessed: true}

	if res, err := chardet.NewTextDetector().DetectBest(head); err == nil {
		d.Hint = res.Charset
	}

	return d
}

// westernCharset tells Windows-1252 from Latin-9. Bytes 0x80-0x9F are
// printable only in Windows-1252; 0xA4 is the euro sign only in Latin-9.
func westernCharset(head []byte) Charset {
	latin9 := false

	for _, b := range head {
		switch {
		case b >= 0x80 && b <= 0x9F:
			return Windows1252
		case b == 0xA4:
			latin9 = true
		}
	}

	if latin9 {
		return Latin9
	}

	return Windows1252
}

func trimPartialRune(b []byte) []byte {
	for i := 1; i < utf8.UTFMax && i <= len(b); i++ {
		if !utf8.RuneStart(b[len(b)-i]) {
			continue
		}

		if !utf8.FullRune(b[len(b)-i:]) {
			return b[:len(b)-i]
		}

		break
	}

	return b
}

func decode(r io.Reader, c Charset) io.Reader {
	switch c {
	case UTF16LE:
		return transform.NewReader(r, unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder())
	case UTF16BE:
		return transform.NewReader(r, unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder())
	case Windows1252:
		return transform.NewReader(r, charmap.Windows1252.NewDecoder())
	case Latin9:
		return transform.NewReader(r, charmap.ISO8859_15.NewDecoder())
	}

	return r
}

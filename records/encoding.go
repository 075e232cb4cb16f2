package records

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// Encoding is the charset of a record file
type Encoding string

const (
	// UTF8 files are read as is
	UTF8 Encoding = "utf-8"

	// Latin1 files are decoded from ISO 8859-1
	Latin1 Encoding = "latin1"
)

// ParseEncoding maps a flag value to an Encoding
func ParseEncoding(s string) (Encoding, error) {
	switch strings.ToLower(s) {
	case "", "utf-8", "utf8":
		return UTF8, nil
	case "latin1", "latin-1", "iso-8859-1", "iso8859-1":
		return Latin1, nil
	}
	return "", fmt.Errorf("encoding %q not supported", s)
}

// Reader wraps in with the decoder of the encoding
func (e Encoding) Reader(in io.Reader) io.Reader {
	if e == Latin1 {
		return charmap.ISO8859_1.NewDecoder().Reader(in)
	}
	return in
}

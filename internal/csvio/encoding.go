package csvio

import (
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	pkgerrors "github.com/tabfuse/tabfuse/pkg/errors"
)

// EncodingNames lists the accepted source encodings.
func EncodingNames() []string {
	return []string{"utf-8", "latin-1", "iso-8859-1", "windows-1252", "utf-16", "utf-16le", "utf-16be"}
}

// ValidateEncoding reports whether name is a supported source encoding.
func ValidateEncoding(name string) error {
	_, err := newDecoder(name)
	return err
}

// decodingReader wraps r so that its bytes come out as UTF-8. The empty
// encoding name means UTF-8 with an optional leading BOM.
func decodingReader(r io.Reader, name string) (io.Reader, error) {
	dec, err := newDecoder(name)
	if err != nil {
		return nil, err
	}
	return dec.Reader(r), nil
}

func newDecoder(name string) (*encoding.Decoder, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return unicode.UTF8BOM.NewDecoder(), nil
	case "latin-1", "latin1", "iso-8859-1", "iso8859-1":
		return charmap.ISO8859_1.NewDecoder(), nil
	case "windows-1252", "cp1252":
		return charmap.Windows1252.NewDecoder(), nil
	case "utf-16", "utf16":
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder(), nil
	case "utf-16le", "utf16le":
		return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder(), nil
	case "utf-16be", "utf16be":
		return unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewDecoder(), nil
	default:
		return nil, pkgerrors.NewValidationError("encoding", name,
			"must be one of "+strings.Join(EncodingNames(), ", "))
	}
}

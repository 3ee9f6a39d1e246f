package convert

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"os"

	"github.com/h2non/filetype"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
	"golang.org/x/text/transform"

	"arender/area"
	"arender/intermediate"
)

// how many bytes are looked at to recognize input
const headSize = 4096

type srcEncoding int

const (
	encUnknown srcEncoding = iota
	encUTF8
	encUTF16BigEndian
	encUTF16LittleEndian
	encUTF32BigEndian
	encUTF32LittleEndian
)

// inputKind tells which document a file carries.
type inputKind int

const (
	inputUnknown inputKind = iota
	inputAreaTree
	inputIntermediate
)

func (k inputKind) String() string {
	switch k {
	case inputAreaTree:
		return "area tree"
	case inputIntermediate:
		return "intermediate format"
	default:
		return "unknown"
	}
}

// detectUTF looks for byte order mark.
func detectUTF(head []byte) srcEncoding {
	switch {
	case bytes.HasPrefix(head, []byte{0x00, 0x00, 0xFE, 0xFF}):
		return encUTF32BigEndian
	case bytes.HasPrefix(head, []byte{0xFF, 0xFE, 0x00, 0x00}):
		return encUTF32LittleEndian
	case bytes.HasPrefix(head, []byte{0xEF, 0xBB, 0xBF}):
		return encUTF8
	case bytes.HasPrefix(head, []byte{0xFE, 0xFF}):
		return encUTF16BigEndian
	case bytes.HasPrefix(head, []byte{0xFF, 0xFE}):
		return encUTF16LittleEndian
	}
	return encUnknown
}

// selectReader returns reader producing UTF-8 for input with byte order
// mark, other input is left to XML encoding declaration.
func selectReader(r io.Reader, enc srcEncoding) io.Reader {
	switch enc {
	case encUnknown:
		return r
	case encUTF8:
		return transform.NewReader(r, unicode.UTF8BOM.NewDecoder())
	case encUTF16BigEndian:
		return transform.NewReader(r, unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM).NewDecoder())
	case encUTF16LittleEndian:
		return transform.NewReader(r, unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM).NewDecoder())
	case encUTF32BigEndian:
		return transform.NewReader(r, utf32.UTF32(utf32.BigEndian, utf32.ExpectBOM).NewDecoder())
	case encUTF32LittleEndian:
		return transform.NewReader(r, utf32.UTF32(utf32.LittleEndian, utf32.ExpectBOM).NewDecoder())
	default:
		// this should never happen
		panic("unexpected source encoding")
	}
}

// detectInput recognizes input by its root element. XML is only decoded up
// to the first element.
func detectInput(head []byte) (inputKind, srcEncoding) {
	if kind, err := filetype.Match(head); err == nil && kind != filetype.Unknown {
		// image, archive or anything else binary
		return inputUnknown, encUnknown
	}
	enc := detectUTF(head)
	dec := xml.NewDecoder(selectReader(bytes.NewReader(head), enc))
	dec.CharsetReader = charset.NewReaderLabel
	dec.Strict = false
	for {
		tok, err := dec.Token()
		if err != nil {
			return inputUnknown, enc
		}
		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		switch {
		case se.Name.Local == area.RootElement:
			return inputAreaTree, enc
		case se.Name.Local == intermediate.RootElement && se.Name.Space == intermediate.Namespace:
			return inputIntermediate, enc
		}
		return inputUnknown, enc
	}
}

func readHead(r io.Reader) ([]byte, error) {
	head := make([]byte, headSize)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return head[:n], nil
}

func isInputFile(path string) (inputKind, srcEncoding, error) {
	f, err := os.Open(path)
	if err != nil {
		return inputUnknown, encUnknown, err
	}
	defer f.Close()

	head, err := readHead(f)
	if err != nil {
		return inputUnknown, encUnknown, err
	}
	kind, enc := detectInput(head)
	return kind, enc, nil
}

func isInputInArchive(file *zip.File) (inputKind, srcEncoding, error) {
	r, err := file.Open()
	if err != nil {
		return inputUnknown, encUnknown, err
	}
	defer r.Close()

	head, err := readHead(r)
	if err != nil {
		return inputUnknown, encUnknown, err
	}
	kind, enc := detectInput(head)
	return kind, enc, nil
}

func isArchiveFile(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	head, err := readHead(f)
	if err != nil {
		return false, err
	}
	kind, err := filetype.Match(head)
	if err != nil {
		return false, nil
	}
	return kind.Extension == "zip", nil
}

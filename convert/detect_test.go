package convert

import (
	"archive/zip"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
	"golang.org/x/text/transform"
)

func encode(t *testing.T, data string, enc srcEncoding) []byte {
	t.Helper()
	var tr transform.Transformer
	switch enc {
	case encUnknown:
		return []byte(data)
	case encUTF8:
		return append([]byte{0xEF, 0xBB, 0xBF}, data...)
	case encUTF16BigEndian:
		tr = unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewEncoder()
	case encUTF16LittleEndian:
		tr = unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder()
	case encUTF32BigEndian:
		tr = utf32.UTF32(utf32.BigEndian, utf32.UseBOM).NewEncoder()
	case encUTF32LittleEndian:
		tr = utf32.UTF32(utf32.LittleEndian, utf32.UseBOM).NewEncoder()
	}
	out, _, err := transform.Bytes(tr, []byte(data))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	return out
}

func TestDetectInput(t *testing.T) {
	png := []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0x0D, 'I', 'H', 'D', 'R'}
	tests := []struct {
		name string
		data []byte
		kind inputKind
		enc  srcEncoding
	}{
		{"area tree", []byte(`<?xml version="1.0"?><!-- c --><areaTree><pageSequence/></areaTree>`), inputAreaTree, encUnknown},
		{"intermediate", []byte(`<document xmlns="http://xmlgraphics.apache.org/fop/intermediate"><header/></document>`), inputIntermediate, encUnknown},
		{"document without namespace", []byte(`<document><header/></document>`), inputUnknown, encUnknown},
		{"other xml", []byte(`<FictionBook/>`), inputUnknown, encUnknown},
		{"not xml", []byte("plain text"), inputUnknown, encUnknown},
		{"png", png, inputUnknown, encUnknown},
		{"latin1 declaration", []byte(`<?xml version="1.0" encoding="ISO-8859-1"?><areaTree/>`), inputAreaTree, encUnknown},
		{"utf8 bom", encode(t, `<areaTree/>`, encUTF8), inputAreaTree, encUTF8},
		{"utf16 le", encode(t, `<areaTree/>`, encUTF16LittleEndian), inputAreaTree, encUTF16LittleEndian},
		{"utf16 be", encode(t, `<areaTree/>`, encUTF16BigEndian), inputAreaTree, encUTF16BigEndian},
		{"utf32 le", encode(t, `<areaTree/>`, encUTF32LittleEndian), inputAreaTree, encUTF32LittleEndian},
		{"utf32 be", encode(t, `<areaTree/>`, encUTF32BigEndian), inputAreaTree, encUTF32BigEndian},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, enc := detectInput(tt.data)
			if kind != tt.kind || enc != tt.enc {
				t.Errorf("detectInput() = %v, %d, want %v, %d", kind, enc, tt.kind, tt.enc)
			}
		})
	}
}

func TestSelectReader(t *testing.T) {
	const text = `<areaTree title="Глава"/>`
	for _, enc := range []srcEncoding{encUnknown, encUTF8, encUTF16BigEndian, encUTF16LittleEndian, encUTF32BigEndian, encUTF32LittleEndian} {
		got, err := io.ReadAll(selectReader(bytes.NewReader(encode(t, text, enc)), enc))
		if err != nil {
			t.Fatalf("encoding %d: %v", enc, err)
		}
		if string(got) != text {
			t.Errorf("encoding %d: got %q", enc, got)
		}
	}

	defer func() {
		if recover() == nil {
			t.Error("expected panic for invalid encoding")
		}
	}()
	selectReader(bytes.NewReader(nil), srcEncoding(99))
}

func TestIsArchiveFile(t *testing.T) {
	dir := t.TempDir()

	plain := filepath.Join(dir, "fake.zip")
	if err := os.WriteFile(plain, []byte("not a real zip file"), 0644); err != nil {
		t.Fatal(err)
	}
	if got, err := isArchiveFile(plain); err != nil || got {
		t.Errorf("isArchiveFile(fake) = %v, %v", got, err)
	}

	real := filepath.Join(dir, "docs.bin")
	f, err := os.Create(real)
	if err != nil {
		t.Fatal(err)
	}
	w := zip.NewWriter(f)
	fw, err := w.Create("a.xml")
	if err != nil {
		t.Fatal(err)
	}
	fw.Write([]byte(sampleAreaTree))
	w.Close()
	f.Close()
	if got, err := isArchiveFile(real); err != nil || !got {
		t.Errorf("isArchiveFile(zip) = %v, %v", got, err)
	}

	if _, err := isArchiveFile(filepath.Join(dir, "missing")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestIsInputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.xml")
	if err := os.WriteFile(path, encode(t, sampleAreaTree, encUTF16LittleEndian), 0644); err != nil {
		t.Fatal(err)
	}
	kind, enc, err := isInputFile(path)
	if err != nil || kind != inputAreaTree || enc != encUTF16LittleEndian {
		t.Errorf("isInputFile() = %v, %d, %v", kind, enc, err)
	}
}

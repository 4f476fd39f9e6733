// Package testutil builds zip fixtures for tests.
package testutil

import (
	"bytes"
	"encoding/binary"
	"os"
	"testing"

	"github.com/yeka/zip"

	"github.com/creativeyann17/ziphopp/internal/format"
)

// Entry describes one file written into a fixture archive.
type Entry struct {
	Name   string
	Data   []byte
	Method uint16 // format.MethodStore, format.MethodDeflate, format.MethodZstd, format.MethodXZ
}

// Encryption selects how WriteArchive protects entries.
type Encryption struct {
	Password string
	Method   zip.EncryptionMethod
}

// WriteArchive writes entries, in order, into a new zip file at path.
// A nil enc writes plain entries; otherwise every entry is encrypted with
// enc.Password (the zip package always deflates encrypted entries).
func WriteArchive(tb testing.TB, path string, entries []Entry, enc *Encryption) {
	tb.Helper()

	format.RegisterCompressors()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for _, e := range entries {
		if enc != nil {
			w, err := zw.Encrypt(e.Name, enc.Password, enc.Method)
			if err != nil {
				tb.Fatalf("encrypt %s: %v", e.Name, err)
			}
			if _, err := w.Write(e.Data); err != nil {
				tb.Fatalf("write %s: %v", e.Name, err)
			}
			continue
		}

		w, err := zw.CreateHeader(&zip.FileHeader{Name: e.Name, Method: e.Method})
		if err != nil {
			tb.Fatalf("create %s: %v", e.Name, err)
		}
		if _, err := w.Write(e.Data); err != nil {
			tb.Fatalf("write %s: %v", e.Name, err)
		}
	}

	if err := zw.Close(); err != nil {
		tb.Fatalf("close zip writer: %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		tb.Fatalf("write archive: %v", err)
	}
}

// FlipPayload finds the first occurrence of marker in the file at path and
// inverts its first byte. Used on stored entries to break the CRC-32.
func FlipPayload(tb testing.TB, path string, marker []byte) {
	tb.Helper()

	raw, err := os.ReadFile(path)
	if err != nil {
		tb.Fatalf("read archive: %v", err)
	}
	idx := bytes.Index(raw, marker)
	if idx < 0 {
		tb.Fatalf("marker %q not found in %s", marker, path)
	}
	raw[idx] = ^raw[idx]
	if err := os.WriteFile(path, raw, 0644); err != nil {
		tb.Fatalf("rewrite archive: %v", err)
	}
}

// SetMethod rewrites the compression method of every local and central
// directory header in the archive. Payload bytes are left untouched.
func SetMethod(tb testing.TB, path string, method uint16) {
	tb.Helper()

	raw, err := os.ReadFile(path)
	if err != nil {
		tb.Fatalf("read archive: %v", err)
	}

	patch := func(sig []byte, methodOffset int) {
		for start := 0; ; {
			idx := bytes.Index(raw[start:], sig)
			if idx < 0 {
				return
			}
			pos := start + idx
			binary.LittleEndian.PutUint16(raw[pos+methodOffset:], method)
			start = pos + len(sig)
		}
	}
	patch([]byte("PK\x03\x04"), 8)
	patch([]byte("PK\x01\x02"), 10)

	if err := os.WriteFile(path, raw, 0644); err != nil {
		tb.Fatalf("rewrite archive: %v", err)
	}
}

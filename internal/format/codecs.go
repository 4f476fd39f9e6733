// internal/format/codecs.go
package format

import (
	"io"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
	"github.com/yeka/zip"
)

// Zip compression method IDs (APPNOTE 4.4.5)
const (
	MethodStore   uint16 = 0
	MethodDeflate uint16 = 8
	MethodZstd    uint16 = zstd.ZipMethodWinZip
	MethodXZ      uint16 = 95
	MethodAES     uint16 = 99
)

// Store and Deflate ship with the zip package; the others are registered here
func init() {
	zip.RegisterDecompressor(MethodZstd, zstd.ZipDecompressor())
	zip.RegisterDecompressor(MethodXZ, xzDecompressor)
}

var registerCompressorsOnce sync.Once

// RegisterCompressors registers the zstd and xz compressors with the zip package.
// Only fixtures need them, the inspector never writes archives.
// Safe to call more than once.
func RegisterCompressors() {
	registerCompressorsOnce.Do(func() {
		zip.RegisterCompressor(MethodZstd, zstd.ZipCompressor())
		zip.RegisterCompressor(MethodXZ, xzCompressor)
	})
}

// MethodName returns a short display name for a zip compression method
func MethodName(method uint16) string {
	switch method {
	case MethodStore:
		return "store"
	case MethodDeflate:
		return "deflate"
	case MethodZstd:
		return "zstd"
	case MethodXZ:
		return "xz"
	case MethodAES:
		return "aes"
	default:
		return "unknown"
	}
}

func xzDecompressor(r io.Reader) io.ReadCloser {
	xr, err := xz.NewReader(r)
	if err != nil {
		return errReadCloser{err: err}
	}
	return io.NopCloser(xr)
}

func xzCompressor(w io.Writer) (io.WriteCloser, error) {
	return &lazyXZWriter{dst: w}, nil
}

// lazyXZWriter defers the xz stream header until the first Write.
// The zip writer builds the compressor before it writes the local file header.
type lazyXZWriter struct {
	dst io.Writer
	xw  *xz.Writer
}

func (l *lazyXZWriter) init() error {
	if l.xw != nil {
		return nil
	}
	xw, err := xz.NewWriter(l.dst)
	if err != nil {
		return err
	}
	l.xw = xw
	return nil
}

func (l *lazyXZWriter) Write(p []byte) (int, error) {
	if err := l.init(); err != nil {
		return 0, err
	}
	return l.xw.Write(p)
}

// Close finishes the stream, emitting an empty one if nothing was written
func (l *lazyXZWriter) Close() error {
	if err := l.init(); err != nil {
		return err
	}
	return l.xw.Close()
}

// errReadCloser surfaces a decoder construction error on the first Read
type errReadCloser struct {
	err error
}

func (e errReadCloser) Read([]byte) (int, error) { return 0, e.err }
func (e errReadCloser) Close() error             { return nil }

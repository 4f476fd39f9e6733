// pkg/inspect/inspect.go
package inspect

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/yeka/zip"

	_ "github.com/creativeyann17/ziphopp/internal/format" // zstd and xz entry codecs
	"github.com/creativeyann17/ziphopp/pkg/ziphopp"
)

// ProgressCallback is called for progress updates during the probe
type ProgressCallback func(event ProgressEvent)

// ProgressEvent contains progress information
type ProgressEvent struct {
	Type     EventType
	FilePath string
	Current  int
	Total    int
}

// EventType indicates the type of progress event
type EventType int

const (
	EventStart EventType = iota
	EventEntry
	EventComplete
	EventError
)

// totals accumulates entry sizes
type totals struct {
	compressed   uint64
	uncompressed uint64
}

func (t *totals) add(entry *zip.File) {
	t.compressed += entry.CompressedSize64
	t.uncompressed += entry.UncompressedSize64
}

// Open inspects an archive and returns its listing and size metadata.
//
// Without a password every entry is probed and an encrypted entry fails with
// PasswordRequired. With a password only entry 0 is decrypted and checked;
// the reported sizes then cover entry 0 alone.
//
// Every failure is returned as a *Failure.
func Open(opts *Options, progressCb ProgressCallback) (*Outcome, error) {
	if opts == nil {
		opts = &Options{}
	}
	if err := opts.Validate(); err != nil {
		return nil, newFailure(KindResolution, "", err)
	}

	path, err := resolvePath(opts)
	if err != nil {
		return nil, newFailure(KindResolution, "", err)
	}

	archiveFile, err := os.Open(path)
	if err != nil {
		return nil, newFailure(KindIO, path, err)
	}
	defer archiveFile.Close()

	stat, err := archiveFile.Stat()
	if err != nil {
		return nil, newFailure(KindIO, path, err)
	}

	zr, err := zip.NewReader(archiveFile, stat.Size())
	if err != nil {
		return nil, newFailure(KindStructural, path, err)
	}

	// Capture the listing before any entry body is opened
	contents := make([]string, len(zr.File))
	for i, entry := range zr.File {
		contents[i] = entry.Name
	}

	outcome := &Outcome{
		Contents: contents,
		Path:     path,
	}

	var sum totals
	if opts.HasPassword {
		entry, fail := validatePassword(zr.File, path, opts.Password)
		if fail != nil {
			return nil, fail
		}
		sum.add(entry)
		outcome.Encrypted = entry.IsEncrypted()
		outcome.PartialTotals = len(zr.File) > 1
	} else {
		probed, fail := probe(zr.File, path, opts.VerifyData, progressCb)
		if fail != nil {
			return nil, fail
		}
		sum = probed
	}

	outcome.CompressedBytes = sum.compressed
	outcome.UncompressedBytes = sum.uncompressed
	outcome.Meta = Meta{
		Compressed: ziphopp.FormatSize(sum.compressed),
		Size:       ziphopp.FormatSize(sum.uncompressed),
		Name:       filepath.Base(path),
	}

	return outcome, nil
}

// resolvePath prefers the explicit path and falls back to the picker
func resolvePath(opts *Options) (string, error) {
	path := opts.InputPath
	if path == "" {
		if opts.Picker == nil {
			return "", ErrNoPicker
		}
		picked, err := opts.Picker.Pick(opts.Filter)
		if err != nil {
			return "", err
		}
		if picked == "" {
			return "", ErrNoPicker
		}
		path = picked
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", path, err)
	}
	return abs, nil
}

// validatePassword decrypts entry 0 with password and reads it through,
// which checks the CRC-32 (or the AES authentication code)
func validatePassword(files []*zip.File, path, password string) (*zip.File, *Failure) {
	if len(files) == 0 {
		return nil, blankFailure(ErrNoEntries)
	}

	entry := files[0]
	if entry.IsEncrypted() {
		entry.SetPassword(password)
	}

	rc, err := entry.Open()
	if err != nil {
		// The container refused the entry itself, not the password
		if errors.Is(err, zip.ErrFormat) || errors.Is(err, zip.ErrAlgorithm) || !entry.IsEncrypted() {
			return nil, blankFailure(err)
		}
		return nil, newFailure(KindCredentialInvalid, path, err)
	}
	defer rc.Close()

	if err := drain(entry, rc); err != nil {
		return nil, newFailure(KindCredentialInvalid, path, err)
	}

	return entry, nil
}

// probe opens every entry without a password and sums their sizes.
// It stops at the first entry that cannot be decoded.
func probe(files []*zip.File, path string, verifyData bool, progressCb ProgressCallback) (totals, *Failure) {
	if progressCb != nil {
		progressCb(ProgressEvent{
			Type:  EventStart,
			Total: len(files),
		})
	}

	var sum totals
	for i, entry := range files {
		if fail := probeEntry(entry, path, verifyData); fail != nil {
			if progressCb != nil {
				progressCb(ProgressEvent{
					Type:     EventError,
					FilePath: entry.Name,
					Current:  i,
					Total:    len(files),
				})
			}
			return totals{}, fail
		}

		sum.add(entry)

		if progressCb != nil {
			progressCb(ProgressEvent{
				Type:     EventEntry,
				FilePath: entry.Name,
				Current:  i + 1,
				Total:    len(files),
			})
		}
	}

	if progressCb != nil {
		progressCb(ProgressEvent{
			Type:    EventComplete,
			Current: len(files),
			Total:   len(files),
		})
	}

	return sum, nil
}

func probeEntry(entry *zip.File, path string, verifyData bool) *Failure {
	if entry.IsEncrypted() {
		return newFailure(KindCredentialRequired, path, ErrPasswordRequired)
	}

	rc, err := entry.Open()
	if err != nil {
		return classify(path, err)
	}
	defer rc.Close()

	if !verifyData {
		return nil
	}

	if err := drain(entry, rc); err != nil {
		return newFailure(KindStructural, path, fmt.Errorf("%s: %w", entry.Name, err))
	}
	return nil
}

// classify maps an entry open error onto a failure kind
func classify(path string, err error) *Failure {
	switch {
	case errors.Is(err, zip.ErrAlgorithm):
		return newFailure(KindUnsupported, path, err)
	case errors.Is(err, zip.ErrFormat):
		return newFailure(KindStructural, path, err)
	default:
		return &Failure{Kind: KindUnclassified, Path: path, Err: err}
	}
}

// drain reads an entry body to the end and checks its declared size.
// The zip reader verifies the checksum when it reaches EOF.
func drain(entry *zip.File, rc io.Reader) error {
	counter := &ziphopp.DiscardCounter{}
	if _, err := io.Copy(counter, rc); err != nil {
		return err
	}
	if counter.Count != entry.UncompressedSize64 {
		return fmt.Errorf("%w: expected %d, got %d", ErrSizeMismatch, entry.UncompressedSize64, counter.Count)
	}
	return nil
}

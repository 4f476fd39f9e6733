// pkg/ziphopp/helpers.go
package ziphopp

import (
	"fmt"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

// ProgressEvent is a generic progress event emitted while walking archive entries
type ProgressEvent struct {
	Type     EventType
	FilePath string
	Current  int64
	Total    int64
}

// EventType indicates the type of progress event
type EventType int

const (
	EventStart EventType = iota
	EventEntry
	EventComplete
	EventError
)

// sizeUnits are the magnitudes used by FormatSize, smallest first. GB is the cap.
var sizeUnits = [...]string{"B", "KB", "MB", "GB"}

// FormatSize formats bytes into a human-readable string such as "1.50MB".
// The value always carries two decimals and stops growing at GB,
// so 1536 GiB renders as "1536.00GB".
func FormatSize(bytes uint64) string {
	value := float64(bytes)
	unit := 0
	for value >= 1024 && unit < len(sizeUnits)-1 {
		value /= 1024
		unit++
	}
	return fmt.Sprintf("%.2f%s", value, sizeUnits[unit])
}

// ProgressBarCallback creates a progress callback that displays a single bar
// over the entries of an archive, with the entry being inspected on the left.
// Returns the callback function and the progress container (call Wait() after the operation)
func ProgressBarCallback() (func(ProgressEvent), *mpb.Progress) {
	progress := mpb.New(
		mpb.WithWidth(60),
		mpb.WithRefreshRate(100*time.Millisecond),
	)

	var bar *mpb.Bar
	var current atomic.Value
	current.Store("")

	callback := func(event ProgressEvent) {
		switch event.Type {
		case EventStart:
			// Empty archives complete instantly, a zero-total bar would never finish
			if event.Total == 0 {
				return
			}
			bar = progress.AddBar(event.Total,
				mpb.PrependDecorators(
					decor.Any(func(decor.Statistics) string {
						return TruncateLeft(current.Load().(string), 30)
					}, decor.WC{C: decor.DindentRight | decor.DextraSpace, W: 32}),
					decor.CountersNoUnit("%d / %d", decor.WCSyncWidth),
				),
				mpb.AppendDecorators(
					decor.Percentage(decor.WC{W: 5}),
				),
				mpb.BarRemoveOnComplete(),
			)

		case EventEntry:
			current.Store(event.FilePath)
			if bar != nil {
				bar.SetCurrent(event.Current)
			}

		case EventComplete:
			if bar != nil {
				bar.SetCurrent(event.Total)
			}

		case EventError:
			if bar != nil {
				bar.Abort(true)
			}
		}
	}

	return callback, progress
}

// TruncateLeft truncates a path from the left to fit maxLen, preserving the filename
func TruncateLeft(path string, maxLen int) string {
	if len(path) <= maxLen {
		return path
	}

	// Try to preserve at least the filename
	filename := filepath.Base(path)
	if len(filename) >= maxLen-3 {
		return "..." + filename[len(filename)-(maxLen-3):]
	}

	// Truncate from left with ellipsis
	return "..." + path[len(path)-(maxLen-3):]
}

// pkg/inspect/progress.go
package inspect

import (
	"github.com/vbauerster/mpb/v8"

	"github.com/creativeyann17/ziphopp/pkg/ziphopp"
)

// ProgressBarCallback creates a progress callback that displays a progress bar over entries
// Returns the callback function and the progress container (call Wait() after Open)
func ProgressBarCallback() (ProgressCallback, *mpb.Progress) {
	genericCb, progress := ziphopp.ProgressBarCallback()

	// Wrap the generic callback to adapt inspect.ProgressEvent to ziphopp.ProgressEvent
	callback := func(event ProgressEvent) {
		genericCb(ziphopp.ProgressEvent{
			Type:     ziphopp.EventType(event.Type),
			FilePath: event.FilePath,
			Current:  int64(event.Current),
			Total:    int64(event.Total),
		})
	}

	return callback, progress
}

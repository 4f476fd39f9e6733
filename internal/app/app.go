// Package app wires the archive inspector to the recent-files history.
// It is the only place where the two meet.
package app

import (
	"errors"

	"github.com/creativeyann17/ziphopp/internal/logger"
	"github.com/creativeyann17/ziphopp/pkg/history"
	"github.com/creativeyann17/ziphopp/pkg/inspect"
	"github.com/creativeyann17/ziphopp/pkg/picker"
)

// ErrNoHistory is returned by New without a history store
var ErrNoHistory = errors.New("history store is required")

// Recents is the part of history.Store the app needs
type Recents interface {
	Insert(path string) error
	Snapshot() []history.Entry
}

// History is the recent-files list as returned to callers
type History struct {
	History []history.Entry `json:"history"`
}

// Options configures an App
type Options struct {
	History    Recents
	Picker     picker.Picker
	Filter     picker.Filter
	VerifyData bool
	Logger     logger.Logger
}

// App opens archives and remembers the ones that opened successfully
type App struct {
	recents    Recents
	picker     picker.Picker
	filter     picker.Filter
	verifyData bool
	log        logger.Logger
}

// New creates an App
func New(opts Options) (*App, error) {
	if opts.History == nil {
		return nil, ErrNoHistory
	}
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	return &App{
		recents:    opts.History,
		picker:     opts.Picker,
		filter:     opts.Filter,
		verifyData: opts.VerifyData,
		log:        log,
	}, nil
}

// Request is one open attempt
type Request struct {
	// Path of the archive; empty asks the picker
	Path string

	// Password, used only when HasPassword is set
	Password    string
	HasPassword bool
}

// OpenFile inspects the archive and, on success, moves it to the front of the
// history. A history write failure is logged and does not fail the open.
func (a *App) OpenFile(req Request, progressCb inspect.ProgressCallback) (*inspect.Outcome, error) {
	opts := &inspect.Options{
		InputPath:  req.Path,
		Picker:     a.picker,
		Filter:     a.filter,
		VerifyData: a.verifyData,
	}
	if req.HasPassword {
		opts.SetPassword(req.Password)
	}

	outcome, err := inspect.Open(opts, progressCb)
	if err != nil {
		var fail *inspect.Failure
		if errors.As(err, &fail) {
			a.log.Debug("open failed",
				"kind", fail.Kind.String(),
				"path", fail.Path,
				"password_required", fail.PasswordRequired,
				"cause", fail.Err)
		}
		return nil, err
	}

	a.log.Debug("archive opened",
		"path", outcome.Path,
		"entries", outcome.EntryCount(),
		"encrypted", outcome.Encrypted)

	if err := a.recents.Insert(outcome.Path); err != nil {
		a.log.Warn("could not record recent archive", "path", outcome.Path, "error", err)
	}

	return outcome, nil
}

// Refresh returns the current recent-files list, most recent first
func (a *App) Refresh() History {
	return History{History: a.recents.Snapshot()}
}

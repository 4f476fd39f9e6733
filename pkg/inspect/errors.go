// pkg/inspect/errors.go
package inspect

import "errors"

var (
	// ErrNoPicker is returned when no path is given and no picker is configured
	ErrNoPicker = errors.New("no archive path and no file picker")

	// ErrEmptyFilter is returned when a named filter carries no patterns
	ErrEmptyFilter = errors.New("file filter has no patterns")

	// ErrPasswordRequired is returned when an entry is encrypted and no password was given
	ErrPasswordRequired = errors.New("password required to decrypt file")

	// ErrNoEntries is returned when a password is checked against an empty archive
	ErrNoEntries = errors.New("archive has no entries")

	// ErrSizeMismatch is returned when an entry body does not match its declared size
	ErrSizeMismatch = errors.New("entry size mismatch")
)

// Kind classifies why Open failed
type Kind int

const (
	KindUnclassified Kind = iota
	KindResolution
	KindIO
	KindStructural
	KindUnsupported
	KindCredentialRequired
	KindCredentialInvalid
)

// String returns the string representation of the kind
func (k Kind) String() string {
	switch k {
	case KindResolution:
		return "resolution failed"
	case KindIO:
		return "i/o failure"
	case KindStructural:
		return "invalid archive"
	case KindUnsupported:
		return "unsupported archive feature"
	case KindCredentialRequired:
		return "password required"
	case KindCredentialInvalid:
		return "invalid password"
	default:
		return "unclassified failure"
	}
}

// Failure is the error returned by Open. Its exported JSON fields are the
// stable shape shown to callers; Kind and Err stay internal.
type Failure struct {
	Kind Kind `json:"-"`

	// PasswordRequired is true when missing or wrong credentials caused the failure
	PasswordRequired bool `json:"password_required"`

	// Path is the resolved archive path, empty when resolution failed
	Path string `json:"path"`

	// Message is the diagnostic shown to the user, possibly empty
	Message string `json:"message"`

	// Err is the underlying cause, if any
	Err error `json:"-"`
}

func newFailure(kind Kind, path string, err error) *Failure {
	f := &Failure{
		Kind:             kind,
		PasswordRequired: kind == KindCredentialRequired || kind == KindCredentialInvalid,
		Path:             path,
		Err:              err,
	}
	if err != nil {
		f.Message = err.Error()
	}
	return f
}

// blankFailure carries no path and no message, only the cause for logging
func blankFailure(err error) *Failure {
	return &Failure{Kind: KindUnclassified, Err: err}
}

func (f *Failure) Error() string {
	msg := f.Message
	if msg == "" {
		msg = f.Kind.String()
	}
	if f.Path == "" {
		return msg
	}
	return f.Path + ": " + msg
}

func (f *Failure) Unwrap() error {
	return f.Err
}

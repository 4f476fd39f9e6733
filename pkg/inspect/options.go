// pkg/inspect/options.go
package inspect

import "github.com/creativeyann17/ziphopp/pkg/picker"

// Options configures the inspect operation
type Options struct {
	// InputPath is the archive to inspect. When empty, Picker is asked for one.
	InputPath string

	// Password is the candidate decryption password.
	// It is only used when HasPassword is true (an empty password is still a password).
	Password    string
	HasPassword bool

	// Picker resolves the archive path when InputPath is empty (optional)
	Picker picker.Picker

	// Filter restricts what the Picker offers
	// Default: picker.ZipFilter
	Filter picker.Filter

	// VerifyData reads every entry body in probe mode and checks its CRC-32
	// When false, only entry headers and decoders are checked (faster)
	// Default: false
	VerifyData bool
}

// SetPassword selects credential validation mode
func (o *Options) SetPassword(password string) {
	o.Password = password
	o.HasPassword = true
}

// Validate checks if options are valid and fills defaults
func (o *Options) Validate() error {
	if o.Password != "" {
		o.HasPassword = true
	}
	if len(o.Filter.Patterns) == 0 {
		if o.Filter.Name != "" {
			return ErrEmptyFilter
		}
		o.Filter = picker.ZipFilter
	}
	return nil
}

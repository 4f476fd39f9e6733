// pkg/inspect/result.go
package inspect

import (
	"fmt"
	"strings"
)

// Outcome describes a successfully opened archive
type Outcome struct {
	// Contents lists entry paths in the order the archive declares them
	Contents []string `json:"contents"`

	// Path is the resolved absolute path of the archive
	Path string `json:"path"`

	// Meta holds the formatted sizes and display name
	Meta Meta `json:"meta"`

	// Raw totals behind Meta
	CompressedBytes   uint64 `json:"compressed_bytes"`
	UncompressedBytes uint64 `json:"size_bytes"`

	// Encrypted is true when entry 0 needed the supplied password
	Encrypted bool `json:"encrypted"`

	// PartialTotals is true when the totals only cover entry 0 (credential validation mode)
	PartialTotals bool `json:"partial_totals"`
}

// Meta is the human-readable metadata triple
type Meta struct {
	Compressed string `json:"compressed"`
	Size       string `json:"size"`
	Name       string `json:"name"`
}

// EntryCount returns the number of entries in the archive
func (o *Outcome) EntryCount() int {
	return len(o.Contents)
}

// Summary returns a human-readable summary of the outcome
func (o *Outcome) Summary() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Archive: %s\n", o.Meta.Name)
	fmt.Fprintf(&sb, "Path:    %s\n", o.Path)
	fmt.Fprintf(&sb, "Entries: %d\n", o.EntryCount())
	if o.Encrypted {
		sb.WriteString("Password: accepted\n")
	}
	fmt.Fprintf(&sb, "Size:    %s, uncompresses to %s\n", o.Meta.Compressed, o.Meta.Size)
	if o.PartialTotals {
		sb.WriteString("         (sizes cover the first entry only)\n")
	}

	return sb.String()
}

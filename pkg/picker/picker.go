// pkg/picker/picker.go
package picker

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"

	"github.com/creativeyann17/ziphopp/pkg/ziphopp"
)

var (
	// ErrCancelled is returned when the user dismisses the picker without choosing a file
	ErrCancelled = errors.New("selection cancelled")

	// ErrNoCandidates is returned when no file in the directory matches the filter
	ErrNoCandidates = errors.New("no matching files")

	// ErrNoPatterns is returned when a filter has nothing to match against
	ErrNoPatterns = errors.New("filter has no patterns")
)

// Picker resolves a single file path interactively
type Picker interface {
	// Pick returns the absolute path of the chosen file, or ErrCancelled
	Pick(filter Filter) (string, error)
}

// Filter restricts which files a picker offers. Patterns use .gitignore syntax.
type Filter struct {
	Name     string
	Patterns []string
}

// ZipFilter matches zip archives
var ZipFilter = Filter{Name: "Zip archives", Patterns: []string{"*.zip", "*.ZIP"}}

// Matcher compiles the filter patterns
func (f Filter) Matcher() (*ignore.GitIgnore, error) {
	if len(f.Patterns) == 0 {
		return nil, ErrNoPatterns
	}
	return ignore.CompileIgnoreLines(f.Patterns...), nil
}

// Terminal lists matching files of a directory and reads a numbered choice
type Terminal struct {
	// Dir is the directory to list (default: current directory)
	Dir string

	// In receives the user's choice (default: os.Stdin)
	In io.Reader

	// Out receives the menu (default: os.Stdout)
	Out io.Writer
}

// Pick implements Picker
func (t *Terminal) Pick(filter Filter) (string, error) {
	dir := t.Dir
	if dir == "" {
		dir = "."
	}
	in := t.In
	if in == nil {
		in = os.Stdin
	}
	out := t.Out
	if out == nil {
		out = os.Stdout
	}

	candidates, err := Candidates(dir, filter)
	if err != nil {
		return "", err
	}
	if len(candidates) == 0 {
		return "", fmt.Errorf("%s in %s: %w", filter.Name, dir, ErrNoCandidates)
	}

	fmt.Fprintf(out, "%s in %s:\n", filter.Name, dir)
	for i, c := range candidates {
		fmt.Fprintf(out, "  [%d] %s\n", i+1, ziphopp.TruncateLeft(c, 60))
	}
	fmt.Fprint(out, "Select a file (empty to cancel): ")

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read selection: %w", err)
	}
	line = strings.TrimSpace(line)
	if line == "" || strings.EqualFold(line, "q") {
		return "", ErrCancelled
	}

	n, err := strconv.Atoi(line)
	if err != nil || n < 1 || n > len(candidates) {
		return "", fmt.Errorf("invalid selection %q", line)
	}

	return filepath.Abs(candidates[n-1])
}

// Candidates returns the regular files directly inside dir whose names match
// the filter, sorted by name
func Candidates(dir string, filter Filter) ([]string, error) {
	matcher, err := filter.Matcher()
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}

	var out []string
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		if matcher.MatchesPath(e.Name()) {
			out = append(out, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(out)
	return out, nil
}

// pkg/ziphopp/helpers_test.go
package ziphopp

import (
	"regexp"
	"testing"
)

func TestFormatSize(t *testing.T) {
	tests := []struct {
		bytes uint64
		want  string
	}{
		{0, "0.00B"},
		{1, "1.00B"},
		{1023, "1023.00B"},
		{1024, "1.00KB"},
		{1536, "1.50KB"},
		{1048575, "1024.00KB"},
		{1048576, "1.00MB"},
		{1073741824 * 2, "2.00GB"},
		{1024 * 1073741824, "1024.00GB"},
		{1536 * 1073741824, "1536.00GB"},
	}

	for _, tt := range tests {
		if got := FormatSize(tt.bytes); got != tt.want {
			t.Errorf("FormatSize(%d) = %q, want %q", tt.bytes, got, tt.want)
		}
	}
}

func TestFormatSizeShape(t *testing.T) {
	shape := regexp.MustCompile(`^\d+\.\d{2}(B|KB|MB|GB)$`)

	// Walk a spread of magnitudes, including the top of the uint64 range
	for _, b := range []uint64{0, 7, 999, 4096, 123456789, 1 << 40, 1 << 50, 1<<64 - 1} {
		got := FormatSize(b)
		if !shape.MatchString(got) {
			t.Errorf("FormatSize(%d) = %q does not match %s", b, got, shape)
		}
	}
}

func TestTruncateLeft(t *testing.T) {
	if got := TruncateLeft("short.zip", 30); got != "short.zip" {
		t.Errorf("Expected path unchanged, got %q", got)
	}

	long := "/home/user/some/very/deep/directory/tree/archive.zip"
	got := TruncateLeft(long, 20)
	if len(got) != 20 {
		t.Errorf("Expected length 20, got %d (%q)", len(got), got)
	}
	if got[:3] != "..." {
		t.Errorf("Expected leading ellipsis, got %q", got)
	}
	if got[len(got)-11:] != "archive.zip" {
		t.Errorf("Expected filename preserved, got %q", got)
	}
}

func TestDiscardCounter(t *testing.T) {
	var dc DiscardCounter
	n, err := dc.Write([]byte("hello"))
	if err != nil || n != 5 {
		t.Fatalf("Write returned (%d, %v)", n, err)
	}
	dc.Write([]byte(" world"))
	if dc.Count != 11 {
		t.Errorf("Expected 11 bytes counted, got %d", dc.Count)
	}
}

// pkg/ziphopp/io.go
package ziphopp

// DiscardCounter counts bytes written while discarding the data
type DiscardCounter struct {
	Count uint64
}

func (dc *DiscardCounter) Write(p []byte) (int, error) {
	dc.Count += uint64(len(p))
	return len(p), nil
}

package fs

import (
	"bufio"
	"context"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/fwojciec/festin"
)

// Ensure DomainsFile implements festin.DomainConsumer at compile time.
var _ festin.DomainConsumer = (*DomainsFile)(nil)

// DomainsFile appends one domain per line to a file.
type DomainsFile struct {
	mu   sync.Mutex
	file *os.File
}

// OpenDomainsFile opens path for appending, creating it if needed.
func OpenDomainsFile(path string) (*DomainsFile, error) {
	f, err := openAppend(path)
	if err != nil {
		return nil, err
	}
	return &DomainsFile{file: f}, nil
}

// HandleDomain writes domain as one line.
func (w *DomainsFile) HandleDomain(_ context.Context, domain string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, err := w.file.WriteString(domain + "\n")
	return err
}

// Close closes the underlying file.
func (w *DomainsFile) Close() error {
	return w.file.Close()
}

// ReadLines returns the trimmed non-empty lines of r.
func ReadLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, scanner.Err()
}

// ReadLinesFile returns the trimmed non-empty lines of the file at path.
func ReadLinesFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadLines(f)
}

// Package fs provides file-based consumers and inputs: JSON-lines result
// files, domain lists and watched seed files.
package fs

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fwojciec/festin"
)

// Ensure ResultsFile implements festin.ResultConsumer at compile time.
var _ festin.ResultConsumer = (*ResultsFile)(nil)

// ResultsFile appends one JSON object per found bucket to a file. Each
// record is written with a single append so concurrent writers never
// interleave partial lines.
type ResultsFile struct {
	mu   sync.Mutex
	file *os.File
}

// OpenResultsFile opens path for appending, creating it if needed.
func OpenResultsFile(path string) (*ResultsFile, error) {
	f, err := openAppend(path)
	if err != nil {
		return nil, err
	}
	return &ResultsFile{file: f}, nil
}

// HandleResult writes result as one line.
func (w *ResultsFile) HandleResult(_ context.Context, result *festin.BucketResult) error {
	line, err := json.Marshal(result)
	if err != nil {
		return err
	}
	line = append(line, '\n')

	w.mu.Lock()
	defer w.mu.Unlock()
	_, err = w.file.Write(line)
	return err
}

// Close closes the underlying file.
func (w *ResultsFile) Close() error {
	return w.file.Close()
}

// ReadResults decodes a JSON-lines results stream. Blank lines are skipped.
func ReadResults(r io.Reader) ([]*festin.BucketResult, error) {
	var results []*festin.BucketResult

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 64<<20)
	for n := 1; scanner.Scan(); n++ {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var result festin.BucketResult
		if err := json.Unmarshal(line, &result); err != nil {
			return nil, festin.Errorf(festin.EPARSE, "line %d: %v", n, err)
		}
		results = append(results, &result)
	}
	return results, scanner.Err()
}

// ReadResultsFile reads every result stored in path.
func ReadResultsFile(path string) ([]*festin.BucketResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadResults(f)
}

func openAppend(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return f, nil
}

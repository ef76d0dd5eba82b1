package constgen

import (
	"bufio"
	"fmt"
	"os"
)

// artifact is a buffered output file. The first write error is kept and
// returned by Close, so callers can write unconditionally and check once.
type artifact struct {
	path string
	f    *os.File
	w    *bufio.Writer
	err  error
}

// createArtifact truncates or creates path.
func createArtifact(path string) (*artifact, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, &OutputError{Path: path, Err: err}
	}
	return &artifact{path: path, f: f, w: bufio.NewWriter(f)}, nil
}

func (a *artifact) printf(format string, args ...any) {
	if a.err != nil {
		return
	}
	_, a.err = fmt.Fprintf(a.w, format, args...)
}

// Close flushes buffered content and closes the file. It must be called on
// every path so a failed run still leaves what was written so far.
func (a *artifact) Close() error {
	err := a.err
	if ferr := a.w.Flush(); err == nil {
		err = ferr
	}
	if cerr := a.f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return &OutputError{Path: a.path, Err: err}
	}
	return nil
}

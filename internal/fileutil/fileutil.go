// Package fileutil provides file system utilities.
package fileutil

import (
	"bufio"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// EnsureDir creates a directory if it doesn't exist.
func EnsureDir(path string) error {
	if path == "" || path == "." {
		return nil
	}
	return os.MkdirAll(path, 0755)
}

// EnsureParent creates the parent directory of path if it doesn't exist.
func EnsureParent(path string) error {
	return EnsureDir(filepath.Dir(path))
}

// ReadLines reads a file and splits it after every '\n'.
// Each line keeps its terminator, so a CRLF line ends in "\r\n".
// A trailing line without terminator is returned as-is and an empty
// file yields no lines.
func ReadLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	r := bufio.NewReader(f)
	for {
		line, err := r.ReadString('\n')
		if line != "" {
			lines = append(lines, line)
		}
		if errors.Is(err, io.EOF) {
			return lines, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

// Base returns the last element of path. Both '/' and '\' separate
// elements and a leading drive letter is dropped, regardless of the host OS.
// A path ending in a separator has an empty base.
func Base(path string) string {
	if len(path) >= 2 && path[1] == ':' && isDriveLetter(path[0]) {
		path = path[2:]
	}
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		return path[i+1:]
	}
	return path
}

func isDriveLetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

// Abs returns the cleaned absolute path.
func Abs(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.Clean(abs), nil
}

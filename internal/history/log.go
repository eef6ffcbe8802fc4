package history

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"iter"
	"os"
	"strings"
)

// DisabledPath turns history logging off when used as the log path.
const DisabledPath = "/dev/null"

// ErrNotRegularFile is returned when the history path exists but is not a regular file.
var ErrNotRegularFile = errors.New("history path is not a regular file")

// Log is the append-only upload history. Each line is either
// "kind:hash url" for an upload or "kind:hash deleted" for a deletion.
// A single process is assumed to be the only writer.
type Log struct {
	path string
}

// NewLog returns a Log backed by path. An empty path or DisabledPath
// yields a disabled log that records nothing.
func NewLog(path string) *Log {
	return &Log{path: path}
}

// Path returns the file backing the log.
func (l *Log) Path() string {
	return l.path
}

// Enabled reports whether the log records anything.
func (l *Log) Enabled() bool {
	return l.path != "" && l.path != DisabledPath
}

// Exists reports whether the log file is present. It fails when the path
// exists but is not a regular file.
func (l *Log) Exists() (bool, error) {
	if !l.Enabled() {
		return false, nil
	}
	info, err := os.Stat(l.path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to stat history %s: %w", l.path, err)
	}
	if !info.Mode().IsRegular() {
		return false, fmt.Errorf("%w: %s", ErrNotRegularFile, l.path)
	}
	return true, nil
}

// AppendUpload records a successful upload.
func (l *Log) AppendUpload(key Key, link string) error {
	return l.append(key.String() + " " + link)
}

// AppendDeletion records a confirmed deletion.
func (l *Log) AppendDeletion(key Key) error {
	return l.append(key.String() + " " + DeletedMarker)
}

func (l *Log) append(line string) error {
	if !l.Enabled() {
		return nil
	}
	if _, err := l.Exists(); err != nil {
		return err
	}

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("failed to open history: %w", err)
	}
	if _, err := fmt.Fprintln(f, line); err != nil {
		f.Close()
		return fmt.Errorf("failed to write history: %w", err)
	}
	return f.Close()
}

// Live scans the log and returns the keys that are still live on the remote
// side. A missing log has no live keys. The file is only read.
func (l *Log) Live() ([]Key, error) {
	ok, err := l.Exists()
	if err != nil || !ok {
		return nil, err
	}

	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history: %w", err)
	}
	defer f.Close()

	seq, scanErr := Lines(f)
	live := Reconcile(seq)
	if err := scanErr(); err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}
	return live, nil
}

// Remove deletes the log file. A missing file is not an error.
func (l *Log) Remove() error {
	ok, err := l.Exists()
	if err != nil || !ok {
		return err
	}
	if err := os.Remove(l.path); err != nil {
		return fmt.Errorf("failed to remove history: %w", err)
	}
	return nil
}

// Lines returns a lazy sequence over the lines of r. Lines of any length
// are yielded whole. The returned function reports the first read error
// once the sequence has been consumed.
func Lines(r io.Reader) (iter.Seq[string], func() error) {
	reader := bufio.NewReader(r)
	var readErr error

	seq := func(yield func(string) bool) {
		for {
			line, err := reader.ReadString('\n')
			if line != "" {
				if !yield(strings.TrimRight(line, "\r\n")) {
					return
				}
			}
			if err != nil {
				if !errors.Is(err, io.EOF) {
					readErr = err
				}
				return
			}
		}
	}
	return seq, func() error { return readErr }
}

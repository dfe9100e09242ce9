// Package jobfile reads the pool configuration: the first line holds the worker count,
// every following line holds one job as `id operand1 operator operand2`, separated by
// whitespace. An id of 0 lets the coordinator pick any free worker; n targets worker n.
// The job stream ends at end of file or at the first empty line.
package jobfile

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/viant/afs"
	"github.com/ygrebnov/errorc"

	"github.com/ygrebnov/slots"
)

var (
	ErrEmpty         = errors.New("jobfile: empty configuration")
	ErrWorkerCount   = errors.New("jobfile: invalid worker count")
	ErrMalformedLine = errors.New("jobfile: malformed job line")
)

// File is a parsed configuration.
type File struct {
	// Workers is the pool size from the first line.
	Workers int
	// Jobs is the number of job lines that will be yielded by Source.
	Jobs int

	data []byte
}

// Load downloads URL (a local path or any afs URL) and parses it.
func Load(ctx context.Context, fs afs.Service, URL string) (*File, error) {
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("jobfile: download %s: %w", URL, err)
	}
	return Parse(data)
}

// Parse reads the worker count and counts the job lines. Job lines are parsed lazily by Source.
func Parse(data []byte) (*File, error) {
	s := bufio.NewScanner(bytes.NewReader(data))
	if !s.Scan() {
		if err := s.Err(); err != nil {
			return nil, fmt.Errorf("jobfile: read: %w", err)
		}
		return nil, ErrEmpty
	}
	n, err := ParseWorkers(s.Text())
	if err != nil {
		return nil, err
	}

	jobs := 0
	for s.Scan() {
		if isBlank(s.Text()) {
			break
		}
		jobs++
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("jobfile: read: %w", err)
	}
	return &File{Workers: n, Jobs: jobs, data: data}, nil
}

// Source returns a new job source positioned after the worker count line.
func (f *File) Source() *Source {
	src := NewSource(bytes.NewReader(f.data))
	src.scanner.Scan()
	src.line = 1
	return src
}

// ParseWorkers parses the worker count line. The count must be at least 1.
func ParseWorkers(line string) (int, error) {
	field := strings.TrimSpace(line)
	n, err := strconv.Atoi(field)
	if err != nil || n < 1 {
		return 0, errorc.With(ErrWorkerCount, errorc.String("value", field))
	}
	return n, nil
}

// ParseLine parses one `id operand1 operator operand2` line.
func ParseLine(line string) (slots.Job, error) {
	fields := strings.Fields(line)
	if len(fields) != 4 {
		return slots.Job{}, errorc.With(ErrMalformedLine,
			errorc.String("reason", fmt.Sprintf("expected 4 fields, got %d", len(fields))))
	}

	target, err := strconv.Atoi(fields[0])
	if err != nil || target < 0 {
		return slots.Job{}, errorc.With(ErrMalformedLine, errorc.String("id", fields[0]))
	}
	a, err := strconv.Atoi(fields[1])
	if err != nil {
		return slots.Job{}, errorc.With(ErrMalformedLine, errorc.String("operand1", fields[1]))
	}
	op, err := slots.ParseOperator(fields[2])
	if err != nil {
		return slots.Job{}, errorc.With(ErrMalformedLine, errorc.String("operator", fields[2]))
	}
	b, err := strconv.Atoi(fields[3])
	if err != nil {
		return slots.Job{}, errorc.With(ErrMalformedLine, errorc.String("operand2", fields[3]))
	}
	return slots.NewJob(target, a, op, b)
}

// Source yields jobs from job lines, one per Next call. It implements slots.JobSource.
type Source struct {
	scanner *bufio.Scanner
	line    int
	done    bool
}

// NewSource reads job lines from r. r must not contain the worker count line.
func NewSource(r io.Reader) *Source {
	return &Source{scanner: bufio.NewScanner(r)}
}

func (s *Source) Next() (slots.Job, error) {
	if s.done || !s.scanner.Scan() {
		s.done = true
		if err := s.scanner.Err(); err != nil {
			return slots.Job{}, fmt.Errorf("jobfile: read: %w", err)
		}
		return slots.Job{}, io.EOF
	}
	s.line++

	text := s.scanner.Text()
	if isBlank(text) {
		s.done = true
		return slots.Job{}, io.EOF
	}

	j, err := ParseLine(text)
	if err != nil {
		return slots.Job{}, fmt.Errorf("line %d: %w", s.line, err)
	}
	return j, nil
}

func isBlank(line string) bool { return strings.TrimSpace(line) == "" }

var _ slots.JobSource = (*Source)(nil)

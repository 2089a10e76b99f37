package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
)

// ErrInputCancelled is returned when input is canceled by context.
var ErrInputCancelled = errors.New("input canceled")

// NonBlockingReader provides context-aware line input.
type NonBlockingReader struct {
	reader      *bufio.Reader
	readingLock sync.Mutex
}

// NewNonBlockingReader creates a new non-blocking reader.
func NewNonBlockingReader(reader io.Reader) *NonBlockingReader {
	if reader == nil {
		panic("reader cannot be nil")
	}
	return &NonBlockingReader{reader: bufio.NewReader(reader)}
}

// ReadLine reads a trimmed line. It returns ErrInputCancelled if ctx ends first.
// A final line without a newline is returned without error.
func (r *NonBlockingReader) ReadLine(ctx context.Context) (string, error) {
	type result struct {
		err   error
		value string
	}
	resultCh := make(chan result, 1)

	go func() {
		r.readingLock.Lock()
		defer r.readingLock.Unlock()

		value, err := r.reader.ReadString('\n')
		if errors.Is(err, io.EOF) && value != "" {
			err = nil
		}
		resultCh <- result{value: value, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ErrInputCancelled
	case res := <-resultCh:
		if res.err != nil {
			return "", res.err
		}
		return strings.TrimSpace(res.value), nil
	}
}

// Ask shows a follow-up question with its example answers and reads the reply.
// An empty reply means the user skipped the question.
func Ask(ctx context.Context, w io.Writer, r *NonBlockingReader, question string, examples []string) (string, error) {
	_, _ = fmt.Fprintln(w, BoldStyle.Render(question))
	if len(examples) > 0 {
		_, _ = fmt.Fprintln(w, SubtleStyle.Render("예: "+strings.Join(examples, ", ")))
	}
	_, _ = fmt.Fprint(w, FormatPrompt("답변 (건너뛰려면 Enter)"))

	answer, err := r.ReadLine(ctx)
	if errors.Is(err, io.EOF) {
		return "", nil
	}
	return answer, err
}

// Confirm asks a yes/no question. Anything but y or yes is no.
func Confirm(ctx context.Context, w io.Writer, r *NonBlockingReader, question string) (bool, error) {
	_, _ = fmt.Fprint(w, FormatPrompt(question+" [y/N]"))
	answer, err := r.ReadLine(ctx)
	if errors.Is(err, io.EOF) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes", "네", "예":
		return true, nil
	default:
		return false, nil
	}
}

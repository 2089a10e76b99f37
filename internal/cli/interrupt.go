package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// InterruptHandler cancels a running command on Ctrl+C and tells the user why.
type InterruptHandler struct {
	writer      io.Writer
	cancelFunc  context.CancelFunc
	message     string
	interrupted bool
	mu          sync.Mutex
}

// NewInterruptHandler creates a new interrupt handler.
func NewInterruptHandler(writer io.Writer, message string) *InterruptHandler {
	if writer == nil {
		writer = os.Stdout
	}
	if message == "" {
		message = "작업을 취소했습니다."
	}
	return &InterruptHandler{writer: writer, message: message}
}

// HandleInterrupts returns a context that is canceled on SIGINT or SIGTERM.
// The returned stop function releases the signal handler.
func (h *InterruptHandler) HandleInterrupts(ctx context.Context) (context.Context, func()) {
	ctx, cancel := context.WithCancel(ctx)
	h.cancelFunc = cancel

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	done := make(chan struct{})
	go func() {
		select {
		case <-sigChan:
			h.interrupt()
		case <-done:
		}
	}()

	var once sync.Once
	return ctx, func() {
		once.Do(func() {
			signal.Stop(sigChan)
			close(done)
			cancel()
		})
	}
}

func (h *InterruptHandler) interrupt() {
	h.mu.Lock()
	first := !h.interrupted
	h.interrupted = true
	h.mu.Unlock()

	if first {
		_, _ = fmt.Fprint(h.writer, "\n"+FormatWarning(h.message)+"\n")
	}
	if h.cancelFunc != nil {
		h.cancelFunc()
	}
}

// WasInterrupted returns true if the process was interrupted.
func (h *InterruptHandler) WasInterrupted() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.interrupted
}

package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerInterval = 80 * time.Millisecond

// spinner animates a one-line status on w until stopped or until its
// context ends. Only the animation goroutine writes to w.
type spinner struct {
	w      io.Writer
	msg    string
	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}

	startOnce sync.Once
	stopOnce  sync.Once
	running   atomic.Bool
}

func newSpinner(ctx context.Context, w io.Writer, msg string) *spinner {
	ctx, cancel := context.WithCancel(ctx)
	return &spinner{w: w, msg: msg, ctx: ctx, cancel: cancel, done: make(chan struct{})}
}

// start begins the animation. It does nothing after stop.
func (s *spinner) start() {
	s.startOnce.Do(func() {
		s.running.Store(true)
		go s.run()
	})
}

func (s *spinner) run() {
	defer close(s.done)
	ticker := time.NewTicker(spinnerInterval)
	defer ticker.Stop()

	for i := 0; ; i++ {
		select {
		case <-s.ctx.Done():
			fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", lipgloss.Width(s.msg)+2))
			return
		case <-ticker.C:
			frame := spinnerFrames[i%len(spinnerFrames)]
			fmt.Fprintf(s.w, "\r%s %s", styleSpinner.Render(frame), StyleDim.Render(s.msg))
		}
	}
}

// stop ends the animation and waits for the line to be cleared. It may be
// called more than once, and before start.
func (s *spinner) stop() {
	s.stopOnce.Do(func() {
		s.cancel()
		s.startOnce.Do(func() {})
		if s.running.Load() {
			<-s.done
		}
	})
}

// cancelled reports whether the spinner was stopped or its parent context
// ended.
func (s *spinner) cancelled() bool {
	return s.ctx.Err() != nil
}

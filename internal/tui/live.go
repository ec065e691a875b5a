package tui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/san-kum/algoviz/internal/playback"
	"github.com/san-kum/algoviz/internal/trace"
)

const (
	liveWidth   = 70
	liveHeight  = 12
	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
)

// LiveRenderer redraws a frame on every advance without taking over the
// terminal's input, for piping playback into a plain terminal.
type LiveRenderer struct {
	mu        sync.Mutex
	w         io.Writer
	algorithm string
	theme     Theme
	frameRate int
	lastFrame time.Time
	clear     bool
}

func NewLiveRenderer(w io.Writer, algorithm string, theme Theme, frameRate int) *LiveRenderer {
	return &LiveRenderer{
		w:         w,
		algorithm: algorithm,
		theme:     theme,
		frameRate: frameRate,
		clear:     true,
	}
}

// OnStep draws s unless the previous frame is too recent. The last step of a
// trace is always drawn.
func (r *LiveRenderer) OnStep(s playback.Status) {
	r.mu.Lock()
	defer r.mu.Unlock()

	last := s.Index >= s.Len-1
	if r.frameRate > 0 && !last && time.Since(r.lastFrame) < time.Second/time.Duration(r.frameRate) {
		return
	}
	r.lastFrame = time.Now()
	r.render(s)
}

func (r *LiveRenderer) render(s playback.Status) {
	muted := r.theme.style(r.theme.Muted)

	var b strings.Builder
	if r.clear {
		b.WriteString(clearScreen)
	}
	fmt.Fprintf(&b, "  %s  step %d/%d\n", r.theme.style(r.theme.Accent).Render(r.algorithm), s.Index+1, s.Len)
	b.WriteString("  " + muted.Render(strings.Repeat("-", liveWidth)) + "\n")
	b.WriteString(renderChart(s.Step, r.theme, liveWidth, liveHeight))
	b.WriteString("  " + muted.Render(strings.Repeat("-", liveWidth)) + "\n")
	fmt.Fprintf(&b, "  %s %s\n", s.Step.Action(), s.Step.Note())

	fmt.Fprint(r.w, b.String())
}

func (r *LiveRenderer) Start() { fmt.Fprint(r.w, hideCursor) }
func (r *LiveRenderer) Stop()  { fmt.Fprint(r.w, showCursor) }

// RunLive plays t to the end at the given cadence, drawing each step to w.
func RunLive(ctx context.Context, t *trace.Trace, speed time.Duration, w io.Writer, theme Theme) error {
	r := NewLiveRenderer(w, t.Algorithm(), theme, 60)
	done := make(chan struct{})
	var once sync.Once

	ctrl, err := playback.New(t,
		playback.WithSpeed(speed),
		playback.WithOnAdvance(func(s playback.Status) {
			r.OnStep(s)
			if s.State == playback.Finished {
				once.Do(func() { close(done) })
			}
		}),
	)
	if err != nil {
		return err
	}
	defer ctrl.Close()

	r.Start()
	defer r.Stop()

	r.OnStep(ctrl.Status())
	if t.Len() <= 1 {
		return nil
	}
	ctrl.Play()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

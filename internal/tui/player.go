package tui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/algoviz/internal/algorithms"
	"github.com/san-kum/algoviz/internal/config"
	"github.com/san-kum/algoviz/internal/playback"
	"github.com/san-kum/algoviz/internal/step"
	"github.com/san-kum/algoviz/internal/trace"
)

const (
	minSpeed = 25 * time.Millisecond
	maxSpeed = 2 * time.Second
)

type Options struct {
	Config    *config.Config
	Generator *trace.Generator
	Logger    *slog.Logger
	// Trace, when set, is played instead of generating one from Config.
	Trace         *trace.Trace
	TickerFactory playback.TickerFactory
	OnAdvance     func(playback.Status)
}

type advanceMsg playback.Status

type model struct {
	ctrl   *playback.Controller
	gen    *trace.Generator
	cfg    config.Config
	logger *slog.Logger

	algos   []string
	algoIdx int
	seed    int64
	input   []float64

	theme    Theme
	themeIdx int
	width    int
	height   int
}

func newModel(opts Options) (*model, error) {
	if opts.Config == nil {
		opts.Config = config.DefaultConfig()
	}
	if opts.Generator == nil {
		opts.Generator = trace.NewGenerator(trace.NewRegistry())
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	m := &model{
		gen:      opts.Generator,
		cfg:      *opts.Config,
		logger:   opts.Logger,
		algos:    opts.Generator.Registry().List(),
		seed:     opts.Config.Seed,
		theme:    GetTheme(opts.Config.Theme),
		themeIdx: themeIndex(opts.Config.Theme),
		width:    80,
		height:   24,
	}

	t := opts.Trace
	if t == nil {
		m.input = opts.Config.Input()
		t = m.generate(opts.Config.Algorithm)
	} else {
		m.input = t.Input()
	}
	for i, id := range m.algos {
		if id == t.Algorithm() {
			m.algoIdx = i
		}
	}

	ctrlOpts := []playback.Option{
		playback.WithSpeed(opts.Config.Speed()),
		playback.WithLogger(opts.Logger),
	}
	if opts.TickerFactory != nil {
		ctrlOpts = append(ctrlOpts, playback.WithTickerFactory(opts.TickerFactory))
	}
	if opts.OnAdvance != nil {
		ctrlOpts = append(ctrlOpts, playback.WithOnAdvance(opts.OnAdvance))
	}
	ctrl, err := playback.New(t, ctrlOpts...)
	if err != nil {
		return nil, err
	}
	m.ctrl = ctrl
	return m, nil
}

func (m *model) generate(algorithm string) *trace.Trace {
	var target *float64
	if algorithms.IsSearch(algorithm) {
		target = m.cfg.TargetFor(m.input)
	}
	return m.gen.Generate(algorithm, m.input, target)
}

func (m *model) reload() {
	if err := m.ctrl.Load(m.generate(m.algos[m.algoIdx])); err != nil {
		m.logger.Error("reload trace", "error", err)
	}
}

func (m *model) Init() tea.Cmd { return nil }

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case advanceMsg:
		// redraw only
	}
	return m, nil
}

func (m *model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		m.ctrl.Close()
		return m, tea.Quit
	case " ", "p":
		switch m.ctrl.State() {
		case playback.Playing:
			m.ctrl.Pause()
		case playback.Finished:
			m.ctrl.Reset()
			m.ctrl.Play()
		default:
			m.ctrl.Play()
		}
	case "right", "l":
		m.ctrl.Step()
	case "left", "h":
		m.ctrl.StepBack()
	case "home", "g":
		m.ctrl.Seek(0)
	case "end", "G":
		m.ctrl.Seek(m.ctrl.Status().Len - 1)
	case "r":
		m.ctrl.Reset()
	case "+", "=":
		m.setSpeed(m.ctrl.Speed() / 2)
	case "-", "_":
		m.setSpeed(m.ctrl.Speed() * 2)
	case "n":
		m.seed++
		m.input = config.Generate(m.cfg.Preset, m.cfg.Size, m.cfg.MaxValue, m.seed)
		m.reload()
	case "a":
		m.algoIdx = (m.algoIdx + 1) % len(m.algos)
		m.reload()
	case "t":
		m.themeIdx = (m.themeIdx + 1) % len(Themes)
		m.theme = Themes[m.themeIdx]
	}
	return m, nil
}

func (m *model) setSpeed(d time.Duration) {
	d = max(minSpeed, min(maxSpeed, d))
	if err := m.ctrl.ChangeSpeed(d); err != nil {
		m.logger.Warn("change speed", "error", err)
	}
}

func (m *model) View() string {
	st := m.ctrl.Status()
	t := m.theme
	accent, text, muted := t.style(t.Accent), t.style(t.Text), t.style(t.Muted)

	var b strings.Builder

	icon := t.style(t.Comparing).Render("○")
	switch st.State {
	case playback.Playing:
		icon = t.style(t.Sorted).Render("●")
	case playback.Finished:
		icon = t.style(t.Sorted).Render("✓")
	}
	fmt.Fprintf(&b, "\n   %s %s  %s  %s\n",
		icon,
		accent.Render(m.ctrl.Trace().Algorithm()),
		muted.Render(st.State.String()),
		muted.Render(fmt.Sprintf("%dms/step", st.Speed.Milliseconds())))

	barWidth := 36
	filled := barWidth
	if st.Len > 1 {
		filled = st.Index * barWidth / (st.Len - 1)
	}
	fmt.Fprintf(&b, "   %s%s  %s\n\n",
		accent.Render(strings.Repeat("━", filled)),
		muted.Render(strings.Repeat("─", barWidth-filled)),
		muted.Render(fmt.Sprintf("%d/%d", st.Index+1, st.Len)))

	chartHeight := max(6, m.height-14)
	b.WriteString(renderChart(st.Step, t, m.width-4, chartHeight))
	b.WriteString("\n")

	label := text
	if st.Step.Action() == step.ActionError {
		label = t.style(t.Error)
	}
	fmt.Fprintf(&b, "   %s %s\n", accent.Render(string(st.Step.Action())), label.Render(st.Step.Note()))
	if line, ok := countsLine(st.Step); ok {
		b.WriteString("   " + muted.Render("counts "+line) + "\n")
	}
	if tgt, ok := m.ctrl.Trace().Target(); ok {
		b.WriteString("   " + muted.Render("target "+fmtValue(tgt)) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(muted.Render("   space play  ←→ step  r reset  +/- speed  n new  a algo  t theme  q quit") + "\n")
	return b.String()
}

// RunInteractive opens the full-screen player and blocks until it quits.
func RunInteractive(opts Options) error {
	var p *tea.Program
	opts.OnAdvance = func(s playback.Status) {
		if p != nil {
			p.Send(advanceMsg(s))
		}
	}
	m, err := newModel(opts)
	if err != nil {
		return err
	}
	defer m.ctrl.Close()

	p = tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

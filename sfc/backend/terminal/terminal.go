package terminal

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
	"github.com/valerio/go-sfc/sfc"
	"github.com/valerio/go-sfc/sfc/backend"
	"github.com/valerio/go-sfc/sfc/backend/terminal/render"
	"github.com/valerio/go-sfc/sfc/cpu"
)

const (
	panelWidth    = 36
	minTermWidth  = 60
	minTermHeight = 18
	logCapacity   = 200
)

// Backend is a live timing monitor drawn with tcell. The left panel shows
// the beam position and the CPU timing state, the right panel shows logs.
type Backend struct {
	screen    tcell.Screen
	logBuffer *render.LogBuffer
	logLevel  slog.Level
	config    backend.Config
	paused    bool

	quit     atomic.Bool
	signals  chan os.Signal
	previous *slog.Logger

	// frame rate sampling
	sampleTime   time.Time
	sampleFrames uint64
	fps          float64
}

// New creates a monitor on the process terminal.
func New() *Backend {
	return &Backend{logLevel: slog.LevelInfo}
}

// NewWithScreen creates a monitor drawing on screen.
func NewWithScreen(screen tcell.Screen) *Backend {
	return &Backend{screen: screen, logLevel: slog.LevelInfo}
}

// Init takes over the terminal and redirects the default logger into the
// log panel.
func (t *Backend) Init(config backend.Config) error {
	t.config = config
	t.logLevel = config.LogLevel
	t.paused = config.Paused

	if t.screen == nil {
		screen, err := tcell.NewScreen()
		if err != nil {
			return errors.Wrap(err, "failed to initialize terminal")
		}
		t.screen = screen
	}
	if err := t.screen.Init(); err != nil {
		return errors.Wrap(err, "failed to initialize terminal")
	}

	t.logBuffer = render.NewLogBuffer(logCapacity)
	t.previous = slog.Default()
	slog.SetDefault(slog.New(render.NewLogBufferHandler(t.logBuffer, slog.LevelDebug)))

	t.screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	t.screen.Clear()

	t.signals = make(chan os.Signal, 1)
	signal.Notify(t.signals, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP, syscall.SIGQUIT)
	go t.handleSignals()

	t.sampleTime = time.Now()
	slog.Info("Terminal monitor initialized", "title", config.Title)
	return nil
}

// Update polls keys and redraws the monitor.
func (t *Backend) Update(stats sfc.Stats) ([]backend.Action, error) {
	var actions []backend.Action

	for t.screen.HasPendingEvent() {
		switch ev := t.screen.PollEvent().(type) {
		case *tcell.EventKey:
			if act, ok := t.processKeyEvent(ev); ok {
				actions = append(actions, act)
			}
		case *tcell.EventResize:
			t.screen.Sync()
		}
	}
	if t.quit.Swap(false) {
		actions = append(actions, backend.Quit)
	}

	t.sample(stats)
	t.render(stats)
	t.screen.Show()

	return actions, nil
}

// Cleanup restores the terminal and the previous default logger.
func (t *Backend) Cleanup() error {
	if t.signals != nil {
		signal.Stop(t.signals)
		close(t.signals)
		t.signals = nil
	}
	if t.previous != nil {
		slog.SetDefault(t.previous)
		t.previous = nil
	}
	if t.screen != nil {
		t.screen.Fini()
	}
	return nil
}

func (t *Backend) handleSignals() {
	if _, ok := <-t.signals; !ok {
		return
	}
	t.quit.Store(true)
	if t.config.Callbacks.OnQuit != nil {
		t.config.Callbacks.OnQuit()
	}
}

func (t *Backend) processKeyEvent(ev *tcell.EventKey) (backend.Action, bool) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return backend.Quit, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return backend.Quit, true
		case ' ', 'p':
			t.paused = !t.paused
			return backend.TogglePause, true
		case '+', '=':
			t.changeLogLevel(1)
		case '-':
			t.changeLogLevel(-1)
		}
	}
	return 0, false
}

// changeLogLevel widens (+1) or narrows (-1) the log panel filter.
func (t *Backend) changeLogLevel(direction int) {
	oldLevel := t.logLevel
	switch direction {
	case -1:
		switch t.logLevel {
		case slog.LevelDebug:
			t.logLevel = slog.LevelInfo
		case slog.LevelInfo:
			t.logLevel = slog.LevelWarn
		case slog.LevelWarn:
			t.logLevel = slog.LevelError
		}
	case 1:
		switch t.logLevel {
		case slog.LevelError:
			t.logLevel = slog.LevelWarn
		case slog.LevelWarn:
			t.logLevel = slog.LevelInfo
		case slog.LevelInfo:
			t.logLevel = slog.LevelDebug
		}
	}
	if oldLevel != t.logLevel {
		slog.Info("Log filter changed", "from", oldLevel, "to", t.logLevel)
	}
}

func (t *Backend) sample(stats sfc.Stats) {
	elapsed := time.Since(t.sampleTime)
	if elapsed < time.Second {
		return
	}
	if stats.Frames >= t.sampleFrames {
		t.fps = float64(stats.Frames-t.sampleFrames) / elapsed.Seconds()
	}
	t.sampleTime = time.Now()
	t.sampleFrames = stats.Frames
}

func (t *Backend) render(stats sfc.Stats) {
	t.screen.Clear()

	termWidth, termHeight := t.screen.Size()
	if termWidth < minTermWidth || termHeight < minTermHeight {
		msg := fmt.Sprintf("Terminal too small! Need at least %dx%d", minTermWidth, minTermHeight)
		render.DrawText(t.screen, 0, termHeight/2, termWidth, msg, tcell.StyleDefault.Foreground(tcell.ColorRed))
		return
	}

	borderStyle := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	titleStyle := tcell.StyleDefault.Foreground(tcell.ColorYellow)

	render.VLine(t.screen, panelWidth, 0, termHeight-1, borderStyle)

	state := "RUNNING"
	if t.paused {
		state = "PAUSED"
	}
	title := t.config.Title
	if title == "" {
		title = "Timing"
	}
	render.DrawText(t.screen, 1, 0, panelWidth-2, fmt.Sprintf(" %s [%s] ", title, state), titleStyle)
	render.DrawText(t.screen, panelWidth+2, 0, termWidth-panelWidth-2,
		fmt.Sprintf(" Logs [%s] (-/+ filter) ", levelName(t.logLevel)), titleStyle)

	t.drawTiming(stats, 1, 2, panelWidth-2, termHeight-3)
	t.drawLogs(panelWidth+2, 2, termWidth-panelWidth-3, termHeight-3)

	help := " SPACE=pause/resume  +/-=log filter  ESC=quit "
	render.DrawText(t.screen, 0, termHeight-1, termWidth, help, borderStyle)
}

func (t *Backend) drawTiming(stats sfc.Stats, x, y, width, height int) {
	st := stats.Status
	lines := []string{
		fmt.Sprintf("Region:    %s", stats.Region),
		fmt.Sprintf("Frame:     %d", stats.Frames),
		fmt.Sprintf("Speed:     %.1f fps", t.fps),
		fmt.Sprintf("Beam:      V %3d  H %4d  F %d", stats.V, stats.H, stats.Field),
		fmt.Sprintf("Clocks:    %d", stats.Clocks),
		fmt.Sprintf("Resumes:   %d", stats.Resumes),
		"",
		fmt.Sprintf("DMA:       %s", onOff(st.DMAActive)),
		fmt.Sprintf("Pending:   dma %s  hdma %s", onOff(st.DMAPending), onOff(st.HDMAPending)),
		fmt.Sprintf("Refresh:   %s at %d", refreshName(st.DRAMRefresh), st.DRAMRefreshPosition),
		fmt.Sprintf("HDMA:      setup %d  run %d", st.HDMASetupPosition, st.HDMAPosition),
		fmt.Sprintf("Joypad:    edge %d  %s", st.AutoJoypadCounter, onOff(st.AutoJoypadActive)),
		fmt.Sprintf("JOY1-4:    %04x %04x %04x %04x",
			stats.Joypads[0], stats.Joypads[1], stats.Joypads[2], stats.Joypads[3]),
		fmt.Sprintf("Overclock: %d/%d", stats.Overclock.Counter, stats.Overclock.Target),
	}

	style := tcell.StyleDefault.Foreground(tcell.ColorBlue)
	for i, line := range lines {
		if i >= height {
			break
		}
		render.DrawText(t.screen, x, y+i, width, line, style)
	}
}

func (t *Backend) drawLogs(x, y, width, height int) {
	if width <= 0 || height <= 0 {
		return
	}

	debugStyle := tcell.StyleDefault.Foreground(tcell.ColorGray)
	infoStyle := tcell.StyleDefault.Foreground(tcell.ColorBlue)
	warnStyle := tcell.StyleDefault.Foreground(tcell.ColorYellow)
	errStyle := tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)

	for i, entry := range t.logBuffer.Recent(height, t.logLevel) {
		style := infoStyle
		switch {
		case entry.Level >= slog.LevelError:
			style = errStyle
		case entry.Level >= slog.LevelWarn:
			style = warnStyle
		case entry.Level < slog.LevelInfo:
			style = debugStyle
		}
		render.DrawText(t.screen, x, y+i, width, render.FormatLogEntry(entry), style)
	}
}

func levelName(l slog.Level) string {
	switch l {
	case slog.LevelDebug:
		return "DEBUG"
	case slog.LevelWarn:
		return "WARN"
	case slog.LevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

func refreshName(r cpu.Refresh) string {
	switch r {
	case cpu.RefreshPhase1:
		return "phase 1"
	case cpu.RefreshPhase2:
		return "phase 2"
	default:
		return "idle"
	}
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

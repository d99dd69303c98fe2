package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/outwit/tetris-challenge/internal/audio"
	"github.com/outwit/tetris-challenge/internal/config"
	"github.com/outwit/tetris-challenge/internal/core"
	"github.com/outwit/tetris-challenge/internal/games/tetris"
	"github.com/outwit/tetris-challenge/internal/outcome"
	"github.com/outwit/tetris-challenge/internal/settings"
)

// noticeTTL is how long a notice stays on the status line.
const noticeTTL = 6 * time.Second

// statusLines is the number of rows below the game reserved for status
// and help.
const statusLines = 2

// Options configures a game model. Only Config and Runtime are required.
type Options struct {
	Config  config.TetrisConfig
	Runtime core.RuntimeConfig

	// Settings supplies stored tunables. Nil plays with Config.Gameplay.
	Settings settings.Source
	// Reporter receives finished games. Nil disables reporting.
	Reporter *outcome.Reporter
	// Mixer plays sound cues. Nil is silent.
	Mixer  *audio.Mixer
	Logger *log.Logger

	Player string
	Email  string
}

type settingsLoadedMsg settings.Result

type noticeMsg outcome.Notice

var (
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	couponStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
)

// Model is the Bubble Tea model for the challenge game.
type Model struct {
	game       *tetris.Game
	screen     *core.Screen
	opts       Options
	config     core.RuntimeConfig
	keys       *KeyMapper
	help       help.Model
	spinner    spinner.Model
	inputFrame core.InputFrame
	gameState  core.GameState

	loading     bool
	pending     core.Action // start or restart waiting for a settings load
	lastNotice  string      // settings notice already shown
	lastTick    time.Time
	softDropAt  time.Time
	softRelease time.Duration

	notice      string
	noticeUntil time.Time
	coupon      string

	quitting bool
}

// NewModel creates a new Bubble Tea model for one player.
func NewModel(opts Options) Model {
	cfg := opts.Runtime
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))

	game := tetris.New(opts.Config)
	game.Reset(core.RuntimeConfig{
		ScreenW:  cfg.ScreenW,
		ScreenH:  gameHeight(cfg.ScreenH),
		TickRate: cfg.TickRate,
		Seed:     cfg.Seed,
	})

	return Model{
		game:        game,
		screen:      core.NewScreen(cfg.ScreenW, gameHeight(cfg.ScreenH)),
		opts:        opts,
		config:      cfg,
		keys:        NewKeyMapper(),
		help:        help.New(),
		spinner:     sp,
		inputFrame:  core.NewInputFrame(),
		loading:     true,
		softRelease: opts.Config.UI.SoftDropRelease(),
	}
}

func gameHeight(h int) int {
	return max(h-statusLines, 0)
}

// Init starts the settings load, the spinner, the tick loop and the
// notice listener.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.spinner.Tick,
		loadSettingsCmd(m.opts.Settings, m.opts.Config.Gameplay, m.opts.Logger),
		tickCmd(m.config.TickRate),
	}
	if m.opts.Reporter != nil {
		cmds = append(cmds, listenNotices(m.opts.Reporter.Notices()))
	}
	return tea.Batch(cmds...)
}

// loadSettingsCmd resolves the tunables off the update loop.
func loadSettingsCmd(src settings.Source, fallback config.Tunables, logger *log.Logger) tea.Cmd {
	return func() tea.Msg {
		return settingsLoadedMsg(settings.Resolve(context.Background(), src, fallback, logger))
	}
}

// listenNotices waits for the next reporter notice.
func listenNotices(ch <-chan outcome.Notice) tea.Cmd {
	return func() tea.Msg {
		n, ok := <-ch
		if !ok {
			return nil
		}
		return noticeMsg(n)
	}
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))

	case settingsLoadedMsg:
		return m.handleSettings(settings.Result(msg))

	case noticeMsg:
		m.setNotice(msg.Text)
		if msg.Coupon != "" {
			m.coupon = msg.Coupon
		}
		return m, listenNotices(m.opts.Reporter.Notices())

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keys.MapKey(msg)
	if isQuit {
		m.game.Stop()
		m.quitting = true
		return m, tea.Quit
	}

	switch action {
	case core.ActionNone:
	case core.ActionMute:
		if m.opts.Mixer == nil {
			break
		}
		if m.opts.Mixer.ToggleMute() {
			m.setNotice("Sound off.")
		} else {
			m.setNotice("Sound on.")
		}
	case core.ActionStart, core.ActionRestart:
		if m.loading {
			m.setNotice("Loading game settings...")
			break
		}
		if action == core.ActionStart && !m.startable() {
			break
		}
		if action == core.ActionRestart {
			m.coupon = ""
		}
		// Stored settings may have changed since the last game; the
		// action is applied once they are resolved again.
		m.loading = true
		m.pending = action
		return m, tea.Batch(
			m.spinner.Tick,
			loadSettingsCmd(m.opts.Settings, m.opts.Config.Gameplay, m.opts.Logger),
		)
	case core.ActionSoftDropStart:
		// Key repeat keeps the drop held; the tick releases it once the
		// repeats stop.
		m.softDropAt = time.Now()
		m.inputFrame.Set(action)
	default:
		m.inputFrame.Set(action)
	}

	return m, nil
}

// startable reports whether Start would begin a game now.
func (m Model) startable() bool {
	phase := m.game.Session().Phase()
	return phase == tetris.PhaseNotStarted || phase == tetris.PhaseOver
}

// handleResize processes window resize events. The session survives; the
// game pauses itself while the window is too small.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, gameHeight(msg.Height))
	m.game.Resize(msg.Width, gameHeight(msg.Height))
	m.help.Width = msg.Width
	return m, nil
}

// handleSettings applies the resolved tunables, ends the loading state and
// releases a start or restart that was waiting for them.
func (m Model) handleSettings(res settings.Result) (tea.Model, tea.Cmd) {
	m.loading = false
	m.game.SetTunables(res.Tunables)
	if res.Notice != "" && res.Notice != m.lastNotice {
		m.setNotice(res.Notice)
	}
	m.lastNotice = res.Notice
	if m.pending != core.ActionNone {
		m.inputFrame.Set(m.pending)
		m.pending = core.ActionNone
	}
	return m, nil
}

// handleTick advances the game by the wall time since the previous tick.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	elapsed := elapsedSince(m.lastTick, now, m.config.FrameInterval())
	m.lastTick = now

	if s := m.game.Session(); s != nil && s.SoftDrop() && now.Sub(m.softDropAt) > m.softRelease {
		m.inputFrame.Set(core.ActionSoftDropStop)
	}

	result := m.game.Step(m.inputFrame, elapsed)
	m.gameState = result.State
	m.opts.Mixer.Play(result.Cues...)

	if result.Finished {
		m.report()
	}

	if m.notice != "" && now.After(m.noticeUntil) {
		m.notice = ""
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// report hands the finished game to the reporter without waiting.
func (m *Model) report() {
	st := m.gameState
	m.opts.Logger.Info("game finished", "player", m.opts.Player, "score", st.Score, "won", st.Won)
	if m.opts.Reporter == nil {
		return
	}
	m.opts.Reporter.Report(outcome.Outcome{
		GameID: m.game.ID(),
		Player: m.opts.Player,
		Email:  m.opts.Email,
		Score:  st.Score,
		Level:  st.Level,
		Lines:  st.Lines,
		Won:    st.Won,
	})
}

func (m *Model) setNotice(text string) {
	m.notice = text
	m.noticeUntil = time.Now().Add(noticeTTL)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".outwit", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + m.statusLine() + "\n" + m.help.View(m.keys.Keys())
}

// statusLine shows the loading spinner, the coupon or the latest notice.
func (m Model) statusLine() string {
	var line string
	switch {
	case m.loading:
		line = m.spinner.View() + " Loading game settings..."
	case m.coupon != "" && m.gameState.GameOver:
		line = couponStyle.Render("Your coupon: " + m.coupon)
		if m.notice != "" {
			line += "  " + statusStyle.Render(m.notice)
		}
	case m.notice != "":
		line = statusStyle.Render(m.notice)
	}
	return centerText(line, m.config.ScreenW)
}

// Loading reports whether the settings load is still pending.
func (m Model) Loading() bool {
	return m.loading
}

// Game returns the game driven by the model.
func (m Model) Game() *tetris.Game {
	return m.game
}

// Run starts the Bubble Tea program with the given options.
func Run(opts Options) error {
	p := tea.NewProgram(
		NewModel(opts),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}

package main

import (
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/petrijr/tweentrain"
)

type tickMsg struct{}

var glyphs = []rune{'*', '@', '#', '+', 'o', '%'}

var spriteColors = []lipgloss.Color{"#FF6B6B", "#5B8DEF", "#F7C948", "#7BD88F", "#C792EA", "#FF9F43"}

// model is the bubbletea model driving one stage. All trains run on the
// bubbletea update goroutine.
type model struct {
	stage   *tweentrain.LocalStage
	metrics *tweentrain.BasicMetrics
	program tweentrain.Program
	logger  *slog.Logger
	frame   time.Duration

	sprites  []*tweentrain.Sprite
	bindings tweentrain.Bindings

	root   *tweentrain.Train
	halted bool
	laps   int
	events int

	width, height int
	status        string
}

func newModel(stage *tweentrain.LocalStage, metrics *tweentrain.BasicMetrics, program tweentrain.Program,
	frame time.Duration, width, height int, logger *slog.Logger) (*model, error) {
	m := &model{
		stage:   stage,
		metrics: metrics,
		program: program,
		logger:  logger,
		frame:   frame,
		width:   width,
		height:  height,
	}

	targets := map[string]any{}
	for i, name := range program.TargetNames() {
		s := tweentrain.NewSprite(name, glyphs[i%len(glyphs)], 0, 0)
		m.sprites = append(m.sprites, s)
		targets[name] = s
	}
	events := map[string]func(){}
	for _, name := range program.EventNames() {
		events[name] = m.eventHandler(name)
	}
	m.bindings = tweentrain.Bindings{Targets: targets, Events: events}

	if err := m.start(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *model) eventHandler(name string) func() {
	return func() {
		m.events++
		if name == "lap" {
			m.laps++
		}
		m.status = "event " + name
		m.logger.Debug("program_event", slog.String("event", name))
	}
}

// start kills whatever is running, lays the sprites out again and runs the
// program from the top.
func (m *model) start() error {
	m.stage.Shutdown()
	m.layout()

	root, err := m.stage.Compile(m.program, m.bindings)
	if err != nil {
		return err
	}
	m.root = root
	m.halted = false
	m.logger.Info("program_started",
		slog.String("program", m.program.Name),
		slog.Uint64("train_id", root.ID()),
	)
	root.Run()
	return nil
}

func (m *model) layout() {
	n := len(m.sprites)
	for i, s := range m.sprites {
		s.X = float64(i+1) / float64(n+1)
		s.Y = 0.5
		s.Alpha = 1
		s.Scale = 1
	}
}

func (m *model) tick() tea.Cmd {
	return tea.Tick(m.frame, func(time.Time) tea.Msg { return tickMsg{} })
}

func (m *model) Init() tea.Cmd {
	return m.tick()
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tickMsg:
		m.stage.Tick(m.frame)
		if m.root.Finished() && !m.halted {
			if err := m.start(); err != nil {
				m.status = err.Error()
				m.halted = true
			}
		}
		return m, m.tick()

	case tea.WindowSizeMsg:
		m.width = max(10, msg.Width-4)
		m.height = max(4, msg.Height-7)
		m.stage.Resize()
		m.logger.Debug("stage_resized", slog.Int("width", m.width), slog.Int("height", m.height))
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.stage.Shutdown()
			return m, tea.Quit
		case "n":
			for _, t := range m.stage.Registry.Trains() {
				t.SkipToNext()
			}
			m.status = "skipped running tweens"
		case "l":
			for _, t := range m.stage.Registry.Trains() {
				t.SkipToLast()
			}
			m.status = "skipped to last step"
		case "k":
			m.stage.Registry.KillAll()
			m.halted = true
			m.status = "killed, press r to restart"
		case "r":
			if err := m.start(); err != nil {
				m.status = err.Error()
				return m, nil
			}
			m.status = "restarted"
		}
		return m, nil
	}
	return m, nil
}

func (m *model) View() string {
	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FF6B6B")).
		Render("tweentrain · " + m.program.Name)

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444444")).
		Render(m.renderStage())

	snap := m.metrics.Snapshot()
	stats := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#AAAAAA")).
		Render(fmt.Sprintf("live %d · state %s · laps %d · steps %d · skipped %d · resizes %d · avg %s",
			m.stage.Registry.Live(), m.root.State(), m.laps,
			snap.StepsCompleted, snap.StepsSkipped, snap.Resizes,
			snap.AvgStepDuration.Round(time.Millisecond)))

	footer := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#888888")).
		Render("n next · l last · k kill · r restart · q quit   " + m.status)

	return strings.Join([]string{header, box, stats, footer}, "\n")
}

// renderStage draws the sprites on a width x height grid. Later sprites win
// when two land on the same cell.
func (m *model) renderStage() string {
	grid := make([][]string, m.height)
	for row := range grid {
		grid[row] = make([]string, m.width)
		for col := range grid[row] {
			grid[row][col] = " "
		}
	}

	for i, s := range m.sprites {
		if !s.Visible() {
			continue
		}
		col := clamp(int(math.Round(s.X*float64(m.width-1))), 0, m.width-1)
		row := clamp(int(math.Round(s.Y*float64(m.height-1))), 0, m.height-1)

		style := lipgloss.NewStyle().Foreground(spriteColors[i%len(spriteColors)])
		if s.Scale >= 1.5 {
			style = style.Bold(true)
		}
		if s.Alpha < 0.5 {
			style = style.Faint(true)
		}
		grid[row][col] = style.Render(string(s.Glyph))
	}

	lines := make([]string, len(grid))
	for row, cells := range grid {
		lines[row] = strings.Join(cells, "")
	}
	return strings.Join(lines, "\n")
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

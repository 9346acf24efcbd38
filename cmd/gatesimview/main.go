// Command gatesimview is a read-only TUI dashboard over a running
// simulation: a bubbletea program ticks the driver on a wall-clock
// timer and renders the resulting Snapshot.
//
// Grounded on newhook-6502's monitor (monitor/main.go): a tea.Model
// holding the simulated machine, a tea.Tick-driven step, lipgloss
// panels for layout.
package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gatesim/gatesim/component"
	"github.com/gatesim/gatesim/driver"
	"github.com/gatesim/gatesim/kernel"
	"github.com/gatesim/gatesim/netlist"
	"github.com/gatesim/gatesim/value"
)

var (
	subtle    = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#383838"}
	highlight = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}

	titleStyle = lipgloss.NewStyle().Foreground(subtle).Padding(0, 1)

	panelStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(highlight).
			Padding(1).
			Width(40)
)

type tickMsg struct{}

func doTick() tea.Cmd {
	return tea.Tick(16*time.Millisecond, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

// dashboard is the bubbletea model wrapping a driver.Driver.
type dashboard struct {
	drv     *driver.Driver
	paused  bool
	running bool
	last    kernel.Snapshot
	spin    spinner.Model
}

func newDashboard(k *kernel.Kernel) *dashboard {
	d := &dashboard{drv: driver.New(k, nil), spin: spinner.New()}
	d.spin.Spinner = spinner.Line
	d.drv.Start(time.Now().UnixMilli())
	return d
}

func (m *dashboard) Init() tea.Cmd {
	return tea.Batch(doTick(), m.spin.Tick)
}

func (m *dashboard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if !m.paused && m.running {
			m.drv.Tick(time.Now().UnixMilli())
		}
		m.last = m.drv.Kernel().Snapshot()
		return m, doTick()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "p":
			m.paused = !m.paused
		case "r":
			m.running = true
			m.drv.Kernel().Run()
		case "s":
			m.drv.Kernel().Pause()
			m.drv.Kernel().Step(1)
			m.last = m.drv.Kernel().Snapshot()
		}
	}
	return m, nil
}

func (m *dashboard) View() string {
	state := "paused"
	if !m.paused && m.running {
		state = m.spin.View() + " running"
	}

	header := titleStyle.Render(fmt.Sprintf("gatesimview  t=%d  state=%s", m.last.Time, state))

	var gates strings.Builder
	for _, g := range m.last.Gates {
		gates.WriteString(fmt.Sprintf("%-12s %-12s in=%s out=%s\n",
			g.ID, g.Type, statesString(g.InputStates), statesString(g.OutputStates)))
	}
	gatesPanel := panelStyle.Render("Gates\n\n" + gates.String())

	var wires strings.Builder
	for _, w := range m.last.Wires {
		wires.WriteString(fmt.Sprintf("%-8s %s->%s  %s\n", w.ID, w.SourceGateID, w.TargetGateID, w.State))
	}
	wiresPanel := panelStyle.Render("Wires\n\n" + wires.String())

	help := titleStyle.Render("r: run  p: pause/resume  s: single step  q: quit")

	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		lipgloss.JoinHorizontal(lipgloss.Top, gatesPanel, wiresPanel),
		help,
	)
}

func statesString(states []value.State) string {
	if len(states) == 0 {
		return "-"
	}
	var b strings.Builder
	for _, s := range states {
		b.WriteString(s.String())
	}
	return b.String()
}

// buildDemoNetlist wires up a small default circuit so the dashboard
// has something to render without a saved netlist file: a CLOCK and a
// TOGGLE (set to ONE) feeding a D flip-flop whose Q drives an LED.
func buildDemoNetlist() ([]component.Descriptor, []netlist.Descriptor) {
	gates := []component.Descriptor{
		{ID: "clk", Type: "CLOCK", Params: map[string]any{"period": 8, "dutyCycle": 0.5}},
		{ID: "d", Type: "TOGGLE", OutputStates: []value.State{value.ONE}},
		{ID: "ff", Type: "D_FLIPFLOP"},
		{ID: "led", Type: "LED"},
	}
	wires := []netlist.Descriptor{
		{ID: "w1", SourceGateID: "d", SourcePortIndex: 0, TargetGateID: "ff", TargetPortIndex: 0},
		{ID: "w2", SourceGateID: "clk", SourcePortIndex: 0, TargetGateID: "ff", TargetPortIndex: 1},
		{ID: "w3", SourceGateID: "ff", SourcePortIndex: 0, TargetGateID: "led", TargetPortIndex: 0},
	}
	return gates, wires
}

func main() {
	k := kernel.New(kernel.DefaultConfig())
	gates, wires := buildDemoNetlist()
	if err := k.Initialize(gates, wires); err != nil {
		fmt.Println("gatesimview: initialize:", err)
		return
	}

	p := tea.NewProgram(newDashboard(k))
	if _, err := p.Run(); err != nil {
		fmt.Println("gatesimview: error running program:", err)
	}
}

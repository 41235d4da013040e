// Package watch renders the fixed-point iteration live in the terminal:
// a residual trace, the evolving first moment and, once the solve
// finishes, the correlation profile itself.
package watch

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/pairmom/internal/problem"
	"github.com/san-kum/pairmom/internal/solver"
)

const historyCapacity = 600

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	doneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type iterMsg struct {
	iter     int
	residual float64
	n        float64
}

type doneMsg struct {
	res *solver.Result
	err error
}

// chanObserver forwards solver progress into the UI message channel. The
// send blocks, so the solve advances in step with the rendering.
type chanObserver struct {
	ch chan tea.Msg
}

func (o chanObserver) OnIteration(iter int, residual, n float64) {
	o.ch <- iterMsg{iter: iter, residual: residual, n: n}
}

// Model is the Bubble Tea model driving the live view.
type Model struct {
	p  *problem.Problem
	ch chan tea.Msg

	iter      int
	n         float64
	residuals []float64
	res       *solver.Result
	err       error
	done      bool
}

func New(p *problem.Problem) Model {
	return Model{
		p:         p,
		ch:        make(chan tea.Msg),
		residuals: make([]float64, 0, historyCapacity),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.startSolve, m.waitForProgress)
}

func (m Model) startSolve() tea.Msg {
	s := solver.WithObserver(solver.New(m.p), chanObserver{ch: m.ch})
	res, err := s.Solve(m.p)
	// No more progress after this point; closing lets the pending
	// waitForProgress command finish instead of blocking forever.
	close(m.ch)
	return doneMsg{res: res, err: err}
}

func (m Model) waitForProgress() tea.Msg {
	return <-m.ch
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}
	case iterMsg:
		m.iter = msg.iter
		m.n = msg.n
		// Plot the residual on a log scale; the linear trace collapses
		// to a wall once the iteration is past the first few steps.
		r := msg.residual
		if r <= 0 {
			r = 1e-300
		}
		m.residuals = append(m.residuals, math.Log10(r))
		if len(m.residuals) > historyCapacity {
			m.residuals = m.residuals[1:]
		}
		return m, m.waitForProgress
	case doneMsg:
		m.done = true
		m.res = msg.res
		m.err = msg.err
		return m, nil
	}
	return m, nil
}

func (m Model) View() string {
	var s strings.Builder

	title := fmt.Sprintf("%s kernel, %s, dim %d", m.p.Kernels().Kernel().Family(), m.p.Method(), m.p.Dim())
	s.WriteString(headerStyle.Render(strings.ToUpper(title)) + "\n")

	switch {
	case m.done && m.err != nil:
		s.WriteString(failStyle.Render("FAILED") + "\n\n")
		s.WriteString(m.err.Error() + "\n")
	case m.done && !m.res.Converged:
		s.WriteString(failStyle.Render(fmt.Sprintf("NOT CONVERGED after %d iterations", m.res.Iterations)) + "\n")
	case m.done:
		s.WriteString(doneStyle.Render(fmt.Sprintf("CONVERGED in %d iterations", m.res.Iterations)) + "\n")
	default:
		s.WriteString("SOLVING\n")
	}

	if len(m.residuals) > 1 {
		chart := asciigraph.Plot(m.residuals,
			asciigraph.Height(8),
			asciigraph.Width(60),
			asciigraph.Caption("log10 residual"),
		)
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	s.WriteString(labelStyle.Render("Iteration") + valueStyle.Render(fmt.Sprintf("%d / %d", m.iter, m.p.Iterations())) + "\n")
	s.WriteString(labelStyle.Render("Mean density") + valueStyle.Render(fmt.Sprintf("%.6f", m.n)) + "\n")
	s.WriteString(labelStyle.Render("Tolerance") + valueStyle.Render(fmt.Sprintf("%.0e", m.p.Tolerance())) + "\n")

	if m.done && m.err == nil {
		chart := asciigraph.Plot(m.res.C,
			asciigraph.Height(10),
			asciigraph.Width(60),
			asciigraph.Caption("C(r)"),
		)
		s.WriteString(graphStyle.Render(chart) + "\n")
		s.WriteString(labelStyle.Render("N") + valueStyle.Render(fmt.Sprintf("%.6f", m.res.N)) + "\n")
		s.WriteString(labelStyle.Render("C(0)") + valueStyle.Render(fmt.Sprintf("%.6f", m.res.GetC0())) + "\n")
	}

	s.WriteString(helpStyle.Render("Q:Quit"))
	return s.String()
}

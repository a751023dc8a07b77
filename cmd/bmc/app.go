// Package main provides the bmc CLI entry point.
// This file implements the interactive canvas interface using bubbletea.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/Roman01-info/bmc-v3/cmd/bmc/ui"
	"github.com/Roman01-info/bmc-v3/internal/canvas"
	"github.com/Roman01-info/bmc-v3/internal/config"
	"github.com/Roman01-info/bmc-v3/internal/export"
	"github.com/Roman01-info/bmc-v3/internal/history"
	"github.com/Roman01-info/bmc-v3/internal/session"
)

// analyzer is the slice of the analysis service the TUI needs.
type analyzer interface {
	Analyze(ctx context.Context, data canvas.CanvasData) (*canvas.AnalysisResult, error)
}

// planStore is the slice of the history store the TUI needs.
type planStore interface {
	Load() history.Archive
	Append(archive history.Archive, data canvas.CanvasData) history.Archive
	Delete(archive history.Archive, id string) history.Archive
}

// Messages for tea updates
type (
	analysisDoneMsg struct {
		token  uint64
		result *canvas.AnalysisResult
	}
	analysisFailedMsg struct {
		token uint64
		err   error
	}
)

// appModel is the main model for the interactive canvas interface
type appModel struct {
	// UI Components
	form     ui.Form
	panel    ui.HistoryPanel
	viewport viewport.Model
	spinner  spinner.Model
	styles   ui.Styles
	renderer *glamour.TermRenderer

	// State
	state   session.State
	archive history.Archive
	status  string
	width   int
	height  int
	ready   bool

	// Backend
	store    planStore
	analyzer analyzer
	cfg      config.Config
	log      *zap.Logger
}

// newApp initializes the interactive canvas model
func newApp(cfg config.Config, store planStore, an analyzer, log *zap.Logger) appModel {
	styles := ui.DefaultStyles()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	vp := viewport.New(80, 20)
	vp.SetContent("")

	var renderer *glamour.TermRenderer
	if styles.Theme.IsDark {
		renderer, _ = glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(80),
		)
	} else {
		renderer, _ = glamour.NewTermRenderer(
			glamour.WithStylePath("light"),
			glamour.WithWordWrap(80),
		)
	}

	if log == nil {
		log = zap.NewNop()
	}

	m := appModel{
		form:     ui.NewForm(styles),
		panel:    ui.NewHistoryPanel(styles),
		viewport: vp,
		spinner:  sp,
		styles:   styles,
		renderer: renderer,
		state:    session.New(),
		store:    store,
		analyzer: an,
		cfg:      cfg,
		log:      log,
	}
	m.archive = store.Load()
	m.panel.SetItems(m.archive)
	return m
}

func (m appModel) Init() tea.Cmd {
	return m.spinner.Tick
}

// dispatch runs one event through the state machine and executes its effects.
func (m *appModel) dispatch(e session.Event) tea.Cmd {
	next, effects := session.Apply(m.state, e)
	m.state = next

	var cmds []tea.Cmd
	for _, eff := range effects {
		switch eff := eff.(type) {
		case session.SaveHistory:
			m.archive = m.store.Append(m.archive, eff.Data)
			m.panel.SetItems(m.archive)
		case session.StartAnalysis:
			cmds = append(cmds, m.runAnalysis(eff.Token, eff.Data))
		}
	}
	return tea.Batch(cmds...)
}

// runAnalysis starts the analysis in the background. Completion messages carry
// the generation token so abandoned runs are ignored.
func (m appModel) runAnalysis(token uint64, data canvas.CanvasData) tea.Cmd {
	timeout := m.cfg.Gemini.Timeout
	an := m.analyzer
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		result, err := an.Analyze(ctx, data)
		if err != nil {
			return analysisFailedMsg{token: token, err: err}
		}
		return analysisDoneMsg{token: token, result: result}
	}
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 3
		footerHeight := 2
		if !m.ready {
			m.viewport = viewport.New(msg.Width-4, msg.Height-headerHeight-footerHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width - 4
			m.viewport.Height = msg.Height - headerHeight - footerHeight
		}

		m.form.SetWidth(msg.Width - 4)
		m.panel.SetWidth(msg.Width - 8)

		if m.renderer != nil {
			m.renderer, _ = glamour.NewTermRenderer(
				glamour.WithAutoStyle(),
				glamour.WithWordWrap(msg.Width-8),
			)
		}
		return m, nil

	case spinner.TickMsg:
		if m.state.View == session.ViewAnalyzing {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case analysisDoneMsg:
		cmd := m.dispatch(session.AnalysisSucceeded{Token: msg.token, Result: msg.result})
		if m.state.View == session.ViewResult {
			m.showReport()
		}
		return m, cmd

	case analysisFailedMsg:
		m.log.Warn("analysis failed", zap.Error(msg.err))
		return m, m.dispatch(session.AnalysisFailed{Token: msg.token})
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	if m.state.HistoryOpen {
		return m.handleHistoryKey(msg)
	}

	switch m.state.View {
	case session.ViewInput:
		return m.handleInputKey(msg)
	case session.ViewAnalyzing:
		// The run can be abandoned for a fresh canvas; the pending
		// completion is then stale and gets dropped. Everything else is
		// locked until the analysis settles.
		if msg.String() == "ctrl+n" {
			cmd := m.dispatch(session.StartNew{})
			m.form.Reset()
			return m, cmd
		}
		return m, nil
	case session.ViewResult, session.ViewActionPlan:
		return m.handleReportKey(msg)
	}
	return m, nil
}

func (m appModel) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	switch msg.String() {
	case "ctrl+s":
		m.state.Canvas = m.form.Data()
		if !m.state.Canvas.NonEmpty() {
			m.status = "অন্তত একটি ঘর পূরণ করুন"
			return m, nil
		}
		return m, tea.Batch(m.spinner.Tick, m.dispatch(session.Submit{}))

	case "ctrl+d":
		m.state.Canvas = m.form.Data()
		cmd := m.dispatch(session.SaveDraft{})
		if m.state.Canvas.NonEmpty() {
			m.status = "খসড়া সংরক্ষিত হয়েছে"
		}
		return m, cmd

	case "ctrl+n":
		cmd := m.dispatch(session.StartNew{})
		m.form.Reset()
		return m, cmd

	case "ctrl+h":
		return m, m.dispatch(session.OpenHistory{})

	case "ctrl+r":
		cmd := m.dispatch(session.ViewReport{})
		if m.state.View == session.ViewResult {
			m.showReport()
		}
		return m, cmd
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)
	return m, cmd
}

func (m appModel) handleReportKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	switch msg.String() {
	case "e":
		return m, m.dispatch(session.EditMode{})

	case "a":
		cmd := m.dispatch(session.ShowActionPlan{})
		if m.state.View == session.ViewActionPlan {
			m.showActionPlan()
		}
		return m, cmd

	case "b", "esc":
		if m.state.View == session.ViewActionPlan {
			cmd := m.dispatch(session.Back{})
			m.showReport()
			return m, cmd
		}
		return m, nil

	case "ctrl+n":
		cmd := m.dispatch(session.StartNew{})
		m.form.Reset()
		return m, cmd

	case "ctrl+h":
		return m, m.dispatch(session.OpenHistory{})

	case "ctrl+e":
		m.status = m.exportReport()
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// exportReport writes the current report as Markdown next to the working
// directory and returns a status line for the footer area.
func (m appModel) exportReport() string {
	if m.state.Result == nil {
		return ""
	}
	res, err := export.NewExporter(m.log).Export(context.Background(), export.Request{
		Data:         m.state.Canvas,
		Result:       *m.state.Result,
		Format:       export.FormatMarkdown,
		IncludeInput: true,
	})
	if err != nil {
		m.log.Warn("report export failed", zap.Error(err))
		return "রিপোর্ট সংরক্ষণ করা যায়নি"
	}
	if err := os.WriteFile(res.Filename, res.Data, 0o644); err != nil {
		m.log.Warn("report export failed", zap.Error(err))
		return "রিপোর্ট সংরক্ষণ করা যায়নি"
	}
	return "রিপোর্ট সংরক্ষিত: " + res.Filename
}

func (m appModel) handleHistoryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+h":
		return m, m.dispatch(session.CloseHistory{})

	case "enter":
		item, ok := m.panel.Selected()
		if !ok {
			return m, nil
		}
		cmd := m.dispatch(session.Restore{Item: item})
		m.form.SetData(m.state.Canvas)
		return m, cmd

	case "x":
		item, ok := m.panel.Selected()
		if !ok {
			return m, nil
		}
		m.archive = m.store.Delete(m.archive, item.ID)
		m.panel.SetItems(m.archive)
		return m, nil
	}

	var cmd tea.Cmd
	m.panel, cmd = m.panel.Update(msg)
	return m, cmd
}

// showReport renders the full report into the viewport.
func (m *appModel) showReport() {
	if m.state.Result == nil {
		return
	}
	md := export.RenderMarkdown(m.state.Canvas, *m.state.Result, false)
	m.setViewportMarkdown(md)
}

// showActionPlan renders only the departmental plan into the viewport.
func (m *appModel) showActionPlan() {
	if m.state.Result == nil {
		return
	}
	var b strings.Builder
	b.WriteString("# অ্যাকশন প্ল্যান (Action Plan)\n\n")
	if len(m.state.Result.DepartmentalActionPlan) == 0 {
		b.WriteString("কোনো অ্যাকশন প্ল্যান পাওয়া যায়নি।\n")
	}
	for _, dept := range m.state.Result.DepartmentalActionPlan {
		fmt.Fprintf(&b, "## %s\n\n", dept.Department)
		for _, role := range dept.Roles {
			fmt.Fprintf(&b, "### %s\n\n", role.Role)
			for _, task := range role.Tasks {
				fmt.Fprintf(&b, "- %s\n", task)
			}
			b.WriteString("\n")
		}
	}
	m.setViewportMarkdown(b.String())
}

func (m *appModel) setViewportMarkdown(md string) {
	content := md
	if m.renderer != nil {
		if rendered, err := m.renderer.Render(md); err == nil {
			content = rendered
		}
	}
	m.viewport.SetContent(content)
	m.viewport.GotoTop()
}

func (m appModel) View() string {
	header := m.renderHeader()
	footer := m.renderFooter()

	var content string
	switch {
	case m.state.HistoryOpen:
		content = m.panel.View()
	case m.state.View == session.ViewInput:
		content = m.form.View()
		if m.state.Err != "" {
			content += "\n" + m.styles.Error.Render(m.state.Err)
		}
		if m.status != "" {
			content += "\n" + m.styles.Info.Render(m.status)
		}
	case m.state.View == session.ViewAnalyzing:
		content = m.styles.Spinner.Render(m.spinner.View()) +
			m.styles.Body.Render(" এনালাইসিস চলছে, অনুগ্রহ করে অপেক্ষা করুন...")
	default:
		content = m.viewport.View()
		if m.status != "" {
			content += "\n" + m.styles.Info.Render(m.status)
		}
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		m.styles.Content.Render(content),
		footer,
	)
}

func (m appModel) renderHeader() string {
	title := m.styles.Header.Render(" বিজনেস মডেল ক্যানভাস ")
	badge := m.styles.Badge.Render("AI")

	var status string
	switch m.state.View {
	case session.ViewAnalyzing:
		status = m.styles.Warning.Render("● Analyzing")
	case session.ViewResult, session.ViewActionPlan:
		status = m.styles.Success.Render("● Report")
		if m.state.Result != nil {
			status += "  " + m.styles.Score.Render(fmt.Sprintf("স্কোর %.0f/100", m.state.Result.OverallScore))
		}
	default:
		status = m.styles.Success.Render("● Ready")
	}

	line := lipgloss.JoinHorizontal(lipgloss.Center, title, " ", badge, "  ", status)
	return lipgloss.JoinVertical(lipgloss.Left, line, m.styles.RenderDivider(m.width))
}

func (m appModel) renderFooter() string {
	var help string
	switch {
	case m.state.HistoryOpen:
		help = "enter: restore • x: delete • esc: close • ctrl+c: exit"
	case m.state.View == session.ViewInput:
		help = "tab: next block • ctrl+s: analyze • ctrl+d: save draft • ctrl+h: history • ctrl+n: new • ctrl+c: exit"
	case m.state.View == session.ViewResult:
		help = "a: action plan • e: edit • ctrl+e: export • ctrl+h: history • ctrl+n: new • ctrl+c: exit"
	case m.state.View == session.ViewActionPlan:
		help = "b/esc: back • e: edit • ctrl+e: export • ctrl+c: exit"
	default:
		help = "ctrl+n: new • ctrl+c: exit"
	}
	return m.styles.Footer.Render(help)
}

// runApp starts the interactive interface.
func runApp(cfg config.Config, store planStore, an analyzer, log *zap.Logger) error {
	p := tea.NewProgram(newApp(cfg, store, an, log), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

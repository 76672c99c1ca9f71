package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/f3rmion/mcg/internal/clipboard"
	"github.com/f3rmion/mcg/internal/comic"
	"github.com/f3rmion/mcg/internal/history"
	"github.com/f3rmion/mcg/internal/markov"
)

// Generator produces comics. *comic.Engine implements it.
type Generator interface {
	RandomID() (string, error)
	Generate(ctx context.Context, id string) (*comic.Comic, error)
	Sigils() markov.Sigils
}

// Recorder stores saved comics. *history.Store implements it.
type Recorder interface {
	Record(ctx context.Context, e *history.Entry) error
}

// Options configure the preview app.
type Options struct {
	ComicID string // empty picks a random comic each time
	Output  comic.Output
	Seed    uint64
	History Recorder // nil disables history
}

type generatedMsg struct {
	comic *comic.Comic
	err   error
}

type savedMsg struct {
	out comic.Output
	err error
}

type copiedMsg struct {
	err error
}

// App is the comic preview model.
type App struct {
	ctx            context.Context
	gen            Generator
	opts           Options
	writeClipboard func(string) error

	// Layout state
	width    int
	height   int
	ready    bool
	showHelp bool

	generating bool
	spinner    spinner.Model
	viewport   viewport.Model

	comic   *comic.Comic
	preview string
	saved   int
	status  string
	err     error
}

// NewApp creates the preview app. The first comic is generated on start.
func NewApp(ctx context.Context, gen Generator, opts Options) App {
	return App{
		ctx:            ctx,
		gen:            gen,
		opts:           opts,
		writeClipboard: clipboard.Write,
		generating:     true,
		spinner:        spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(LoadingStyle)),
		viewport:       viewport.New(0, 0),
	}
}

// Init starts generating the first comic.
func (m App) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.generate())
}

// Update handles messages
func (m App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Help overlay - any key closes it
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "?":
			m.showHelp = true
			return m, nil
		case "g":
			if m.generating {
				return m, nil
			}
			m.generating = true
			m.status = ""
			return m, tea.Batch(m.spinner.Tick, m.generate())
		case "y":
			if m.comic == nil {
				return m, nil
			}
			return m, m.copyTranscript()
		case "s":
			if m.comic == nil {
				return m, nil
			}
			cmd := m.save(m.saved)
			m.saved++
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.refresh()
		return m, nil

	case generatedMsg:
		m.generating = false
		m.err = msg.err
		if msg.err == nil {
			m.comic = msg.comic
			m.viewport.GotoTop()
			m.refresh()
		}
		return m, nil

	case savedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.status = "saved " + strings.Join(paths(msg.out), ", ")
		return m, nil

	case copiedMsg:
		if msg.err != nil {
			m.err = fmt.Errorf("copying transcript: %w", msg.err)
			return m, nil
		}
		m.err = nil
		m.status = "copied transcript to clipboard"
		return m, nil

	case spinner.TickMsg:
		if !m.generating {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func paths(out comic.Output) []string {
	var p []string
	for _, s := range []string{out.TextPath, out.ImagePath} {
		if s != "" {
			p = append(p, s)
		}
	}
	return p
}

func (m App) generate() tea.Cmd {
	ctx, gen, id := m.ctx, m.gen, m.opts.ComicID
	return func() tea.Msg {
		if id == "" {
			var err error
			if id, err = gen.RandomID(); err != nil {
				return generatedMsg{err: err}
			}
		}
		c, err := gen.Generate(ctx, id)
		return generatedMsg{comic: c, err: err}
	}
}

func (m App) copyTranscript() tea.Cmd {
	text := clipboard.Transcript(m.comic.Transcript(m.gen.Sigils()))
	copyFn := m.writeClipboard
	return func() tea.Msg {
		return copiedMsg{err: copyFn(text)}
	}
}

func (m App) save(n int) tea.Cmd {
	ctx, c, sigils, rec, seed := m.ctx, m.comic, m.gen.Sigils(), m.opts.History, m.opts.Seed
	out := m.opts.Output.Numbered(n)
	return func() tea.Msg {
		if err := comic.Write(c, out, sigils); err != nil {
			return savedMsg{err: err}
		}
		if rec != nil {
			e := &history.Entry{
				ComicID:    c.ID,
				Seed:       seed,
				Transcript: c.Transcript(sigils),
				TextPath:   out.TextPath,
				ImagePath:  out.ImagePath,
			}
			if err := rec.Record(ctx, e); err != nil {
				return savedMsg{err: fmt.Errorf("recording history: %w", err)}
			}
		}
		return savedMsg{out: out}
	}
}

// previewSize returns the cell budget of the image and transcript panes.
func (m App) previewSize() (imageCols, textCols, rows int) {
	rows = max(m.height-4, 1)
	imageCols = max(m.width/2, 1)
	textCols = max(m.width-imageCols-4, 10)
	return imageCols, textCols, rows
}

func (m *App) refresh() {
	if m.comic == nil || !m.ready {
		return
	}
	imageCols, textCols, rows := m.previewSize()
	b := m.comic.Image.Bounds()
	cols, cells := FitCells(b.Dx(), b.Dy(), imageCols, rows)
	m.preview = RenderImage(m.comic.Image, cols, cells)

	m.viewport.Width = textCols
	m.viewport.Height = rows
	m.viewport.SetContent(m.transcript(textCols))
}

func (m App) transcript(width int) string {
	var blocks []string
	for _, p := range m.comic.Panels {
		block := SpeakerStyle.Render(p.Speaker+":") + "\n" + RenderWords(p.Words, width)
		if !p.Fits {
			block += "\n" + OverflowStyle.Render("(text overflows bubble)")
		}
		blocks = append(blocks, block)
	}
	if m.comic.URL != "" {
		blocks = append(blocks, LabelStyle.Render("source ")+m.comic.URL)
	}
	return strings.Join(blocks, "\n\n")
}

// View renders the UI
func (m App) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}

	header := TitleStyle.Render("mcg")
	if m.comic != nil {
		header += " " + SubtitleStyle.Render("comic "+m.comic.ID)
	}

	var body string
	switch {
	case m.comic != nil:
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.preview, BoxStyle.Render(m.viewport.View()))
	case m.generating:
		body = LoadingStyle.Render("Generating comic...")
	}

	var status string
	switch {
	case m.generating:
		status = m.spinner.View() + LoadingStyle.Render(" generating")
	case m.err != nil:
		status = ErrorStyle.Render("Error: " + m.err.Error())
	case m.status != "":
		status = CopiedStyle.Render(m.status)
	}
	help := HelpStyle.Render("g generate • y copy • s save • ? help • q quit")

	return lipgloss.JoinVertical(lipgloss.Left, header, body, status, help)
}

// renderHelp renders the help overlay
func (m App) renderHelp() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary).
		MarginBottom(1)

	descStyle := lipgloss.NewStyle().
		Foreground(ColorText)

	helpText := titleStyle.Render("mcg - Markov comic generator") + "\n\n"
	helpText += KeyStyle.Render("g") + descStyle.Render("Generate a new comic") + "\n"
	helpText += KeyStyle.Render("y") + descStyle.Render("Copy transcript to clipboard") + "\n"
	helpText += KeyStyle.Render("s") + descStyle.Render("Save transcript and image") + "\n"
	helpText += KeyStyle.Render("↑/↓") + descStyle.Render("Scroll transcript") + "\n"
	helpText += KeyStyle.Render("?") + descStyle.Render("Show this help") + "\n"
	helpText += KeyStyle.Render("q") + descStyle.Render("Quit") + "\n"

	helpText += "\n" + HelpStyle.
		Italic(true).
		Render("Press any key to close")

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, HelpBoxStyle.Render(helpText))
}

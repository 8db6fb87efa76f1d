// Package tui implements the terminal front end for a browsing session.
package tui

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fsnotify/fsnotify"
	"k8s.io/klog/v2"

	"github.com/franktheglock/photo-veiwer-copier/pkg/viewer"
)

const (
	stripSlots = 5
	thumbCols  = 18
	thumbRows  = 5
)

type focus int

const (
	focusSource focus = iota
	focusDest
	focusBrowse
)

// action is the closed set of user operations. Every key event maps to
// exactly one action and every action is handled exhaustively in Update.
type action int

const (
	actionNone action = iota
	actionQuit
	actionFocusNext
	actionPrev
	actionNext
	actionToggle
	actionCopy
	actionRate
)

type keyAction struct {
	act    action
	rating int
}

type (
	autoloadMsg struct{}
	fsEventMsg  struct{}
	watchErrMsg struct{ err error }
)

// Model drives the browser. Display refreshes run synchronously inside
// Update: there is exactly one logical actor and no shared mutable state.
type Model struct {
	session *viewer.Session

	srcInput  textinput.Model
	destInput textinput.Model
	focus     focus

	status   string
	filename string
	info     string
	main     string
	strip    string

	watcher *fsnotify.Watcher
	watched string

	width  int
	height int
}

// New returns a model over an existing session.
func New(s *viewer.Session) Model {
	src := textinput.New()
	src.Prompt = "Source Path: "
	src.Placeholder = "/path/to/raw/files"
	src.SetValue(s.Config.SrcDir)
	src.Focus()

	dest := textinput.New()
	dest.Prompt = "Destination Path: "
	dest.Placeholder = "/path/to/destination"
	dest.SetValue(s.Config.DestDir)

	return Model{
		session:   s,
		srcInput:  src,
		destInput: dest,
		focus:     focusSource,
		width:     100,
		height:    30,
	}
}

func (m Model) Init() tea.Cmd {
	if m.session.Config.SrcDir != "" {
		return func() tea.Msg { return autoloadMsg{} }
	}
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.refresh()
		return m, nil

	case autoloadMsg:
		return m.load()

	case fsEventMsg:
		// Source directory changed underneath us: reload with the usual
		// reset semantics.
		if m.session.SrcDir != "" {
			if err := m.session.Load(m.session.SrcDir); err != nil {
				klog.Errorf("reload: %v", err)
			}
			m.refresh()
		}
		return m, m.waitForEvent()

	case watchErrMsg:
		klog.Errorf("watch: %v", msg.err)
		return m, m.waitForEvent()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	if m.focus == focusSource || m.focus == focusDest {
		switch msg.Type {
		case tea.KeyTab:
			m.cycleFocus()
			return m, nil
		case tea.KeyEsc:
			m.setFocus(focusBrowse)
			return m, nil
		case tea.KeyEnter:
			if m.focus == focusSource {
				return m.load()
			}
			m.setFocus(focusBrowse)
			return m, nil
		}

		var cmd tea.Cmd
		if m.focus == focusSource {
			m.srcInput, cmd = m.srcInput.Update(msg)
		} else {
			m.destInput, cmd = m.destInput.Update(msg)
		}
		return m, cmd
	}

	ka := browseAction(msg)
	switch ka.act {
	case actionQuit:
		return m, tea.Quit
	case actionFocusNext:
		m.cycleFocus()
	case actionPrev:
		m.session.Prev()
		m.refresh()
	case actionNext:
		m.session.Next()
		m.refresh()
	case actionToggle:
		m.session.Toggle()
		m.refresh()
	case actionCopy:
		m.copySelected()
	case actionRate:
		m.rate(ka.rating)
	case actionNone:
	}

	return m, nil
}

// browseAction maps a key event to its action.
func browseAction(msg tea.KeyMsg) keyAction {
	s := msg.String()
	switch s {
	case "q", "esc":
		return keyAction{act: actionQuit}
	case "tab":
		return keyAction{act: actionFocusNext}
	case "left", "h":
		return keyAction{act: actionPrev}
	case "right", "l":
		return keyAction{act: actionNext}
	case "enter", " ":
		return keyAction{act: actionToggle}
	case "c":
		return keyAction{act: actionCopy}
	case "0", "1", "2", "3", "4", "5":
		return keyAction{act: actionRate, rating: int(s[0] - '0')}
	}
	return keyAction{act: actionNone}
}

func (m *Model) cycleFocus() {
	m.setFocus((m.focus + 1) % 3)
}

func (m *Model) setFocus(f focus) {
	m.focus = f
	m.srcInput.Blur()
	m.destInput.Blur()
	switch f {
	case focusSource:
		m.srcInput.Focus()
	case focusDest:
		m.destInput.Focus()
	case focusBrowse:
	}
}

func (m Model) load() (tea.Model, tea.Cmd) {
	dir := strings.TrimSpace(m.srcInput.Value())
	if dir == "" {
		m.status = "Please enter a source path!"
		return m, nil
	}
	if fi, err := os.Stat(dir); err != nil || !fi.IsDir() {
		m.status = fmt.Sprintf("Source path %q is not a directory!", dir)
		return m, nil
	}

	if err := m.session.Load(dir); err != nil {
		m.status = fmt.Sprintf("Load failed: %v", err)
		return m, nil
	}

	if m.session.Empty() {
		m.status = "No matching raw files found."
	} else {
		m.status = fmt.Sprintf("Loaded %d files.", len(m.session.Files))
	}

	m.setFocus(focusBrowse)
	m.refresh()
	cmd := m.watch(dir)
	return m, cmd
}

// watch points the directory watcher at dir. The event pump is armed once,
// when the watcher is first created.
func (m *Model) watch(dir string) tea.Cmd {
	if m.watcher == nil {
		w, err := fsnotify.NewWatcher()
		if err != nil {
			klog.Errorf("new watcher: %v", err)
			return nil
		}
		if err := w.Add(dir); err != nil {
			klog.Errorf("watch %s: %v", dir, err)
			w.Close()
			return nil
		}
		m.watcher = w
		m.watched = dir
		return m.waitForEvent()
	}

	if m.watched != dir {
		if err := m.watcher.Remove(m.watched); err != nil {
			klog.V(1).Infof("unwatch %s: %v", m.watched, err)
		}
		if err := m.watcher.Add(dir); err != nil {
			klog.Errorf("watch %s: %v", dir, err)
		}
		m.watched = dir
	}
	return nil
}

func (m Model) waitForEvent() tea.Cmd {
	w := m.watcher
	return func() tea.Msg {
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return nil
				}
				if ev.Has(fsnotify.Create) || ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename) {
					return fsEventMsg{}
				}
			case err, ok := <-w.Errors:
				if !ok {
					return nil
				}
				return watchErrMsg{err: err}
			}
		}
	}
}

func (m *Model) copySelected() {
	dest := strings.TrimSpace(m.destInput.Value())
	if dest == "" {
		m.status = "Please select a valid destination path!"
		return
	}
	if fi, err := os.Stat(dest); err != nil || !fi.IsDir() {
		m.status = "Please select a valid destination path!"
		return
	}

	copied := m.session.CopySelected(dest)
	m.status = fmt.Sprintf("Copied %d images successfully!", copied)
}

func (m *Model) rate(rating int) {
	path := m.session.CurrentPath()
	if path == "" {
		return
	}
	if m.session.WriteRating(path, rating) {
		m.status = fmt.Sprintf("Rated %s: %d", filepath.Base(path), rating)
	} else {
		m.status = "Rating update failed."
	}
}

// refresh recomputes every pane from the session, synchronously. An empty
// session clears the display rather than crashing.
func (m *Model) refresh() {
	s := m.session
	if s.Empty() {
		m.filename = ""
		m.info = ""
		m.main = ""
		m.strip = ""
		return
	}

	name := s.Current()
	if s.IsSelected(s.Index) {
		name = "✓ " + name
	}
	m.filename = "Current image: " + name

	info, err := s.ReadInfo(s.CurrentPath())
	if err != nil {
		klog.Errorf("reading metadata: %v", err)
		m.info = "No metadata available"
	} else {
		m.info = info.InfoLine()
	}

	m.main = m.renderMain()
	m.strip = m.renderStrip()
}

func (m *Model) mainGrid() (int, int) {
	cols := m.width - 4
	if cols > 80 {
		cols = 80
	}
	if cols < 20 {
		cols = 20
	}
	rows := m.height - 16
	if rows > 20 {
		rows = 20
	}
	if rows < 8 {
		rows = 8
	}
	return cols, rows
}

func (m *Model) renderMain() string {
	s := m.session
	cols, rows := m.mainGrid()

	style := mainStyle
	if s.IsSelected(s.Index) {
		style = mainSelectedStyle
	}

	img, err := m.slotImage(s.Index, s.Config.MainSize)
	if err != nil {
		klog.V(1).Infof("main preview: %v", err)
		return style.Render(placeholder(cols, rows))
	}
	return style.Render(imageCells(img, cols, rows))
}

func (m *Model) renderStrip() string {
	s := m.session
	start, end := s.Window(stripSlots)

	slots := make([]string, 0, stripSlots)
	for i := start; i < end; i++ {
		style := slotBorder(i == s.Index, s.IsSelected(i))

		img, err := m.slotImage(i, s.Config.ThumbSize)
		if err != nil {
			klog.V(1).Infof("thumb preview: %v", err)
			slots = append(slots, style.Render(placeholder(thumbCols, thumbRows)))
			continue
		}
		slots = append(slots, style.Render(imageCells(img, thumbCols, thumbRows)))
	}
	for len(slots) < stripSlots {
		slots = append(slots, placeholder(thumbCols, thumbRows))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, slots...)
}

func (m *Model) slotImage(i int, size viewer.Size) (image.Image, error) {
	path, err := m.session.CachedPreview(m.session.Path(i), size)
	if err != nil {
		return nil, err
	}
	return imgio.Open(path)
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.srcInput.View())
	b.WriteByte('\n')
	b.WriteString(m.destInput.View())
	b.WriteByte('\n')

	if m.session.Empty() {
		b.WriteString("\n")
		b.WriteString(infoStyle.Render("No images loaded. Enter a source path and press enter."))
		b.WriteByte('\n')
	} else {
		b.WriteString(labelStyle.Render(m.filename))
		b.WriteByte('\n')
		b.WriteString(m.main)
		b.WriteByte('\n')
		b.WriteString(infoStyle.Render(m.info))
		b.WriteByte('\n')
		b.WriteString(countStyle.Render(fmt.Sprintf("Selected: %d", m.session.SelectedCount())))
		b.WriteByte('\n')
		b.WriteString(m.strip)
		b.WriteByte('\n')
	}

	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteByte('\n')
	}
	b.WriteString(helpStyle.Render("←/→ navigate · enter select · c copy · 0-5 rate · tab paths · q quit"))

	return b.String()
}

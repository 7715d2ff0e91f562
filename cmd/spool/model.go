package main

import (
	"errors"
	"log"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/gen2brain/beeep"

	"github.com/pes18fan/spool/display"
	"github.com/pes18fan/spool/ingest"
	"github.com/pes18fan/spool/player"
	"github.com/pes18fan/spool/playlist"
)

const seekStep = 5 * time.Second

type model struct {
	ctrl     *player.Controller
	handle   player.Handle
	renderer *display.Renderer
	watcher  *ingest.Watcher
	opts     ingest.Options
	notify   bool

	keys    keyMap
	help    help.Model
	picker  filepicker.Model
	picking bool

	cursor     int
	notice     string
	lastLoaded string
}

// tea message types for things arriving from outside the UI
type eventMsg struct{ ev player.Event }
type droppedMsg struct{ path string }
type watchErrMsg struct{ err error }

func listenForEvents(events <-chan player.Event) tea.Cmd {
	return func() tea.Msg {
		return eventMsg{<-events}
	}
}

func listenForDrops(w *ingest.Watcher) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case path, ok := <-w.Paths():
			if !ok {
				return nil
			}
			return droppedMsg{path}
		case err := <-w.Errors():
			return watchErrMsg{err}
		}
	}
}

func notifyTrack(name string) tea.Cmd {
	return func() tea.Msg {
		if err := beeep.Notify("spool", "Now playing: "+name, ""); err != nil {
			log.Println("failed to send notification:", err)
		}
		return nil
	}
}

func newModel(ctrl *player.Controller, handle player.Handle, watcher *ingest.Watcher, opts ingest.Options, notify bool) model {
	fp := filepicker.New()
	fp.AllowedTypes = ingest.Extensions
	if wd, err := os.Getwd(); err == nil {
		fp.CurrentDirectory = wd
	}

	return model{
		ctrl:     ctrl,
		handle:   handle,
		renderer: display.NewRenderer(),
		watcher:  watcher,
		opts:     opts,
		notify:   notify,
		keys:     defaultKeyMap(),
		help:     help.New(),
		picker:   fp,
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(
		listenForEvents(m.handle.Events()),
		listenForDrops(m.watcher),
	)
}

// apply hands ev to the controller. Failures never stop the program; they
// are logged and shown on the notice line.
func (m *model) apply(ev player.Event) tea.Cmd {
	if err := m.ctrl.Dispatch(ev); err != nil {
		log.Printf("%T failed: %v", ev, err)
		m.notice = noticeFor(err)
	}
	return m.trackChanged()
}

func noticeFor(err error) string {
	switch {
	case errors.Is(err, playlist.ErrEmptyPlaylist):
		return "Playlist is empty, press o to add files"
	case errors.Is(err, playlist.ErrIndexOutOfRange):
		return ""
	case errors.Is(err, player.ErrUnknownDuration):
		return "Track length not known yet"
	default:
		return err.Error()
	}
}

// trackChanged moves the cursor onto a newly loaded track and sends a
// notification for it if asked to.
func (m *model) trackChanged() tea.Cmd {
	t, ok := m.ctrl.Loaded()
	if !ok || t.ID == m.lastLoaded {
		return nil
	}
	m.lastLoaded = t.ID
	if i := m.ctrl.Status().Current; i >= 0 {
		m.cursor = i
	}
	if m.notify {
		return notifyTrack(t.Name)
	}
	return nil
}

func (m *model) addPaths(paths []string) tea.Cmd {
	items, err := ingest.Items(paths, m.opts)
	if err != nil {
		log.Println("failed to add some files:", err)
		m.notice = err.Error()
	}
	if len(items) == 0 {
		return nil
	}
	log.Println("adding", len(items), "tracks")
	return m.apply(player.TracksAdded{Items: items})
}

func (m *model) moveCursor(delta int) {
	n := len(m.ctrl.Status().Tracks)
	if n == 0 {
		m.cursor = 0
		return
	}
	m.cursor = min(max(m.cursor+delta, 0), n-1)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		cmd := m.apply(msg.ev)
		return m, tea.Batch(cmd, listenForEvents(m.handle.Events()))
	case droppedMsg:
		cmd := m.addPaths([]string{msg.path})
		return m, tea.Batch(cmd, listenForDrops(m.watcher))
	case watchErrMsg:
		log.Println("watcher error:", msg.err)
		m.notice = msg.err.Error()
		return m, listenForDrops(m.watcher)
	case tea.WindowSizeMsg:
		m.renderer.SetSize(msg.Width, msg.Height)
		m.help.Width = msg.Width
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		return m, cmd
	case tea.MouseMsg:
		if m.picking || msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		if f, ok := m.renderer.SeekFraction(msg.X, msg.Y); ok {
			return m, m.apply(player.SeekRequested{Fraction: f})
		}
		if i, ok := m.renderer.EntryAt(msg.Y); ok {
			m.cursor = i
			return m, m.apply(player.TrackSelected{Index: i})
		}
		return m, nil
	case tea.KeyMsg:
		if m.picking {
			return m.updatePicker(msg)
		}
		return m.updateKeys(msg)
	}

	// everything else belongs to the file picker (directory listings)
	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	return m, cmd
}

func (m model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.notice = ""

	// A terminal turns dropped files into a paste of their paths. Pasted
	// text is never read as key presses.
	if msg.Paste {
		paths, err := ingest.ParseDrop(string(msg.Runes))
		if err != nil {
			m.notice = err.Error()
			return m, nil
		}
		return m, m.addPaths(paths)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Play):
		return m, m.apply(player.PlayRequested{})
	case key.Matches(msg, m.keys.Pause):
		return m, m.apply(player.PauseRequested{})
	case key.Matches(msg, m.keys.Stop):
		return m, m.apply(player.StopRequested{})
	case key.Matches(msg, m.keys.Next):
		return m, m.apply(player.NextRequested{})
	case key.Matches(msg, m.keys.Prev):
		return m, m.apply(player.PrevRequested{})
	case key.Matches(msg, m.keys.Shuffle):
		cmd := m.apply(player.ShuffleRequested{})
		m.cursor = max(m.ctrl.Status().Current, 0)
		return m, cmd
	case key.Matches(msg, m.keys.SeekBack):
		return m, m.apply(player.SkipRequested{Delta: -seekStep})
	case key.Matches(msg, m.keys.SeekFwd):
		return m, m.apply(player.SkipRequested{Delta: seekStep})
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.Select):
		return m, m.apply(player.TrackSelected{Index: m.cursor})
	case key.Matches(msg, m.keys.Open):
		m.picking = true
		return m, m.picker.Init()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m model) updatePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "esc" {
		m.picking = false
		return m, nil
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)

	if ok, path := m.picker.DidSelectFile(msg); ok {
		m.picking = false
		return m, tea.Batch(cmd, m.addPaths([]string{path}))
	}
	return m, cmd
}

func (m model) View() string {
	if m.picking {
		return "\n  Add a file (esc to go back)\n\n" + m.picker.View()
	}
	snap := display.Project(m.ctrl.Status())
	return m.renderer.Render(snap, m.cursor, m.notice, "  "+m.help.View(m.keys))
}

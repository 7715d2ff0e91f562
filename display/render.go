package display

import (
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

const (
	indent       = 2
	minBarWidth  = 10
	minListRows  = 3
	chromeHeight = 14 // rows taken by everything except the track list
)

var (
	headingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("87"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	activeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	noticeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

// Renderer draws snapshots and remembers where it put the clickable parts.
type Renderer struct {
	width  int
	height int
	bar    progress.Model

	barRow   int
	listRow  int
	offset   int // index of the first visible list entry
	visible  int
	shown    int // entries actually drawn
	rendered bool
}

func NewRenderer() *Renderer {
	return &Renderer{
		width:  80,
		height: 24,
		bar:    progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
	}
}

func (r *Renderer) SetSize(width, height int) {
	r.width = width
	r.height = height
}

func (r *Renderer) barWidth() int {
	return max(r.width-2*indent, minBarWidth)
}

func (r *Renderer) listRows() int {
	return max(r.height-chromeHeight, minListRows)
}

// Render draws s. cursor is the list entry under the keyboard cursor,
// notice an optional one-line message and footer is printed last.
func (r *Renderer) Render(s Snapshot, cursor int, notice, footer string) string {
	pad := strings.Repeat(" ", indent)
	var lines []string

	lines = append(lines, pad+headingStyle.Render("spool"), "")

	now := s.NowPlaying
	if now == "" {
		now = "Nothing loaded"
	}
	lines = append(lines, pad+infoStyle.Render(r.truncate(now)))
	lines = append(lines, pad+s.State+dimStyle.Render("  ·  [z] "+s.ShuffleLabel), "")

	r.bar.Width = r.barWidth()
	r.barRow = len(lines)
	lines = append(lines, pad+r.bar.ViewAs(s.Progress/100))
	lines = append(lines, pad+s.Elapsed+" / "+s.Total, "")

	lines = append(lines, pad+dimStyle.Render(s.Count))

	r.visible = r.listRows()
	r.scrollTo(cursor, len(s.Entries))
	r.listRow = len(lines)
	end := min(r.offset+r.visible, len(s.Entries))
	r.shown = end - r.offset
	for i := r.offset; i < end; i++ {
		lines = append(lines, r.entryLine(s.Entries[i], i == cursor))
	}

	lines = append(lines, "")
	if notice != "" {
		lines = append(lines, pad+noticeStyle.Render(r.truncate(notice)))
	}
	if footer != "" {
		lines = append(lines, footer)
	}

	r.rendered = true
	return strings.Join(lines, "\n")
}

func (r *Renderer) entryLine(e Entry, underCursor bool) string {
	marker := "  "
	if underCursor {
		marker = "> "
	}
	name := r.truncate(e.Name)
	if e.Active {
		return marker + activeStyle.Render("♪ "+name)
	}
	return marker + "  " + name
}

func (r *Renderer) truncate(s string) string {
	return runewidth.Truncate(s, max(r.width-2*indent-2, 1), "…")
}

// scrollTo keeps cursor inside the visible window.
func (r *Renderer) scrollTo(cursor, n int) {
	if cursor < r.offset {
		r.offset = cursor
	}
	if cursor >= r.offset+r.visible {
		r.offset = cursor - r.visible + 1
	}
	r.offset = min(r.offset, max(n-r.visible, 0))
	r.offset = max(r.offset, 0)
}

// SeekFraction maps a click at column x, row y to a position along the
// progress bar. ok is false when the click missed the bar.
func (r *Renderer) SeekFraction(x, y int) (fraction float64, ok bool) {
	w := r.barWidth()
	if !r.rendered || y != r.barRow || x < indent || x >= indent+w {
		return 0, false
	}
	return float64(x-indent) / float64(w), true
}

// EntryAt maps a click at row y to a list index.
func (r *Renderer) EntryAt(y int) (index int, ok bool) {
	if !r.rendered || y < r.listRow || y >= r.listRow+r.shown {
		return 0, false
	}
	return r.offset + y - r.listRow, true
}

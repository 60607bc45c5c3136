package gui

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"codeberg.org/snonux/ttsuz/internal/history"
)

// HistoryViewer is a widget that lists recent conversions, newest first
type HistoryViewer struct {
	widget.BaseWidget

	container  *fyne.Container
	title      *widget.Label
	logEntry   *widget.Entry
	scrollView *container.Scroll

	mu    sync.Mutex
	lines []string
}

// NewHistoryViewer creates a new history viewer widget
func NewHistoryViewer() *HistoryViewer {
	v := &HistoryViewer{}

	// Read-only multiline entry keeps the text selectable
	v.logEntry = widget.NewMultiLineEntry()
	v.logEntry.Disable()
	v.logEntry.Wrapping = fyne.TextWrapWord

	v.scrollView = container.NewScroll(v.logEntry)
	v.scrollView.SetMinSize(fyne.NewSize(0, 300))
	v.scrollView.Direction = container.ScrollBoth

	v.title = widget.NewLabel("")
	v.title.TextStyle = fyne.TextStyle{Bold: true}

	v.container = container.NewBorder(v.title, nil, nil, nil, v.scrollView)

	v.ExtendBaseWidget(v)
	return v
}

// CreateRenderer implements fyne.Widget
func (v *HistoryViewer) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(v.container)
}

// SetTitle sets the heading above the list
func (v *HistoryViewer) SetTitle(title string) {
	v.title.SetText(title)
}

// SetEntries shows entries, or placeholder when there are none. Must be
// called on the UI thread.
func (v *HistoryViewer) SetEntries(entries []history.Entry, placeholder string) {
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, formatEntry(e))
	}

	v.mu.Lock()
	v.lines = lines
	v.mu.Unlock()

	if len(lines) == 0 {
		v.SetMessage(placeholder)
		return
	}
	v.logEntry.SetText(strings.Join(lines, "\n"))
	v.scrollView.Offset = fyne.NewPos(0, 0)
	v.scrollView.Refresh()
}

// SetMessage replaces the list with a single message
func (v *HistoryViewer) SetMessage(message string) {
	v.logEntry.SetText(message)
	v.scrollView.Offset = fyne.NewPos(0, 0)
	v.scrollView.Refresh()
}

// Lines returns the formatted entries currently shown
func (v *HistoryViewer) Lines() []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]string(nil), v.lines...)
}

func formatEntry(e history.Entry) string {
	status := fmt.Sprintf("%d", e.StatusCode)
	if e.StatusCode == 0 {
		status = "---"
	}

	line := fmt.Sprintf("[%s] %s %s: %s",
		e.CreatedAt.Format("2006-01-02 15:04:05"), status, e.Provider, e.Normalized)
	if e.AudioFile != "" {
		line += " (" + filepath.Base(e.AudioFile) + ")"
	}
	if e.Error != "" && !e.OK() {
		line += " ! " + e.Error
	}
	return line
}

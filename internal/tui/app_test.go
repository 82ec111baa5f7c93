package tui_test

import (
	"errors"
	"io/fs"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/nikbrunner/bmdir/internal/model"
	"github.com/nikbrunner/bmdir/internal/picker"
	"github.com/nikbrunner/bmdir/internal/preview"
	"github.com/nikbrunner/bmdir/internal/tui"
	"gotest.tools/v3/assert"
)

// fakePreviewer counts preview loads and fails for selected paths.
// Without a text set for the path it previews "children of <path>".
type fakePreviewer struct {
	calls int
	fail  map[string]bool
	text  map[string]string
}

func (f *fakePreviewer) Preview(path string) preview.Result {
	f.calls++
	if f.fail[path] {
		return preview.Result{Path: path, Err: fs.ErrPermission}
	}
	if text, ok := f.text[path]; ok {
		return preview.Result{Path: path, Text: text}
	}
	return preview.Result{Path: path, Text: "children of " + path}
}

// fakeClipboard records copied text.
type fakeClipboard struct {
	copied []string
	err    error
}

func (c *fakeClipboard) WriteAll(text string) error {
	if c.err != nil {
		return c.err
	}
	c.copied = append(c.copied, text)
	return nil
}

func newTestApp(t *testing.T, pv *fakePreviewer, clip *fakeClipboard, paths ...string) tui.App {
	t.Helper()
	state, err := picker.New(model.NewBookmarkList(paths), picker.Options{Previewer: pv})
	assert.NilError(t, err)

	params := tui.AppParams{State: state}
	if clip != nil {
		params.Clipboard = clip.WriteAll
	}
	return tui.NewApp(params).WithDimensions(80, 24)
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(t *testing.T, app tui.App, msgs ...tea.Msg) (tui.App, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var updated tea.Model
		updated, cmd = app.Update(msg)
		app = updated.(tui.App)
	}
	return app, cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestApp_EscapeThenNavigate(t *testing.T) {
	app := newTestApp(t, &fakePreviewer{}, nil, "/a", "/b", "/c")

	app, cmd := send(t, app,
		tea.KeyMsg{Type: tea.KeyEsc},
		tea.KeyMsg{Type: tea.KeyDown},
		tea.KeyMsg{Type: tea.KeyDown},
	)

	assert.Assert(t, cmd == nil)
	assert.Equal(t, app.State().Index(), 2)
	assert.Equal(t, app.State().Mode(), picker.ModeNavigate)
}

func TestApp_NavigateLettersWrap(t *testing.T) {
	app := newTestApp(t, &fakePreviewer{}, nil, "/a", "/b", "/c")

	app, _ = send(t, app, tea.KeyMsg{Type: tea.KeyEsc}, keyRunes("k"))
	assert.Equal(t, app.State().Index(), 2)

	app, _ = send(t, app, keyRunes("j"))
	assert.Equal(t, app.State().Index(), 0)
}

func TestApp_FilterTyping(t *testing.T) {
	app := newTestApp(t, &fakePreviewer{}, nil, "/srv/web", "/etc/nginx", "/var/log/nginx")

	app, _ = send(t, app, keyRunes("n"), keyRunes("g"))

	assert.Equal(t, app.State().Query(), "ng")
	items := app.Items()
	assert.Equal(t, len(items), 2)
	assert.Equal(t, items[0].Path, "/etc/nginx")
	assert.Equal(t, items[1].Index, 2)

	app, _ = send(t, app, tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Equal(t, app.State().Query(), "n")
}

func TestApp_FilterSpaceAndAlt(t *testing.T) {
	app := newTestApp(t, &fakePreviewer{}, nil, "/a")

	app, _ = send(t, app,
		tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}},
		tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}, Alt: true},
	)

	assert.Equal(t, app.State().Query(), " ")
}

func TestApp_EnterQuitsWithSelection(t *testing.T) {
	app := newTestApp(t, &fakePreviewer{}, nil, "/a", "/b")

	app, cmd := send(t, app, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Assert(t, isQuit(cmd))
	got, ok := app.Result()
	assert.Assert(t, ok)
	assert.Equal(t, got, "/b")
}

func TestApp_QuitWithoutSelection(t *testing.T) {
	app := newTestApp(t, &fakePreviewer{}, nil, "/a", "/b")

	app, cmd := send(t, app, tea.KeyMsg{Type: tea.KeyEsc}, keyRunes("q"))

	assert.Assert(t, isQuit(cmd))
	_, ok := app.Result()
	assert.Assert(t, !ok)
}

func TestApp_CtrlCQuits(t *testing.T) {
	app := newTestApp(t, &fakePreviewer{}, nil, "/a")

	app, cmd := send(t, app, tea.KeyMsg{Type: tea.KeyCtrlC})

	assert.Assert(t, isQuit(cmd))
	_, ok := app.Result()
	assert.Assert(t, !ok)
}

func TestApp_QIsTextInFilterMode(t *testing.T) {
	app := newTestApp(t, &fakePreviewer{}, nil, "/a")

	app, cmd := send(t, app, keyRunes("q"))

	assert.Assert(t, cmd == nil)
	assert.Equal(t, app.State().Query(), "q")
}

func TestApp_YankCopiesPath(t *testing.T) {
	clip := &fakeClipboard{}
	app := newTestApp(t, &fakePreviewer{}, clip, "/a", "/b")

	app, cmd := send(t, app, tea.KeyMsg{Type: tea.KeyEsc}, keyRunes("j"), keyRunes("y"))
	assert.Assert(t, cmd != nil)

	app, _ = send(t, app, cmd())

	assert.DeepEqual(t, clip.copied, []string{"/b"})
	assert.Equal(t, app.MessageText(), "Copied /b")
	assert.Assert(t, !app.State().Done())

	// The message is cleared by the next key
	app, _ = send(t, app, keyRunes("j"))
	assert.Equal(t, app.MessageText(), "")
}

func TestApp_YankFailureShowsMessage(t *testing.T) {
	clip := &fakeClipboard{err: errors.New("no clipboard")}
	app := newTestApp(t, &fakePreviewer{}, clip, "/a")

	app, cmd := send(t, app, tea.KeyMsg{Type: tea.KeyEsc}, keyRunes("y"))
	app, _ = send(t, app, cmd())

	assert.Equal(t, app.MessageText(), "Copy failed: no clipboard")
}

func TestApp_WindowSize(t *testing.T) {
	app := newTestApp(t, &fakePreviewer{}, nil, "/a")

	app, cmd := send(t, app, tea.WindowSizeMsg{Width: 120, Height: 40})

	assert.Assert(t, cmd == nil)
	assert.Equal(t, app.State().Index(), 0)
}

func TestApp_RedrawsDoNotReloadPreview(t *testing.T) {
	pv := &fakePreviewer{}
	app := newTestApp(t, pv, nil, "/a", "/b")

	for i := 0; i < 10; i++ {
		_ = app.View()
		app, _ = send(t, app, tea.WindowSizeMsg{Width: 80 + i, Height: 24})
	}
	assert.Equal(t, pv.calls, 1)

	app, _ = send(t, app, tea.KeyMsg{Type: tea.KeyDown})
	for i := 0; i < 10; i++ {
		_ = app.View()
	}
	assert.Equal(t, pv.calls, 2)
}

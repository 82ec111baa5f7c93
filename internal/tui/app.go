package tui

import (
	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-logr/logr"
	"github.com/nikbrunner/bmdir/internal/picker"
	"github.com/nikbrunner/bmdir/internal/tui/layout"
)

// App is the bubbletea model for the bookmark picker.
//
// All selection logic lives in picker.State. App only translates key
// messages, carries out effects and draws the cached state.
type App struct {
	state        *picker.State
	styles       Styles
	layoutConfig layout.LayoutConfig
	logger       logr.Logger
	clipboard    func(string) error

	// Status line
	messageText string
	messageType MessageType

	// Last path whose preview failure was logged
	loggedPreview string

	// Window dimensions
	width  int
	height int
}

// AppParams holds parameters for creating a new App.
type AppParams struct {
	State        *picker.State
	Styles       *Styles              // optional, uses default if nil
	LayoutConfig *layout.LayoutConfig // optional, uses default if nil
	Logger       logr.Logger          // optional, zero value discards
	Clipboard    func(string) error   // optional, uses the system clipboard if nil
}

// NewApp creates a new App with the given parameters.
func NewApp(params AppParams) App {
	styles := DefaultStyles()
	if params.Styles != nil {
		styles = *params.Styles
	}

	layoutConfig := layout.DefaultConfig()
	if params.LayoutConfig != nil {
		layoutConfig = *params.LayoutConfig
	}

	logger := params.Logger
	if logger.GetSink() == nil {
		logger = logr.Discard()
	}

	clip := params.Clipboard
	if clip == nil {
		clip = clipboard.WriteAll
	}

	app := App{
		state:        params.State,
		styles:       styles,
		layoutConfig: layoutConfig,
		logger:       logger,
		clipboard:    clip,
		width:        80,
		height:       24,
	}
	app.logPreview()
	return app
}

// WithDimensions returns a copy of the app with the given window size.
func (a App) WithDimensions(width, height int) App {
	a.width = width
	a.height = height
	return a
}

// State returns the underlying selection state.
func (a App) State() *picker.State {
	return a.state
}

// Result returns the chosen path, or false if the picker was cancelled.
func (a App) Result() (string, bool) {
	return a.state.Result()
}

// MessageText returns the current status message.
func (a App) MessageText() string {
	return a.messageText
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case yankMsg:
		if msg.err != nil {
			a.logger.Error(msg.err, "copy to clipboard failed", "path", msg.path)
			a.setMessage(MessageError, "Copy failed: "+msg.err.Error())
		} else {
			a.setMessage(MessageSuccess, "Copied "+msg.path)
		}
		return a, nil

	case tea.KeyMsg:
		a.clearMessage()
		k := translateKey(msg)

		switch a.state.Apply(k) {
		case picker.EffectSelect:
			path, _ := a.state.Result()
			a.logger.V(1).Info("bookmark selected", "path", path)
			return a, tea.Quit

		case picker.EffectCancel:
			a.logger.V(1).Info("picker cancelled", "key", k.Code)
			return a, tea.Quit

		case picker.EffectYank:
			path, _ := a.state.Current()
			return a, a.yankCmd(path)
		}

		a.logPreview()
	}

	return a, nil
}

// yankCmd copies path to the clipboard off the update loop.
func (a App) yankCmd(path string) tea.Cmd {
	clip := a.clipboard
	return func() tea.Msg {
		return yankMsg{path: path, err: clip(path)}
	}
}

// logPreview records a failed preview once per path.
func (a *App) logPreview() {
	pv := a.state.Preview()
	if pv.OK() || pv.Path == a.loggedPreview {
		return
	}
	a.loggedPreview = pv.Path
	a.logger.V(1).Info("preview unavailable", "path", pv.Path, "error", pv.Err.Error())
}

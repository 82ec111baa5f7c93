package tui

// MessageType distinguishes the kinds of status messages.
type MessageType int

const (
	MessageInfo MessageType = iota
	MessageSuccess
	MessageError
)

// yankMsg reports the outcome of copying a path to the clipboard.
type yankMsg struct {
	path string
	err  error
}

// setMessage shows a status message until the next key press.
func (a *App) setMessage(msgType MessageType, text string) {
	a.messageType = msgType
	a.messageText = text
}

// clearMessage removes the status message.
func (a *App) clearMessage() {
	a.messageType = MessageInfo
	a.messageText = ""
}

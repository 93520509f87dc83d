package devserver

// MessageType names a websocket message.
type MessageType string

const (
	MessageEvent  MessageType = "event"
	MessageRender MessageType = "render"
	MessageError  MessageType = "error"
)

// ClientMessage is sent by the browser when a DOM event fires.
type ClientMessage struct {
	Type  MessageType `json:"type"`
	ID    uint64      `json:"id"`
	Event string      `json:"event"`
	Value any         `json:"value,omitempty"`
}

// ServerMessage is sent to the browser.
type ServerMessage struct {
	Type MessageType `json:"type"`

	// HTML is the body content for render messages.
	HTML string `json:"html,omitempty"`

	// Ops counts the renderer mutations by op name since the last render.
	Ops map[string]int `json:"ops,omitempty"`

	Error string `json:"error,omitempty"`
}

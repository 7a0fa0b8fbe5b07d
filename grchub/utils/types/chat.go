// grchub/utils/types/chat.go
package types

import "strings"

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Part is one piece of a message. Only text parts exist today; the
// type field keeps the wire shape open for other kinds later.
type Part struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type Message struct {
	ID    string `json:"id"`
	Role  string `json:"role"`
	Parts []Part `json:"parts"`
}

// Text concatenates the message's text parts.
func (m Message) Text() string {
	var b strings.Builder
	for _, p := range m.Parts {
		if p.Type == "text" {
			b.WriteString(p.Text)
		}
	}
	return b.String()
}

func TextMessage(id, role, text string) Message {
	return Message{
		ID:    id,
		Role:  role,
		Parts: []Part{{Type: "text", Text: text}},
	}
}

// ChatPayload is the POST /api/chat request body. Category is empty
// for "all categories".
type ChatPayload struct {
	Messages []Message `json:"messages"`
	Category string    `json:"category,omitempty"`
}

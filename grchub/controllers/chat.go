// grchub/controllers/chat.go
package controllers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"grchub/grchub/knowledge"
	"grchub/grchub/services/llm"
	"grchub/grchub/utils/types"
)

// ErrInvalidRequest marks payload problems found before any model
// call. Routes map it to a 400.
var ErrInvalidRequest = errors.New("invalid chat request")

type ChatController struct {
	store *knowledge.Store
	llm   llm.Client
}

func NewChatController(store *knowledge.Store, client llm.Client) *ChatController {
	return &ChatController{store: store, llm: client}
}

func validatePayload(payload types.ChatPayload) (knowledge.Category, error) {
	if len(payload.Messages) == 0 {
		return "", fmt.Errorf("%w: no messages", ErrInvalidRequest)
	}
	for _, m := range payload.Messages {
		if m.Role != types.RoleUser && m.Role != types.RoleAssistant {
			return "", fmt.Errorf("%w: unknown role %q", ErrInvalidRequest, m.Role)
		}
	}
	if strings.TrimSpace(payload.Messages[len(payload.Messages)-1].Text()) == "" {
		return "", fmt.Errorf("%w: empty message", ErrInvalidRequest)
	}
	if payload.Category == "" {
		return "", nil
	}
	category, err := knowledge.ParseCategory(payload.Category)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	return category, nil
}

// toModelMessages flattens the conversation's text parts into the
// role/content turns the model call expects, prefixed by the system
// prompt for the selected category.
func (c *ChatController) toModelMessages(payload types.ChatPayload, category knowledge.Category) []llm.Message {
	msgs := make([]llm.Message, 0, len(payload.Messages)+1)
	msgs = append(msgs, llm.Message{Role: "system", Content: c.store.SystemPrompt(category)})
	for _, m := range payload.Messages {
		msgs = append(msgs, llm.Message{Role: m.Role, Content: m.Text()})
	}
	return msgs
}

// ChatStream validates the conversation, injects the knowledge base
// context, and starts the streaming completion. The immediate error is
// either ErrInvalidRequest or an upstream connect failure; after that,
// deltas flow on ch and a mid-stream failure on errCh.
func (c *ChatController) ChatStream(ctx context.Context, payload types.ChatPayload) (<-chan string, <-chan error, error) {
	category, err := validatePayload(payload)
	if err != nil {
		return nil, nil, err
	}
	return c.llm.RunStream(ctx, llm.ChatRequest{
		Messages: c.toModelMessages(payload, category),
	})
}

// Chat is the non-streaming variant, used by the websocket transport
// fallback and handy for scripting.
func (c *ChatController) Chat(ctx context.Context, payload types.ChatPayload) (string, error) {
	category, err := validatePayload(payload)
	if err != nil {
		return "", err
	}
	return c.llm.Run(ctx, llm.ChatRequest{
		Messages: c.toModelMessages(payload, category),
	})
}

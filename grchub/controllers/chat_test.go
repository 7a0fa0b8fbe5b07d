package controllers

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grchub/grchub/knowledge"
	"grchub/grchub/services/llm"
	"grchub/grchub/utils/types"
)

type fakeLLM struct {
	requests  []llm.ChatRequest
	deltas    []string
	streamErr error
	startErr  error
}

func (f *fakeLLM) Run(ctx context.Context, req llm.ChatRequest) (string, error) {
	f.requests = append(f.requests, req)
	if f.startErr != nil {
		return "", f.startErr
	}
	return strings.Join(f.deltas, ""), nil
}

func (f *fakeLLM) RunStream(ctx context.Context, req llm.ChatRequest) (<-chan string, <-chan error, error) {
	f.requests = append(f.requests, req)
	if f.startErr != nil {
		return nil, nil, f.startErr
	}
	ch := make(chan string, len(f.deltas))
	errCh := make(chan error, 1)
	for _, d := range f.deltas {
		ch <- d
	}
	if f.streamErr != nil {
		errCh <- f.streamErr
	}
	close(ch)
	close(errCh)
	return ch, errCh, nil
}

func chatTestStore(t *testing.T) *knowledge.Store {
	t.Helper()
	s, err := knowledge.NewStore([]knowledge.Entry{
		{ID: "RSK-001", Category: knowledge.CategoryRisks, Title: "Vendor Breach", Severity: "critical", Status: "active", Description: "d", LastUpdated: "2026-02-01"},
		{ID: "CMP-001", Category: knowledge.CategoryCompliance, Title: "GDPR Gap", Severity: "high", Status: "pending", Description: "d", LastUpdated: "2026-02-03"},
	})
	require.NoError(t, err)
	return s
}

func userMessage(text string) types.Message {
	return types.TextMessage("m1", types.RoleUser, text)
}

func TestChatStreamRejectsUnknownCategory(t *testing.T) {
	fake := &fakeLLM{deltas: []string{"hi"}}
	ctrl := NewChatController(chatTestStore(t), fake)

	_, _, err := ctrl.ChatStream(context.Background(), types.ChatPayload{
		Messages: []types.Message{userMessage("hello")},
		Category: "audits",
	})
	require.ErrorIs(t, err, ErrInvalidRequest)
	assert.Empty(t, fake.requests, "model must not be called for a bad category")
}

func TestChatStreamRejectsEmptyConversation(t *testing.T) {
	fake := &fakeLLM{}
	ctrl := NewChatController(chatTestStore(t), fake)

	_, _, err := ctrl.ChatStream(context.Background(), types.ChatPayload{})
	require.ErrorIs(t, err, ErrInvalidRequest)
	assert.Empty(t, fake.requests)
}

func TestChatStreamRejectsUnknownRole(t *testing.T) {
	fake := &fakeLLM{}
	ctrl := NewChatController(chatTestStore(t), fake)

	_, _, err := ctrl.ChatStream(context.Background(), types.ChatPayload{
		Messages: []types.Message{types.TextMessage("m1", "system", "sneaky")},
	})
	require.ErrorIs(t, err, ErrInvalidRequest)
	assert.Empty(t, fake.requests)
}

func TestChatStreamRejectsBlankMessage(t *testing.T) {
	fake := &fakeLLM{}
	ctrl := NewChatController(chatTestStore(t), fake)

	_, _, err := ctrl.ChatStream(context.Background(), types.ChatPayload{
		Messages: []types.Message{userMessage("  \n ")},
	})
	require.ErrorIs(t, err, ErrInvalidRequest)
	assert.Empty(t, fake.requests)
}

func TestChatStreamBuildsSystemPrompt(t *testing.T) {
	fake := &fakeLLM{deltas: []string{"Answer"}}
	ctrl := NewChatController(chatTestStore(t), fake)

	ch, errCh, err := ctrl.ChatStream(context.Background(), types.ChatPayload{
		Messages: []types.Message{
			userMessage("what are my risks?"),
		},
		Category: "risks",
	})
	require.NoError(t, err)

	var got []string
	for d := range ch {
		got = append(got, d)
	}
	require.NoError(t, <-errCh)
	assert.Equal(t, []string{"Answer"}, got)

	require.Len(t, fake.requests, 1)
	msgs := fake.requests[0].Messages
	require.Len(t, msgs, 2)
	assert.Equal(t, "system", msgs[0].Role)
	assert.Contains(t, msgs[0].Content, "=== KNOWLEDGE BASE ===")
	assert.Contains(t, msgs[0].Content, "[RSK-001]")
	assert.NotContains(t, msgs[0].Content, "[CMP-001]", "category filter must narrow the context")
	assert.Equal(t, llm.Message{Role: "user", Content: "what are my risks?"}, msgs[1])
}

func TestChatStreamFlattensConversationTurns(t *testing.T) {
	fake := &fakeLLM{deltas: []string{"ok"}}
	ctrl := NewChatController(chatTestStore(t), fake)

	_, _, err := ctrl.ChatStream(context.Background(), types.ChatPayload{
		Messages: []types.Message{
			types.TextMessage("m1", types.RoleUser, "first"),
			{ID: "m2", Role: types.RoleAssistant, Parts: []types.Part{
				{Type: "text", Text: "part one "},
				{Type: "text", Text: "part two"},
			}},
			types.TextMessage("m3", types.RoleUser, "second"),
		},
	})
	require.NoError(t, err)

	msgs := fake.requests[0].Messages
	require.Len(t, msgs, 4)
	assert.Contains(t, msgs[0].Content, "[CMP-001]", "no category filter includes everything")
	assert.Equal(t, "part one part two", msgs[2].Content)
	assert.Equal(t, "second", msgs[3].Content)
}

func TestChatStreamPropagatesUpstreamFailure(t *testing.T) {
	fake := &fakeLLM{startErr: errors.New("provider down")}
	ctrl := NewChatController(chatTestStore(t), fake)

	_, _, err := ctrl.ChatStream(context.Background(), types.ChatPayload{
		Messages: []types.Message{userMessage("hello")},
	})
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrInvalidRequest))
}

func TestChatNonStreaming(t *testing.T) {
	fake := &fakeLLM{deltas: []string{"full ", "answer"}}
	ctrl := NewChatController(chatTestStore(t), fake)

	out, err := ctrl.Chat(context.Background(), types.ChatPayload{
		Messages: []types.Message{userMessage("hello")},
	})
	require.NoError(t, err)
	assert.Equal(t, "full answer", out)
}

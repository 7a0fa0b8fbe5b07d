// grchub/services/llm/llm.go
package llm

import "context"

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatRequest struct {
	Model    string      `json:"model"`
	Messages []Message   `json:"messages"`
	Stream   bool        `json:"stream"`
	Options  interface{} `json:"options,omitempty"`
}

// Client is the single capability this system needs from a language
// model provider: run a completion, or stream one delta at a time.
//
// RunStream returns an error immediately when the upstream call cannot
// be started. Otherwise both channels are live: deltas arrive in
// upstream order, errCh carries at most one mid-stream failure, and
// both close when streaming ends (completion, failure, or ctx cancel).
type Client interface {
	Run(ctx context.Context, req ChatRequest) (string, error)
	RunStream(ctx context.Context, req ChatRequest) (<-chan string, <-chan error, error)
}

// grchub/services/llm/openai_client.go
package llm

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"grchub/grchub/config"
	"grchub/grchub/utils/logging"
)

// OpenAIClient talks to any OpenAI-compatible chat completions API
// (OpenAI, Groq, local gateways). Provider identity is configuration.
type OpenAIClient struct {
	apiKey  string
	baseURL string
	model   string
}

func NewOpenAIClient(cfg config.Config) *OpenAIClient {
	return &OpenAIClient{
		apiKey:  cfg.LLMAPIKey,
		baseURL: strings.TrimRight(cfg.LLMBaseURL, "/") + "/chat/completions",
		model:   cfg.LLMModel,
	}
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type streamResponse struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

func (c *OpenAIClient) post(ctx context.Context, req ChatRequest) (*http.Response, error) {
	if req.Model == "" {
		req.Model = c.model
	}
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	return http.DefaultClient.Do(httpReq)
}

// Run executes a single completion request (non-streaming).
func (c *OpenAIClient) Run(ctx context.Context, req ChatRequest) (string, error) {
	defer logging.LogDuration(ctx, "llm_run")()

	req.Stream = false
	resp, err := c.post(ctx, req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("completion request failed: %s - %s", resp.Status, string(b))
	}

	var parsed completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode completion response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("no content in completion response")
	}
	return parsed.Choices[0].Message.Content, nil
}

// RunStream starts a streaming completion and forwards each delta on
// the returned channel. The channels close on [DONE], EOF, or ctx
// cancellation; a read failure mid-stream is reported on errCh. A
// non-2xx upstream status fails before any delta.
func (c *OpenAIClient) RunStream(ctx context.Context, req ChatRequest) (<-chan string, <-chan error, error) {
	defer logging.LogDuration(ctx, "llm_run_stream")()

	req.Stream = true
	resp, err := c.post(ctx, req)
	if err != nil {
		return nil, nil, err
	}
	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		b, _ := io.ReadAll(resp.Body)
		return nil, nil, fmt.Errorf("stream request failed: %s - %s", resp.Status, string(b))
	}

	ch := make(chan string)
	errCh := make(chan error, 1)

	go func() {
		defer func() {
			close(ch)
			close(errCh)
			resp.Body.Close()
		}()

		reader := bufio.NewReader(resp.Body)

		for {
			select {
			case <-ctx.Done():
				logging.AppLogger.Info("llm stream context cancelled")
				return
			default:
			}

			line, err := reader.ReadString('\n')
			if err != nil {
				if err != io.EOF && ctx.Err() == nil {
					logging.ErrorLogger.Error("llm stream read error", zap.Error(err))
					errCh <- err
				}
				return
			}

			line = strings.TrimSpace(line)
			if line == "" || !strings.HasPrefix(line, "data:") {
				continue
			}

			data := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
			if data == "[DONE]" {
				return
			}

			var chunk streamResponse
			if err := json.Unmarshal([]byte(data), &chunk); err != nil {
				logging.ErrorLogger.Error("llm stream parse error",
					zap.Error(err), zap.String("raw_line", data))
				continue
			}

			for _, choice := range chunk.Choices {
				if choice.Delta.Content == "" {
					continue
				}
				select {
				case ch <- choice.Delta.Content:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return ch, errCh, nil
}

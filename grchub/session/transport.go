// grchub/session/transport.go
package session

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"grchub/grchub/utils/httputils"
	"grchub/grchub/utils/types"
)

// HTTPTransport talks to the server's POST /api/chat SSE endpoint.
type HTTPTransport struct {
	BaseURL string
}

func NewHTTPTransport(baseURL string) *HTTPTransport {
	return &HTTPTransport{BaseURL: strings.TrimRight(baseURL, "/")}
}

func (t *HTTPTransport) Stream(ctx context.Context, payload types.ChatPayload) (<-chan string, <-chan error) {
	ch := make(chan string)
	errCh := make(chan error, 1)

	go func() {
		defer close(ch)
		defer close(errCh)

		body, err := httputils.PostStream(ctx, t.BaseURL+"/api/chat", payload)
		if err != nil {
			errCh <- err
			return
		}
		defer body.Close()

		scanner := bufio.NewScanner(body)
		// the done frame carries the whole assembled response, which can
		// exceed the default 64KB token limit
		scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
		var event string
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			switch {
			case line == "":
				event = ""
			case strings.HasPrefix(line, "event:"):
				event = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
			case strings.HasPrefix(line, "data:"):
				data := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
				switch event {
				case "chunk":
					var chunk struct {
						Text string `json:"text"`
					}
					if err := json.Unmarshal([]byte(data), &chunk); err != nil {
						errCh <- err
						return
					}
					select {
					case ch <- chunk.Text:
					case <-ctx.Done():
						return
					}
				case "error":
					var fail struct {
						Message string `json:"message"`
					}
					if err := json.Unmarshal([]byte(data), &fail); err != nil {
						errCh <- err
						return
					}
					errCh <- fmt.Errorf("stream error: %s", fail.Message)
					return
				case "done":
					return
				}
			}
		}
		if ctx.Err() != nil {
			return
		}
		if err := scanner.Err(); err != nil {
			errCh <- err
			return
		}
		// the server always terminates a healthy stream with a done or
		// error frame; a bare EOF means the response was cut short
		errCh <- errors.New("stream ended before completion")
	}()

	return ch, errCh
}

// grchub/routes/chat.go
package routes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/coder/websocket"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"grchub/grchub/controllers"
	"grchub/grchub/utils/logging"
	"grchub/grchub/utils/types"
)

// SSE frame payloads. One frame per event, flushed immediately:
//   - chunk: partial assistant text {"text": "..."}
//   - done:  full assistant text {"response": "..."}
//   - error: stream failed {"message": "..."}
type SSEChunk struct {
	Text string `json:"text"`
}

type SSEDone struct {
	Response string `json:"response"`
}

type SSEError struct {
	Message string `json:"message"`
}

func writeSSE(w http.ResponseWriter, flusher http.Flusher, event string, payload any) {
	data, _ := json.Marshal(payload)
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data)
	flusher.Flush()
}

// ChatRoutes serves POST / as an SSE stream and /ws as a websocket
// variant of the same contract. timeout bounds the whole exchange.
func ChatRoutes(ctrl *controllers.ChatController, timeout time.Duration) chi.Router {
	r := chi.NewRouter()

	r.Post("/", func(w http.ResponseWriter, req *http.Request) {
		var payload types.ChatPayload
		if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(req.Context(), timeout)
		defer cancel()

		ch, errCh, err := ctrl.ChatStream(ctx, payload)
		if err != nil {
			if errors.Is(err, controllers.ErrInvalidRequest) {
				http.Error(w, err.Error(), http.StatusBadRequest)
			} else {
				logging.ErrorLogger.Error("chat upstream start failed", zap.Error(err))
				http.Error(w, err.Error(), http.StatusBadGateway)
			}
			return
		}

		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, "streaming not supported", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.Header().Set("X-Accel-Buffering", "no")

		var full strings.Builder
		for delta := range ch {
			full.WriteString(delta)
			writeSSE(w, flusher, "chunk", SSEChunk{Text: delta})
		}
		if err := <-errCh; err != nil {
			writeSSE(w, flusher, "error", SSEError{Message: err.Error()})
			return
		}
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			writeSSE(w, flusher, "error", SSEError{Message: "response timed out"})
			return
		}
		if ctx.Err() != nil {
			// client went away; nothing left to say
			return
		}
		writeSSE(w, flusher, "done", SSEDone{Response: full.String()})
	})

	r.HandleFunc("/ws", func(w http.ResponseWriter, req *http.Request) {
		conn, err := websocket.Accept(w, req, &websocket.AcceptOptions{InsecureSkipVerify: true})
		if err != nil {
			return
		}
		defer conn.Close(websocket.StatusInternalError, "internal error")

		ctx, cancel := context.WithTimeout(req.Context(), timeout)
		defer cancel()

		typ, data, err := conn.Read(ctx)
		if err != nil {
			return
		}
		if typ != websocket.MessageText {
			conn.Close(websocket.StatusUnsupportedData, "unsupported data")
			return
		}
		var payload types.ChatPayload
		if err := json.Unmarshal(data, &payload); err != nil {
			conn.Write(ctx, websocket.MessageText, []byte(`{"error":"invalid json"}`))
			return
		}

		ch, errCh, err := ctrl.ChatStream(ctx, payload)
		if err != nil {
			conn.Write(ctx, websocket.MessageText, []byte(`{"error":`+strconv.Quote(err.Error())+`}`))
			conn.Close(websocket.StatusPolicyViolation, "bad request")
			return
		}

		for delta := range ch {
			if err := conn.Write(ctx, websocket.MessageText, []byte(delta)); err != nil {
				return
			}
		}
		if err := <-errCh; err != nil {
			conn.Write(ctx, websocket.MessageText, []byte(`{"error":`+strconv.Quote(err.Error())+`}`))
			conn.Close(websocket.StatusInternalError, "stream error")
			return
		}
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			conn.Close(websocket.StatusInternalError, "response timed out")
			return
		}
		conn.Close(websocket.StatusNormalClosure, "")
	})

	return r
}

// Command-line chat client for the GRCHub server
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"grchub/grchub/config"
	"grchub/grchub/knowledge"
	"grchub/grchub/session"
	"grchub/grchub/utils/httputils"
	"grchub/grchub/utils/logging"
	"grchub/grchub/utils/types"
)

// printDeltas tees streamed deltas to stdout on their way into the
// session, so the reply renders incrementally in the terminal.
type printDeltas struct {
	inner session.Transport
}

func (t printDeltas) Stream(ctx context.Context, payload types.ChatPayload) (<-chan string, <-chan error) {
	ch, errCh := t.inner.Stream(ctx, payload)
	out := make(chan string)
	go func() {
		defer close(out)
		for delta := range ch {
			fmt.Print(delta)
			out <- delta
		}
	}()
	return out, errCh
}

func main() {
	logging.InitLogger(config.LoadConfig().LogDir)

	args := os.Args[1:]
	if len(args) < 1 || args[0] != "connect" {
		fmt.Println("GRCHub CLI usage:")
		fmt.Println("  grchub connect   # Chat with the GRC assistant")
		os.Exit(1)
	}

	baseURL := os.Getenv("GRCHUB_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8000"
	}

	// show the dashboard summary up front
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	var stats knowledge.Stats
	if err := httputils.GetJSON(ctx, baseURL+"/api/knowledge/stats", &stats); err != nil {
		fmt.Println("Could not reach GRCHub server at", baseURL, "-", err)
		cancel()
		os.Exit(1)
	}
	cancel()

	fmt.Printf("\nConnected to GRCHub at %s\n", baseURL)
	fmt.Printf("Knowledge base: %d entries | %d active risks | %d critical open\n\n",
		stats.Total, stats.ActiveRisks, stats.CriticalOpen)

	sess := session.New(printDeltas{inner: session.NewHTTPTransport(baseURL)})
	done := make(chan struct{}, 1)
	sess.OnChange(func() {
		if !sess.IsBusy() {
			select {
			case done <- struct{}{}:
			default:
			}
		}
	})

	fmt.Println("Commands: /category <risks|compliance|regulatory|recommendation|all>, /reset, exit")
	printSuggestions(sess)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("grc> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "exit" || line == "quit":
			fmt.Println("Goodbye!")
			return
		case line == "":
			continue
		case line == "/reset":
			sess.Reset()
			fmt.Println("Conversation cleared.")
			continue
		case strings.HasPrefix(line, "/category"):
			arg := strings.TrimSpace(strings.TrimPrefix(line, "/category"))
			if arg == "all" || arg == "" {
				sess.SetCategory("")
			} else {
				category, err := knowledge.ParseCategory(arg)
				if err != nil {
					fmt.Println(err)
					continue
				}
				sess.SetCategory(category)
			}
			printSuggestions(sess)
			continue
		}

		if !sess.Submit(line) {
			continue
		}
		for sess.IsBusy() {
			<-done
		}
		fmt.Println()
		if err := sess.Err(); err != nil {
			fmt.Println("Request failed:", err)
		}
	}
}

func printSuggestions(sess *session.Session) {
	fmt.Println("Try asking:")
	for _, q := range sess.Suggestions() {
		fmt.Printf("  - %s\n", q)
	}
	fmt.Println()
}

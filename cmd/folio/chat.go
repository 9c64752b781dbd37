package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/foliolabs/folio/internal/presentation/tui"
	"github.com/foliolabs/folio/pkg/adapters/browser"
	"github.com/foliolabs/folio/pkg/dispatch"
	"github.com/foliolabs/folio/pkg/domain"
)

// chatCmd represents the chat command
var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with the portfolio assistant from the terminal",
	Long: `Starts an interactive chat session with the assistant.

When --browser points at a Chrome DevTools control URL, the assistant's
page actions (scroll, navigate, highlight, click, type) are executed in
that browser and the live page text becomes the conversation context.
Otherwise the portfolio content itself is used as context.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig(cmd)

		sessionID, _ := cmd.Flags().GetString("session")
		if sessionID == "" {
			sessionID = uuid.NewString()
		}
		controlURL, _ := cmd.Flags().GetString("browser")
		pageURL, _ := cmd.Flags().GetString("url")

		store, closeStore := newStore(cfg)
		defer closeStore()
		assistant := newAssistant(cfg, store)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		// Drive a real browser when one was given.
		var runner *browser.Runner
		var dispatcher *dispatch.Dispatcher
		if controlURL != "" {
			var err error
			runner, err = browser.Open(ctx, controlURL, pageURL)
			if err != nil {
				return fmt.Errorf("failed to attach to browser: %w", err)
			}
			defer runner.Close()
			dispatcher = dispatch.New(runner)
		}

		interactive := term.IsTerminal(int(os.Stdin.Fd()))
		if interactive {
			tui.PrintBanner()
			fmt.Printf("Session %s. Type 'exit' to quit.\n\n", sessionID)
		}

		render := tui.NewRenderer()
		scanner := bufio.NewScanner(os.Stdin)

		for {
			if interactive {
				fmt.Print("> ")
			}
			if !scanner.Scan() {
				break
			}
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			if line == "exit" || line == "quit" {
				break
			}

			pageContext, err := currentContext(ctx, runner, assistantContext(ctx, assistant))
			if err != nil {
				fmt.Fprintf(os.Stderr, "Warning: could not read page context: %v\n", err)
			}

			resp, err := assistant.Chat(ctx, domain.ChatRequest{
				Message:   line,
				Context:   pageContext,
				SessionID: sessionID,
			})
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				continue
			}

			printResponse(render, resp)

			if resp.ToolCall != nil && dispatcher != nil {
				if err := dispatcher.Dispatch(ctx, *resp.ToolCall); err != nil {
					fmt.Fprintf(os.Stderr, "Action failed: %v\n", err)
				}
			}

			if ctx.Err() != nil {
				break
			}
		}

		return scanner.Err()
	},
}

type portfolioReader interface {
	Portfolio(ctx context.Context) (domain.Portfolio, error)
}

// assistantContext renders the portfolio content as the fallback page
// context when no browser is attached.
func assistantContext(ctx context.Context, a portfolioReader) func() (string, error) {
	return func() (string, error) {
		p, err := a.Portfolio(ctx)
		if err != nil {
			return "", err
		}
		data, err := json.Marshal(p)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
}

func currentContext(ctx context.Context, runner *browser.Runner, fallback func() (string, error)) (string, error) {
	if runner != nil {
		return runner.PageText(ctx)
	}
	return fallback()
}

func printResponse(render func(string) (string, error), resp domain.ChatResponse) {
	if resp.Response != "" {
		if out, err := render(resp.Response); err == nil {
			fmt.Print(out)
		} else {
			fmt.Println(resp.Response)
		}
	}
	if resp.ToolCall != nil {
		fmt.Printf("[action] %s %v\n", resp.ToolCall.Name, resp.ToolCall.Args)
	}
}

func init() {
	rootCmd.AddCommand(chatCmd)

	chatCmd.Flags().StringP("session", "s", "", "Session ID to continue (default: a new one)")
	chatCmd.Flags().String("browser", "", "Chrome DevTools control URL to drive page actions in")
	chatCmd.Flags().String("url", "http://localhost:8080", "Page to open when --browser is set")
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/foliolabs/folio"
	"github.com/foliolabs/folio/internal/adapters/redis"
	"github.com/foliolabs/folio/internal/config"
	"github.com/foliolabs/folio/pkg/adapters/memory"
	"github.com/foliolabs/folio/pkg/adapters/openai"
	"github.com/foliolabs/folio/pkg/ports"
)

var rootCmd = &cobra.Command{
	Use:   "folio",
	Short: "Folio is a portfolio site backend with an AI co-browsing assistant",
	Long:  `Folio serves portfolio content and an AI chat assistant that can navigate and manipulate the page the visitor is looking at.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Path to the folio config file (default: folio.yaml)")
}

func loadConfig(cmd *cobra.Command) config.Config {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// newStore builds the message store the config asks for: Redis when an
// address is set, the in-memory store otherwise. The returned closer is
// a no-op for the in-memory store.
func newStore(cfg config.Config) (ports.MessageStore, func() error) {
	if cfg.Redis.Addr != "" {
		var opts []redis.Option
		if cfg.Redis.TTL > 0 {
			opts = append(opts, redis.WithTTL(cfg.Redis.TTL))
		}
		store := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, opts...)
		return store, store.Close
	}

	store := memory.NewStore(memory.WithMaxSessions(cfg.Chat.MaxSessions))
	return store, func() error { return nil }
}

func newAssistant(cfg config.Config, store ports.MessageStore) *folio.Assistant {
	opts := []folio.Option{folio.WithStore(store)}
	if cfg.Chat.Timeout > 0 {
		opts = append(opts, folio.WithTimeout(cfg.Chat.Timeout))
	}
	if cfg.OpenAI.APIKey != "" {
		var completerOpts []openai.Option
		if cfg.OpenAI.Model != "" {
			completerOpts = append(completerOpts, openai.WithModel(cfg.OpenAI.Model))
		}
		if cfg.OpenAI.BaseURL != "" {
			completerOpts = append(completerOpts, openai.WithBaseURL(cfg.OpenAI.APIKey, cfg.OpenAI.BaseURL))
		}
		opts = append(opts, folio.WithCompleter(openai.New(cfg.OpenAI.APIKey, completerOpts...)))
	}
	return folio.New(cfg.OpenAI.APIKey, opts...)
}

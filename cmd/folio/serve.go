package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/foliolabs/folio"
	httpAdapter "github.com/foliolabs/folio/pkg/adapters/http"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the portfolio HTTP server",
	Long:  `Starts the folio backend, exposing the portfolio and chat JSON API over HTTP.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig(cmd)
		if addr, _ := cmd.Flags().GetString("addr"); cmd.Flags().Changed("addr") {
			cfg.Server.Addr = addr
		}

		store, closeStore := newStore(cfg)
		defer closeStore()

		assistant := newAssistant(cfg, store)
		handler := httpAdapter.NewHandler(assistant.Processor(), assistant.PortfolioSource(), folio.Version)

		srv := &http.Server{
			Addr:    cfg.Server.Addr,
			Handler: handler,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			fmt.Printf("Starting Folio Server on %s\n", srv.Addr)
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		// Blocking main and waiting for shutdown.
		select {
		case err := <-serverErrors:
			// Error when starting HTTP server.
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)

		case sig := <-shutdown:
			fmt.Printf("\nStart shutdown... Signal: %v\n", sig)

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			// Asking listener to shut down and shed load.
			if err := srv.Shutdown(ctx); err != nil {
				fmt.Printf("Graceful shutdown did not complete in %v: %v\n", 5*time.Second, err)
				if err := srv.Close(); err != nil {
					fmt.Printf("Error killing server: %v\n", err)
				}
			}
			fmt.Println("Folio Server stopped gracefully")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("addr", "a", ":8080", "Address to listen on")
}

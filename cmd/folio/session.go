package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage chat sessions",
	Long:  `List, inspect, and remove chat sessions held in the configured message store.`,
}

var sessionLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List all active sessions",
	Run: func(cmd *cobra.Command, args []string) {
		store, closeStore := newStore(loadConfig(cmd))
		defer closeStore()

		sessions, err := store.Sessions(cmd.Context())
		if err != nil {
			fmt.Printf("Error listing sessions: %v\n", err)
			os.Exit(1)
		}

		if len(sessions) == 0 {
			fmt.Println("No active sessions found.")
			return
		}

		fmt.Println("Active Sessions:")
		for _, s := range sessions {
			fmt.Println("- " + s)
		}
	},
}

var sessionInspectCmd = &cobra.Command{
	Use:   "inspect <session-id>",
	Short: "Inspect the recent messages of a session",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		sessionID := args[0]
		store, closeStore := newStore(loadConfig(cmd))
		defer closeStore()

		msgs, err := store.Recent(cmd.Context(), sessionID)
		if err != nil {
			fmt.Printf("Error loading session '%s': %v\n", sessionID, err)
			os.Exit(1)
		}

		// Pretty print JSON
		data, err := json.MarshalIndent(msgs, "", "  ")
		if err != nil {
			fmt.Printf("Error marshaling messages: %v\n", err)
			os.Exit(1)
		}

		fmt.Println(string(data))
	},
}

var sessionRmCmd = &cobra.Command{
	Use:   "rm <session-id>...",
	Short: "Remove one or more sessions",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		store, closeStore := newStore(loadConfig(cmd))
		defer closeStore()
		hasError := false

		for _, sessionID := range args {
			if err := store.Clear(cmd.Context(), sessionID); err != nil {
				fmt.Printf("Error removing '%s': %v\n", sessionID, err)
				hasError = true
			} else {
				fmt.Printf("Removed session '%s'\n", sessionID)
			}
		}

		if hasError {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(sessionCmd)
	sessionCmd.AddCommand(sessionLsCmd)
	sessionCmd.AddCommand(sessionInspectCmd)
	sessionCmd.AddCommand(sessionRmCmd)
}

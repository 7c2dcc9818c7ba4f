package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/secondchance/apiserver/config"
	"github.com/secondchance/apiserver/internal/events"
	"github.com/spf13/cobra"
)

// eventsCmd groups event utilities.
var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Catalog event utilities",
}

// eventsListenCmd subscribes to the catalog event channel and prints every
// event. Useful for verifying broker wiring.
var eventsListenCmd = &cobra.Command{
	Use:   "listen",
	Short: "Consume and print catalog events",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.LoadConfig()

		backend, err := events.NewBackend(cmd.Context(), cfg.Events)
		if err != nil {
			return err
		}
		if backend == nil {
			return errors.New("no events backend configured")
		}
		defer func() {
			_ = backend.Close()
		}()

		return backend.Subscribe(cmd.Context(), cfg.Events.Channel, func(ctx context.Context, msg events.Message) error {
			var event events.Event
			if err := json.Unmarshal(msg.Data, &event); err != nil {
				fmt.Printf("unparseable event %s: %s\n", msg.ID, msg.Data)
				return nil
			}
			fmt.Printf("%s gift=%s at=%s\n", event.Type, event.GiftID, event.OccurredAt)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(eventsCmd)
	eventsCmd.AddCommand(eventsListenCmd)
}

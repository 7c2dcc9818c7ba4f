package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/secondchance/apiserver/config"
	"github.com/secondchance/apiserver/internal/db"
	"github.com/secondchance/apiserver/internal/services"
	"github.com/secondchance/apiserver/internal/store"
	"github.com/secondchance/apiserver/types"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var seedFile string

// seedCmd imports a gift dataset into the gifts collection.
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Import a gift dataset from a JSON file",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.LoadConfig()

		data, err := os.ReadFile(seedFile)
		if err != nil {
			return fmt.Errorf("read dataset: %w", err)
		}

		var gifts []types.Gift
		if err := json.Unmarshal(data, &gifts); err != nil {
			return fmt.Errorf("parse dataset: %w", err)
		}

		ctx := cmd.Context()
		database, err := db.Open(ctx, cfg)
		if err != nil {
			return fmt.Errorf("open document store: %w", err)
		}
		defer func() {
			_ = db.Close(ctx, database)
		}()

		// Create applies the same validation and id assignment as the API.
		giftService := services.NewGiftService(store.NewGiftRepository(database), nil, zap.NewNop().Sugar())

		imported := 0
		for _, gift := range gifts {
			if _, err := giftService.Create(ctx, gift); err != nil {
				return fmt.Errorf("import gift %q: %w", gift.Name, err)
			}
			imported++
		}

		fmt.Printf("imported %d gifts\n", imported)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
	seedCmd.Flags().StringVar(&seedFile, "file", "gifts.json", "path to the gift dataset")
}

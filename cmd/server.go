package cmd

import (
	"fmt"
	"os"

	"github.com/secondchance/apiserver/config"
	"github.com/secondchance/apiserver/internal/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// serverCmd starts the API server.
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Starts the SecondChance backend server",
	Long: `Starts the SecondChance backend server. Usage:

	secondchance server
`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.LoadConfig()

		logger, err := zap.NewProduction()
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
			os.Exit(1)
		}
		defer func() {
			_ = logger.Sync()
		}()
		sugar := logger.Sugar()

		srv, err := server.New(cmd.Context(), cfg, sugar)
		if err != nil {
			sugar.Errorw("failed to start server", "error", err)
			os.Exit(1)
		}
		defer func() {
			_ = srv.Shutdown()
		}()

		if err := srv.Start(); err != nil {
			sugar.Errorw("server error", "error", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
}

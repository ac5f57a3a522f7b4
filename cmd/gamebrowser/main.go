package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"gamebrowser/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "gamebrowser",
	Short: "Multiplayer server browser daemon",
	Long: `gamebrowser tracks known multiplayer game servers, keeps their
metadata fresh with staggered UDP requeries, resolves content-pack
compatibility against the local pack directory and serves the list as JSON.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		// Console encoding for CLI-facing errors.
		l, logErr := logger.New(&logger.Config{Level: "debug", Format: "console"})
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}

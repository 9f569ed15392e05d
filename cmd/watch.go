package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jslang/jslin/internal"
	"github.com/jslang/jslin/lint"
)

// watchCmd: jslin watch
var watchCmd = &cobra.Command{
	Use:   "watch [paths...]",
	Short: "Relint files whenever they change on disk",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println("error: Please provide directory paths to watch")
			os.Exit(1)
		}

		engine, err := lint.New(cfgFile)
		if err != nil {
			logger.Fatal("Failed to initialize lint engine", zap.Error(err))
		}

		watcher, err := internal.NewWatcher(engine, args)
		if err != nil {
			logger.Fatal("Failed to create watcher", zap.Error(err))
		}

		if err := watcher.StartWatching(); err != nil {
			logger.Fatal("Failed to start watching", zap.Error(err))
		}
		defer watcher.StopWatching()

		fmt.Println("Watching for changes. Press Ctrl+C to stop.")

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
	},
}

// packviewer is the interactive colormap viewer and editor for Polytone
// resource packs.
package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"github.com/aredhel/polytone-edit/internal/config"
	"github.com/aredhel/polytone-edit/internal/logger"
	"github.com/aredhel/polytone-edit/internal/resolver"
)

const windowTitle = "Polytone Pack Viewer"

func init() {
	// SDL event handling must stay on the main thread.
	runtime.LockOSThread()
}

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	root := cfg.Pack.Root
	if root == "" {
		root, err = dialog.Directory().Title("Select resource pack").Browse()
		if err != nil {
			logger.Error("no pack selected", zap.Error(err))
			os.Exit(1)
		}
	}

	pack, err := resolver.Resolve(root)
	if err != nil {
		logger.Error("failed to load pack", zap.String("root", root), zap.Error(err))
		os.Exit(1)
	}

	app, err := newApp(cfg, root, pack)
	if err != nil {
		logger.Error("viewer startup failed", zap.Error(err))
		os.Exit(1)
	}
	defer app.close()

	if err := app.run(); err != nil {
		logger.Error("viewer exited with error", zap.Error(err))
		os.Exit(1)
	}
}

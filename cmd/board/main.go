package main

import (
	"fmt"
	"net/http"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"taskboard/internal/adapter/taskclient"
	"taskboard/internal/adapter/tui"
	"taskboard/internal/app/board"
	"taskboard/internal/config"
)

func main() {
	cfg := config.LoadConfig()

	// The terminal belongs to the board, so logs go to a file.
	logConfig := zap.NewProductionConfig()
	logConfig.OutputPaths = []string{cfg.BoardLogFile}
	logConfig.ErrorOutputPaths = []string{cfg.BoardLogFile}
	logger, err := logConfig.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	zap.ReplaceGlobals(logger)
	defer func() {
		_ = logger.Sync()
	}()

	client := taskclient.New(cfg.APIURL, &http.Client{Timeout: cfg.HTTPTimeout})
	controller := board.NewController(client, logger)
	model := tui.New(controller, client, new(board.RefreshSignal), cfg.HTTPTimeout)

	logger.Info("starting board", zap.String("api_url", cfg.APIURL))
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logger.Error("board exited with error", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// Package app wires the process together: environment configuration, the
// logging router and its sinks, the save manager, the optional diagnostics
// server, and the ebiten window.
package app

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"

	"chronosta/game"
	"chronosta/internal/diag"
	"chronosta/internal/save"
	"chronosta/internal/telemetry"
	"chronosta/logging"
	loggingSinks "chronosta/logging/sinks"
)

// Environment variables honored by the process. There is no flag surface.
const (
	envDiagAddr    = "CHRONOSTA_DIAG_ADDR"
	envLogSinks    = "CHRONOSTA_LOG_SINKS"
	envLogJSONPath = "CHRONOSTA_LOG_JSON_PATH"
	envSaveDir     = "CHRONOSTA_SAVE_DIR"
)

func Run(ctx context.Context) error {
	telemetryLogger := telemetry.WrapLogger(log.Default())

	logConfig := logging.DefaultConfig()
	if raw := os.Getenv(envLogSinks); raw != "" {
		logConfig.EnabledSinks = strings.Split(raw, ",")
	}
	if raw := os.Getenv(envLogJSONPath); raw != "" {
		logConfig.JSON.FilePath = raw
	}

	var namedSinks []logging.NamedSink
	if logConfig.HasSink("console") {
		namedSinks = append(namedSinks, logging.NamedSink{
			Name: "console",
			Sink: loggingSinks.NewConsoleSink(os.Stdout, logConfig.Console),
		})
	}
	if logConfig.HasSink("json") && logConfig.JSON.FilePath != "" {
		jsonSink, err := loggingSinks.NewJSONSink(logConfig.JSON)
		if err != nil {
			return fmt.Errorf("failed to construct json sink: %w", err)
		}
		namedSinks = append(namedSinks, logging.NamedSink{Name: "json", Sink: jsonSink})
	}

	router, err := logging.NewRouter(nil, logConfig, namedSinks)
	if err != nil {
		return fmt.Errorf("failed to construct logging router: %w", err)
	}
	defer func() {
		if cerr := router.Close(ctx); cerr != nil {
			telemetryLogger.Printf("failed to close logging router: %v", cerr)
		}
	}()

	routerMetrics := &logging.Metrics{}
	metrics := telemetry.WrapMetrics(routerMetrics)

	saveDir := os.Getenv(envSaveDir)
	if saveDir == "" {
		configDir, err := os.UserConfigDir()
		if err != nil {
			return fmt.Errorf("failed to resolve save directory: %w", err)
		}
		saveDir = filepath.Join(configDir, "chronosta", "saves")
	}
	saves, err := save.NewManager(saveDir, telemetryLogger, metrics)
	if err != nil {
		return err
	}

	var diagServer *diag.Server
	if addr := os.Getenv(envDiagAddr); addr != "" {
		diagServer = diag.NewServer(telemetryLogger, metrics)
		go func() {
			telemetryLogger.Printf("diagnostics listening on %s", addr)
			if err := http.ListenAndServe(addr, diagServer.Handler()); err != nil {
				telemetryLogger.Printf("diagnostics server failed: %v", err)
			}
		}()
		defer diagServer.Close()
	}

	g := game.New(game.Config{
		Publisher: router,
		Metrics:   metrics,
	})

	sh := newShell(g, saves, diagServer, telemetryLogger)
	sh.restoreSuspended()

	ebiten.SetWindowSize(game.WindowWidth, game.WindowHeight)
	ebiten.SetWindowTitle("Chronosta")
	ebiten.SetWindowClosingHandled(true)

	if err := ebiten.RunGame(sh); err != nil {
		return fmt.Errorf("game loop failed: %w", err)
	}
	return nil
}

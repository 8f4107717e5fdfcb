package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Mshel/sshnake/internal/game"
	"github.com/Mshel/sshnake/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/logging"
)

const shutdownTimeout = 30 * time.Second

func main() {
	configPath := flag.String("config", "", "path to a YAML settings file")
	flag.Parse()

	settings, err := game.LoadSettings(*configPath)
	if err != nil {
		log.Fatal("Invalid settings", "error", err)
	}

	if level, err := log.ParseLevel(settings.LogLevel); err == nil {
		log.SetLevel(level)
	}
	log.SetReportTimestamp(true)

	highScores, err := game.NewHighScoreService(settings.DatabasePath)
	if err != nil {
		log.Error("High scores disabled", "error", err)
	} else {
		defer highScores.Close()
	}

	limiter := newConnectionLimiter(settings.Server.MaxConnectionsPerIP)
	handler := sessionHandler{
		deps: ui.ControllerDeps{
			Settings:    settings,
			HighScores:  highScores,
			NewStrategy: ui.AutopilotFactory(settings.AutopilotScript),
		},
	}

	address := net.JoinHostPort(settings.Server.Host, settings.Server.Port)
	sshServer, serverCreateErr := wish.NewServer(
		wish.WithAddress(address),
		wish.WithHostKeyPath(settings.Server.HostKeyPath),
		wish.WithMiddleware(
			bubbletea.Middleware(handler.viewHandler),
			logging.Middleware(),
			activeterm.Middleware(),
			limiter.Middleware,
		),
	)
	if serverCreateErr != nil {
		log.Fatal("Failed to create ssh server", "error", serverCreateErr)
	}

	serverDoneChannel := make(chan os.Signal, 1)
	// Capturing system signal to kill server
	signal.Notify(serverDoneChannel, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	log.Info("Starting SSH server", "address", address)
	go func() {
		if err := sshServer.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			log.Error("Could not start server", "error", err)
			serverDoneChannel <- nil
		}
	}()

	<-serverDoneChannel

	log.Info("Stopping SSH server")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := sshServer.Shutdown(ctx); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		log.Error("Could not stop server", "error", err)
	}
}

type sessionHandler struct {
	deps ui.ControllerDeps
}

// viewHandler gives every session its own controller and game.
func (h sessionHandler) viewHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, _ := sshSession.Pty()

	deps := h.deps
	deps.Logger = log.Default().With("user", sshSession.User(), "remote", remoteIP(sshSession))

	controllerModel := ui.NewControllerModel(deps, pty.Window.Width, pty.Window.Height)
	return controllerModel, []tea.ProgramOption{tea.WithAltScreen()}
}

func tooManyConnections(current, limit int) string {
	return fmt.Sprintf("Too many active connections from your IP (%d/%d). Please try again later.\r\n", current, limit)
}

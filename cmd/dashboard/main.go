// Command dashboard polls a health API server and redraws its status in the
// terminal on every change.
package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/NomadCrew/trcs2-health/config"
	"github.com/NomadCrew/trcs2-health/internal/dashboard"
	"github.com/NomadCrew/trcs2-health/logger"
	"github.com/NomadCrew/trcs2-health/pkg/healthclient"
	"github.com/mattn/go-isatty"
)

const clearScreen = "\033[H\033[2J"

func main() {
	logger.InitLogger()
	log := logger.GetLogger()
	defer logger.Close()

	cfg, err := config.LoadDashboardConfig()
	if err != nil {
		log.Fatalf("Failed to load dashboard config: %v", err)
	}

	client := healthclient.New(cfg.API.BaseURL, healthclient.WithTimeout(cfg.API.Timeout()))
	screen := newScreen(os.Stdout, cfg)

	poller := dashboard.NewPoller(client.GetHealth,
		dashboard.WithInterval(cfg.Features.HealthCheckInterval()),
		dashboard.OnChange(screen.draw),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Infow("Polling health API", "url", cfg.API.BaseURL, "interval", cfg.Features.HealthCheckInterval())
	screen.draw(poller.State())
	poller.Start()

	<-ctx.Done()
	poller.Stop()
}

// screen serialises redraws from the poller's goroutines.
type screen struct {
	mu    sync.Mutex
	out   io.Writer
	view  dashboard.View
	isTTY bool
}

func newScreen(f *os.File, cfg *config.DashboardConfig) *screen {
	tty := isatty.IsTerminal(f.Fd())
	return &screen{
		out: f,
		view: dashboard.View{
			AppName:     cfg.App.Name,
			Environment: cfg.App.Environment,
			Version:     cfg.App.Version,
			Color:       tty,
		},
		isTTY: tty,
	}
}

func (s *screen) draw(state dashboard.State) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isTTY {
		_, _ = io.WriteString(s.out, clearScreen)
	}
	v := s.view
	v.State = state
	if err := dashboard.Render(s.out, v); err != nil {
		logger.GetLogger().Warnw("Failed to render dashboard", "error", err)
	}
}

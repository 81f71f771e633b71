// Command healthcheck probes every health endpoint of a running server once
// and exits non-zero when any probe fails. It reads API_BASE_URL and
// API_TIMEOUT like the dashboard.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/NomadCrew/trcs2-health/config"
	"github.com/NomadCrew/trcs2-health/logger"
	"github.com/NomadCrew/trcs2-health/pkg/healthclient"
	"github.com/NomadCrew/trcs2-health/types"
)

type probe struct {
	Name  string
	Fetch func(ctx context.Context) (*types.HealthCheckResponse, error)
}

func main() {
	strict := flag.Bool("strict", false, "treat a degraded probe as a failure")
	flag.Parse()

	logger.InitLogger()
	defer logger.Close()

	cfg, err := config.LoadDashboardConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(2)
	}

	client := healthclient.New(cfg.API.BaseURL, healthclient.WithTimeout(cfg.API.Timeout()))
	fmt.Printf("Target API: %s\n", cfg.API.BaseURL)
	os.Exit(run(context.Background(), probesFor(client), os.Stdout, *strict))
}

func probesFor(c *healthclient.Client) []probe {
	return []probe{
		{Name: "Health", Fetch: c.GetHealth},
		{Name: "Liveness", Fetch: c.GetLiveness},
		{Name: "Readiness", Fetch: c.GetReadiness},
		{Name: "Startup", Fetch: c.GetStartup},
	}
}

// run executes each probe in order and returns the process exit code.
func run(ctx context.Context, probes []probe, out io.Writer, strict bool) int {
	failed := 0
	for _, p := range probes {
		resp, err := p.Fetch(ctx)
		switch {
		case err != nil:
			failed++
			fmt.Fprintf(out, "FAIL %-10s %v\n", p.Name, err)
		case resp.Status == types.HealthStatusUnhealthy,
			strict && resp.Status == types.HealthStatusDegraded:
			failed++
			fmt.Fprintf(out, "FAIL %-10s %s\n", p.Name, resp.Status)
		default:
			fmt.Fprintf(out, "OK   %-10s %s (uptime %ds)\n", p.Name, resp.Status, resp.Uptime/1000)
		}
	}

	fmt.Fprintf(out, "%d/%d probes passed\n", len(probes)-failed, len(probes))
	if failed > 0 {
		return 1
	}
	return 0
}

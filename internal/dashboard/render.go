package dashboard

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/NomadCrew/trcs2-health/types"
)

const (
	ansiReset  = "\033[0m"
	ansiBold   = "\033[1m"
	ansiRed    = "\033[31m"
	ansiGreen  = "\033[32m"
	ansiYellow = "\033[33m"
	ansiGrey   = "\033[90m"

	displayTimeLayout = "2006-01-02 15:04:05 MST"
)

// View is everything Render draws.
type View struct {
	AppName     string
	Environment string
	Version     string
	State       State
	// Color enables ANSI colour codes.
	Color bool
}

// Render writes the dashboard for v. Output depends only on v.
func Render(w io.Writer, v View) error {
	var b strings.Builder
	paint := func(code, s string) string {
		if !v.Color {
			return s
		}
		return code + s + ansiReset
	}

	fmt.Fprintf(&b, "%s\n", paint(ansiBold, v.AppName+" Health Dashboard"))
	fmt.Fprintf(&b, "Environment: %s | Version: %s\n\n", v.Environment, v.Version)

	s := v.State
	if s.Loading {
		b.WriteString("Loading health data...\n")
	}
	if s.Err != "" {
		fmt.Fprintf(&b, "%s\n", paint(ansiRed, "Error: "+s.Err))
	}
	if s.Data != nil {
		renderCard(&b, s.Data, paint)
		if !s.LastUpdated.IsZero() {
			fmt.Fprintf(&b, "\n%s\n", paint(ansiGrey, "Fetched at "+s.LastUpdated.Format(displayTimeLayout)))
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func renderCard(b *strings.Builder, data *types.HealthCheckResponse, paint func(string, string) string) {
	status := strings.ToUpper(string(data.Status))
	if status == "" {
		status = "UNKNOWN"
	}
	fmt.Fprintf(b, "Status: %s\n", paint(StatusColor(data.Status), status))
	fmt.Fprintf(b, "Last Updated: %s\n", formatTimestamp(data.Timestamp))
	fmt.Fprintf(b, "Uptime: %ds\n", data.Uptime/1000)

	if data.Details == nil {
		return
	}
	if m := data.Details.Memory; m != nil {
		b.WriteString("\nMemory Usage\n")
		fmt.Fprintf(b, "  Heap Used: %d MB\n", m.HeapUsedMB)
		fmt.Fprintf(b, "  Heap Total: %d MB\n", m.HeapTotalMB)
		fmt.Fprintf(b, "  Heap Usage: %d%%\n", m.HeapPercentage)
	}
	if sys := data.Details.System; sys != nil {
		b.WriteString("\nSystem Info\n")
		fmt.Fprintf(b, "  Platform: %s\n", sys.Platform)
		fmt.Fprintf(b, "  CPUs: %d\n", sys.CPUs)
		fmt.Fprintf(b, "  Total Memory: %d MB\n", sys.TotalMemoryMB)
		fmt.Fprintf(b, "  Free Memory: %d MB\n", sys.FreeMemoryMB)
	}
	renderDependency(b, "Database", data.Details.Database, paint)
	renderDependency(b, "Cache", data.Details.Cache, paint)
}

func renderDependency(b *strings.Builder, name string, info *types.DatabaseInfo, paint func(string, string) string) {
	if info == nil {
		return
	}
	fmt.Fprintf(b, "\n%s\n", name)
	if !info.Connected {
		fmt.Fprintf(b, "  Connected: %s\n", paint(ansiRed, "no"))
		return
	}
	fmt.Fprintf(b, "  Connected: %s\n", paint(ansiGreen, "yes"))
	if info.ResponseTimeMs != nil {
		fmt.Fprintf(b, "  Response Time: %d ms\n", *info.ResponseTimeMs)
	}
}

// StatusColor maps a status to its ANSI colour. Unknown statuses are grey.
func StatusColor(status types.HealthStatus) string {
	switch status {
	case types.HealthStatusHealthy:
		return ansiGreen
	case types.HealthStatusDegraded:
		return ansiYellow
	case types.HealthStatusUnhealthy:
		return ansiRed
	default:
		return ansiGrey
	}
}

func formatTimestamp(ts string) string {
	t, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		return ts
	}
	return t.Format(displayTimeLayout)
}

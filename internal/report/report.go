// Package report formats human-readable deployment output. It only writes
// text; write errors are dropped so output problems never change the outcome
// of a deployment.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/eugenenazirov/aca-deployer/internal/config"
	"github.com/eugenenazirov/aca-deployer/internal/deploy"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorBold   = "\033[1m"
	colorDim    = "\033[2m"
)

var routeLabels = map[string]string{
	"/":         "Web UI",
	"/api/chat": "Chat API",
	"/docs":     "API docs",
	"/health":   "Health check",
}

// Reporter writes progress and summaries to a console.
type Reporter struct {
	w     io.Writer
	color bool
}

var _ deploy.Progress = (*Reporter)(nil)

// New creates a Reporter. When color is false no ANSI sequences are written.
func New(w io.Writer, color bool) *Reporter {
	if w == nil {
		w = io.Discard
	}
	return &Reporter{w: w, color: color}
}

func (r *Reporter) paint(color, msg string) string {
	if !r.color {
		return msg
	}
	return color + msg + colorReset
}

func (r *Reporter) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.w, format, args...)
}

// Header prints a section banner.
func (r *Reporter) Header(msg string) {
	r.printf("\n%s\n", r.paint(colorBold+colorCyan, "▸ "+msg))
}

// Stage prints a progress banner for a pipeline step.
func (r *Reporter) Stage(title string) {
	r.Header(title)
}

// Step prints an indented informational line.
func (r *Reporter) Step(msg string) {
	r.printf("  %s\n", msg)
}

// Done prints a success line.
func (r *Reporter) Done(msg string) {
	r.printf("  %s\n", r.paint(colorGreen, "✅ "+msg))
}

// Warn prints a non-fatal warning.
func (r *Reporter) Warn(msg string) {
	r.printf("  %s\n", r.paint(colorYellow, "⚠️  "+msg))
}

// Fail prints a fatal error.
func (r *Reporter) Fail(msg string) {
	r.printf("  %s\n", r.paint(colorRed, "❌ "+msg))
}

// Configuration prints the configuration snapshot used for the run.
// Telemetry is shown as configured or not, never in full.
func (r *Reporter) Configuration(cfg config.Config) {
	r.Header("Configuration")

	rows := [][2]string{}
	if cfg.Environment != "" {
		rows = append(rows, [2]string{"Environment", cfg.Environment})
	}
	rows = append(rows,
		[2]string{"Registry", cfg.RegistryName},
		[2]string{"Resource group", cfg.ResourceGroup},
		[2]string{"Container app", cfg.AppName},
		[2]string{"OpenAI endpoint", cfg.OpenAIEndpoint},
		[2]string{"Search endpoint", cfg.SearchEndpoint},
		[2]string{"Chat model", valueOrDefault(cfg.ChatModel, config.DefaultChatModel)},
		[2]string{"Search index", valueOrDefault(cfg.SearchIndex, config.DefaultSearchIndex)},
		[2]string{"Telemetry", telemetryState(cfg)},
		[2]string{"Image", cfg.ImageRef()},
		[2]string{"Build context", cfg.BuildContext},
	)

	for _, row := range rows {
		r.printf("  %-16s %s\n", row[0]+":", row[1])
	}
}

// Summary prints the final result with the application routes and a log hint.
func (r *Reporter) Summary(cfg config.Config, result deploy.Result) {
	r.Header("Deployment complete")
	r.Done("Application URL: " + result.URL)
	r.printf("  Image: %s\n", result.Image)

	r.printf("\n  Routes:\n")
	for _, route := range result.Routes {
		label := routeLabels[route]
		r.printf("    %-52s %s\n", result.URL+route, r.paint(colorDim, label))
	}

	r.printf("\n  View logs:\n")
	r.printf("    %s\n", LogsCommand(cfg))
}

// LogsCommand returns the command an operator can run to follow app logs.
func LogsCommand(cfg config.Config) string {
	return fmt.Sprintf("az containerapp logs show --name %s --resource-group %s --follow", cfg.AppName, cfg.ResourceGroup)
}

func valueOrDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback + " (default)"
	}
	return value
}

func telemetryState(cfg config.Config) string {
	if cfg.TelemetryEnabled() {
		return "configured"
	}
	return "not configured"
}

package command

import (
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/tunevault-go/internal/core/domain"
	"github.com/yndnr/tunevault-go/internal/infra/buildinfo"
)

// runtimeKey is the App.Metadata key holding the *Runtime.
const runtimeKey = "runtime"

// App creates the CLI application.
func App() *cli.App {
	app := &cli.App{
		Name:    "tunevault-cli",
		Usage:   "Fetch and decrypt catalogue media",
		Version: buildinfo.String(),
		Flags:   globalFlags(),
		Commands: []*cli.Command{
			SessionCommand(),
			InfoCommand(),
			DownloadCommand(),
			ConfigCommand(),
			VersionCommand(),
		},
		Before: before,
		After:  after,
	}
	app.Metadata = make(map[string]any)
	return app
}

// globalFlags returns the global CLI flags.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Config file (default ~/.tunevault/config.yaml)",
		},
		&cli.StringFlag{
			Name:  "credential",
			Usage: "Long-lived account credential (arl cookie); omit for anonymous access",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output format: table, json, yaml",
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "Log level: debug, info, warn, error",
		},
		&cli.StringFlag{
			Name:  "log-format",
			Usage: "Log format: text, json",
		},
		&cli.StringFlag{
			Name:  "metrics-addr",
			Usage: "Serve Prometheus metrics on this address while the command runs",
		},
		&cli.StringFlag{
			Name:  "gateway",
			Usage: "Catalogue gateway URL",
		},
		&cli.StringFlag{
			Name:  "media",
			Usage: "Licensing endpoint URL",
		},
	}
}

// GlobalFlags defines flags available to all commands.
type GlobalFlags struct {
	ConfigPath  string
	Credential  string
	Output      string
	LogLevel    string
	LogFormat   string
	MetricsAddr string
	Gateway     string
	Media       string
}

// ParseGlobalFlags extracts global flags from context.
func ParseGlobalFlags(c *cli.Context) *GlobalFlags {
	return &GlobalFlags{
		ConfigPath:  c.String("config"),
		Credential:  c.String("credential"),
		Output:      c.String("output"),
		LogLevel:    c.String("log-level"),
		LogFormat:   c.String("log-format"),
		MetricsAddr: c.String("metrics-addr"),
		Gateway:     c.String("gateway"),
		Media:       c.String("media"),
	}
}

// flagOverrides maps explicitly set global flags to config keys. Flags left
// at their zero value never mask the file or the environment.
func flagOverrides(c *cli.Context) map[string]any {
	keys := map[string]string{
		"credential":   "credential",
		"output":       "output",
		"log-level":    "log.level",
		"log-format":   "log.format",
		"metrics-addr": "metrics.addr",
		"gateway":      "endpoints.gateway",
		"media":        "endpoints.media",
	}

	out := make(map[string]any)
	for flag, key := range keys {
		if c.IsSet(flag) {
			out[key] = c.String(flag)
		}
	}
	return out
}

func before(c *cli.Context) error {
	rt, err := newRuntime(c.Context, ParseGlobalFlags(c).ConfigPath, flagOverrides(c), c.App.ErrWriter)
	if err != nil {
		return err
	}
	c.App.Metadata[runtimeKey] = rt
	return nil
}

func after(c *cli.Context) error {
	if rt, ok := c.App.Metadata[runtimeKey].(*Runtime); ok {
		return rt.Close()
	}
	return nil
}

// GetRuntime retrieves the runtime created by the app's Before hook.
func GetRuntime(c *cli.Context) (*Runtime, error) {
	if rt, ok := c.App.Metadata[runtimeKey].(*Runtime); ok {
		return rt, nil
	}
	return nil, fmt.Errorf("runtime not initialized")
}

// PrintError prints an error message to w.
func PrintError(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "error: "+format+"\n", args...)
}

// ReportError prints err to w and returns the process exit status: 2 for
// invalid references and configuration, 1 for everything else.
func ReportError(w io.Writer, err error) int {
	PrintError(w, "%v", err)
	if strings.HasPrefix(domain.GetErrorCode(err), "TV-ARG-") {
		return 2
	}
	return 1
}

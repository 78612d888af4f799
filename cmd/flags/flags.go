package flags

import (
	"log/slog"
	"time"

	"github.com/attestia/sui-proxy/common"
	"github.com/attestia/sui-proxy/httpserver"
	"github.com/google/uuid"
	"github.com/urfave/cli/v2"
)

// SetupLogger builds the process logger from the common logging flags.
func SetupLogger(cCtx *cli.Context) *slog.Logger {
	logger := common.SetupLogger(&common.LoggingOpts{
		Debug:   cCtx.Bool(LogDebugFlag.Name),
		JSON:    cCtx.Bool(LogJsonFlag.Name),
		Service: cCtx.String(LogServiceFlag.Name),
		Version: common.Version,
	})

	if cCtx.Bool(LogUidFlag.Name) {
		id := uuid.Must(uuid.NewRandom())
		logger = logger.With("uid", id.String())
	}
	return logger
}

// ConfigureServer builds the HTTP server config from the common flags.
func ConfigureServer(cCtx *cli.Context, logger *slog.Logger) *httpserver.HTTPServerConfig {
	return &httpserver.HTTPServerConfig{
		ListenAddr:               cCtx.String(ListenAddrFlag.Name),
		MetricsAddr:              cCtx.String(MetricsAddrFlag.Name),
		Log:                      logger,
		EnablePprof:              cCtx.Bool(PprofFlag.Name),
		DrainDuration:            time.Duration(cCtx.Int64(DrainSecondsFlag.Name)) * time.Second,
		GracefulShutdownDuration: 30 * time.Second,
		ReadTimeout:              60 * time.Second,
		WriteTimeout:             60 * time.Second,
	}
}

var ListenAddrFlag = &cli.StringFlag{
	Name:  "listen-addr",
	Value: "127.0.0.1:9999",
	Usage: "address to listen on for the proxy API",
}

var SuiBinFlag = &cli.StringFlag{
	Name:    "sui-bin",
	Value:   "sui",
	EnvVars: []string{"SUI_BIN"},
	Usage:   "Sui CLI binary to invoke (resolved via PATH if not absolute)",
}

var GovtAPIKeyFlag = &cli.StringFlag{
	Name:    "govt-api-key",
	EnvVars: []string{"GOVT_API_KEY"},
	Usage:   "government API key",
}

var GovtAPISecretFlag = &cli.StringFlag{
	Name:    "govt-api-secret",
	EnvVars: []string{"GOVT_API_SECRET"},
	Usage:   "government API secret",
}

var GovtAuthURLFlag = &cli.StringFlag{
	Name:    "govt-auth-url",
	EnvVars: []string{"GOVT_API_AUTH_URL"},
	Usage:   "government API authentication endpoint",
}

var GovtBaseURLFlag = &cli.StringFlag{
	Name:    "govt-base-url",
	EnvVars: []string{"GOVT_API_BASE_URL"},
	Usage:   "government API base URL for verification calls",
}

var LogJsonFlag = &cli.BoolFlag{
	Name:  "log-json",
	Value: false,
	Usage: "log in JSON format",
}

var LogDebugFlag = &cli.BoolFlag{
	Name:  "log-debug",
	Value: false,
	Usage: "log debug messages",
}

var LogUidFlag = &cli.BoolFlag{
	Name:  "log-uid",
	Value: false,
	Usage: "generate a uuid and add to all log messages",
}

var LogServiceFlag = &cli.StringFlag{
	Name:  "log-service",
	Value: common.PackageName,
	Usage: "add 'service' tag to logs",
}

var PprofFlag = &cli.BoolFlag{
	Name:  "pprof",
	Value: false,
	Usage: "enable pprof debug endpoint",
}

var DrainSecondsFlag = &cli.Int64Flag{
	Name:  "drain-seconds",
	Value: 45,
	Usage: "seconds to wait in drain HTTP request",
}

var MetricsAddrFlag = &cli.StringFlag{
	Name:  "metrics-addr",
	Value: "127.0.0.1:8090",
	Usage: "address to listen on for Prometheus metrics",
}

var CommonFlags = []cli.Flag{
	ListenAddrFlag,
	MetricsAddrFlag,
	LogJsonFlag,
	LogDebugFlag,
	LogUidFlag,
	LogServiceFlag,
	PprofFlag,
	DrainSecondsFlag,
}

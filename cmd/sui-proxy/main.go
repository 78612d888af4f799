package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/attestia/sui-proxy/cmd/flags"
	"github.com/attestia/sui-proxy/govtapi"
	"github.com/attestia/sui-proxy/httpserver"
	"github.com/attestia/sui-proxy/suicli"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "sui-proxy",
		Usage: "Host-side proxy exposing the Sui CLI and the government KYC API to the enclave",
		Flags: append([]cli.Flag{
			flags.SuiBinFlag,
			flags.GovtAPIKeyFlag,
			flags.GovtAPISecretFlag,
			flags.GovtAuthURLFlag,
			flags.GovtBaseURLFlag,
		}, flags.CommonFlags...),
		Action: runProxy,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func runProxy(cCtx *cli.Context) error {
	logger := flags.SetupLogger(cCtx)

	runner := suicli.NewRunner(cCtx.String(flags.SuiBinFlag.Name), logger)

	// Reachability check for the CLI. A missing binary is a warning, not a
	// startup failure: the proxy still serves health and verification calls.
	versionCtx, cancel := context.WithTimeout(context.Background(), suicli.VersionCheckTimeout)
	version, err := runner.Version(versionCtx)
	cancel()
	if err != nil {
		logger.Error("Sui CLI not available or not working", "bin", runner.Bin(), "err", err)
	} else {
		logger.Info("Sui CLI available", "version", version)
	}

	// Flag values take precedence; otherwise credentials are read from the
	// environment at call time so a rotation does not require a restart.
	var creds govtapi.CredentialSource
	if cCtx.String(flags.GovtAPIKeyFlag.Name) != "" || cCtx.String(flags.GovtAPISecretFlag.Name) != "" {
		creds = govtapi.StaticCredentials(
			cCtx.String(flags.GovtAPIKeyFlag.Name),
			cCtx.String(flags.GovtAPISecretFlag.Name),
		)
	} else {
		creds = govtapi.EnvCredentials
	}

	govtClient := govtapi.NewClient(&govtapi.ClientConfig{
		AuthURL:     cCtx.String(flags.GovtAuthURLFlag.Name),
		BaseURL:     cCtx.String(flags.GovtBaseURLFlag.Name),
		Credentials: creds,
		Log:         logger,
	})
	if !govtClient.CredentialsConfigured() {
		logger.Warn("Government API credentials not configured; PAN verification will fail until GOVT_API_KEY and GOVT_API_SECRET are set")
	}

	handler := httpserver.NewHandler(runner, govtClient, logger)
	server, err := httpserver.New(flags.ConfigureServer(cCtx, logger), handler)
	if err != nil {
		logger.Error("Failed to create server", "err", err)
		return err
	}

	server.RunInBackground()

	exit := make(chan os.Signal, 1)
	signal.Notify(exit, os.Interrupt, syscall.SIGTERM)
	logger.Info("Server is running, press Ctrl+C to stop")
	<-exit
	logger.Info("Shutdown signal received")

	server.Shutdown()
	logger.Info("Server shutdown complete")
	return nil
}

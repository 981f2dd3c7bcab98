package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"csvconnector/internal/core/version"
	"csvconnector/internal/modkit"
	"csvconnector/internal/modkit/module"
	"csvconnector/internal/platform/config"
	"csvconnector/internal/platform/logger"

	connectordom "csvconnector/internal/services/connector/domain"
	connectormod "csvconnector/internal/services/connector/module"
)

func main() {
	fVersion := flag.Bool("version", false, "print build info and exit")
	flag.Parse()

	if *fVersion {
		_ = json.NewEncoder(os.Stdout).Encode(version.Info())
		return
	}

	root := config.New()

	// .env first so LOG_* from the file reach the logger
	envFile := root.Prefix("CONNECTOR_").MayString("ENV_FILE", ".env")
	loaded, envErr := config.LoadDotEnv(envFile)

	l := logger.Named("main")
	switch {
	case envErr != nil:
		l.Warn().Err(envErr).Str("path", envFile).Msg("env file not loaded")
	case loaded:
		l.Debug().Str("path", envFile).Msg("env file loaded")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps := modkit.Deps{
		Cfg: root,
		Log: *logger.Get(),
	}

	cm := connectormod.New(deps)
	module.Register(cm)
	l.Debug().Strs("modules", module.Names()).Msg("modules registered")

	runner, ok := module.PortsAs[connectordom.RunnerPort](cm.Name())
	if !ok {
		stop()
		l.Fatal().Str("module", cm.Name()).Msg("connector runner not registered")
	}
	rep, err := runner.Run(ctx)
	if err != nil && cm.Options().StrictExit {
		stop()
		l.Fatal().Err(err).
			Str("run_id", rep.RunID).
			Str("failed_stage", rep.FailedStage()).
			Msg("connector run failed")
	}
}

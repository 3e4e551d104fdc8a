package main

import (
	"context"
	"os"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/reqpin/reqpin/cli"
	"github.com/reqpin/reqpin/internal/errors"
	"github.com/reqpin/reqpin/internal/os/signal"
	"github.com/reqpin/reqpin/internal/util"
	"github.com/reqpin/reqpin/options"
	"github.com/reqpin/reqpin/pkg/log"
)

// The main entrypoint for reqpin
func main() {
	opts := options.NewOptions()

	defer errors.Recover(checkForErrorsAndExit(opts.Logger))

	ctx, cancel := context.WithCancelCause(context.Background())
	defer cancel(nil)

	// The signal is carried as the cancellation cause so that a running
	// resolver subprocess gets it forwarded instead of being killed outright.
	signal.NotifierWithContext(ctx, func(sig os.Signal) {
		opts.Logger.Infof("%s signal received. Shutting down...", cases.Title(language.English).String(sig.String()))
		cancel(signal.NewContextCanceledError(sig))
	}, signal.InterruptSignals...)

	app := cli.NewApp(opts)

	err := app.RunContext(ctx, os.Args)

	checkForErrorsAndExit(opts.Logger)(err)
}

// If there is an error, display it in the console and exit with a non-zero exit code. Otherwise, exit 0.
func checkForErrorsAndExit(logger log.Logger) func(error) {
	return func(err error) {
		if err == nil {
			os.Exit(0)
		} else {
			logger.Error(err.Error())

			if errStack := errors.ErrorStack(err); errStack != "" {
				logger.Trace(errStack)
			}

			// exit with the underlying error code
			exitCode, exitCodeErr := util.GetExitCode(err)
			if exitCodeErr != nil {
				exitCode = 1

				logger.Errorf("Unable to determine underlying exit code, so reqpin will exit with error code 1")
			}

			os.Exit(exitCode)
		}
	}
}

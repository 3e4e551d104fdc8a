// Package exec runs external commands. It wraps the os/exec package with
// graceful shutdown and signal forwarding for the wrapped process.
package exec

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/reqpin/reqpin/internal/errors"
	"github.com/reqpin/reqpin/internal/os/signal"
	"github.com/reqpin/reqpin/pkg/log"
)

// Cmd is a command type.
type Cmd struct {
	*exec.Cmd

	filename string

	logger log.Logger

	shutdownCtx    context.Context
	shutdownCancel context.CancelFunc

	gracefulShutdownDelay time.Duration
	interruptSignal       os.Signal
}

// Command returns the `Cmd` struct to execute the named program with the given arguments.
//
// Unlike plain exec.CommandContext, cancelling the given context does not kill
// the process outright. The interrupt signal is sent instead so the process can
// clean up after itself. If the context was cancelled because an OS signal was
// received, the process is likely to receive the same signal from the OS on its
// own, so forwarding is delayed by the configured graceful shutdown delay, and
// fires immediately if the same signal is received again.
func Command(ctx context.Context, name string, args ...string) *Cmd {
	shutdownCtx, shutdownCancel := context.WithCancel(context.Background())

	cmd := &Cmd{
		Cmd:             exec.CommandContext(ctx, name, args...),
		logger:          log.Default(),
		filename:        filepath.Base(name),
		interruptSignal: signal.InterruptSignal,
		shutdownCtx:     shutdownCtx,
		shutdownCancel:  shutdownCancel,
	}

	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	cmd.Cmd.Cancel = func() error {
		go cmd.shutdown(ctx)
		return nil
	}

	return cmd
}

// Configure sets options to the `Cmd`.
func (cmd *Cmd) Configure(opts ...Option) {
	for _, opt := range opts {
		opt(cmd)
	}
}

// Start starts the specified command but does not wait for it to complete.
func (cmd *Cmd) Start() error {
	if err := cmd.Cmd.Start(); err != nil {
		return errors.New(err)
	}

	return nil
}

// Wait waits for the command to exit.
func (cmd *Cmd) Wait() error {
	defer cmd.shutdownCancel()

	if err := cmd.Cmd.Wait(); err != nil {
		return errors.New(err)
	}

	return nil
}

// Run starts the specified command and waits for it to complete.
func (cmd *Cmd) Run() error {
	if err := cmd.Start(); err != nil {
		return err
	}

	return cmd.Wait()
}

// shutdown is called when the command context is cancelled while the process is
// still running.
func (cmd *Cmd) shutdown(ctx context.Context) {
	if cause := new(signal.ContextCanceledError); errors.As(context.Cause(ctx), &cause) && cause.Signal != nil {
		cmd.ForwardSignal(cause.Signal)

		return
	}

	cmd.SendSignal(cmd.interruptSignal)
}

// ForwardSignal forwards the given `sig` with a delay if cmd.gracefulShutdownDelay is greater than 0,
// and if the same signal is received again, it is forwarded immediately.
func (cmd *Cmd) ForwardSignal(sig os.Signal) {
	ctxDelay, cancelDelay := context.WithCancel(cmd.shutdownCtx)
	defer cancelDelay()

	signal.NotifierWithContext(cmd.shutdownCtx, func(_ os.Signal) {
		cancelDelay()
	}, sig)

	if cmd.gracefulShutdownDelay > 0 {
		cmd.logger.Debugf("%s signal will be forwarded to %s with delay %s",
			cases.Title(language.English).String(sig.String()),
			cmd.filename,
			cmd.gracefulShutdownDelay,
		)
	}

	select {
	case <-cmd.shutdownCtx.Done():
		return
	case <-time.After(cmd.gracefulShutdownDelay):
	case <-ctxDelay.Done():
	}

	cmd.SendSignal(sig)
}

// SendSignal sends the given `sig` to the executed command.
func (cmd *Cmd) SendSignal(sig os.Signal) {
	cmd.logger.Debugf("%s signal is forwarded to %s", cases.Title(language.English).String(sig.String()), cmd.filename)

	if err := cmd.Process.Signal(sig); err != nil {
		cmd.logger.Errorf("Failed to forward signal %s to %s: %v", sig, cmd.filename, err)
	}
}

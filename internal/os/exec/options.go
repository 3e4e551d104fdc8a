package exec

import (
	"time"

	"github.com/reqpin/reqpin/pkg/log"
)

// Option is type for passing options to the Cmd.
type Option func(*Cmd)

// WithLogger sets Logger to the Cmd.
func WithLogger(logger log.Logger) Option {
	return func(cmd *Cmd) {
		cmd.logger = logger
	}
}

// WithEnv sets environment variables for the Cmd. An empty map keeps the
// inherited environment.
func WithEnv(env map[string]string) Option {
	return func(cmd *Cmd) {
		if len(env) == 0 {
			return
		}

		cmd.Env = make([]string, 0, len(env))

		for name, value := range env {
			cmd.Env = append(cmd.Env, name+"="+value)
		}
	}
}

// WithGracefulShutdownDelay sets the delay before forwarding an OS signal that
// the process is likely to receive from the OS on its own anyway.
func WithGracefulShutdownDelay(delay time.Duration) Option {
	return func(cmd *Cmd) {
		cmd.gracefulShutdownDelay = delay
	}
}

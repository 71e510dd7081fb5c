package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix prefixes every handshake variable.
const EnvPrefix = "PINGPONG"

// RoleResponder is the value of PINGPONG_ROLE in a child-process responder.
const RoleResponder = "responder"

// ResponderEnv is the handshake an initiator passes to its child through
// the environment.
type ResponderEnv struct {
	Role  string `envconfig:"ROLE"`
	RunID string `envconfig:"RUN_ID"`
}

// LoadResponderEnv reads the handshake variables of the current process.
func LoadResponderEnv() (*ResponderEnv, error) {
	var env ResponderEnv

	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return nil, fmt.Errorf("load responder environment: %w", err)
	}

	return &env, nil
}

// IsResponder reports whether the handshake marks this process as a responder.
func (e *ResponderEnv) IsResponder() bool {
	return e != nil && e.Role == RoleResponder
}

// Environ returns the handshake as KEY=value pairs for exec.Cmd.Env.
func (e *ResponderEnv) Environ() []string {
	return []string{
		EnvPrefix + "_ROLE=" + e.Role,
		EnvPrefix + "_RUN_ID=" + e.RunID,
	}
}

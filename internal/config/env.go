package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// legacyEnv maps settings to the unprefixed variable names used by existing deployments.
// The DODGE_ prefixed names take precedence when both are set.
var legacyEnv = map[string]string{
	"ssh.host":           "SSH_HOST",
	"ssh.port":           "SSH_PORT",
	"ssh.hostKey":        "SSH_HOST_KEY",
	"web.host":           "WEB_HOST",
	"web.port":           "WEB_PORT",
	"web.sshDisplayHost": "SSH_DISPLAY_HOST",
}

func bindEnv(v *viper.Viper) error {
	for key, name := range legacyEnv {
		if err := v.BindEnv(key, name); err != nil {
			return fmt.Errorf("binding env %s: %w", name, err)
		}
	}
	return nil
}

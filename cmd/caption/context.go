package main

import (
	"strings"

	"caption/internal/config"
)

// commandContext carries lazily loaded configuration shared by the commands.
type commandContext struct {
	serverFlag *string
	configFlag *string

	cfg     *config.Config
	cfgPath string
}

func newCommandContext(serverFlag, configFlag *string) *commandContext {
	return &commandContext{serverFlag: serverFlag, configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}
	path := ""
	if c.configFlag != nil {
		path = strings.TrimSpace(*c.configFlag)
	}
	cfg, resolvedPath, _, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	c.cfg = cfg
	c.cfgPath = resolvedPath
	return cfg, nil
}

// serverURL resolves the daemon base URL: explicit flag first, then the
// configured bind address.
func (c *commandContext) serverURL() string {
	if c.serverFlag != nil {
		if url := strings.TrimSpace(*c.serverFlag); url != "" {
			return strings.TrimRight(url, "/")
		}
	}
	bind := "127.0.0.1:7519"
	if c.cfg != nil && strings.TrimSpace(c.cfg.Paths.APIBind) != "" {
		bind = strings.TrimSpace(c.cfg.Paths.APIBind)
	}
	if strings.HasPrefix(bind, ":") {
		bind = "127.0.0.1" + bind
	}
	return "http://" + bind
}

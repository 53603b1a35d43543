// Package config loads the remote collaborator settings from environment
// variables. Vendor import profiles live in the TOML config store; the
// environment only carries endpoints and credentials.
package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

func init() {
	// Load .env file if it exists (silent fail if not)
	_ = godotenv.Load()
}

// Config holds all remote collaborator configuration.
type Config struct {
	Odoo      OdooConfig
	GitHub    GitHubConfig
	Puppeteer PuppeteerConfig
}

// OdooConfig holds the record store MCP server settings. The server is
// reached over streamable HTTP when Endpoint is set, otherwise spawned
// as a stdio process from Command.
type OdooConfig struct {
	Endpoint string `envconfig:"ODOO_MCP_ENDPOINT" default:""`
	Command  string `envconfig:"ODOO_MCP_COMMAND" default:""`
	Args     string `envconfig:"ODOO_MCP_ARGS" default:""`
}

// GitHubConfig holds the progress reporting settings. Reporting is
// disabled when Repo or Issue is unset.
type GitHubConfig struct {
	Token string `envconfig:"GITHUB_TOKEN" default:""`
	Repo  string `envconfig:"GITHUB_REPO" default:""`
	Issue int    `envconfig:"GITHUB_ISSUE" default:"0"`
}

// PuppeteerConfig holds the browser automation MCP server settings.
type PuppeteerConfig struct {
	Endpoint string `envconfig:"PUPPETEER_MCP_ENDPOINT" default:""`
	Command  string `envconfig:"PUPPETEER_MCP_COMMAND" default:"npx"`
	Args     string `envconfig:"PUPPETEER_MCP_ARGS" default:"-y @modelcontextprotocol/server-puppeteer"`
}

// ArgList splits the configured argument string for process spawning.
func (o *OdooConfig) ArgList() []string {
	return strings.Fields(o.Args)
}

// ArgList splits the configured argument string for process spawning.
func (p *PuppeteerConfig) ArgList() []string {
	return strings.Fields(p.Args)
}

// ReportingEnabled returns true when a progress issue is configured.
func (g *GitHubConfig) ReportingEnabled() bool {
	return g.Token != "" && g.Repo != "" && g.Issue > 0
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return &cfg, nil
}

// Package cli implements the interactive curator console: set the shared
// password, upload recordings, list and delete them over the HTTP API.
package cli

import (
	"bufio"
	"context"
	"os"

	"github.com/dmitrijs2005/keepsake/internal/client/api"
	"github.com/dmitrijs2005/keepsake/internal/client/config"
)

type App struct {
	config *config.Config
	api    *api.Client
	role   string
	reader *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {
	return &App{
		config: c,
		api:    api.NewClient(c.ServerEndpointAddr),
		reader: bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) Run(ctx context.Context) {
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.role != ""
}

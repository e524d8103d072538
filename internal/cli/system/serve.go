package system

import (
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/julianstephens/moodatlas/internal/api"
	"github.com/julianstephens/moodatlas/internal/cli"
)

type ServeCmd struct {
	Addr string `help:"Listen address (host:port). Defaults to server.addr from config."`
}

func (c *ServeCmd) Run(ctx *cli.Context) error {
	addr := c.Addr
	if addr == "" && ctx.Config != nil {
		addr = ctx.Config.Server.Addr
	}

	engine, err := ctx.Engine()
	if err != nil {
		return err
	}
	loc, err := ctx.Location()
	if err != nil {
		return err
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	runCtx, stop := signal.NotifyContext(ctx.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx.Printf("✓ Serving read-only API on http://%s\n", ln.Addr())
	return api.Serve(runCtx, ln, api.NewRouter(api.NewHandler(ctx.Store, engine, loc)))
}

package main

import (
	"context"
	"flag"
	"os"
	"os/signal"

	"github.com/gogpu/captcha/config"
	"github.com/gogpu/captcha/server"
)

func runServe(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	addr := fs.String("addr", "", "listen address (default $CAPTCHA_ADDR or :3000)")
	verbose := fs.Bool("v", false, "debug logging")
	if err := fs.Parse(args); err != nil {
		return err
	}
	enableLogging(*verbose)

	cfg := config.LoadServer()
	if *addr != "" {
		cfg.Addr = *addr
	}

	srv, err := server.New(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	go func() {
		<-ctx.Done()
		_ = srv.Shutdown()
	}()

	return srv.Listen(cfg.Addr)
}

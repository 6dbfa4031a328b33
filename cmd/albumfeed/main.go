package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/five82/albumfeed/internal/app"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	serve := len(args) > 0 && args[0] == "serve"
	name := "albumfeed"
	if serve {
		name, args = "albumfeed serve", args[1:]
	}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	configPath := fs.String("config", "", "override config path (optional)")
	prefsPath := fs.String("prefs", "", "override preferences path (optional)")
	envPath := fs.String("env", "", "dotenv file to load before reading the environment (optional)")
	var addr *string
	if serve {
		addr = fs.String("addr", "", "listen address (optional, defaults to config listen_addr)")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	opts := app.Options{
		ConfigPath: *configPath,
		PrefsPath:  *prefsPath,
		EnvPath:    *envPath,
	}

	var err error
	if serve {
		opts.ListenAddr = *addr
		err = app.Serve(ctx, opts)
	} else {
		err = app.Run(ctx, opts)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "albumfeed: %v\n", err)
		return 1
	}
	return 0
}

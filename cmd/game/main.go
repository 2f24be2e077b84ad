package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/RealHoonjang/Dodgeball-AR/internal/config"
	"github.com/RealHoonjang/Dodgeball-AR/internal/logging"
	"github.com/RealHoonjang/Dodgeball-AR/internal/loop/client"
	"github.com/RealHoonjang/Dodgeball-AR/internal/loop/server"
)

func main() {
	fs := pflag.NewFlagSet("dodge", pflag.ExitOnError)
	config.RegisterFlags(fs)
	logFile := fs.String("log-file", "", "write logs to this file (the terminal is busy with the game)")
	_ = fs.Parse(os.Args[1:])

	path, _ := fs.GetString("config")
	cfg, err := config.Load(path, fs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	if printCfg, _ := fs.GetBool("print-config"); printCfg {
		out, err := cfg.YAML()
		if err != nil {
			fmt.Fprintf(os.Stderr, "config: %v\n", err)
			os.Exit(1)
		}
		os.Stdout.Write(out)
		return
	}

	var logOut io.Writer = io.Discard
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to open log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logOut = f
	}
	logger := logging.New(logOut, cfg.LogLevel)
	if cfg.File() != "" {
		logger.Info("loaded config", "file", cfg.File())
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to enable raw mode: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	gameServer := server.NewServer(logger)
	go gameServer.Run(ctx)

	c := client.NewClient(gameServer, bufio.NewReader(os.Stdin), os.Stdout, client.ClientOptions{
		Username: os.Getenv("USER"),
		Game:     cfg.Game,
		Logger:   logger,
	})
	if err := c.Run(); err != nil {
		_ = term.Restore(fd, oldState)
		logger.Error("game error", "err", err)
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

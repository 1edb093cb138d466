package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/hazyhaar/vegantree/pkg/api"
	"github.com/mark3labs/mcp-go/server"
)

const version = "0.1.0"

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout))
}

// run dispatches a subcommand and returns the process exit code.
func run(args []string, stdin io.Reader, stdout io.Writer) int {
	if len(args) < 1 {
		usage()
		return 2
	}

	switch args[0] {
	case "serve":
		return cmdServe(args[1:])
	case "mcp":
		return cmdMCP(args[1:])
	case "analyze":
		return cmdAnalyze(args[1:], stdout)
	case "clean":
		return cmdClean(args[1:], stdin, stdout)
	default:
		usage()
		return 2
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: vegantree <command> [flags]

Commands:
  serve     Start the HTTP server
  mcp       Serve the MCP tools over stdio
  analyze   Classify, clean and decompose a basket corpus, print a JSON report
  clean     Normalize ingredient lines read from stdin
`)
}

func cmdServe(args []string) int {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	cfgPath := fs.String("config", "config.yaml", "path to config file")
	fs.Parse(args)

	cfg, logger, err := setup(*cfgPath)
	if err != nil {
		return 1
	}

	norm, err := cfg.normalizer()
	if err != nil {
		logger.Error("failed to load lexicon", "error", err)
		return 1
	}
	svc := api.NewService(norm, cfg.Workers, logger)
	info := norm.Lexicon().Info()
	logger.Info("lexicon loaded", "id", info.ID, "version", info.Version, "lemmatizer", cfg.Lemmatizer)

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: api.NewRouter(svc),
	}

	// SIGHUP: re-read the lexicon file.
	// SIGINT/SIGTERM: graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sighup := make(chan os.Signal, 1)
	signal.Notify(sighup, syscall.SIGHUP)
	defer signal.Stop(sighup)
	go func() {
		for range sighup {
			logger.Info("SIGHUP received, reloading lexicon")
			norm, err := cfg.normalizer()
			if err != nil {
				logger.Error("reload failed", "error", err)
				continue
			}
			svc.Swap(norm)
		}
	}()

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("vegantree listening", "addr", cfg.Addr)
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			return 1
		}
	case <-ctx.Done():
		logger.Info("shutting down")
		srv.Shutdown(context.Background())
	}
	return 0
}

func cmdMCP(args []string) int {
	fs := flag.NewFlagSet("mcp", flag.ExitOnError)
	cfgPath := fs.String("config", "config.yaml", "path to config file")
	fs.Parse(args)

	cfg, logger, err := setup(*cfgPath)
	if err != nil {
		return 1
	}
	norm, err := cfg.normalizer()
	if err != nil {
		logger.Error("failed to load lexicon", "error", err)
		return 1
	}

	srv := server.NewMCPServer("vegantree", version, server.WithToolCapabilities(false))
	api.RegisterMCPTools(srv, api.NewService(norm, cfg.Workers, logger))

	logger.Info("serving MCP over stdio")
	if err := server.ServeStdio(srv); err != nil {
		logger.Error("mcp server error", "error", err)
		return 1
	}
	return 0
}

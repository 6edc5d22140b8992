package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/openshelf/openshelf/config"
	"github.com/openshelf/openshelf/internal/app"
	"github.com/openshelf/openshelf/internal/shopapi"
	"github.com/openshelf/openshelf/internal/webserver"
)

var (
	h        = flag.Bool("h", false, "help usage")
	conffile = flag.String("c", "", "config file")
	initdb   = flag.Bool("initdb", false, "drop and recreate the database schema")
)

func printHelp() {
	if *h {
		ustr := fmt.Sprintf("openshelf usage:\n\nUsage: %s -h\n\nOptions:", os.Args[0])
		fmt.Fprintf(os.Stderr, "%s\n", ustr)
		flag.PrintDefaults()
		os.Exit(0)
	}
}

func main() {
	flag.Parse()
	printHelp()

	appConfig := config.LoadConfig(*conffile)
	application := app.NewApplication(appConfig)
	application.Init(appConfig)
	defer application.Release()

	if *initdb {
		application.InitDb()
		zap.S().Info("database initialized")
		return
	}

	webserver.Init(application)
	shopapi.Init(application)

	g, ctx := errgroup.WithContext(context.Background())

	g.Go(func() error {
		return webserver.Listen()
	})

	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		select {
		case sig := <-quit:
			zap.L().Info("shutting down", zap.String("signal", sig.String()))
		case <-ctx.Done():
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return webserver.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		zap.S().Error(err)
	}
}

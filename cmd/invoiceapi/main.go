package main

import (
	"context"
	"encoding/json"
	"expvar"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/jellydator/ttlcache/v3"
	"golang.org/x/time/rate"

	"github.com/orcka/invoiceapi/clients"
	"github.com/orcka/invoiceapi/config"
	"github.com/orcka/invoiceapi/data"
	"github.com/orcka/invoiceapi/handler"
	"github.com/orcka/invoiceapi/internal/jsonlog"
	"github.com/orcka/invoiceapi/service"
)

// app defines the application's layers and shared resources.
type app struct {
	config   config.Config
	service  service.Service
	handler  *handler.Handler
	limiters *ttlcache.Cache[string, *rate.Limiter]
}

// @title Invoice API
// @version 1.0.0
// @description Build and version metadata for the Invoice API.
// @BasePath /
func main() {
	configPath := flag.String("config", "", "path to YAML config file; environment variables override it")
	displayVersion := flag.Bool("version", false, "print build information and exit")
	healthcheck := flag.Bool("healthcheck", false, "probe the local healthcheck endpoint and exit")
	flag.Usage = cleanenv.FUsage(flag.CommandLine.Output(), &config.Config{}, nil, flag.Usage)
	flag.Parse()

	logger := jsonlog.New(os.Stdout, jsonlog.LevelInfo)

	// Initialize configuration
	cfg, err := config.Decode(*configPath)
	if err != nil {
		logger.PrintFatal(err, nil)
		os.Exit(1)
	}
	level, err := jsonlog.ParseLevel(cfg.Log.Level)
	if err != nil {
		logger.PrintFatal(err, nil)
		os.Exit(1)
	}
	logger = jsonlog.New(os.Stdout, level)

	service := service.New(cfg, time.Now)

	if *displayVersion {
		err = writeVersion(os.Stdout, service.BuildInfo())
		if err != nil {
			logger.PrintFatal(err, nil)
			os.Exit(1)
		}
		os.Exit(0)
	}

	if *healthcheck {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		url := fmt.Sprintf("http://127.0.0.1:%d/v1/healthcheck", cfg.Server.Port)
		code := probe(ctx, clients.NewHTTPClient(3*time.Second), url, logger)
		cancel()
		os.Exit(code)
	}

	info := service.BuildInfo()
	logger.PrintInfo("build information", map[string]string{
		"service_name":  info.ServiceName,
		"build_time":    info.BuildTime,
		"git_sha":       info.GitSHA,
		"build_version": info.BuildVersion,
		"go_version":    runtime.Version(),
	})

	// Publish the application version, the number of active goroutines
	// and the current Unix timestamp in the expvar handler
	expvar.NewString("version").Set(info.BuildVersion)
	expvar.Publish("goroutines", expvar.Func(func() any {
		return runtime.NumGoroutine()
	}))
	expvar.Publish("timestamp", expvar.Func(func() any {
		return time.Now().Unix()
	}))

	// Per-client rate limiters, evicted after three idle minutes
	limiters := handler.NewLimiterCache()
	go limiters.Start()

	// Application layers
	handler := handler.New(cfg, logger, limiters, service)

	// Instantiate application
	app := &app{
		config:   cfg,
		service:  service,
		handler:  handler,
		limiters: limiters,
	}

	// Start HTTP server
	err = app.serve(logger)
	if err != nil {
		logger.PrintFatal(err, nil)
		os.Exit(1)
	}
}

// writeVersion prints the build information as indented JSON.
func writeVersion(w io.Writer, info data.BuildInfo) error {
	js, err := json.MarshalIndent(info, "", "\t")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(js))
	return err
}

// probe checks the healthcheck endpoint at url and returns the process exit
// code: 0 when it answers 200 OK, 1 otherwise.
func probe(ctx context.Context, client *http.Client, url string, logger *jsonlog.Logger) int {
	err := clients.Probe(ctx, client, url)
	if err != nil {
		logger.PrintError(err, map[string]string{"url": url})
		return 1
	}
	return 0
}

package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	flag "github.com/spf13/pflag"

	"github.com/viant/fuzzyjoin/config"
	"github.com/viant/fuzzyjoin/logger"
	"github.com/viant/fuzzyjoin/tableio"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configFlag := flag.String("config", "", "YAML job file (or set FUZZYJOIN_CONFIG env var)")
	outputFlag := flag.String("output", "", "output CSV path, overrides the job output; stdout when both are empty (or set FUZZYJOIN_OUTPUT env var)")
	verboseFlag := flag.Bool("verbose", false, "enable verbose (debug) logging")
	metricsAddrFlag := flag.String("metrics-addr", "", "address to expose prometheus metrics on, e.g. :9090 (or set FUZZYJOIN_METRICS_ADDR env var)")
	flag.Parse()

	if env := os.Getenv("FUZZYJOIN_CONFIG"); env != "" {
		*configFlag = env
	}
	if env := os.Getenv("FUZZYJOIN_OUTPUT"); env != "" {
		*outputFlag = env
	}
	if env := os.Getenv("FUZZYJOIN_METRICS_ADDR"); env != "" {
		*metricsAddrFlag = env
	}
	if os.Getenv("FUZZYJOIN_VERBOSE") == "true" {
		*verboseFlag = true
	}

	log := logger.New(*verboseFlag)

	if *configFlag == "" {
		return fmt.Errorf("--config is required")
	}
	job, err := config.Load(*configFlag)
	if err != nil {
		return err
	}
	resolvePaths(job, *configFlag)
	if *outputFlag != "" {
		job.Output = *outputFlag
	}

	if *metricsAddrFlag != "" {
		listener, err := net.Listen("tcp", *metricsAddrFlag)
		if err != nil {
			return fmt.Errorf("failed to start prometheus metrics server listener: %w", err)
		}
		log.Info("prometheus metrics server listening", "address", listener.Addr().String())
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		go func() {
			if err := http.Serve(listener, mux); err != nil {
				log.Error("failed to start prometheus metrics server", "error", err)
			}
		}()
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	out, err := runJob(ctx, log, job)
	if err != nil {
		return err
	}
	if job.Output == "" {
		return tableio.WriteCSV(os.Stdout, out)
	}
	if err := tableio.WriteCSVFile(job.Output, out); err != nil {
		return err
	}
	log.Info("fuzzy join written", "output", job.Output, "rows", out.Len(), "columns", len(out.Columns()))
	return nil
}

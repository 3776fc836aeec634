// mockapi is the development fixture server for the FolioDesk client. It
// serves the five portfolio API endpoints with canned data so the client can
// be exercised without the real backend.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"

	"foliodesk/pkg/logger"
)

type serverFlags struct {
	addr    string
	fail    string
	latency time.Duration
	live    bool
}

func runServe(flags serverFlags) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log, err := logger.New("info", "console")
	if err != nil {
		return err
	}
	defer log.Sync()

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	h := NewHandler(Options{Fail: flags.fail, Latency: flags.latency, Live: flags.live}, log)
	h.RegisterRoutes(e)

	go func() {
		log.Info("mock portfolio API listening", logger.StringField("address", flags.addr))
		if err := e.Start(flags.addr); err != nil && err != http.ErrServerClosed {
			log.Error("server failed", logger.ErrorField(err))
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func main() {
	var flags serverFlags

	rootCmd := &cobra.Command{
		Use:          "mockapi",
		Short:        "Development fixture server for the FolioDesk client",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(flags)
		},
	}

	rootCmd.Flags().StringVar(&flags.addr, "addr", ":5000", "Listen address")
	rootCmd.Flags().StringVar(&flags.fail, "fail", "", "Force HTTP 500 on one endpoint: upload, sentiment, stock, news or analyze")
	rootCmd.Flags().DurationVar(&flags.latency, "latency", 0, "Simulated processing delay per request")
	rootCmd.Flags().BoolVar(&flags.live, "live", false, "Fetch real daily closes from Yahoo Finance for /get-stock-data")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

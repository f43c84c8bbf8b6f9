// Command leavedesk-mock serves an in-memory leave desk backend for local
// development and demos.
//
// Usage:
//
//	leavedesk-mock --addr 127.0.0.1:8000 --seed
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/naveenspark/leavedesk/internal/mockapi"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		addr string
		seed bool
	)
	cmd := &cobra.Command{
		Use:          "leavedesk-mock",
		Short:        "Run an in-memory leave desk backend",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := zap.NewDevelopment()
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			backend := mockapi.New(mockapi.WithLogger(logger))
			if seed {
				backend.Seed()
				fmt.Fprintf(cmd.OutOrStdout(), "seeded %s and %s (password %q)\n",
					mockapi.DemoSupervisorEmail, mockapi.DemoEmployeeEmail, mockapi.DemoPassword)
			}
			return serve(cmd.Context(), logger, addr, backend.Handler())
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8000", "listen address")
	cmd.Flags().BoolVar(&seed, "seed", true, "create demo accounts and leave requests")
	return cmd
}

func serve(ctx context.Context, logger *zap.Logger, addr string, h http.Handler) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

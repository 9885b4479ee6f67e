package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jackyeh168/loyalty_crm/src/internal/infrastructure/config"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const defaultShutdownTimeout = 10 * time.Second

// Run 啟動 HTTP 服務，ctx 結束時優雅關閉
func Run(ctx context.Context, cfg config.HTTPConfig, handler http.Handler, log *zap.Logger) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	timeout := cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}

	eg, groupCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		log.Info("http server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	eg.Go(func() error {
		<-groupCtx.Done()
		log.Info("http server stopping")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Warn("http server shutdown failed", zap.Error(err))
			return err
		}
		return nil
	})

	return eg.Wait()
}

package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/configs"
	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/events"
	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/routes"
	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/services"
	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/utils/calc"
	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/utils/metrics"
	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/utils/token"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const shutdownTimeout = 15 * time.Second

func orderConfig(env configs.ENV) services.OrderServiceConfig {
	return services.OrderServiceConfig{
		Timeout:  env.OrderTxTimeout,
		Attempts: env.OrderNumberAttempts,
		Pricing:  calc.NewPolicy(env.TaxPercent, env.ShippingFlat, env.FreeShippingOver),
	}
}

// Serve runs the HTTP API until ctx is cancelled, then drains in-flight requests.
func Serve(ctx context.Context, env configs.ENV, log *zap.Logger, db *gorm.DB) error {
	if env.JWTSecret == "" {
		return errors.New("JWT_SECRET is empty, run generate-keys and add it to .env")
	}

	publisher := events.NewPublisher(env.KafkaBrokers, env.KafkaTopic, log)
	defer func() {
		if err := publisher.Close(); err != nil {
			log.Warn("failed to close event publisher", zap.Error(err))
		}
	}()

	router := routes.NewRouter(routes.Dependencies{
		DB:          db,
		Log:         log,
		Metrics:     metrics.New(),
		Publisher:   publisher,
		Tokens:      token.NewManager(env.JWTSecret, env.TokenTTL),
		Orders:      orderConfig(env),
		Development: env.IsDevelopment(),
	})

	server := &http.Server{
		Addr:              env.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting", zap.String("addr", server.Addr), zap.String("env", env.AppEnv))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

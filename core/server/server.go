package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Ecospace254/employee-sub000/core/cache"
	"github.com/Ecospace254/employee-sub000/core/config"
	"github.com/Ecospace254/employee-sub000/core/constants"
	"github.com/Ecospace254/employee-sub000/core/database"
	"github.com/Ecospace254/employee-sub000/core/logger"
	"github.com/Ecospace254/employee-sub000/core/middleware"
	"github.com/Ecospace254/employee-sub000/core/reminder"
	"github.com/Ecospace254/employee-sub000/modules/auth"
	"github.com/Ecospace254/employee-sub000/modules/event"
	"github.com/Ecospace254/employee-sub000/modules/notification"
	"github.com/Ecospace254/employee-sub000/modules/user"

	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// Run boots the full API: config, logging, postgres, redis, the HTTP
// surface, and the reminder worker. It blocks until SIGINT/SIGTERM and
// shuts everything down in order.
func Run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger.Init(cfg.Log.Level, cfg.Log.Pretty)

	db, err := database.InitDB(cfg.Database)
	if err != nil {
		return fmt.Errorf("init database: %w", err)
	}
	defer db.Close()

	redisCache, err := cache.NewRedisCache(cfg.Redis)
	if err != nil {
		return fmt.Errorf("init redis: %w", err)
	}

	mw := middleware.NewMiddleware(redisCache)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(echoMw.Recover())
	e.Use(echoMw.RequestID())
	e.Use(requestLogger())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}
	reminders := reminder.NewScheduler(redisOpt, time.Duration(cfg.Reminder.LeadMinutes)*time.Minute)
	defer reminders.Close()

	auth.Init(e, db, redisCache, mw)
	user.Init(e, db, mw)
	notifSvc := notification.Init(e, db, mw)
	event.Init(e, db, notifSvc, reminders, mw)

	worker := reminder.NewWorker(redisOpt, cfg.Reminder.Concurrency, notifSvc)
	if err := worker.Start(); err != nil {
		return fmt.Errorf("start reminder worker: %w", err)
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	go func() {
		logger.Info("Server:Listening", "addr", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server:Start", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Server:ShuttingDown")

	worker.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), constants.DefaultShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	return nil
}

// requestLogger logs one line per request through the shared logger.
func requestLogger() echo.MiddlewareFunc {
	return echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			args := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency.String(),
			}
			if v.Error != nil {
				args = append(args, "error", v.Error.Error())
				logger.Warn("Request", args...)
				return nil
			}
			logger.Info("Request", args...)
			return nil
		},
	})
}

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/caducidad-api/internal/application/shelflife"
	"github.com/jhoicas/caducidad-api/internal/domain/calendar"
	engine "github.com/jhoicas/caducidad-api/internal/domain/shelflife"
	"github.com/jhoicas/caducidad-api/internal/infrastructure/clock"
	"github.com/jhoicas/caducidad-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/caducidad-api/internal/infrastructure/pdf"
	httpRouter "github.com/jhoicas/caducidad-api/internal/interfaces/http"
	"github.com/jhoicas/caducidad-api/pkg/config"
	"github.com/jhoicas/caducidad-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.Log.Level,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("strategy", cfg.ShelfLife.ThresholdStrategy).
		Str("timezone", cfg.ShelfLife.Timezone).
		Msg("iniciando aplicación")

	// Config ya validó estrategia y zona horaria.
	strategy, _ := engine.StrategyByName(cfg.ShelfLife.ThresholdStrategy)
	loc, _ := cfg.ShelfLife.Location()

	sysClock := clock.System{}
	recorder := metrics.NewRecorder()
	evaluateUC := shelflife.NewEvaluateUseCase(sysClock, shelflife.NewAlertTracker(), recorder, log.Component("shelflife"), shelflife.Options{
		Strategy:          strategy,
		ToleranceBandDays: cfg.ShelfLife.ToleranceBandDays,
		Location:          loc,
	})
	labelUC := shelflife.NewLabelUseCase(evaluateUC, infrapdf.NewMarotoLabelGenerator())

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Caducidad API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		EvaluateUC: evaluateUC,
		LabelUC:    labelUC,
		Metrics:    recorder.Handler(),
	})

	// Cambio de día: re-evaluar las sesiones abiertas para que las alertas nuevas aparezcan.
	ctx, stop := context.WithCancel(context.Background())
	defer stop()
	watcher := clock.NewRolloverWatcher(sysClock, loc, cfg.ShelfLife.RolloverInterval,
		func(ctx context.Context, _, _ calendar.Date) {
			fresh, err := evaluateUC.ReevaluateAll(ctx)
			if err != nil {
				log.Warn().Err(err).Msg("re-evaluación tras cambio de día")
				return
			}
			log.Info().Int("new_alerts", fresh).Msg("sesiones re-evaluadas")
		}, log.Component("rollover"))
	go watcher.Run(ctx)

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

package main

import (
	"context"
	"flag"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jhoicas/caducidad-api/internal/application/shelflife"
	"github.com/jhoicas/caducidad-api/internal/domain/calendar"
	engine "github.com/jhoicas/caducidad-api/internal/domain/shelflife"
	"github.com/jhoicas/caducidad-api/internal/infrastructure/clock"
	"github.com/jhoicas/caducidad-api/pkg/config"
	"github.com/jhoicas/caducidad-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	in := flag.String("in", "-", "CSV de entrada (production_date,shelf_life_days[,sku]); - para stdin")
	out := flag.String("out", "-", "CSV de salida; - para stdout")
	today := flag.String("today", "", "Fecha de referencia (YYYY-MM-DD); por defecto hoy")
	strategyName := flag.String("strategy", cfg.ShelfLife.ThresholdStrategy, "Estrategia de umbral: round_days, floor_days, months, quarter_months")
	band := flag.Int("band", cfg.ShelfLife.ToleranceBandDays, "Banda de tolerancia en días")
	quiet := flag.Bool("q", false, "Sin barra de progreso")
	flag.Parse()

	// Los logs van a stderr para no mezclarse con el CSV.
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level, Output: os.Stderr, Service: cfg.App.Name}).Component("batch")

	strategy, err := engine.StrategyByName(*strategyName)
	if err != nil {
		log.Fatal().Err(err).Msg("estrategia")
	}
	loc, _ := cfg.ShelfLife.Location()

	var src shelflife.Clock = clock.System{}
	if *today != "" {
		d, err := calendar.ParseDate(*today)
		if err != nil {
			log.Fatal().Err(err).Msg("-today")
		}
		src = clock.NewFixed(d.Time(loc).Add(12 * time.Hour))
	}

	r := io.Reader(os.Stdin)
	if *in != "-" {
		f, err := os.Open(*in)
		if err != nil {
			log.Fatal().Err(err).Msg("abrir entrada")
		}
		defer f.Close()
		r = f
	}
	w := io.Writer(os.Stdout)
	if *out != "-" {
		f, err := os.Create(*out)
		if err != nil {
			log.Fatal().Err(err).Msg("crear salida")
		}
		defer f.Close()
		w = f
	}

	var progress io.Writer = os.Stderr
	if *quiet {
		progress = nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	uc := shelflife.NewEvaluateUseCase(src, nil, nil, log, shelflife.Options{
		Strategy:          strategy,
		ToleranceBandDays: *band,
		Location:          loc,
	})
	results, err := shelflife.NewBatchEvaluator(uc, progress).Run(ctx, r)
	if err != nil {
		log.Error().Err(err).Msg("evaluación por lotes")
		if len(results) == 0 {
			os.Exit(1)
		}
	}
	if err := shelflife.WriteResultsCSV(w, results); err != nil {
		log.Fatal().Err(err).Msg("escribir resultados")
	}

	ev := log.Info().Int("rows", len(results)).Str("today", uc.Today().ISO()).Str("strategy", uc.StrategyName())
	for status, n := range shelflife.CountByStatus(results) {
		ev = ev.Int(status, n)
	}
	ev.Msg("lotes evaluados")
}

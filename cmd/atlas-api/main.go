// README: Entry point; loads config, wires collaborators, starts the HTTP API.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"atlas/internal/ai"
	"atlas/internal/config"
	"atlas/internal/geo"
	httptransport "atlas/internal/http"
	"atlas/internal/infra"
	"atlas/internal/logx"
	"atlas/internal/modules/conversation"
	"atlas/internal/modules/dialogue"
	"atlas/internal/modules/profile"
	"atlas/internal/modules/search"
	"atlas/internal/service"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logx.Fatal().Err(err).Msg("config")
	}
	logx.Init(logx.Opts{Production: cfg.Production})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := infra.NewDB(ctx, cfg.DBDSN)
	if err != nil {
		logx.Fatal().Err(err).Msg("postgres")
	}
	defer dbPool.Close()

	redisClient := infra.NewRedis(cfg.RedisAddr)

	aiProvider, err := ai.NewGeminiProvider(ctx, cfg.GeminiKey)
	if err != nil {
		logx.Fatal().Err(err).Msg("gemini init")
	}
	defer aiProvider.Close()

	var currency dialogue.CurrencyResolver
	if cfg.MapsKey != "" {
		geocoder, err := geo.NewGeocoder(cfg.MapsKey, cfg.Dialogue.DefaultCurrency)
		if err != nil {
			logx.Fatal().Err(err).Msg("maps init")
		}
		currency = geocoder
	} else {
		logx.Warn().Msg("no maps key; currency resolution uses the static table only")
		currency = &geo.StaticCurrencyResolver{Fallback: cfg.Dialogue.DefaultCurrency}
	}

	turns := conversation.NewStore(redisClient, cfg.Dialogue.HistoryWindow*4)
	profiles := profile.NewService(profile.NewPgStore(dbPool))

	resolver := dialogue.NewResolver(
		dialogue.NewClassifier(aiProvider),
		currency,
		dialogue.ResolverOpts{
			HistoryWindow:   cfg.Dialogue.HistoryWindow,
			DefaultCurrency: cfg.Dialogue.DefaultCurrency,
		},
	)

	chatSvc := service.NewChatService(
		resolver,
		aiProvider,
		search.MockFlights{},
		search.MockHotels{},
		profiles,
		turns,
		service.ChatOpts{HistoryWindow: cfg.Dialogue.HistoryWindow},
	)

	handler := httptransport.NewRouter(chatSvc, turns, profiles)
	server := &http.Server{Addr: cfg.HTTPAddr, Handler: handler}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	logx.Info().Str("addr", cfg.HTTPAddr).Msg("listening")
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logx.Fatal().Err(err).Msg("http server")
	}
}

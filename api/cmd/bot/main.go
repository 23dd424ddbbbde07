package main

import (
	"context"
	"fmt"
	"hash/fnv"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"tutor-proxy/api/internal/app"
	"tutor-proxy/api/internal/config"
	"tutor-proxy/api/internal/httpserver"
	"tutor-proxy/api/internal/logging"
	"tutor-proxy/api/internal/telegram"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if cfg.TelegramToken == "" {
		log.Fatal("missing required env TELEGRAM_BOT_TOKEN")
	}
	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	tutors, err := app.Tutors(cfg, logger)
	if err != nil {
		logger.Fatal("build tutors", zap.Error(err))
	}

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		logger.Fatal("telegram", zap.Error(err))
	}
	bot.Debug = false

	r := &telegram.Router{
		Bot:     bot,
		Tutors:  tutors,
		Log:     logger.Named("telegram"),
		Timeout: cfg.RequestTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mux := http.NewServeMux()
	mux.Handle("/healthz", httpserver.Healthz("ok"))

	g, gctx := errgroup.WithContext(ctx)
	addr := "0.0.0.0:" + cfg.Port

	if webhookURL := strings.TrimSpace(cfg.WebhookURL); webhookURL != "" {
		path := "/webhook/" + shortHash(bot.Token)
		wh, err := tgbotapi.NewWebhook(strings.TrimRight(webhookURL, "/") + path)
		if err != nil {
			logger.Fatal("webhook", zap.Error(err))
		}
		wh.DropPendingUpdates = true
		if _, err := bot.Request(wh); err != nil {
			logger.Fatal("set webhook", zap.Error(err))
		}

		updates := make(chan tgbotapi.Update, bot.Buffer)
		mux.HandleFunc(path, func(w http.ResponseWriter, req *http.Request) {
			upd, err := bot.HandleUpdate(req)
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			select {
			case updates <- *upd:
			case <-req.Context().Done():
			}
		})
		g.Go(func() error {
			for {
				select {
				case <-gctx.Done():
					return nil
				case upd := <-updates:
					r.HandleUpdate(gctx, upd)
				}
			}
		})
		logger.Info("webhook mode", zap.String("path", path))
	} else {
		g.Go(func() error {
			err := telegram.RunPolling(gctx, bot, logger.Named("polling"), func(upd tgbotapi.Update) {
				r.HandleUpdate(gctx, upd)
			})
			if gctx.Err() != nil {
				return nil
			}
			return err
		})
		logger.Info("polling mode")
	}

	g.Go(func() error {
		return httpserver.Run(gctx, addr, mux, logger)
	})

	if err := g.Wait(); err != nil {
		logger.Fatal("bot stopped", zap.Error(err))
	}
}

// shortHash keeps the webhook path stable per token without exposing it.
func shortHash(s string) string {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return fmt.Sprintf("%016x", h.Sum64())
}

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"draftPublisher/internal/browser"
	"draftPublisher/internal/cli"
	"draftPublisher/internal/cli/commands"
	"draftPublisher/internal/config"
	"draftPublisher/internal/database"
	"draftPublisher/internal/logger"
	"draftPublisher/internal/migrations"
	"draftPublisher/internal/server"
	"draftPublisher/internal/studio"
	"draftPublisher/internal/youtube"

	"go.uber.org/zap"
	"google.golang.org/api/option"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.Logger.Env, cfg.Logger.Level)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := migrations.Run(cfg, log); err != nil {
		log.Fatal("Ошибка миграций", zap.Error(err))
	}

	var repo *database.UploadRepository
	if cfg.Database.Enabled() {
		db, err := database.New(cfg, log)
		if err != nil {
			log.Fatal("Ошибка подключения к БД", zap.Error(err))
		}
		defer db.Close(log)
		repo = database.NewUploadRepository(db.DB)
	}

	br := browser.New(browser.Config{
		Headless:     cfg.Browser.Headless,
		UserDataDir:  cfg.Browser.UserDataDir,
		BrowsersPath: cfg.Browser.BrowsersPath,
		Display:      cfg.Browser.Display,
	})

	st := studio.New(br, cfg.Studio.URL, cfg.Publish.Publisher(), log.Logger)
	defer func() {
		if err := st.Close(); err != nil {
			log.Warn("Ошибка закрытия браузера", zap.Error(err))
		}
	}()

	library := func(ctx context.Context, prompt youtube.Prompter) (commands.Library, error) {
		auth := youtube.NewAuthenticator(cfg.YouTube.ClientID, cfg.YouTube.ClientSecret, cfg.YouTube.TokenPath, prompt, log.Logger)
		ts, err := auth.Authenticate(ctx)
		if err != nil {
			return nil, err
		}
		client, err := youtube.NewClient(ctx,
			youtube.ClientConfig{RequestsPerSecond: cfg.YouTube.RequestsPerSecond},
			log.Logger,
			option.WithTokenSource(ts))
		if err != nil {
			return nil, err
		}
		var ledger youtube.Ledger
		if repo != nil {
			ledger = repo
		}
		return youtube.NewLibrary(client, ledger, cfg.YouTube.PlaylistID, log.Logger), nil
	}

	var uploads commands.UploadLister
	if repo != nil {
		uploads = repo
	}

	if cfg.App.Port != "" {
		srv := server.New(cfg, log, st, uploads)
		go func() {
			if err := srv.Run(ctx); err != nil {
				log.Error("Ошибка HTTP-сервера", zap.Error(err))
			}
		}()
	}

	console := cli.New(cli.Deps{
		Studio:     st,
		Visibility: cfg.Publish.Visibility,
		Library:    library,
		Uploads:    uploads,
		VideosDir:  cfg.YouTube.VideosDir,
	}, log)
	console.Run(ctx)
}

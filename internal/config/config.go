package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"draftPublisher/internal/publisher"

	"github.com/joho/godotenv"
)

type Cfg struct {
	App        App
	Database   Database
	Logger     Logger
	Browser    Browser
	Studio     Studio
	Publish    Publish
	YouTube    YouTube
	Migrations Migrations
}

type App struct {
	Host string
	Port string
}

type Database struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
}

// Enabled: журнал загрузок включен, только если задан DB_HOST.
func (d Database) Enabled() bool {
	return d.Host != ""
}

// DSN: строка подключения для gorm.
func (d Database) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

// URL: строка подключения для golang-migrate.
func (d Database) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

type Migrations struct {
	Path string
}

type Logger struct {
	Env   string
	Level string
}

type Browser struct {
	Display      string
	Headless     bool
	UserDataDir  string
	BrowsersPath string
}

type Studio struct {
	URL string
}

type Publish struct {
	Visibility publisher.Visibility
	Selectors  publisher.Selectors
	Timings    publisher.Timings
}

// Publisher возвращает конфигурацию публикатора.
func (p Publish) Publisher() publisher.Config {
	return publisher.Config{Selectors: p.Selectors, Timings: p.Timings}
}

type YouTube struct {
	ClientID          string
	ClientSecret      string
	PlaylistID        string
	TokenPath         string
	VideosDir         string
	RequestsPerSecond float64
}

func Load() (*Cfg, error) {
	_ = godotenv.Load()

	sel := publisher.DefaultSelectors()
	timings := publisher.DefaultTimings()

	cfg := &Cfg{
		App: App{
			Host: env("APP_HOST", "127.0.0.1"),
			Port: os.Getenv("APP_PORT"),
		},
		Database: Database{
			Host:     os.Getenv("DB_HOST"),
			Port:     env("DB_PORT", "5432"),
			Name:     os.Getenv("DB_NAME"),
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASS"),
			SSLMode:  env("DB_SSLMODE", "disable"),
		},
		Logger: Logger{
			Env:   env("ENV", "dev"),
			Level: env("LOG_LEVEL", "info"),
		},
		Browser: Browser{
			Display:      env("DISPLAY", ":0"),
			Headless:     envBool("PW_HEADLESS"),
			UserDataDir:  env("PW_USER_DATA_DIR", "./userdata"),
			BrowsersPath: env("PLAYWRIGHT_BROWSERS_PATH", ""),
		},
		Studio: Studio{
			URL: env("STUDIO_URL", "https://studio.youtube.com/channel/UC/videos/upload"),
		},
		Publish: Publish{
			Selectors: publisher.Selectors{
				Row:              env("SEL_ROW", sel.Row),
				EditButton:       env("SEL_EDIT_BUTTON", sel.EditButton),
				DraftPanel:       env("SEL_DRAFT_PANEL", sel.DraftPanel),
				VisibilityStep:   env("SEL_VISIBILITY_STEP", sel.VisibilityStep),
				OptionsContainer: env("SEL_OPTIONS_CONTAINER", sel.OptionsContainer),
				Option:           env("SEL_OPTION", sel.Option),
				Save:             env("SEL_SAVE", sel.Save),
			},
			Timings: publisher.Timings{
				PollInterval:   envDuration("PUBLISH_POLL_INTERVAL_MS", timings.PollInterval),
				AcquireTimeout: envDuration("PUBLISH_ACQUIRE_TIMEOUT_MS", timings.AcquireTimeout),
				ProbeTimeout:   envDuration("PUBLISH_PROBE_TIMEOUT_MS", timings.ProbeTimeout),
				PanelSettle:    envDuration("PUBLISH_PANEL_SETTLE_MS", timings.PanelSettle),
				StepSettle:     envDuration("PUBLISH_STEP_SETTLE_MS", timings.StepSettle),
				SaveSettle:     envDuration("PUBLISH_SAVE_SETTLE_MS", timings.SaveSettle),
				ListTimeout:    envDuration("PUBLISH_LIST_TIMEOUT_MS", timings.ListTimeout),
			},
		},
		YouTube: YouTube{
			ClientID:          os.Getenv("CLIENT_ID"),
			ClientSecret:      os.Getenv("CLIENT_SECRET"),
			PlaylistID:        os.Getenv("PLAYLIST_ID_TO_INSERT_VIDEOS"),
			TokenPath:         env("TOKEN_PATH", "./client_oauth_token.json"),
			VideosDir:         env("VIDEOS_DIR", "./videos"),
			RequestsPerSecond: envFloat("YT_REQUESTS_PER_SECOND", 5),
		},
		Migrations: Migrations{
			Path: env("MIGRATIONS_PATH", "file://migrations"),
		},
	}

	v, err := publisher.ParseVisibility(env("PUBLISH_VISIBILITY", "restricted"))
	if err != nil {
		return nil, fmt.Errorf("PUBLISH_VISIBILITY: %w", err)
	}
	cfg.Publish.Visibility = v

	if err := cfg.Publish.Selectors.Validate(); err != nil {
		return nil, fmt.Errorf("селекторы: %w", err)
	}
	if cfg.YouTube.RequestsPerSecond <= 0 {
		return nil, errors.New("YT_REQUESTS_PER_SECOND должен быть больше нуля")
	}

	return cfg, nil
}

func env(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func envInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultValue
}

func envFloat(key string, defaultValue float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

// envDuration читает значение в миллисекундах.
func envDuration(key string, defaultValue time.Duration) time.Duration {
	ms := envInt(key, -1)
	if ms < 0 {
		return defaultValue
	}
	return time.Duration(ms) * time.Millisecond
}

func envBool(key string) bool {
	v := strings.ToLower(os.Getenv(key))
	return v == "true" || v == "1" || v == "yes"
}

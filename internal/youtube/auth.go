package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	yt "google.golang.org/api/youtube/v3"
)

const redirectURL = "http://localhost"

// Prompter задает вопрос оператору и возвращает ответ.
type Prompter interface {
	Ask(ctx context.Context, question string) (string, error)
}

// Authenticator получает OAuth-токен канала: из кэша или через ввод кода оператором.
type Authenticator struct {
	oauth     *oauth2.Config
	tokenPath string
	prompt    Prompter
	out       io.Writer
	log       *zap.Logger
}

type AuthOption func(*Authenticator)

// WithEndpoint подменяет адреса OAuth-сервера.
func WithEndpoint(endpoint oauth2.Endpoint) AuthOption {
	return func(a *Authenticator) {
		a.oauth.Endpoint = endpoint
	}
}

func WithOutput(w io.Writer) AuthOption {
	return func(a *Authenticator) {
		a.out = w
	}
}

func NewAuthenticator(clientID, clientSecret, tokenPath string, prompt Prompter, log *zap.Logger, opts ...AuthOption) *Authenticator {
	if log == nil {
		log = zap.NewNop()
	}
	a := &Authenticator{
		oauth: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Endpoint:     google.Endpoint,
			RedirectURL:  redirectURL,
			Scopes:       []string{yt.YoutubeScope},
		},
		tokenPath: tokenPath,
		prompt:    prompt,
		out:       os.Stdout,
		log:       log,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Authenticate возвращает источник токенов. Обновленные токены сохраняются обратно в кэш.
func (a *Authenticator) Authenticate(ctx context.Context) (oauth2.TokenSource, error) {
	if a.oauth.ClientID == "" || a.oauth.ClientSecret == "" {
		return nil, errors.New("не заданы CLIENT_ID и CLIENT_SECRET")
	}

	tok, err := readToken(a.tokenPath)
	switch {
	case err == nil && (tok.Valid() || tok.RefreshToken != ""):
		a.log.Debug("Токен загружен из кэша", zap.String("path", a.tokenPath))
	case err != nil && !errors.Is(err, os.ErrNotExist):
		a.log.Warn("Кэш токена не читается, нужна повторная авторизация", zap.Error(err))
		fallthrough
	default:
		tok, err = a.authorize(ctx)
		if err != nil {
			return nil, err
		}
	}

	return &persistingSource{
		base: a.oauth.TokenSource(ctx, tok),
		last: tok,
		path: a.tokenPath,
		log:  a.log,
	}, nil
}

func (a *Authenticator) authorize(ctx context.Context) (*oauth2.Token, error) {
	if a.prompt == nil {
		return nil, errors.New("нет кэша токена и некому ввести код авторизации")
	}

	url := a.oauth.AuthCodeURL("state", oauth2.AccessTypeOffline)
	fmt.Fprintf(a.out, "\nАвторизуйте приложение по ссылке:\n\n%s\n", url)

	code, err := a.prompt.Ask(ctx, "\nПосле авторизации вставьте код из адреса открывшейся страницы: ")
	if err != nil {
		return nil, fmt.Errorf("ввод кода: %w", err)
	}
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, errors.New("пустой код авторизации")
	}

	tok, err := a.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("обмен кода на токен: %w", err)
	}
	if err := writeToken(a.tokenPath, tok); err != nil {
		return nil, err
	}
	a.log.Info("Токен сохранен", zap.String("path", a.tokenPath))
	return tok, nil
}

// persistingSource записывает токен в кэш каждый раз, когда он обновился.
type persistingSource struct {
	base oauth2.TokenSource
	path string
	log  *zap.Logger

	mu   sync.Mutex
	last *oauth2.Token
}

func (s *persistingSource) Token() (*oauth2.Token, error) {
	tok, err := s.base.Token()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.last == nil || tok.AccessToken != s.last.AccessToken {
		if err := writeToken(s.path, tok); err != nil {
			s.log.Warn("Не удалось сохранить обновленный токен", zap.Error(err))
		}
		s.last = tok
	}
	return tok, nil
}

func readToken(path string) (*oauth2.Token, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var tok oauth2.Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil, fmt.Errorf("разбор %s: %w", path, err)
	}
	return &tok, nil
}

// writeToken заменяет файл атомарно: временный файл рядом и rename.
func writeToken(path string, tok *oauth2.Token) error {
	data, err := json.MarshalIndent(tok, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("создание каталога: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".token-*.tmp")
	if err != nil {
		return fmt.Errorf("временный файл: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o600); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("запись %s: %w", path, err)
	}
	return nil
}

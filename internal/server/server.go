package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"draftPublisher/internal/config"
	"draftPublisher/internal/database"
	"draftPublisher/internal/logger"
	"draftPublisher/internal/publisher"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Studio interface {
	EnsureOpen(ctx context.Context) error
	PublishAllEligibleDrafts(ctx context.Context, v publisher.Visibility) (int, error)
}

type UploadLister interface {
	ListUploads(ctx context.Context, limit, offset int) ([]database.Upload, error)
}

type Server struct {
	cfg     *config.Cfg
	log     *logger.Zap
	studio  Studio
	uploads UploadLister
}

// New создает HTTP-сервер. uploads может быть nil, если журнал загрузок отключен.
func New(cfg *config.Cfg, log *logger.Zap, studio Studio, uploads UploadLister) *Server {
	return &Server{
		cfg:     cfg,
		log:     log,
		studio:  studio,
		uploads: uploads,
	}
}

func (s *Server) Handler() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery())

	// Простейший лог-мидлвар
	r.Use(func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Info("HTTP",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("took", time.Since(start)),
		)
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Опубликовать все черновики на странице контента
	r.POST("/api/publish", s.publish)

	r.GET("/api/uploads", func(c *gin.Context) {
		if s.uploads == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "upload ledger disabled"})
			return
		}
		uploads, err := s.uploads.ListUploads(c.Request.Context(), 50, 0)
		if err != nil {
			s.log.Error("db list uploads", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		c.JSON(http.StatusOK, uploads)
	})

	return r
}

func (s *Server) publish(c *gin.Context) {
	var req struct {
		Visibility string `json:"visibility"`
	}
	// тело может прийти без Content-Length (chunked), пустое тело допустимо
	if c.Request.Body != nil && c.Request.Body != http.NoBody {
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	v := s.cfg.Publish.Visibility
	if req.Visibility != "" {
		parsed, err := publisher.ParseVisibility(req.Visibility)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		v = parsed
	}

	ctx := c.Request.Context()
	err := s.studio.EnsureOpen(ctx)
	n := 0
	if err == nil {
		n, err = s.studio.PublishAllEligibleDrafts(ctx, v)
	}

	var abort *publisher.AbortError
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"published": n, "visibility": v.String()})
	case errors.Is(err, publisher.ErrBatchInProgress):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.As(err, &abort):
		s.log.Error("Публикация прервана", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     abort.Err.Error(),
			"published": abort.Completed,
			"item":      abort.Item + 1,
			"state":     abort.State.String(),
		})
	default:
		s.log.Error("Ошибка публикации", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// Run обслуживает запросы до отмены ctx.
func (s *Server) Run(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%s", s.cfg.App.Host, s.cfg.App.Port)
	srv := &http.Server{Addr: addr, Handler: s.Handler()}

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.ListenAndServe()
	}()
	s.log.Info("Сервер запущен", zap.String("addr", addr))

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	}
}

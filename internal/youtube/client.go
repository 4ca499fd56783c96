// Package youtube загружает ролики через YouTube Data API и приводит в порядок
// их названия перед публикацией черновиков в консоли.
package youtube

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	yt "google.golang.org/api/youtube/v3"
)

const (
	categoryPeopleAndBlogs = "22"
	privacyPrivate         = "private"
	pageSize               = 50
)

// PlaylistVideo: элемент плейлиста: ролик и его текущее название.
type PlaylistVideo struct {
	VideoID string
	Title   string
}

type ClientConfig struct {
	RequestsPerSecond float64
	Retries           int
	RetryDelay        time.Duration
}

func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		RequestsPerSecond: 5,
		Retries:           3,
		RetryDelay:        2 * time.Second,
	}
}

// Client: обертка над YouTube Data API с ограничением частоты и повтором временных ошибок.
type Client struct {
	svc        *yt.Service
	limiter    *rate.Limiter
	retries    int
	retryDelay time.Duration
	log        *zap.Logger
}

// NewClient создает клиента. Авторизация передается через opts, например option.WithTokenSource.
func NewClient(ctx context.Context, cfg ClientConfig, log *zap.Logger, opts ...option.ClientOption) (*Client, error) {
	if log == nil {
		log = zap.NewNop()
	}
	d := DefaultClientConfig()
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = d.RequestsPerSecond
	}
	if cfg.Retries <= 0 {
		cfg.Retries = d.Retries
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = d.RetryDelay
	}

	svc, err := yt.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create youtube service: %w", err)
	}

	return &Client{
		svc:        svc,
		limiter:    rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
		retries:    cfg.Retries,
		retryDelay: cfg.RetryDelay,
		log:        log,
	}, nil
}

func videoBody(id, title string) *yt.Video {
	return &yt.Video{
		Id: id,
		Snippet: &yt.VideoSnippet{
			Title:      title,
			CategoryId: categoryPeopleAndBlogs,
		},
		Status: &yt.VideoStatus{
			PrivacyStatus:           privacyPrivate,
			SelfDeclaredMadeForKids: false,
			ForceSendFields:         []string{"SelfDeclaredMadeForKids"},
		},
	}
}

// UploadMedia загружает файл приватным черновиком. Загрузка не повторяется:
// повтор мог бы создать второй ролик.
func (c *Client) UploadMedia(ctx context.Context, path, title string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	video, err := c.svc.Videos.Insert([]string{"snippet", "status"}, videoBody("", title)).
		Media(f).
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("загрузка %s: %w", path, err)
	}
	if video.Id == "" {
		return "", fmt.Errorf("загрузка %s: в ответе нет id ролика", path)
	}

	c.log.Info("Ролик загружен", zap.String("path", path), zap.String("title", title), zap.String("video_id", video.Id))
	return video.Id, nil
}

func (c *Client) EditMetadata(ctx context.Context, videoID, title string) error {
	return c.call(ctx, "videos.update", func(ctx context.Context) error {
		_, err := c.svc.Videos.Update([]string{"snippet", "status"}, videoBody(videoID, title)).Context(ctx).Do()
		return err
	})
}

func (c *Client) InsertIntoCollection(ctx context.Context, playlistID, videoID string) error {
	item := &yt.PlaylistItem{
		Snippet: &yt.PlaylistItemSnippet{
			PlaylistId: playlistID,
			ResourceId: &yt.ResourceId{
				Kind:    "youtube#video",
				VideoId: videoID,
			},
		},
	}
	return c.call(ctx, "playlistItems.insert", func(ctx context.Context) error {
		_, err := c.svc.PlaylistItems.Insert([]string{"snippet"}, item).Context(ctx).Do()
		return err
	})
}

// UploadsPlaylistID возвращает плейлист загрузок канала владельца токена.
func (c *Client) UploadsPlaylistID(ctx context.Context) (string, error) {
	var id string
	err := c.call(ctx, "channels.list", func(ctx context.Context) error {
		resp, err := c.svc.Channels.List([]string{"contentDetails"}).Mine(true).Context(ctx).Do()
		if err != nil {
			return err
		}
		if len(resp.Items) == 0 || resp.Items[0].ContentDetails == nil ||
			resp.Items[0].ContentDetails.RelatedPlaylists == nil ||
			resp.Items[0].ContentDetails.RelatedPlaylists.Uploads == "" {
			return errors.New("не удалось получить плейлист загрузок")
		}
		id = resp.Items[0].ContentDetails.RelatedPlaylists.Uploads
		return nil
	})
	return id, err
}

// PlaylistVideos читает все страницы плейлиста.
func (c *Client) PlaylistVideos(ctx context.Context, playlistID string) ([]PlaylistVideo, error) {
	var videos []PlaylistVideo
	pageToken := ""
	for {
		var resp *yt.PlaylistItemListResponse
		err := c.call(ctx, "playlistItems.list", func(ctx context.Context) error {
			var err error
			resp, err = c.svc.PlaylistItems.List([]string{"snippet"}).
				PlaylistId(playlistID).
				MaxResults(pageSize).
				PageToken(pageToken).
				Context(ctx).
				Do()
			return err
		})
		if err != nil {
			return nil, err
		}

		for _, item := range resp.Items {
			if item.Snippet == nil || item.Snippet.ResourceId == nil || item.Snippet.ResourceId.VideoId == "" {
				continue
			}
			videos = append(videos, PlaylistVideo{
				VideoID: item.Snippet.ResourceId.VideoId,
				Title:   item.Snippet.Title,
			})
		}

		if resp.NextPageToken == "" {
			return videos, nil
		}
		pageToken = resp.NextPageToken
	}
}

// call выполняет запрос с ограничением частоты и повторяет его при временных ошибках API.
func (c *Client) call(ctx context.Context, name string, fn func(context.Context) error) error {
	var lastErr error
	for i := 0; i < c.retries; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(c.retryDelay * time.Duration(1<<(i-1))):
			}
		}

		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}

		err := fn(ctx)
		if err == nil {
			return nil
		}
		lastErr = err
		if !isTransient(err) {
			return fmt.Errorf("%s: %w", name, err)
		}
		c.log.Warn("Временная ошибка API, повтор", zap.String("call", name), zap.Int("attempt", i+1), zap.Error(err))
	}
	return fmt.Errorf("%s: после %d попыток: %w", name, c.retries, lastErr)
}

func isTransient(err error) bool {
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return false
	}
	return gerr.Code == http.StatusTooManyRequests || gerr.Code >= http.StatusInternalServerError
}

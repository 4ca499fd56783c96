package youtube

import (
	"context"
	"errors"
	"fmt"

	"draftPublisher/internal/database"

	"go.uber.org/zap"
)

// API: вызовы YouTube Data API, нужные библиотеке.
type API interface {
	UploadMedia(ctx context.Context, path, title string) (string, error)
	EditMetadata(ctx context.Context, videoID, title string) error
	InsertIntoCollection(ctx context.Context, playlistID, videoID string) error
	UploadsPlaylistID(ctx context.Context) (string, error)
	PlaylistVideos(ctx context.Context, playlistID string) ([]PlaylistVideo, error)
}

// Ledger: журнал уже загруженных файлов.
type Ledger interface {
	GetUploadByPath(ctx context.Context, path string) (*database.Upload, error)
	CreateUpload(ctx context.Context, u *database.Upload) error
	SetUploadPlaylist(ctx context.Context, id uint, playlistID string) error
}

// Library готовит черновики к публикации: загружает файлы модуля и раскладывает
// ролики по плейлисту курса. Любая ошибка останавливает проход.
type Library struct {
	api        API
	ledger     Ledger
	playlistID string
	log        *zap.Logger
}

// NewLibrary создает библиотеку. ledger может быть nil: тогда повторная загрузка не отслеживается.
func NewLibrary(api API, ledger Ledger, playlistID string, log *zap.Logger) *Library {
	if log == nil {
		log = zap.NewNop()
	}
	return &Library{api: api, ledger: ledger, playlistID: playlistID, log: log}
}

type UploadReport struct {
	Uploaded  int
	Skipped   int
	Collected int // ранее загруженные ролики, добавленные в плейлист повторным проходом
}

func (l *Library) checkPlaylist() error {
	if l.playlistID == "" {
		return errors.New("не задан PLAYLIST_ID_TO_INSERT_VIDEOS")
	}
	return nil
}

// UploadDirectory загружает файлы каталога приватными черновиками модуля и добавляет их в плейлист.
func (l *Library) UploadDirectory(ctx context.Context, dir string, module int) (UploadReport, error) {
	var report UploadReport
	if err := l.checkPlaylist(); err != nil {
		return report, err
	}

	videos, err := VideoFiles(dir, module)
	if err != nil {
		return report, err
	}

	for _, v := range videos {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		if l.ledger == nil {
			id, err := l.api.UploadMedia(ctx, v.Path, v.Title)
			if err != nil {
				return report, err
			}
			if err := l.api.InsertIntoCollection(ctx, l.playlistID, id); err != nil {
				return report, fmt.Errorf("ролик %s загружен, но не добавлен в плейлист: %w", id, err)
			}
			report.Uploaded++
			continue
		}

		prev, err := l.ledger.GetUploadByPath(ctx, v.Path)
		if err != nil {
			return report, fmt.Errorf("журнал загрузок: %w", err)
		}
		if prev != nil && prev.PlaylistID != "" {
			l.log.Info("Файл уже загружен, пропускаем", zap.String("path", v.Path), zap.String("video_id", prev.VideoID))
			report.Skipped++
			continue
		}
		if prev != nil {
			l.log.Info("Файл загружен, но не попал в плейлист, добавляем",
				zap.String("path", v.Path), zap.String("video_id", prev.VideoID))
			if err := l.collect(ctx, prev); err != nil {
				return report, err
			}
			report.Collected++
			continue
		}

		id, err := l.api.UploadMedia(ctx, v.Path, v.Title)
		if err != nil {
			return report, err
		}
		// запись в журнал сразу после загрузки: повторный проход не зальет файл второй раз
		u := &database.Upload{
			Path:    v.Path,
			Module:  module,
			Title:   v.Title,
			VideoID: id,
		}
		if err := l.ledger.CreateUpload(ctx, u); err != nil {
			return report, fmt.Errorf("ролик %s загружен, но не записан в журнал: %w", id, err)
		}
		if err := l.collect(ctx, u); err != nil {
			return report, err
		}
		report.Uploaded++
	}

	l.log.Info("Загрузка каталога завершена",
		zap.String("dir", dir),
		zap.Int("uploaded", report.Uploaded),
		zap.Int("skipped", report.Skipped),
		zap.Int("collected", report.Collected))
	return report, nil
}

// collect добавляет записанный в журнал ролик в плейлист и отмечает это в журнале.
func (l *Library) collect(ctx context.Context, u *database.Upload) error {
	if err := l.api.InsertIntoCollection(ctx, l.playlistID, u.VideoID); err != nil {
		return fmt.Errorf("ролик %s загружен, но не добавлен в плейлист: %w", u.VideoID, err)
	}
	if err := l.ledger.SetUploadPlaylist(ctx, u.ID, l.playlistID); err != nil {
		return fmt.Errorf("журнал загрузок: %w", err)
	}
	u.PlaylistID = l.playlistID
	return nil
}

// RenameAndCollect переименовывает еще не размеченные ролики из загрузок канала
// в "<модуль>.<номер>" и по порядку номеров добавляет их в плейлист.
func (l *Library) RenameAndCollect(ctx context.Context, module int) (int, error) {
	if err := l.checkPlaylist(); err != nil {
		return 0, err
	}

	uploads, err := l.api.UploadsPlaylistID(ctx)
	if err != nil {
		return 0, err
	}
	videos, err := l.api.PlaylistVideos(ctx, uploads)
	if err != nil {
		return 0, err
	}

	pending := FilterRenameSort(videos, module)
	if len(pending) == 0 {
		l.log.Info("Нет роликов для переименования")
		return 0, nil
	}

	done := 0
	for _, v := range pending {
		if err := l.api.EditMetadata(ctx, v.VideoID, v.Title); err != nil {
			return done, err
		}
		if err := l.api.InsertIntoCollection(ctx, l.playlistID, v.VideoID); err != nil {
			return done, err
		}
		done++
		l.log.Info("Ролик переименован", zap.String("video_id", v.VideoID), zap.String("title", v.Title))
	}
	return done, nil
}

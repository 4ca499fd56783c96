package database

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

type UploadRepository struct {
	db *gorm.DB
}

func NewUploadRepository(db *gorm.DB) *UploadRepository {
	return &UploadRepository{db: db}
}

func (r *UploadRepository) CreateUpload(ctx context.Context, u *Upload) error {
	return r.db.WithContext(ctx).Create(u).Error
}

// SetUploadPlaylist отмечает, что ролик добавлен в плейлист.
func (r *UploadRepository) SetUploadPlaylist(ctx context.Context, id uint, playlistID string) error {
	return r.db.WithContext(ctx).Model(&Upload{}).Where("id = ?", id).Update("playlist_id", playlistID).Error
}

// GetUploadByPath возвращает nil без ошибки, если файл еще не загружался.
func (r *UploadRepository) GetUploadByPath(ctx context.Context, path string) (*Upload, error) {
	var u Upload
	err := r.db.WithContext(ctx).Where("path = ?", path).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UploadRepository) ListUploads(ctx context.Context, limit, offset int) ([]Upload, error) {
	var uploads []Upload
	if err := r.db.WithContext(ctx).Order("id DESC").Limit(limit).Offset(offset).Find(&uploads).Error; err != nil {
		return nil, err
	}
	return uploads, nil
}

// Package database хранит журнал загрузок: какой файл каким роликом стал.
// Повторная загрузка каталога пропускает файлы, уже попавшие в журнал.
package database

import "time"

// Upload: загруженный файл и ролик, в который он превратился.
type Upload struct {
	ID         uint      `gorm:"primaryKey"`
	Path       string    `gorm:"type:text;not null;uniqueIndex"` // путь к исходному файлу
	Module     int       `gorm:"not null;index"`                 // номер модуля курса
	Title      string    `gorm:"type:text;not null"`
	VideoID    string    `gorm:"type:varchar(32);not null"`
	PlaylistID string    `gorm:"type:varchar(64)"` // пусто, пока ролик не добавлен в плейлист
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

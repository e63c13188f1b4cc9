package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// File is upload metadata only; the bytes live behind the blob-storage
// collaborator and are never read here.
type File struct {
	ID               string    `json:"id" gorm:"primaryKey;type:varchar(255)"`
	Filename         string    `json:"filename" gorm:"type:varchar(255);not null"`
	OriginalFilename string    `json:"originalFilename" gorm:"type:varchar(255);not null"`
	MimeType         string    `json:"mimeType" gorm:"type:varchar(100);not null"`
	FileSize         int64     `json:"fileSize" gorm:"not null"`
	StoragePath      string    `json:"storagePath" gorm:"type:text;not null"`
	UploadedBy       string    `json:"uploadedBy" gorm:"type:varchar(255);not null"`
	CreatedAt        time.Time `json:"createdAt" gorm:"autoCreateTime"`

	Uploader User `json:"-" gorm:"foreignKey:UploadedBy;references:ID;constraint:OnDelete:CASCADE"`
}

func (file *File) BeforeCreate(tx *gorm.DB) error {
	if file.ID == "" {
		file.ID = uuid.New().String()
	}
	return nil
}

package user

import (
	"time"

	"gorm.io/gorm"
)

type (
	User struct {
		ID            int64   `gorm:"primaryKey;autoIncrement"`
		Username      string  `gorm:"not null"`
		Name          string  `gorm:"not null;default:''"`
		Email         string  `gorm:"not null;index"`
		Token         string  `gorm:"not null;uniqueIndex"`
		UploadLimitMB float64 `gorm:"column:upload_limit_mb;not null;default:0"`
		CreatedAt     time.Time
		InitialIP     *string `gorm:"column:initial_ip"`
		Deleted       bool    `gorm:"not null;default:false"`
		Disabled      bool    `gorm:"not null;default:false"`
		AccountType   string  `gorm:"not null"`

		Files []File `gorm:"foreignKey:UploaderID;constraint:OnDelete:SET NULL"`
		Links []Link `gorm:"foreignKey:UploaderID;constraint:OnDelete:SET NULL"`
	}

	File struct {
		ID            int64 `gorm:"primaryKey;autoIncrement"`
		BackendFileID string
		ExternalID    string
		FileName      string `gorm:"column:file_name"`
		Extension     string
		IP            string `gorm:"column:ip"`
		Deleted       bool
		SizeMB        float64 `gorm:"column:size_mb"`
		CreatedAt     time.Time
		UploaderID    *int64 `gorm:"index"`
	}

	Link struct {
		ID          int64 `gorm:"primaryKey;autoIncrement"`
		Destination string
		ExternalID  string
		IP          string `gorm:"column:ip"`
		Deleted     bool
		CreatedAt   time.Time
		UploaderID  *int64 `gorm:"index"`
	}
)

// AutoMigrate creates or updates the users, files and links tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&User{}, &File{}, &Link{})
}

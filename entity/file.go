package entity

import (
	"time"

	"github.com/google/uuid"
)

// File is one stored object and its namespace placement. The row id doubles
// as the object key in MinIO. The (user_id, path, name) triple is unique per
// user and enforced by the database, not by application logic: concurrent
// uploads to the same slot race on the insert and exactly one wins.
type File struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:uq_file_user_path_name"`
	Name      string    `json:"name" gorm:"type:varchar(512);not null;uniqueIndex:uq_file_user_path_name"`
	Path      string    `json:"path" gorm:"type:varchar(1024);not null;uniqueIndex:uq_file_user_path_name"`
	Size      int64     `json:"size" gorm:"not null"`
	CreatedAt time.Time `json:"created_at" gorm:"not null"`

	User *User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

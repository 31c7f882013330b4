package model

import (
	"time"
)

const (
	FileTypeCertificate = "certificate"
	OwnerTypeMilestone  = "milestone"
)

type File struct {
	ID           string    `db:"id" json:"id"`
	UserID       string    `db:"user_id" json:"user_id"`
	OwnerType    string    `db:"owner_type" json:"owner_type"`
	OwnerID      string    `db:"owner_id" json:"owner_id"`
	Type         string    `db:"type" json:"type"`
	Filename     string    `db:"filename" json:"filename"`
	OriginalName string    `db:"original_name" json:"original_name"`
	MimeType     string    `db:"mime_type" json:"mime_type"`
	Size         int64     `db:"size" json:"size"`
	StoragePath  string    `db:"storage_path" json:"storage_path"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

package repository

import (
	"context"

	"github.com/Admintools08/BP/internal/model"
	"github.com/jmoiron/sqlx"
)

type FileRepository interface {
	Create(ctx context.Context, file *model.File) error
	// UserFiles lists a user's files of one owner and file type, newest first.
	UserFiles(ctx context.Context, userID, ownerType, fileType string) ([]*model.File, error)
	Delete(ctx context.Context, id string) error
}

type fileRepository struct {
	db sqlx.ExtContext
}

func NewFileRepository(db sqlx.ExtContext) FileRepository {
	return &fileRepository{db: db}
}

func (r *fileRepository) Create(ctx context.Context, file *model.File) error {
	query := `INSERT INTO files (id, user_id, owner_type, owner_id, type, filename, original_name, mime_type, size, storage_path, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.ExecContext(ctx, query,
		file.ID,
		file.UserID,
		file.OwnerType,
		file.OwnerID,
		file.Type,
		file.Filename,
		file.OriginalName,
		file.MimeType,
		file.Size,
		file.StoragePath,
		file.CreatedAt,
	)

	return err
}

func (r *fileRepository) UserFiles(ctx context.Context, userID, ownerType, fileType string) ([]*model.File, error) {
	files := []*model.File{}
	query := `SELECT * FROM files
	          WHERE user_id = $1 AND owner_type = $2 AND type = $3
	          ORDER BY created_at DESC, id DESC`

	err := sqlx.SelectContext(ctx, r.db, &files, query, userID, ownerType, fileType)
	if err != nil {
		return nil, err
	}

	return files, nil
}

func (r *fileRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM files WHERE id = $1`, id)
	return err
}

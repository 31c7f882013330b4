package service

import (
	"context"
	"fmt"
	"log/slog"
	"mime/multipart"
	"path"
	"path/filepath"
	"strings"

	"github.com/Admintools08/BP/internal/apperror"
	"github.com/Admintools08/BP/internal/clock"
	"github.com/Admintools08/BP/internal/model"
	"github.com/Admintools08/BP/internal/repository"
	"github.com/Admintools08/BP/internal/storage"
	"github.com/Admintools08/BP/internal/validation"
	"github.com/google/uuid"
)

type CertificateService struct {
	fileRepo   repository.FileRepository
	milestones *MilestoneService
	storage    storage.Storage
	clock      clock.Clock
}

// NewCertificateService accepts a nil storage; uploads then fail with storage.ErrStorageDisabled.
func NewCertificateService(fileRepo repository.FileRepository, milestones *MilestoneService, store storage.Storage, clk clock.Clock) *CertificateService {
	return &CertificateService{
		fileRepo:   fileRepo,
		milestones: milestones,
		storage:    store,
		clock:      clk,
	}
}

func (s *CertificateService) Enabled() bool {
	return s.storage != nil
}

// UploadCertificate stores the artifact and records it against the milestone.
// The returned milestone carries a freshly signed link; later reads sign
// their own through CertificateLinks.
func (s *CertificateService) UploadCertificate(ctx context.Context, userID, milestoneID string, header *multipart.FileHeader) (*model.Milestone, error) {
	if !s.Enabled() {
		return nil, storage.ErrStorageDisabled
	}

	milestone, err := s.milestones.Owned(ctx, userID, milestoneID)
	if err != nil {
		return nil, err
	}

	mimeType, err := validation.ValidateFile(header, validation.CertificateConstraints)
	if err != nil {
		return nil, err
	}

	file, err := header.Open()
	if err != nil {
		return nil, apperror.Validation("file", "failed to open file")
	}
	defer func() { _ = file.Close() }()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	filename := uuid.New().String() + ext
	storagePath := path.Join("certificates", userID, milestoneID, filename)

	err = s.storage.Save(ctx, storagePath, file, mimeType)
	if err != nil {
		return nil, fmt.Errorf("failed to save certificate: %w", err)
	}

	record := &model.File{
		ID:           uuid.New().String(),
		UserID:       userID,
		OwnerType:    model.OwnerTypeMilestone,
		OwnerID:      milestoneID,
		Type:         model.FileTypeCertificate,
		Filename:     filename,
		OriginalName: header.Filename,
		MimeType:     mimeType,
		Size:         header.Size,
		StoragePath:  storagePath,
		CreatedAt:    s.clock.Now().UTC(),
	}

	err = s.fileRepo.Create(ctx, record)
	if err != nil {
		s.cleanup(ctx, storagePath)
		return nil, apperror.Persistence("create file record", err)
	}

	link, err := s.storage.URL(ctx, storagePath)
	if err != nil {
		s.discard(ctx, record)
		return nil, fmt.Errorf("failed to build certificate link: %w", err)
	}

	milestone.CertificateLink = &link
	return milestone, nil
}

// discard removes an uploaded artifact and its record.
func (s *CertificateService) discard(ctx context.Context, record *model.File) {
	err := s.fileRepo.Delete(ctx, record.ID)
	if err != nil {
		slog.Error("failed to delete file record during cleanup", "error", err, "file_id", record.ID)
	}
	s.cleanup(ctx, record.StoragePath)
}

func (s *CertificateService) cleanup(ctx context.Context, storagePath string) {
	err := s.storage.Delete(ctx, storagePath)
	if err != nil {
		slog.Error("failed to delete file from storage during cleanup", "error", err, "path", storagePath)
	}
}

// CertificateLinks fills milestone certificate links from uploaded files.
// Links are presigned on every read, so a stored milestone never holds an
// expiring URL. A milestone without an upload keeps its own link.
type CertificateLinks struct {
	fileRepo repository.FileRepository
	storage  storage.Storage
}

// NewCertificateLinks returns nil when storage is disabled; a nil
// *CertificateLinks resolves nothing.
func NewCertificateLinks(fileRepo repository.FileRepository, store storage.Storage) *CertificateLinks {
	if store == nil {
		return nil
	}
	return &CertificateLinks{fileRepo: fileRepo, storage: store}
}

func (c *CertificateLinks) resolve(ctx context.Context, userID string, milestones ...*model.Milestone) error {
	if c == nil || len(milestones) == 0 {
		return nil
	}

	files, err := c.fileRepo.UserFiles(ctx, userID, model.OwnerTypeMilestone, model.FileTypeCertificate)
	if err != nil {
		return apperror.Persistence("list certificates", err)
	}

	latest := make(map[string]*model.File, len(files))
	for _, f := range files {
		if _, ok := latest[f.OwnerID]; !ok {
			latest[f.OwnerID] = f
		}
	}

	for _, m := range milestones {
		f, ok := latest[m.ID]
		if !ok {
			continue
		}
		link, err := c.storage.URL(ctx, f.StoragePath)
		if err != nil {
			return fmt.Errorf("failed to build certificate link: %w", err)
		}
		m.CertificateLink = &link
	}

	return nil
}

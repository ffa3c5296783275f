package media

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/go-cms-api/internal/domain"
	"github.com/go-cms-api/internal/pkg/id"
	"github.com/go-cms-api/internal/pkg/validate"
	"github.com/google/uuid"
)

const (
	fieldName     = "name"
	fieldParentID = "parent_id"
)

type UploadInput struct {
	Reader      io.Reader
	Filename    string
	ContentType string
	Size        int64
	Folder      *string
	Category    *string
	UploaderID  string
}

type Service interface {
	FolderTree(ctx context.Context) ([]domain.Folder, error)
	CreateFolder(ctx context.Context, input domain.FolderInput) (*domain.Folder, error)
	UpdateFolder(ctx context.Context, folderID string, req domain.UpdateFolderRequest) (*domain.Folder, error)
	DeleteFolder(ctx context.Context, folderID string) error

	Upload(ctx context.Context, input UploadInput) (*domain.File, error)
	UploadBase64(ctx context.Context, filename, base64Data string, folder, category *string, uploaderID string) (*domain.File, error)
	ListFiles(ctx context.Context, folder, category string) ([]domain.File, error)
	Download(ctx context.Context, fileID string) (io.ReadCloser, *domain.File, error)
	FileURL(ctx context.Context, fileID string, ttl time.Duration) (string, error)
	DeleteFile(ctx context.Context, fileID string) error
}

type folderStore interface {
	Put(ctx context.Context, f *domain.Folder) error
	Get(ctx context.Context, folderID string) (*domain.Folder, error)
	ListByParent(ctx context.Context, parentID string) ([]domain.Folder, error)
	Scan(ctx context.Context) ([]domain.Folder, error)
	Update(ctx context.Context, folderID string, updates map[string]interface{}) error
	HardDelete(ctx context.Context, folderID string) error
}

type fileStore interface {
	Put(ctx context.Context, f *domain.File) error
	Get(ctx context.Context, fileID string) (*domain.File, error)
	List(ctx context.Context, folder, category string) ([]domain.File, error)
	HardDelete(ctx context.Context, fileID string) error
}

type blobStore interface {
	Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
	Download(ctx context.Context, key string) (io.ReadCloser, error)
	PresignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)
	Delete(ctx context.Context, key string) error
}

type service struct {
	folders folderStore
	files   fileStore
	blobs   blobStore
}

type ServiceDeps struct {
	Folders folderStore
	Files   fileStore
	Blobs   blobStore
}

func NewService(deps ServiceDeps) Service {
	return &service{folders: deps.Folders, files: deps.Files, blobs: deps.Blobs}
}

// --- folders ---

// FolderTree returns root folders with children and files attached one level
// at a time, built from a single scan.
func (s *service) FolderTree(ctx context.Context) ([]domain.Folder, error) {
	all, err := s.folders.Scan(ctx)
	if err != nil {
		return nil, err
	}
	byParent := map[string][]domain.Folder{}
	var roots []domain.Folder
	for _, f := range all {
		if f.ParentID == nil || *f.ParentID == "" {
			roots = append(roots, f)
		} else {
			byParent[*f.ParentID] = append(byParent[*f.ParentID], f)
		}
	}
	var attach func(f *domain.Folder) error
	attach = func(f *domain.Folder) error {
		files, err := s.files.List(ctx, f.FolderID, "")
		if err != nil {
			return err
		}
		f.Files = files
		f.Children = byParent[f.FolderID]
		for i := range f.Children {
			if err := attach(&f.Children[i]); err != nil {
				return err
			}
		}
		return nil
	}
	for i := range roots {
		if err := attach(&roots[i]); err != nil {
			return nil, err
		}
	}
	return roots, nil
}

func (s *service) CreateFolder(ctx context.Context, input domain.FolderInput) (*domain.Folder, error) {
	if err := validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%s: %w", err, domain.ErrBadRequest)
	}
	if input.ParentID != nil && *input.ParentID != "" {
		if _, err := s.folders.Get(ctx, *input.ParentID); err != nil {
			return nil, err
		}
	}
	now := time.Now().UTC()
	f := &domain.Folder{
		FolderID:  uuid.NewString(),
		Name:      input.Name,
		ParentID:  input.ParentID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.folders.Put(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *service) UpdateFolder(ctx context.Context, folderID string, req domain.UpdateFolderRequest) (*domain.Folder, error) {
	updates := map[string]interface{}{}
	if req.Name != nil {
		updates[fieldName] = *req.Name
	}
	if req.ParentID != nil {
		if *req.ParentID == folderID {
			return nil, fmt.Errorf("folder cannot be its own parent: %w", domain.ErrBadRequest)
		}
		updates[fieldParentID] = *req.ParentID
	}
	if len(updates) == 0 {
		return s.folders.Get(ctx, folderID)
	}
	if err := s.folders.Update(ctx, folderID, updates); err != nil {
		return nil, err
	}
	return s.folders.Get(ctx, folderID)
}

func (s *service) DeleteFolder(ctx context.Context, folderID string) error {
	children, err := s.folders.ListByParent(ctx, folderID)
	if err != nil {
		return err
	}
	if len(children) > 0 {
		return fmt.Errorf("folder has subfolders: %w", domain.ErrConflict)
	}
	files, err := s.files.List(ctx, folderID, "")
	if err != nil {
		return err
	}
	if len(files) > 0 {
		return fmt.Errorf("folder is not empty: %w", domain.ErrConflict)
	}
	return s.folders.HardDelete(ctx, folderID)
}

// --- files ---

func (s *service) Upload(ctx context.Context, input UploadInput) (*domain.File, error) {
	safeName := sanitizeFilename(input.Filename)
	key := fmt.Sprintf("files/%s/%s", input.UploaderID, safeName)
	url, err := s.blobs.Upload(ctx, key, input.Reader, input.ContentType)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	f := &domain.File{
		FileID:           id.New(),
		Name:             safeName,
		Type:             input.ContentType,
		Size:             input.Size,
		Object:           key,
		URL:              url,
		Folder:           input.Folder,
		Category:         input.Category,
		UploadedByUserID: input.UploaderID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.files.Put(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *service) UploadBase64(ctx context.Context, filename, base64Data string, folder, category *string, uploaderID string) (*domain.File, error) {
	decoded, err := base64.StdEncoding.DecodeString(base64Data)
	if err != nil {
		return nil, fmt.Errorf("decode base64: %w", domain.ErrBadRequest)
	}
	safeName := sanitizeFilename(filename)
	return s.Upload(ctx, UploadInput{
		Reader:      bytes.NewReader(decoded),
		Filename:    safeName,
		ContentType: contentTypeFromName(safeName),
		Size:        int64(len(decoded)),
		Folder:      folder,
		Category:    category,
		UploaderID:  uploaderID,
	})
}

func (s *service) ListFiles(ctx context.Context, folder, category string) ([]domain.File, error) {
	return s.files.List(ctx, folder, category)
}

func (s *service) Download(ctx context.Context, fileID string) (io.ReadCloser, *domain.File, error) {
	f, err := s.files.Get(ctx, fileID)
	if err != nil {
		return nil, nil, err
	}
	rc, err := s.blobs.Download(ctx, f.Object)
	if err != nil {
		return nil, nil, err
	}
	return rc, f, nil
}

func (s *service) FileURL(ctx context.Context, fileID string, ttl time.Duration) (string, error) {
	f, err := s.files.Get(ctx, fileID)
	if err != nil {
		return "", err
	}
	return s.blobs.PresignedURL(ctx, f.Object, ttl)
}

func (s *service) DeleteFile(ctx context.Context, fileID string) error {
	f, err := s.files.Get(ctx, fileID)
	if err != nil {
		return err
	}
	if err := s.blobs.Delete(ctx, f.Object); err != nil {
		return err
	}
	return s.files.HardDelete(ctx, fileID)
}

func contentTypeFromName(filename string) string {
	lower := strings.ToLower(filename)
	switch {
	case strings.HasSuffix(lower, ".jpg") || strings.HasSuffix(lower, ".jpeg"):
		return "image/jpeg"
	case strings.HasSuffix(lower, ".png"):
		return "image/png"
	case strings.HasSuffix(lower, ".svg"):
		return "image/svg+xml"
	case strings.HasSuffix(lower, ".webp"):
		return "image/webp"
	case strings.HasSuffix(lower, ".pdf"):
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}

// sanitizeFilename strips directory components and keeps only safe characters
// (alphanumeric, dot, dash, underscore) to prevent path traversal in S3 keys.
func sanitizeFilename(name string) string {
	name = path.Base(name)
	var b strings.Builder
	for _, r := range name {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
			(r >= '0' && r <= '9') || r == '.' || r == '-' || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	if result := b.String(); result != "" && result != "." {
		return result
	}
	return "_"
}

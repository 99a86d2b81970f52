package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"projecthub/internal/config"
	"projecthub/internal/domain"
	"projecthub/internal/repository"
)

var (
	ErrItemNotFound    = errors.New("knowledge base item not found")
	ErrInvalidFileType = errors.New("invalid file type")
)

var allowedExtensions = map[string]bool{
	"pdf": true, "doc": true, "docx": true, "ppt": true, "pptx": true,
	"xls": true, "xlsx": true, "png": true, "jpg": true, "jpeg": true,
}

type KnowledgeBaseService interface {
	CreateLink(ctx context.Context, projectID primitive.ObjectID, creator *domain.User, input domain.CreateLinkInput) (*domain.KnowledgeBaseItem, error)
	CreateFile(ctx context.Context, projectID primitive.ObjectID, creator *domain.User, fileName string, fileSize int64, reader io.Reader) (*domain.KnowledgeBaseItem, error)
	ListByProject(ctx context.Context, projectID primitive.ObjectID) ([]domain.KnowledgeBaseItem, error)
	Update(ctx context.Context, id primitive.ObjectID, input domain.UpdateKnowledgeBaseInput) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	ObjectURL(objectName string) string
}

type knowledgeBaseService struct {
	itemRepo    repository.KnowledgeBaseRepository
	minioClient *minio.Client
	cfg         *config.Config
}

func NewKnowledgeBaseService(itemRepo repository.KnowledgeBaseRepository, minioClient *minio.Client, cfg *config.Config) KnowledgeBaseService {
	return &knowledgeBaseService{
		itemRepo:    itemRepo,
		minioClient: minioClient,
		cfg:         cfg,
	}
}

func (s *knowledgeBaseService) CreateLink(ctx context.Context, projectID primitive.ObjectID, creator *domain.User, input domain.CreateLinkInput) (*domain.KnowledgeBaseItem, error) {
	if fieldErrs := input.Validate(); len(fieldErrs) > 0 {
		return nil, &ValidationError{Fields: fieldErrs}
	}

	item := &domain.KnowledgeBaseItem{
		ProjectID: projectID,
		Name:      input.Name,
		Type:      domain.KnowledgeBaseLink,
		URL:       input.URL,
		CreatedBy: creator.Snapshot(),
	}

	if err := s.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *knowledgeBaseService) CreateFile(ctx context.Context, projectID primitive.ObjectID, creator *domain.User, fileName string, fileSize int64, reader io.Reader) (*domain.KnowledgeBaseItem, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(fileName), "."))
	if !allowedExtensions[ext] {
		return nil, ErrInvalidFileType
	}

	objectName := fmt.Sprintf("knowledge-base/%s_%s", time.Now().UTC().Format("20060102_150405"), filepath.Base(fileName))

	_, err := s.minioClient.PutObject(ctx, s.cfg.MinIOBucket, objectName, reader, fileSize, minio.PutObjectOptions{
		ContentType: contentTypeForExt(ext),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload to MinIO: %w", err)
	}

	item := &domain.KnowledgeBaseItem{
		ProjectID: projectID,
		Name:      fileName,
		Type:      domain.KnowledgeBaseFile,
		URL:       s.ObjectURL(objectName),
		FileType:  ext,
		CreatedBy: creator.Snapshot(),
	}

	if err := s.itemRepo.Create(ctx, item); err != nil {
		_ = s.minioClient.RemoveObject(ctx, s.cfg.MinIOBucket, objectName, minio.RemoveObjectOptions{})
		return nil, err
	}
	return item, nil
}

func (s *knowledgeBaseService) ListByProject(ctx context.Context, projectID primitive.ObjectID) ([]domain.KnowledgeBaseItem, error) {
	return s.itemRepo.ListByProject(ctx, projectID)
}

func (s *knowledgeBaseService) Update(ctx context.Context, id primitive.ObjectID, input domain.UpdateKnowledgeBaseInput) error {
	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if item == nil {
		return ErrItemNotFound
	}

	fields := bson.M{}
	if input.Name != nil {
		fields["name"] = *input.Name
	}
	if input.URL != nil {
		fields["url"] = *input.URL
		// Replacing a file's URL orphans the stored object; drop it.
		if item.Type == domain.KnowledgeBaseFile {
			s.removeObject(ctx, item.URL)
		}
	}
	if len(fields) == 0 {
		return ErrNoValidFields
	}

	modified, err := s.itemRepo.Update(ctx, id, fields)
	if err != nil {
		return err
	}
	if modified == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (s *knowledgeBaseService) Delete(ctx context.Context, id primitive.ObjectID) error {
	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if item == nil {
		return ErrItemNotFound
	}

	deleted, err := s.itemRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return ErrItemNotFound
	}

	if item.Type == domain.KnowledgeBaseFile {
		s.removeObject(ctx, item.URL)
	}
	return nil
}

func (s *knowledgeBaseService) ObjectURL(objectName string) string {
	scheme := "http"
	if s.cfg.MinIOPublicUseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.cfg.MinIOPublicEndpoint, s.cfg.MinIOBucket, url.PathEscape(objectName))
}

func (s *knowledgeBaseService) removeObject(ctx context.Context, itemURL string) {
	prefix := fmt.Sprintf("/%s/", s.cfg.MinIOBucket)
	parsed, err := url.Parse(itemURL)
	if err != nil || !strings.HasPrefix(parsed.Path, prefix) {
		return
	}
	objectName, err := url.PathUnescape(strings.TrimPrefix(parsed.Path, prefix))
	if err != nil {
		return
	}
	_ = s.minioClient.RemoveObject(ctx, s.cfg.MinIOBucket, objectName, minio.RemoveObjectOptions{})
}

func contentTypeForExt(ext string) string {
	switch ext {
	case "pdf":
		return "application/pdf"
	case "png":
		return "image/png"
	case "jpg", "jpeg":
		return "image/jpeg"
	default:
		return "application/octet-stream"
	}
}

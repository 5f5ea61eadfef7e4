package service

import (
	"context"
	"fmt"
	"math"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/trahulprabhu38/major-project-sub000/internal/model"
	"github.com/trahulprabhu38/major-project-sub000/internal/repository"
	"github.com/trahulprabhu38/major-project-sub000/internal/util"
	"github.com/trahulprabhu38/major-project-sub000/pkg/logger"
)

// ContentService manages the remediation resource catalog and the
// question→CO mapping table.
type ContentService struct {
	Resources *repository.ResourceRepository
	Mappings  *repository.QuestionMapRepository
	Storage   *StorageService
}

func NewContentService(resources *repository.ResourceRepository, mappings *repository.QuestionMapRepository, storage *StorageService) *ContentService {
	return &ContentService{Resources: resources, Mappings: mappings, Storage: storage}
}

func (s *ContentService) CreateResource(resource *model.Resource) error {
	if resource.CO == "" || model.COIndex(resource.CO) < 0 {
		return fmt.Errorf("unknown course outcome %q", resource.CO)
	}
	if resource.Difficulty == "" {
		resource.Difficulty = model.Medium
	}
	return s.Resources.Create(resource)
}

func (s *ContentService) ListResources() ([]model.Resource, error) {
	return s.Resources.ListAll()
}

func (s *ContentService) ListResourcesByCO(co string) ([]model.Resource, error) {
	return s.Resources.ListByCO(co)
}

// UploadResourceFile stores an uploaded file and returns its serving URL.
// Video uploads get their estimated study time filled from the probed
// duration when the file lands on local disk.
func (s *ContentService) UploadResourceFile(ctx context.Context, file *multipart.FileHeader, resource *model.Resource) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	ext := filepath.Ext(file.Filename)
	filename := uuid.New().String() + ext

	contentType := file.Header.Get("Content-Type")
	url, err := s.Storage.Provider.Upload(ctx, filename, src, file.Size, contentType)
	if err != nil {
		return "", err
	}

	if resource.Type == model.Video && resource.EstimatedTimeMin == 0 {
		if local, ok := s.Storage.Provider.(*LocalStorageProvider); ok {
			if info, err := util.GetVideoInfo(local.LocalPath(filename)); err == nil {
				resource.EstimatedTimeMin = int(math.Ceil(info.Duration / 60))
			} else {
				logger.Log.Warn("video probe failed", zap.String("file", filename), zap.Error(err))
			}
		}
	}

	resource.URL = url
	return url, nil
}

// CreateMapping registers one question→CO/topic row for an exam.
func (s *ContentService) CreateMapping(mapping *model.QuestionMapping) error {
	if mapping.ExamIndex < 1 || mapping.ExamIndex > 3 {
		return util.ErrInvalidExamIndex
	}
	if model.COIndex(mapping.CO) < 0 {
		return fmt.Errorf("unknown course outcome %q", mapping.CO)
	}
	mapping.CO = strings.ToUpper(mapping.CO)
	return s.Mappings.Create(mapping)
}

func (s *ContentService) ListMappings(examIndex int) ([]model.QuestionMapping, error) {
	if examIndex < 1 || examIndex > 3 {
		return nil, util.ErrInvalidExamIndex
	}
	return s.Mappings.MappingsFor(examIndex)
}

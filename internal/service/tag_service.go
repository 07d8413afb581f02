package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"kanban-api/internal/domain"
	"kanban-api/internal/dto"
	"kanban-api/internal/repository"
	"kanban-api/internal/response"
)

// TagService manages the shared tag catalog
type TagService interface {
	CreateTag(ctx context.Context, req *dto.CreateTagRequest) (*domain.Tag, error)
	ListTags(ctx context.Context) ([]domain.Tag, error)
	UpdateTag(ctx context.Context, tagID uuid.UUID, req *dto.UpdateTagRequest) (*domain.Tag, error)
	DeleteTag(ctx context.Context, tagID uuid.UUID) error
}

type tagServiceImpl struct {
	tagRepo repository.TagRepository
	logger  *zap.Logger
}

// NewTagService creates the tag service
func NewTagService(tagRepo repository.TagRepository, logger *zap.Logger) TagService {
	return &tagServiceImpl{tagRepo: tagRepo, logger: logger}
}

func (s *tagServiceImpl) CreateTag(ctx context.Context, req *dto.CreateTagRequest) (*domain.Tag, error) {
	tag := &domain.Tag{Name: strings.TrimSpace(req.Name)}
	if tag.Name == "" {
		return nil, response.NewValidationError("tag name cannot be blank", "")
	}
	if req.Color != "" {
		tag.Color = req.Color
	}
	if err := s.tagRepo.Create(ctx, tag); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, response.NewAppError(response.ErrCodeAlreadyExists, "tag name already exists", "")
		}
		return nil, err
	}
	return tag, nil
}

func (s *tagServiceImpl) ListTags(ctx context.Context) ([]domain.Tag, error) {
	return s.tagRepo.List(ctx)
}

func (s *tagServiceImpl) UpdateTag(ctx context.Context, tagID uuid.UUID, req *dto.UpdateTagRequest) (*domain.Tag, error) {
	tag, err := s.tagRepo.GetByID(ctx, tagID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("tag not found")
		}
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, response.NewValidationError("tag name cannot be blank", "")
		}
		tag.Name = name
	}
	if req.Color != nil {
		tag.Color = *req.Color
	}
	if err := s.tagRepo.Update(ctx, tag); err != nil {
		return nil, err
	}
	return tag, nil
}

func (s *tagServiceImpl) DeleteTag(ctx context.Context, tagID uuid.UUID) error {
	if _, err := s.tagRepo.GetByID(ctx, tagID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFoundError("tag not found")
		}
		return err
	}
	return s.tagRepo.Delete(ctx, tagID)
}

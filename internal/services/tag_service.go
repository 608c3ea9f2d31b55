package services

import (
	"recipebook_backend/internal/models"
	"recipebook_backend/internal/repositories"
	"recipebook_backend/internal/services/dto"
	"recipebook_backend/pkg/apperrors"
)

type TagService interface {
	List(userID string, assignedOnly bool) ([]dto.TagResponse, error)
	Create(userID string, req *dto.TagRequest) (*dto.TagResponse, error)
}

type TagServiceImpl struct {
	tagRepo repositories.TagRepository
}

func NewTagService(tagRepo repositories.TagRepository) TagService {
	return &TagServiceImpl{tagRepo: tagRepo}
}

func (s *TagServiceImpl) List(userID string, assignedOnly bool) ([]dto.TagResponse, error) {
	tags, err := s.tagRepo.FindAllByUser(userID, assignedOnly)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := make([]dto.TagResponse, 0, len(tags))
	for _, tag := range tags {
		resp = append(resp, dto.TagResponse{ID: tag.ID, Name: tag.Name})
	}
	return resp, nil
}

func (s *TagServiceImpl) Create(userID string, req *dto.TagRequest) (*dto.TagResponse, error) {
	// Owner comes from the session, never from the payload.
	tag := &models.Tag{
		Name:   req.Name,
		UserID: userID,
	}

	if err := s.tagRepo.Create(tag); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.TagResponse{ID: tag.ID, Name: tag.Name}, nil
}

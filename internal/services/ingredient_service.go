package services

import (
	"recipebook_backend/internal/models"
	"recipebook_backend/internal/repositories"
	"recipebook_backend/internal/services/dto"
	"recipebook_backend/pkg/apperrors"
)

type IngredientService interface {
	List(userID string, assignedOnly bool) ([]dto.IngredientResponse, error)
	Create(userID string, req *dto.IngredientRequest) (*dto.IngredientResponse, error)
}

type IngredientServiceImpl struct {
	ingredientRepo repositories.IngredientRepository
}

func NewIngredientService(ingredientRepo repositories.IngredientRepository) IngredientService {
	return &IngredientServiceImpl{ingredientRepo: ingredientRepo}
}

func (s *IngredientServiceImpl) List(userID string, assignedOnly bool) ([]dto.IngredientResponse, error) {
	ingredients, err := s.ingredientRepo.FindAllByUser(userID, assignedOnly)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := make([]dto.IngredientResponse, 0, len(ingredients))
	for _, ingredient := range ingredients {
		resp = append(resp, dto.IngredientResponse{ID: ingredient.ID, Name: ingredient.Name})
	}
	return resp, nil
}

func (s *IngredientServiceImpl) Create(userID string, req *dto.IngredientRequest) (*dto.IngredientResponse, error) {
	ingredient := &models.Ingredient{
		Name:   req.Name,
		UserID: userID,
	}

	if err := s.ingredientRepo.Create(ingredient); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.IngredientResponse{ID: ingredient.ID, Name: ingredient.Name}, nil
}

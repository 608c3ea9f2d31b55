package services

import (
	"context"
	"mime/multipart"
	"path"
	"path/filepath"
	"strings"

	"recipebook_backend/internal/imageprocessor"
	"recipebook_backend/internal/models"
	"recipebook_backend/internal/repositories"
	"recipebook_backend/internal/services/dto"
	"recipebook_backend/internal/storage"
	"recipebook_backend/pkg/apperrors"

	"github.com/google/uuid"
)

type RecipeService interface {
	List(userID string, filter repositories.RecipeFilter) ([]dto.RecipeResponse, error)
	Create(userID string, req *dto.RecipeRequest) (*dto.RecipeDetailResponse, error)
	Get(userID, id string) (*dto.RecipeDetailResponse, error)
	// FullUpdate replaces every updatable field; relations absent from the
	// payload are cleared.
	FullUpdate(userID, id string, req *dto.RecipeRequest) (*dto.RecipeDetailResponse, error)
	// PartialUpdate touches only the supplied fields.
	PartialUpdate(userID, id string, req *dto.PatchRecipeRequest) (*dto.RecipeDetailResponse, error)
	Delete(userID, id string) error
	UploadImage(ctx context.Context, userID, id string, file *multipart.FileHeader) (*dto.RecipeImageResponse, error)
}

type RecipeServiceImpl struct {
	recipeRepo     repositories.RecipeRepository
	tagRepo        repositories.TagRepository
	ingredientRepo repositories.IngredientRepository
	storage        storage.Storage
	maxImageSize   int64
}

func NewRecipeService(
	recipeRepo repositories.RecipeRepository,
	tagRepo repositories.TagRepository,
	ingredientRepo repositories.IngredientRepository,
	storageInstance storage.Storage,
	maxImageSize int64,
) RecipeService {
	return &RecipeServiceImpl{
		recipeRepo:     recipeRepo,
		tagRepo:        tagRepo,
		ingredientRepo: ingredientRepo,
		storage:        storageInstance,
		maxImageSize:   maxImageSize,
	}
}

func (s *RecipeServiceImpl) List(userID string, filter repositories.RecipeFilter) ([]dto.RecipeResponse, error) {
	recipes, err := s.recipeRepo.FindAllByUser(userID, filter)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := make([]dto.RecipeResponse, 0, len(recipes))
	for i := range recipes {
		resp = append(resp, *s.toResponse(&recipes[i]))
	}
	return resp, nil
}

func (s *RecipeServiceImpl) Create(userID string, req *dto.RecipeRequest) (*dto.RecipeDetailResponse, error) {
	tags, ingredients, err := s.resolveRelations(userID, req.TagIDs, req.IngredientIDs)
	if err != nil {
		return nil, err
	}

	recipe := &models.Recipe{
		Title:       req.Title,
		TimeMinutes: *req.TimeMinutes,
		Price:       *req.Price,
		Link:        req.Link,
		UserID:      userID,
	}

	if err := s.recipeRepo.Create(recipe, tags, ingredients); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return s.Get(userID, recipe.ID)
}

func (s *RecipeServiceImpl) Get(userID, id string) (*dto.RecipeDetailResponse, error) {
	recipe, err := s.recipeRepo.FindByID(userID, id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrRecipeNotFound) {
			return nil, apperrors.NewNotFoundError("recipe", "Recipe not found")
		}
		return nil, apperrors.InternalError(err)
	}

	return s.toDetailResponse(recipe), nil
}

func (s *RecipeServiceImpl) FullUpdate(userID, id string, req *dto.RecipeRequest) (*dto.RecipeDetailResponse, error) {
	recipe, err := s.recipeRepo.FindByID(userID, id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrRecipeNotFound) {
			return nil, apperrors.NewNotFoundError("recipe", "Recipe not found")
		}
		return nil, apperrors.InternalError(err)
	}

	tags, ingredients, err := s.resolveRelations(userID, req.TagIDs, req.IngredientIDs)
	if err != nil {
		return nil, err
	}

	// Full replace: an absent link comes through as "" and clears the
	// column; absent relation lists clear the association sets.
	values := map[string]interface{}{
		"title":        req.Title,
		"time_minutes": *req.TimeMinutes,
		"price":        *req.Price,
		"link":         req.Link,
	}

	if err := s.recipeRepo.Update(recipe, values, &tags, &ingredients); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return s.Get(userID, id)
}

func (s *RecipeServiceImpl) PartialUpdate(userID, id string, req *dto.PatchRecipeRequest) (*dto.RecipeDetailResponse, error) {
	recipe, err := s.recipeRepo.FindByID(userID, id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrRecipeNotFound) {
			return nil, apperrors.NewNotFoundError("recipe", "Recipe not found")
		}
		return nil, apperrors.InternalError(err)
	}

	values := map[string]interface{}{}
	if req.Title != nil {
		values["title"] = *req.Title
	}
	if req.TimeMinutes != nil {
		values["time_minutes"] = *req.TimeMinutes
	}
	if req.Price != nil {
		values["price"] = *req.Price
	}
	if req.Link != nil {
		values["link"] = *req.Link
	}

	var tags *[]models.Tag
	var ingredients *[]models.Ingredient

	if req.TagIDs != nil {
		resolved, err := s.resolveTags(userID, *req.TagIDs)
		if err != nil {
			return nil, err
		}
		tags = &resolved
	}
	if req.IngredientIDs != nil {
		resolved, err := s.resolveIngredients(userID, *req.IngredientIDs)
		if err != nil {
			return nil, err
		}
		ingredients = &resolved
	}

	if err := s.recipeRepo.Update(recipe, values, tags, ingredients); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return s.Get(userID, id)
}

func (s *RecipeServiceImpl) Delete(userID, id string) error {
	if err := s.recipeRepo.Delete(userID, id); err != nil {
		if apperrors.Is(err, repositories.ErrRecipeNotFound) {
			return apperrors.NewNotFoundError("recipe", "Recipe not found")
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *RecipeServiceImpl) UploadImage(ctx context.Context, userID, id string, file *multipart.FileHeader) (*dto.RecipeImageResponse, error) {
	recipe, err := s.recipeRepo.FindByID(userID, id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrRecipeNotFound) {
			return nil, apperrors.NewNotFoundError("recipe", "Recipe not found")
		}
		return nil, apperrors.InternalError(err)
	}

	if s.maxImageSize > 0 && file.Size > s.maxImageSize {
		return nil, apperrors.FieldValidationError("recipe", "image", "File too large")
	}

	reader, err := file.Open()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	info, err := imageprocessor.Validate(reader)
	reader.Close()
	if err != nil {
		return nil, apperrors.FieldValidationError("recipe", "image", "Upload a valid image")
	}

	// The stored name is a fresh uuid plus the client extension; client
	// names never reach the filesystem.
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext == "" {
		ext = imageprocessor.ExtensionFor(info.Format)
	}
	imagePath := path.Join("recipe", uuid.NewString()+ext)

	reader, err = file.Open()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	defer reader.Close()

	contentType := file.Header.Get("Content-Type")
	if err := s.storage.Save(ctx, imagePath, reader, contentType); err != nil {
		return nil, apperrors.InternalError(err)
	}

	// The previous image file, if any, is left in place on purpose;
	// cleanup is an explicit operator action.
	if err := s.recipeRepo.UpdateImagePath(userID, id, imagePath); err != nil {
		return nil, apperrors.InternalError(err)
	}

	url, err := s.storage.GetURL(ctx, imagePath)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.RecipeImageResponse{
		ID:    recipe.ID,
		Image: url,
	}, nil
}

// --- helpers ---

// resolveRelations maps payload id sets to owned rows, rejecting ids that do
// not exist or belong to someone else.
func (s *RecipeServiceImpl) resolveRelations(userID string, tagIDs, ingredientIDs []string) ([]models.Tag, []models.Ingredient, error) {
	tags, err := s.resolveTags(userID, tagIDs)
	if err != nil {
		return nil, nil, err
	}
	ingredients, err := s.resolveIngredients(userID, ingredientIDs)
	if err != nil {
		return nil, nil, err
	}
	return tags, ingredients, nil
}

func (s *RecipeServiceImpl) resolveTags(userID string, ids []string) ([]models.Tag, error) {
	ids = dedupe(ids)
	tags, err := s.tagRepo.FindByIDs(userID, ids)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if len(tags) != len(ids) {
		return nil, apperrors.FieldValidationError("recipe", "tags", "Unknown tag id")
	}
	return tags, nil
}

func (s *RecipeServiceImpl) resolveIngredients(userID string, ids []string) ([]models.Ingredient, error) {
	ids = dedupe(ids)
	ingredients, err := s.ingredientRepo.FindByIDs(userID, ids)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if len(ingredients) != len(ids) {
		return nil, apperrors.FieldValidationError("recipe", "ingredients", "Unknown ingredient id")
	}
	return ingredients, nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func (s *RecipeServiceImpl) toResponse(recipe *models.Recipe) *dto.RecipeResponse {
	resp := &dto.RecipeResponse{
		ID:            recipe.ID,
		Title:         recipe.Title,
		TimeMinutes:   recipe.TimeMinutes,
		Price:         recipe.Price,
		Link:          recipe.Link,
		TagIDs:        make([]string, 0, len(recipe.Tags)),
		IngredientIDs: make([]string, 0, len(recipe.Ingredients)),
	}
	for _, tag := range recipe.Tags {
		resp.TagIDs = append(resp.TagIDs, tag.ID)
	}
	for _, ingredient := range recipe.Ingredients {
		resp.IngredientIDs = append(resp.IngredientIDs, ingredient.ID)
	}
	if recipe.ImagePath != "" {
		if url, err := s.storage.GetURL(context.Background(), recipe.ImagePath); err == nil {
			resp.Image = url
		}
	}
	return resp
}

func (s *RecipeServiceImpl) toDetailResponse(recipe *models.Recipe) *dto.RecipeDetailResponse {
	resp := &dto.RecipeDetailResponse{
		ID:          recipe.ID,
		Title:       recipe.Title,
		TimeMinutes: recipe.TimeMinutes,
		Price:       recipe.Price,
		Link:        recipe.Link,
		Tags:        make([]dto.TagResponse, 0, len(recipe.Tags)),
		Ingredients: make([]dto.IngredientResponse, 0, len(recipe.Ingredients)),
	}
	for _, tag := range recipe.Tags {
		resp.Tags = append(resp.Tags, dto.TagResponse{ID: tag.ID, Name: tag.Name})
	}
	for _, ingredient := range recipe.Ingredients {
		resp.Ingredients = append(resp.Ingredients, dto.IngredientResponse{ID: ingredient.ID, Name: ingredient.Name})
	}
	if recipe.ImagePath != "" {
		if url, err := s.storage.GetURL(context.Background(), recipe.ImagePath); err == nil {
			resp.Image = url
		}
	}
	return resp
}

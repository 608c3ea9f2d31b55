package repositories

import (
	"errors"

	"recipebook_backend/internal/models"

	"gorm.io/gorm"
)

var ErrTagNotFound = errors.New("tag not found")

type TagRepository interface {
	// FindAllByUser lists the caller's tags, name-descending. With
	// assignedOnly, only tags referenced by at least one recipe are
	// returned, collapsed to distinct rows.
	FindAllByUser(userID string, assignedOnly bool) ([]models.Tag, error)
	FindByID(userID, id string) (*models.Tag, error)
	FindByIDs(userID string, ids []string) ([]models.Tag, error)
	Create(tag *models.Tag) error
}

type TagRepositoryImpl struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) TagRepository {
	return &TagRepositoryImpl{db: db}
}

func (r *TagRepositoryImpl) FindAllByUser(userID string, assignedOnly bool) ([]models.Tag, error) {
	var tags []models.Tag

	query := r.db.Model(&models.Tag{}).
		Where("tags.user_id = ?", userID).
		Order("tags.name DESC")

	if assignedOnly {
		query = query.
			Joins("JOIN recipe_tags ON recipe_tags.tag_id = tags.id").
			Distinct("tags.*")
	}

	if err := query.Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

func (r *TagRepositoryImpl) FindByID(userID, id string) (*models.Tag, error) {
	var tag models.Tag
	err := r.db.First(&tag, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTagNotFound
		}
		return nil, err
	}
	return &tag, nil
}

func (r *TagRepositoryImpl) FindByIDs(userID string, ids []string) ([]models.Tag, error) {
	var tags []models.Tag
	if len(ids) == 0 {
		return tags, nil
	}
	err := r.db.Where("user_id = ? AND id IN ?", userID, ids).Find(&tags).Error
	return tags, err
}

func (r *TagRepositoryImpl) Create(tag *models.Tag) error {
	return r.db.Create(tag).Error
}

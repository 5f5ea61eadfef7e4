package repository

import (
	"github.com/trahulprabhu38/major-project-sub000/internal/model"

	"gorm.io/gorm"
)

type QuestionMapRepository struct {
	DB *gorm.DB
}

func NewQuestionMapRepository(db *gorm.DB) *QuestionMapRepository {
	return &QuestionMapRepository{DB: db}
}

func (r *QuestionMapRepository) MappingsFor(examIndex int) ([]model.QuestionMapping, error) {
	var mappings []model.QuestionMapping
	err := r.DB.Where("exam_index = ?", examIndex).Order("question ASC").Find(&mappings).Error
	return mappings, err
}

func (r *QuestionMapRepository) Create(mapping *model.QuestionMapping) error {
	return r.DB.Create(mapping).Error
}

func (r *QuestionMapRepository) List() ([]model.QuestionMapping, error) {
	var mappings []model.QuestionMapping
	err := r.DB.Order("exam_index ASC, question ASC").Find(&mappings).Error
	return mappings, err
}

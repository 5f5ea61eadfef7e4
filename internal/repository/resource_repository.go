package repository

import (
	"github.com/trahulprabhu38/major-project-sub000/internal/model"

	"gorm.io/gorm"
)

type ResourceRepository struct {
	DB *gorm.DB
}

func NewResourceRepository(db *gorm.DB) *ResourceRepository {
	return &ResourceRepository{DB: db}
}

func (r *ResourceRepository) Create(resource *model.Resource) error {
	return r.DB.Create(resource).Error
}

func (r *ResourceRepository) FindByID(id uint) (*model.Resource, error) {
	var resource model.Resource
	err := r.DB.First(&resource, id).Error
	return &resource, err
}

func (r *ResourceRepository) ListAll() ([]model.Resource, error) {
	var resources []model.Resource
	err := r.DB.Order("co ASC, id ASC").Find(&resources).Error
	return resources, err
}

func (r *ResourceRepository) ListByCO(co string) ([]model.Resource, error) {
	var resources []model.Resource
	err := r.DB.Where("co = ?", co).Order("id ASC").Find(&resources).Error
	return resources, err
}

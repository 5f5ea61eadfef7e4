package repository

import (
	"github.com/trahulprabhu38/major-project-sub000/internal/model"

	"gorm.io/gorm"
)

// InteractionRepository reads and appends the shared interaction log.
// Appends are single-row inserts, so concurrent feedback requests never
// interleave partial records; readers get whatever consistent snapshot the
// database serves at query time.
type InteractionRepository struct {
	DB *gorm.DB
}

func NewInteractionRepository(db *gorm.DB) *InteractionRepository {
	return &InteractionRepository{DB: db}
}

func (r *InteractionRepository) LoadInteractions() ([]model.Interaction, error) {
	var interactions []model.Interaction
	err := r.DB.Order("id ASC").Find(&interactions).Error
	return interactions, err
}

func (r *InteractionRepository) Append(interaction *model.Interaction) error {
	return r.DB.Create(interaction).Error
}

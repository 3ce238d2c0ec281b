package repository

import (
	"errors"
	"time"

	"github.com/neuronest/neuronest/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ThoughtRepository struct {
	db *gorm.DB
}

func NewThoughtRepository(db *gorm.DB) *ThoughtRepository {
	return &ThoughtRepository{db: db}
}

func (r *ThoughtRepository) CreateThought(thought *models.Thought) error {
	return r.db.Create(thought).Error
}

// GetThoughtsByOwner retrieves the owner's thoughts, newest first, paginated.
func (r *ThoughtRepository) GetThoughtsByOwner(ownerID uuid.UUID, skip, limit int) ([]models.Thought, error) {
	var thoughts []models.Thought
	err := r.db.
		Where("user_id = ?", ownerID).
		Order("created_at DESC").
		Offset(skip).
		Limit(limit).
		Find(&thoughts).Error

	return thoughts, err
}

// GetThoughtsForPeriod retrieves the owner's thoughts created in
// [start, end), newest first, up to limit rows.
func (r *ThoughtRepository) GetThoughtsForPeriod(ownerID uuid.UUID, start, end time.Time, limit int) ([]models.Thought, error) {
	var thoughts []models.Thought
	err := r.db.
		Where("user_id = ?", ownerID).
		Where("created_at >= ?", start).
		Where("created_at < ?", end).
		Order("created_at DESC").
		Limit(limit).
		Find(&thoughts).Error

	return thoughts, err
}

// WaterThought advances the growth stage by one (capped at MaxGrowthStage) and
// refreshes last_watered_at, as a single conditional UPDATE inside one
// transaction. Concurrent waterers of the same thought serialize on the row
// lock, so the cap cannot be overshot. Returns (nil, nil) when no thought with
// that id belongs to the owner.
func (r *ThoughtRepository) WaterThought(ownerID, thoughtID uuid.UUID) (*models.Thought, error) {
	var updated models.Thought

	err := r.db.Transaction(func(tx *gorm.DB) error {
		// CASE instead of LEAST/MIN so the statement runs on both
		// postgres and the sqlite test database.
		result := tx.Model(&models.Thought{}).
			Where("id = ? AND user_id = ?", thoughtID, ownerID).
			Updates(map[string]interface{}{
				"growth_stage": gorm.Expr(
					"CASE WHEN growth_stage < ? THEN growth_stage + 1 ELSE growth_stage END",
					models.MaxGrowthStage,
				),
				"last_watered_at": time.Now().UTC(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		return tx.Where("id = ?", thoughtID).First(&updated).Error
	})

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &updated, nil
}

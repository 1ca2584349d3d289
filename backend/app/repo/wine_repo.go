package repo

import (
	"context"

	"wine-cellar/backend/app/models"

	"gorm.io/gorm"
)

type WineRepository struct{ db *gorm.DB }

func NewWineRepository(db *gorm.DB) *WineRepository { return &WineRepository{db: db} }

func (r *WineRepository) Create(ctx context.Context, w *models.Wine) error {
	return r.db.WithContext(ctx).Create(w).Error
}

// ListAll returns every wine in store order.
func (r *WineRepository) ListAll(ctx context.Context) ([]models.Wine, error) {
	var wines []models.Wine
	err := r.db.WithContext(ctx).Find(&wines).Error
	return wines, err
}

// FindByID returns gorm.ErrRecordNotFound when no row matches.
func (r *WineRepository) FindByID(ctx context.Context, id string) (*models.Wine, error) {
	var w models.Wine
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&w).Error; err != nil {
		return nil, err
	}
	return &w, nil
}

// Update writes the given columns of w onto the row with id. Columns outside
// models.MutableColumns are ignored, so id and uploaded are never touched.
func (r *WineRepository) Update(ctx context.Context, id string, w *models.Wine, columns []string) error {
	cols := allowed(columns)
	if len(cols) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&models.Wine{}).
		Where("id = ?", id).
		Select(cols).
		Updates(w).Error
}

// Delete removes the row with id. Missing rows are not an error.
func (r *WineRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Wine{}).Error
}

func allowed(columns []string) []string {
	out := make([]string, 0, len(columns))
	for _, c := range columns {
		for _, m := range models.MutableColumns {
			if c == m {
				out = append(out, c)
				break
			}
		}
	}
	return out
}

package templates

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(template *SeatTemplate) error
	GetByID(id uuid.UUID) (*SeatTemplate, error)
	GetByEventID(eventID uuid.UUID) (*SeatTemplate, error)
	ReplaceLayout(templateID uuid.UUID, updates map[string]interface{}, seats []TemplateSeat, categories []CategoryPrice) (*SeatTemplate, error)
	SetPublished(templateID uuid.UUID, published bool) error
	UpdateCategoryPrice(templateID uuid.UUID, category string, price float64, currency string) error
	Delete(id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(template *SeatTemplate) error {
	return r.db.Create(template).Error
}

func (r *repository) GetByID(id uuid.UUID) (*SeatTemplate, error) {
	var template SeatTemplate
	err := r.db.Preload("Seats").Preload("Categories").
		Where("id = ?", id).First(&template).Error
	if err != nil {
		return nil, err
	}
	return &template, nil
}

func (r *repository) GetByEventID(eventID uuid.UUID) (*SeatTemplate, error) {
	var template SeatTemplate
	err := r.db.Preload("Seats").Preload("Categories").
		Where("event_id = ?", eventID).First(&template).Error
	if err != nil {
		return nil, err
	}
	return &template, nil
}

// ReplaceLayout swaps the template's seats and categories in one transaction.
// Passing nil for seats or categories leaves that part untouched.
func (r *repository) ReplaceLayout(templateID uuid.UUID, updates map[string]interface{}, seats []TemplateSeat, categories []CategoryPrice) (*SeatTemplate, error) {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var template SeatTemplate
		if err := tx.Where("id = ?", templateID).First(&template).Error; err != nil {
			return err
		}

		if len(updates) > 0 {
			if err := tx.Model(&template).Updates(updates).Error; err != nil {
				return fmt.Errorf("failed to update template: %w", err)
			}
		}

		if seats != nil {
			if err := tx.Where("template_id = ?", templateID).Delete(&TemplateSeat{}).Error; err != nil {
				return fmt.Errorf("failed to clear template seats: %w", err)
			}
			for i := range seats {
				seats[i].TemplateID = templateID
			}
			if err := tx.Create(&seats).Error; err != nil {
				return fmt.Errorf("failed to insert template seats: %w", err)
			}
		}

		if categories != nil {
			if err := tx.Where("template_id = ?", templateID).Delete(&CategoryPrice{}).Error; err != nil {
				return fmt.Errorf("failed to clear category prices: %w", err)
			}
			for i := range categories {
				categories[i].TemplateID = templateID
			}
			if err := tx.Create(&categories).Error; err != nil {
				return fmt.Errorf("failed to insert category prices: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return r.GetByID(templateID)
}

func (r *repository) SetPublished(templateID uuid.UUID, published bool) error {
	res := r.db.Model(&SeatTemplate{}).
		Where("id = ?", templateID).
		Update("published", published)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) UpdateCategoryPrice(templateID uuid.UUID, category string, price float64, currency string) error {
	updates := map[string]interface{}{"price": price}
	if currency != "" {
		updates["currency"] = currency
	}

	res := r.db.Model(&CategoryPrice{}).
		Where("template_id = ? AND category = ?", templateID, category).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) Delete(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("template_id = ?", id).Delete(&TemplateSeat{}).Error; err != nil {
			return fmt.Errorf("failed to delete template seats: %w", err)
		}
		if err := tx.Where("template_id = ?", id).Delete(&CategoryPrice{}).Error; err != nil {
			return fmt.Errorf("failed to delete category prices: %w", err)
		}
		if err := tx.Where("id = ?", id).Delete(&SeatTemplate{}).Error; err != nil {
			return fmt.Errorf("failed to delete template: %w", err)
		}
		return nil
	})
}

package repository

import (
	"errors"

	"credon/internal/models"

	"gorm.io/gorm"
)

type NoticeRepository struct {
	db *gorm.DB
}

func NewNoticeRepository(db *gorm.DB) *NoticeRepository {
	return &NoticeRepository{db: db}
}

func (r *NoticeRepository) Create(n *models.Notice) error { return r.db.Create(n).Error }

func (r *NoticeRepository) Update(n *models.Notice) error { return r.db.Save(n).Error }

func (r *NoticeRepository) Delete(id uint) error {
	return r.db.Delete(&models.Notice{}, id).Error
}

func (r *NoticeRepository) GetByID(id uint) (*models.Notice, error) {
	var n models.Notice
	if err := r.db.First(&n, id).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *NoticeRepository) ListAll() ([]models.Notice, error) {
	var list []models.Notice
	err := r.db.Order("created_at DESC").Find(&list).Error
	return list, err
}

func (r *NoticeRepository) ListActive() ([]models.Notice, error) {
	var list []models.Notice
	err := r.db.Where("is_active = ?", true).Order("created_at DESC").Find(&list).Error
	return list, err
}

type SupportRepository struct {
	db *gorm.DB
}

func NewSupportRepository(db *gorm.DB) *SupportRepository {
	return &SupportRepository{db: db}
}

func (r *SupportRepository) Create(t *models.SupportTicket) error { return r.db.Create(t).Error }

func (r *SupportRepository) Update(t *models.SupportTicket) error { return r.db.Save(t).Error }

func (r *SupportRepository) GetByID(id uint) (*models.SupportTicket, error) {
	var t models.SupportTicket
	if err := r.db.First(&t, id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *SupportRepository) ListByUser(userID uint) ([]models.SupportTicket, error) {
	var list []models.SupportTicket
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&list).Error
	return list, err
}

// ListAll returns tickets, optionally filtered by status.
func (r *SupportRepository) ListAll(status string) ([]models.SupportTicket, error) {
	q := r.db.Order("created_at DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var list []models.SupportTicket
	err := q.Find(&list).Error
	return list, err
}

type PageRepository struct {
	db *gorm.DB
}

func NewPageRepository(db *gorm.DB) *PageRepository {
	return &PageRepository{db: db}
}

// GetByType loads a page with its documents, creating an empty page row on
// first access so admins can edit any known page type without a seed step.
func (r *PageRepository) GetByType(pageType string) (*models.Page, error) {
	var p models.Page
	err := r.db.Preload("Documents").Where("page_type = ?", pageType).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		p = models.Page{PageType: pageType, Title: pageType}
		if err := r.db.Create(&p).Error; err != nil {
			return nil, err
		}
		return &p, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PageRepository) Update(p *models.Page) error { return r.db.Save(p).Error }

func (r *PageRepository) AddDocument(d *models.PageDocument) error { return r.db.Create(d).Error }

func (r *PageRepository) DeleteDocument(pageID, docID uint) error {
	return r.db.Where("page_id = ?", pageID).Delete(&models.PageDocument{}, docID).Error
}

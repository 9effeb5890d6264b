package repositories

import (
	"errors"
	"strings"

	"gigcampus_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrProjectNotFound = errors.New("project not found")
)

// ProjectFilter holds the listing query parameters after parsing.
type ProjectFilter struct {
	Search    string
	Category  models.ProjectCategory
	BudgetMin *float64
	BudgetMax *float64
	IsRemote  *bool
	Status    models.ProjectStatus
	PostedBy  string
	SortBy    string
	SortOrder string
	Page      int
	Limit     int
}

// Whitelisted sort columns. Anything else falls back to created_at.
var projectSortFields = map[string]bool{
	"created_at": true,
	"budget":     true,
	"deadline":   true,
	"views":      true,
}

type ProjectRepository interface {
	Create(db *gorm.DB, project *models.Project) error
	FindByID(db *gorm.DB, id string) (*models.Project, error)
	FindByIDWithDetails(db *gorm.DB, id string) (*models.Project, error)
	FindByIDForUpdate(db *gorm.DB, id string) (*models.Project, error)
	List(db *gorm.DB, filter ProjectFilter) ([]models.Project, int64, error)
	Update(db *gorm.DB, project *models.Project) error
	UpdateFields(db *gorm.DB, id string, fields map[string]interface{}) error
	Delete(db *gorm.DB, id string) error
	IncrementViews(db *gorm.DB, id string) error
	CountByPoster(db *gorm.DB, posterID string) (int64, error)
}

type ProjectRepositoryImpl struct{}

func NewProjectRepository() ProjectRepository {
	return &ProjectRepositoryImpl{}
}

func (r *ProjectRepositoryImpl) Create(db *gorm.DB, project *models.Project) error {
	return db.Create(project).Error
}

func (r *ProjectRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Project, error) {
	var project models.Project
	err := db.First(&project, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	return &project, nil
}

func (r *ProjectRepositoryImpl) FindByIDWithDetails(db *gorm.DB, id string) (*models.Project, error) {
	var project models.Project
	err := db.Preload("Poster").Preload("Assignee").
		Preload("Bids", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Preload("Bids.Bidder").
		First(&project, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	return &project, nil
}

// FindByIDForUpdate takes a row lock. Call inside a transaction only.
func (r *ProjectRepositoryImpl) FindByIDForUpdate(db *gorm.DB, id string) (*models.Project, error) {
	var project models.Project
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&project, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	return &project, nil
}

func (r *ProjectRepositoryImpl) List(db *gorm.DB, filter ProjectFilter) ([]models.Project, int64, error) {
	query := db.Model(&models.Project{})

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ?", pattern, pattern)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.BudgetMin != nil {
		query = query.Where("budget >= ?", *filter.BudgetMin)
	}
	if filter.BudgetMax != nil {
		query = query.Where("budget <= ?", *filter.BudgetMax)
	}
	if filter.IsRemote != nil {
		query = query.Where("is_remote = ?", *filter.IsRemote)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.PostedBy != "" {
		query = query.Where("posted_by = ?", filter.PostedBy)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortField := filter.SortBy
	if !projectSortFields[sortField] {
		sortField = "created_at"
	}
	order := "DESC"
	if strings.EqualFold(filter.SortOrder, "asc") {
		order = "ASC"
	}

	offset := (filter.Page - 1) * filter.Limit

	var projects []models.Project
	err := query.Preload("Poster").
		Preload("Bids", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "project_id", "user_id", "amount")
		}).
		Order(sortField + " " + order).
		Limit(filter.Limit).Offset(offset).
		Find(&projects).Error
	return projects, total, err
}

func (r *ProjectRepositoryImpl) Update(db *gorm.DB, project *models.Project) error {
	result := db.Save(project)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProjectNotFound
	}
	return nil
}

func (r *ProjectRepositoryImpl) UpdateFields(db *gorm.DB, id string, fields map[string]interface{}) error {
	result := db.Model(&models.Project{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProjectNotFound
	}
	return nil
}

func (r *ProjectRepositoryImpl) Delete(db *gorm.DB, id string) error {
	result := db.Where("id = ?", id).Delete(&models.Project{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProjectNotFound
	}
	return nil
}

func (r *ProjectRepositoryImpl) IncrementViews(db *gorm.DB, id string) error {
	return db.Model(&models.Project{}).Where("id = ?", id).
		Update("views", gorm.Expr("views + 1")).Error
}

func (r *ProjectRepositoryImpl) CountByPoster(db *gorm.DB, posterID string) (int64, error) {
	var count int64
	err := db.Model(&models.Project{}).Where("posted_by = ?", posterID).Count(&count).Error
	return count, err
}

package repositories

import (
	"encoding/json"
	"errors"

	"gigcampus_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
)

// UserFilter holds the directory query parameters after parsing.
type UserFilter struct {
	Search     string
	Skills     []string
	University string
	IsStudent  *bool
	Page       int
	Limit      int
}

type UserRepository interface {
	Create(db *gorm.DB, user *models.User) error
	FindByID(db *gorm.DB, id string) (*models.User, error)
	FindByEmail(db *gorm.DB, email string) (*models.User, error)
	FindByUsername(db *gorm.DB, username string) (*models.User, error)
	Search(db *gorm.DB, filter UserFilter) ([]models.User, int64, error)
	Update(db *gorm.DB, user *models.User) error
	UpdateFields(db *gorm.DB, id string, fields map[string]interface{}) error
	Delete(db *gorm.DB, id string) error

	// Derived field updates. Only the rating and payment workflows call these.
	SetReputation(db *gorm.DB, id string, reputation float64) error
	AddEarnings(db *gorm.DB, id string, amount float64) error

	ExistsByEmail(db *gorm.DB, email string) (bool, error)
	ExistsByUsername(db *gorm.DB, username string) (bool, error)
	Count(db *gorm.DB) (int64, error)
}

type UserRepositoryImpl struct{}

func NewUserRepository() UserRepository {
	return &UserRepositoryImpl{}
}

func (r *UserRepositoryImpl) Create(db *gorm.DB, user *models.User) error {
	if err := db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrUserAlreadyExists
		}
		return err
	}
	return nil
}

func (r *UserRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.User, error) {
	var user models.User
	err := db.First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByEmail(db *gorm.DB, email string) (*models.User, error) {
	var user models.User
	err := db.First(&user, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByUsername(db *gorm.DB, username string) (*models.User, error) {
	var user models.User
	err := db.First(&user, "username = ?", username).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// Search lists active users only. A skills filter matches users holding
// any of the requested skills.
func (r *UserRepositoryImpl) Search(db *gorm.DB, filter UserFilter) ([]models.User, int64, error) {
	query := db.Model(&models.User{}).Where("status = ?", models.UserStatusActive)

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("username ILIKE ? OR first_name ILIKE ? OR last_name ILIKE ?",
			pattern, pattern, pattern)
	}
	if len(filter.Skills) > 0 {
		encoded, err := json.Marshal([]string{filter.Skills[0]})
		if err != nil {
			return nil, 0, err
		}
		skillCond := db.Where("skills @> ?", string(encoded))
		for _, skill := range filter.Skills[1:] {
			encoded, err := json.Marshal([]string{skill})
			if err != nil {
				return nil, 0, err
			}
			skillCond = skillCond.Or("skills @> ?", string(encoded))
		}
		query = query.Where(skillCond)
	}
	if filter.University != "" {
		query = query.Where("university ILIKE ?", "%"+filter.University+"%")
	}
	if filter.IsStudent != nil {
		query = query.Where("is_student = ?", *filter.IsStudent)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit

	var users []models.User
	err := query.Order("reputation DESC, created_at DESC").
		Limit(filter.Limit).Offset(offset).
		Find(&users).Error
	return users, total, err
}

func (r *UserRepositoryImpl) Update(db *gorm.DB, user *models.User) error {
	result := db.Save(user)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) UpdateFields(db *gorm.DB, id string, fields map[string]interface{}) error {
	result := db.Model(&models.User{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) Delete(db *gorm.DB, id string) error {
	result := db.Where("id = ?", id).Delete(&models.User{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) SetReputation(db *gorm.DB, id string, reputation float64) error {
	result := db.Model(&models.User{}).Where("id = ?", id).Update("reputation", reputation)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) AddEarnings(db *gorm.DB, id string, amount float64) error {
	result := db.Model(&models.User{}).Where("id = ?", id).
		Update("total_earnings", gorm.Expr("total_earnings + ?", amount))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) ExistsByEmail(db *gorm.DB, email string) (bool, error) {
	var count int64
	err := db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

func (r *UserRepositoryImpl) ExistsByUsername(db *gorm.DB, username string) (bool, error) {
	var count int64
	err := db.Model(&models.User{}).Where("username = ?", username).Count(&count).Error
	return count > 0, err
}

func (r *UserRepositoryImpl) Count(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&models.User{}).Count(&count).Error
	return count, err
}

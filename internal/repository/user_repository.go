package repository

import (
	"github.com/hndoan/Lorises/internal/model"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(user *model.User) error
	FindByID(id uint) (*model.User, error)
	FindByEmail(email string) (*model.User, error)
	MarkVerified(id uint) error
	AssignRole(userID uint, roleName string) error
	FindRoleNames(userID uint) ([]string, error)
	EnsureRole(name string) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *model.User) error {
	return r.db.Create(user).Error
}

func (r *userRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) MarkVerified(id uint) error {
	return r.db.Model(&model.User{}).Where("id = ?", id).Update("is_verified", true).Error
}

func (r *userRepository) AssignRole(userID uint, roleName string) error {
	var role model.Role
	if err := r.db.Where("name = ?", roleName).First(&role).Error; err != nil {
		return err
	}
	return r.db.Model(&model.User{ID: userID}).Association("Roles").Append(&role)
}

func (r *userRepository) FindRoleNames(userID uint) ([]string, error) {
	var names []string
	err := r.db.Model(&model.Role{}).
		Joins("JOIN user_roles ON user_roles.role_id = roles.id").
		Where("user_roles.user_id = ?", userID).
		Pluck("roles.name", &names).Error
	return names, err
}

func (r *userRepository) EnsureRole(name string) error {
	return r.db.Where(model.Role{Name: name}).FirstOrCreate(&model.Role{Name: name}).Error
}

package repository

import (
	"strings"

	"github.com/khanhlt/learnboard/internal/model"
	"gorm.io/gorm"
)

type AccountRepository interface {
	Create(account *model.Account) error
	FindByEmail(email string) (*model.Account, error)
	FindByID(id uint) (*model.Account, error)
	ExistsByEmail(email string) (bool, error)
}

type accountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) Create(account *model.Account) error {
	account.Email = strings.ToLower(account.Email)
	return r.db.Create(account).Error
}

func (r *accountRepository) FindByEmail(email string) (*model.Account, error) {
	var account model.Account
	err := r.db.Where("email = ?", strings.ToLower(email)).First(&account).Error
	return &account, err
}

func (r *accountRepository) FindByID(id uint) (*model.Account, error) {
	var account model.Account
	err := r.db.First(&account, id).Error
	return &account, err
}

func (r *accountRepository) ExistsByEmail(email string) (bool, error) {
	var count int64
	err := r.db.Model(&model.Account{}).Where("email = ?", strings.ToLower(email)).Count(&count).Error
	return count > 0, err
}

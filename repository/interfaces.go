package repository

import (
	"github.com/0End-Of-Light0/test-work-public/models"
)

// PersonRepositoryInterface defines the methods for person data operations.
// Not-found conditions are reported as gorm.ErrRecordNotFound; unique-name
// breaches as ErrDuplicateName.
type PersonRepositoryInterface interface {
	Create(person *models.Person) error
	BulkCreate(people []models.Person) (int, error)
	GetByID(id uint) (*models.Person, error)
	GetByName(name string) (*models.Person, error)
	ListAll(limit int) ([]models.Person, error)
	Update(id uint, upd models.PersonUpdate) (*models.Person, error)
	Delete(id uint) error
}

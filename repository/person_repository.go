package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/0End-Of-Light0/test-work-public/models"
)

// PersonRepository handles database operations for Person and owned Email
// entities
type PersonRepository struct {
	DB *gorm.DB
}

// NewPersonRepository creates a new instance of PersonRepository
func NewPersonRepository(db *gorm.DB) *PersonRepository {
	return &PersonRepository{DB: db}
}

// Create inserts a new person together with any attached emails in a single
// transaction
func (r *PersonRepository) Create(person *models.Person) error {
	err := r.DB.Create(person).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateName
		}
		return fmt.Errorf("failed to create person %s: %w", person.NameSurnamePatronymic, err)
	}
	return nil
}

// BulkCreate inserts many person+email graphs in one transaction and returns
// the number of people created
func (r *PersonRepository) BulkCreate(people []models.Person) (int, error) {
	if len(people) == 0 {
		return 0, nil
	}
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&people).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return 0, ErrDuplicateName
		}
		return 0, fmt.Errorf("failed to bulk create %d people: %w", len(people), err)
	}
	return len(people), nil
}

// GetByID retrieves a person by primary key, preloading Emails
func (r *PersonRepository) GetByID(id uint) (*models.Person, error) {
	var person models.Person
	err := r.DB.Preload("Emails").First(&person, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get person by ID %d: %w", id, err)
	}
	return &person, nil
}

// GetByName retrieves a person by exact full name, preloading Emails
func (r *PersonRepository) GetByName(name string) (*models.Person, error) {
	var person models.Person
	err := r.DB.Preload("Emails").Where("name_surname_patronymic = ?", name).First(&person).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get person by name %q: %w", name, err)
	}
	return &person, nil
}

// ListAll retrieves people ordered by ID, preloading Emails. A limit of 0 or
// less means no cap
func (r *PersonRepository) ListAll(limit int) ([]models.Person, error) {
	var people []models.Person
	query := r.DB.Preload("Emails").Order("id ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&people).Error; err != nil {
		return nil, fmt.Errorf("failed to list people: %w", err)
	}
	return people, nil
}

// Update applies only the fields present in upd. A present Mail list replaces
// the person's existing email rows wholesale. The whole change runs in one
// transaction so a failed email swap never leaves a half-updated record
func (r *PersonRepository) Update(id uint, upd models.PersonUpdate) (*models.Person, error) {
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		var person models.Person
		if err := tx.First(&person, id).Error; err != nil {
			return err
		}

		updates := map[string]interface{}{}
		if upd.NameSurnamePatronymic != nil {
			updates["name_surname_patronymic"] = *upd.NameSurnamePatronymic
		}
		if upd.Gender != nil {
			updates["gender"] = *upd.Gender
		}
		if upd.Nationality != nil {
			updates["nationality"] = *upd.Nationality
		}
		if upd.Age != nil {
			updates["age"] = *upd.Age
		}
		if len(updates) > 0 {
			if err := tx.Model(&person).Updates(updates).Error; err != nil {
				return err
			}
		}

		if upd.Mail != nil {
			if err := tx.Where("person_id = ?", id).Delete(&models.Email{}).Error; err != nil {
				return err
			}
			for _, addr := range *upd.Mail {
				if err := tx.Create(&models.Email{PersonID: id, Mail: addr}).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateName
		}
		return nil, fmt.Errorf("failed to update person ID %d: %w", id, err)
	}
	return r.GetByID(id)
}

// Delete removes a person and all owned email rows
func (r *PersonRepository) Delete(id uint) error {
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("person_id = ?", id).Delete(&models.Email{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Person{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete person ID %d: %w", id, err)
	}
	return nil
}

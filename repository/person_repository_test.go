package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/0End-Of-Light0/test-work-public/models"
)

func setupTestRepo(t *testing.T) *PersonRepository {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	// a single connection keeps the in-memory database alive for the test
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&models.Person{}, &models.Email{}))
	return NewPersonRepository(db)
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestCreateAndGetByName(t *testing.T) {
	repo := setupTestRepo(t)

	person := &models.Person{
		NameSurnamePatronymic: "Ushakov Dmitriy Vasilevich",
		Gender:                "male",
		Nationality:           "RU",
		Age:                   42,
		Emails: []models.Email{
			{Mail: "dmitriy@example.com"},
			{Mail: "ushakov@example.com"},
		},
	}
	require.NoError(t, repo.Create(person))
	assert.NotZero(t, person.ID)

	got, err := repo.GetByName("Ushakov Dmitriy Vasilevich")
	require.NoError(t, err)
	assert.Equal(t, person.ID, got.ID)
	assert.Equal(t, "male", got.Gender)
	assert.Equal(t, "RU", got.Nationality)
	assert.Equal(t, 42, got.Age)
	require.Len(t, got.Emails, 2)
	assert.Equal(t, "dmitriy@example.com", got.Emails[0].Mail)
}

func TestCreateDuplicateName(t *testing.T) {
	repo := setupTestRepo(t)

	require.NoError(t, repo.Create(&models.Person{NameSurnamePatronymic: "Same Name", Age: 30}))

	err := repo.Create(&models.Person{NameSurnamePatronymic: "Same Name", Age: 31})
	assert.ErrorIs(t, err, ErrDuplicateName)
}

func TestGetByNameNotFound(t *testing.T) {
	repo := setupTestRepo(t)

	_, err := repo.GetByName("Nobody Here")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestGetByIDNotFound(t *testing.T) {
	repo := setupTestRepo(t)

	_, err := repo.GetByID(9999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestListAllOrderAndLimit(t *testing.T) {
	repo := setupTestRepo(t)

	for _, name := range []string{"First Person", "Second Person", "Third Person"} {
		require.NoError(t, repo.Create(&models.Person{NameSurnamePatronymic: name, Age: 20}))
	}

	all, err := repo.ListAll(0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "First Person", all[0].NameSurnamePatronymic)
	assert.Equal(t, "Third Person", all[2].NameSurnamePatronymic)

	capped, err := repo.ListAll(2)
	require.NoError(t, err)
	assert.Len(t, capped, 2)
}

func TestUpdatePartialFields(t *testing.T) {
	repo := setupTestRepo(t)

	person := &models.Person{
		NameSurnamePatronymic: "Partial Update",
		Gender:                "female",
		Nationality:           "FR",
		Age:                   25,
	}
	require.NoError(t, repo.Create(person))

	got, err := repo.Update(person.ID, models.PersonUpdate{Age: intPtr(26)})
	require.NoError(t, err)
	assert.Equal(t, 26, got.Age)
	assert.Equal(t, "female", got.Gender, "absent fields must be untouched")
	assert.Equal(t, "FR", got.Nationality)
	assert.Equal(t, "Partial Update", got.NameSurnamePatronymic)
}

func TestUpdateReplacesEmails(t *testing.T) {
	repo := setupTestRepo(t)

	person := &models.Person{
		NameSurnamePatronymic: "Mail Swap",
		Age:                   33,
		Emails:                []models.Email{{Mail: "old1@example.com"}, {Mail: "old2@example.com"}},
	}
	require.NoError(t, repo.Create(person))

	got, err := repo.Update(person.ID, models.PersonUpdate{Mail: &[]string{"new@example.com"}})
	require.NoError(t, err)
	require.Len(t, got.Emails, 1)
	assert.Equal(t, "new@example.com", got.Emails[0].Mail)

	var count int64
	require.NoError(t, repo.DB.Model(&models.Email{}).Where("person_id = ?", person.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count, "old email rows must be gone")
}

func TestUpdateClearsEmailsWithEmptyList(t *testing.T) {
	repo := setupTestRepo(t)

	person := &models.Person{
		NameSurnamePatronymic: "Mail Clear",
		Age:                   33,
		Emails:                []models.Email{{Mail: "only@example.com"}},
	}
	require.NoError(t, repo.Create(person))

	got, err := repo.Update(person.ID, models.PersonUpdate{Mail: &[]string{}})
	require.NoError(t, err)
	assert.Empty(t, got.Emails)
}

func TestUpdateNotFound(t *testing.T) {
	repo := setupTestRepo(t)

	_, err := repo.Update(424242, models.PersonUpdate{Age: intPtr(1)})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUpdateRenameCollision(t *testing.T) {
	repo := setupTestRepo(t)

	require.NoError(t, repo.Create(&models.Person{NameSurnamePatronymic: "Taken Name", Age: 40}))
	other := &models.Person{NameSurnamePatronymic: "Other Name", Age: 41}
	require.NoError(t, repo.Create(other))

	_, err := repo.Update(other.ID, models.PersonUpdate{NameSurnamePatronymic: strPtr("Taken Name")})
	assert.ErrorIs(t, err, ErrDuplicateName)

	// the failed transaction must not have touched the record
	got, getErr := repo.GetByID(other.ID)
	require.NoError(t, getErr)
	assert.Equal(t, "Other Name", got.NameSurnamePatronymic)
}

func TestDeleteCascadesEmails(t *testing.T) {
	repo := setupTestRepo(t)

	person := &models.Person{
		NameSurnamePatronymic: "To Delete",
		Age:                   50,
		Emails:                []models.Email{{Mail: "gone@example.com"}},
	}
	require.NoError(t, repo.Create(person))

	require.NoError(t, repo.Delete(person.ID))

	_, err := repo.GetByID(person.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var count int64
	require.NoError(t, repo.DB.Model(&models.Email{}).Where("person_id = ?", person.ID).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestDeleteNotFound(t *testing.T) {
	repo := setupTestRepo(t)

	err := repo.Delete(9999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestBulkCreate(t *testing.T) {
	repo := setupTestRepo(t)

	people := []models.Person{
		{NameSurnamePatronymic: "Bulk One", Age: 20, Emails: []models.Email{{Mail: "one@example.com"}}},
		{NameSurnamePatronymic: "Bulk Two", Age: 21},
	}
	created, err := repo.BulkCreate(people)
	require.NoError(t, err)
	assert.Equal(t, 2, created)

	got, err := repo.GetByName("Bulk One")
	require.NoError(t, err)
	require.Len(t, got.Emails, 1)
}

func TestBulkCreateEmpty(t *testing.T) {
	repo := setupTestRepo(t)

	created, err := repo.BulkCreate(nil)
	require.NoError(t, err)
	assert.Zero(t, created)
}

func TestBulkCreateDuplicateRollsBack(t *testing.T) {
	repo := setupTestRepo(t)

	require.NoError(t, repo.Create(&models.Person{NameSurnamePatronymic: "Already Here", Age: 30}))

	_, err := repo.BulkCreate([]models.Person{
		{NameSurnamePatronymic: "Fresh Name", Age: 22},
		{NameSurnamePatronymic: "Already Here", Age: 23},
	})
	assert.ErrorIs(t, err, ErrDuplicateName)

	_, err = repo.GetByName("Fresh Name")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound, "transaction must roll back the whole batch")
}

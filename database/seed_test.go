package database

import (
	"context"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/0End-Of-Light0/test-work-public/enrichment"
	"github.com/0End-Of-Light0/test-work-public/models"
	"github.com/0End-Of-Light0/test-work-public/repository"
)

type stubBatchGateway struct {
	err   error
	calls int
}

func (s *stubBatchGateway) LookupBatch(ctx context.Context, attr enrichment.Attribute, names []string) ([]string, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	out := make([]string, len(names))
	for i := range names {
		switch attr {
		case enrichment.AttributeGender:
			out[i] = "female"
		case enrichment.AttributeNationality:
			out[i] = "RU"
		case enrichment.AttributeAge:
			out[i] = "33"
		}
	}
	return out, nil
}

func setupSeedRepo(t *testing.T) repository.PersonRepositoryInterface {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, AutoMigrateModels(db))
	return repository.NewPersonRepository(db)
}

func TestSeederCreatesMissingPeople(t *testing.T) {
	repo := setupSeedRepo(t)
	gateway := &stubBatchGateway{}

	seeder := &Seeder{
		Repo:      repo,
		Gateway:   gateway,
		Names:     []string{"Зубова Валерия Максимовна", "Макеев Максим Матвеевич"},
		MailPools: [][]string{{"test1@mail.com", "test2@mail.com"}},
		Logger:    zerolog.Nop(),
	}
	require.NoError(t, seeder.Run(context.Background()))

	all, err := repo.ListAll(0)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "female", all[0].Gender)
	assert.Equal(t, "RU", all[0].Nationality)
	assert.Equal(t, 33, all[0].Age)
	require.Len(t, all[0].Emails, 2)
	assert.Equal(t, "test1@mail.com", all[0].Emails[0].Mail)
	assert.Equal(t, 3, gateway.calls, "one bundled lookup per attribute")
}

func TestSeederIdempotent(t *testing.T) {
	repo := setupSeedRepo(t)
	gateway := &stubBatchGateway{}

	seeder := &Seeder{
		Repo:    repo,
		Gateway: gateway,
		Names:   []string{"Only Person"},
		Logger:  zerolog.Nop(),
	}
	require.NoError(t, seeder.Run(context.Background()))
	require.NoError(t, seeder.Run(context.Background()))

	all, err := repo.ListAll(0)
	require.NoError(t, err)
	assert.Len(t, all, 1)
	assert.Equal(t, 3, gateway.calls, "the second run has nothing to look up")
}

func TestSeederSkipsExistingNames(t *testing.T) {
	repo := setupSeedRepo(t)
	require.NoError(t, repo.Create(&models.Person{NameSurnamePatronymic: "Already Seeded", Age: 40}))

	seeder := &Seeder{
		Repo:    repo,
		Gateway: &stubBatchGateway{},
		Names:   []string{"Already Seeded", "New Arrival"},
		Logger:  zerolog.Nop(),
	}
	require.NoError(t, seeder.Run(context.Background()))

	all, err := repo.ListAll(0)
	require.NoError(t, err)
	require.Len(t, all, 2)

	got, err := repo.GetByName("Already Seeded")
	require.NoError(t, err)
	assert.Equal(t, 40, got.Age, "existing records are left alone")
}

func TestSeederEnrichmentFailureIsNonFatal(t *testing.T) {
	repo := setupSeedRepo(t)
	gateway := &stubBatchGateway{err: fmt.Errorf("%w: down", enrichment.ErrUnavailable)}

	seeder := &Seeder{
		Repo:    repo,
		Gateway: gateway,
		Names:   []string{"Never Created"},
		Logger:  zerolog.Nop(),
	}
	require.NoError(t, seeder.Run(context.Background()), "provider outage must not block startup")

	all, err := repo.ListAll(0)
	require.NoError(t, err)
	assert.Empty(t, all)
}

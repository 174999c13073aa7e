package database

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/0End-Of-Light0/test-work-public/enrichment"
	"github.com/0End-Of-Light0/test-work-public/models"
	"github.com/0End-Of-Light0/test-work-public/repository"
)

// BatchGateway is the slice of the enrichment gateway the seeder needs: one
// bundled lookup per attribute for the whole missing subset.
type BatchGateway interface {
	LookupBatch(ctx context.Context, attr enrichment.Attribute, names []string) ([]string, error)
}

// Seeder populates baseline test people at startup. It only creates names
// not already present, so repeated starts are idempotent.
type Seeder struct {
	Repo      repository.PersonRepositoryInterface
	Gateway   BatchGateway
	Names     []string
	MailPools [][]string
	Logger    zerolog.Logger
}

// Run seeds the configured baseline names that are missing from the store.
// Enrichment failure aborts the run without error: seeding is best-effort
// and must not block startup on a flaky provider. A store failure is fatal
// and is returned to the caller.
func (s *Seeder) Run(ctx context.Context) error {
	existing, err := s.Repo.ListAll(0)
	if err != nil {
		return fmt.Errorf("seed: listing existing people: %w", err)
	}
	known := make(map[string]struct{}, len(existing))
	for _, person := range existing {
		known[person.NameSurnamePatronymic] = struct{}{}
	}

	var missing []string
	for _, name := range s.Names {
		if _, ok := known[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		s.Logger.Info().Msg("seed data already present")
		return nil
	}

	genders, err := s.Gateway.LookupBatch(ctx, enrichment.AttributeGender, missing)
	if err != nil {
		s.Logger.Warn().Err(err).Msg("seeding aborted: gender inference unavailable")
		return nil
	}
	nationalities, err := s.Gateway.LookupBatch(ctx, enrichment.AttributeNationality, missing)
	if err != nil {
		s.Logger.Warn().Err(err).Msg("seeding aborted: nationality inference unavailable")
		return nil
	}
	ages, err := s.Gateway.LookupBatch(ctx, enrichment.AttributeAge, missing)
	if err != nil {
		s.Logger.Warn().Err(err).Msg("seeding aborted: age inference unavailable")
		return nil
	}

	people := make([]models.Person, 0, len(missing))
	for i, name := range missing {
		age, _ := strconv.Atoi(ages[i]) // unresolved ages stay 0
		person := models.Person{
			NameSurnamePatronymic: name,
			Gender:                genders[i],
			Nationality:           nationalities[i],
			Age:                   age,
		}
		if len(s.MailPools) > 0 {
			for _, addr := range s.MailPools[rand.Intn(len(s.MailPools))] {
				person.Emails = append(person.Emails, models.Email{Mail: addr})
			}
		}
		people = append(people, person)
	}

	created, err := s.Repo.BulkCreate(people)
	if err != nil {
		return fmt.Errorf("seed: bulk create: %w", err)
	}
	s.Logger.Info().Int("created", created).Msg("seeded baseline people")
	return nil
}

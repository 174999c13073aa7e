package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/0End-Of-Light0/test-work-public/enrichment"
	"github.com/0End-Of-Light0/test-work-public/models"
	"github.com/0End-Of-Light0/test-work-public/repository"
)

// EnrichmentGateway is the slice of the enrichment gateway the service needs:
// one single-name lookup per attribute.
type EnrichmentGateway interface {
	Lookup(ctx context.Context, attr enrichment.Attribute, name string) (string, error)
}

// PersonService coordinates validation, enrichment and persistence for
// person records, and shapes stored entities into the API representation.
type PersonService struct {
	repo      repository.PersonRepositoryInterface
	gateway   EnrichmentGateway
	listLimit int
	logger    zerolog.Logger
}

// NewPersonService creates the service with its collaborators injected.
func NewPersonService(repo repository.PersonRepositoryInterface, gateway EnrichmentGateway, listLimit int, logger zerolog.Logger) *PersonService {
	return &PersonService{
		repo:      repo,
		gateway:   gateway,
		listLimit: listLimit,
		logger:    logger,
	}
}

// toResponse flattens owned email rows into a plain address list.
func toResponse(person *models.Person) models.PersonResponse {
	emails := make([]string, 0, len(person.Emails))
	for _, email := range person.Emails {
		emails = append(emails, email.Mail)
	}
	return models.PersonResponse{
		ID:                    person.ID,
		NameSurnamePatronymic: person.NameSurnamePatronymic,
		Gender:                person.Gender,
		Nationality:           person.Nationality,
		Age:                   person.Age,
		Emails:                emails,
	}
}

// GetByName returns the person stored under the exact full name.
func (s *PersonService) GetByName(name string) (*models.PersonResponse, error) {
	person, err := s.repo.GetByName(name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPersonNotFound
		}
		return nil, err
	}
	resp := toResponse(person)
	return &resp, nil
}

// ListAll returns every stored person, capped by the configured list limit.
func (s *PersonService) ListAll() ([]models.PersonResponse, error) {
	people, err := s.repo.ListAll(s.listLimit)
	if err != nil {
		return nil, err
	}
	responses := make([]models.PersonResponse, 0, len(people))
	for i := range people {
		responses = append(responses, toResponse(&people[i]))
	}
	return responses, nil
}

// Create validates the payload, fills any missing demographic fields from the
// inference providers and persists the result. Enrichment fully precedes the
// write: a provider failure aborts the create with nothing persisted.
func (s *PersonService) Create(ctx context.Context, req models.PersonCreate) (*models.PersonResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// friendly pre-check; the unique index still backstops racing creates
	if _, err := s.repo.GetByName(req.NameSurnamePatronymic); err == nil {
		return nil, ErrPersonExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("checking existing person: %w", err)
	}

	// reject malformed addresses before any enrichment call or write
	for _, addr := range req.Mail {
		if err := models.ValidateEmail(addr); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}

	if err := s.enrich(ctx, &req); err != nil {
		return nil, err
	}

	// provider responses must not smuggle in a structurally invalid record
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: enriched record: %v", ErrInvalidInput, err)
	}

	person := &models.Person{
		NameSurnamePatronymic: req.NameSurnamePatronymic,
		Gender:                req.Gender,
		Nationality:           req.Nationality,
		Age:                   req.Age,
	}
	for _, addr := range req.Mail {
		person.Emails = append(person.Emails, models.Email{Mail: addr})
	}

	if err := s.repo.Create(person); err != nil {
		if errors.Is(err, repository.ErrDuplicateName) {
			return nil, ErrPersonExists
		}
		return nil, err
	}

	s.logger.Info().
		Uint("id", person.ID).
		Str("name", person.NameSurnamePatronymic).
		Msg("person created")

	resp := toResponse(person)
	return &resp, nil
}

// enrich issues one gateway lookup per unset field, keyed by the full name.
// The lookups target independent providers and run concurrently; the first
// failure cancels the rest and aborts the create.
func (s *PersonService) enrich(ctx context.Context, req *models.PersonCreate) error {
	group, ctx := errgroup.WithContext(ctx)
	name := req.NameSurnamePatronymic

	if needsEnrichment(req.Gender) {
		group.Go(func() error {
			value, err := s.gateway.Lookup(ctx, enrichment.AttributeGender, name)
			if err != nil {
				return err
			}
			req.Gender = value
			return nil
		})
	}
	if needsEnrichment(req.Nationality) {
		group.Go(func() error {
			value, err := s.gateway.Lookup(ctx, enrichment.AttributeNationality, name)
			if err != nil {
				return err
			}
			req.Nationality = value
			return nil
		})
	}
	if req.Age == 0 {
		group.Go(func() error {
			value, err := s.gateway.Lookup(ctx, enrichment.AttributeAge, name)
			if err != nil {
				return err
			}
			age, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("%w: inferred age %q is not numeric", enrichment.ErrUnavailable, value)
			}
			req.Age = age
			return nil
		})
	}
	return group.Wait()
}

// needsEnrichment reports whether a client-supplied string field counts as
// unset: absent, blank, or the auto-generated placeholder stub.
func needsEnrichment(value string) bool {
	trimmed := strings.TrimSpace(value)
	return trimmed == "" || trimmed == models.PlaceholderSentinel
}

// Update applies exactly the fields present in the payload. A present Mail
// list replaces the stored set. No enrichment happens on update.
func (s *PersonService) Update(id uint, upd models.PersonUpdate) (*models.PersonResponse, error) {
	if err := upd.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if upd.Mail != nil {
		for _, addr := range *upd.Mail {
			if err := models.ValidateEmail(addr); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
			}
		}
	}

	person, err := s.repo.Update(id, upd)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPersonNotFound
		}
		if errors.Is(err, repository.ErrDuplicateName) {
			return nil, ErrPersonExists
		}
		return nil, err
	}

	resp := toResponse(person)
	return &resp, nil
}

// Delete removes the person and all owned emails.
func (s *PersonService) Delete(id uint) error {
	if err := s.repo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPersonNotFound
		}
		return err
	}
	s.logger.Info().Uint("id", id).Msg("person deleted")
	return nil
}

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/0End-Of-Light0/test-work-public/enrichment"
	"github.com/0End-Of-Light0/test-work-public/models"
	"github.com/0End-Of-Light0/test-work-public/services"
)

type PersonHandler struct {
	Service *services.PersonService
	Logger  zerolog.Logger
}

// GetPerson handles GET /person/{name}
func (ph *PersonHandler) GetPerson(w http.ResponseWriter, r *http.Request) {
	// chi hands back the raw path segment; full names carry spaces and
	// non-ASCII letters, so clients send them percent-encoded
	name := chi.URLParam(r, "name")
	if decoded, err := url.PathUnescape(name); err == nil {
		name = decoded
	}

	person, err := ph.Service.GetByName(name)
	if err != nil {
		if errors.Is(err, services.ErrPersonNotFound) {
			WriteAPIError(w, http.StatusNotFound, "not_found", "Person not found")
			return
		}
		ph.Logger.Error().Err(err).Str("name", name).Msg("failed to get person")
		WriteAPIError(w, http.StatusInternalServerError, "internal_error", "Failed to retrieve person")
		return
	}

	writeJSON(w, http.StatusOK, person)
}

// ListPeople handles GET /people
func (ph *PersonHandler) ListPeople(w http.ResponseWriter, r *http.Request) {
	people, err := ph.Service.ListAll()
	if err != nil {
		ph.Logger.Error().Err(err).Msg("failed to list people")
		WriteAPIError(w, http.StatusInternalServerError, "internal_error", "Failed to retrieve people")
		return
	}
	writeJSON(w, http.StatusOK, people)
}

// CreatePerson handles POST /person
func (ph *PersonHandler) CreatePerson(w http.ResponseWriter, r *http.Request) {
	var req models.PersonCreate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_body", "Invalid request body: "+err.Error())
		return
	}

	person, err := ph.Service.Create(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidInput):
			WriteAPIError(w, http.StatusBadRequest, "invalid_input", err.Error())
		case errors.Is(err, services.ErrPersonExists):
			WriteAPIError(w, http.StatusBadRequest, "duplicate_name", "Person with this name already exists")
		case errors.Is(err, enrichment.ErrUnavailable):
			ph.Logger.Error().Err(err).Str("name", req.NameSurnamePatronymic).Msg("enrichment failed during create")
			WriteAPIError(w, http.StatusInternalServerError, "enrichment_unavailable", "Name inference service unavailable")
		default:
			ph.Logger.Error().Err(err).Str("name", req.NameSurnamePatronymic).Msg("failed to create person")
			WriteAPIError(w, http.StatusInternalServerError, "internal_error", "Failed to create person")
		}
		return
	}

	writeJSON(w, http.StatusCreated, person)
}

// UpdatePerson handles PATCH /person/{id}
func (ph *PersonHandler) UpdatePerson(w http.ResponseWriter, r *http.Request) {
	id, ok := parsePersonID(w, r)
	if !ok {
		return
	}

	var upd models.PersonUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_body", "Invalid request body: "+err.Error())
		return
	}

	person, err := ph.Service.Update(id, upd)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidInput):
			WriteAPIError(w, http.StatusBadRequest, "invalid_input", err.Error())
		case errors.Is(err, services.ErrPersonNotFound):
			WriteAPIError(w, http.StatusNotFound, "not_found", "Person not found")
		case errors.Is(err, services.ErrPersonExists):
			WriteAPIError(w, http.StatusConflict, "duplicate_name", "Person with this name already exists")
		default:
			ph.Logger.Error().Err(err).Uint("id", id).Msg("failed to update person")
			WriteAPIError(w, http.StatusInternalServerError, "internal_error", "Failed to update person")
		}
		return
	}

	writeJSON(w, http.StatusOK, person)
}

// DeletePerson handles DELETE /person/{id}
func (ph *PersonHandler) DeletePerson(w http.ResponseWriter, r *http.Request) {
	id, ok := parsePersonID(w, r)
	if !ok {
		return
	}

	if err := ph.Service.Delete(id); err != nil {
		if errors.Is(err, services.ErrPersonNotFound) {
			WriteAPIError(w, http.StatusNotFound, "not_found", "Person not found")
			return
		}
		ph.Logger.Error().Err(err).Uint("id", id).Msg("failed to delete person")
		WriteAPIError(w, http.StatusInternalServerError, "internal_error", "Failed to delete person")
		return
	}

	writeJSON(w, http.StatusNoContent, nil)
}

func parsePersonID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_id", "Invalid person ID format")
		return 0, false
	}
	return uint(id), true
}

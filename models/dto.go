package models

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// PlaceholderSentinel is the "example" value auto-generated API clients send
// for string fields they never filled in. It is treated exactly like an
// absent value and must never be persisted.
const PlaceholderSentinel = "string"

// PersonCreate is the request payload for creating a person. Gender,
// Nationality and Age may be left unset; the service fills them from the
// name-inference providers before persisting.
type PersonCreate struct {
	NameSurnamePatronymic string   `json:"NameSurnamePatronymic"`
	Gender                string   `json:"Gender"`
	Nationality           string   `json:"Nationality"`
	Age                   int      `json:"Age"`
	Mail                  []string `json:"Mail"`
}

// Validate checks the structural rules shared by client payloads and
// enrichment-merged records. Email format is checked separately via
// ValidateEmail so failures can name the offending address.
func (p PersonCreate) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.NameSurnamePatronymic, validation.Required),
		validation.Field(&p.Age, validation.Min(0)),
	)
}

// PersonUpdate is the partial-update payload. Pointer fields distinguish
// "present with value" from "absent"; only present fields are applied. A
// present Mail list fully replaces the person's existing addresses.
type PersonUpdate struct {
	NameSurnamePatronymic *string   `json:"NameSurnamePatronymic,omitempty"`
	Gender                *string   `json:"Gender,omitempty"`
	Nationality           *string   `json:"Nationality,omitempty"`
	Age                   *int      `json:"Age,omitempty"`
	Mail                  *[]string `json:"Mail,omitempty"`
}

// Validate checks only the fields that are present.
func (p PersonUpdate) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.NameSurnamePatronymic, validation.NilOrNotEmpty),
		validation.Field(&p.Age, validation.Min(0)),
	)
}

// PersonResponse is the external representation of a person, with owned
// email rows flattened into a plain list of addresses.
type PersonResponse struct {
	ID                    uint     `json:"Id"`
	NameSurnamePatronymic string   `json:"NameSurnamePatronymic"`
	Gender                string   `json:"Gender"`
	Nationality           string   `json:"Nationality"`
	Age                   int      `json:"Age"`
	Emails                []string `json:"emails"`
}

// ValidateEmail checks a single address against the usual
// local-part@domain-with-dot shape.
func ValidateEmail(addr string) error {
	if err := is.Email.Validate(addr); err != nil {
		return fmt.Errorf("invalid email address %q: %w", addr, err)
	}
	return nil
}

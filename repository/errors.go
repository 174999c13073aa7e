package repository

import "errors"

// ErrDuplicateName is returned when an insert or rename breaches the unique
// index on people.name_surname_patronymic. The index is the authoritative
// guard against concurrent creates of the same name; the service layer's
// pre-check only gives friendlier errors in the common case.
var ErrDuplicateName = errors.New("person with this name already exists")

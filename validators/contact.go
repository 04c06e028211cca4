package validators

import "errors"

var (
	ErrContactNameEmpty    = errors.New("no contact name provided")
	ErrContactNameTooLong  = errors.New("contact name is too long")
	ErrContactSurnameEmpty = errors.New("no contact surname provided")
	ErrContactNotesTooLong = errors.New("contact notes are too long")
)

const (
	maxNameLen  = 50
	maxNotesLen = 500
)

func ContactValidator(name, surname, notes string) error {
	if name == "" {
		return ErrContactNameEmpty
	}

	if surname == "" {
		return ErrContactSurnameEmpty
	}

	if len(name) > maxNameLen || len(surname) > maxNameLen {
		return ErrContactNameTooLong
	}

	if len(notes) > maxNotesLen {
		return ErrContactNotesTooLong
	}

	return nil
}

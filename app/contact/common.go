// Package contact contains the CRUD, search and birthday endpoints over a
// user's contacts. Every query in here is scoped to the owning user, the
// admin-only listing being the single exception.
package contact

import (
	"errors"
	"strconv"
	"time"

	"goit/contacts-api/internal/store"
	"goit/contacts-api/validators"

	"github.com/gin-gonic/gin"
)

const birthdayLayout = "2006-01-02"

var errBirthdayInvalid = errors.New("birthday must be in YYYY-MM-DD format")

type contactBody struct {
	Name     string `json:"name"`
	Surname  string `json:"surname"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Birthday string `json:"birthday"`
	Notes    string `json:"notes"`
}

// fields validates the payload and converts it into store fields.
func (b *contactBody) fields() (store.ContactFields, error) {
	if err := validators.ContactValidator(b.Name, b.Surname, b.Notes); err != nil {
		return store.ContactFields{}, err
	}

	if b.Email != "" {
		if err := validators.EmailValidator(b.Email); err != nil {
			return store.ContactFields{}, err
		}
	}

	var birthday time.Time
	if b.Birthday != "" {
		var err error
		birthday, err = time.Parse(birthdayLayout, b.Birthday)
		if err != nil {
			return store.ContactFields{}, errBirthdayInvalid
		}
	}

	return store.ContactFields{
		Name:     b.Name,
		Surname:  b.Surname,
		Email:    b.Email,
		Phone:    b.Phone,
		Birthday: birthday,
		Notes:    b.Notes,
	}, nil
}

// pagination reads limit/offset query params with the defaults the old
// frontend expects.
func pagination(c *gin.Context) (limit, offset int, ok bool) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 || limit > 500 {
		return 0, 0, false
	}

	offset, err = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		return 0, 0, false
	}

	return limit, offset, true
}

// contactID parses the :id route param.
func contactID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, false
	}

	return uint(id), true
}

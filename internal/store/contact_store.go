package store

import (
	"context"
	"errors"
	"strings"
	"time"

	"goit/contacts-api/internal/model"

	"gorm.io/gorm"
)

// birthdayWindowDays is the inclusive reminder window: a birthday counts as
// upcoming when its month/day falls on today or any of the next 7 days.
const birthdayWindowDays = 7

// ContactFields carries the user-settable part of a contact. Updates build a
// fresh record from these instead of mutating the fetched row in place.
type ContactFields struct {
	Name     string
	Surname  string
	Email    string
	Phone    string
	Birthday time.Time
	Notes    string
}

type ContactStore struct {
	db *gorm.DB
}

func NewContactStore(db *gorm.DB) *ContactStore {
	return &ContactStore{db: db}
}

// List returns a page of the user's contacts.
func (s *ContactStore) List(ctx context.Context, limit, offset int, userID uint) ([]model.Contact, error) {
	var contacts []model.Contact

	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id").
		Offset(offset).
		Limit(limit).
		Find(&contacts).
		Error

	return contacts, err
}

// ListAll returns a page of contacts across all users. Admin only, the
// handler enforces the role.
func (s *ContactStore) ListAll(ctx context.Context, limit, offset int) ([]model.Contact, error) {
	var contacts []model.Contact

	err := s.db.WithContext(ctx).
		Order("id").
		Offset(offset).
		Limit(limit).
		Find(&contacts).
		Error

	return contacts, err
}

// Get returns the contact only when it belongs to userID, nil otherwise.
func (s *ContactStore) Get(ctx context.Context, id, userID uint) (*model.Contact, error) {
	var contact model.Contact

	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&contact).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &contact, nil
}

func (s *ContactStore) Create(ctx context.Context, fields ContactFields, userID uint) (*model.Contact, error) {
	contact := model.Contact{
		UserID:   userID,
		Name:     fields.Name,
		Surname:  fields.Surname,
		Email:    fields.Email,
		Phone:    fields.Phone,
		Birthday: fields.Birthday,
		Notes:    fields.Notes,
	}

	if err := s.db.WithContext(ctx).Create(&contact).Error; err != nil {
		return nil, err
	}

	return &contact, nil
}

// Update replaces the contact's fields. Returns nil without touching
// anything when the contact doesn't belong to userID.
func (s *ContactStore) Update(ctx context.Context, id, userID uint, fields ContactFields) (*model.Contact, error) {
	existing, err := s.Get(ctx, id, userID)
	if err != nil || existing == nil {
		return nil, err
	}

	updated := model.Contact{
		ID:        existing.ID,
		UserID:    existing.UserID,
		Name:      fields.Name,
		Surname:   fields.Surname,
		Email:     fields.Email,
		Phone:     fields.Phone,
		Birthday:  fields.Birthday,
		Notes:     fields.Notes,
		CreatedAt: existing.CreatedAt,
	}

	if err := s.db.WithContext(ctx).Save(&updated).Error; err != nil {
		return nil, err
	}

	return &updated, nil
}

// Delete removes the contact if it belongs to userID and returns it, nil
// otherwise.
func (s *ContactStore) Delete(ctx context.Context, id, userID uint) (*model.Contact, error) {
	existing, err := s.Get(ctx, id, userID)
	if err != nil || existing == nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Delete(existing).Error; err != nil {
		return nil, err
	}

	return existing, nil
}

// Search does a case-insensitive substring match over name, surname and
// email within the user's contacts.
func (s *ContactStore) Search(ctx context.Context, query string, userID uint) ([]model.Contact, error) {
	var contacts []model.Contact

	pattern := "%" + strings.ToLower(query) + "%"

	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("LOWER(name) LIKE ? OR LOWER(surname) LIKE ? OR LOWER(email) LIKE ?",
			pattern, pattern, pattern).
		Find(&contacts).
		Error

	return contacts, err
}

// UpcomingBirthdays returns the user's contacts whose birthday falls within
// the inclusive 7-day window starting today, compared by month and day only.
// The window is built as a set of concrete month/day pairs so it stays
// correct across month rollovers and the Dec->Jan year wrap, including the
// Feb 29 case.
func (s *ContactStore) UpcomingBirthdays(ctx context.Context, userID uint) ([]model.Contact, error) {
	var contacts []model.Contact

	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&contacts).
		Error
	if err != nil {
		return nil, err
	}

	return filterUpcoming(contacts, time.Now()), nil
}

type monthDay struct {
	month time.Month
	day   int
}

func filterUpcoming(contacts []model.Contact, today time.Time) []model.Contact {
	window := birthdayWindow(today)

	upcoming := make([]model.Contact, 0)
	for _, c := range contacts {
		if c.Birthday.IsZero() {
			continue
		}

		if _, ok := window[monthDay{c.Birthday.Month(), c.Birthday.Day()}]; ok {
			upcoming = append(upcoming, c)
		}
	}

	return upcoming
}

func birthdayWindow(today time.Time) map[monthDay]struct{} {
	window := make(map[monthDay]struct{}, birthdayWindowDays+1)
	for i := 0; i <= birthdayWindowDays; i++ {
		d := today.AddDate(0, 0, i)
		window[monthDay{d.Month(), d.Day()}] = struct{}{}
	}

	return window
}

package store

import (
	"context"
	"testing"
	"time"

	"goit/contacts-api/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sampleFields() ContactFields {
	return ContactFields{
		Name:     "Jo",
		Surname:  "Bloggs",
		Email:    "jo@x.com",
		Phone:    "+1",
		Birthday: date(2024, time.April, 9),
	}
}

func TestContactStore_CreateGet(t *testing.T) {
	db := newTestDB(t)
	s := NewContactStore(db)
	ctx := context.Background()

	owner := createTestUser(t, db, "owner", "owner@example.com")

	created, err := s.Create(ctx, sampleFields(), owner.ID)
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	got, err := s.Get(ctx, created.ID, owner.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Jo", got.Name)
	assert.Equal(t, owner.ID, got.UserID)
}

func TestContactStore_OwnershipIsolation(t *testing.T) {
	db := newTestDB(t)
	s := NewContactStore(db)
	ctx := context.Background()

	userA := createTestUser(t, db, "a", "a@example.com")
	userB := createTestUser(t, db, "b", "b@example.com")

	// Identical field values for both users, only the owner differs
	contactA, err := s.Create(ctx, sampleFields(), userA.ID)
	require.NoError(t, err)
	contactB, err := s.Create(ctx, sampleFields(), userB.ID)
	require.NoError(t, err)

	// A can't read, update or delete B's contact
	got, err := s.Get(ctx, contactB.ID, userA.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	updated, err := s.Update(ctx, contactB.ID, userA.ID, ContactFields{Name: "Hacked", Surname: "X"})
	require.NoError(t, err)
	assert.Nil(t, updated)

	deleted, err := s.Delete(ctx, contactB.ID, userA.ID)
	require.NoError(t, err)
	assert.Nil(t, deleted)

	// B's contact is untouched
	got, err = s.Get(ctx, contactB.ID, userB.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Jo", got.Name)

	// And A still sees its own
	got, err = s.Get(ctx, contactA.ID, userA.ID)
	require.NoError(t, err)
	assert.NotNil(t, got)
}

func TestContactStore_Update(t *testing.T) {
	db := newTestDB(t)
	s := NewContactStore(db)
	ctx := context.Background()

	owner := createTestUser(t, db, "owner", "owner@example.com")

	created, err := s.Create(ctx, sampleFields(), owner.ID)
	require.NoError(t, err)

	fields := sampleFields()
	fields.Name = "Joanna"
	fields.Notes = "met at the conference"

	updated, err := s.Update(ctx, created.ID, owner.ID, fields)
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "Joanna", updated.Name)
	assert.Equal(t, "met at the conference", updated.Notes)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, owner.ID, updated.UserID)

	got, err := s.Get(ctx, created.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, "Joanna", got.Name)
}

func TestContactStore_Delete(t *testing.T) {
	db := newTestDB(t)
	s := NewContactStore(db)
	ctx := context.Background()

	owner := createTestUser(t, db, "owner", "owner@example.com")

	created, err := s.Create(ctx, sampleFields(), owner.ID)
	require.NoError(t, err)

	deleted, err := s.Delete(ctx, created.ID, owner.ID)
	require.NoError(t, err)
	require.NotNil(t, deleted)
	assert.Equal(t, created.ID, deleted.ID)

	got, err := s.Get(ctx, created.ID, owner.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestContactStore_ListPagination(t *testing.T) {
	db := newTestDB(t)
	s := NewContactStore(db)
	ctx := context.Background()

	owner := createTestUser(t, db, "owner", "owner@example.com")
	other := createTestUser(t, db, "other", "other@example.com")

	for i := 0; i < 5; i++ {
		_, err := s.Create(ctx, sampleFields(), owner.ID)
		require.NoError(t, err)
	}
	_, err := s.Create(ctx, sampleFields(), other.ID)
	require.NoError(t, err)

	page, err := s.List(ctx, 2, 0, owner.ID)
	require.NoError(t, err)
	assert.Len(t, page, 2)

	rest, err := s.List(ctx, 10, 2, owner.ID)
	require.NoError(t, err)
	assert.Len(t, rest, 3)

	all, err := s.ListAll(ctx, 10, 0)
	require.NoError(t, err)
	assert.Len(t, all, 6)
}

func TestContactStore_Search(t *testing.T) {
	db := newTestDB(t)
	s := NewContactStore(db)
	ctx := context.Background()

	owner := createTestUser(t, db, "owner", "owner@example.com")
	other := createTestUser(t, db, "other", "other@example.com")

	_, err := s.Create(ctx, sampleFields(), owner.ID)
	require.NoError(t, err)

	// Case-insensitive over name, surname and email
	for _, query := range []string{"jo", "Bloggs", "JO@X.COM"} {
		results, err := s.Search(ctx, query, owner.ID)
		require.NoError(t, err)
		assert.Len(t, results, 1, "query %q", query)
	}

	results, err := s.Search(ctx, "nothing", owner.ID)
	require.NoError(t, err)
	assert.Empty(t, results)

	// Another user searching the same term sees nothing
	results, err = s.Search(ctx, "jo", other.ID)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestFilterUpcoming(t *testing.T) {
	contacts := []model.Contact{
		{ID: 1, Name: "in-window", Birthday: date(1990, time.April, 10)},
		{ID: 2, Name: "out-of-window", Birthday: date(1990, time.April, 20)},
		{ID: 3, Name: "today", Birthday: date(1985, time.April, 5)},
		{ID: 4, Name: "no-birthday"},
	}

	today := date(2024, time.April, 5)

	upcoming := filterUpcoming(contacts, today)
	require.Len(t, upcoming, 2)
	assert.Equal(t, uint(1), upcoming[0].ID)
	assert.Equal(t, uint(3), upcoming[1].ID)
}

// The window has to roll over month and year boundaries, which the naive
// independent month/day comparison this replaced got wrong.
func TestFilterUpcoming_YearRollover(t *testing.T) {
	contacts := []model.Contact{
		{ID: 1, Name: "before-newyear", Birthday: date(1990, time.December, 30)},
		{ID: 2, Name: "after-newyear", Birthday: date(1990, time.January, 3)},
		{ID: 3, Name: "too-late", Birthday: date(1990, time.January, 10)},
	}

	today := date(2024, time.December, 28)

	upcoming := filterUpcoming(contacts, today)
	require.Len(t, upcoming, 2)
	assert.Equal(t, uint(1), upcoming[0].ID)
	assert.Equal(t, uint(2), upcoming[1].ID)
}

func TestContactStore_UpcomingBirthdays(t *testing.T) {
	db := newTestDB(t)
	s := NewContactStore(db)
	ctx := context.Background()

	owner := createTestUser(t, db, "owner", "owner@example.com")
	other := createTestUser(t, db, "other", "other@example.com")

	tomorrow := time.Now().AddDate(0, 0, 1)
	farAway := time.Now().AddDate(0, 0, 60)

	soon := sampleFields()
	soon.Birthday = date(1990, tomorrow.Month(), tomorrow.Day())
	_, err := s.Create(ctx, soon, owner.ID)
	require.NoError(t, err)

	later := sampleFields()
	later.Birthday = date(1990, farAway.Month(), farAway.Day())
	_, err = s.Create(ctx, later, owner.ID)
	require.NoError(t, err)

	// Someone else's birthday in the window must not leak in
	_, err = s.Create(ctx, soon, other.ID)
	require.NoError(t, err)

	upcoming, err := s.UpcomingBirthdays(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, upcoming, 1)
	assert.Equal(t, owner.ID, upcoming[0].UserID)
}

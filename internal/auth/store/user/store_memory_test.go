package user

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"registrar/internal/auth/models"
	"registrar/pkg/platform/listing"
	"registrar/pkg/platform/sentinel"
)

// User store invariants (case-insensitive lookup, uniqueness among live
// accounts, soft delete) are checked here so service tests can rely on them.
type InMemoryUserStoreSuite struct {
	suite.Suite
	store *InMemoryUserStore
	ctx   context.Context
}

func TestInMemoryUserStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryUserStoreSuite))
}

func (s *InMemoryUserStoreSuite) SetupTest() {
	s.store = New()
	s.ctx = context.Background()
}

func newUser(username, email string) *models.User {
	return &models.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: "hash",
		FirstName:    "Test",
		LastName:     "User",
		Status:       models.StatusActive,
	}
}

func (s *InMemoryUserStoreSuite) TestLookupIsCaseInsensitive() {
	u := newUser("alice", "alice@example.org")
	s.Require().NoError(s.store.Create(s.ctx, u))

	found, err := s.store.FindByEmail(s.ctx, "ALICE@example.org")
	s.Require().NoError(err)
	s.Equal(u.ID, found.ID)

	found, err = s.store.FindByUsername(s.ctx, "Alice")
	s.Require().NoError(err)
	s.Equal(u.ID, found.ID)

	_, err = s.store.FindByEmail(s.ctx, "bob@example.org")
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *InMemoryUserStoreSuite) TestUniqueness() {
	s.Require().NoError(s.store.Create(s.ctx, newUser("alice", "alice@example.org")))

	s.Run("username taken", func() {
		err := s.store.Create(s.ctx, newUser("ALICE", "other@example.org"))
		s.ErrorIs(err, ErrUsernameTaken)
		s.ErrorIs(err, sentinel.ErrConflict)
	})

	s.Run("email taken", func() {
		err := s.store.Create(s.ctx, newUser("bob", "Alice@Example.org"))
		s.ErrorIs(err, ErrEmailTaken)
	})

	s.Run("update into a taken email", func() {
		bob := newUser("bob", "bob@example.org")
		s.Require().NoError(s.store.Create(s.ctx, bob))
		bob.Email = "alice@example.org"
		s.ErrorIs(s.store.Update(s.ctx, bob), ErrEmailTaken)
	})
}

func (s *InMemoryUserStoreSuite) TestSoftDelete() {
	u := newUser("carol", "carol@example.org")
	s.Require().NoError(s.store.Create(s.ctx, u))
	at := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	s.Require().NoError(s.store.SoftDelete(s.ctx, u.ID, at))

	s.Run("hidden from email lookup", func() {
		_, err := s.store.FindByEmail(s.ctx, "carol@example.org")
		s.ErrorIs(err, sentinel.ErrNotFound)
	})
	s.Run("still found by id and inactive", func() {
		found, err := s.store.FindByID(s.ctx, u.ID)
		s.Require().NoError(err)
		s.True(found.IsDeleted)
		s.False(found.IsActive())
	})
	s.Run("username can be reused", func() {
		s.NoError(s.store.Create(s.ctx, newUser("carol", "carol@example.org")))
	})
	s.Run("second delete is not found", func() {
		s.ErrorIs(s.store.SoftDelete(s.ctx, u.ID, at), sentinel.ErrNotFound)
	})
}

func (s *InMemoryUserStoreSuite) TestTouchLastLogin() {
	u := newUser("dave", "dave@example.org")
	s.Require().NoError(s.store.Create(s.ctx, u))
	at := time.Date(2024, 5, 2, 9, 30, 0, 0, time.UTC)

	s.Require().NoError(s.store.TouchLastLogin(s.ctx, u.ID, at))
	found, err := s.store.FindByID(s.ctx, u.ID)
	s.Require().NoError(err)
	s.Require().NotNil(found.LastLogin)
	s.Equal(at, *found.LastLogin)

	s.ErrorIs(s.store.TouchLastLogin(s.ctx, uuid.New(), at), sentinel.ErrNotFound)
}

func (s *InMemoryUserStoreSuite) TestListFiltersAndPages() {
	role := 3
	for _, name := range []string{"erin", "frank", "grace"} {
		u := newUser(name, name+"@example.org")
		if name != "frank" {
			u.RoleID = &role
		}
		s.Require().NoError(s.store.Create(s.ctx, u))
	}

	users, total, err := s.store.List(s.ctx, models.UserFilter{RoleID: &role}, listing.Page{Page: 1, PageSize: 1})
	s.Require().NoError(err)
	s.Equal(2, total)
	s.Require().Len(users, 1)
	s.Equal("erin", users[0].Username)

	term := "RAN"
	users, total, err = s.store.List(s.ctx, models.UserFilter{Search: &term}, listing.Page{Page: 1, PageSize: 10})
	s.Require().NoError(err)
	s.Equal(1, total)
	s.Equal("frank", users[0].Username)
}

func (s *InMemoryUserStoreSuite) TestReturnsCopies() {
	u := newUser("heidi", "heidi@example.org")
	s.Require().NoError(s.store.Create(s.ctx, u))
	u.Email = "changed@example.org"

	found, err := s.store.FindByID(s.ctx, u.ID)
	s.Require().NoError(err)
	s.Equal("heidi@example.org", found.Email)
}

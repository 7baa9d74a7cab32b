//go:build integration

package user_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"registrar/internal/auth/models"
	"registrar/internal/auth/store/user"
	"registrar/internal/platform/postgres"
	"registrar/pkg/platform/listing"
	"registrar/pkg/platform/sentinel"
	"registrar/pkg/testutil/containers"
)

type PostgresUserStoreSuite struct {
	suite.Suite
	pg    *containers.PostgresContainer
	store *user.PostgresUserStore
	ctx   context.Context
}

func TestPostgresUserStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresUserStoreSuite))
}

func (s *PostgresUserStoreSuite) SetupSuite() {
	s.ctx = context.Background()
	s.pg = containers.GetManager().GetPostgres(s.T())
	_, err := postgres.Migrate(s.ctx, s.pg.DB)
	s.Require().NoError(err)
	s.store = user.NewPostgres(s.pg.DB)
}

func (s *PostgresUserStoreSuite) SetupTest() {
	s.Require().NoError(s.pg.TruncateTables(s.ctx, "users"))
}

func (s *PostgresUserStoreSuite) newUser(username, email string) *models.User {
	return &models.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: "hash",
		FirstName:    "Test",
		LastName:     "User",
		Status:       models.StatusActive,
		CreatedAt:    time.Now().UTC().Truncate(time.Microsecond),
	}
}

func (s *PostgresUserStoreSuite) TestCreateAndFind() {
	u := s.newUser("alice", "alice@example.org")
	s.Require().NoError(s.store.Create(s.ctx, u))

	found, err := s.store.FindByEmail(s.ctx, "ALICE@EXAMPLE.ORG")
	s.Require().NoError(err)
	s.Equal(u.ID, found.ID)
	s.Equal(models.StatusActive, found.Status)

	_, err = s.store.FindByID(s.ctx, uuid.New())
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresUserStoreSuite) TestUniqueAmongLiveAccounts() {
	u := s.newUser("bob", "bob@example.org")
	s.Require().NoError(s.store.Create(s.ctx, u))

	s.ErrorIs(s.store.Create(s.ctx, s.newUser("BOB", "x@example.org")), user.ErrUsernameTaken)
	s.ErrorIs(s.store.Create(s.ctx, s.newUser("bobby", "Bob@example.org")), user.ErrEmailTaken)

	s.Require().NoError(s.store.SoftDelete(s.ctx, u.ID, time.Now()))
	s.NoError(s.store.Create(s.ctx, s.newUser("bob", "bob@example.org")))
}

func (s *PostgresUserStoreSuite) TestUpdateAndList() {
	u := s.newUser("carol", "carol@example.org")
	s.Require().NoError(s.store.Create(s.ctx, u))
	u.FirstName = "Caroline"
	u.UpdatedAt = time.Now().UTC()
	s.Require().NoError(s.store.Update(s.ctx, u))
	s.Require().NoError(s.store.TouchLastLogin(s.ctx, u.ID, time.Now().UTC()))

	term := "caro"
	users, total, err := s.store.List(s.ctx, models.UserFilter{Search: &term}, listing.Page{Page: 1, PageSize: 10})
	s.Require().NoError(err)
	s.Equal(1, total)
	s.Equal("Caroline", users[0].FirstName)
	s.NotNil(users[0].LastLogin)

	ghost := s.newUser("ghost", "ghost@example.org")
	s.ErrorIs(s.store.Update(s.ctx, ghost), sentinel.ErrNotFound)
}

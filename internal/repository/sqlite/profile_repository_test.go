package sqlite_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/tcardoso/deckstudy/internal/repository"
	"github.com/tcardoso/deckstudy/internal/repository/sqlite"
	"github.com/tcardoso/deckstudy/internal/testutil"
)

type ProfileRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.ProfileRepository
}

func (s *ProfileRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewProfileRepository(s.db)
}

func (s *ProfileRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *ProfileRepositorySuite) TestUpsertAndGet() {
	ctx := context.Background()

	profile, err := s.repo.Upsert(ctx, "alice")
	s.Require().NoError(err)
	s.Require().NotNil(profile)
	s.Assert().Equal("alice", profile.Username)
	s.Assert().Greater(profile.ID, int64(0))

	got, err := s.repo.Get(ctx, profile.ID)
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Assert().Equal(profile.ID, got.ID)
	s.Assert().Equal("alice", got.Username)
}

func (s *ProfileRepositorySuite) TestUpsert_Idempotent() {
	ctx := context.Background()

	first, err := s.repo.Upsert(ctx, "alice")
	s.Require().NoError(err)

	second, err := s.repo.Upsert(ctx, "alice")
	s.Require().NoError(err)
	s.Assert().Equal(first.ID, second.ID, "upserting an existing username returns the same profile")

	profiles, err := s.repo.List(ctx)
	s.Require().NoError(err)
	s.Assert().Len(profiles, 1)
}

func (s *ProfileRepositorySuite) TestGet_NotFound() {
	profile, err := s.repo.Get(context.Background(), 9999)
	s.Require().NoError(err)
	s.Assert().Nil(profile)
}

func (s *ProfileRepositorySuite) TestList_OrderedByUsername() {
	ctx := context.Background()

	for _, name := range []string{"charlie", "alice", "bob"} {
		_, err := s.repo.Upsert(ctx, name)
		s.Require().NoError(err)
	}

	profiles, err := s.repo.List(ctx)
	s.Require().NoError(err)
	s.Require().Len(profiles, 3)
	s.Assert().Equal("alice", profiles[0].Username)
	s.Assert().Equal("bob", profiles[1].Username)
	s.Assert().Equal("charlie", profiles[2].Username)
}

func (s *ProfileRepositorySuite) TestDelete_CascadesToDecks() {
	ctx := context.Background()

	profile, err := s.repo.Upsert(ctx, "alice")
	s.Require().NoError(err)

	_, err = s.db.ExecContext(ctx, `INSERT INTO decks (profile_id, name) VALUES (?, ?)`, profile.ID, "Capitals")
	s.Require().NoError(err)

	err = s.repo.Delete(ctx, profile.ID)
	s.Require().NoError(err)

	got, err := s.repo.Get(ctx, profile.ID)
	s.Require().NoError(err)
	s.Assert().Nil(got)

	var deckCount int
	err = s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM decks WHERE profile_id = ?`, profile.ID).Scan(&deckCount)
	s.Require().NoError(err)
	s.Assert().Equal(0, deckCount)
}

func TestProfileRepositorySuite(t *testing.T) {
	suite.Run(t, new(ProfileRepositorySuite))
}

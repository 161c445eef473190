//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/L968/trecco-api/internal/board/models"
	id "github.com/L968/trecco-api/pkg/domain"
	"github.com/L968/trecco-api/pkg/platform/sentinel"
	"github.com/L968/trecco-api/pkg/testutil/containers"
)

type PostgresBoardStoreSuite struct {
	suite.Suite
	pg    *containers.PostgresContainer
	store *Store
	ctx   context.Context
}

func TestPostgresBoardStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresBoardStoreSuite))
}

func (s *PostgresBoardStoreSuite) SetupSuite() {
	s.ctx = context.Background()
	s.pg = containers.NewPostgresContainer(s.T())
	s.store = New(s.pg.Pool)
	s.Require().NoError(s.store.EnsureSchema(s.ctx))
}

func (s *PostgresBoardStoreSuite) SetupTest() {
	s.Require().NoError(s.pg.TruncateAll(s.ctx, "boards"))
}

func (s *PostgresBoardStoreSuite) newBoard(name string, ownerID id.UserID) *models.Board {
	board, err := models.NewBoard(name, ownerID, time.Now().UTC())
	s.Require().NoError(err)
	return board
}

func (s *PostgresBoardStoreSuite) TestInsertAndGetByID() {
	board := s.newBoard("Sprint", id.NewUserID())
	_, err := board.AddList("Todo", time.Now().UTC())
	s.Require().NoError(err)
	board.PullEvents()

	s.Require().NoError(s.store.Insert(s.ctx, board))

	found, err := s.store.GetByID(s.ctx, board.ID)
	s.Require().NoError(err)
	s.Equal(board.ID, found.ID)
	s.Equal("Sprint", found.Name)
	s.Equal(board.OwnerID, found.OwnerID)
	s.Require().Len(found.Lists, 1)
	s.Equal("Todo", found.Lists[0].Name)
}

func (s *PostgresBoardStoreSuite) TestGetByIDUnknown() {
	_, err := s.store.GetByID(s.ctx, id.NewBoardID())
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresBoardStoreSuite) TestInsertDuplicateConflicts() {
	board := s.newBoard("Sprint", id.NewUserID())
	s.Require().NoError(s.store.Insert(s.ctx, board))
	s.Require().ErrorIs(s.store.Insert(s.ctx, board), sentinel.ErrConflict)
}

func (s *PostgresBoardStoreSuite) TestUpdateReplacesDocument() {
	board := s.newBoard("Sprint", id.NewUserID())
	s.Require().NoError(s.store.Insert(s.ctx, board))

	s.Require().NoError(board.UpdateName("Sprint 2", time.Now().UTC()))
	list, err := board.AddList("Doing", time.Now().UTC())
	s.Require().NoError(err)
	_, err = board.AddCard(list.ID, "write docs", "", time.Now().UTC())
	s.Require().NoError(err)
	board.PullEvents()

	s.Require().NoError(s.store.Update(s.ctx, board))

	found, err := s.store.GetByID(s.ctx, board.ID)
	s.Require().NoError(err)
	s.Equal("Sprint 2", found.Name)
	s.Require().Len(found.Lists, 1)
	s.Require().Len(found.Lists[0].Cards, 1)
	s.Equal("write docs", found.Lists[0].Cards[0].Title)
}

func (s *PostgresBoardStoreSuite) TestUpdateUnknownBoard() {
	board := s.newBoard("Sprint", id.NewUserID())
	s.Require().ErrorIs(s.store.Update(s.ctx, board), sentinel.ErrNotFound)
}

func (s *PostgresBoardStoreSuite) TestGetByUserCoversOwnerAndMembers() {
	owner := id.NewUserID()
	member := id.NewUserID()
	stranger := id.NewUserID()

	board := s.newBoard("Sprint", owner)
	board.AddMember(member, time.Now().UTC())
	board.PullEvents()
	s.Require().NoError(s.store.Insert(s.ctx, board))
	s.Require().NoError(s.store.Insert(s.ctx, s.newBoard("Other", id.NewUserID())))

	forOwner, err := s.store.GetByUser(s.ctx, owner)
	s.Require().NoError(err)
	s.Len(forOwner, 1)

	forMember, err := s.store.GetByUser(s.ctx, member)
	s.Require().NoError(err)
	s.Len(forMember, 1)

	forStranger, err := s.store.GetByUser(s.ctx, stranger)
	s.Require().NoError(err)
	s.Empty(forStranger)
}

func (s *PostgresBoardStoreSuite) TestMembershipSurvivesUpdate() {
	owner := id.NewUserID()
	member := id.NewUserID()

	board := s.newBoard("Sprint", owner)
	s.Require().NoError(s.store.Insert(s.ctx, board))

	board.AddMember(member, time.Now().UTC())
	board.PullEvents()
	s.Require().NoError(s.store.Update(s.ctx, board))

	forMember, err := s.store.GetByUser(s.ctx, member)
	s.Require().NoError(err)
	s.Len(forMember, 1)

	board.RemoveMember(member, time.Now().UTC())
	board.PullEvents()
	s.Require().NoError(s.store.Update(s.ctx, board))

	forMember, err = s.store.GetByUser(s.ctx, member)
	s.Require().NoError(err)
	s.Empty(forMember)
}

func (s *PostgresBoardStoreSuite) TestDelete() {
	board := s.newBoard("Sprint", id.NewUserID())
	s.Require().NoError(s.store.Insert(s.ctx, board))

	s.Require().NoError(s.store.Delete(s.ctx, board.ID))
	_, err := s.store.GetByID(s.ctx, board.ID)
	s.Require().ErrorIs(err, sentinel.ErrNotFound)

	s.Require().ErrorIs(s.store.Delete(s.ctx, board.ID), sentinel.ErrNotFound)
}

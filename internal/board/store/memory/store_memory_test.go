package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/L968/trecco-api/internal/board/models"
	id "github.com/L968/trecco-api/pkg/domain"
	"github.com/L968/trecco-api/pkg/platform/sentinel"
)

type BoardStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
}

func (s *BoardStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
}

func TestBoardStoreSuite(t *testing.T) {
	suite.Run(t, new(BoardStoreSuite))
}

func (s *BoardStoreSuite) newBoard(name string, ownerID id.UserID) *models.Board {
	board, err := models.NewBoard(name, ownerID, time.Now())
	s.Require().NoError(err)
	return board
}

func (s *BoardStoreSuite) TestInsertAndGetByID() {
	board := s.newBoard("Sprint", id.NewUserID())
	s.Require().NoError(s.store.Insert(s.ctx, board))

	found, err := s.store.GetByID(s.ctx, board.ID)
	s.Require().NoError(err)
	s.Equal(board.Name, found.Name)
	s.Equal(board.OwnerID, found.OwnerID)
}

func (s *BoardStoreSuite) TestGetByIDUnknown() {
	_, err := s.store.GetByID(s.ctx, id.NewBoardID())
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *BoardStoreSuite) TestInsertDuplicateConflicts() {
	board := s.newBoard("Sprint", id.NewUserID())
	s.Require().NoError(s.store.Insert(s.ctx, board))
	s.Require().ErrorIs(s.store.Insert(s.ctx, board), sentinel.ErrConflict)
}

func (s *BoardStoreSuite) TestSnapshotsDoNotAlias() {
	board := s.newBoard("Sprint", id.NewUserID())
	_, err := board.AddList("Todo", time.Now())
	s.Require().NoError(err)
	s.Require().NoError(s.store.Insert(s.ctx, board))

	snapshot, err := s.store.GetByID(s.ctx, board.ID)
	s.Require().NoError(err)
	snapshot.Lists[0].Name = "mutated"

	fresh, err := s.store.GetByID(s.ctx, board.ID)
	s.Require().NoError(err)
	s.Equal("Todo", fresh.Lists[0].Name)
}

func (s *BoardStoreSuite) TestUpdateReplacesDocument() {
	board := s.newBoard("Sprint", id.NewUserID())
	s.Require().NoError(s.store.Insert(s.ctx, board))

	s.Require().NoError(board.UpdateName("Sprint 2", time.Now()))
	s.Require().NoError(s.store.Update(s.ctx, board))

	found, err := s.store.GetByID(s.ctx, board.ID)
	s.Require().NoError(err)
	s.Equal("Sprint 2", found.Name)
}

func (s *BoardStoreSuite) TestUpdateUnknownBoard() {
	board := s.newBoard("Sprint", id.NewUserID())
	s.Require().ErrorIs(s.store.Update(s.ctx, board), sentinel.ErrNotFound)
}

func (s *BoardStoreSuite) TestGetByUserCoversOwnerAndMembers() {
	owner := id.NewUserID()
	member := id.NewUserID()
	stranger := id.NewUserID()

	board := s.newBoard("Sprint", owner)
	board.AddMember(member, time.Now())
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

func (s *BoardStoreSuite) TestDelete() {
	board := s.newBoard("Sprint", id.NewUserID())
	s.Require().NoError(s.store.Insert(s.ctx, board))

	s.Require().NoError(s.store.Delete(s.ctx, board.ID))
	_, err := s.store.GetByID(s.ctx, board.ID)
	s.Require().ErrorIs(err, sentinel.ErrNotFound)

	s.Require().ErrorIs(s.store.Delete(s.ctx, board.ID), sentinel.ErrNotFound)
}

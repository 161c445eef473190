package handler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/L968/trecco-api/internal/actionlog/models"
	"github.com/L968/trecco-api/internal/actionlog/service"
	"github.com/L968/trecco-api/internal/actionlog/store/memory"
	boardmodels "github.com/L968/trecco-api/internal/board/models"
	boardmemory "github.com/L968/trecco-api/internal/board/store/memory"
	id "github.com/L968/trecco-api/pkg/domain"
	"github.com/L968/trecco-api/pkg/testutil"
)

type fixture struct {
	router  chi.Router
	logs    *memory.InMemory
	boardID id.BoardID
	owner   id.UserID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log := slog.New(slog.DiscardHandler)

	owner := id.NewUserID()
	board, err := boardmodels.NewBoard("Sprint", owner, time.Now())
	require.NoError(t, err)

	boards := boardmemory.NewInMemory()
	require.NoError(t, boards.Insert(context.Background(), board))

	logs := memory.NewInMemory()
	svc := service.New(logs, boards)

	router := chi.NewRouter()
	New(svc, log).Register(router)

	return &fixture{router: router, logs: logs, boardID: board.ID, owner: owner}
}

func (f *fixture) insert(t *testing.T, details string, at time.Time) {
	t.Helper()
	entry := models.New(f.boardID, f.owner, details, at)
	require.NoError(t, f.logs.Insert(context.Background(), entry))
}

func TestGetLogs(t *testing.T) {
	f := newFixture(t)
	base := time.Now()
	for i := 0; i < 3; i++ {
		f.insert(t, fmt.Sprintf("entry %d", i), base.Add(time.Duration(i)*time.Minute))
	}

	req := testutil.NewRequest(t, http.MethodGet, "/boards/"+f.boardID.String()+"/logs")
	rr := testutil.DoRequest(f.router, testutil.WithUserID(req, f.owner))
	testutil.AssertStatus(t, rr, http.StatusOK)

	page := testutil.UnmarshalResponse[service.Page](t, rr)
	assert.Equal(t, 3, page.Total)
	require.Len(t, page.Entries, 3)
	assert.Equal(t, "entry 2", page.Entries[0].Details)
}

func TestGetLogsPagingAndSearch(t *testing.T) {
	f := newFixture(t)
	base := time.Now()
	f.insert(t, `created card "Write Docs"`, base)
	f.insert(t, `created list "Todo"`, base.Add(time.Minute))

	req := testutil.NewRequest(t, http.MethodGet,
		"/boards/"+f.boardID.String()+"/logs?page=1&page_size=1&search=write")
	rr := testutil.DoRequest(f.router, testutil.WithUserID(req, f.owner))
	testutil.AssertStatus(t, rr, http.StatusOK)

	page := testutil.UnmarshalResponse[service.Page](t, rr)
	assert.Equal(t, 1, page.Total)
	assert.Equal(t, 1, page.PageSize)
	require.Len(t, page.Entries, 1)
	assert.Contains(t, page.Entries[0].Details, "Write Docs")
}

func TestGetLogsForbiddenForStranger(t *testing.T) {
	f := newFixture(t)

	req := testutil.NewRequest(t, http.MethodGet, "/boards/"+f.boardID.String()+"/logs")
	rr := testutil.DoRequest(f.router, testutil.WithUserID(req, id.NewUserID()))
	testutil.AssertStatusAndError(t, rr, http.StatusForbidden, "Board.NotAuthorized")
}

func TestGetLogsUnknownBoard(t *testing.T) {
	f := newFixture(t)

	req := testutil.NewRequest(t, http.MethodGet, "/boards/"+id.NewBoardID().String()+"/logs")
	rr := testutil.DoRequest(f.router, testutil.WithUserID(req, f.owner))
	testutil.AssertStatusAndError(t, rr, http.StatusNotFound, "Board.NotFound")
}

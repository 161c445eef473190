package handler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/L968/trecco-api/internal/board/models"
	"github.com/L968/trecco-api/internal/board/service"
	"github.com/L968/trecco-api/internal/board/store/memory"
	"github.com/L968/trecco-api/internal/events"
	"github.com/L968/trecco-api/internal/notify"
	id "github.com/L968/trecco-api/pkg/domain"
	"github.com/L968/trecco-api/pkg/testutil"
)

type fixture struct {
	router   chi.Router
	svc      *service.Service
	hub      *notify.Hub
	notifier *notify.LocalNotifier
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log := slog.New(slog.DiscardHandler)

	hub := notify.NewHub(log)
	notifier := notify.NewLocalNotifier(hub)
	dispatcher := events.NewDispatcher(log, notify.NewCardMovedBroadcaster(notifier, log))

	svc := service.New(memory.NewInMemory(), service.WithDispatcher(dispatcher))

	router := chi.NewRouter()
	New(svc, hub, log).Register(router)

	return &fixture{router: router, svc: svc, hub: hub, notifier: notifier}
}

func (f *fixture) do(t *testing.T, userID id.UserID, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != nil {
		req = testutil.NewJSONRequest(t, method, path, body)
	} else {
		req = testutil.NewRequest(t, method, path)
	}
	return testutil.DoRequest(f.router, testutil.WithUserID(req, userID))
}

func (f *fixture) createBoard(t *testing.T, userID id.UserID, name string) *models.Board {
	t.Helper()
	rr := f.do(t, userID, http.MethodPost, "/boards", createBoardRequest{Name: name})
	testutil.AssertStatus(t, rr, http.StatusCreated)
	return testutil.UnmarshalResponse[models.Board](t, rr)
}

func (f *fixture) createList(t *testing.T, userID id.UserID, boardID id.BoardID, name string) *models.List {
	t.Helper()
	rr := f.do(t, userID, http.MethodPost, fmt.Sprintf("/boards/%s/lists", boardID), createListRequest{Name: name})
	testutil.AssertStatus(t, rr, http.StatusCreated)
	return testutil.UnmarshalResponse[models.List](t, rr)
}

func (f *fixture) createCard(t *testing.T, userID id.UserID, boardID id.BoardID, listID id.ListID, title string) *models.Card {
	t.Helper()
	rr := f.do(t, userID, http.MethodPost,
		fmt.Sprintf("/boards/%s/lists/%s/cards", boardID, listID),
		createCardRequest{Title: title})
	testutil.AssertStatus(t, rr, http.StatusCreated)
	return testutil.UnmarshalResponse[models.Card](t, rr)
}

func TestCreateAndGetBoard(t *testing.T) {
	f := newFixture(t)
	owner := id.NewUserID()

	board := f.createBoard(t, owner, "Sprint")
	assert.Equal(t, "Sprint", board.Name)
	assert.Equal(t, owner, board.OwnerID)

	rr := f.do(t, owner, http.MethodGet, "/boards/"+board.ID.String(), nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	fetched := testutil.UnmarshalResponse[models.Board](t, rr)
	assert.Equal(t, board.ID, fetched.ID)
}

func TestCreateBoardEmptyName(t *testing.T) {
	f := newFixture(t)

	rr := f.do(t, id.NewUserID(), http.MethodPost, "/boards", createBoardRequest{Name: " "})
	testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, "Board.NameRequired")
}

func TestGetBoardInvalidID(t *testing.T) {
	f := newFixture(t)

	rr := f.do(t, id.NewUserID(), http.MethodGet, "/boards/not-a-uuid", nil)
	testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, "Validation")
}

func TestGetBoardUnknown(t *testing.T) {
	f := newFixture(t)

	rr := f.do(t, id.NewUserID(), http.MethodGet, "/boards/"+id.NewBoardID().String(), nil)
	testutil.AssertStatusAndError(t, rr, http.StatusNotFound, "Board.NotFound")
}

func TestGetBoardForbiddenForStranger(t *testing.T) {
	f := newFixture(t)
	board := f.createBoard(t, id.NewUserID(), "Sprint")

	rr := f.do(t, id.NewUserID(), http.MethodGet, "/boards/"+board.ID.String(), nil)
	testutil.AssertStatusAndError(t, rr, http.StatusForbidden, "Board.NotAuthorized")
}

func TestMemberLifecycle(t *testing.T) {
	f := newFixture(t)
	owner := id.NewUserID()
	member := id.NewUserID()
	board := f.createBoard(t, owner, "Sprint")

	rr := f.do(t, owner, http.MethodPost, "/boards/"+board.ID.String()+"/members",
		addMemberRequest{UserID: member.String()})
	testutil.AssertStatus(t, rr, http.StatusNoContent)

	rr = f.do(t, owner, http.MethodPost, "/boards/"+board.ID.String()+"/members",
		addMemberRequest{UserID: member.String()})
	testutil.AssertStatusAndError(t, rr, http.StatusConflict, "Board.AlreadyMember")

	rr = f.do(t, member, http.MethodGet, "/boards/"+board.ID.String(), nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	rr = f.do(t, owner, http.MethodDelete,
		fmt.Sprintf("/boards/%s/members/%s", board.ID, owner), nil)
	testutil.AssertStatusAndError(t, rr, http.StatusForbidden, "Board.CannotRemoveOwner")

	rr = f.do(t, owner, http.MethodDelete,
		fmt.Sprintf("/boards/%s/members/%s", board.ID, member), nil)
	testutil.AssertStatus(t, rr, http.StatusNoContent)

	rr = f.do(t, member, http.MethodGet, "/boards/"+board.ID.String(), nil)
	testutil.AssertStatusAndError(t, rr, http.StatusForbidden, "Board.NotAuthorized")
}

func TestMoveCardFlow(t *testing.T) {
	f := newFixture(t)
	owner := id.NewUserID()
	board := f.createBoard(t, owner, "Sprint")
	todo := f.createList(t, owner, board.ID, "Todo")
	done := f.createList(t, owner, board.ID, "Done")
	cardA := f.createCard(t, owner, board.ID, todo.ID, "A")
	cardB := f.createCard(t, owner, board.ID, todo.ID, "B")

	rr := f.do(t, owner, http.MethodPost,
		fmt.Sprintf("/boards/%s/cards/%s/move", board.ID, cardA.ID),
		moveCardRequest{TargetListID: done.ID.String(), TargetPosition: 5})
	testutil.AssertStatus(t, rr, http.StatusNoContent)

	rr = f.do(t, owner, http.MethodGet, "/boards/"+board.ID.String(), nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	fetched := testutil.UnmarshalResponse[models.Board](t, rr)

	todoList := fetched.ListByID(todo.ID)
	require.Len(t, todoList.Cards, 1)
	assert.Equal(t, cardB.ID, todoList.Cards[0].ID)
	assert.Equal(t, 0, todoList.Cards[0].Position)

	doneList := fetched.ListByID(done.ID)
	require.Len(t, doneList.Cards, 1)
	assert.Equal(t, cardA.ID, doneList.Cards[0].ID)
	assert.Equal(t, 0, doneList.Cards[0].Position)
}

func TestMoveCardNegativePosition(t *testing.T) {
	f := newFixture(t)
	owner := id.NewUserID()
	board := f.createBoard(t, owner, "Sprint")
	todo := f.createList(t, owner, board.ID, "Todo")
	card := f.createCard(t, owner, board.ID, todo.ID, "A")

	rr := f.do(t, owner, http.MethodPost,
		fmt.Sprintf("/boards/%s/cards/%s/move", board.ID, card.ID),
		moveCardRequest{TargetListID: todo.ID.String(), TargetPosition: -1})
	testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, "Card.NegativePosition")
}

func TestDeleteBoard(t *testing.T) {
	f := newFixture(t)
	owner := id.NewUserID()
	board := f.createBoard(t, owner, "Sprint")

	rr := f.do(t, owner, http.MethodDelete, "/boards/"+board.ID.String(), nil)
	testutil.AssertStatus(t, rr, http.StatusNoContent)

	rr = f.do(t, owner, http.MethodGet, "/boards/"+board.ID.String(), nil)
	testutil.AssertStatusAndError(t, rr, http.StatusNotFound, "Board.NotFound")
}

// syncRecorder guards the recorder so the test can read the body while the
// stream handler is still writing.
type syncRecorder struct {
	mu sync.Mutex
	rr *httptest.ResponseRecorder
}

func (r *syncRecorder) Header() http.Header {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rr.Header()
}

func (r *syncRecorder) Write(b []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rr.Write(b)
}

func (r *syncRecorder) WriteHeader(code int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rr.WriteHeader(code)
}

func (r *syncRecorder) Flush() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rr.Flush()
}

func (r *syncRecorder) body() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rr.Body.String()
}

func TestEventStreamReceivesCardMoves(t *testing.T) {
	f := newFixture(t)
	owner := id.NewUserID()
	board := f.createBoard(t, owner, "Sprint")
	todo := f.createList(t, owner, board.ID, "Todo")
	done := f.createList(t, owner, board.ID, "Done")
	card := f.createCard(t, owner, board.ID, todo.ID, "A")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	req := testutil.NewRequest(t, http.MethodGet, "/boards/"+board.ID.String()+"/events")
	req = testutil.WithUserID(req.WithContext(ctx), owner)

	rec := &syncRecorder{rr: httptest.NewRecorder()}
	streamDone := make(chan struct{})
	go func() {
		f.router.ServeHTTP(rec, req)
		close(streamDone)
	}()

	require.Eventually(t, func() bool {
		return f.hub.SubscriberCount(board.ID) == 1
	}, time.Second, 10*time.Millisecond)

	rrMove := f.do(t, owner, http.MethodPost,
		fmt.Sprintf("/boards/%s/cards/%s/move", board.ID, card.ID),
		moveCardRequest{TargetListID: done.ID.String(), TargetPosition: 0})
	testutil.AssertStatus(t, rrMove, http.StatusNoContent)

	require.Eventually(t, func() bool {
		return strings.Contains(rec.body(), "CardMoved")
	}, time.Second, 10*time.Millisecond)

	cancel()
	<-streamDone

	body := rec.body()
	assert.Contains(t, body, "data: ")
	assert.Contains(t, body, done.ID.String())
}

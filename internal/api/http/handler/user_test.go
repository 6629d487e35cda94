package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	httpctx "github.com/dkarpov/account-service/internal/api/http/context"
	"github.com/dkarpov/account-service/internal/model"
	"github.com/dkarpov/account-service/internal/testutil"
)

func newUserHandler(svc *mockUserService) (*User, *httpctx.Manager) {
	ctxMgr := httpctx.NewManager()
	return NewUser(svc, ctxMgr, testutil.MakeNoopLogger()), ctxMgr
}

func withIdentity(ctxMgr *httpctx.Manager, req *http.Request, userID uuid.UUID) *http.Request {
	ctx := ctxMgr.SetIdentityToContext(req.Context(), model.Identity{UserID: userID, Email: "me@x.com"})
	return req.WithContext(ctx)
}

func TestUser_GetProfile(t *testing.T) {
	t.Parallel()

	t.Run("returns caller's account", func(t *testing.T) {
		t.Parallel()

		svc := new(mockUserService)
		h, ctxMgr := newUserHandler(svc)

		user := model.User{ID: uuid.New(), Name: "dima", Email: "me@x.com", Extra: map[string]any{"nickname": "ace"}}
		svc.On("Get", mock.Anything, user.ID).Return(user, nil)

		req := withIdentity(ctxMgr, httptest.NewRequest(http.MethodGet, "/profile", nil), user.ID)
		rec := httptest.NewRecorder()

		h.GetProfile(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, "me@x.com", body["email"])
		assert.Equal(t, "ace", body["nickname"])
	})

	t.Run("missing identity", func(t *testing.T) {
		t.Parallel()

		svc := new(mockUserService)
		h, _ := newUserHandler(svc)

		rec := httptest.NewRecorder()
		h.GetProfile(rec, httptest.NewRequest(http.MethodGet, "/profile", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Unauthorized", decodeBody(t, rec)["message"])
		svc.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	})

	t.Run("account gone", func(t *testing.T) {
		t.Parallel()

		svc := new(mockUserService)
		h, ctxMgr := newUserHandler(svc)

		id := uuid.New()
		svc.On("Get", mock.Anything, id).Return(model.User{}, model.ErrNotFound)

		req := withIdentity(ctxMgr, httptest.NewRequest(http.MethodGet, "/profile", nil), id)
		rec := httptest.NewRecorder()

		h.GetProfile(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "User not found", decodeBody(t, rec)["message"])
	})
}

func TestUser_UpdateProfile(t *testing.T) {
	t.Parallel()

	t.Run("partial update with extra fields", func(t *testing.T) {
		t.Parallel()

		svc := new(mockUserService)
		h, ctxMgr := newUserHandler(svc)

		id := uuid.New()
		svc.On("Update", mock.Anything, id, mock.MatchedBy(func(p model.UpdateUserParams) bool {
			return p.Age != nil && *p.Age == 31 &&
				p.Name == nil && p.Email == nil && p.Password == nil &&
				p.Extra["nickname"] == "ace"
		})).Return(model.User{ID: id, Age: 31, Extra: map[string]any{"nickname": "ace"}}, nil)

		req := withIdentity(ctxMgr, httptest.NewRequest(http.MethodPut, "/profile",
			strings.NewReader(`{"age":31,"nickname":"ace"}`)), id)
		rec := httptest.NewRecorder()

		h.UpdateProfile(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, float64(31), body["age"])
		assert.Equal(t, "ace", body["nickname"])
		svc.AssertExpectations(t)
	})

	t.Run("immutable keys ignored", func(t *testing.T) {
		t.Parallel()

		svc := new(mockUserService)
		h, ctxMgr := newUserHandler(svc)

		id := uuid.New()
		svc.On("Update", mock.Anything, id, mock.MatchedBy(func(p model.UpdateUserParams) bool {
			return p.Name != nil && *p.Name == "dima" &&
				p.Extra == nil
		})).Return(model.User{ID: id, Name: "dima"}, nil)

		req := withIdentity(ctxMgr, httptest.NewRequest(http.MethodPut, "/profile",
			strings.NewReader(`{"name":"dima","id":"overridden","createdAt":"x","updatedAt":"y"}`)), id)
		rec := httptest.NewRecorder()

		h.UpdateProfile(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("malformed body", func(t *testing.T) {
		t.Parallel()

		svc := new(mockUserService)
		h, ctxMgr := newUserHandler(svc)

		req := withIdentity(ctxMgr, httptest.NewRequest(http.MethodPut, "/profile",
			strings.NewReader(`{"age":"not a number"}`)), uuid.New())
		rec := httptest.NewRecorder()

		h.UpdateProfile(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "invalid request body", decodeBody(t, rec)["message"])
		svc.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing identity", func(t *testing.T) {
		t.Parallel()

		svc := new(mockUserService)
		h, _ := newUserHandler(svc)

		rec := httptest.NewRecorder()
		h.UpdateProfile(rec, httptest.NewRequest(http.MethodPut, "/profile", strings.NewReader(`{}`)))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestUser_DeleteProfile(t *testing.T) {
	t.Parallel()

	svc := new(mockUserService)
	h, ctxMgr := newUserHandler(svc)

	user := model.User{ID: uuid.New(), Email: "me@x.com"}
	svc.On("Delete", mock.Anything, user.ID).Return(user, nil)

	req := withIdentity(ctxMgr, httptest.NewRequest(http.MethodDelete, "/profile", nil), user.ID)
	rec := httptest.NewRecorder()

	h.DeleteProfile(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "me@x.com", decodeBody(t, rec)["email"])
}

func TestUser_List(t *testing.T) {
	t.Parallel()

	svc := new(mockUserService)
	h, _ := newUserHandler(svc)

	svc.On("List", mock.Anything).Return([]model.User{
		{ID: uuid.New(), Email: "a@x.com"},
		{ID: uuid.New(), Email: "b@x.com"},
	}, nil)

	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/users", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 2)
	assert.Equal(t, "a@x.com", body[0]["email"])
	assert.Equal(t, "b@x.com", body[1]["email"])
}

// byIDRouter mounts the path-ID handlers the way the real router does so
// chi.URLParam resolves in tests.
func byIDRouter(h *User) http.Handler {
	mux := chi.NewRouter()
	mux.Get("/users/{id}", h.GetByID)
	mux.Put("/users/{id}", h.UpdateByID)
	mux.Delete("/users/{id}", h.DeleteByID)
	return mux
}

func TestUser_GetByID(t *testing.T) {
	t.Parallel()

	t.Run("found", func(t *testing.T) {
		t.Parallel()

		svc := new(mockUserService)
		h, _ := newUserHandler(svc)

		user := model.User{ID: uuid.New(), Email: "a@x.com"}
		svc.On("Get", mock.Anything, user.ID).Return(user, nil)

		rec := httptest.NewRecorder()
		byIDRouter(h).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/"+user.ID.String(), nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "a@x.com", decodeBody(t, rec)["email"])
	})

	t.Run("unparseable id", func(t *testing.T) {
		t.Parallel()

		svc := new(mockUserService)
		h, _ := newUserHandler(svc)

		rec := httptest.NewRecorder()
		byIDRouter(h).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/not-a-uuid", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "User not found", decodeBody(t, rec)["message"])
		svc.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	})

	t.Run("unknown id", func(t *testing.T) {
		t.Parallel()

		svc := new(mockUserService)
		h, _ := newUserHandler(svc)

		id := uuid.New()
		svc.On("Get", mock.Anything, id).Return(model.User{}, model.ErrNotFound)

		rec := httptest.NewRecorder()
		byIDRouter(h).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/"+id.String(), nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "User not found", decodeBody(t, rec)["message"])
	})
}

func TestUser_UpdateByID(t *testing.T) {
	t.Parallel()

	svc := new(mockUserService)
	h, _ := newUserHandler(svc)

	id := uuid.New()
	svc.On("Update", mock.Anything, id, mock.MatchedBy(func(p model.UpdateUserParams) bool {
		return p.Email != nil && *p.Email == "new@x.com"
	})).Return(model.User{ID: id, Email: "new@x.com"}, nil)

	rec := httptest.NewRecorder()
	byIDRouter(h).ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/users/"+id.String(),
		strings.NewReader(`{"email":"new@x.com"}`)))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "new@x.com", decodeBody(t, rec)["email"])
}

func TestUser_DeleteByID(t *testing.T) {
	t.Parallel()

	t.Run("deleted", func(t *testing.T) {
		t.Parallel()

		svc := new(mockUserService)
		h, _ := newUserHandler(svc)

		user := model.User{ID: uuid.New(), Email: "gone@x.com"}
		svc.On("Delete", mock.Anything, user.ID).Return(user, nil)

		rec := httptest.NewRecorder()
		byIDRouter(h).ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/users/"+user.ID.String(), nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "gone@x.com", decodeBody(t, rec)["email"])
	})

	t.Run("store failure collapses to 500", func(t *testing.T) {
		t.Parallel()

		svc := new(mockUserService)
		h, _ := newUserHandler(svc)

		id := uuid.New()
		svc.On("Delete", mock.Anything, id).Return(model.User{}, errors.New("connection reset"))

		rec := httptest.NewRecorder()
		byIDRouter(h).ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/users/"+id.String(), nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "Something Went wrong", decodeBody(t, rec)["message"])
	})
}

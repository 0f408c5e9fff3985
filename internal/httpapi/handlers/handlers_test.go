package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/todonaut/todonaut/internal/httpapi/server"
	"github.com/todonaut/todonaut/pkg/clients"
	"github.com/todonaut/todonaut/pkg/clients/mocks"
	"github.com/todonaut/todonaut/pkg/config"
	"github.com/todonaut/todonaut/pkg/session"
	"github.com/todonaut/todonaut/pkg/store"
	"github.com/todonaut/todonaut/pkg/types"
)

func newTestRouter(t *testing.T, upstream clients.Service) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.AppConfig{
		App: config.App{Name: "todonaut", Environment: "test"},
	}
	dataStore := store.New(store.NewFileBackend(t.TempDir()), upstream)
	return server.NewAPIServer(cfg, dataStore, upstream).Router()
}

func perform(router *gin.Engine, method, path, body, token string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Cookie", session.CookieName+"="+token)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeTodo(t *testing.T, body []byte) types.Todo {
	t.Helper()
	todo := types.Todo{}
	require.NoError(t, json.Unmarshal(body, &todo))
	return todo
}

func TestTodosEndpoints_RequireSessionCookie(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// no upstream call may happen for cookie-less requests
	router := newTestRouter(t, mocks.NewMockService(ctrl))

	requests := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/todos"},
		{http.MethodPost, "/todos"},
		{http.MethodGet, "/todos/1"},
		{http.MethodPut, "/todos/1"},
		{http.MethodDelete, "/todos/1"},
		{http.MethodGet, "/auth/me"},
	}

	for _, tt := range requests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := perform(router, tt.method, tt.path, "", "")
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestTodosEndpoints_RejectedTokenIs401(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	upstream := mocks.NewMockService(ctrl)
	upstream.EXPECT().Me(gomock.Any(), "expired").
		Return(nil, assert.AnError).AnyTimes()

	router := newTestRouter(t, upstream)

	rec := perform(router, http.MethodGet, "/todos", "", "expired")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogin(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		setupMock  func(m *mocks.MockService)
		wantStatus int
		wantBody   string
		wantCookie bool
	}{
		{
			name:       "missing credentials",
			body:       `{"username":"emilys"}`,
			setupMock:  func(m *mocks.MockService) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "upstream rejection passed through",
			body: `{"username":"emilys","password":"wrong"}`,
			setupMock: func(m *mocks.MockService) {
				m.EXPECT().Login(gomock.Any(), "emilys", "wrong").
					Return("", &clients.APIError{
						StatusCode: http.StatusBadRequest,
						Body:       []byte(`{"message":"Invalid credentials"}`),
					})
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"message":"Invalid credentials"}`,
		},
		{
			name: "token missing from upstream response",
			body: `{"username":"emilys","password":"pass"}`,
			setupMock: func(m *mocks.MockService) {
				m.EXPECT().Login(gomock.Any(), "emilys", "pass").Return("", nil)
			},
			wantStatus: http.StatusInternalServerError,
		},
		{
			name: "success sets session cookie",
			body: `{"username":"emilys","password":"pass"}`,
			setupMock: func(m *mocks.MockService) {
				m.EXPECT().Login(gomock.Any(), "emilys", "pass").Return("tok-1", nil)
			},
			wantStatus: http.StatusOK,
			wantCookie: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			upstream := mocks.NewMockService(ctrl)
			tt.setupMock(upstream)
			router := newTestRouter(t, upstream)

			rec := perform(router, http.MethodPost, "/auth/login", tt.body, "")
			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, rec.Body.String())
			}

			cookies := rec.Result().Cookies()
			if tt.wantCookie {
				require.Len(t, cookies, 1)
				assert.Equal(t, session.CookieName, cookies[0].Name)
				assert.Equal(t, "tok-1", cookies[0].Value)
				assert.True(t, cookies[0].HttpOnly)
			} else {
				assert.Empty(t, cookies)
			}
		})
	}
}

func TestLogout_ClearsCookie(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router := newTestRouter(t, mocks.NewMockService(ctrl))

	rec := perform(router, http.MethodPost, "/auth/logout", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, session.CookieName, cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Negative(t, cookies[0].MaxAge)
}

func TestMe_ReturnsUpstreamIdentity(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	upstream := mocks.NewMockService(ctrl)
	upstream.EXPECT().Me(gomock.Any(), "tok-1").
		Return(&types.RemoteUser{ID: 42, Username: "emilys"}, nil)

	router := newTestRouter(t, upstream)

	rec := perform(router, http.MethodGet, "/auth/me", "", "tok-1")
	assert.Equal(t, http.StatusOK, rec.Code)

	user := types.RemoteUser{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
	assert.Equal(t, 42, user.ID)
	assert.Equal(t, "emilys", user.Username)
}

func TestListTodos_Pagination(t *testing.T) {
	seed := make([]types.Todo, 0, 25)
	for i := 1; i <= 25; i++ {
		seed = append(seed, types.Todo{ID: i, Text: fmt.Sprintf("task %d", i), UserID: 42})
	}

	tests := []struct {
		name      string
		query     string
		wantPage  int
		wantLimit int
		wantCount int
	}{
		{name: "defaults", query: "", wantPage: 1, wantLimit: 10, wantCount: 10},
		{name: "page 1", query: "?page=1&limit=10", wantPage: 1, wantLimit: 10, wantCount: 10},
		{name: "page 3 partial", query: "?page=3&limit=10", wantPage: 3, wantLimit: 10, wantCount: 5},
		{name: "page 4 empty", query: "?page=4&limit=10", wantPage: 4, wantLimit: 10, wantCount: 0},
		{name: "limit clamped high", query: "?limit=500", wantPage: 1, wantLimit: 50, wantCount: 25},
		{name: "limit clamped low", query: "?limit=0", wantPage: 1, wantLimit: 1, wantCount: 1},
		{name: "junk limit falls back", query: "?limit=abc", wantPage: 1, wantLimit: 10, wantCount: 10},
		{name: "page clamped low", query: "?page=0", wantPage: 1, wantLimit: 10, wantCount: 10},
	}

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	upstream := mocks.NewMockService(ctrl)
	upstream.EXPECT().Me(gomock.Any(), "tok-1").
		Return(&types.RemoteUser{ID: 42}, nil).AnyTimes()
	upstream.EXPECT().FetchUserTodos(gomock.Any(), 42, "tok-1").
		Return(seed, nil).Times(1)

	router := newTestRouter(t, upstream)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := perform(router, http.MethodGet, "/todos"+tt.query, "", "tok-1")
			require.Equal(t, http.StatusOK, rec.Code)

			var resp struct {
				Page  int          `json:"page"`
				Limit int          `json:"limit"`
				Total int          `json:"total"`
				Todos []types.Todo `json:"todos"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantPage, resp.Page)
			assert.Equal(t, tt.wantLimit, resp.Limit)
			assert.Equal(t, 25, resp.Total)
			assert.Len(t, resp.Todos, tt.wantCount)
		})
	}
}

func TestTodoByID_InvalidID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	upstream := mocks.NewMockService(ctrl)
	upstream.EXPECT().Me(gomock.Any(), "tok-1").
		Return(&types.RemoteUser{ID: 42}, nil).AnyTimes()
	upstream.EXPECT().FetchUserTodos(gomock.Any(), 42, "tok-1").
		Return([]types.Todo{}, nil).Times(1)

	router := newTestRouter(t, upstream)

	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
		t.Run(method, func(t *testing.T) {
			rec := perform(router, method, "/todos/abc", "{}", "tok-1")
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestCreateTodo_RequiresText(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	upstream := mocks.NewMockService(ctrl)
	upstream.EXPECT().Me(gomock.Any(), "tok-1").
		Return(&types.RemoteUser{ID: 42}, nil).AnyTimes()
	upstream.EXPECT().FetchUserTodos(gomock.Any(), 42, "tok-1").
		Return([]types.Todo{}, nil).Times(1)

	router := newTestRouter(t, upstream)

	rec := perform(router, http.MethodPost, "/todos", `{"completed":true}`, "tok-1")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTodoLifecycle(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	upstream := mocks.NewMockService(ctrl)
	upstream.EXPECT().Login(gomock.Any(), "emilys", "pass").Return("tok-1", nil)
	upstream.EXPECT().Me(gomock.Any(), "tok-1").
		Return(&types.RemoteUser{ID: 42}, nil).AnyTimes()
	upstream.EXPECT().FetchUserTodos(gomock.Any(), 42, "tok-1").
		Return([]types.Todo{}, nil).Times(1)

	router := newTestRouter(t, upstream)

	// login issues the session cookie
	rec := perform(router, http.MethodPost, "/auth/login", `{"username":"emilys","password":"pass"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	token := cookies[0].Value

	// create
	rec = perform(router, http.MethodPost, "/todos", `{"todo":"buy milk"}`, token)
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decodeTodo(t, rec.Body.Bytes())
	assert.Equal(t, "buy milk", created.Text)
	assert.False(t, created.Completed)
	assert.Equal(t, 42, created.UserID)
	assert.GreaterOrEqual(t, created.ID, 1)

	// read back
	path := fmt.Sprintf("/todos/%d", created.ID)
	rec = perform(router, http.MethodGet, path, "", token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, created, decodeTodo(t, rec.Body.Bytes()))

	// patch completion only
	rec = perform(router, http.MethodPut, path, `{"completed":true}`, token)
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decodeTodo(t, rec.Body.Bytes())
	assert.True(t, updated.Completed)
	assert.Equal(t, "buy milk", updated.Text)

	// delete
	rec = perform(router, http.MethodDelete, path, "", token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())

	// gone
	rec = perform(router, http.MethodGet, path, "", token)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// deleting again is a miss
	rec = perform(router, http.MethodDelete, path, "", token)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

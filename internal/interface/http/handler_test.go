package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/habit-tracker-api/internal/application"
	"github.com/oksasatya/habit-tracker-api/internal/domain/entity"
	repo "github.com/oksasatya/habit-tracker-api/internal/domain/repository"
	handlers "github.com/oksasatya/habit-tracker-api/internal/interface/http"
	"github.com/oksasatya/habit-tracker-api/internal/interface/middleware"
	"github.com/oksasatya/habit-tracker-api/internal/router"
	"github.com/oksasatya/habit-tracker-api/internal/router/modules"
	"github.com/oksasatya/habit-tracker-api/pkg/helpers"
	"github.com/oksasatya/habit-tracker-api/pkg/validation"
)

// ---- in-memory repositories ----

type memUserRepo struct {
	mu      sync.Mutex
	nextID  int64
	byEmail map[string]*entity.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{byEmail: make(map[string]*entity.User)}
}

func (r *memUserRepo) Create(u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byEmail[u.Email]; ok {
		return repo.ErrDuplicateEmail
	}
	r.nextID++
	u.ID = r.nextID
	u.CreatedAt = time.Now()
	cp := *u
	r.byEmail[u.Email] = &cp
	return nil
}

func (r *memUserRepo) GetByEmail(email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byEmail[email]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

type memHabitRepo struct {
	mu     sync.Mutex
	nextID int64
	habits []*entity.Habit
}

func copyHabit(h *entity.Habit) *entity.Habit {
	cp := *h
	cp.CompletedDates = append([]string{}, h.CompletedDates...)
	return &cp
}

func (r *memHabitRepo) ListByOwner(ownerID int64, skip, limit int) ([]*entity.Habit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Habit, 0)
	seen := 0
	for _, h := range r.habits {
		if h.OwnerID != ownerID {
			continue
		}
		if seen < skip {
			seen++
			continue
		}
		if len(out) >= limit {
			break
		}
		out = append(out, copyHabit(h))
	}
	return out, nil
}

func (r *memHabitRepo) Create(h *entity.Habit) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	h.ID = r.nextID
	h.CreatedAt = time.Now()
	h.CompletedDates = []string{}
	r.habits = append(r.habits, copyHabit(h))
	return nil
}

func (r *memHabitRepo) GetOwned(id, ownerID int64) (*entity.Habit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, h := range r.habits {
		if h.ID == id && h.OwnerID == ownerID {
			return copyHabit(h), nil
		}
	}
	return nil, repo.ErrNotFound
}

func (r *memHabitRepo) UpdateDates(h *entity.Habit) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, stored := range r.habits {
		if stored.ID == h.ID && stored.OwnerID == h.OwnerID {
			stored.CompletedDates = append([]string{}, h.CompletedDates...)
			return nil
		}
	}
	return repo.ErrNotFound
}

func (r *memHabitRepo) Delete(id, ownerID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, h := range r.habits {
		if h.ID == id && h.OwnerID == ownerID {
			r.habits = append(r.habits[:i], r.habits[i+1:]...)
			return nil
		}
	}
	return repo.ErrNotFound
}

// ---- test server ----

func newTestServer(t *testing.T) (*gin.Engine, *helpers.JWTManager) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validation.Init()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	jwt := helpers.NewJWTManager("test-secret", 30*time.Minute)
	userSvc := application.NewUserService(newMemUserRepo(), jwt, logger)
	habitSvc := application.NewHabitService(&memHabitRepo{}, logger)

	r := gin.New()
	r.Use(middleware.RequestIDMiddleware())

	reg := router.NewRegistry(r)
	reg.Add(modules.NewUserModule(handlers.NewUserHandler(userSvc, logger), jwt, userSvc))
	reg.Add(modules.NewHabitModule(handlers.NewHabitHandler(habitSvc, logger), jwt, userSvc))
	reg.RegisterAll()
	return r, jwt
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		buf = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, dest any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), dest))
}

func register(t *testing.T, r *gin.Engine, email, password string) {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/users/", "", gin.H{"email": email, "password": password})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func login(t *testing.T, r *gin.Engine, email, password string) string {
	t.Helper()
	form := url.Values{"username": {email}, "password": {password}}
	req := httptest.NewRequest(http.MethodPost, "/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	decode(t, w, &resp)
	require.Equal(t, "bearer", resp.TokenType)
	require.NotEmpty(t, resp.AccessToken)
	return resp.AccessToken
}

type habitResp struct {
	ID             int64    `json:"id"`
	OwnerID        int64    `json:"owner_id"`
	Name           string   `json:"name"`
	Category       string   `json:"category"`
	CompletedDates []string `json:"completed_dates"`
}

// ---- tests ----

func TestEndToEndHabitFlow(t *testing.T) {
	r, _ := newTestServer(t)

	register(t, r, "alice@example.com", "pw123")
	token := login(t, r, "alice@example.com", "pw123")

	// create
	w := doJSON(t, r, http.MethodPost, "/habits/", token, gin.H{"name": "Run", "category": "Fitness"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var h habitResp
	decode(t, w, &h)
	assert.Equal(t, "Run", h.Name)
	assert.Equal(t, "Fitness", h.Category)
	assert.Equal(t, []string{}, h.CompletedDates)
	require.NotZero(t, h.ID)

	id := "/habits/" + itoa(h.ID)

	// toggle on
	w = doJSON(t, r, http.MethodPut, id+"/toggle?date=2024-01-01", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	decode(t, w, &h)
	assert.Equal(t, []string{"2024-01-01"}, h.CompletedDates)

	// toggle off
	w = doJSON(t, r, http.MethodPut, id+"/toggle?date=2024-01-01", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &h)
	assert.Equal(t, []string{}, h.CompletedDates)

	// delete
	w = doJSON(t, r, http.MethodDelete, id, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var del map[string]string
	decode(t, w, &del)
	assert.Equal(t, "deleted", del["status"])

	// toggle after delete
	w = doJSON(t, r, http.MethodPut, id+"/toggle?date=2024-01-01", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMeReturnsCurrentUser(t *testing.T) {
	r, _ := newTestServer(t)

	register(t, r, "alice@example.com", "pw123")
	token := login(t, r, "alice@example.com", "pw123")

	w := doJSON(t, r, http.MethodGet, "/users/me/", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var me struct {
		ID       int64  `json:"id"`
		Email    string `json:"email"`
		IsActive bool   `json:"is_active"`
	}
	decode(t, w, &me)
	assert.Equal(t, "alice@example.com", me.Email)
	assert.True(t, me.IsActive)
	assert.NotZero(t, me.ID)
}

func TestRegisterDuplicateEmailReturns400(t *testing.T) {
	r, _ := newTestServer(t)

	register(t, r, "alice@example.com", "pw123")

	w := doJSON(t, r, http.MethodPost, "/users/", "", gin.H{"email": "alice@example.com", "password": "other"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginFailures(t *testing.T) {
	r, _ := newTestServer(t)
	register(t, r, "alice@example.com", "pw123")

	for name, creds := range map[string]url.Values{
		"wrong password": {"username": {"alice@example.com"}, "password": {"nope"}},
		"unknown user":   {"username": {"bob@example.com"}, "password": {"pw123"}},
	} {
		req := httptest.NewRequest(http.MethodPost, "/token", strings.NewReader(creds.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code, name)
	}
}

func TestProtectedRoutesRequireValidToken(t *testing.T) {
	r, jwt := newTestServer(t)
	register(t, r, "alice@example.com", "pw123")

	// no token
	w := doJSON(t, r, http.MethodGet, "/habits/", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// garbage token
	w = doJSON(t, r, http.MethodGet, "/habits/", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// valid signature but expired
	expired := &helpers.JWTManager{Secret: jwt.Secret, AccessTTL: -time.Minute}
	tok, _, err := expired.GenerateAccessToken("alice@example.com")
	require.NoError(t, err)
	w = doJSON(t, r, http.MethodGet, "/habits/", tok, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// valid token whose subject no longer resolves
	tok, _, err = jwt.GenerateAccessToken("ghost@example.com")
	require.NoError(t, err)
	w = doJSON(t, r, http.MethodGet, "/habits/", tok, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCrossUserIsolationOverHTTP(t *testing.T) {
	r, _ := newTestServer(t)

	register(t, r, "alice@example.com", "pw123")
	register(t, r, "bob@example.com", "pw456")
	alice := login(t, r, "alice@example.com", "pw123")
	bob := login(t, r, "bob@example.com", "pw456")

	w := doJSON(t, r, http.MethodPost, "/habits/", alice, gin.H{"name": "Run"})
	require.Equal(t, http.StatusOK, w.Code)
	var h habitResp
	decode(t, w, &h)
	assert.Equal(t, "General", h.Category)

	id := "/habits/" + itoa(h.ID)

	// bob cannot toggle or delete alice's habit
	w = doJSON(t, r, http.MethodPut, id+"/toggle?date=2024-01-01", bob, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = doJSON(t, r, http.MethodDelete, id, bob, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// bob's list is empty, alice's is not
	var list []habitResp
	w = doJSON(t, r, http.MethodGet, "/habits/", bob, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &list)
	assert.Empty(t, list)

	w = doJSON(t, r, http.MethodGet, "/habits/", alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &list)
	require.Len(t, list, 1)
	assert.Equal(t, h.ID, list[0].ID)
}

func TestListSkipLimitOverHTTP(t *testing.T) {
	r, _ := newTestServer(t)

	register(t, r, "alice@example.com", "pw123")
	token := login(t, r, "alice@example.com", "pw123")

	names := []string{"a", "b", "c", "d"}
	for _, n := range names {
		w := doJSON(t, r, http.MethodPost, "/habits/", token, gin.H{"name": n})
		require.Equal(t, http.StatusOK, w.Code)
	}

	var list []habitResp
	w := doJSON(t, r, http.MethodGet, "/habits/?skip=1&limit=2", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &list)
	require.Len(t, list, 2)
	assert.Equal(t, "b", list[0].Name)
	assert.Equal(t, "c", list[1].Name)

	// explicit limit=0 yields an empty page, not the default page size
	list = nil
	w = doJSON(t, r, http.MethodGet, "/habits/?limit=0", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &list)
	assert.Empty(t, list)
}

func TestValidationErrors(t *testing.T) {
	r, _ := newTestServer(t)

	// bad email shape and missing password
	w := doJSON(t, r, http.MethodPost, "/users/", "", gin.H{"email": "not-an-email"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	register(t, r, "alice@example.com", "pw123")
	token := login(t, r, "alice@example.com", "pw123")

	// habit without a name
	w = doJSON(t, r, http.MethodPost, "/habits/", token, gin.H{"category": "Fitness"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	// toggle without a date
	w = doJSON(t, r, http.MethodPost, "/habits/", token, gin.H{"name": "Run"})
	require.Equal(t, http.StatusOK, w.Code)
	var h habitResp
	decode(t, w, &h)
	w = doJSON(t, r, http.MethodPut, "/habits/"+itoa(h.ID)+"/toggle", token, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	// non-numeric id
	w = doJSON(t, r, http.MethodDelete, "/habits/abc", token, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}

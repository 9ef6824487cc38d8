package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/domilony/leadgen/internal/api/handlers"
	"github.com/domilony/leadgen/internal/api/middleware"
	"github.com/domilony/leadgen/internal/api/routes"
	"github.com/domilony/leadgen/internal/application"
	"github.com/domilony/leadgen/internal/config"
	"github.com/domilony/leadgen/internal/domain/admin"
	"github.com/domilony/leadgen/internal/domain/ticket"
	"github.com/domilony/leadgen/internal/repository"
	"github.com/domilony/leadgen/internal/testutils"
	"github.com/domilony/leadgen/pkg/response"
)

type testApp struct {
	router   *gin.Engine
	repos    *repository.Repos
	services *application.Services
	tokens   *middleware.TokenManager
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	cfg := &config.Config{
		JWTSecret:      "testsecret",
		Issuer:         "test",
		TokenTTL:       8 * time.Hour,
		AllowedOrigins: []string{"http://localhost:3000"},
	}

	conn := testutils.NewTestDB(t)
	repos := repository.NewRepositories(conn)
	tokens := middleware.NewTokenManager(cfg)
	services := application.New(repos, tokens)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.LoadHTMLGlob("../../../templates/*.html")
	routes.RegisterRoutes(router, handlers.New(services, zap.NewNop()), middleware.NewAuth(tokens, repos))

	return &testApp{router: router, repos: repos, services: services, tokens: tokens}
}

func (app *testApp) seedAdmin(t *testing.T, username, password string) admin.AdminUser {
	t.Helper()
	adm, err := app.services.Auth.CreateAdmin(admin.CreateAdminInput{Username: username, Password: password})
	require.NoError(t, err)
	return adm
}

// doRequest issues a request against the router. url.Values bodies go out as
// form posts, other non-nil bodies as JSON.
func (app *testApp) doRequest(t *testing.T, method, path string, body interface{}, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	switch v := body.(type) {
	case url.Values:
		req = httptest.NewRequest(method, path, strings.NewReader(v.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	case nil:
		req = httptest.NewRequest(method, path, nil)
	default:
		raw, err := json.Marshal(v)
		require.NoError(t, err)
		req = httptest.NewRequest(method, path, bytes.NewBuffer(raw))
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}

	resp := httptest.NewRecorder()
	app.router.ServeHTTP(resp, req)
	return resp
}

func (app *testApp) login(t *testing.T, username, password string) *http.Cookie {
	t.Helper()

	form := url.Values{}
	form.Add("username", username)
	form.Add("password", password)

	resp := app.doRequest(t, "POST", "/admin/login", form, nil)
	require.Equal(t, http.StatusSeeOther, resp.Code)
	require.Equal(t, "/admin/dashboard", resp.Header().Get("Location"))

	for _, c := range resp.Result().Cookies() {
		if c.Name == middleware.SessionCookie {
			require.True(t, c.HttpOnly)
			return c
		}
	}
	t.Fatal("session cookie not set")
	return nil
}

// --------------------- Public surface ---------------------

func TestHealth(t *testing.T) {
	app := newTestApp(t)

	resp := app.doRequest(t, "GET", "/health", nil, nil)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "ok")
}

func TestSubmitApplication_Created(t *testing.T) {
	app := newTestApp(t)

	payload := map[string]string{
		"name":  "Ann Lee",
		"email": "a@x.com",
		"phone": "+1 555-2222",
	}
	resp := app.doRequest(t, "POST", "/api/submit-application", payload, nil)
	require.Equal(t, http.StatusCreated, resp.Code)

	var body response.SubmitResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.True(t, body.Success)
	require.NotZero(t, body.TicketID)

	stored, err := app.repos.Ticket.GetByID(body.TicketID)
	require.NoError(t, err)
	assert.Equal(t, ticket.StatusNew, stored.Status)
	assert.Nil(t, stored.UpdatedAt)
}

func TestSubmitApplication_MonotonicIDs(t *testing.T) {
	app := newTestApp(t)

	var last uint
	for i := 0; i < 3; i++ {
		payload := map[string]string{"name": "Ann Lee", "email": "a@x.com", "phone": "555 1234"}
		resp := app.doRequest(t, "POST", "/api/submit-application", payload, nil)
		require.Equal(t, http.StatusCreated, resp.Code)

		var body response.SubmitResponse
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
		assert.Greater(t, body.TicketID, last)
		last = body.TicketID
	}
}

func TestSubmitApplication_InvalidPhone(t *testing.T) {
	app := newTestApp(t)

	payload := map[string]string{"name": "Ann Lee", "email": "a@x.com", "phone": "abc"}
	resp := app.doRequest(t, "POST", "/api/submit-application", payload, nil)
	require.Equal(t, http.StatusBadRequest, resp.Code)

	var body response.SubmitResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Contains(t, body.Message, "phone")

	n, err := app.repos.Ticket.Count()
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSubmitApplication_ShortName(t *testing.T) {
	app := newTestApp(t)

	payload := map[string]string{"name": "Al", "email": "a@x.com", "phone": "555"}
	resp := app.doRequest(t, "POST", "/api/submit-application", payload, nil)
	require.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "name")
}

func TestSubmitApplication_ProjectTypeAlias(t *testing.T) {
	app := newTestApp(t)

	payload := map[string]string{
		"name":        "Ann Lee",
		"email":       "a@x.com",
		"phone":       "555",
		"projectType": "house",
		"message":     "need a quote",
	}
	resp := app.doRequest(t, "POST", "/api/submit-application", payload, nil)
	require.Equal(t, http.StatusCreated, resp.Code)

	var body response.SubmitResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))

	stored, err := app.repos.Ticket.GetByID(body.TicketID)
	require.NoError(t, err)
	require.NotNil(t, stored.ProjectType)
	assert.Equal(t, "house", *stored.ProjectType)
}

// --------------------- Session ---------------------

func TestLogin_SetsCookieAndRedirects(t *testing.T) {
	app := newTestApp(t)
	app.seedAdmin(t, "ops", "password123")

	cookie := app.login(t, "ops", "password123")
	assert.NotEmpty(t, cookie.Value)
}

func TestLogin_WrongPassword(t *testing.T) {
	app := newTestApp(t)
	app.seedAdmin(t, "ops", "password123")

	form := url.Values{}
	form.Add("username", "ops")
	form.Add("password", "wrong")

	resp := app.doRequest(t, "POST", "/admin/login", form, nil)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "Invalid username or password")
	assert.Empty(t, resp.Result().Cookies())
}

func TestLogin_DeactivatedAccount(t *testing.T) {
	app := newTestApp(t)
	adm := app.seedAdmin(t, "ops", "password123")

	adm.IsActive = false
	require.NoError(t, app.repos.Admin.Save(&adm))

	form := url.Values{}
	form.Add("username", "ops")
	form.Add("password", "password123")

	resp := app.doRequest(t, "POST", "/admin/login", form, nil)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "Invalid username or password")
}

func TestLogout_ClearsCookie(t *testing.T) {
	app := newTestApp(t)
	app.seedAdmin(t, "ops", "password123")
	cookie := app.login(t, "ops", "password123")

	resp := app.doRequest(t, "GET", "/admin/logout", nil, cookie)
	require.Equal(t, http.StatusSeeOther, resp.Code)
	assert.Equal(t, "/admin/login", resp.Header().Get("Location"))

	for _, c := range resp.Result().Cookies() {
		if c.Name == middleware.SessionCookie {
			assert.Empty(t, c.Value)
		}
	}
}

func TestDashboard_RequiresAuth(t *testing.T) {
	app := newTestApp(t)

	resp := app.doRequest(t, "GET", "/admin/dashboard", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestDashboard_RejectsDeactivatedSession(t *testing.T) {
	app := newTestApp(t)
	adm := app.seedAdmin(t, "ops", "password123")
	cookie := app.login(t, "ops", "password123")

	// A valid token no longer helps once the account is deactivated.
	adm.IsActive = false
	require.NoError(t, app.repos.Admin.Save(&adm))

	resp := app.doRequest(t, "GET", "/admin/dashboard", nil, cookie)
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestDashboard_ShowsStats(t *testing.T) {
	app := newTestApp(t)
	app.seedAdmin(t, "ops", "password123")
	cookie := app.login(t, "ops", "password123")

	app.doRequest(t, "POST", "/api/submit-application",
		map[string]string{"name": "Ann Lee", "email": "a@x.com", "phone": "555"}, nil)

	resp := app.doRequest(t, "GET", "/admin/dashboard", nil, cookie)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "ops")
	assert.Contains(t, resp.Body.String(), "Ann Lee")
}

func TestBearerHeaderAccepted(t *testing.T) {
	app := newTestApp(t)
	app.seedAdmin(t, "ops", "password123")

	_, token, err := app.services.Auth.Login("ops", "password123")
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/admin/dashboard", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	app.router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)
}

// --------------------- Triage ---------------------

func (app *testApp) submitTicket(t *testing.T, name, email string) uint {
	t.Helper()
	payload := map[string]string{"name": name, "email": email, "phone": "+1 555-2222"}
	resp := app.doRequest(t, "POST", "/api/submit-application", payload, nil)
	require.Equal(t, http.StatusCreated, resp.Code)

	var body response.SubmitResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	return body.TicketID
}

func TestTicketList_FilterAndSearch(t *testing.T) {
	app := newTestApp(t)
	app.seedAdmin(t, "ops", "password123")
	cookie := app.login(t, "ops", "password123")

	annID := app.submitTicket(t, "Ann Lee", "ann@example.com")
	app.submitTicket(t, "Bob Stone", "bob@example.com")

	_, err := app.services.Ticket.UpdateStatus(annID, ticket.StatusInProgress)
	require.NoError(t, err)

	resp := app.doRequest(t, "GET", "/admin/tickets?status=in_progress", nil, cookie)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "Ann Lee")
	assert.NotContains(t, resp.Body.String(), "Bob Stone")

	resp = app.doRequest(t, "GET", "/admin/tickets?search=BOB", nil, cookie)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "Bob Stone")
	assert.NotContains(t, resp.Body.String(), "Ann Lee")

	// An unrecognized status means "no filter", not an error.
	resp = app.doRequest(t, "GET", "/admin/tickets?status=bogus", nil, cookie)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "Ann Lee")
	assert.Contains(t, resp.Body.String(), "Bob Stone")
}

func TestTicketDetail(t *testing.T) {
	app := newTestApp(t)
	app.seedAdmin(t, "ops", "password123")
	cookie := app.login(t, "ops", "password123")

	id := app.submitTicket(t, "Ann Lee", "ann@example.com")

	resp := app.doRequest(t, "GET", "/admin/tickets/"+itoa(id), nil, cookie)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "Ann Lee")
	assert.Contains(t, resp.Body.String(), "new")

	resp = app.doRequest(t, "GET", "/admin/tickets/9999", nil, cookie)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestStatusUpdate_Flow(t *testing.T) {
	app := newTestApp(t)
	app.seedAdmin(t, "ops", "password123")
	cookie := app.login(t, "ops", "password123")

	id := app.submitTicket(t, "Ann Lee", "ann@example.com")

	form := url.Values{}
	form.Add("status", "in_progress")
	resp := app.doRequest(t, "POST", "/admin/tickets/"+itoa(id)+"/status", form, cookie)
	require.Equal(t, http.StatusSeeOther, resp.Code)
	assert.Equal(t, "/admin/tickets/"+itoa(id), resp.Header().Get("Location"))

	stored, err := app.repos.Ticket.GetByID(id)
	require.NoError(t, err)
	assert.Equal(t, ticket.StatusInProgress, stored.Status)
	require.NotNil(t, stored.UpdatedAt)
	assert.True(t, stored.UpdatedAt.After(stored.CreatedAt))
}

func TestStatusUpdate_InvalidStatus(t *testing.T) {
	app := newTestApp(t)
	app.seedAdmin(t, "ops", "password123")
	cookie := app.login(t, "ops", "password123")

	id := app.submitTicket(t, "Ann Lee", "ann@example.com")

	form := url.Values{}
	form.Add("status", "finished")
	resp := app.doRequest(t, "POST", "/admin/tickets/"+itoa(id)+"/status", form, cookie)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestStatusUpdate_MissingTicket(t *testing.T) {
	app := newTestApp(t)
	app.seedAdmin(t, "ops", "password123")
	cookie := app.login(t, "ops", "password123")

	form := url.Values{}
	form.Add("status", "completed")
	resp := app.doRequest(t, "POST", "/admin/tickets/9999/status", form, cookie)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestTicketDelete(t *testing.T) {
	app := newTestApp(t)
	app.seedAdmin(t, "ops", "password123")
	cookie := app.login(t, "ops", "password123")

	id := app.submitTicket(t, "Ann Lee", "ann@example.com")

	resp := app.doRequest(t, "DELETE", "/admin/tickets/"+itoa(id), nil, cookie)
	assert.Equal(t, http.StatusOK, resp.Code)

	resp = app.doRequest(t, "DELETE", "/admin/tickets/"+itoa(id), nil, cookie)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

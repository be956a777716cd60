package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobinette/deptlib"
	"github.com/bobinette/deptlib/inmem"
	"github.com/bobinette/deptlib/jwt"
	"github.com/bobinette/deptlib/log"
	"github.com/bobinette/deptlib/pdf"
	"github.com/bobinette/deptlib/services"
	"github.com/bobinette/deptlib/users"
)

var testKey = []byte("test-key")

const testOrigin = "http://app.lib.dept"

type testServer struct {
	handler http.Handler

	adminToken  string
	authorToken string
	authorID    int
}

func createServer(t *testing.T) testServer {
	logger := log.Discard()

	userRepo := inmem.NewUserRepository()
	authorRepo := inmem.NewAuthorRepository()
	workRepo := inmem.NewWorkRepository()
	categoryRepo := inmem.NewCategoryRepository()
	journalRepo := inmem.NewJournalRepository()

	encoder := jwt.NewEncodeDecoder(testKey, time.Hour)
	authService := services.NewAuthService(userRepo, authorRepo, encoder)
	authenticator := users.NewAuthenticator(userRepo, nil)
	guards := NewGuards(testKey, authenticator)

	works := services.NewWorkService(workRepo, authorRepo, noIndex{workRepo})

	srv := NewGinServer(logger, []string{testOrigin})
	RegisterAuthEndpoints(srv, authService, guards)
	RegisterAuthorEndpoints(srv, services.NewAuthorService(authorRepo, works), guards)
	RegisterCategoryEndpoints(srv, services.NewCategoryService(categoryRepo), guards)
	RegisterJournalEndpoints(srv, services.NewJournalService(journalRepo), guards)
	RegisterWorkEndpoints(srv, works, guards)
	RegisterReportEndpoints(srv, services.NewReportService(
		workRepo, authorRepo, categoryRepo, journalRepo, &pdf.Renderer{}, logger,
	), guards)

	_, err := authService.CreateUser(services.RegisterForm{
		Email: "admin@lib.dept", Password: "admin-password", Name: "Admin", Role: deptlib.RoleAdmin,
	})
	require.NoError(t, err)
	author, err := authService.CreateUser(services.RegisterForm{
		Email: "ada@lib.dept", Password: "ada-password", Name: "Ada", Role: deptlib.RoleAuthor,
		ThesisDefenseDate: "2019-01-01",
	})
	require.NoError(t, err)

	require.NoError(t, categoryRepo.Upsert(&deptlib.Category{Title: "Article"}))
	require.NoError(t, workRepo.Upsert(&deptlib.Work{
		Title:            "On graphs",
		Annotation:       "Graphs",
		Pages:            12,
		AuthorIDs:        []int{author.AuthorID},
		DigitalReference: "https://doi.org/10.1000/graphs",
		CategoryID:       1,
		PublishDate:      func() *time.Time { d := time.Date(2018, 3, 1, 0, 0, 0, 0, time.UTC); return &d }(),
	}))

	ts := testServer{handler: srv, authorID: author.AuthorID}
	ts.adminToken = ts.login(t, "admin@lib.dept", "admin-password")
	ts.authorToken = ts.login(t, "ada@lib.dept", "ada-password")
	return ts
}

func (ts testServer) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}

	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)
	return rec
}

func (ts testServer) login(t *testing.T, email, password string) string {
	rec := ts.do("POST", "/auth/login", "", map[string]string{"email": email, "password": password})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
	return res.Token
}

// noIndex searches by listing the store, the http tests do not need bleve.
type noIndex struct {
	works *inmem.WorkRepository
}

func (noIndex) Index(deptlib.Work, []deptlib.Author) error { return nil }
func (noIndex) Delete(int) error                          { return nil }

func (i noIndex) Search(search deptlib.WorkSearch) (deptlib.WorkSearchResults, error) {
	works, _ := i.works.List()
	ids := make([]int, 0, len(works))
	for _, w := range works {
		if strings.Contains(strings.ToLower(w.Title), strings.ToLower(search.Q)) {
			ids = append(ids, w.ID)
		}
	}
	return deptlib.WorkSearchResults{IDs: ids, Pagination: deptlib.Pagination{Total: uint64(len(ids))}}, nil
}

func TestLogin(t *testing.T) {
	ts := createServer(t)

	rec := ts.do("POST", "/auth/login", "", map[string]string{"email": "ada@lib.dept", "password": "ada-password"})
	require.Equal(t, http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, jwt.CookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	rec = ts.do("POST", "/auth/login", "", map[string]string{"email": "ada@lib.dept", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid credentials")

	rec = ts.do("POST", "/auth/login", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMe(t *testing.T) {
	ts := createServer(t)

	rec := ts.do("GET", "/auth/me", ts.authorToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var me deptlib.User
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&me))
	assert.Equal(t, "ada@lib.dept", me.Email)
	assert.Equal(t, ts.authorID, me.AuthorID)
	assert.Empty(t, me.PasswordHash)

	req := httptest.NewRequest("GET", "/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: jwt.CookieName, Value: ts.authorToken})
	cookieRec := httptest.NewRecorder()
	ts.handler.ServeHTTP(cookieRec, req)
	assert.Equal(t, http.StatusOK, cookieRec.Code, "the cookie is accepted")

	rec = ts.do("GET", "/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRegister(t *testing.T) {
	ts := createServer(t)
	form := map[string]string{
		"email": "grace@lib.dept", "password": "grace-password", "name": "Grace", "role": "staff",
	}

	rec := ts.do("POST", "/auth/register", ts.authorToken, form)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = ts.do("POST", "/auth/register", ts.adminToken, form)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	assert.NotEmpty(t, ts.login(t, "grace@lib.dept", "grace-password"))
}

func TestCatalogRoutes(t *testing.T) {
	ts := createServer(t)

	rec := ts.do("POST", "/journals", ts.authorToken, deptlib.Journal{Title: "Graphs Today"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = ts.do("POST", "/journals", ts.adminToken, deptlib.Journal{Title: ""})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "title is required")

	rec = ts.do("POST", "/journals", ts.adminToken, deptlib.Journal{Title: "Graphs Today", Volume: 3})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var createdRes struct {
		Data deptlib.Journal `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&createdRes))
	journal := createdRes.Data
	require.NotEqual(t, 0, journal.ID)

	journal.Edition = "Winter"
	rec = ts.do("PUT", "/journals/"+itoa(journal.ID), ts.adminToken, journal)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = ts.do("GET", "/journals/"+itoa(journal.ID), ts.authorToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var retrieved deptlib.Journal
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&retrieved))
	assert.Equal(t, journal, retrieved)

	rec = ts.do("GET", "/journals/pizza", ts.authorToken, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do("DELETE", "/journals/"+itoa(journal.ID), ts.adminToken, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = ts.do("GET", "/journals/"+itoa(journal.ID), ts.adminToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = ts.do("GET", "/journals", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestWorkSearch(t *testing.T) {
	ts := createServer(t)

	rec := ts.do("GET", "/works/search?q=graph", ts.authorToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res services.SearchResults
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
	require.Len(t, res.Works, 1)
	assert.Equal(t, "On graphs", res.Works[0].Title)

	rec = ts.do("GET", "/works/search?limit=pizza", ts.authorToken, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do("GET", "/works", ts.authorToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthorsReport(t *testing.T) {
	ts := createServer(t)

	rec := ts.do("GET", "/reports/authors?start=2018-01-01&end=2018-12-31", ts.authorToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Regexp(t, `^attachment; filename="AuthorsReport_\d{8}_\d{6}\.pdf"$`, rec.Header().Get("Content-Disposition"))
	assert.NotEmpty(t, rec.Header().Get("X-Report-Id"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")))

	tts := map[string]struct {
		path  string
		token string
		code  int
	}{
		"no token":       {"/reports/authors", "", http.StatusUnauthorized},
		"malformed date": {"/reports/authors?start=01/01/2018", ts.adminToken, http.StatusBadRequest},
		"inverted range": {"/reports/authors?start=2020-01-01&end=2019-01-01", ts.adminToken, http.StatusBadRequest},
	}
	for name, tt := range tts {
		t.Run(name, func(t *testing.T) {
			rec := ts.do("GET", tt.path, tt.token, nil)
			assert.Equal(t, tt.code, rec.Code, rec.Body.String())
			assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
		})
	}
}

func TestPingAndNoRoute(t *testing.T) {
	ts := createServer(t)

	rec := ts.do("GET", "/ping", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do("GET", "/pizza", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCORS(t *testing.T) {
	ts := createServer(t)

	tts := map[string]struct {
		method string
		origin string
		allow  string
		code   int
	}{
		"allowed origin":   {"GET", testOrigin, testOrigin, http.StatusOK},
		"preflight":        {"OPTIONS", testOrigin, testOrigin, http.StatusOK},
		"unknown origin":   {"GET", "http://evil.example", "", http.StatusOK},
		"same origin call": {"GET", "", "", http.StatusOK},
	}

	for name, tt := range tts {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/ping", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			rec := httptest.NewRecorder()
			ts.handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.code, rec.Code)
			assert.Equal(t, tt.allow, rec.Header().Get("Access-Control-Allow-Origin"))
			assert.NotEqual(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
			if tt.allow != "" {
				assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
			} else {
				assert.Empty(t, rec.Header().Get("Access-Control-Allow-Credentials"))
			}
		})
	}
}

func itoa(i int) string {
	return strconv.Itoa(i)
}

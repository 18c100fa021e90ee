package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"mime"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"category-api/internal/config"
	"category-api/internal/domain"
	categoryrepo "category-api/internal/repository/category"
	categorysvc "category-api/internal/service/category"
	"github.com/gin-gonic/gin"
)

type stubCategoryService struct {
	names []string
	err   error
}

func (s *stubCategoryService) ListCategories(_ context.Context) ([]string, error) {
	return s.names, s.err
}

func logDiscard() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func testRouter(t *testing.T, deps Deps) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	if deps.CategorySvc == nil {
		deps.CategorySvc = categorysvc.New(categoryrepo.NewStatic())
	}
	router, err := buildRouter(logDiscard(), deps)
	if err != nil {
		t.Fatalf("build router: %v", err)
	}
	return router
}

func serve(router http.Handler, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestListCategories_ReturnsBuiltInList(t *testing.T) {
	router := testRouter(t, Deps{})

	rec := serve(router, http.MethodGet, "/api/category")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	mediaType, _, err := mime.ParseMediaType(rec.Header().Get("Content-Type"))
	if err != nil || mediaType != "application/json" {
		t.Fatalf("expected application/json, got %q", rec.Header().Get("Content-Type"))
	}
	var got []string
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	want := []string{"Electronics", "Books", "Clothing"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestListCategories_ByteIdenticalAcrossCalls(t *testing.T) {
	router := testRouter(t, Deps{})

	first := serve(router, http.MethodGet, "/api/category").Body.Bytes()
	for i := 0; i < 10; i++ {
		next := serve(router, http.MethodGet, "/api/category").Body.Bytes()
		if !bytes.Equal(first, next) {
			t.Fatalf("call %d body differs: %s vs %s", i, first, next)
		}
	}
}

func TestListCategories_ConcurrentRequests(t *testing.T) {
	router := testRouter(t, Deps{})
	want := serve(router, http.MethodGet, "/api/category").Body.String()

	errs := make(chan error, 32)
	for i := 0; i < cap(errs); i++ {
		go func() {
			rec := serve(router, http.MethodGet, "/api/category")
			if rec.Code != http.StatusOK || rec.Body.String() != want {
				errs <- fmt.Errorf("status %d body %s", rec.Code, rec.Body.String())
				return
			}
			errs <- nil
		}()
	}
	for i := 0; i < cap(errs); i++ {
		if err := <-errs; err != nil {
			t.Fatal(err)
		}
	}
}

func TestUnknownRoute_NotFoundWithEmptyBody(t *testing.T) {
	router := testRouter(t, Deps{})

	rec := serve(router, http.MethodGet, "/api/unknown")

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Fatalf("expected empty body, got %q", rec.Body.String())
	}
}

func TestTrailingSlash_NotFoundWithoutRedirect(t *testing.T) {
	router := testRouter(t, Deps{})

	rec := serve(router, http.MethodGet, "/api/category/")

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d location=%q", rec.Code, rec.Header().Get("Location"))
	}
	if rec.Body.Len() != 0 {
		t.Fatalf("expected empty body, got %q", rec.Body.String())
	}
	if loc := rec.Header().Get("Location"); loc != "" {
		t.Fatalf("expected no redirect, got Location %q", loc)
	}
}

func TestWrongMethod_MethodNotAllowed(t *testing.T) {
	router := testRouter(t, Deps{})

	rec := serve(router, http.MethodPost, "/api/category")

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Fatalf("expected empty body, got %q", rec.Body.String())
	}
	if !strings.Contains(rec.Header().Get("Allow"), http.MethodGet) {
		t.Fatalf("expected Allow header to list GET, got %q", rec.Header().Get("Allow"))
	}
}

func TestListCategories_ErrorMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{name: "data unavailable", err: fmt.Errorf("%w: pool closed", domain.ErrDataUnavailable), wantStatus: http.StatusServiceUnavailable, wantBody: "data unavailable"},
		{name: "unexpected", err: errors.New("secret dsn leaked"), wantStatus: http.StatusInternalServerError, wantBody: "internal server error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router := testRouter(t, Deps{CategorySvc: &stubCategoryService{err: tc.err}})

			rec := serve(router, http.MethodGet, "/api/category")

			if rec.Code != tc.wantStatus {
				t.Fatalf("expected %d, got %d", tc.wantStatus, rec.Code)
			}
			if tc.wantBody == "" {
				return
			}
			var body errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("unmarshal error body: %v", err)
			}
			if body.Error != tc.wantBody {
				t.Fatalf("expected %q, got %q", tc.wantBody, body.Error)
			}
			if strings.Contains(rec.Body.String(), "secret") {
				t.Fatalf("internal details leaked: %s", rec.Body.String())
			}
		})
	}
}

func TestPanicInHandler_RecoveredAs500(t *testing.T) {
	router := testRouter(t, Deps{})
	router.GET("/api/boom", func(c *gin.Context) {
		panic("boom")
	})

	rec := serve(router, http.MethodGet, "/api/boom")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "boom") {
		t.Fatalf("panic value leaked: %s", rec.Body.String())
	}

	if rec := serve(router, http.MethodGet, "/api/category"); rec.Code != http.StatusOK {
		t.Fatalf("expected router to keep serving, got %d", rec.Code)
	}
}

func TestMissingDefaultConnection_CategoryStillServed(t *testing.T) {
	cfg := config.Config{CategorySource: config.SourceStatic}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	router := testRouter(t, Deps{DB: nil})

	if rec := serve(router, http.MethodGet, "/api/category"); rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec := serve(router, http.MethodGet, "/readyz"); rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected readyz 503 without db, got %d", rec.Code)
	}
}

func TestHealthz(t *testing.T) {
	router := testRouter(t, Deps{})

	rec := serve(router, http.MethodGet, "/healthz")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Fatalf("unexpected healthz response %d %s", rec.Code, rec.Body.String())
	}
}

func TestDocs_ServedWhenEnabled(t *testing.T) {
	router := testRouter(t, Deps{DocsEnabled: true})

	rec := serve(router, http.MethodGet, "/swagger/doc.json")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var doc struct {
		Swagger string                     `json:"swagger"`
		Paths   map[string]json.RawMessage `json:"paths"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("doc is not valid json: %v", err)
	}
	if _, ok := doc.Paths["/api/category"]; !ok {
		t.Fatalf("expected /api/category in doc paths, got %v", doc.Paths)
	}
}

func TestDocs_AbsentWhenDisabled(t *testing.T) {
	router := testRouter(t, Deps{DocsEnabled: false})

	if rec := serve(router, http.MethodGet, "/swagger/doc.json"); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if rec := serve(router, http.MethodGet, "/api/category"); rec.Code != http.StatusOK {
		t.Fatalf("expected category endpoint unaffected, got %d", rec.Code)
	}
}

func TestCORS_AllowedOrigin(t *testing.T) {
	router := testRouter(t, Deps{CORSAllowedOrigins: []string{"http://shop.test"}})

	req := httptest.NewRequest(http.MethodGet, "/api/category", nil)
	req.Header.Set("Origin", "http://shop.test")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://shop.test" {
		t.Fatalf("expected allow-origin header, got %q", got)
	}
}

func TestBuildRouter_RejectsInvalidCORSOrigin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	_, err := buildRouter(logDiscard(), Deps{
		CategorySvc:        &stubCategoryService{names: []string{"x"}},
		CORSAllowedOrigins: []string{"shop.test"},
	})
	if err == nil {
		t.Fatalf("expected error for origin without scheme")
	}
}

func TestBuildRouter_RequiresCategoryService(t *testing.T) {
	if _, err := buildRouter(logDiscard(), Deps{}); err == nil {
		t.Fatalf("expected error without category service")
	}
}

func TestServerRoutes_Table(t *testing.T) {
	srv, err := New(":0", logDiscard(), Deps{
		CategorySvc: categorysvc.New(categoryrepo.NewStatic()),
		DocsEnabled: true,
	})
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	want := []Route{
		{Method: http.MethodGet, Path: "/api/category"},
		{Method: http.MethodGet, Path: "/healthz"},
		{Method: http.MethodGet, Path: "/readyz"},
		{Method: http.MethodGet, Path: "/swagger/doc.json"},
	}
	got := srv.Routes()
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

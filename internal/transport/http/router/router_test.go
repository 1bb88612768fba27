package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"property-alerts/internal/core/auth"
	"property-alerts/internal/notify"
	"property-alerts/internal/repo/filestore"
	"property-alerts/internal/service"
	"property-alerts/internal/transport/http/handler"
	"property-alerts/pkg/utils"
)

const usersJSON = `[
  {"id":1,"name":"Roy","email":"roy@email.com","phoneNumber":"600111222"},
  {"id":2,"name":"Rick","email":"rDeckard@email.com","phoneNumber":"673777555"}
]`

type env struct {
	dir      string
	sent     *notify.Recorder
	listings *service.ListingService
	search   *service.SearchService
	alerts   *service.AlertService
	users    *filestore.UserDirectory
}

func newEnv(t *testing.T) *env {
	t.Helper()
	gin.SetMode(gin.TestMode)
	dir := t.TempDir()
	usersPath := filepath.Join(dir, "users.json")
	if err := os.WriteFile(usersPath, []byte(usersJSON), 0o644); err != nil {
		t.Fatal(err)
	}
	ls, err := filestore.NewListingStore(filepath.Join(dir, "listings.json"))
	if err != nil {
		t.Fatal(err)
	}
	as, err := filestore.NewAlertStore(filepath.Join(dir, "alerts.json"))
	if err != nil {
		t.Fatal(err)
	}
	us, err := filestore.NewUserDirectory(usersPath)
	if err != nil {
		t.Fatal(err)
	}
	rec := &notify.Recorder{}
	l := zap.NewNop()
	d := service.NewDispatcher(service.DispatcherOpts{Email: rec, SMS: rec, Push: rec, Users: us, Log: l})
	return &env{
		dir:      dir,
		sent:     rec,
		users:    us,
		listings: service.NewListingService(service.ListingServiceOpts{Listings: ls, Alerts: as, Users: us, Dispatcher: d, Log: l}),
		search:   service.NewSearchService(service.SearchServiceOpts{Listings: ls, Log: l}),
		alerts:   service.NewAlertService(service.AlertServiceOpts{Alerts: as, Users: us, Log: l}),
	}
}

func (e *env) api() *gin.Engine {
	return NewAPIEngine(zap.NewNop(),
		handler.NewListingHandler(e.listings, e.search),
		handler.NewAlertHandler(e.alerts),
	)
}

type envelope struct {
	Code int             `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

func do(t *testing.T, h http.Handler, method, path, body string, header ...string) envelope {
	t.Helper()
	var rd *bytes.Reader
	if body != "" {
		rd = bytes.NewReader([]byte(body))
	} else {
		rd = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("%s %s: http status %d", method, path, w.Code)
	}
	var out envelope
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("%s %s: decode %q: %v", method, path, w.Body.String(), err)
	}
	return out
}

func TestAPI_Health(t *testing.T) {
	r := newEnv(t).api()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK || w.Header().Get("X-Request-ID") == "" {
		t.Errorf("health: code=%d rid=%q", w.Code, w.Header().Get("X-Request-ID"))
	}
}

func TestAPI_PublishNotifiesMatchingAlert(t *testing.T) {
	e := newEnv(t)
	r := e.api()

	got := do(t, r, http.MethodPost, "/api/v1/alerts", `{"userId":2,"alertType":"email","postalCode":"04600","maximumPrice":200000}`)
	if got.Code != 0 {
		t.Fatalf("add alert: %+v", got)
	}

	got = do(t, r, http.MethodPost, "/api/v1/listings",
		`{"id":1,"description":"Flat","postalCode":"04600","price":150000,"numberOfRooms":3,"squareMeters":90,"ownerId":1}`)
	if got.Code != 0 {
		t.Fatalf("publish: %+v", got)
	}
	var res struct {
		Matched int `json:"matched"`
		Sent    int `json:"sent"`
	}
	if err := json.Unmarshal(got.Data, &res); err != nil {
		t.Fatal(err)
	}
	if res.Matched != 1 || res.Sent != 1 {
		t.Errorf("publish result = %+v", res)
	}
	if len(e.sent.Emails) != 1 || e.sent.Emails[0].To != "rDeckard@email.com" {
		t.Errorf("emails = %+v", e.sent.Emails)
	}
}

func TestAPI_PublishErrors(t *testing.T) {
	r := newEnv(t).api()
	cases := []struct {
		name string
		body string
		code int
		msg  string
	}{
		{"bad postal code", `{"id":1,"postalCode":"046000","price":1,"ownerId":1}`, 400, "046000 is not a valid postal code"},
		{"unknown owner", `{"id":1,"postalCode":"04600","price":1,"ownerId":99}`, 404, "The owner 99 does not exist"},
		{"malformed json", `{"id":`, 400, ""},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := do(t, r, http.MethodPost, "/api/v1/listings", c.body)
			if got.Code != c.code {
				t.Errorf("code = %d, want %d (%s)", got.Code, c.code, got.Msg)
			}
			if c.msg != "" && got.Msg != c.msg {
				t.Errorf("msg = %q, want %q", got.Msg, c.msg)
			}
		})
	}
}

func TestAPI_Search(t *testing.T) {
	e := newEnv(t)
	r := e.api()

	// 尚无房源文件
	if got := do(t, r, http.MethodGet, "/api/v1/listings/search?postalCode=04600", ""); got.Code != 503 {
		t.Errorf("missing file code = %d, want 503", got.Code)
	}

	for _, b := range []string{
		`{"id":1,"description":"Cheap flat","postalCode":"04600","price":90000,"ownerId":1}`,
		`{"id":2,"description":"Villa","postalCode":"04600","price":900000,"ownerId":1}`,
	} {
		if got := do(t, r, http.MethodPost, "/api/v1/listings", b); got.Code != 0 {
			t.Fatalf("publish: %+v", got)
		}
	}

	got := do(t, r, http.MethodGet, "/api/v1/listings/search?postalCode=04600&maximumPrice=100000", "")
	if got.Code != 0 {
		t.Fatalf("search: %+v", got)
	}
	var res struct {
		Total int `json:"total"`
		Items []struct {
			Description string `json:"description"`
		} `json:"items"`
	}
	if err := json.Unmarshal(got.Data, &res); err != nil {
		t.Fatal(err)
	}
	if res.Total != 1 || res.Items[0].Description != "Cheap flat" {
		t.Errorf("search = %+v", res)
	}

	if got := do(t, r, http.MethodGet, "/api/v1/listings/search?postalCode=04600&minimumPrice=5&maximumPrice=1", ""); got.Code != 400 {
		t.Errorf("inverted range code = %d, want 400", got.Code)
	}
}

func TestAPI_AddAlertInvalidType(t *testing.T) {
	r := newEnv(t).api()
	got := do(t, r, http.MethodPost, "/api/v1/alerts", `{"userId":1,"alertType":"fax","postalCode":"04600"}`)
	if got.Code != 400 || got.Msg != "The alert type fax does not exist" {
		t.Errorf("got %+v", got)
	}
}

func newAdmin(t *testing.T, e *env) (*gin.Engine, *auth.JWTer) {
	t.Helper()
	hash, err := utils.HashPassword("s3cret")
	if err != nil {
		t.Fatal(err)
	}
	j, err := auth.New("k", "property-alerts", time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	h := handler.NewAdminHandler(e.listings, e.alerts, e.users, j, handler.AdminCredentials{Username: "admin", PasswordHash: hash})
	return NewAdminEngine(zap.NewNop(), j, h), j
}

func TestAdmin_LoginAndProtectedRoutes(t *testing.T) {
	e := newEnv(t)
	r, _ := newAdmin(t, e)

	if got := do(t, r, http.MethodPost, "/admin/v1/auth/login", `{"username":"admin","password":"nope"}`); got.Code != 401 {
		t.Errorf("wrong password code = %d", got.Code)
	}
	if got := do(t, r, http.MethodGet, "/admin/v1/users/2", ""); got.Code != 401 {
		t.Errorf("no token code = %d", got.Code)
	}

	got := do(t, r, http.MethodPost, "/admin/v1/auth/login", `{"username":"admin","password":"s3cret"}`)
	if got.Code != 0 {
		t.Fatalf("login: %+v", got)
	}
	var tok struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(got.Data, &tok); err != nil || tok.Token == "" {
		t.Fatalf("token = %q, err = %v", tok.Token, err)
	}
	bearer := []string{"Authorization", "Bearer " + tok.Token}

	got = do(t, r, http.MethodGet, "/admin/v1/users/2", "", bearer...)
	if got.Code != 0 {
		t.Fatalf("user 2: %+v", got)
	}
	var u struct {
		Name string `json:"name"`
	}
	_ = json.Unmarshal(got.Data, &u)
	if u.Name != "Rick" {
		t.Errorf("user = %s", got.Data)
	}
	if got := do(t, r, http.MethodGet, "/admin/v1/users/42", "", bearer...); got.Code != 404 {
		t.Errorf("missing user code = %d", got.Code)
	}
	if got := do(t, r, http.MethodGet, "/admin/v1/users/abc", "", bearer...); got.Code != 400 {
		t.Errorf("bad id code = %d", got.Code)
	}
	// 尚未写入任何告警
	if got := do(t, r, http.MethodGet, "/admin/v1/alerts", "", bearer...); got.Code != 503 {
		t.Errorf("alerts code = %d, want 503", got.Code)
	}
}

func TestAdmin_RejectsNonAdminRole(t *testing.T) {
	e := newEnv(t)
	r, j := newAdmin(t, e)
	tok, err := j.Issue("1", "user")
	if err != nil {
		t.Fatal(err)
	}
	if got := do(t, r, http.MethodGet, "/admin/v1/listings", "", "Authorization", "Bearer "+tok); got.Code != 403 {
		t.Errorf("code = %d, want 403", got.Code)
	}
}

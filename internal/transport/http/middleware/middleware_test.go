package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"property-alerts/internal/core/auth"
)

func init() { gin.SetMode(gin.TestMode) }

var errBoom = errors.New("boom")

func serve(r *gin.Engine, req *http.Request) (*httptest.ResponseRecorder, int) {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var body struct {
		Code int `json:"code"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return w, body.Code
}

func ok(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"code": 0}) }

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	var seen string
	r.GET("/", func(c *gin.Context) { seen = c.GetString(KeyRequestID); ok(c) })

	w, _ := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	if rid := w.Header().Get(KeyRequestID); rid == "" || rid != seen {
		t.Errorf("generated rid = %q, ctx = %q", rid, seen)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(KeyRequestID, "abc")
	if w, _ := serve(r, req); w.Header().Get(KeyRequestID) != "abc" {
		t.Errorf("incoming rid not echoed: %q", w.Header().Get(KeyRequestID))
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(KeyRequestID, strings.Repeat("x", 65))
	if w, _ := serve(r, req); len(w.Header().Get(KeyRequestID)) != 36 {
		t.Errorf("oversized rid kept: %q", w.Header().Get(KeyRequestID))
	}
}

func TestRequestIDFrom(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	var got string
	r.GET("/", func(c *gin.Context) { got = RequestIDFrom(c.Request.Context()); ok(c) })
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(KeyRequestID, "rid-1")
	serve(r, req)
	if got != "rid-1" {
		t.Errorf("ctx rid = %q", got)
	}
}

func TestAccessLog_ErrorsRaiseLevel(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	r := gin.New()
	r.Use(RequestID(), AccessLog(zap.New(core)))
	r.GET("/health", ok)
	r.GET("/fail", func(c *gin.Context) { _ = c.Error(errBoom); ok(c) })

	serve(r, httptest.NewRequest(http.MethodGet, "/health", nil))
	serve(r, httptest.NewRequest(http.MethodGet, "/fail?token=abc", nil))
	entries := logs.FilterMessage("HTTP").All()
	if len(entries) != 1 {
		t.Fatalf("entries = %v", entries)
	}
	e := entries[0]
	if e.Level != zap.WarnLevel || e.ContextMap()["query"] != "token=%2A%2A%2A%2A" {
		t.Errorf("entry = %v %v", e.Level, e.ContextMap())
	}
}

func TestAuthJWT(t *testing.T) {
	j, err := auth.New("k", "property-alerts", time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	r := gin.New()
	r.Use(AuthJWT(j, auth.RoleAdmin))
	r.GET("/", func(c *gin.Context) {
		if c.GetString(auth.CtxSubject) != "root" {
			t.Errorf("subject = %q", c.GetString(auth.CtxSubject))
		}
		ok(c)
	})

	admin, _ := j.Issue("root", auth.RoleAdmin)
	user, _ := j.Issue("root", "user")
	cases := []struct {
		name, header string
		want         int
	}{
		{"missing", "", 401},
		{"garbage", "Bearer nope", 401},
		{"wrong role", "Bearer " + user, 403},
		{"admin", "Bearer " + admin, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if c.header != "" {
				req.Header.Set("Authorization", c.header)
			}
			if _, code := serve(r, req); code != c.want {
				t.Errorf("code = %d, want %d", code, c.want)
			}
		})
	}
}

func TestRateLimitPerIP(t *testing.T) {
	r := gin.New()
	r.Use(RateLimitPerIP(0.001, 2))
	r.GET("/", ok)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		_, code := serve(r, req)
		codes = append(codes, code)
	}
	if codes[0] != 0 || codes[1] != 0 || codes[2] != 429 {
		t.Errorf("codes = %v", codes)
	}

	other := httptest.NewRequest(http.MethodGet, "/", nil)
	other.RemoteAddr = "10.0.0.2:1234"
	if _, code := serve(r, other); code != 0 {
		t.Errorf("other ip limited: %d", code)
	}
}

func TestRecovery(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	r := gin.New()
	r.Use(RequestID(), Recovery(zap.New(core)))
	r.GET("/", func(*gin.Context) { panic("boom") })

	w, code := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusOK || code != 500 {
		t.Errorf("status=%d code=%d", w.Code, code)
	}
	if logs.FilterMessage("panic recovered").Len() != 1 {
		t.Errorf("logs = %v", logs.All())
	}
}

func TestMaxBodyBytes(t *testing.T) {
	r := gin.New()
	r.Use(MaxBodyBytes(8))
	r.POST("/", func(c *gin.Context) {
		var v map[string]any
		if err := c.ShouldBindJSON(&v); err != nil {
			c.JSON(http.StatusOK, gin.H{"code": 400})
			return
		}
		ok(c)
	})
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"description":"much too long"}`))
	req.Header.Set("Content-Type", "application/json")
	if _, code := serve(r, req); code != 400 {
		t.Errorf("code = %d, want 400", code)
	}
}

package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"lamf-backoffice/internal/infrastructure/cache"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

const validID = "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"

// helper: new Echo with the middleware and a simple route
func setupEcho(store Replayer, ttl time.Duration, handler echo.HandlerFunc) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(Idempotency(store, ttl))
	e.POST("/loans/:id/repayments", handler)
	e.GET("/loans/:id", handler) // for non-mutating bypass test
	return e
}

func mkJSONBody(t *testing.T, v any) io.Reader {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return bytes.NewReader(b)
}

func doReq(t *testing.T, e *echo.Echo, method, path string, body io.Reader, hdr map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func newStore(t *testing.T) (*miniredis.Miniredis, *cache.ReplayStore) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, cache.NewReplayStore(rdb, "idemp:lamf:")
}

func validHeaders() map[string]string {
	return map[string]string{
		HeaderRequestID: validID,
		HeaderRequestAt: time.Now().UTC().Format(time.RFC3339),
	}
}

func okCreatedHandler(calls *int32) echo.HandlerFunc {
	return func(c echo.Context) error {
		n := atomic.AddInt32(calls, 1)
		return c.JSON(http.StatusCreated, map[string]any{"ok": true, "call": n})
	}
}

func Test_BypassOnGET_NoHeadersRequired(t *testing.T) {
	_, store := newStore(t)
	e := setupEcho(store, 30*time.Second, func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "get ok"})
	})
	rec := doReq(t, e, http.MethodGet, "/loans/L1", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func Test_ValidationFailures(t *testing.T) {
	_, store := newStore(t)
	var calls int32
	e := setupEcho(store, 30*time.Second, okCreatedHandler(&calls))

	tests := []struct {
		name string
		hdr  map[string]string
	}{
		{"missing request id", map[string]string{HeaderRequestAt: time.Now().UTC().Format(time.RFC3339)}},
		{"invalid request id", map[string]string{HeaderRequestID: "NOT-VALID", HeaderRequestAt: time.Now().UTC().Format(time.RFC3339)}},
		{"missing request at", map[string]string{HeaderRequestID: validID}},
		{"bad request at", map[string]string{HeaderRequestID: validID, HeaderRequestAt: "not-a-time"}},
		{"skewed past", map[string]string{HeaderRequestID: validID, HeaderRequestAt: time.Now().UTC().Add(-maxClockSkew - time.Minute).Format(time.RFC3339)}},
		{"skewed future", map[string]string{HeaderRequestID: validID, HeaderRequestAt: time.Now().UTC().Add(maxClockSkew + time.Minute).Format(time.RFC3339)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doReq(t, e, http.MethodPost, "/loans/L1/repayments", mkJSONBody(t, map[string]int{"amount": 1}), tt.hdr)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("want 400, got %d", rec.Code)
			}
		})
	}
	if calls != 0 {
		t.Fatalf("handler must not run on header failures, ran %d times", calls)
	}
}

func Test_HappyPath_ThenReplay(t *testing.T) {
	mr, store := newStore(t)
	var calls int32
	e := setupEcho(store, 30*time.Second, okCreatedHandler(&calls))

	body := map[string]any{"amount": "200000"}
	rec1 := doReq(t, e, http.MethodPost, "/loans/L1/repayments", mkJSONBody(t, body), validHeaders())
	if rec1.Code != http.StatusCreated {
		t.Fatalf("first call want 201, got %d body=%s", rec1.Code, rec1.Body.String())
	}
	rec2 := doReq(t, e, http.MethodPost, "/loans/L1/repayments", mkJSONBody(t, body), validHeaders())
	if rec2.Code != http.StatusCreated {
		t.Fatalf("replay want 201, got %d", rec2.Code)
	}
	if rec1.Body.String() != rec2.Body.String() {
		t.Fatalf("replayed body differs: %q vs %q", rec1.Body.String(), rec2.Body.String())
	}
	if calls != 1 {
		t.Fatalf("handler ran %d times, want 1", calls)
	}

	key := "idemp:lamf:" + buildKey(http.MethodPost, "/loans/:id/repayments", "", validID)
	if ttl := mr.TTL(key); ttl != 30*time.Second {
		t.Fatalf("final ttl = %v", ttl)
	}
}

func Test_InProgressConflict(t *testing.T) {
	_, store := newStore(t)
	key := buildKey(http.MethodPost, "/loans/:id/repayments", "", validID)
	body := []byte(`{"amount":"1"}`)
	if ok, err := store.Reserve(context.Background(), key, cache.Entry{InProgress: true, BodySHA256: bodyHash(body)}, time.Minute); err != nil || !ok {
		t.Fatalf("pre-reserve: %v %v", ok, err)
	}

	var calls int32
	e := setupEcho(store, 30*time.Second, okCreatedHandler(&calls))
	rec := doReq(t, e, http.MethodPost, "/loans/L1/repayments", bytes.NewReader(body), validHeaders())
	if rec.Code != http.StatusConflict {
		t.Fatalf("want 409 in progress, got %d", rec.Code)
	}
	if calls != 0 {
		t.Fatal("handler must not run while another request holds the key")
	}
}

func Test_SameRequestID_DifferentBody(t *testing.T) {
	_, store := newStore(t)
	var calls int32
	e := setupEcho(store, 30*time.Second, okCreatedHandler(&calls))

	rec := doReq(t, e, http.MethodPost, "/loans/L1/repayments", mkJSONBody(t, map[string]string{"amount": "1"}), validHeaders())
	if rec.Code != http.StatusCreated {
		t.Fatalf("first want 201, got %d", rec.Code)
	}
	rec = doReq(t, e, http.MethodPost, "/loans/L1/repayments", mkJSONBody(t, map[string]string{"amount": "2"}), validHeaders())
	if rec.Code != http.StatusConflict {
		t.Fatalf("different body want 409, got %d", rec.Code)
	}
}

func Test_ServerErrorReleasesKey(t *testing.T) {
	mr, store := newStore(t)
	var calls int32
	e := setupEcho(store, 30*time.Second, func(c echo.Context) error {
		if atomic.AddInt32(&calls, 1) == 1 {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db down"})
		}
		return c.JSON(http.StatusCreated, map[string]bool{"ok": true})
	})

	body := map[string]string{"amount": "1"}
	rec := doReq(t, e, http.MethodPost, "/loans/L1/repayments", mkJSONBody(t, body), validHeaders())
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("want 500, got %d", rec.Code)
	}
	if len(mr.Keys()) != 0 {
		t.Fatalf("key must be released after 5xx, have %v", mr.Keys())
	}
	rec = doReq(t, e, http.MethodPost, "/loans/L1/repayments", mkJSONBody(t, body), validHeaders())
	if rec.Code != http.StatusCreated || calls != 2 {
		t.Fatalf("retry want 201 and second call, got %d calls=%d", rec.Code, calls)
	}
}

func Test_BusinessErrorIsReplayed(t *testing.T) {
	_, store := newStore(t)
	var calls int32
	e := setupEcho(store, 30*time.Second, func(c echo.Context) error {
		atomic.AddInt32(&calls, 1)
		return c.JSON(http.StatusConflict, map[string]string{"error": "loan is closed"})
	})
	for i := 0; i < 2; i++ {
		rec := doReq(t, e, http.MethodPost, "/loans/L1/repayments", mkJSONBody(t, map[string]string{"amount": "1"}), validHeaders())
		if rec.Code != http.StatusConflict {
			t.Fatalf("call %d: want 409, got %d", i, rec.Code)
		}
	}
	if calls != 1 {
		t.Fatalf("4xx responses are final; handler ran %d times", calls)
	}
}

func Test_ScopeSeparatesRoles(t *testing.T) {
	_, store := newStore(t)
	var calls int32
	e := echo.New()
	e.POST("/loans/:id/repayments", okCreatedHandler(&calls), func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(roleKey, Role(c.Request().Header.Get("X-Test-Role")))
			return next(c)
		}
	}, Idempotency(store, time.Minute))

	for _, role := range []string{string(RoleAdmin), string(RolePartner)} {
		h := validHeaders()
		h["X-Test-Role"] = role
		rec := doReq(t, e, http.MethodPost, "/loans/L1/repayments", mkJSONBody(t, map[string]string{"amount": "1"}), h)
		if rec.Code != http.StatusCreated {
			t.Fatalf("%s: want 201, got %d", role, rec.Code)
		}
	}
	if calls != 2 {
		t.Fatalf("same request id under different roles must not collide, calls=%d", calls)
	}
}

type failingStore struct{}

func (failingStore) Reserve(context.Context, string, cache.Entry, time.Duration) (bool, error) {
	return false, errors.New("connection refused")
}
func (failingStore) Load(context.Context, string) (cache.Entry, error) {
	return cache.Entry{}, cache.ErrNoEntry
}
func (failingStore) Save(context.Context, string, cache.Entry, time.Duration) error { return nil }
func (failingStore) Release(context.Context, string) error                          { return nil }

func Test_StoreUnavailable(t *testing.T) {
	var calls int32
	e := setupEcho(failingStore{}, 30*time.Second, okCreatedHandler(&calls))
	rec := doReq(t, e, http.MethodPost, "/loans/L1/repayments", mkJSONBody(t, map[string]string{"amount": "1"}), validHeaders())
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("want 503, got %d", rec.Code)
	}
}

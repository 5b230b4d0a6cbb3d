package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/oauth2"

	"github.com/spindleapp/spindle/internal/db"
)

// memSessionStore is a map-backed session row store honoring ExpiresAt the
// way the database query does.
type memSessionStore struct {
	rows map[string]*db.Session
	now  func() time.Time
}

func newMemSessionStore() *memSessionStore {
	return &memSessionStore{rows: make(map[string]*db.Session), now: time.Now}
}

func (m *memSessionStore) Create(_ context.Context, session *db.Session) error {
	copied := *session
	m.rows[session.ID] = &copied
	return nil
}

func (m *memSessionStore) Get(_ context.Context, id string) (*db.Session, error) {
	row, ok := m.rows[id]
	if !ok || !row.ExpiresAt.After(m.now()) {
		return nil, db.ErrNotFound
	}
	copied := *row
	return &copied, nil
}

func (m *memSessionStore) Delete(_ context.Context, id string) error {
	delete(m.rows, id)
	return nil
}

func (m *memSessionStore) UpdateToken(_ context.Context, id, accessToken, refreshToken string, expiry time.Time) error {
	row, ok := m.rows[id]
	if !ok {
		return db.ErrNotFound
	}
	row.AccessToken = accessToken
	row.RefreshToken = refreshToken
	row.TokenExpiry = expiry
	return nil
}

type memUserGetter struct {
	users map[string]*db.User
}

func (m *memUserGetter) Get(_ context.Context, id string) (*db.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	return user, nil
}

func newTestSessions() (*Sessions, *memSessionStore) {
	store := newMemSessionStore()
	users := &memUserGetter{users: map[string]*db.User{
		"user-1": {ID: "user-1", DisplayName: "Ada"},
	}}
	return &Sessions{store: store, users: users}, store
}

func testToken() *oauth2.Token {
	return &oauth2.Token{
		AccessToken:  "access-1",
		RefreshToken: "refresh-1",
		Expiry:       time.Now().Add(time.Hour),
	}
}

func TestSessionsCreateAndGet(t *testing.T) {
	ctx := context.Background()
	sessions, store := newTestSessions()

	created, err := sessions.Create(ctx, testToken(), "user-1", "Ada")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	row := store.rows[created.ID]
	if row == nil {
		t.Fatal("no session row stored")
	}
	if row.AccessToken != "access-1" || row.RefreshToken != "refresh-1" {
		t.Errorf("stored tokens = %q/%q, want access-1/refresh-1", row.AccessToken, row.RefreshToken)
	}
	if want := row.CreatedAt.Add(sessionTTL); !row.ExpiresAt.Equal(want) {
		t.Errorf("ExpiresAt = %v, want CreatedAt+TTL %v", row.ExpiresAt, want)
	}

	got := sessions.Get(ctx, created.ID)
	if got == nil {
		t.Fatal("Get returned nil for a live session")
	}
	if got.UserID != "user-1" || got.UserName != "Ada" {
		t.Errorf("session user = %q/%q, want user-1/Ada", got.UserID, got.UserName)
	}
	if got.Token.AccessToken != "access-1" || got.Token.TokenType != "Bearer" {
		t.Errorf("token = %q type %q, want access-1 type Bearer", got.Token.AccessToken, got.Token.TokenType)
	}
}

func TestSessionsGetUnknown(t *testing.T) {
	sessions, _ := newTestSessions()
	if got := sessions.Get(context.Background(), "nope"); got != nil {
		t.Fatalf("Get unknown = %+v, want nil", got)
	}
}

func TestSessionsGetExpired(t *testing.T) {
	ctx := context.Background()
	sessions, store := newTestSessions()

	created, err := sessions.Create(ctx, testToken(), "user-1", "Ada")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	store.now = func() time.Time { return time.Now().Add(sessionTTL + time.Minute) }

	if got := sessions.Get(ctx, created.ID); got != nil {
		t.Fatalf("Get expired = %+v, want nil", got)
	}
}

func TestSessionsDelete(t *testing.T) {
	ctx := context.Background()
	sessions, _ := newTestSessions()

	created, err := sessions.Create(ctx, testToken(), "user-1", "Ada")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	sessions.Delete(ctx, created.ID)
	if got := sessions.Get(ctx, created.ID); got != nil {
		t.Fatalf("Get after delete = %+v, want nil", got)
	}
}

func TestSessionsUpdateToken(t *testing.T) {
	ctx := context.Background()
	sessions, _ := newTestSessions()

	created, err := sessions.Create(ctx, testToken(), "user-1", "Ada")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	refreshed := &oauth2.Token{
		AccessToken:  "access-2",
		RefreshToken: "refresh-2",
		Expiry:       time.Now().Add(2 * time.Hour),
	}
	sessions.UpdateToken(ctx, created.ID, refreshed)

	got := sessions.Get(ctx, created.ID)
	if got == nil {
		t.Fatal("Get returned nil after token update")
	}
	if got.Token.AccessToken != "access-2" || got.Token.RefreshToken != "refresh-2" {
		t.Errorf("token = %q/%q, want access-2/refresh-2", got.Token.AccessToken, got.Token.RefreshToken)
	}
}

func TestSessionsGetFromRequest(t *testing.T) {
	ctx := context.Background()
	sessions, _ := newTestSessions()

	created, err := sessions.Create(ctx, testToken(), "user-1", "Ada")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	r := httptest.NewRequest(http.MethodGet, "/api/streak", nil)
	r.AddCookie(&http.Cookie{Name: sessionCookieName, Value: created.ID})
	if got := sessions.GetFromRequest(r); got == nil || got.ID != created.ID {
		t.Fatalf("GetFromRequest = %+v, want session %s", got, created.ID)
	}

	bare := httptest.NewRequest(http.MethodGet, "/api/streak", nil)
	if got := sessions.GetFromRequest(bare); got != nil {
		t.Fatalf("GetFromRequest without cookie = %+v, want nil", got)
	}
}

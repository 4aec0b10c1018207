package repository

import (
	"context"
	"testing"
	"time"
)

func TestSessionRepositoryWithoutRedis(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionRepository(nil)
	if repo.Enabled() {
		t.Fatal("nil client must disable sessions")
	}

	session := &SessionData{UserID: 1, Email: "a@example.com", CreatedAt: time.Now(), ExpiresAt: time.Now().Add(time.Hour)}
	if err := repo.Save(ctx, "abc", session); err != nil {
		t.Fatalf("save: %v", err)
	}
	live, err := repo.Exists(ctx, "abc")
	if err != nil || !live {
		t.Fatalf("stateless sessions are always live, got %v %v", live, err)
	}
	if err := repo.Delete(ctx, "abc"); err != nil {
		t.Fatalf("delete: %v", err)
	}
}

func TestSessionKey(t *testing.T) {
	if got := sessionKey("jti-1"); got != "session:jti-1" {
		t.Fatalf("unexpected key %q", got)
	}
}

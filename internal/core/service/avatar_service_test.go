package service

import (
	"context"
	"reflect"
	"testing"

	"github.com/rs/zerolog"

	"github.com/mkx/community/internal/core/domain"
)

func TestAvatarService_SetAvatar_Propagates(t *testing.T) {
	sessions := &stubSessionRepo{session: domain.NewSession(zhang)}
	accounts := &stubAccountRepo{accounts: []domain.Account{zhang, li}}
	posts := seededPosts()
	svc := NewAvatarService(sessions, accounts, posts, zerolog.Nop())

	res, err := svc.SetAvatar(context.Background(), domain.NewSession(zhang), "data:image/png;base64,AAAA")
	if err != nil {
		t.Fatalf("SetAvatar returned error: %v", err)
	}
	if !res.AccountUpdated || res.PostsUpdated != 2 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if sessions.session.Avatar != "data:image/png;base64,AAAA" {
		t.Fatalf("session avatar not updated")
	}
	if accounts.accounts[0].Avatar != "data:image/png;base64,AAAA" || accounts.accounts[1].Avatar != "" {
		t.Fatalf("only the matching account should change: %+v", accounts.accounts)
	}
	for _, p := range posts.posts {
		want := ""
		if p.Author.ID == "u1" {
			want = "data:image/png;base64,AAAA"
		}
		if p.Author.Avatar != want {
			t.Fatalf("post %s: expected avatar %q, got %q", p.ID, want, p.Author.Avatar)
		}
	}
}

func TestAvatarService_SetAvatar_MissingAccount(t *testing.T) {
	sessions := &stubSessionRepo{}
	accounts := &stubAccountRepo{accounts: []domain.Account{li}}
	posts := seededPosts()
	svc := NewAvatarService(sessions, accounts, posts, zerolog.Nop())

	res, err := svc.SetAvatar(context.Background(), domain.NewSession(zhang), "b.png")
	if err != nil {
		t.Fatalf("SetAvatar returned error: %v", err)
	}
	if res.AccountUpdated || accounts.saves != 0 {
		t.Fatalf("users record must be left alone when the account is gone")
	}
	if sessions.session == nil || sessions.session.Avatar != "b.png" {
		t.Fatalf("session should still be updated")
	}
	if res.PostsUpdated != 2 {
		t.Fatalf("posts should still be swept, got %d", res.PostsUpdated)
	}
}

func TestAvatarService_SetAvatar_Rejects(t *testing.T) {
	sessions := &stubSessionRepo{}
	posts := seededPosts()
	svc := NewAvatarService(sessions, &stubAccountRepo{}, posts, zerolog.Nop())

	if _, err := svc.SetAvatar(context.Background(), nil, "x.png"); err != domain.ErrNotAuthenticated {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
	if _, err := svc.SetAvatar(context.Background(), domain.NewSession(zhang), ""); err != domain.ErrMissingAvatar {
		t.Fatalf("expected ErrMissingAvatar, got %v", err)
	}
	if sessions.saves != 0 || posts.saves != 0 {
		t.Fatalf("rejected avatar must not write")
	}
}

func TestAvatarService_SetAvatar_NoPosts(t *testing.T) {
	svc := NewAvatarService(&stubSessionRepo{}, &stubAccountRepo{accounts: []domain.Account{zhang}}, &stubPostRepo{}, zerolog.Nop())

	res, err := svc.SetAvatar(context.Background(), domain.NewSession(zhang), "c.png")
	if err != nil || res.PostsUpdated != 0 {
		t.Fatalf("unexpected result: %+v (%v)", res, err)
	}
}

func TestAvatarService_SetAvatar_RepeatIsNoOp(t *testing.T) {
	sessions := &stubSessionRepo{session: domain.NewSession(zhang)}
	accounts := &stubAccountRepo{accounts: []domain.Account{zhang, li}}
	posts := seededPosts()
	svc := NewAvatarService(sessions, accounts, posts, zerolog.Nop())
	ctx := context.Background()

	if _, err := svc.SetAvatar(ctx, domain.NewSession(zhang), "a.png"); err != nil {
		t.Fatalf("first SetAvatar: %v", err)
	}
	second, err := svc.SetAvatar(ctx, sessions.session, "b.png")
	if err != nil {
		t.Fatalf("second SetAvatar: %v", err)
	}
	wantSession := cloneSession(sessions.session)
	wantAccounts := append([]domain.Account(nil), accounts.accounts...)
	wantPosts := clonePosts(posts.posts)

	third, err := svc.SetAvatar(ctx, sessions.session, "b.png")
	if err != nil {
		t.Fatalf("third SetAvatar: %v", err)
	}

	if !reflect.DeepEqual(sessions.session, wantSession) {
		t.Fatalf("session changed: %+v != %+v", sessions.session, wantSession)
	}
	if !reflect.DeepEqual(accounts.accounts, wantAccounts) {
		t.Fatalf("accounts changed: %+v != %+v", accounts.accounts, wantAccounts)
	}
	if !reflect.DeepEqual(posts.posts, wantPosts) {
		t.Fatalf("posts changed: %+v != %+v", posts.posts, wantPosts)
	}
	if third.AccountUpdated != second.AccountUpdated || third.PostsUpdated != second.PostsUpdated {
		t.Fatalf("results differ: %+v vs %+v", third, second)
	}
	if wantSession.Avatar != "b.png" {
		t.Fatalf("expected b.png, got %q", wantSession.Avatar)
	}
}

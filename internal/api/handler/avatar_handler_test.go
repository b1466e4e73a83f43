package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/mkx/community/internal/api/middleware"
	"github.com/mkx/community/internal/core/domain"
	"github.com/mkx/community/internal/core/ports"
)

type stubAvatarService struct {
	setFn func(ctx context.Context, s *domain.Session, image string) (*ports.AvatarResult, error)
}

func (s *stubAvatarService) SetAvatar(ctx context.Context, session *domain.Session, image string) (*ports.AvatarResult, error) {
	return s.setFn(ctx, session, image)
}

func TestAvatarHandler_Set(t *testing.T) {
	session := domain.NewSession(domain.Account{ID: "u1", Username: "张三"})
	stub := &stubAvatarService{setFn: func(ctx context.Context, s *domain.Session, image string) (*ports.AvatarResult, error) {
		if image != "data:image/png;base64,iVBORw0KGgo=" {
			t.Fatalf("unexpected image %q", image)
		}
		updated := domain.NewSession(s.Account)
		updated.Avatar = image
		return &ports.AvatarResult{Session: updated, AccountUpdated: true, PostsUpdated: 2}, nil
	}}
	handler := NewAvatarHandler(stub)

	c, rec := newJSONContext(http.MethodPut, "/account/avatar", `{"image":"data:image/png;base64,iVBORw0KGgo="}`)
	c.Set(middleware.SessionKey, session)
	if err := handler.Set(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	resp := decode(t, rec)
	if resp["posts_updated"] != float64(2) || resp["account_updated"] != true {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp["notice"].(map[string]any)["refresh"] != true {
		t.Fatalf("avatar change should ask for a refresh")
	}
}

func TestAvatarHandler_Set_RejectsNonImage(t *testing.T) {
	stub := &stubAvatarService{setFn: func(context.Context, *domain.Session, string) (*ports.AvatarResult, error) {
		t.Fatalf("should not be called")
		return nil, nil
	}}
	handler := NewAvatarHandler(stub)

	c, _ := newJSONContext(http.MethodPut, "/account/avatar", `{"image":"not an image"}`)
	err := handler.Set(c)
	if he, ok := err.(*echo.HTTPError); !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestAvatarHandler_Set_EmptyGoesToService(t *testing.T) {
	stub := &stubAvatarService{setFn: func(context.Context, *domain.Session, string) (*ports.AvatarResult, error) {
		return nil, domain.ErrMissingAvatar
	}}
	handler := NewAvatarHandler(stub)

	c, _ := newJSONContext(http.MethodPut, "/account/avatar", `{}`)
	if err := handler.Set(c); err != domain.ErrMissingAvatar {
		t.Fatalf("expected ErrMissingAvatar, got %v", err)
	}
}

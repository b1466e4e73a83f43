package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/mkx/community/internal/core/domain"
)

var errStoreDown = errors.New("store down")

type stubAccountRepo struct {
	accounts []domain.Account
	saves    int
	saveErr  error
}

func (r *stubAccountRepo) List(_ context.Context) ([]domain.Account, error) {
	return append([]domain.Account(nil), r.accounts...), nil
}

func (r *stubAccountRepo) SaveAll(_ context.Context, accounts []domain.Account) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.saves++
	r.accounts = append([]domain.Account(nil), accounts...)
	return nil
}

type stubSessionRepo struct {
	session *domain.Session
	saves   int
}

func cloneSession(s *domain.Session) *domain.Session {
	if s == nil {
		return nil
	}
	clone := *s
	return &clone
}

func (r *stubSessionRepo) Load(_ context.Context) (*domain.Session, error) {
	return cloneSession(r.session), nil
}

func (r *stubSessionRepo) Save(_ context.Context, s *domain.Session) error {
	r.saves++
	r.session = cloneSession(s)
	return nil
}

func (r *stubSessionRepo) Clear(_ context.Context) error {
	r.session = nil
	return nil
}

type stubPostRepo struct {
	posts []domain.Post
	saves int
}

func clonePosts(posts []domain.Post) []domain.Post {
	out := make([]domain.Post, len(posts))
	for i, p := range posts {
		p.LikedBy = append([]string{}, p.LikedBy...)
		out[i] = p
	}
	return out
}

func (r *stubPostRepo) List(_ context.Context) ([]domain.Post, error) {
	return clonePosts(r.posts), nil
}

func (r *stubPostRepo) SaveAll(_ context.Context, posts []domain.Post) error {
	r.saves++
	r.posts = clonePosts(posts)
	return nil
}

type seqIDs struct {
	next int
}

func (g *seqIDs) Next() string {
	g.next++
	return "id-" + strconv.Itoa(g.next)
}

func fixedClock() time.Time {
	return time.Date(2024, 5, 1, 8, 30, 0, 123456789, time.UTC)
}

package handler

import (
	"github.com/mkx/community/internal/core/domain"
	"github.com/mkx/community/internal/core/ports"
)

// --- Request → Service input ---

func toRegisterInput(req registerRequest) ports.RegisterInput {
	return ports.RegisterInput{
		Username:        req.Username,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	}
}

func toCreatePostInput(req createPostRequest) ports.CreatePostInput {
	return ports.CreatePostInput{
		Title:       req.Title,
		Category:    req.Category,
		Content:     req.Content,
		Links:       req.Links,
		ContentType: req.ContentType,
	}
}

// --- Service result → HTTP response ---

// toAccountResponse drops the password.
func toAccountResponse(a domain.Account) *accountResponse {
	return &accountResponse{
		ID:        a.ID,
		Username:  a.Username,
		Email:     a.Email,
		Avatar:    a.Avatar,
		CreatedAt: a.CreatedAt.UTC(),
	}
}

func toSessionResponse(s *domain.Session) *accountResponse {
	if s.Anonymous() {
		return nil
	}
	return toAccountResponse(s.Account)
}

func toAuthorResponse(a domain.Author) authorResponse {
	return authorResponse{ID: a.ID, Username: a.Username, Avatar: a.Avatar}
}

func toPostResponse(p domain.Post) postResponse {
	comments := make([]commentResponse, 0, len(p.Comments))
	for _, c := range p.Comments {
		comments = append(comments, commentResponse{
			ID:        c.ID,
			Author:    toAuthorResponse(c.Author),
			Content:   c.Content,
			CreatedAt: c.CreatedAt.UTC(),
		})
	}
	links := p.Links
	if links == nil {
		links = []string{}
	}
	likedBy := p.LikedBy
	if likedBy == nil {
		likedBy = []string{}
	}
	return postResponse{
		ID:          p.ID,
		Title:       p.Title,
		Category:    p.Category,
		Content:     p.Content,
		Links:       links,
		ContentType: p.ContentType,
		Author:      toAuthorResponse(p.Author),
		CreatedAt:   p.CreatedAt.UTC(),
		UpdatedAt:   p.UpdatedAt.UTC(),
		Views:       p.Views,
		Likes:       p.Likes,
		LikedBy:     likedBy,
		Comments:    comments,
	}
}

func toPostResponses(posts []domain.Post) []postResponse {
	out := make([]postResponse, 0, len(posts))
	for _, p := range posts {
		out = append(out, toPostResponse(p))
	}
	return out
}

package domain

import (
	"strings"
	"time"
)

// Author is the denormalized author snapshot stored inside a post. It is
// taken from the session at creation time and only changes through an
// explicit avatar propagation sweep.
type Author struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar,omitempty"`
}

// Comment is a single reply attached to a post.
type Comment struct {
	ID        string    `json:"id"`
	Author    Author    `json:"author"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// Post is a user-submitted feed item.
type Post struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Category    string    `json:"category"`
	Content     string    `json:"content"`
	Links       []string  `json:"links"`
	ContentType string    `json:"contentType"`
	Author      Author    `json:"author"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	Views       int       `json:"views"`
	Likes       int       `json:"likes"`
	LikedBy     []string  `json:"likedBy"`
	Comments    []Comment `json:"comments"`
}

// ParseLinks splits a comma-delimited input into trimmed, non-empty links.
// The result is never nil.
func ParseLinks(raw string) []string {
	links := []string{}
	for _, part := range strings.Split(raw, ",") {
		if l := strings.TrimSpace(part); l != "" {
			links = append(links, l)
		}
	}
	return links
}

// LikedByAccount reports whether accountID is in the post's likedBy set.
func (p *Post) LikedByAccount(accountID string) bool {
	for _, id := range p.LikedBy {
		if id == accountID {
			return true
		}
	}
	return false
}

// ToggleLike adds or removes accountID from likedBy and keeps Likes equal
// to the set size. It returns true when the account now likes the post.
func (p *Post) ToggleLike(accountID string) bool {
	liked := p.LikedByAccount(accountID)
	if liked {
		kept := p.LikedBy[:0]
		for _, id := range p.LikedBy {
			if id != accountID {
				kept = append(kept, id)
			}
		}
		p.LikedBy = kept
	} else {
		p.LikedBy = append(p.LikedBy, accountID)
	}
	p.Likes = len(p.LikedBy)
	return !liked
}

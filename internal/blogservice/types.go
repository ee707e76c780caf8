package blogservice

import (
	"context"
	"database/sql"
	"time"

	"github.com/sushihentaime/bloglist/internal/common"
)

// Owner is the public projection of the user who created a blog.
type Owner struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

type Comment struct {
	ID        int       `json:"id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

type Blog struct {
	ID     int    `json:"id"`
	Title  string `json:"title"`
	URL    string `json:"url"`
	Author string `json:"author"`
	Likes  int    `json:"likes"`
	UserID int    `json:"-"`
	// User is nil when the blog is nested under its owner.
	User      *Owner    `json:"user,omitempty"`
	Comments  []Comment `json:"comments"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Version   int       `json:"-"`
}

type CreateBlogRequest struct {
	Title  string `json:"title"`
	URL    string `json:"url"`
	Author string `json:"author"`
	Likes  *int   `json:"likes"`
	UserID int    `json:"-"`
}

// UpdateBlogRequest holds a partial update; nil fields are left untouched.
type UpdateBlogRequest struct {
	Title  *string `json:"title"`
	URL    *string `json:"url"`
	Author *string `json:"author"`
	Likes  *int    `json:"likes"`
}

type blogStore interface {
	insert(ctx context.Context, blog *Blog) error
	get(ctx context.Context, id int) (*Blog, error)
	getAll(ctx context.Context) ([]Blog, error)
	getByUser(ctx context.Context, userID int) ([]Blog, error)
	update(ctx context.Context, blog *Blog) error
	delete(ctx context.Context, id, userID int) error
	insertComment(ctx context.Context, blogID int, comment *Comment) error
}

type BlogModel struct {
	db *sql.DB
}

type BlogService struct {
	m blogStore
	c *common.Cache
}

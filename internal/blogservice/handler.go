package blogservice

import (
	"context"
	"database/sql"
	"errors"

	"github.com/sushihentaime/bloglist/internal/common"
)

var (
	// ErrNotOwner is returned when a user other than the creator tries to change a blog.
	ErrNotOwner = errors.New("only the creator can modify blogs")
	// ErrNoBlogForUser is returned when a delete restricted to the owner removed nothing.
	ErrNoBlogForUser = errors.New("no blog with this id belongs to the user")
)

func NewBlogService(db *sql.DB, c *common.Cache) *BlogService {
	return &BlogService{m: newBlogModel(db), c: c}
}

// CreateBlog stores a new blog owned by req.UserID. Likes default to zero.
func (s *BlogService) CreateBlog(ctx context.Context, req *CreateBlogRequest) (*Blog, error) {
	if err := requireTitleAndURL(req.Title, req.URL); err != nil {
		return nil, err
	}

	likes := 0
	if req.Likes != nil {
		likes = *req.Likes
	}

	v := common.NewValidator()
	validateTitle(v, req.Title)
	validateURL(v, req.URL)
	validateAuthor(v, req.Author)
	validateLikes(v, likes)
	validateInt(v, req.UserID, "user_id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	blog := &Blog{
		Title:  req.Title,
		URL:    req.URL,
		Author: req.Author,
		Likes:  likes,
		UserID: req.UserID,
	}

	if err := s.m.insert(ctx, blog); err != nil {
		return nil, err
	}

	s.c.Delete(common.CacheKeyBlogs)

	return s.m.get(ctx, blog.ID)
}

// GetBlogs returns every blog with its owner and comments.
func (s *BlogService) GetBlogs(ctx context.Context) ([]Blog, error) {
	if cached, found := s.c.Get(common.CacheKeyBlogs); found {
		if blogs, ok := cached.([]Blog); ok {
			return blogs, nil
		}
	}

	gen := s.c.Generation()
	blogs, err := s.m.getAll(ctx)
	if err != nil {
		return nil, err
	}

	s.c.SetIfCurrent(gen, common.CacheKeyBlogs, blogs)

	return blogs, nil
}

// GetBlogByID returns a blog post by its ID.
func (s *BlogService) GetBlogByID(ctx context.Context, id int) (*Blog, error) {
	v := common.NewValidator()
	validateInt(v, id, "id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	if cached, found := s.c.Get(common.CacheKeyBlog(id)); found {
		if blog, ok := cached.(Blog); ok {
			return &blog, nil
		}
	}

	gen := s.c.Generation()
	blog, err := s.m.get(ctx, id)
	if err != nil {
		return nil, err
	}

	s.c.SetIfCurrent(gen, common.CacheKeyBlog(id), *blog)

	return blog, nil
}

func (s *BlogService) GetBlogsByUserID(ctx context.Context, userID int) ([]Blog, error) {
	v := common.NewValidator()
	validateInt(v, userID, "user_id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.getByUser(ctx, userID)
}

// UpdateBlog applies a partial update. Changing the title, url or author requires
// requesterID to be the creator; likes can be changed by anyone.
func (s *BlogService) UpdateBlog(ctx context.Context, id int, req *UpdateBlogRequest, requesterID int) (*Blog, error) {
	v := common.NewValidator()
	validateInt(v, id, "id")
	if req.Title != nil {
		validateTitle(v, *req.Title)
	}
	if req.URL != nil {
		validateURL(v, *req.URL)
	}
	if req.Author != nil {
		validateAuthor(v, *req.Author)
	}
	if req.Likes != nil {
		validateLikes(v, *req.Likes)
	}
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	blog, err := s.m.get(ctx, id)
	if err != nil {
		return nil, err
	}

	contentChanged := (req.Title != nil && *req.Title != blog.Title) ||
		(req.URL != nil && *req.URL != blog.URL) ||
		(req.Author != nil && *req.Author != blog.Author)

	if contentChanged && requesterID != blog.UserID {
		return nil, ErrNotOwner
	}

	if req.Title != nil {
		blog.Title = *req.Title
	}
	if req.URL != nil {
		blog.URL = *req.URL
	}
	if req.Author != nil {
		blog.Author = *req.Author
	}
	if req.Likes != nil {
		blog.Likes = *req.Likes
	}

	if err := s.m.update(ctx, blog); err != nil {
		return nil, err
	}

	s.c.Delete(common.CacheKeyBlogs, common.CacheKeyBlog(id))

	return blog, nil
}

// DeleteBlog deletes a blog post. Only the user who created the blog post can delete it.
func (s *BlogService) DeleteBlog(ctx context.Context, id, userID int) error {
	v := common.NewValidator()
	validateInt(v, id, "id")
	validateInt(v, userID, "user_id")
	if !v.Valid() {
		return v.ValidationError()
	}

	blog, err := s.m.get(ctx, id)
	if err != nil {
		return err
	}

	if blog.UserID != userID {
		return ErrNotOwner
	}

	err = s.m.delete(ctx, id, userID)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrRecordNotFound):
			return ErrNoBlogForUser
		default:
			return err
		}
	}

	s.c.Delete(common.CacheKeyBlogs, common.CacheKeyBlog(id))

	return nil
}

// AddComment appends a sanitized comment and returns the updated blog.
func (s *BlogService) AddComment(ctx context.Context, id int, text string) (*Blog, error) {
	text = sanitizeText(text)

	v := common.NewValidator()
	validateInt(v, id, "id")
	validateComment(v, text)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	comment := &Comment{Text: text}
	if err := s.m.insertComment(ctx, id, comment); err != nil {
		return nil, err
	}

	s.c.Delete(common.CacheKeyBlogs, common.CacheKeyBlog(id))

	return s.m.get(ctx, id)
}

// GetStats summarizes all stored blogs.
func (s *BlogService) GetStats(ctx context.Context) (Stats, error) {
	blogs, err := s.GetBlogs(ctx)
	if err != nil {
		return Stats{}, err
	}

	return Summarize(blogs), nil
}

// GroupByOwner buckets blogs by owner id. The returned blogs are copies without the
// owner back-reference, ready to be nested under their user.
func GroupByOwner(blogs []Blog) map[int][]Blog {
	grouped := make(map[int][]Blog)
	for _, b := range blogs {
		b.User = nil
		grouped[b.UserID] = append(grouped[b.UserID], b)
	}

	return grouped
}

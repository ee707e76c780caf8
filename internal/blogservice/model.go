package blogservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/sushihentaime/bloglist/internal/common"
)

var ErrUserForeignKey = errors.New("user_id does not exist")

func newBlogModel(db *sql.DB) *BlogModel {
	return &BlogModel{db: db}
}

const selectBlogs = `
	SELECT b.id, b.title, b.url, b.author, b.likes, b.user_id, b.created_at, b.updated_at, b.version, u.username, u.name
	FROM blogs b
	JOIN users u ON b.user_id = u.id`

func scanBlog(row interface{ Scan(...any) error }) (*Blog, error) {
	var (
		blog  Blog
		owner Owner
	)

	err := row.Scan(&blog.ID, &blog.Title, &blog.URL, &blog.Author, &blog.Likes, &blog.UserID, &blog.CreatedAt, &blog.UpdatedAt, &blog.Version, &owner.Username, &owner.Name)
	if err != nil {
		return nil, err
	}

	owner.ID = blog.UserID
	blog.User = &owner
	blog.Comments = []Comment{}

	return &blog, nil
}

func (m *BlogModel) insert(ctx context.Context, blog *Blog) error {
	query := `
		INSERT INTO blogs (title, url, author, likes, user_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at, version`

	args := []any{blog.Title, blog.URL, blog.Author, blog.Likes, blog.UserID}

	err := m.db.QueryRowContext(ctx, query, args...).Scan(&blog.ID, &blog.CreatedAt, &blog.UpdatedAt, &blog.Version)
	if err != nil {
		switch {
		case common.ForeignKeyError(err, "blogs_user_id_fkey"):
			return ErrUserForeignKey
		default:
			return err
		}
	}

	return nil
}

// get returns a blog with its owner and comments.
func (m *BlogModel) get(ctx context.Context, id int) (*Blog, error) {
	row := m.db.QueryRowContext(ctx, selectBlogs+" WHERE b.id = $1", id)

	blog, err := scanBlog(row)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, common.ErrRecordNotFound
		default:
			return nil, err
		}
	}

	blogs := []Blog{*blog}
	if err := m.attachComments(ctx, blogs); err != nil {
		return nil, err
	}

	return &blogs[0], nil
}

// getAll returns every blog ordered by creation.
func (m *BlogModel) getAll(ctx context.Context) ([]Blog, error) {
	return m.list(ctx, selectBlogs+" ORDER BY b.id")
}

func (m *BlogModel) getByUser(ctx context.Context, userID int) ([]Blog, error) {
	return m.list(ctx, selectBlogs+" WHERE b.user_id = $1 ORDER BY b.id", userID)
}

func (m *BlogModel) list(ctx context.Context, query string, args ...any) ([]Blog, error) {
	rows, err := m.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	blogs := []Blog{}
	for rows.Next() {
		blog, err := scanBlog(rows)
		if err != nil {
			return nil, err
		}
		blogs = append(blogs, *blog)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := m.attachComments(ctx, blogs); err != nil {
		return nil, err
	}

	return blogs, nil
}

// attachComments loads the comments of every blog in one query, oldest first.
func (m *BlogModel) attachComments(ctx context.Context, blogs []Blog) error {
	if len(blogs) == 0 {
		return nil
	}

	ids := make([]int64, len(blogs))
	index := make(map[int]int, len(blogs))
	for i, b := range blogs {
		ids[i] = int64(b.ID)
		index[b.ID] = i
	}

	query := `
		SELECT id, blog_id, text, created_at
		FROM comments
		WHERE blog_id = ANY($1)
		ORDER BY id`

	rows, err := m.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("could not load comments: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			c      Comment
			blogID int
		)
		if err := rows.Scan(&c.ID, &blogID, &c.Text, &c.CreatedAt); err != nil {
			return err
		}

		i := index[blogID]
		blogs[i].Comments = append(blogs[i].Comments, c)
	}

	return rows.Err()
}

// update writes every mutable field, guarded by the version read earlier.
func (m *BlogModel) update(ctx context.Context, blog *Blog) error {
	query := `
		UPDATE blogs
		SET title = $1, url = $2, author = $3, likes = $4, updated_at = NOW(), version = version + 1
		WHERE id = $5 AND version = $6
		RETURNING updated_at, version`

	args := []any{blog.Title, blog.URL, blog.Author, blog.Likes, blog.ID, blog.Version}

	err := m.db.QueryRowContext(ctx, query, args...).Scan(&blog.UpdatedAt, &blog.Version)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return common.ErrEditConflict
		default:
			return err
		}
	}

	return nil
}

// delete removes the blog only if it belongs to userID.
func (m *BlogModel) delete(ctx context.Context, id, userID int) error {
	query := `
		DELETE FROM blogs
		WHERE id = $1 AND user_id = $2`

	res, err := m.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if rows != 1 {
		switch {
		case rows == 0:
			return common.ErrRecordNotFound
		default:
			return fmt.Errorf("expected 1 row to be affected, got %d", rows)
		}
	}

	return nil
}

func (m *BlogModel) insertComment(ctx context.Context, blogID int, comment *Comment) error {
	query := `
		INSERT INTO comments (blog_id, text)
		VALUES ($1, $2)
		RETURNING id, created_at`

	err := m.db.QueryRowContext(ctx, query, blogID, comment.Text).Scan(&comment.ID, &comment.CreatedAt)
	if err != nil {
		switch {
		case common.ForeignKeyError(err, "comments_blog_id_fkey"):
			return common.ErrRecordNotFound
		default:
			return err
		}
	}

	return nil
}

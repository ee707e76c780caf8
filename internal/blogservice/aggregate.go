package blogservice

import "errors"

// ErrEmptyBlogList is returned by the aggregates that need at least one blog.
var ErrEmptyBlogList = errors.New("blog list is empty")

type Favorite struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	Likes  int    `json:"likes"`
}

type AuthorBlogs struct {
	Author string `json:"author"`
	Blogs  int    `json:"blogs"`
}

type AuthorLikes struct {
	Author string `json:"author"`
	Likes  int    `json:"likes"`
}

// Stats bundles every aggregate. The pointer fields are nil for an empty list.
type Stats struct {
	Blogs        int          `json:"blogs"`
	TotalLikes   int          `json:"total_likes"`
	FavoriteBlog *Favorite    `json:"favorite_blog"`
	MostBlogs    *AuthorBlogs `json:"most_blogs"`
	MostLikes    *AuthorLikes `json:"most_likes"`
}

func TotalLikes(blogs []Blog) int {
	total := 0
	for _, b := range blogs {
		total += b.Likes
	}

	return total
}

// FavoriteBlog returns the blog with the most likes. The first one wins a tie.
func FavoriteBlog(blogs []Blog) (*Favorite, error) {
	if len(blogs) == 0 {
		return nil, ErrEmptyBlogList
	}

	fav := blogs[0]
	for _, b := range blogs[1:] {
		if b.Likes > fav.Likes {
			fav = b
		}
	}

	return &Favorite{Title: fav.Title, Author: fav.Author, Likes: fav.Likes}, nil
}

// MostBlogs returns the author with the most blogs. Ties go to the author seen first.
func MostBlogs(blogs []Blog) (*AuthorBlogs, error) {
	author, count, err := maxByAuthor(blogs, func(Blog) int { return 1 })
	if err != nil {
		return nil, err
	}

	return &AuthorBlogs{Author: author, Blogs: count}, nil
}

// MostLikes returns the author with the most likes summed over their blogs. Ties go to the
// author seen first.
func MostLikes(blogs []Blog) (*AuthorLikes, error) {
	author, likes, err := maxByAuthor(blogs, func(b Blog) int { return b.Likes })
	if err != nil {
		return nil, err
	}

	return &AuthorLikes{Author: author, Likes: likes}, nil
}

// maxByAuthor sums weight per author and picks the largest total, keeping authors in the
// order they first appear.
func maxByAuthor(blogs []Blog, weight func(Blog) int) (string, int, error) {
	if len(blogs) == 0 {
		return "", 0, ErrEmptyBlogList
	}

	totals := make(map[string]int)
	var order []string
	for _, b := range blogs {
		if _, ok := totals[b.Author]; !ok {
			order = append(order, b.Author)
		}
		totals[b.Author] += weight(b)
	}

	best := order[0]
	for _, author := range order[1:] {
		if totals[author] > totals[best] {
			best = author
		}
	}

	return best, totals[best], nil
}

// Summarize computes every aggregate over blogs.
func Summarize(blogs []Blog) Stats {
	stats := Stats{
		Blogs:      len(blogs),
		TotalLikes: TotalLikes(blogs),
	}

	// the only possible error is ErrEmptyBlogList, which leaves the fields nil
	stats.FavoriteBlog, _ = FavoriteBlog(blogs)
	stats.MostBlogs, _ = MostBlogs(blogs)
	stats.MostLikes, _ = MostLikes(blogs)

	return stats
}

package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"readit/internal/models"
	"readit/internal/utils"
)

// How often we re-roll a colliding post identifier before giving up. The
// namespace (62^7) makes more than one round unlikely.
const maxIdentifierAttempts = 5

type PostService struct {
	db *gorm.DB
}

func NewPostService(db *gorm.DB) *PostService {
	return &PostService{db: db}
}

// Create inserts a post into the named sub. Identifier and slug are fixed at
// creation time; a duplicate identifier is re-rolled a bounded number of
// times against the unique index.
func (s *PostService) Create(user *models.User, title, body, subName string) (*models.Post, error) {
	var sub models.Sub
	if err := s.db.Where("name = ?", subName).First(&sub).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubNotFound
		}
		return nil, err
	}

	slug := utils.Slugify(title)
	for attempt := 0; attempt < maxIdentifierAttempts; attempt++ {
		post := models.Post{
			Identifier: utils.MakeID(7),
			Title:      title,
			Slug:       slug,
			Body:       body,
			SubName:    sub.Name,
			Username:   user.Username,
		}
		err := s.db.Omit("Sub", "User").Create(&post).Error
		if err == nil {
			post.Sub = sub
			posts := []models.Post{post}
			if err := s.Annotate(posts, user); err != nil {
				return nil, err
			}
			return &posts[0], nil
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			continue
		}
		return nil, err
	}
	return nil, fmt.Errorf("no free post identifier after %d attempts", maxIdentifierAttempts)
}

// Get loads one post by its (identifier, slug) address, with its sub and
// comments, annotated for the viewer.
func (s *PostService) Get(identifier, slug string, viewer *models.User) (*models.Post, error) {
	var post models.Post
	err := s.db.Preload("Sub").
		Preload("Comments", func(tx *gorm.DB) *gorm.DB { return tx.Order("created_at DESC") }).
		Where("identifier = ? AND slug = ?", identifier, slug).
		First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	posts := []models.Post{post}
	if err := s.Annotate(posts, viewer); err != nil {
		return nil, err
	}
	if err := s.AnnotateComments(posts[0].Comments, viewer); err != nil {
		return nil, err
	}
	return &posts[0], nil
}

// List returns one page of posts, newest first.
func (s *PostService) List(page, count int, viewer *models.User) ([]models.Post, error) {
	if count <= 0 {
		count = 8
	}
	if count > 50 {
		count = 50
	}
	if page < 0 {
		page = 0
	}

	var posts []models.Post
	err := s.db.Preload("Sub").
		Order("created_at DESC").
		Limit(count).
		Offset(page * count).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}

	if err := s.Annotate(posts, viewer); err != nil {
		return nil, err
	}
	return posts, nil
}

// ByUser returns all posts by one user, for the public profile feed.
func (s *PostService) ByUser(username string, viewer *models.User) ([]models.Post, error) {
	var posts []models.Post
	err := s.db.Preload("Sub").
		Where("username = ?", username).
		Order("created_at DESC").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	if err := s.Annotate(posts, viewer); err != nil {
		return nil, err
	}
	return posts, nil
}

// CreateComment adds a comment to the post at (identifier, slug).
func (s *PostService) CreateComment(user *models.User, identifier, slug, body string) (*models.Comment, error) {
	var post models.Post
	if err := s.db.Where("identifier = ? AND slug = ?", identifier, slug).First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	comment := models.Comment{
		Identifier: utils.MakeID(8),
		Body:       body,
		Username:   user.Username,
		PostID:     post.ID,
	}
	if err := s.db.Omit("Post", "User").Create(&comment).Error; err != nil {
		return nil, err
	}

	comments := []models.Comment{comment}
	if err := s.AnnotateComments(comments, user); err != nil {
		return nil, err
	}
	return &comments[0], nil
}

// Comments returns a post's comments, newest first, annotated for the viewer.
func (s *PostService) Comments(identifier, slug string, viewer *models.User) ([]models.Comment, error) {
	var post models.Post
	if err := s.db.Where("identifier = ? AND slug = ?", identifier, slug).First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	var comments []models.Comment
	if err := s.db.Where("post_id = ?", post.ID).Order("created_at DESC").Find(&comments).Error; err != nil {
		return nil, err
	}
	if err := s.AnnotateComments(comments, viewer); err != nil {
		return nil, err
	}
	return comments, nil
}

// CommentsByUser returns all comments by one user with their parent posts,
// for the public profile feed.
func (s *PostService) CommentsByUser(username string, viewer *models.User) ([]models.Comment, error) {
	var comments []models.Comment
	err := s.db.Preload("Post").
		Where("username = ?", username).
		Order("created_at DESC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	if err := s.AnnotateComments(comments, viewer); err != nil {
		return nil, err
	}
	return comments, nil
}

// Annotate fills the derived fields (score, comment count, viewer's vote,
// url, rendered body) on every post in place. Scores and counts come from
// batch aggregate queries, never from stored columns.
func (s *PostService) Annotate(posts []models.Post, viewer *models.User) error {
	if len(posts) == 0 {
		return nil
	}

	postIDs := make([]uint, len(posts))
	for i, p := range posts {
		postIDs[i] = p.ID
	}

	type aggRow struct {
		PostID uint
		Total  int64
	}

	var scores []aggRow
	err := s.db.Model(&models.Vote{}).
		Select("post_id, COALESCE(SUM(value), 0) AS total").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&scores).Error
	if err != nil {
		return err
	}
	scoreMap := make(map[uint]int64, len(scores))
	for _, r := range scores {
		scoreMap[r.PostID] = r.Total
	}

	var counts []aggRow
	err = s.db.Model(&models.Comment{}).
		Select("post_id, COUNT(*) AS total").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&counts).Error
	if err != nil {
		return err
	}
	countMap := make(map[uint]int64, len(counts))
	for _, r := range counts {
		countMap[r.PostID] = r.Total
	}

	userVotes := make(map[uint]int)
	if viewer != nil {
		var votes []models.Vote
		err = s.db.Where("username = ? AND post_id IN ?", viewer.Username, postIDs).Find(&votes).Error
		if err != nil {
			return err
		}
		for _, v := range votes {
			userVotes[*v.PostID] = v.Value
		}
	}

	for i := range posts {
		p := &posts[i]
		p.URL = fmt.Sprintf("/f/%s/%s/%s", p.SubName, p.Identifier, p.Slug)
		p.VoteScore = scoreMap[p.ID]
		p.CommentCount = countMap[p.ID]
		p.UserVote = userVotes[p.ID]
		if p.Body != "" {
			p.BodyHTML = utils.RenderMarkdown(p.Body)
		}
		if p.Sub.Name != "" {
			decorateSub(&p.Sub)
		}
	}
	return nil
}

// AnnotateComments is the comment-side counterpart of Annotate.
func (s *PostService) AnnotateComments(comments []models.Comment, viewer *models.User) error {
	if len(comments) == 0 {
		return nil
	}

	commentIDs := make([]uint, len(comments))
	for i, c := range comments {
		commentIDs[i] = c.ID
	}

	type aggRow struct {
		CommentID uint
		Total     int64
	}

	var scores []aggRow
	err := s.db.Model(&models.Vote{}).
		Select("comment_id, COALESCE(SUM(value), 0) AS total").
		Where("comment_id IN ?", commentIDs).
		Group("comment_id").
		Scan(&scores).Error
	if err != nil {
		return err
	}
	scoreMap := make(map[uint]int64, len(scores))
	for _, r := range scores {
		scoreMap[r.CommentID] = r.Total
	}

	userVotes := make(map[uint]int)
	if viewer != nil {
		var votes []models.Vote
		err = s.db.Where("username = ? AND comment_id IN ?", viewer.Username, commentIDs).Find(&votes).Error
		if err != nil {
			return err
		}
		for _, v := range votes {
			userVotes[*v.CommentID] = v.Value
		}
	}

	for i := range comments {
		c := &comments[i]
		c.VoteScore = scoreMap[c.ID]
		c.UserVote = userVotes[c.ID]
		c.BodyHTML = utils.RenderMarkdown(c.Body)
		if c.Post != nil {
			c.Post.URL = fmt.Sprintf("/f/%s/%s/%s", c.Post.SubName, c.Post.Identifier, c.Post.Slug)
		}
	}
	return nil
}

package services

import (
	"errors"

	"gorm.io/gorm"

	"readit/internal/models"
)

// VoteService owns the one stateful contract of the app: at most one stored
// vote per (user, target), scores always derived from the stored rows.
type VoteService struct {
	db    *gorm.DB
	posts *PostService
}

func NewVoteService(db *gorm.DB, posts *PostService) *VoteService {
	return &VoteService{db: db, posts: posts}
}

// Vote reconciles the user's vote on a post, or on a comment of that post
// when commentIdentifier is set.
//
// Requesting the value already stored retracts the vote (a second click on
// the same arrow), as does requesting 0 outright. The lookup and the
// insert/update/delete run in one transaction; the composite unique indexes
// on votes backstop concurrent requests.
//
// On success the full post is reloaded and annotated for the voter, so the
// caller always sees a self-consistent snapshot.
func (s *VoteService) Vote(user *models.User, identifier, slug, commentIdentifier string, value int) (*models.Post, error) {
	if value != -1 && value != 0 && value != 1 {
		return nil, ErrInvalidVoteValue
	}

	var post models.Post
	if err := s.db.Where("identifier = ? AND slug = ?", identifier, slug).First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	var comment *models.Comment
	if commentIdentifier != "" {
		comment = &models.Comment{}
		err := s.db.Where("identifier = ? AND post_id = ?", commentIdentifier, post.ID).First(comment).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCommentNotFound
			}
			return nil, err
		}
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		query := tx.Where("username = ?", user.Username)
		if comment != nil {
			query = query.Where("comment_id = ?", comment.ID)
		} else {
			query = query.Where("post_id = ?", post.ID)
		}

		var existing models.Vote
		err := query.First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if value == 0 {
				// Nothing to retract.
				return ErrVoteNotFound
			}
			vote := models.Vote{Username: user.Username, Value: value}
			if comment != nil {
				vote.CommentID = &comment.ID
			} else {
				vote.PostID = &post.ID
			}
			return tx.Omit("User").Create(&vote).Error
		}
		if err != nil {
			return err
		}

		// A repeated click on the same arrow toggles the vote off.
		if existing.Value == value {
			value = 0
		}
		if value == 0 {
			return tx.Delete(&existing).Error
		}
		return tx.Model(&existing).Update("value", value).Error
	})
	if err != nil {
		return nil, err
	}

	return s.posts.Get(identifier, slug, user)
}

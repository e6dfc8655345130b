package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"readit/internal/db"
	"readit/internal/models"
	"readit/internal/utils"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))
	return gdb
}

func newTestServices(t *testing.T) (*gorm.DB, *PostService, *SubService, *VoteService) {
	t.Helper()
	gdb := setupTestDB(t)
	images, err := NewImageStore(t.TempDir())
	require.NoError(t, err)
	posts := NewPostService(gdb)
	subs := NewSubService(gdb, images, posts)
	votes := NewVoteService(gdb, posts)
	return gdb, posts, subs, votes
}

func createTestUser(t *testing.T, gdb *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "hashedpassword",
	}
	require.NoError(t, gdb.Create(user).Error)
	return user
}

func createTestSub(t *testing.T, gdb *gorm.DB, owner *models.User, name string) *models.Sub {
	t.Helper()
	sub := &models.Sub{
		Name:     name,
		Title:    name + " community",
		Username: owner.Username,
	}
	require.NoError(t, gdb.Omit("User", "Posts").Create(sub).Error)
	return sub
}

func createTestPost(t *testing.T, gdb *gorm.DB, user *models.User, sub *models.Sub, title string) *models.Post {
	t.Helper()
	post := &models.Post{
		Identifier: utils.MakeID(7),
		Title:      title,
		Slug:       utils.Slugify(title),
		SubName:    sub.Name,
		Username:   user.Username,
	}
	require.NoError(t, gdb.Omit("Sub", "User", "Comments", "Votes").Create(post).Error)
	return post
}

func createTestComment(t *testing.T, gdb *gorm.DB, user *models.User, post *models.Post, body string) *models.Comment {
	t.Helper()
	comment := &models.Comment{
		Identifier: utils.MakeID(8),
		Body:       body,
		Username:   user.Username,
		PostID:     post.ID,
	}
	require.NoError(t, gdb.Omit("Post", "User", "Votes").Create(comment).Error)
	return comment
}

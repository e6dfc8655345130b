package models

// Vote targets exactly one of PostID or CommentID. A stored value is always
// -1 or 1; a retracted vote is deleted, never written as 0.
//
// The composite unique indexes hold one row per (user, target). Rows with a
// NULL target column never collide under either index (PG and sqlite treat
// NULLs as distinct), so post votes and comment votes stay independent.
type Vote struct {
	Base
	Username  string `gorm:"not null;index;uniqueIndex:idx_votes_user_post;uniqueIndex:idx_votes_user_comment" json:"username"`
	User      User   `gorm:"foreignKey:Username;references:Username;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	PostID    *uint  `gorm:"uniqueIndex:idx_votes_user_post" json:"-"`
	CommentID *uint  `gorm:"uniqueIndex:idx_votes_user_comment" json:"-"`
	Value     int    `gorm:"not null" json:"value"` // 1 or -1
}

package models

type Comment struct {
	Base
	Identifier string `gorm:"uniqueIndex;size:8;not null" json:"identifier"`
	Body       string `gorm:"type:text;not null" json:"body"`
	Username   string `gorm:"not null;index" json:"username"`
	User       User   `gorm:"foreignKey:Username;references:Username;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	PostID     uint   `gorm:"not null;index" json:"-"`
	Post       *Post  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"post,omitempty"`
	Votes      []Vote `gorm:"foreignKey:CommentID" json:"-"`

	// Derived at read time, never stored.
	BodyHTML  string `gorm:"-" json:"bodyHtml,omitempty"`
	VoteScore int64  `gorm:"-" json:"voteScore"`
	UserVote  int    `gorm:"-" json:"userVote"`
}

package models

type Post struct {
	Base
	Identifier string    `gorm:"uniqueIndex;size:7;not null" json:"identifier"`
	Title      string    `gorm:"not null" json:"title"`
	Slug       string    `gorm:"index;not null" json:"slug"`
	Body       string    `gorm:"type:text" json:"body"`
	SubName    string    `gorm:"not null;index" json:"subName"`
	Username   string    `gorm:"not null;index" json:"username"`
	Sub        Sub       `gorm:"foreignKey:SubName;references:Name;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"sub,omitzero"`
	User       User      `gorm:"foreignKey:Username;references:Username;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Comments   []Comment `gorm:"foreignKey:PostID" json:"comments,omitempty"`
	Votes      []Vote    `gorm:"foreignKey:PostID" json:"-"`

	// Derived at read time, never stored.
	URL          string `gorm:"-" json:"url"`
	BodyHTML     string `gorm:"-" json:"bodyHtml,omitempty"`
	VoteScore    int64  `gorm:"-" json:"voteScore"`
	CommentCount int64  `gorm:"-" json:"commentCount"`
	UserVote     int    `gorm:"-" json:"userVote"`
}

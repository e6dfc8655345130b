package models

// Sub is a named community grouping posts. Name keeps the case the creator
// typed; uniqueness is case-insensitive (enforced by an expression index on
// lower(name), see db.Migrate).
type Sub struct {
	Base
	Name        string `gorm:"uniqueIndex;not null" json:"name"`
	Title       string `gorm:"not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	ImageUrn    string `json:"-"`
	BannerUrn   string `json:"-"`
	Username    string `gorm:"not null;index" json:"username"` // owner
	User        User   `gorm:"foreignKey:Username;references:Username;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Posts       []Post `gorm:"foreignKey:SubName;references:Name" json:"posts,omitempty"`

	// Derived at read time, never stored.
	ImageURL  string `gorm:"-" json:"imageUrl"`
	BannerURL string `gorm:"-" json:"bannerUrl,omitempty"`
	PostCount int64  `gorm:"-" json:"postCount,omitempty"`
}

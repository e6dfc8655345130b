package services

import (
	"errors"
	"mime/multipart"
	"os"
	"strings"
	"time"

	"gorm.io/gorm"

	"readit/internal/models"
	"readit/internal/utils"
)

// Placeholder shown for subs that never uploaded an image.
const defaultSubImage = "https://www.gravatar.com/avatar/00000000000000000000000000000000?d=mp&f=y"

const topSubsCacheKey = "subs:top"

type SubService struct {
	db     *gorm.DB
	images *ImageStore
	posts  *PostService
}

func NewSubService(db *gorm.DB, images *ImageStore, posts *PostService) *SubService {
	return &SubService{db: db, images: images, posts: posts}
}

// Create makes a new sub owned by user. Names collide case-insensitively:
// the in-transaction lookup catches the common case and the unique index on
// lower(name) catches concurrent creators.
func (s *SubService) Create(user *models.User, name, title, description string) (*models.Sub, error) {
	sub := models.Sub{
		Name:        name,
		Title:       title,
		Description: description,
		Username:    user.Username,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Sub{}).Where("lower(name) = ?", strings.ToLower(name)).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrSubExists
		}
		return tx.Omit("User", "Posts").Create(&sub).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSubExists
		}
		return nil, err
	}

	decorateSub(&sub)
	return &sub, nil
}

// Get loads a sub with its posts, newest first, annotated for the viewer.
func (s *SubService) Get(name string, viewer *models.User) (*models.Sub, error) {
	var sub models.Sub
	if err := s.db.Where("name = ?", name).First(&sub).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubNotFound
		}
		return nil, err
	}

	if err := s.db.Where("sub_name = ?", sub.Name).Order("created_at DESC").Find(&sub.Posts).Error; err != nil {
		return nil, err
	}
	if err := s.posts.Annotate(sub.Posts, viewer); err != nil {
		return nil, err
	}

	decorateSub(&sub)
	return &sub, nil
}

// Search returns the subs whose name starts with the fragment, matched
// case-insensitively. Anchored at the start, not a substring match, so the
// result reads like an autocomplete.
func (s *SubService) Search(fragment string) ([]models.Sub, error) {
	fragment = strings.TrimSpace(fragment)
	if fragment == "" {
		return nil, ErrEmptySearch
	}

	var subs []models.Sub
	err := s.db.Where("LOWER(name) LIKE ?", strings.ToLower(fragment)+"%").Find(&subs).Error
	if err != nil {
		return nil, err
	}
	for i := range subs {
		decorateSub(&subs[i])
	}
	return subs, nil
}

// TopSub is the sidebar projection: no entity, just the aggregate row.
type TopSub struct {
	Title     string `json:"title"`
	Name      string `json:"name"`
	ImageUrn  string `json:"-"`
	ImageURL  string `json:"imageUrl"`
	PostCount int64  `json:"postCount"`
}

// Top returns the five subs with the most posts. The aggregate is cached for
// a minute; it backs every page load's sidebar.
func (s *SubService) Top() ([]TopSub, error) {
	if cached := utils.GetCache().Get(topSubsCacheKey); cached != nil {
		if subs, ok := cached.([]TopSub); ok {
			return subs, nil
		}
	}

	var subs []TopSub
	err := s.db.Raw(`
		SELECT s.title, s.name, s.image_urn, COUNT(p.id) AS post_count
		FROM subs s
		LEFT JOIN posts p ON s.name = p.sub_name
		GROUP BY s.title, s.name, s.image_urn
		ORDER BY post_count DESC
		LIMIT 5`).Scan(&subs).Error
	if err != nil {
		return nil, err
	}

	for i := range subs {
		if subs[i].ImageUrn != "" {
			subs[i].ImageURL = appURL() + "/images/" + subs[i].ImageUrn
		} else {
			subs[i].ImageURL = defaultSubImage
		}
	}

	utils.GetCache().Set(topSubsCacheKey, subs, 1*time.Minute)
	return subs, nil
}

// SetImage stores an uploaded image or banner for the sub and removes the
// file it replaces. Caller has already checked ownership.
func (s *SubService) SetImage(sub *models.Sub, imageType string, file *multipart.FileHeader) (*models.Sub, error) {
	if imageType != "image" && imageType != "banner" {
		return nil, ErrInvalidImageType
	}

	filename, err := s.images.Save(file)
	if err != nil {
		return nil, err
	}

	var old string
	var column string
	if imageType == "image" {
		old, column = sub.ImageUrn, "image_urn"
		sub.ImageUrn = filename
	} else {
		old, column = sub.BannerUrn, "banner_urn"
		sub.BannerUrn = filename
	}

	if err := s.db.Model(sub).Update(column, filename).Error; err != nil {
		s.images.Remove(filename)
		return nil, err
	}

	if old != "" {
		s.images.Remove(old)
	}

	decorateSub(sub)
	return sub, nil
}

// ByName loads a bare sub record, without posts.
func (s *SubService) ByName(name string) (*models.Sub, error) {
	var sub models.Sub
	if err := s.db.Where("name = ?", name).First(&sub).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubNotFound
		}
		return nil, err
	}
	return &sub, nil
}

func decorateSub(sub *models.Sub) {
	if sub.ImageUrn != "" {
		sub.ImageURL = appURL() + "/images/" + sub.ImageUrn
	} else {
		sub.ImageURL = defaultSubImage
	}
	if sub.BannerUrn != "" {
		sub.BannerURL = appURL() + "/images/" + sub.BannerUrn
	}
}

func appURL() string {
	if u := os.Getenv("APP_URL"); u != "" {
		return u
	}
	return "http://localhost:8080"
}

package services

import (
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"readit/internal/utils"
)

// ImageStore writes uploaded sub images to a directory on disk, keyed by a
// generated filename. Files are served back under /images/.
type ImageStore struct {
	dir string
}

func NewImageStore(dir string) (*ImageStore, error) {
	if dir == "" {
		dir = "public/images"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &ImageStore{dir: dir}, nil
}

func (st *ImageStore) Dir() string {
	return st.dir
}

// Save writes the upload to disk and returns the generated filename. Only
// jpeg and png are accepted.
func (st *ImageStore) Save(file *multipart.FileHeader) (string, error) {
	mimetype := file.Header.Get("Content-Type")
	if mimetype != "image/jpeg" && mimetype != "image/png" {
		return "", ErrNotAnImage
	}

	ext := filepath.Ext(file.Filename)
	if ext == "" {
		if mimetype == "image/png" {
			ext = ".png"
		} else {
			ext = ".jpg"
		}
	}
	filename := utils.MakeID(15) + ext

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(st.dir, filename))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dst.Name())
		return "", err
	}
	return filename, nil
}

// Remove deletes a stored file; a missing file is not an error.
func (st *ImageStore) Remove(filename string) {
	if filename == "" {
		return
	}
	_ = os.Remove(filepath.Join(st.dir, filename))
}

package handlers_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"readit/internal/utils"
)

// Tiny valid PNG header, enough for the upload path which trusts the
// declared content type.
var pngBytes = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func TestCreateSubAndGet(t *testing.T) {
	r, _ := setupServer(t)
	cookies := registerAndLogin(t, r, "alice")

	w := doJSON(t, r, http.MethodPost, "/subs", gin.H{
		"name":        "golang",
		"title":       "The Go community",
		"description": "gophers welcome",
	}, cookies)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decodeJSON(t, w)
	assert.Equal(t, "golang", body["name"])
	assert.Equal(t, "alice", body["username"])
	assert.NotEmpty(t, body["imageUrl"], "subs without an upload get the placeholder image")

	w = doJSON(t, r, http.MethodGet, "/subs/golang", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body = decodeJSON(t, w)
	assert.Equal(t, "The Go community", body["title"])
}

func TestCreateSubDuplicate(t *testing.T) {
	r, _ := setupServer(t)
	cookies := registerAndLogin(t, r, "alice")

	w := doJSON(t, r, http.MethodPost, "/subs", gin.H{"name": "golang", "title": "Go"}, cookies)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPost, "/subs", gin.H{"name": "GoLang", "title": "Go again"}, cookies)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Sub already exists", decodeJSON(t, w)["name"])
}

func TestSearchSubs(t *testing.T) {
	r, _ := setupServer(t)
	cookies := registerAndLogin(t, r, "alice")

	for _, name := range []string{"reactjs", "readit", "golang"} {
		w := doJSON(t, r, http.MethodPost, "/subs", gin.H{"name": name, "title": name}, cookies)
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := doJSON(t, r, http.MethodGet, "/subs/search/rea", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	results := decodeJSONList(t, w)
	require.Len(t, results, 2)
	names := []string{results[0]["name"].(string), results[1]["name"].(string)}
	assert.ElementsMatch(t, []string{"reactjs", "readit"}, names)
}

func TestTopSubs(t *testing.T) {
	r, _ := setupServer(t)
	cookies := registerAndLogin(t, r, "alice")

	// The sidebar cache is process wide, keep it out of this test's way.
	utils.GetCache().Delete("subs:top")
	t.Cleanup(func() { utils.GetCache().Delete("subs:top") })

	w := doJSON(t, r, http.MethodPost, "/subs", gin.H{"name": "golang", "title": "Go"}, cookies)
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, r, http.MethodPost, "/subs", gin.H{"name": "quiet", "title": "Quiet"}, cookies)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPost, "/posts", gin.H{"title": "One", "sub": "golang"}, cookies)
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, r, http.MethodPost, "/posts", gin.H{"title": "Two", "sub": "golang"}, cookies)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/misc/top-subs", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	top := decodeJSONList(t, w)
	require.Len(t, top, 2)
	assert.Equal(t, "golang", top[0]["name"])
	assert.EqualValues(t, 2, top[0]["postCount"])
	assert.EqualValues(t, 0, top[1]["postCount"])
}

func TestUploadSubImage(t *testing.T) {
	r, _ := setupServer(t)
	owner := registerAndLogin(t, r, "alice")

	w := doJSON(t, r, http.MethodPost, "/subs", gin.H{"name": "golang", "title": "Go"}, owner)
	require.Equal(t, http.StatusOK, w.Code)

	body, contentType := imageForm(t, "image", "logo.png", "image/png", pngBytes)
	w = doMultipart(t, r, "/subs/golang/image", body, contentType, owner)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	sub := decodeJSON(t, w)
	assert.Contains(t, sub["imageUrl"], "/images/")
	assert.NotContains(t, sub["imageUrl"], "gravatar")
}

func TestUploadSubImageNotOwner(t *testing.T) {
	r, _ := setupServer(t)
	owner := registerAndLogin(t, r, "alice")
	other := registerAndLogin(t, r, "bob")

	w := doJSON(t, r, http.MethodPost, "/subs", gin.H{"name": "golang", "title": "Go"}, owner)
	require.Equal(t, http.StatusOK, w.Code)

	body, contentType := imageForm(t, "image", "logo.png", "image/png", pngBytes)
	w = doMultipart(t, r, "/subs/golang/image", body, contentType, other)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestUploadSubImageBadType(t *testing.T) {
	r, _ := setupServer(t)
	owner := registerAndLogin(t, r, "alice")

	w := doJSON(t, r, http.MethodPost, "/subs", gin.H{"name": "golang", "title": "Go"}, owner)
	require.Equal(t, http.StatusOK, w.Code)

	// Wrong upload type field.
	body, contentType := imageForm(t, "avatar", "logo.png", "image/png", pngBytes)
	w = doMultipart(t, r, "/subs/golang/image", body, contentType, owner)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Non-image file.
	body, contentType = imageForm(t, "image", "notes.txt", "text/plain", []byte("hi"))
	w = doMultipart(t, r, "/subs/golang/image", body, contentType, owner)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func doMultipart(t *testing.T, r *gin.Engine, path string, body *bytes.Buffer, contentType string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", contentType)
	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

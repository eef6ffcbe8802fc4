// Package imgurtest provides an in-process fake of the Imgur API for tests.
package imgurtest

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
)

// Upload is an image upload received by the fake server.
type Upload struct {
	Type     string
	Value    string
	Filename string
	Album    string
}

// Server is a fake Imgur API. Failures can be injected per delete hash.
type Server struct {
	ClientID string
	URL      string

	mu          sync.Mutex
	seq         int
	images      map[string]string
	albums      map[string]string
	uploads     []Upload
	deleted     []string
	failDeletes map[string]bool
	failUploads bool
	credits     gin.H
}

// NewServer starts a fake API that accepts clientID. It is closed when the test ends.
func NewServer(t testing.TB, clientID string) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s := &Server{
		ClientID:    clientID,
		images:      make(map[string]string),
		albums:      make(map[string]string),
		failDeletes: make(map[string]bool),
		credits: gin.H{
			"UserLimit":       500,
			"UserRemaining":   499,
			"UserReset":       1700000000,
			"ClientLimit":     12500,
			"ClientRemaining": 12400,
		},
	}

	router := gin.New()
	api := router.Group("/3", s.authorize)
	api.POST("/album", s.createAlbum)
	api.POST("/image", s.uploadImage)
	api.DELETE("/image/:hash", s.deleteItem("image"))
	api.DELETE("/album/:hash", s.deleteItem("album"))
	api.GET("/credits", s.getCredits)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	s.URL = srv.URL + "/3"
	return s
}

// FailDelete makes deletion of the given hash fail with a server error.
func (s *Server) FailDelete(hash string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failDeletes[hash] = true
}

// FailUploads makes every image upload fail.
func (s *Server) FailUploads(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failUploads = fail
}

// AddImage registers an existing image under deleteHash.
func (s *Server) AddImage(deleteHash string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.images[deleteHash] = "pre-" + deleteHash
}

// AddAlbum registers an existing album under deleteHash.
func (s *Server) AddAlbum(deleteHash string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.albums[deleteHash] = "pre-" + deleteHash
}

// Uploads returns the image uploads received so far.
func (s *Server) Uploads() []Upload {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Upload(nil), s.uploads...)
}

// Deleted returns "kind:hash" for every successful deletion, in order.
func (s *Server) Deleted() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.deleted...)
}

func fail(c *gin.Context, status int, message any) {
	c.AbortWithStatusJSON(status, gin.H{
		"data":    gin.H{"error": message, "request": c.Request.URL.Path, "method": c.Request.Method},
		"success": false,
		"status":  status,
	})
}

func ok(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"data": data, "success": true, "status": http.StatusOK})
}

func (s *Server) authorize(c *gin.Context) {
	if c.GetHeader("Authorization") != "Client-ID "+s.ClientID {
		fail(c, http.StatusForbidden, "Invalid client_id")
		return
	}
	c.Next()
}

func (s *Server) createAlbum(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c.PostForm("privacy") != "hidden" {
		fail(c, http.StatusBadRequest, "expected hidden album")
		return
	}

	s.seq++
	id := fmt.Sprintf("A%d", s.seq)
	hash := fmt.Sprintf("albumhash%d", s.seq)
	s.albums[hash] = id
	ok(c, gin.H{"id": id, "deletehash": hash})
}

func (s *Server) uploadImage(c *gin.Context) {
	upload := Upload{Type: c.PostForm("type"), Album: c.PostForm("album")}
	switch upload.Type {
	case "file":
		fh, err := c.FormFile("image")
		if err != nil {
			fail(c, http.StatusBadRequest, "No image data was sent to the upload api")
			return
		}
		upload.Filename = fh.Filename
	case "url", "base64":
		upload.Value = c.PostForm("image")
		if upload.Value == "" {
			fail(c, http.StatusBadRequest, "No image data was sent to the upload api")
			return
		}
	default:
		fail(c, http.StatusBadRequest, "Invalid type")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failUploads {
		fail(c, http.StatusBadRequest, gin.H{"code": 1003, "message": "File type invalid (1)", "type": "ImgurException"})
		return
	}
	if upload.Album != "" {
		if _, found := s.albums[upload.Album]; !found {
			fail(c, http.StatusNotFound, "Unable to find an album with the id, "+upload.Album)
			return
		}
	}

	s.seq++
	id := fmt.Sprintf("I%d", s.seq)
	hash := fmt.Sprintf("imagehash%d", s.seq)
	s.images[hash] = id
	s.uploads = append(s.uploads, upload)
	ok(c, gin.H{"id": id, "deletehash": hash, "link": "http://i.imgur.com/" + id + ".png"})
}

func (s *Server) deleteItem(kind string) gin.HandlerFunc {
	return func(c *gin.Context) {
		hash := c.Param("hash")

		s.mu.Lock()
		defer s.mu.Unlock()

		items := s.images
		if kind == "album" {
			items = s.albums
		}
		if s.failDeletes[hash] {
			fail(c, http.StatusInternalServerError, "Internal error")
			return
		}
		if _, found := items[hash]; !found {
			fail(c, http.StatusNotFound, "Unable to find an "+kind+" with the id, "+hash)
			return
		}
		delete(items, hash)
		s.deleted = append(s.deleted, kind+":"+hash)
		ok(c, true)
	}
}

func (s *Server) getCredits(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ok(c, s.credits)
}

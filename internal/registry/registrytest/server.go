// Package registrytest provides an in-process component registry for tests.
package registrytest

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
)

// Upload is one recorded publish
type Upload struct {
	Author      string
	Email       string
	Filename    string
	ContentType string
	RequestID   string
	Body        []byte
}

// Response is a canned lookup envelope
type Response struct {
	Code int    `json:"code"`
	Data string `json:"data"`
	Msg  string `json:"msg"`
}

// Server is a fake registry behind httptest
type Server struct {
	URL string

	mu           sync.Mutex
	srv          *httptest.Server
	uploads      []Upload
	components   map[string]Response
	files        map[string][]byte
	uploadStatus int
	requests     int
}

// New starts a fake registry that is closed when t finishes
func New(t testing.TB) *Server {
	t.Helper()

	gin.SetMode(gin.TestMode)
	s := &Server{
		components:   make(map[string]Response),
		files:        make(map[string][]byte),
		uploadStatus: http.StatusOK,
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(s.count)
	router.POST("/upload", s.upload)
	router.GET("/components/:name", s.component)
	router.GET("/files/*path", s.file)

	s.srv = httptest.NewServer(router)
	s.URL = s.srv.URL
	t.Cleanup(s.Close)
	return s
}

// Close shuts the server down
func (s *Server) Close() {
	s.srv.Close()
}

// AddComponent makes name resolvable and serves data at /files/<name>.zip
func (s *Server) AddComponent(name string, data []byte) string {
	path := "/files/" + name + ".zip"
	s.mu.Lock()
	defer s.mu.Unlock()
	s.components[name] = Response{Code: 0, Data: path}
	s.files[path] = data
	return path
}

// SetResponse overrides the lookup envelope for name
func (s *Server) SetResponse(name string, resp Response) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.components[name] = resp
}

// SetFile serves data at path
func (s *Server) SetFile(path string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[path] = data
}

// FailUploads makes every upload answer with status
func (s *Server) FailUploads(status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.uploadStatus = status
}

// Uploads returns the recorded uploads
func (s *Server) Uploads() []Upload {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Upload, len(s.uploads))
	copy(out, s.uploads)
	return out
}

// Requests returns the number of requests served
func (s *Server) Requests() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests
}

func (s *Server) count(c *gin.Context) {
	s.mu.Lock()
	s.requests++
	s.mu.Unlock()
	c.Next()
}

func (s *Server) upload(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		c.String(http.StatusBadRequest, "missing file field")
		return
	}
	file, err := header.Open()
	if err != nil {
		c.String(http.StatusInternalServerError, err.Error())
		return
	}
	defer file.Close()

	body, err := io.ReadAll(file)
	if err != nil {
		c.String(http.StatusInternalServerError, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.uploadStatus < 200 || s.uploadStatus >= 300 {
		c.String(s.uploadStatus, "upload rejected")
		return
	}
	s.uploads = append(s.uploads, Upload{
		Author:      c.Query("author"),
		Email:       c.Query("email"),
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		RequestID:   c.GetHeader("X-Request-ID"),
		Body:        body,
	})
	c.String(s.uploadStatus, "ok")
}

func (s *Server) component(c *gin.Context) {
	name := c.Param("name")

	s.mu.Lock()
	resp, ok := s.components[name]
	s.mu.Unlock()

	if !ok {
		resp = Response{Code: 404, Msg: fmt.Sprintf("Component %s not found", name)}
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) file(c *gin.Context) {
	path := "/files/" + strings.TrimPrefix(c.Param("path"), "/")

	s.mu.Lock()
	data, ok := s.files[path]
	s.mu.Unlock()

	if !ok {
		c.String(http.StatusNotFound, "no such file")
		return
	}
	c.Data(http.StatusOK, "application/zip", data)
}

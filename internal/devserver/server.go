// Package devserver is an in-memory implementation of the task REST API.
// It backs local runs of the client and the end-to-end tests.
package devserver

import (
	"log/slog"
	"net/http"
	"net/mail"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"taskdeck/internal/service"
)

// BasePath is the prefix every API route is mounted under.
const BasePath = "/api/v1"

// Server holds the task collection in insertion order.
type Server struct {
	logger *slog.Logger

	mu    sync.RWMutex
	tasks []service.Task
}

// New creates an empty Server. A nil logger uses slog.Default().
func New(logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{logger: logger.With("component", "devserver")}
}

// Seed replaces the collection. IDs are kept as given.
func (s *Server) Seed(tasks []service.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = slices.Clone(tasks)
}

// Tasks returns a copy of the collection.
func (s *Server) Tasks() []service.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// Handler returns the gin engine serving the API.
func (s *Server) Handler() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery(), s.logRequests())

	api := r.Group(BasePath)
	api.GET("/tasks", s.listTasks)
	api.POST("/tasks", s.createTask)
	api.PATCH("/tasks/:id", s.updateTask)
	api.DELETE("/tasks/:id", s.deleteTask)
	api.POST("/users/login", s.login)
	return r
}

func (s *Server) logRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

func (s *Server) listTasks(c *gin.Context) {
	c.JSON(http.StatusOK, service.TaskList{Tasks: s.Tasks()})
}

func (s *Server) createTask(c *gin.Context) {
	var draft service.Draft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if strings.TrimSpace(draft.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	s.mu.Lock()
	s.tasks = append(s.tasks, service.Task{
		ID:          uuid.NewString(),
		Name:        draft.Name,
		Description: draft.Description,
		DueDate:     draft.DueDate,
		Completed:   draft.Completed,
	})
	list := s.snapshotLocked()
	s.mu.Unlock()

	c.JSON(http.StatusCreated, service.TaskList{Tasks: list})
}

func (s *Server) updateTask(c *gin.Context) {
	var patch service.Patch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name cannot be empty"})
		return
	}

	id := c.Param("id")

	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return
	}
	s.tasks[i] = patch.Apply(s.tasks[i])
	list := s.snapshotLocked()
	s.mu.Unlock()

	c.JSON(http.StatusOK, service.TaskList{Tasks: list})
}

func (s *Server) deleteTask(c *gin.Context) {
	id := c.Param("id")

	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return
	}
	s.tasks = slices.Delete(s.tasks, i, i+1)
	s.mu.Unlock()

	c.Status(http.StatusNoContent)
}

func (s *Server) login(c *gin.Context) {
	var req service.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid email"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"email": req.Email})
}

func (s *Server) indexLocked(id string) int {
	return slices.IndexFunc(s.tasks, func(t service.Task) bool { return t.ID == id })
}

func (s *Server) snapshotLocked() []service.Task {
	out := slices.Clone(s.tasks)
	if out == nil {
		out = []service.Task{}
	}
	return out
}

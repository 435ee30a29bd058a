// Package api exposes the layout engine over HTTP and WebSocket
package api

import (
	"bytes"
	"errors"
	"fmt"
	"image/png"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/labelforge/sheet-engine/internal/label"
	"github.com/labelforge/sheet-engine/internal/layout"
	"github.com/labelforge/sheet-engine/internal/printer"
	"github.com/labelforge/sheet-engine/internal/renderer"
	"github.com/labelforge/sheet-engine/internal/store"
	"github.com/labelforge/sheet-engine/pkg/sheetformat"
)

const defaultPreviewDPI = 150

// Server is the API server
type Server struct {
	router   *gin.Engine
	profiles *store.Store
	upgrader websocket.Upgrader
}

// NewServer creates a new API server
func NewServer(profiles *store.Store) *Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.Default()
	router.Use(corsMiddleware())

	server := &Server{
		router:   router,
		profiles: profiles,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // Allow all origins
			},
		},
	}

	server.setupRoutes()

	return server
}

func (s *Server) setupRoutes() {
	s.router.GET("/papers", s.handleGetPapers)
	s.router.POST("/layout", s.handleLayout)
	s.router.POST("/preview", s.handlePreview)
	s.router.POST("/print", s.handlePrint)

	s.router.GET("/profiles", s.handleGetProfiles)
	s.router.POST("/profiles", s.handleCreateProfile)
	s.router.GET("/profiles/:id", s.handleGetProfile)
	s.router.PUT("/profiles/:id", s.handleUpdateProfile)
	s.router.DELETE("/profiles/:id", s.handleDeleteProfile)

	// WebSocket live preview
	s.router.GET("/ws", s.handleWebSocket)

	// Health check
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
}

// sheetRequest is the common request body: a settings record plus labels.
// Settings is optional; missing fields fall back to the defaults.
type sheetRequest struct {
	Settings *sheetformat.Settings `json:"settings"`
	Labels   []sheetformat.Label   `json:"labels" binding:"required"`
}

// compute runs the adapter and the layout engine for a request body,
// translating configuration errors to 400 responses.
func (s *Server) compute(c *gin.Context, req *sheetRequest) *layout.Result {
	settings := sheetformat.DefaultSettings()
	if req.Settings != nil {
		settings = *req.Settings
	}

	items, err := label.Build(req.Labels)
	if err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return nil
	}

	result, err := layout.Compute(settings, items)
	if err != nil {
		var cfgErr *layout.ConfigError
		if errors.As(err, &cfgErr) {
			c.JSON(400, gin.H{"error": cfgErr.Error(), "field": cfgErr.Field})
		} else {
			c.JSON(500, gin.H{"error": err.Error()})
		}
		return nil
	}

	return result
}

// handleGetPapers returns all known paper presets
func (s *Server) handleGetPapers(c *gin.Context) {
	papers := make([]gin.H, 0)
	for _, name := range sheetformat.PaperNames() {
		size, _ := sheetformat.PaperSize(name)
		papers = append(papers, gin.H{
			"name":   name,
			"width":  size.Width,
			"height": size.Height,
		})
	}

	c.JSON(200, gin.H{"papers": papers})
}

// handleLayout computes the page grid and returns it as JSON
func (s *Server) handleLayout(c *gin.Context) {
	var req sheetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	result := s.compute(c, &req)
	if result == nil {
		return
	}

	c.JSON(200, result)
}

// handlePreview renders one page as a PNG
func (s *Server) handlePreview(c *gin.Context) {
	var req struct {
		sheetRequest
		Page int `json:"page"`
		DPI  int `json:"dpi"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	result := s.compute(c, &req.sheetRequest)
	if result == nil {
		return
	}

	page := req.Page
	if page == 0 {
		page = 1
	}
	if page < 1 || page > len(result.Pages) {
		c.JSON(400, gin.H{"error": fmt.Sprintf("page %d out of range (1-%d)", page, len(result.Pages))})
		return
	}

	dpi := req.DPI
	if dpi == 0 {
		dpi = defaultPreviewDPI
	}

	r, err := renderer.New(dpi)
	if err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	img := r.RenderPage(&result.Pages[page-1])

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		c.JSON(500, gin.H{"error": fmt.Sprintf("failed to encode preview: %v", err)})
		return
	}

	c.Data(200, "image/png", buf.Bytes())
}

// handlePrint renders every page and sends it to a printer target
func (s *Server) handlePrint(c *gin.Context) {
	var req struct {
		sheetRequest
		Target printer.Target `json:"target" binding:"required"`
		DPI    int            `json:"dpi"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	result := s.compute(c, &req.sheetRequest)
	if result == nil {
		return
	}

	dpi := req.DPI
	if dpi == 0 {
		dpi = defaultPreviewDPI
	}
	r, err := renderer.New(dpi)
	if err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	conn, err := printer.Connect(req.Target)
	if err != nil {
		c.JSON(502, gin.H{"error": fmt.Sprintf("failed to connect to printer: %v", err)})
		return
	}
	defer conn.Close()

	for i := range result.Pages {
		if err := conn.Print(r.RenderPage(&result.Pages[i])); err != nil {
			c.JSON(502, gin.H{"error": fmt.Sprintf("failed to print page %d: %v", i+1, err)})
			return
		}
	}

	c.JSON(200, gin.H{
		"success": true,
		"pages":   len(result.Pages),
	})
}

// handleGetProfiles returns all stored settings profiles
func (s *Server) handleGetProfiles(c *gin.Context) {
	c.JSON(200, gin.H{"profiles": s.profiles.GetAll()})
}

// handleCreateProfile stores a new settings profile
func (s *Server) handleCreateProfile(c *gin.Context) {
	var req struct {
		Name     string               `json:"name" binding:"required"`
		Settings sheetformat.Settings `json:"settings"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	profile, err := s.profiles.Save(req.Name, req.Settings)
	if err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	c.JSON(200, gin.H{"success": true, "profile": profile})
}

// handleGetProfile returns one settings profile
func (s *Server) handleGetProfile(c *gin.Context) {
	profile := s.profiles.Get(c.Param("id"))
	if profile == nil {
		c.JSON(404, gin.H{"error": "profile not found"})
		return
	}

	c.JSON(200, profile)
}

// handleUpdateProfile replaces the settings of a profile
func (s *Server) handleUpdateProfile(c *gin.Context) {
	var req struct {
		Settings sheetformat.Settings `json:"settings"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	profile, err := s.profiles.Update(c.Param("id"), req.Settings)
	if err != nil {
		c.JSON(404, gin.H{"error": err.Error()})
		return
	}

	c.JSON(200, gin.H{"success": true, "profile": profile})
}

// handleDeleteProfile removes a profile
func (s *Server) handleDeleteProfile(c *gin.Context) {
	if !s.profiles.Remove(c.Param("id")) {
		c.JSON(404, gin.H{"error": "profile not found"})
		return
	}

	c.JSON(200, gin.H{"success": true})
}

// Run starts the API server
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

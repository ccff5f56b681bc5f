// Package web exposes sessions as a JSON API for a browser front end.
package web

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"boss-clicker/internal/battle"
	"boss-clicker/internal/progression"
	"boss-clicker/internal/session"

	"github.com/gin-gonic/gin"
)

// Server routes API calls to per-profile sessions.
type Server struct {
	sessions       *session.Manager
	defaultProfile string
	logger         *slog.Logger
}

// NewServer returns a Server that falls back to defaultProfile when a
// request names none.
func NewServer(sessions *session.Manager, defaultProfile string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{sessions: sessions, defaultProfile: defaultProfile, logger: logger}
}

// Handler builds the gin engine.
func (s *Server) Handler() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Next()
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.GET("/state", s.getState)
		api.GET("/gallery", s.getGallery)
		api.POST("/move", s.postMove)
		api.POST("/shop", s.postShop)
		api.POST("/redeem", s.postRedeem)
	}
	return r
}

type moveRequest struct {
	Move string `json:"move" binding:"required"`
}

type redeemRequest struct {
	Code string `json:"code" binding:"required"`
}

type galleryResponse struct {
	Unlocked int    `json:"unlocked"`
	Slots    []bool `json:"slots"`
}

func (s *Server) session(c *gin.Context) *session.Session {
	profile := strings.TrimSpace(c.Query("profile"))
	if profile == "" {
		profile = s.defaultProfile
	}
	return s.sessions.Get(c.Request.Context(), profile)
}

func (s *Server) getState(c *gin.Context) {
	c.JSON(http.StatusOK, s.session(c).State())
}

func (s *Server) getGallery(c *gin.Context) {
	st := s.session(c).Progress()
	resp := galleryResponse{Unlocked: st.Rewards, Slots: make([]bool, progression.RewardSlots)}
	for i := range resp.Slots {
		resp.Slots[i] = i < st.Rewards
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) postMove(c *gin.Context) {
	var req moveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	m, ok := battle.ParseMove(req.Move)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": battle.ErrUnknownMove.Error()})
		return
	}
	res, err := s.session(c).Submit(m)
	s.respond(c, res, err)
}

func (s *Server) postShop(c *gin.Context) {
	res, err := s.session(c).Shop()
	s.respond(c, res, err)
}

func (s *Server) postRedeem(c *gin.Context) {
	var req redeemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	res, err := s.session(c).Redeem(req.Code)
	s.respond(c, res, err)
}

func (s *Server) respond(c *gin.Context, res session.Result, err error) {
	switch {
	case err == nil:
		c.JSON(http.StatusOK, res)
	case errors.Is(err, battle.ErrRejected):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "state": res.State, "events": res.Events})
	default:
		s.logger.Error("command failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

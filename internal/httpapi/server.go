// Package httpapi serves the read-only HTTP side-car: health, scores, stats
// and Prometheus metrics.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/vovakirdan/tui-2048/internal/metrics"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

const (
	defaultLimit = 10
	maxLimit     = 100
)

// ScoreSource is the read side of the score store.
type ScoreSource interface {
	TopScores(limit int) ([]storage.GameRecord, error)
	Stats() (storage.Stats, error)
}

// ScoreJSON is the wire form of a game record.
type ScoreJSON struct {
	ID        string    `json:"id"`
	Player    string    `json:"player"`
	Score     int       `json:"score"`
	MaxTile   int       `json:"max_tile"`
	Moves     int       `json:"moves"`
	Won       bool      `json:"won"`
	Lost      bool      `json:"lost"`
	CreatedAt time.Time `json:"created_at"`
}

// StatsJSON is the wire form of the aggregate stats.
type StatsJSON struct {
	Games      int       `json:"games"`
	HighScore  int       `json:"high_score"`
	AvgScore   float64   `json:"avg_score"`
	Wins       int       `json:"wins"`
	BestTile   int       `json:"best_tile"`
	TotalMoves int64     `json:"total_moves"`
	LastPlayed time.Time `json:"last_played"`
}

type handler struct {
	scores ScoreSource
	logger *log.Logger
}

// NewRouter builds the gin engine. scores may be nil, in which case the
// score endpoints answer 503.
func NewRouter(scores ScoreSource, m *metrics.Metrics, logger *log.Logger) *gin.Engine {
	if logger == nil {
		logger = log.Default()
	}
	h := &handler{scores: scores, logger: logger}

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(logger))

	r.GET("/healthz", h.health)
	r.GET("/metrics", gin.WrapH(m.Handler()))

	api := r.Group("/api")
	api.GET("/scores", h.topScores)
	api.GET("/stats", h.stats)

	return r
}

// requestLogger logs each request through charmbracelet/log.
func requestLogger(logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

func (h *handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"storage": h.scores != nil,
	})
}

func (h *handler) topScores(c *gin.Context) {
	if h.scores == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "storage unavailable"})
		return
	}

	limit, err := parseLimit(c.Query("limit"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	records, err := h.scores.TopScores(limit)
	if err != nil {
		h.logger.Error("failed to load scores", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load scores"})
		return
	}

	out := make([]ScoreJSON, 0, len(records))
	for _, r := range records {
		out = append(out, ScoreJSON{
			ID:        r.ID,
			Player:    r.Player,
			Score:     r.Score,
			MaxTile:   r.MaxTile,
			Moves:     r.Moves,
			Won:       r.Won,
			Lost:      r.Lost,
			CreatedAt: r.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"scores": out,
		"count":  len(out),
	})
}

func (h *handler) stats(c *gin.Context) {
	if h.scores == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "storage unavailable"})
		return
	}

	s, err := h.scores.Stats()
	if err != nil {
		h.logger.Error("failed to load stats", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load stats"})
		return
	}

	c.JSON(http.StatusOK, StatsJSON{
		Games:      s.Games,
		HighScore:  s.HighScore,
		AvgScore:   s.AvgScore,
		Wins:       s.Wins,
		BestTile:   s.BestTile,
		TotalMoves: s.TotalMoves,
		LastPlayed: s.LastPlayed,
	})
}

// parseLimit accepts an empty value (default) or an integer in [1, maxLimit].
func parseLimit(raw string) (int, error) {
	if raw == "" {
		return defaultLimit, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("limit must be an integer")
	}
	if n < 1 || n > maxLimit {
		return 0, fmt.Errorf("limit must be between 1 and %d", maxLimit)
	}
	return n, nil
}

// Server runs the router on an address until shut down.
type Server struct {
	srv    *http.Server
	logger *log.Logger
}

// NewServer wraps the router in an http.Server.
func NewServer(addr string, scores ScoreSource, m *metrics.Metrics, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		srv: &http.Server{
			Addr:              addr,
			Handler:           NewRouter(scores, m, logger),
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: logger,
	}
}

// Start serves in the background. Errors other than a clean shutdown are logged.
func (s *Server) Start() {
	s.logger.Info("Starting HTTP server", "address", s.srv.Addr)
	go func() {
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("HTTP server error", "error", err)
		}
	}()
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("httpapi: shutdown: %w", err)
	}
	return nil
}

package server

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/SujalPatel1904/tickerboard/internal/model"
)

//go:embed index.html
var indexPage []byte

// Info describes the running instance, exposed on /healthz.
type Info struct {
	RunID      string
	Symbol     string
	DataSource string
	StartedAt  time.Time
}

// Server serves the dashboard page, the JSON API, and the websocket
// stream. It holds the latest update and implements the scheduler sink
// interface.
type Server struct {
	info Info
	hub  *Hub

	mu     sync.RWMutex
	latest model.Update

	srv *http.Server
}

// New builds the server and its routes. Before the first tick the API
// serves a placeholder chart with no series.
func New(addr string, allowOrigins []string, info Info) *Server {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.SetTrustedProxies(nil)

	r.Use(cors.New(cors.Config{
		AllowOrigins:  allowOrigins,
		AllowMethods:  []string{"GET", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Upgrade", "Connection"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        24 * time.Hour,
	}))

	s := &Server{
		info: info,
		hub:  NewHub(),
		latest: model.Update{
			Chart: model.ChartDescription{
				Title:      fmt.Sprintf("%s Live Price", info.Symbol),
				XAxisLabel: "Time",
				YAxisLabel: "Price (USD)",
				Annotation: "No data to display",
			},
			Status:      "Waiting for first refresh",
			GeneratedAt: info.StartedAt,
		},
	}

	r.GET("/", s.handleIndex)
	r.GET("/api/chart", s.handleChart)
	r.GET("/api/status", s.handleStatus)
	r.GET("/healthz", s.handleHealth)
	r.GET("/ws", func(c *gin.Context) {
		s.hub.ServeWS(c.Writer, c.Request)
	})

	s.srv = &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 15 * time.Second,
	}
	return s
}

// Publish stores the latest update and pushes it to websocket clients.
func (s *Server) Publish(update model.Update) {
	s.mu.Lock()
	s.latest = update
	s.mu.Unlock()

	msg, err := json.Marshal(update)
	if err != nil {
		logrus.Errorf("marshal update: %v", err)
		return
	}
	s.hub.Broadcast(msg)
}

// Latest returns the most recent update.
func (s *Server) Latest() model.Update {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest
}

// Start runs the hub and the HTTP listener. Blocks until the listener
// stops.
func (s *Server) Start(ctx context.Context) error {
	go s.hub.Run(ctx)
	logrus.Infof("serving dashboard on %s", s.srv.Addr)
	return s.srv.ListenAndServe()
}

// Shutdown stops the HTTP listener gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

// Handler exposes the route tree, for tests.
func (s *Server) Handler() http.Handler { return s.srv.Handler }

func (s *Server) handleIndex(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", indexPage)
}

func (s *Server) handleChart(c *gin.Context) {
	c.JSON(http.StatusOK, s.Latest().Chart)
}

func (s *Server) handleStatus(c *gin.Context) {
	update := s.Latest()
	c.JSON(http.StatusOK, gin.H{
		"tick":         update.Tick,
		"status":       update.Status,
		"generated_at": update.GeneratedAt,
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	update := s.Latest()
	c.JSON(http.StatusOK, gin.H{
		"run_id":      s.info.RunID,
		"symbol":      s.info.Symbol,
		"data_source": s.info.DataSource,
		"started_at":  s.info.StartedAt,
		"uptime":      time.Since(s.info.StartedAt).String(),
		"ticks":       update.Tick,
	})
}

// Copyright 2025 Technelab
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package api

import (
	"log/slog"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/technelab/techne/search"
	"github.com/technelab/techne/storage"
	"github.com/technelab/techne/trends"
)

// Version is reported by the health endpoint.
const Version = "0.1.0"

// DefaultAddr is the default listen address.
const DefaultAddr = ":8000"

// Config holds server configuration.
type Config struct {
	// Addr is the listen address. Defaults to DefaultAddr when empty.
	Addr string
}

// Server wraps the Fiber app serving the analytics API.
type Server struct {
	app    *fiber.App
	addr   string
	logger *slog.Logger
}

// New creates a server with middleware and routes configured.
func New(chunkRepository storage.ChunkRepository, searcher *search.Searcher, analyzer *trends.Analyzer, cfg Config) (*Server, error) {
	if chunkRepository == nil {
		return nil, ErrChunkRepositoryRequired
	}
	if searcher == nil {
		return nil, ErrSearcherRequired
	}
	if analyzer == nil {
		return nil, ErrAnalyzerRequired
	}

	initMetrics()

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			message := "Internal Server Error"

			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
				message = e.Message
			}

			return jsonError(c, code, message)
		},
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(metricsMiddleware)

	searchHandler := &SearchHandler{searcher: searcher}
	trendsHandler := &TrendsHandler{analyzer: analyzer}
	statsHandler := &StatsHandler{chunkRepository: chunkRepository}

	app.Get("/api/search", searchHandler.Search)
	app.Get("/api/trends", trendsHandler.Trends)
	app.Get("/api/trends/technology", trendsHandler.Technology)
	app.Get("/api/cooccurrence", trendsHandler.Cooccurrence)
	app.Get("/api/stats", statsHandler.Stats)
	app.Get("/healthz", statsHandler.Healthz)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	addr := cfg.Addr
	if addr == "" {
		addr = DefaultAddr
	}

	return &Server{
		app:    app,
		addr:   addr,
		logger: slog.Default(),
	}, nil
}

// App exposes the underlying Fiber app, mainly for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Start starts the server on the configured address.
func (s *Server) Start() error {
	s.logger.Info("starting analytics API server", "addr", s.addr)
	return s.app.Listen(s.addr)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// Copyright © 2024 Rak Laptudirm <rak@laptudirm.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package server exposes the scheduler over a small JSON API.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"laptudirm.com/x/rally/pkg/config"
	"laptudirm.com/x/rally/pkg/schedule"
	"laptudirm.com/x/rally/pkg/store"
)

// DefaultTimeout bounds the time a single scheduling run may take.
const DefaultTimeout = 30 * time.Second

// Server is the scheduler HTTP API.
type Server struct {
	router  chi.Router
	logger  *logrus.Entry
	store   *store.Store // optional; saving and event lookup need it
	timeout time.Duration

	// scheduler runs a single scheduling request.
	scheduler func(context.Context, *config.Event) (*schedule.Schedule, error)
}

// Option configures optional Server dependencies.
type Option func(*Server)

// WithStore sets the database used to save schedules and look up events.
func WithStore(st *store.Store) Option {
	return func(s *Server) {
		s.store = st
	}
}

// WithTimeout sets the time limit of a single scheduling run.
func WithTimeout(timeout time.Duration) Option {
	return func(s *Server) {
		s.timeout = timeout
	}
}

// New creates a new Server with all routes registered.
func New(opts ...Option) *Server {
	s := &Server{
		router:  chi.NewRouter(),
		logger:  logrus.WithField("component", "server"),
		timeout: DefaultTimeout,

		scheduler: scheduleEvent,
	}

	for _, opt := range opts {
		opt(s)
	}

	s.routes()
	return s
}

func scheduleEvent(ctx context.Context, event *config.Event) (*schedule.Schedule, error) {
	return event.Schedule(ctx, event.Roster())
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	r := s.router

	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(loggingMiddleware(s.logger))

	r.Get("/healthz", s.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/rules", s.handleListRules)
		r.Post("/validate", s.handleValidate)
		r.Post("/schedules", s.handleCreateSchedule)

		r.Route("/events", func(r chi.Router) {
			r.Get("/", s.handleListEvents)
			r.Get("/{id}", s.handleGetEvent)
		})
	})
}

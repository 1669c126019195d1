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

package server

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"laptudirm.com/x/rally/pkg/config"
	"laptudirm.com/x/rally/pkg/schedule"
	"laptudirm.com/x/rally/pkg/stats"
	"laptudirm.com/x/rally/pkg/store"
)

// ScheduleRequest is the body of POST /v1/schedules.
type ScheduleRequest struct {
	config.Event

	// Save stores the schedule under the event's name, Replace overwrites
	// an existing schedule of the same name.
	Save    bool `json:"save"`
	Replace bool `json:"replace"`
}

// ScheduleResponse is the result of a scheduling run.
type ScheduleResponse struct {
	RunID   string `json:"run_id"`
	EventID string `json:"event_id,omitempty"`

	Schedule *schedule.Schedule `json:"schedule"`

	PartnerVariety  float64 `json:"partner_variety"`
	OpponentVariety float64 `json:"opponent_variety"`
}

type ruleResponse struct {
	Name        string `json:"name"`
	Format      string `json:"format"`
	Mode        string `json:"mode"`
	FixedCount  bool   `json:"fixed_count"`
	Description string `json:"description"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondOK(w, r, map[string]string{"health": "ok"})
}

func (s *Server) handleListRules(w http.ResponseWriter, r *http.Request) {
	rules := make([]ruleResponse, len(schedule.Rules))
	for i, info := range schedule.Rules {
		rules[i] = ruleResponse{
			Name:        info.Name,
			Format:      info.Format.String(),
			Mode:        info.Mode.String(),
			FixedCount:  info.FixedCount,
			Description: info.Description,
		}
	}

	respondOK(w, r, rules)
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var event config.Event
	if !decode(w, r, &event) {
		return
	}

	roster := event.Roster()
	_, params, err := event.Params(roster)
	if err == nil {
		err = schedule.Validate(roster, params)
	}

	if err != nil {
		s.respondRunError(w, r, err)
		return
	}

	respondOK(w, r, map[string]bool{"valid": true})
}

func (s *Server) handleCreateSchedule(w http.ResponseWriter, r *http.Request) {
	var req ScheduleRequest
	if !decode(w, r, &req) {
		return
	}

	if req.Save && s.store == nil {
		respondError(w, r, http.StatusServiceUnavailable, &APIError{
			Code:    codeNoStore,
			Message: "saving schedules needs a database",
		})
		return
	}

	if req.Save && !req.Replace {
		ok, err := s.store.CanGenerate(r.Context(), req.Name)
		if err == nil && !ok {
			err = fmt.Errorf("save %s: %w", req.Name, store.ErrEventScheduled)
		}

		if err != nil {
			s.respondRunError(w, r, err)
			return
		}
	}

	runID := uuid.NewString()
	logger := s.logger.WithFields(logrus.Fields{"run_id": runID, "event": req.Name})

	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	sched, err := s.run(ctx, &req.Event)
	if err != nil {
		logger.WithError(err).Debug("schedule run failed")
		s.respondRunError(w, r, err)
		return
	}

	report := stats.Measure(sched)
	resp := ScheduleResponse{
		RunID:           runID,
		Schedule:        sched,
		PartnerVariety:  stats.MeanPartnerVariety(report),
		OpponentVariety: stats.MeanOpponentVariety(report),
	}

	if req.Save {
		event, err := s.store.SaveSchedule(ctx, req.Name, sched, req.Replace)
		if err != nil {
			s.respondRunError(w, r, err)
			return
		}

		resp.EventID = event.ID
	}

	logger.WithField("rounds", len(sched.Rounds)).Info("schedule created")
	respondCreated(w, r, resp)
}

// errRunPanicked is returned by run when scheduling panicked.
var errRunPanicked = errors.New("schedule run failed unexpectedly")

// run schedules the event in the background so that a slow run can be
// abandoned once ctx is done. The run itself stops at the next round.
func (s *Server) run(ctx context.Context, event *config.Event) (*schedule.Schedule, error) {
	type result struct {
		sched *schedule.Schedule
		err   error
	}

	done := make(chan result, 1)
	go func() {
		defer func() {
			if v := recover(); v != nil {
				s.logger.WithField("panic", v).Errorf("schedule run panicked\n%s", debug.Stack())
				done <- result{err: errRunPanicked}
			}
		}()

		sched, err := s.scheduler(ctx, event)
		done <- result{sched, err}
	}()

	select {
	case res := <-done:
		return res.sched, res.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (s *Server) handleListEvents(w http.ResponseWriter, r *http.Request) {
	if !s.hasStore(w, r) {
		return
	}

	events, err := s.store.ListEvents(r.Context())
	if err != nil {
		s.respondRunError(w, r, err)
		return
	}

	respondOK(w, r, events)
}

func (s *Server) handleGetEvent(w http.ResponseWriter, r *http.Request) {
	if !s.hasStore(w, r) {
		return
	}

	id := chi.URLParam(r, "id")
	sched, err := s.store.Schedule(r.Context(), id)
	if err != nil {
		s.respondRunError(w, r, err)
		return
	}

	respondOK(w, r, sched)
}

func (s *Server) hasStore(w http.ResponseWriter, r *http.Request) bool {
	if s.store != nil {
		return true
	}

	respondError(w, r, http.StatusServiceUnavailable, &APIError{
		Code:    codeNoStore,
		Message: "no database configured",
	})
	return false
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondError(w, r, http.StatusBadRequest, &APIError{
			Code:    codeBadRequest,
			Message: "invalid request body: " + err.Error(),
		})
		return false
	}

	return true
}

// respondRunError maps an error from scheduling or the store to a response.
func (s *Server) respondRunError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		invalid *schedule.ValidationError
		short   *schedule.ShortRoundError
	)

	switch {
	case errors.As(err, &invalid):
		respondError(w, r, http.StatusUnprocessableEntity, &APIError{
			Code:    codeInvalid,
			Message: invalid.Error(),
			Details: invalid.Problems,
		})
	case errors.As(err, &short):
		respondError(w, r, http.StatusConflict, &APIError{
			Code:    codeShortRound,
			Message: short.Error(),
		})
	case errors.Is(err, store.ErrEventScheduled):
		respondError(w, r, http.StatusConflict, &APIError{
			Code:    codeConflict,
			Message: err.Error(),
		})
	case errors.Is(err, sql.ErrNoRows):
		respondError(w, r, http.StatusNotFound, &APIError{
			Code:    codeNotFound,
			Message: "event not found",
		})
	case errors.Is(err, context.DeadlineExceeded):
		respondError(w, r, http.StatusServiceUnavailable, &APIError{
			Code:    codeTimeout,
			Message: "scheduling run timed out",
		})
	case errors.Is(err, errRunPanicked):
		respondError(w, r, http.StatusInternalServerError, &APIError{
			Code:    codeInternal,
			Message: err.Error(),
		})
	case errors.Is(err, context.Canceled):
		// the client went away, nobody is listening.
	default:
		respondError(w, r, http.StatusBadRequest, &APIError{
			Code:    codeBadRequest,
			Message: err.Error(),
		})
	}
}

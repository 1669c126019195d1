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

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"laptudirm.com/x/rally/pkg/pairing"
	"laptudirm.com/x/rally/pkg/schedule"
)

// CanGenerate reports whether a schedule may be saved for the named event,
// which is the case when the event does not exist yet or has no games.
func (s *Store) CanGenerate(ctx context.Context, name string) (bool, error) {
	var games int
	err := s.db.GetContext(ctx, &games, `
		SELECT COUNT(g.id)
		FROM events e
		LEFT JOIN games g ON g.event_id = e.id
		WHERE e.name = ?
	`, name)
	return games == 0, err
}

// SaveSchedule stores the schedule as the named event and returns the new
// event. An event which already has games is only overwritten if replace
// is set, otherwise ErrEventScheduled is returned.
func (s *Store) SaveSchedule(ctx context.Context, name string, sched *schedule.Schedule, replace bool) (Event, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return Event{}, err
	}
	defer tx.Rollback()

	var existing string
	err = tx.GetContext(ctx, &existing, `SELECT id FROM events WHERE name = ?`, name)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return Event{}, err
	default:
		var games int
		if err := tx.GetContext(ctx, &games, `SELECT COUNT(*) FROM games WHERE event_id = ?`, existing); err != nil {
			return Event{}, err
		}

		if games > 0 && !replace {
			return Event{}, fmt.Errorf("save %s: %w", name, ErrEventScheduled)
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, existing); err != nil {
			return Event{}, err
		}
	}

	event := Event{
		ID:        uuid.NewString(),
		Name:      name,
		Rule:      sched.Rule,
		Format:    sched.Format,
		Mode:      sched.Mode,
		Seed:      sched.Seed,
		Warnings:  strings.Join(sched.Warnings, "\n"),
		CreatedAt: time.Now().UTC().Format(time.RFC3339Nano),
	}

	_, err = tx.NamedExecContext(ctx, `
		INSERT INTO events (id, name, rule, format, mode, seed, warnings, created_at)
		VALUES (:id, :name, :rule, :format, :mode, :seed, :warnings, :created_at)
	`, event)
	if err != nil {
		return Event{}, err
	}

	for _, match := range sched.Matches() {
		if err := insertGame(ctx, tx, gameOf(event.ID, match)); err != nil {
			return Event{}, err
		}
	}

	return event, tx.Commit()
}

func insertGame(ctx context.Context, tx *sqlx.Tx, g Game) error {
	_, err := tx.NamedExecContext(ctx, `
		INSERT INTO games (
			event_id, game_type, round_name, round_number, court, scheduled_time,
			player1, player2, player3, player4,
			status, winner_team,
			set1_team1_score, set1_team2_score,
			set2_team1_score, set2_team2_score,
			set3_team1_score, set3_team2_score,
			notes
		) VALUES (
			:event_id, :game_type, :round_name, :round_number, :court, :scheduled_time,
			:player1, :player2, :player3, :player4,
			:status, :winner_team,
			:set1_team1_score, :set1_team2_score,
			:set2_team1_score, :set2_team2_score,
			:set3_team1_score, :set3_team2_score,
			:notes
		)
	`, g)
	return err
}

func gameOf(eventID string, match schedule.Match) Game {
	seat := func(team []string, i int) string {
		if i < len(team) {
			return team[i]
		}
		return ""
	}

	return Game{
		EventID:       eventID,
		Type:          match.Format,
		RoundName:     match.RoundLabel,
		RoundNumber:   match.Round,
		Court:         match.Court,
		ScheduledTime: match.Time.Format(time.RFC3339),

		Player1: seat(match.Team1, 0),
		Player2: seat(match.Team1, 1),
		Player3: seat(match.Team2, 0),
		Player4: seat(match.Team2, 1),

		Status:     match.Status,
		WinnerTeam: match.Winner,

		Set1Team1: match.Sets[0].Team1,
		Set1Team2: match.Sets[0].Team2,
		Set2Team1: match.Sets[1].Team1,
		Set2Team2: match.Sets[1].Team2,
		Set3Team1: match.Sets[2].Team1,
		Set3Team2: match.Sets[2].Team2,

		Notes: match.Notes,
	}
}

// find an event by its ID
func (s *Store) Event(ctx context.Context, id string) (Event, error) {
	var e Event
	err := s.db.GetContext(ctx, &e, `
		SELECT id, name, rule, format, mode, seed, warnings, created_at
		FROM events
		WHERE id = ?
	`, id)
	return e, err
}

// find an event by its name
func (s *Store) EventByName(ctx context.Context, name string) (Event, error) {
	var e Event
	err := s.db.GetContext(ctx, &e, `
		SELECT id, name, rule, format, mode, seed, warnings, created_at
		FROM events
		WHERE name = ?
	`, name)
	return e, err
}

// list every event, most recent first
func (s *Store) ListEvents(ctx context.Context) ([]Event, error) {
	var out []Event
	err := s.db.SelectContext(ctx, &out, `
		SELECT id, name, rule, format, mode, seed, warnings, created_at
		FROM events
		ORDER BY created_at DESC, name ASC
	`)
	return out, err
}

// list the games of an event in round and court order
func (s *Store) Games(ctx context.Context, eventID string) ([]Game, error) {
	var out []Game
	err := s.db.SelectContext(ctx, &out, `
		SELECT *
		FROM games
		WHERE event_id = ?
		ORDER BY round_number ASC, id ASC
	`, eventID)
	return out, err
}

// Schedule rebuilds the stored schedule of an event. Round conflicts and
// the pairing history are recomputed from the stored games.
func (s *Store) Schedule(ctx context.Context, eventID string) (*schedule.Schedule, error) {
	event, err := s.Event(ctx, eventID)
	if err != nil {
		return nil, err
	}

	games, err := s.Games(ctx, eventID)
	if err != nil {
		return nil, err
	}

	sched := &schedule.Schedule{
		Rule:    event.Rule,
		Format:  event.Format,
		Mode:    event.Mode,
		Seed:    event.Seed,
		History: pairing.NewHistory(),
	}

	if event.Warnings != "" {
		sched.Warnings = strings.Split(event.Warnings, "\n")
	}

	for _, g := range games {
		match, err := g.match()
		if err != nil {
			return nil, err
		}

		if n := len(sched.Rounds); n == 0 || sched.Rounds[n-1].Number != match.Round {
			sched.Rounds = append(sched.Rounds, schedule.Round{
				Number: match.Round,
				Label:  match.RoundLabel,
				Time:   match.Time,
			})
		}

		round := &sched.Rounds[len(sched.Rounds)-1]
		round.Matches = append(round.Matches, match)
	}

	for i := range sched.Rounds {
		round := &sched.Rounds[i]

		matchups := make([]pairing.Matchup, len(round.Matches))
		for j, match := range round.Matches {
			matchups[j] = match.Matchup
		}

		round.Conflict = sched.History.ScoreRound(matchups)
		sched.History.Commit(matchups)
	}

	return sched, nil
}

func (g Game) match() (schedule.Match, error) {
	t, err := time.Parse(time.RFC3339, g.ScheduledTime)
	if err != nil {
		return schedule.Match{}, fmt.Errorf("game %d: %w", g.ID, err)
	}

	team := func(seats ...string) []string {
		var members []string
		for _, seat := range seats {
			if seat != "" {
				members = append(members, seat)
			}
		}
		return members
	}

	match := schedule.Match{
		Round:      g.RoundNumber,
		RoundLabel: g.RoundName,
		Court:      g.Court,
		Time:       t,
		Format:     g.Type,
		Team1:      team(g.Player1, g.Player2),
		Team2:      team(g.Player3, g.Player4),
		Status:     g.Status,
		Winner:     g.WinnerTeam,
		Sets: [3]schedule.SetScore{
			{Team1: g.Set1Team1, Team2: g.Set1Team2},
			{Team1: g.Set2Team1, Team2: g.Set2Team2},
			{Team1: g.Set3Team1, Team2: g.Set3Team2},
		},
		Notes: g.Notes,
	}

	match.Matchup = pairing.Matchup{
		Team1: pairing.Players(match.Team1...),
		Team2: pairing.Players(match.Team2...),
	}

	return match, nil
}

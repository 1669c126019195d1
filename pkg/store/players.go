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
	"errors"
	"strings"

	"laptudirm.com/x/rally/pkg/pairing"
)

// AddPlayer adds a player to the roster, or updates the rating of the
// player with the same name.
func (s *Store) AddPlayer(ctx context.Context, name string, rating float64) (Player, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Player{}, errors.New("add player: empty name")
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO players (name, rating)
		VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET rating = excluded.rating
	`, name, rating)
	if err != nil {
		return Player{}, err
	}

	return s.PlayerByName(ctx, name)
}

// find a player by name
func (s *Store) PlayerByName(ctx context.Context, name string) (Player, error) {
	var p Player
	err := s.db.GetContext(ctx, &p, `
		SELECT id, name, rating
		FROM players
		WHERE name = ?
	`, name)
	return p, err
}

// delete a player by name
func (s *Store) RemovePlayer(ctx context.Context, name string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM players WHERE name = ?`, name)
	return err
}

// list every player, best rated first
func (s *Store) ListPlayers(ctx context.Context) ([]Player, error) {
	var out []Player
	err := s.db.SelectContext(ctx, &out, `
		SELECT id, name, rating
		FROM players
		ORDER BY rating DESC, id ASC
	`)
	return out, err
}

// Roster returns the stored players as participants.
func (s *Store) Roster(ctx context.Context) ([]pairing.Participant, error) {
	players, err := s.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}

	roster := make([]pairing.Participant, len(players))
	for i, p := range players {
		roster[i] = p
	}

	return roster, nil
}

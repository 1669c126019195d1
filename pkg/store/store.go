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

// Package store persists players and generated schedules in a sqlite
// database so that later runs can reuse a roster and look events up.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// note: as per SQLite's manual suggestions, 'AUTOINCREMENT' is not used on
// the 'INTEGER PRIMARY KEY' columns.
var schemaStmts = []string{
	`PRAGMA journal_mode=WAL;`,
	`PRAGMA foreign_keys=ON;`,
	`CREATE TABLE IF NOT EXISTS players (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		rating REAL NOT NULL DEFAULT 0,
		UNIQUE(name)
	);`,
	`CREATE TABLE IF NOT EXISTS events (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		rule TEXT NOT NULL DEFAULT '',
		format TEXT NOT NULL,
		mode TEXT NOT NULL,
		seed INTEGER NOT NULL DEFAULT 0,
		warnings TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now')),
		UNIQUE(name)
	);`,
	`CREATE TABLE IF NOT EXISTS games (
		id INTEGER PRIMARY KEY,
		event_id TEXT NOT NULL REFERENCES events(id) ON UPDATE CASCADE ON DELETE CASCADE,
		game_type TEXT NOT NULL,
		round_name TEXT NOT NULL DEFAULT '',
		round_number INTEGER NOT NULL,
		court TEXT NOT NULL,
		scheduled_time TEXT NOT NULL,
		player1 TEXT NOT NULL,
		player2 TEXT NOT NULL DEFAULT '',
		player3 TEXT NOT NULL,
		player4 TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'scheduled',
		winner_team INTEGER NOT NULL DEFAULT 0,
		set1_team1_score INTEGER NOT NULL DEFAULT 0,
		set1_team2_score INTEGER NOT NULL DEFAULT 0,
		set2_team1_score INTEGER NOT NULL DEFAULT 0,
		set2_team2_score INTEGER NOT NULL DEFAULT 0,
		set3_team1_score INTEGER NOT NULL DEFAULT 0,
		set3_team2_score INTEGER NOT NULL DEFAULT 0,
		notes TEXT NOT NULL DEFAULT ''
		CHECK (winner_team IN (0, 1, 2))
	);`,
	`CREATE INDEX IF NOT EXISTS idx_games_event_id ON games(event_id);`,
	`CREATE INDEX IF NOT EXISTS idx_games_round ON games(event_id, round_number);`,
}

// Store is a handle to the scheduler database.
type Store struct {
	db *sqlx.DB
}

// Open opens the sqlite database at path, creating and migrating it when
// necessary. Use ":memory:" for a throwaway database.
func Open(path string) (*Store, error) {
	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// a single connection keeps ":memory:" databases and WAL writes sane.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	for _, stmt := range schemaStmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

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

import "errors"

// ErrEventScheduled is returned when saving a schedule for an event which
// already has games, unless replacing was asked for.
var ErrEventScheduled = errors.New("event already has a schedule")

// Player is a stored roster entry. It can be paired directly.
type Player struct {
	PlayerID int64   `db:"id" json:"id"`
	Name     string  `db:"name" json:"name"`
	Score    float64 `db:"rating" json:"rating"`
}

func (p Player) ID() string { return p.Name }
func (p Player) Rating() float64 { return p.Score }
func (p Player) String() string { return p.Name }

// Event is a stored schedule header.
type Event struct {
	ID        string `db:"id" json:"id"`
	Name      string `db:"name" json:"name"`
	Rule      string `db:"rule" json:"rule"`
	Format    string `db:"format" json:"format"`
	Mode      string `db:"mode" json:"mode"`
	Seed      int64  `db:"seed" json:"seed"`
	Warnings  string `db:"warnings" json:"warnings,omitempty"`
	CreatedAt string `db:"created_at" json:"created_at"`
}

// Game is a stored match. Team 1 is player1 and player2, team 2 is
// player3 and player4; the second seat of a team is empty in singles.
type Game struct {
	ID            int64  `db:"id"`
	EventID       string `db:"event_id"`
	Type          string `db:"game_type"`
	RoundName     string `db:"round_name"`
	RoundNumber   int    `db:"round_number"`
	Court         string `db:"court"`
	ScheduledTime string `db:"scheduled_time"`

	Player1 string `db:"player1"`
	Player2 string `db:"player2"`
	Player3 string `db:"player3"`
	Player4 string `db:"player4"`

	Status     string `db:"status"`
	WinnerTeam int    `db:"winner_team"`

	Set1Team1 int `db:"set1_team1_score"`
	Set1Team2 int `db:"set1_team2_score"`
	Set2Team1 int `db:"set2_team1_score"`
	Set2Team2 int `db:"set2_team2_score"`
	Set3Team1 int `db:"set3_team1_score"`
	Set3Team2 int `db:"set3_team2_score"`

	Notes string `db:"notes"`
}

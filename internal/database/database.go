package database

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// DB wraps the SQL database connection
type DB struct {
	conn *sql.DB
}

// Profile holds a user's persistent stats.
type Profile struct {
	UserID       string    `json:"user_id"`
	FavoriteCard string    `json:"favorite_card"`
	GuessWins    int       `json:"guess_wins"`
	TriviaWins   int       `json:"trivia_wins"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Streak tracks a user's trivia run.
type Streak struct {
	UserID  string    `json:"user_id"`
	Current int       `json:"current"`
	Best    int       `json:"best"`
	Updated time.Time `json:"updated_at"`
}

// Tournament is one scheduled community event.
type Tournament struct {
	ID        int64     `json:"id"`
	GuildID   string    `json:"guild_id"`
	Name      string    `json:"name"`
	StartsAt  time.Time `json:"starts_at"`
	CreatedBy string    `json:"created_by"`
	Reminded  bool      `json:"reminded"`
	CreatedAt time.Time `json:"created_at"`
}

// NewDB creates a new database connection and initializes tables
func NewDB(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db := &DB{conn: conn}

	// Initialize tables
	if err := db.initTables(); err != nil {
		return nil, fmt.Errorf("failed to initialize tables: %w", err)
	}

	return db, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

// initTables creates the necessary database tables
func (db *DB) initTables() error {
	query := `
	CREATE TABLE IF NOT EXISTS user_profiles (
		user_id TEXT PRIMARY KEY,
		favorite_card TEXT NOT NULL DEFAULT '',
		guess_wins INTEGER NOT NULL DEFAULT 0,
		trivia_wins INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS trivia_streaks (
		user_id TEXT PRIMARY KEY,
		current INTEGER NOT NULL DEFAULT 0,
		best INTEGER NOT NULL DEFAULT 0,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS tournaments (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		guild_id TEXT NOT NULL,
		name TEXT NOT NULL,
		starts_at DATETIME NOT NULL,
		created_by TEXT NOT NULL,
		reminded INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_tournaments_guild_id ON tournaments(guild_id);
	CREATE INDEX IF NOT EXISTS idx_tournaments_starts_at ON tournaments(starts_at);
	`

	_, err := db.conn.Exec(query)
	return err
}

// GetProfile retrieves a user's profile, nil when none exists.
func (db *DB) GetProfile(userID string) (*Profile, error) {
	query := `
	SELECT user_id, favorite_card, guess_wins, trivia_wins, created_at, updated_at
	FROM user_profiles
	WHERE user_id = ?
	`

	row := db.conn.QueryRow(query, userID)

	var p Profile
	err := row.Scan(&p.UserID, &p.FavoriteCard, &p.GuessWins, &p.TriviaWins, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // No profile yet
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return &p, nil
}

// SetFavoriteCard stores or updates a user's favorite card.
func (db *DB) SetFavoriteCard(userID, cardName string) error {
	query := `
	INSERT INTO user_profiles (user_id, favorite_card, updated_at)
	VALUES (?, ?, CURRENT_TIMESTAMP)
	ON CONFLICT(user_id)
	DO UPDATE SET
		favorite_card = excluded.favorite_card,
		updated_at = CURRENT_TIMESTAMP
	`

	_, err := db.conn.Exec(query, userID, cardName)
	if err != nil {
		return fmt.Errorf("failed to set favorite card: %w", err)
	}

	return nil
}

// IncrementGuessWins bumps a user's guessing game win counter.
func (db *DB) IncrementGuessWins(userID string) error {
	query := `
	INSERT INTO user_profiles (user_id, guess_wins, updated_at)
	VALUES (?, 1, CURRENT_TIMESTAMP)
	ON CONFLICT(user_id)
	DO UPDATE SET
		guess_wins = guess_wins + 1,
		updated_at = CURRENT_TIMESTAMP
	`

	_, err := db.conn.Exec(query, userID)
	if err != nil {
		return fmt.Errorf("failed to increment guess wins: %w", err)
	}

	return nil
}

// IncrementTriviaWins bumps a user's trivia win counter.
func (db *DB) IncrementTriviaWins(userID string) error {
	query := `
	INSERT INTO user_profiles (user_id, trivia_wins, updated_at)
	VALUES (?, 1, CURRENT_TIMESTAMP)
	ON CONFLICT(user_id)
	DO UPDATE SET
		trivia_wins = trivia_wins + 1,
		updated_at = CURRENT_TIMESTAMP
	`

	_, err := db.conn.Exec(query, userID)
	if err != nil {
		return fmt.Errorf("failed to increment trivia wins: %w", err)
	}

	return nil
}

// RecordTriviaResult updates a user's streak: a correct answer extends
// the run, a wrong one resets it. Returns the updated streak.
func (db *DB) RecordTriviaResult(userID string, correct bool) (*Streak, error) {
	var query string
	if correct {
		query = `
		INSERT INTO trivia_streaks (user_id, current, best, updated_at)
		VALUES (?, 1, 1, CURRENT_TIMESTAMP)
		ON CONFLICT(user_id)
		DO UPDATE SET
			current = current + 1,
			best = MAX(best, current + 1),
			updated_at = CURRENT_TIMESTAMP
		`
	} else {
		query = `
		INSERT INTO trivia_streaks (user_id, current, best, updated_at)
		VALUES (?, 0, 0, CURRENT_TIMESTAMP)
		ON CONFLICT(user_id)
		DO UPDATE SET
			current = 0,
			updated_at = CURRENT_TIMESTAMP
		`
	}

	if _, err := db.conn.Exec(query, userID); err != nil {
		return nil, fmt.Errorf("failed to record trivia result: %w", err)
	}

	return db.GetStreak(userID)
}

// GetStreak retrieves a user's trivia streak, nil when they never played.
func (db *DB) GetStreak(userID string) (*Streak, error) {
	row := db.conn.QueryRow(
		`SELECT user_id, current, best, updated_at FROM trivia_streaks WHERE user_id = ?`, userID)

	var s Streak
	err := row.Scan(&s.UserID, &s.Current, &s.Best, &s.Updated)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get streak: %w", err)
	}

	return &s, nil
}

// GetTriviaLeaderboard returns the top streaks, best first.
func (db *DB) GetTriviaLeaderboard(limit int) ([]Streak, error) {
	rows, err := db.conn.Query(
		`SELECT user_id, current, best, updated_at FROM trivia_streaks ORDER BY best DESC, current DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}
	defer rows.Close()

	var streaks []Streak
	for rows.Next() {
		var s Streak
		if err := rows.Scan(&s.UserID, &s.Current, &s.Best, &s.Updated); err != nil {
			return nil, fmt.Errorf("failed to scan streak: %w", err)
		}
		streaks = append(streaks, s)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating leaderboard: %w", err)
	}

	return streaks, nil
}

// AddTournament schedules a tournament and returns its ID.
func (db *DB) AddTournament(guildID, name string, startsAt time.Time, createdBy string) (int64, error) {
	res, err := db.conn.Exec(
		`INSERT INTO tournaments (guild_id, name, starts_at, created_by) VALUES (?, ?, ?, ?)`,
		guildID, name, startsAt.UTC(), createdBy)
	if err != nil {
		return 0, fmt.Errorf("failed to add tournament: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get tournament id: %w", err)
	}

	return id, nil
}

// ListUpcomingTournaments returns tournaments that have not started yet,
// soonest first.
func (db *DB) ListUpcomingTournaments(guildID string, now time.Time) ([]Tournament, error) {
	rows, err := db.conn.Query(`
	SELECT id, guild_id, name, starts_at, created_by, reminded, created_at
	FROM tournaments
	WHERE guild_id = ? AND starts_at >= ?
	ORDER BY starts_at ASC
	`, guildID, now.UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to query tournaments: %w", err)
	}
	defer rows.Close()

	return scanTournaments(rows)
}

// DeleteTournament removes a tournament by ID within a guild.
func (db *DB) DeleteTournament(id int64, guildID string) error {
	result, err := db.conn.Exec(`DELETE FROM tournaments WHERE id = ? AND guild_id = ?`, id, guildID)
	if err != nil {
		return fmt.Errorf("failed to delete tournament: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("no tournament found to delete")
	}

	return nil
}

// DueTournamentReminders returns unreminded tournaments starting within
// the window after now.
func (db *DB) DueTournamentReminders(now time.Time, window time.Duration) ([]Tournament, error) {
	rows, err := db.conn.Query(`
	SELECT id, guild_id, name, starts_at, created_by, reminded, created_at
	FROM tournaments
	WHERE reminded = 0 AND starts_at >= ? AND starts_at <= ?
	ORDER BY starts_at ASC
	`, now.UTC(), now.Add(window).UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to query due reminders: %w", err)
	}
	defer rows.Close()

	return scanTournaments(rows)
}

// MarkTournamentReminded flags a tournament so its reminder fires once.
func (db *DB) MarkTournamentReminded(id int64) error {
	if _, err := db.conn.Exec(`UPDATE tournaments SET reminded = 1 WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to mark tournament reminded: %w", err)
	}
	return nil
}

func scanTournaments(rows *sql.Rows) ([]Tournament, error) {
	var list []Tournament
	for rows.Next() {
		var t Tournament
		if err := rows.Scan(&t.ID, &t.GuildID, &t.Name, &t.StartsAt, &t.CreatedBy, &t.Reminded, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan tournament: %w", err)
		}
		list = append(list, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tournaments: %w", err)
	}

	return list, nil
}

// GetStats returns some basic statistics about the database
func (db *DB) GetStats() (map[string]interface{}, error) {
	stats := make(map[string]interface{})

	var profiles int
	if err := db.conn.QueryRow("SELECT COUNT(*) FROM user_profiles").Scan(&profiles); err != nil {
		return nil, fmt.Errorf("failed to count profiles: %w", err)
	}
	stats["profiles"] = profiles

	var streaks int
	if err := db.conn.QueryRow("SELECT COUNT(*) FROM trivia_streaks").Scan(&streaks); err != nil {
		return nil, fmt.Errorf("failed to count streaks: %w", err)
	}
	stats["streaks"] = streaks

	var tournaments int
	if err := db.conn.QueryRow("SELECT COUNT(*) FROM tournaments").Scan(&tournaments); err != nil {
		return nil, fmt.Errorf("failed to count tournaments: %w", err)
	}
	stats["tournaments"] = tournaments

	return stats, nil
}

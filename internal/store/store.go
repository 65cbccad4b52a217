// Package store archives evaluation sessions in a local sqlite database so
// runs can be listed and re-examined later.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"
	_ "modernc.org/sqlite"

	"github.com/valpere/interpeval/internal"
)

type Store struct {
	db *sql.DB
}

func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}

	return s, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		context TEXT,
		user1_name TEXT NOT NULL,
		user1_language TEXT NOT NULL,
		user1_is_llm BOOLEAN DEFAULT FALSE,
		user2_name TEXT NOT NULL,
		user2_language TEXT NOT NULL,
		user2_is_llm BOOLEAN DEFAULT FALSE,
		interpreter_name TEXT NOT NULL,
		interpreter_brief TEXT,
		total_turns INTEGER DEFAULT 0,
		average_translation_time REAL DEFAULT 0,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS session_turns (
		session_id TEXT NOT NULL,
		turn INTEGER NOT NULL,
		timestamp TIMESTAMP,
		from_user TEXT NOT NULL,
		to_user TEXT NOT NULL,
		original_message TEXT NOT NULL,
		original_language TEXT NOT NULL,
		translated_message TEXT NOT NULL,
		translated_language TEXT NOT NULL,
		translation_time REAL,
		PRIMARY KEY (session_id, turn),
		FOREIGN KEY (session_id) REFERENCES sessions(id)
	);

	-- judgments holds the session's latest judge verdict as a JSON payload;
	-- saving a session again replaces the row.
	CREATE TABLE IF NOT EXISTS judgments (
		session_id TEXT PRIMARY KEY,
		payload TEXT NOT NULL,
		language_check_passed BOOLEAN DEFAULT TRUE,
		completion_rate TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (session_id) REFERENCES sessions(id)
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

func (s *Store) Close() error {
	return s.db.Close()
}

// SaveSession archives a full session payload and returns the row ID.
// Message text is NFC-normalized before storage.
func (s *Store) SaveSession(ctx context.Context, results internal.SessionResults) (string, error) {
	id := uuid.New().String()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sessions (id, name, context,
			user1_name, user1_language, user1_is_llm,
			user2_name, user2_language, user2_is_llm,
			interpreter_name, interpreter_brief,
			total_turns, average_translation_time, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, results.SessionName, results.ConversationContext,
		results.Users.User1.Name, results.Users.User1.Language, results.Users.User1.IsLLM,
		results.Users.User2.Name, results.Users.User2.Language, results.Users.User2.IsLLM,
		results.Interpreter.Name, results.Interpreter.TranslationBrief,
		results.Metrics.TotalTurns, results.Metrics.AverageTranslationTime, results.Timestamp,
	)
	if err != nil {
		return "", fmt.Errorf("failed to save session: %w", err)
	}

	for _, turn := range results.Conversation {
		_, err := s.db.ExecContext(ctx, `
			INSERT INTO session_turns (session_id, turn, timestamp, from_user, to_user,
				original_message, original_language, translated_message, translated_language, translation_time)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			id, turn.Turn, turn.Timestamp, turn.FromUser, turn.ToUser,
			norm.NFC.String(turn.OriginalMessage), turn.OriginalLanguage,
			norm.NFC.String(turn.TranslatedMessage), turn.TranslatedLanguage,
			turn.TranslationTime,
		)
		if err != nil {
			return "", fmt.Errorf("failed to save turn %d: %w", turn.Turn, err)
		}
	}

	if results.JudgeEvaluation != nil {
		payload, err := json.Marshal(results.JudgeEvaluation)
		if err != nil {
			return "", fmt.Errorf("failed to marshal judgment: %w", err)
		}
		_, err = s.db.ExecContext(ctx, `
			INSERT OR REPLACE INTO judgments (session_id, payload, language_check_passed, completion_rate)
			VALUES (?, ?, ?, ?)`,
			id, string(payload), results.JudgeEvaluation.LanguageCheckPassed, results.JudgeEvaluation.CompletionRate(),
		)
		if err != nil {
			return "", fmt.Errorf("failed to save judgment: %w", err)
		}
	}

	return id, nil
}

// SessionSummary is one row of the session listing.
type SessionSummary struct {
	ID                     string
	Name                   string
	TotalTurns             int
	AverageTranslationTime float64
	CreatedAt              time.Time
}

// ListSessions returns archived sessions, most recent first.
func (s *Store) ListSessions(ctx context.Context) ([]SessionSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, total_turns, average_translation_time, created_at
		FROM sessions ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var out []SessionSummary
	for rows.Next() {
		var sum SessionSummary
		if err := rows.Scan(&sum.ID, &sum.Name, &sum.TotalTurns, &sum.AverageTranslationTime, &sum.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan session row: %w", err)
		}
		out = append(out, sum)
	}
	return out, rows.Err()
}

// GetSession reconstructs the full export payload for an archived session.
func (s *Store) GetSession(ctx context.Context, id string) (internal.SessionResults, error) {
	var results internal.SessionResults
	err := s.db.QueryRowContext(ctx, `
		SELECT name, context,
			user1_name, user1_language, user1_is_llm,
			user2_name, user2_language, user2_is_llm,
			interpreter_name, interpreter_brief,
			total_turns, average_translation_time, created_at
		FROM sessions WHERE id = ?`, id).Scan(
		&results.SessionName, &results.ConversationContext,
		&results.Users.User1.Name, &results.Users.User1.Language, &results.Users.User1.IsLLM,
		&results.Users.User2.Name, &results.Users.User2.Language, &results.Users.User2.IsLLM,
		&results.Interpreter.Name, &results.Interpreter.TranslationBrief,
		&results.Metrics.TotalTurns, &results.Metrics.AverageTranslationTime, &results.Timestamp,
	)
	if err != nil {
		return internal.SessionResults{}, fmt.Errorf("failed to load session %s: %w", id, err)
	}

	results.Metrics.Languages = map[string]string{
		results.Users.User1.Language: results.Users.User1.Name,
		results.Users.User2.Language: results.Users.User2.Name,
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT turn, timestamp, from_user, to_user,
			original_message, original_language,
			translated_message, translated_language, translation_time
		FROM session_turns WHERE session_id = ? ORDER BY turn`, id)
	if err != nil {
		return internal.SessionResults{}, fmt.Errorf("failed to load turns: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var turn internal.TurnRecord
		if err := rows.Scan(&turn.Turn, &turn.Timestamp, &turn.FromUser, &turn.ToUser,
			&turn.OriginalMessage, &turn.OriginalLanguage,
			&turn.TranslatedMessage, &turn.TranslatedLanguage, &turn.TranslationTime); err != nil {
			return internal.SessionResults{}, fmt.Errorf("failed to scan turn row: %w", err)
		}
		results.Conversation = append(results.Conversation, turn)
	}
	if err := rows.Err(); err != nil {
		return internal.SessionResults{}, err
	}

	var payload string
	err = s.db.QueryRowContext(ctx, `SELECT payload FROM judgments WHERE session_id = ?`, id).Scan(&payload)
	switch {
	case err == sql.ErrNoRows:
		// No judgment recorded for this session.
	case err != nil:
		return internal.SessionResults{}, fmt.Errorf("failed to load judgment: %w", err)
	default:
		var evaluation internal.JudgeEvaluation
		if err := json.Unmarshal([]byte(payload), &evaluation); err != nil {
			return internal.SessionResults{}, fmt.Errorf("failed to parse judgment payload: %w", err)
		}
		results.JudgeEvaluation = &evaluation
	}

	return results, nil
}

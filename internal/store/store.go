package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"github.com/saravenpi/barter/internal/chat"
	"github.com/saravenpi/barter/internal/models"
	"github.com/saravenpi/barter/internal/profile"
)

const schema = `
CREATE TABLE IF NOT EXISTS profile (
	id               INTEGER PRIMARY KEY CHECK (id = 1),
	full_name        TEXT NOT NULL DEFAULT '',
	skill            TEXT NOT NULL DEFAULT '',
	skill_learn      TEXT NOT NULL DEFAULT '',
	gender           TEXT NOT NULL DEFAULT '',
	years_experience TEXT NOT NULL DEFAULT '',
	location_address TEXT NOT NULL DEFAULT '',
	intro_video      TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS profile_media (
	kind TEXT NOT NULL,
	slot INTEGER NOT NULL,
	uri  TEXT NOT NULL,
	PRIMARY KEY (kind, slot)
);

CREATE TABLE IF NOT EXISTS message (
	ROWID     INTEGER PRIMARY KEY AUTOINCREMENT,
	guid      TEXT NOT NULL UNIQUE,
	peer_id   TEXT NOT NULL,
	text      TEXT NOT NULL,
	sender    TEXT NOT NULL,
	is_sender INTEGER NOT NULL,
	timestamp TEXT NOT NULL,
	status    TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS message_peer ON message (peer_id);

CREATE TABLE IF NOT EXISTS rating (
	peer_id TEXT PRIMARY KEY,
	stars   INTEGER NOT NULL CHECK (stars BETWEEN 1 AND 5)
);
`

const (
	mediaThumbnail = "thumbnail"
	mediaProof     = "proof"
)

var ErrInvalidRating = errors.New("rating must be between 1 and 5 stars")

// Store persists the user's profile, chat history and ratings in a local sqlite file.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and applies the schema.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// PersistProfile replaces the stored profile with p.
func (s *Store) PersistProfile(ctx context.Context, p profile.Profile) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO profile (id, full_name, skill, skill_learn, gender, years_experience, location_address, intro_video)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			full_name = excluded.full_name,
			skill = excluded.skill,
			skill_learn = excluded.skill_learn,
			gender = excluded.gender,
			years_experience = excluded.years_experience,
			location_address = excluded.location_address,
			intro_video = excluded.intro_video
	`, p.FullName, p.Skill, p.SkillLearn, p.Gender, p.YearsExperience, p.LocationAddress, p.IntroVideo)
	if err != nil {
		return fmt.Errorf("failed to write profile: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM profile_media`); err != nil {
		return fmt.Errorf("failed to clear profile media: %w", err)
	}

	insert := `INSERT INTO profile_media (kind, slot, uri) VALUES (?, ?, ?)`
	for i, uri := range p.Thumbnails {
		if _, err := tx.ExecContext(ctx, insert, mediaThumbnail, i, uri); err != nil {
			return fmt.Errorf("failed to write thumbnail %d: %w", i, err)
		}
	}
	for i, uri := range p.Proofs {
		if uri == "" {
			continue
		}
		if _, err := tx.ExecContext(ctx, insert, mediaProof, i, uri); err != nil {
			return fmt.Errorf("failed to write proof %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit profile: %w", err)
	}
	return nil
}

// LoadProfile returns the stored profile, or false when none was saved yet.
func (s *Store) LoadProfile(ctx context.Context) (profile.Profile, bool, error) {
	var p profile.Profile

	err := s.db.QueryRowContext(ctx, `
		SELECT full_name, skill, skill_learn, gender, years_experience, location_address, intro_video
		FROM profile WHERE id = 1
	`).Scan(&p.FullName, &p.Skill, &p.SkillLearn, &p.Gender, &p.YearsExperience, &p.LocationAddress, &p.IntroVideo)
	if errors.Is(err, sql.ErrNoRows) {
		return profile.Profile{}, false, nil
	}
	if err != nil {
		return profile.Profile{}, false, fmt.Errorf("failed to query profile: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `SELECT kind, slot, uri FROM profile_media ORDER BY kind, slot`)
	if err != nil {
		return profile.Profile{}, false, fmt.Errorf("failed to query profile media: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var kind, uri string
		var slot int
		if err := rows.Scan(&kind, &slot, &uri); err != nil {
			continue
		}

		switch kind {
		case mediaThumbnail:
			if slot == len(p.Thumbnails) && slot < profile.ThumbnailSlots {
				p.Thumbnails = append(p.Thumbnails, uri)
			}
		case mediaProof:
			if slot >= 0 && slot < profile.ProofSlots {
				p.Proofs[slot] = uri
			}
		}
	}

	return p, true, rows.Err()
}

// Messages returns the history with a peer in chronological order.
func (s *Store) Messages(ctx context.Context, peerID string) ([]chat.Message, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT guid, text, sender, is_sender, timestamp, COALESCE(status, '')
		FROM message
		WHERE peer_id = ?
		ORDER BY ROWID ASC
	`, peerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}
	defer rows.Close()

	var messages []chat.Message
	for rows.Next() {
		var msg chat.Message
		var status string
		if err := rows.Scan(&msg.ID, &msg.Text, &msg.Sender, &msg.IsSender, &msg.Timestamp, &status); err != nil {
			continue
		}
		msg.Status = chat.ParseStatus(status)
		messages = append(messages, msg)
	}

	return messages, rows.Err()
}

// AppendMessage stores a message at the end of the history with a peer.
func (s *Store) AppendMessage(ctx context.Context, peerID string, msg chat.Message) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO message (guid, peer_id, text, sender, is_sender, timestamp, status)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, msg.ID, peerID, msg.Text, msg.Sender, msg.IsSender, msg.Timestamp, msg.Status.String())
	if err != nil {
		return fmt.Errorf("failed to store message: %w", err)
	}
	return nil
}

// UpdateStatus records a delivery status change for one message.
func (s *Store) UpdateStatus(ctx context.Context, id string, status chat.Status) error {
	res, err := s.db.ExecContext(ctx, `UPDATE message SET status = ? WHERE guid = ?`, status.String(), id)
	if err != nil {
		return fmt.Errorf("failed to update message status: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("message not found: %s", id)
	}
	return nil
}

// Conversations summarizes every peer with stored history, most recent first.
// Peer names are resolved by the caller; unknown peers keep their id.
func (s *Store) Conversations(ctx context.Context) ([]models.Conversation, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT
			m.peer_id,
			m.text,
			m.timestamp,
			counts.total,
			counts.received
		FROM message m
		JOIN (
			SELECT
				peer_id,
				MAX(ROWID) AS last_id,
				COUNT(*) AS total,
				SUM(CASE WHEN is_sender = 0 THEN 1 ELSE 0 END) AS received
			FROM message
			GROUP BY peer_id
		) counts ON m.ROWID = counts.last_id
		ORDER BY m.ROWID DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query conversations: %w", err)
	}
	defer rows.Close()

	var conversations []models.Conversation
	for rows.Next() {
		var c models.Conversation
		if err := rows.Scan(&c.PeerID, &c.LastMessage, &c.LastTime, &c.MessageCount, &c.Received); err != nil {
			continue
		}
		c.PeerName = c.PeerID
		conversations = append(conversations, c)
	}

	return conversations, rows.Err()
}

// SaveRating stores the user's star rating for a peer.
func (s *Store) SaveRating(ctx context.Context, peerID string, stars int) error {
	if stars < 1 || stars > 5 {
		return ErrInvalidRating
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO rating (peer_id, stars) VALUES (?, ?)
		ON CONFLICT (peer_id) DO UPDATE SET stars = excluded.stars
	`, peerID, stars)
	if err != nil {
		return fmt.Errorf("failed to store rating: %w", err)
	}
	return nil
}

// Rating returns the stored stars for a peer, or 0 when unrated.
func (s *Store) Rating(ctx context.Context, peerID string) (int, error) {
	var stars int
	err := s.db.QueryRowContext(ctx, `SELECT stars FROM rating WHERE peer_id = ?`, peerID).Scan(&stars)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to query rating: %w", err)
	}
	return stars, nil
}

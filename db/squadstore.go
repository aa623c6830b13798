package db

import (
	"context"
	"database/sql"
	"fmt"

	"squadfinder_backend/models"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// SquadStore is the Postgres-backed Store.
type SquadStore struct {
	db *sql.DB
}

func NewSquadStore(db *sql.DB) *SquadStore {
	return &SquadStore{db: db}
}

func (s *SquadStore) SelectSquads(ctx context.Context) ([]models.SquadRow, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, leader_name, date, time, location, discipline,
		       capacity, message, contact_type, contact_value, leader_pin,
		       created_at, created_by
		FROM squads
		ORDER BY date ASC, time ASC, created_at ASC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query squads: %w", err)
	}
	defer rows.Close()

	var squads []models.SquadRow
	for rows.Next() {
		var r models.SquadRow
		if err := rows.Scan(
			&r.ID, &r.Title, &r.LeaderName, &r.Date, &r.Time, &r.Location,
			&r.Discipline, &r.Capacity, &r.Message, &r.ContactType,
			&r.ContactValue, &r.LeaderPIN, &r.CreatedAt, &r.CreatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan squad: %w", err)
		}
		squads = append(squads, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating squads: %w", err)
	}

	return squads, nil
}

func (s *SquadStore) SelectMembersBySquadIDs(ctx context.Context, squadIDs []string) (map[string][]models.Member, error) {
	grouped := make(map[string][]models.Member)
	if len(squadIDs) == 0 {
		return grouped, nil
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT squad_id, name, note, joined_at
		FROM members
		WHERE squad_id = ANY($1::uuid[])
		ORDER BY joined_at ASC, id ASC
	`, pq.Array(squadIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to query members: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			squadID  string
			name     string
			note     sql.NullString
			joinedAt sql.NullTime
		)
		if err := rows.Scan(&squadID, &name, &note, &joinedAt); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		m := models.Member{Name: name}
		if note.Valid {
			n := note.String
			m.Note = &n
		}
		if joinedAt.Valid {
			m.JoinedAt = joinedAt.Time.UnixMilli()
		}
		grouped[squadID] = append(grouped[squadID], m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating members: %w", err)
	}

	return grouped, nil
}

func (s *SquadStore) InsertSquad(ctx context.Context, draft models.SquadDraft, createdBy *string) (string, error) {
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO squads (id, title, leader_name, date, time, location,
		                    discipline, capacity, message, contact_type,
		                    contact_value, leader_pin, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`, id, draft.Title, draft.LeaderName, draft.Date, draft.Time,
		draft.Location, draft.Discipline, draft.Capacity,
		nullable(draft.Message), draft.Contact.Type, draft.Contact.Value,
		draft.LeaderPIN, nullable(createdBy))
	if err != nil {
		return "", fmt.Errorf("failed to insert squad: %w", err)
	}
	return id, nil
}

func (s *SquadStore) UpdateSquad(ctx context.Context, id string, draft models.SquadDraft) error {
	// id, leader_pin, created_at and created_by are immutable; members live
	// in their own table.
	_, err := s.db.ExecContext(ctx, `
		UPDATE squads
		SET title = $2, leader_name = $3, date = $4, time = $5,
		    location = $6, discipline = $7, capacity = $8, message = $9,
		    contact_type = $10, contact_value = $11
		WHERE id = $1
	`, id, draft.Title, draft.LeaderName, draft.Date, draft.Time,
		draft.Location, draft.Discipline, draft.Capacity,
		nullable(draft.Message), draft.Contact.Type, draft.Contact.Value)
	if err != nil {
		return fmt.Errorf("failed to update squad: %w", err)
	}
	return nil
}

func (s *SquadStore) DeleteSquad(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM squads WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete squad: %w", err)
	}
	return nil
}

func (s *SquadStore) InsertMember(ctx context.Context, squadID string, join models.MemberJoin) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO members (squad_id, name, note) VALUES ($1, $2, $3)
	`, squadID, join.Name, nullable(join.Note))
	if err != nil {
		return fmt.Errorf("failed to insert member: %w", err)
	}
	return nil
}

func nullable(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

package db

import (
	"database/sql"

	"github.com/google/uuid"
	"github.com/nvillanueva/flightboard/types"
)

// Store provides access to the flights table.
type Store struct {
	db *sql.DB
}

// NewStore returns a Store backed by the shared database connection.
// InitDB must have been called first.
func NewStore() *Store {
	return &Store{db: DB}
}

// Insert saves a new submission and returns its generated id.
func (s *Store) Insert(f types.Submission) (string, error) {
	id := uuid.NewString()
	_, err := s.db.Exec(`
		INSERT INTO flights (id, discord_user, callsign, plane, departure, arrival, submitted_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, id, f.DiscordUser, f.Callsign, f.Plane, f.Departure, f.Arrival, f.SubmittedBy)
	if err != nil {
		return "", err
	}
	return id, nil
}

// List returns all submissions in insertion order.
func (s *Store) List() ([]types.Submission, error) {
	rows, err := s.db.Query(`
		SELECT id, discord_user, callsign, plane, departure, arrival, submitted_by, created_at
		FROM flights
		ORDER BY seq
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var flights []types.Submission
	for rows.Next() {
		var f types.Submission
		err := rows.Scan(
			&f.ID,
			&f.DiscordUser,
			&f.Callsign,
			&f.Plane,
			&f.Departure,
			&f.Arrival,
			&f.SubmittedBy,
			&f.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		flights = append(flights, f)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return flights, nil
}

// Get looks up a single submission by id. Returns sql.ErrNoRows when the
// id is unknown.
func (s *Store) Get(id string) (types.Submission, error) {
	var f types.Submission
	err := s.db.QueryRow(`
		SELECT id, discord_user, callsign, plane, departure, arrival, submitted_by, created_at
		FROM flights
		WHERE id = $1
	`, id).Scan(
		&f.ID,
		&f.DiscordUser,
		&f.Callsign,
		&f.Plane,
		&f.Departure,
		&f.Arrival,
		&f.SubmittedBy,
		&f.CreatedAt,
	)
	if err != nil {
		return types.Submission{}, err
	}
	return f, nil
}

// Delete removes a submission by id. Returns sql.ErrNoRows when the id is
// unknown.
func (s *Store) Delete(id string) error {
	result, err := s.db.Exec(`DELETE FROM flights WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

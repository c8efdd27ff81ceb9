package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/pinkycollie/DEAF-FIRST-PLATFORM/internal/identity"
	"github.com/pinkycollie/DEAF-FIRST-PLATFORM/internal/landmark"
)

// ProfileRepository provides biometric profile persistence. It implements
// identity.ProfileStore.
type ProfileRepository struct {
	db *sql.DB
}

// Profiles returns the profile repository for this store.
func (s *Store) Profiles() *ProfileRepository {
	return &ProfileRepository{db: s.db}
}

var _ identity.ProfileStore = (*ProfileRepository)(nil)

// Get retrieves a profile and its signature patterns by user id.
// Returns identity.ErrProfileNotFound if the user has no profile.
func (r *ProfileRepository) Get(userID string) (*identity.Profile, error) {
	p := &identity.Profile{}
	var dominantHand string

	err := r.db.QueryRow(
		`SELECT user_id, enrollment_date, dominant_hand FROM profiles WHERE user_id = ?`,
		userID,
	).Scan(&p.UserID, &p.EnrollmentDate, &dominantHand)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, identity.ErrProfileNotFound
		}
		return nil, err
	}
	p.DominantHand = landmark.Handedness(dominantHand)

	rows, err := r.db.Query(
		`SELECT pattern_id, sign_type, avg_velocity, max_velocity, motion_smoothness,
		        avg_finger_spread, avg_wrist_movement, dominant_hand, captured_at
		 FROM signature_patterns WHERE user_id = ? ORDER BY captured_at ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var pattern identity.SignaturePattern
		var hand string
		err := rows.Scan(
			&pattern.PatternID, &pattern.SignType,
			&pattern.Features.AverageVelocity, &pattern.Features.MaxVelocity,
			&pattern.Features.MotionSmoothness, &pattern.Features.AverageFingerSpread,
			&pattern.Features.AverageWristMovement, &hand, &pattern.CapturedAt,
		)
		if err != nil {
			return nil, err
		}
		pattern.Features.DominantHand = landmark.Handedness(hand)
		p.SignaturePatterns = append(p.SignaturePatterns, pattern)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return p, nil
}

// Save writes the profile and its full pattern list back in one transaction.
func (r *ProfileRepository) Save(p *identity.Profile) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO profiles (user_id, enrollment_date, dominant_hand)
		 VALUES (?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET dominant_hand = excluded.dominant_hand`,
		p.UserID, p.EnrollmentDate, string(p.DominantHand),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM signature_patterns WHERE user_id = ?`, p.UserID); err != nil {
		return err
	}

	for _, pattern := range p.SignaturePatterns {
		_, err := tx.Exec(
			`INSERT INTO signature_patterns
			   (pattern_id, user_id, sign_type, avg_velocity, max_velocity,
			    motion_smoothness, avg_finger_spread, avg_wrist_movement,
			    dominant_hand, captured_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			pattern.PatternID, p.UserID, pattern.SignType,
			pattern.Features.AverageVelocity, pattern.Features.MaxVelocity,
			pattern.Features.MotionSmoothness, pattern.Features.AverageFingerSpread,
			pattern.Features.AverageWristMovement, string(pattern.Features.DominantHand),
			pattern.CapturedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert pattern: %w", err)
		}
	}

	return tx.Commit()
}

// Delete removes a profile; patterns cascade. Reports whether a row existed.
func (r *ProfileRepository) Delete(userID string) (bool, error) {
	result, err := r.db.Exec(`DELETE FROM profiles WHERE user_id = ?`, userID)
	if err != nil {
		return false, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rowsAffected > 0, nil
}

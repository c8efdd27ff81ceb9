package store

// runMigrations executes all database migrations.
func (s *Store) runMigrations() error {
	migrations := []string{
		// Profiles table - one row per enrolled user
		`CREATE TABLE IF NOT EXISTS profiles (
			user_id TEXT PRIMARY KEY,
			enrollment_date DATETIME NOT NULL,
			dominant_hand TEXT NOT NULL CHECK(dominant_hand IN ('left', 'right'))
		)`,

		// Signature patterns table - enrolled feature vectors per profile
		`CREATE TABLE IF NOT EXISTS signature_patterns (
			pattern_id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL REFERENCES profiles(user_id) ON DELETE CASCADE,
			sign_type TEXT NOT NULL,
			avg_velocity REAL NOT NULL,
			max_velocity REAL NOT NULL,
			motion_smoothness REAL NOT NULL,
			avg_finger_spread REAL NOT NULL,
			avg_wrist_movement REAL NOT NULL,
			dominant_hand TEXT NOT NULL CHECK(dominant_hand IN ('left', 'right')),
			captured_at DATETIME NOT NULL
		)`,

		// Index for profile pattern lookups
		`CREATE INDEX IF NOT EXISTS idx_signature_patterns_user_id ON signature_patterns(user_id)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return err
		}
	}

	return nil
}

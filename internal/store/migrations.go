package store

// runMigrations executes all database migrations.
func (s *Store) runMigrations() error {
	migrations := []string{
		// Snappables table - objects exposing snap points
		`CREATE TABLE IF NOT EXISTS snappables (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		// Snap points table - authored grip locations with their surface
		`CREATE TABLE IF NOT EXISTS snap_points (
			id TEXT PRIMARY KEY,
			snappable_id TEXT NOT NULL REFERENCES snappables(id) ON DELETE CASCADE,
			surface_type TEXT NOT NULL CHECK(surface_type IN ('point', 'box', 'cylinder', 'sphere')),
			surface_params TEXT NOT NULL DEFAULT '{}',
			mode TEXT NOT NULL DEFAULT 'translation' CHECK(mode IN ('translation', 'rotation')),
			rotation_weight REAL NOT NULL DEFAULT 0.5,
			can_invert INTEGER NOT NULL DEFAULT 0,
			grip_px REAL NOT NULL, grip_py REAL NOT NULL, grip_pz REAL NOT NULL,
			grip_qw REAL NOT NULL, grip_qx REAL NOT NULL, grip_qy REAL NOT NULL, grip_qz REAL NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		// Reference poses table - recorded hand poses per snap point
		`CREATE TABLE IF NOT EXISTS reference_poses (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			snap_point_id TEXT NOT NULL REFERENCES snap_points(id) ON DELETE CASCADE,
			pose_index INTEGER NOT NULL,
			handedness TEXT NOT NULL DEFAULT '',
			px REAL NOT NULL, py REAL NOT NULL, pz REAL NOT NULL,
			qw REAL NOT NULL, qx REAL NOT NULL, qy REAL NOT NULL, qz REAL NOT NULL,
			bones TEXT NOT NULL DEFAULT '{}'
		)`,

		// Settings table - stores application settings as key-value pairs
		`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,

		// Indexes for better query performance
		`CREATE INDEX IF NOT EXISTS idx_snap_points_snappable_id ON snap_points(snappable_id)`,
		`CREATE INDEX IF NOT EXISTS idx_reference_poses_snap_point_id ON reference_poses(snap_point_id)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return err
		}
	}

	return nil
}

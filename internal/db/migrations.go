package db

import (
	"database/sql"
	"fmt"
)

type migration struct {
	version int
	name    string
	sql     string
}

var migrations = []migration{
	{
		version: 1,
		name:    "initial_schema",
		sql: `
CREATE TABLE IF NOT EXISTS schema_migrations (
  version INTEGER PRIMARY KEY,
  name TEXT NOT NULL,
  applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS meals (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL UNIQUE,
  is_default INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS food_items (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  calories INTEGER NOT NULL CHECK(calories >= 0),
  protein_g REAL NOT NULL CHECK(protein_g >= 0),
  carbs_g REAL NOT NULL CHECK(carbs_g >= 0),
  fat_g REAL NOT NULL CHECK(fat_g >= 0),
  saturated_fat_g REAL NOT NULL DEFAULT 0,
  poly_fat_g REAL NOT NULL DEFAULT 0,
  mono_fat_g REAL NOT NULL DEFAULT 0,
  fiber_g REAL NOT NULL DEFAULT 0,
  sugar_g REAL NOT NULL DEFAULT 0,
  sodium_mg REAL NOT NULL DEFAULT 0,
  calcium_mg REAL NOT NULL DEFAULT 0,
  iron_mg REAL NOT NULL DEFAULT 0,
  potassium_mg REAL NOT NULL DEFAULT 0,
  vitamin_a_ug REAL NOT NULL DEFAULT 0,
  vitamin_c_mg REAL NOT NULL DEFAULT 0,
  vitamin_d_ug REAL NOT NULL DEFAULT 0,
  serving_size TEXT NOT NULL DEFAULT '',
  serving_weight_g REAL NOT NULL DEFAULT 0,
  meal_id INTEGER NOT NULL,
  day TEXT NOT NULL,
  logged_at DATETIME,
  created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
  updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
  FOREIGN KEY(meal_id) REFERENCES meals(id)
);

CREATE INDEX IF NOT EXISTS idx_food_items_day ON food_items(day);
CREATE INDEX IF NOT EXISTS idx_food_items_meal_id ON food_items(meal_id);

CREATE TABLE IF NOT EXISTS exercise_logs (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  duration_min INTEGER NOT NULL DEFAULT 0 CHECK(duration_min >= 0),
  calories_burned INTEGER NOT NULL CHECK(calories_burned >= 0),
  source TEXT NOT NULL DEFAULT 'manual' CHECK(source IN ('manual', 'synced')),
  performed_at DATETIME NOT NULL,
  created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_exercise_logs_performed_at ON exercise_logs(performed_at);

CREATE TABLE IF NOT EXISTS water_logs (
  day TEXT PRIMARY KEY,
  ounces REAL NOT NULL DEFAULT 0 CHECK(ounces >= 0),
  updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS goal_settings (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  calories INTEGER CHECK(calories >= 0),
  protein_g REAL NOT NULL DEFAULT 0 CHECK(protein_g >= 0),
  carbs_g REAL NOT NULL DEFAULT 0 CHECK(carbs_g >= 0),
  fat_g REAL NOT NULL DEFAULT 0 CHECK(fat_g >= 0),
  primary_goal TEXT NOT NULL DEFAULT 'maintain' CHECK(primary_goal IN ('lose', 'maintain', 'gain')),
  water_oz REAL NOT NULL DEFAULT 0 CHECK(water_oz >= 0),
  sodium_mg REAL CHECK(sodium_mg >= 0),
  iron_mg REAL CHECK(iron_mg >= 0),
  vitamin_c_mg REAL CHECK(vitamin_c_mg >= 0),
  calcium_mg REAL CHECK(calcium_mg >= 0),
  vitamin_d_ug REAL CHECK(vitamin_d_ug >= 0),
  target_weight_lb REAL CHECK(target_weight_lb > 0),
  effective_date TEXT NOT NULL,
  created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
  UNIQUE(effective_date)
);
`,
	},
	{
		version: 2,
		name:    "sleep_and_weight",
		sql: `
CREATE TABLE IF NOT EXISTS sleep_samples (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  started_at DATETIME NOT NULL,
  ended_at DATETIME NOT NULL,
  state TEXT NOT NULL CHECK(state IN ('in_bed', 'asleep')),
  created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_sleep_samples_started_at ON sleep_samples(started_at);

CREATE TABLE IF NOT EXISTS weight_entries (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  recorded_at DATETIME NOT NULL,
  weight_lb REAL NOT NULL CHECK(weight_lb > 0),
  created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_weight_entries_recorded_at ON weight_entries(recorded_at);
`,
	},
	{
		version: 3,
		name:    "achievements_and_challenges",
		sql: `
CREATE TABLE IF NOT EXISTS achievement_status (
  id TEXT PRIMARY KEY,
  achievement_id TEXT NOT NULL UNIQUE,
  unlocked INTEGER NOT NULL DEFAULT 0,
  unlocked_at DATETIME,
  progress INTEGER NOT NULL DEFAULT 0 CHECK(progress >= 0),
  updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS challenges (
  id TEXT PRIMARY KEY,
  type TEXT NOT NULL CHECK(type IN ('logging_streak', 'protein_goal_hit', 'workout_logged', 'calorie_range')),
  title TEXT NOT NULL,
  goal INTEGER NOT NULL CHECK(goal > 0),
  progress INTEGER NOT NULL DEFAULT 0 CHECK(progress >= 0),
  points INTEGER NOT NULL CHECK(points >= 0),
  completed INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME NOT NULL,
  expires_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_challenges_expires_at ON challenges(expires_at);

CREATE TABLE IF NOT EXISTS user_stats (
  id INTEGER PRIMARY KEY CHECK(id = 1),
  points INTEGER NOT NULL DEFAULT 0 CHECK(points >= 0),
  level INTEGER NOT NULL DEFAULT 1 CHECK(level >= 1)
);

INSERT OR IGNORE INTO user_stats(id, points, level) VALUES(1, 0, 1);
`,
	},
	{
		version: 4,
		name:    "achievement_daily_credit",
		sql: `
ALTER TABLE achievement_status ADD COLUMN last_credited_day TEXT NOT NULL DEFAULT '';
`,
	},
}

var defaultMeals = []string{"breakfast", "lunch", "dinner", "snack"}

func ApplyMigrations(db *sql.DB) error {
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS schema_migrations (
  version INTEGER PRIMARY KEY,
  name TEXT NOT NULL,
  applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`); err != nil {
		return fmt.Errorf("ensure schema_migrations table: %w", err)
	}

	for _, m := range migrations {
		var exists int
		err := db.QueryRow(`SELECT 1 FROM schema_migrations WHERE version = ?`, m.version).Scan(&exists)
		if err == nil {
			continue
		}
		if err != sql.ErrNoRows {
			return fmt.Errorf("check migration version %d: %w", m.version, err)
		}

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("begin migration tx: %w", err)
		}

		if _, err := tx.Exec(m.sql); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply migration version %d (%s): %w", m.version, m.name, err)
		}
		if _, err := tx.Exec(`INSERT INTO schema_migrations(version, name) VALUES(?, ?)`, m.version, m.name); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record migration version %d: %w", m.version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration version %d: %w", m.version, err)
		}
	}

	for _, name := range defaultMeals {
		if _, err := db.Exec(`INSERT OR IGNORE INTO meals(name, is_default) VALUES(?, 1)`, name); err != nil {
			return fmt.Errorf("seed default meal %q: %w", name, err)
		}
	}
	return nil
}

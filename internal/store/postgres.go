package store

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	_ "github.com/lib/pq"
)

// Postgres is an injectable Backend for deployments that want session
// records to survive a server restart. Record shapes are identical to the
// memory backend; only the lifetime changes (sessions are swept after the
// same idle TTL).
type Postgres struct {
	db  *sql.DB
	ttl time.Duration
}

// Connect opens the database from DB_* environment variables, following the
// same conventions as the rest of the configuration.
func Connect() (*sql.DB, error) {
	host := getEnv("DB_HOST", "localhost")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "rigveda_user")
	password := getEnv("DB_PASSWORD", "rigveda_password")
	dbname := getEnv("DB_NAME", "rigveda_learn")
	sslmode := getEnv("DB_SSLMODE", "disable")

	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbname, sslmode,
	)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	return db, nil
}

func NewPostgres(db *sql.DB) (*Postgres, error) {
	p := &Postgres{db: db, ttl: DefaultSessionTTL}
	if err := p.migrate(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Postgres) migrate() error {
	query := `
	CREATE TABLE IF NOT EXISTS session_records (
		session_id VARCHAR(64) NOT NULL,
		record_key VARCHAR(64) NOT NULL,
		value      JSONB NOT NULL,
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		PRIMARY KEY (session_id, record_key)
	);

	CREATE INDEX IF NOT EXISTS idx_session_records_updated ON session_records(updated_at);
	`
	if _, err := p.db.Exec(query); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	return nil
}

func (p *Postgres) Get(sessionID, key string) ([]byte, bool, error) {
	var raw []byte
	err := p.db.QueryRow(
		`SELECT value FROM session_records WHERE session_id = $1 AND record_key = $2`,
		sessionID, key,
	).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get record: %w", err)
	}
	return raw, true, nil
}

func (p *Postgres) Put(sessionID, key string, value []byte) error {
	_, err := p.db.Exec(
		`INSERT INTO session_records (session_id, record_key, value)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (session_id, record_key)
		 DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`,
		sessionID, key, value,
	)
	if err != nil {
		return fmt.Errorf("put record: %w", err)
	}
	return nil
}

func (p *Postgres) PutIfAbsent(sessionID, key string, value []byte) (bool, error) {
	result, err := p.db.Exec(
		`INSERT INTO session_records (session_id, record_key, value)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (session_id, record_key) DO NOTHING`,
		sessionID, key, value,
	)
	if err != nil {
		return false, fmt.Errorf("put record if absent: %w", err)
	}
	rows, _ := result.RowsAffected()
	return rows > 0, nil
}

func (p *Postgres) DeleteSession(sessionID string) error {
	_, err := p.db.Exec(
		`DELETE FROM session_records WHERE session_id = $1`,
		sessionID,
	)
	return err
}

// StartSweeper deletes records of sessions idle past the TTL, once an hour,
// until ctx is canceled.
func (p *Postgres) StartSweeper(ctx context.Context) {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	log.Println("[store] postgres session sweeper started")

	for {
		select {
		case <-ctx.Done():
			log.Println("[store] postgres session sweeper shutting down")
			return
		case <-ticker.C:
			result, err := p.db.Exec(
				`DELETE FROM session_records WHERE updated_at < NOW() - make_interval(secs => $1)`,
				p.ttl.Seconds(),
			)
			if err != nil {
				log.Printf("[store] sweep: %v", err)
				continue
			}
			if rows, _ := result.RowsAffected(); rows > 0 {
				log.Printf("[store] sweep: expired %d records", rows)
			}
		}
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

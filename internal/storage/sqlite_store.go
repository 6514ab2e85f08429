package storage

import (
	"database/sql"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// StoredEstimate is one persisted evaluation. ContractJSON and EstimateJSON
// hold the full request and client estimate; the other columns exist for
// filtering and idempotency lookups.
type StoredEstimate struct {
	ID            string    `json:"id"`
	ContractHash  string    `json:"contract_hash"`
	Profile       string    `json:"profile"`
	Quality       string    `json:"estimate_quality"`
	Tier          string    `json:"confidence_tier"`
	GrandTotalSEK int       `json:"grand_total_sek"`
	CreatedAt     time.Time `json:"created_at"`
	ContractJSON  string    `json:"-"`
	EstimateJSON  string    `json:"-"`
}

type SQLiteStore struct {
	db *sql.DB
}

func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA journal_mode=WAL;`); err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA foreign_keys=ON;`); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error { return s.db.Close() }

func (s *SQLiteStore) EnsureSchema() error {
	const createTable = `
CREATE TABLE IF NOT EXISTS estimates (
  id TEXT PRIMARY KEY,
  contract_hash TEXT NOT NULL,
  profile TEXT NOT NULL,
  quality TEXT NOT NULL,
  tier TEXT NOT NULL,
  grand_total_sek INTEGER NOT NULL,
  created_at TEXT NOT NULL,
  contract_json TEXT NOT NULL,
  estimate_json TEXT NOT NULL
);
`
	if _, err := s.db.Exec(createTable); err != nil {
		return err
	}
	if _, err := s.db.Exec(`CREATE INDEX IF NOT EXISTS idx_estimates_hash ON estimates(contract_hash);`); err != nil {
		return err
	}
	if _, err := s.db.Exec(`CREATE INDEX IF NOT EXISTS idx_estimates_created ON estimates(created_at);`); err != nil {
		return err
	}
	return nil
}

func (s *SQLiteStore) CountEstimates() (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM estimates`).Scan(&n)
	return n, err
}

func (s *SQLiteStore) SaveEstimate(e StoredEstimate) error {
	_, err := s.db.Exec(`
INSERT INTO estimates
(id, contract_hash, profile, quality, tier, grand_total_sek, created_at, contract_json, estimate_json)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
`,
		e.ID, e.ContractHash, e.Profile, e.Quality, e.Tier, e.GrandTotalSEK,
		e.CreatedAt.UTC().Format(time.RFC3339Nano), e.ContractJSON, e.EstimateJSON,
	)
	return err
}

func (s *SQLiteStore) GetEstimate(id string) (StoredEstimate, bool, error) {
	e, err := s.scanOne(s.db.QueryRow(`
SELECT id, contract_hash, profile, quality, tier, grand_total_sek, created_at, contract_json, estimate_json
FROM estimates WHERE id = ?
`, id))
	if err == sql.ErrNoRows {
		return StoredEstimate{}, false, nil
	}
	if err != nil {
		return StoredEstimate{}, false, err
	}
	return e, true, nil
}

// FindByContractHash returns the most recent estimate for a contract hash.
// Used as the idempotency lookup before re-evaluating.
func (s *SQLiteStore) FindByContractHash(hash string) (StoredEstimate, bool, error) {
	e, err := s.scanOne(s.db.QueryRow(`
SELECT id, contract_hash, profile, quality, tier, grand_total_sek, created_at, contract_json, estimate_json
FROM estimates WHERE contract_hash = ?
ORDER BY created_at DESC LIMIT 1
`, hash))
	if err == sql.ErrNoRows {
		return StoredEstimate{}, false, nil
	}
	if err != nil {
		return StoredEstimate{}, false, err
	}
	return e, true, nil
}

func (s *SQLiteStore) ListEstimatesFiltered(
	limit, offset int,
	profile, quality string,
	minTotal, maxTotal int,
	sortBy string,
) ([]StoredEstimate, int, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	where := make([]string, 0, 4)
	args := make([]any, 0, 8)

	if strings.TrimSpace(profile) != "" {
		where = append(where, "profile = ?")
		args = append(args, profile)
	}
	if strings.TrimSpace(quality) != "" {
		where = append(where, "quality = ?")
		args = append(args, quality)
	}
	if minTotal > 0 {
		where = append(where, "grand_total_sek >= ?")
		args = append(args, minTotal)
	}
	if maxTotal > 0 {
		where = append(where, "grand_total_sek <= ?")
		args = append(args, maxTotal)
	}

	whereSQL := ""
	if len(where) > 0 {
		whereSQL = "WHERE " + strings.Join(where, " AND ")
	}

	orderSQL := "ORDER BY created_at DESC"
	switch sortBy {
	case "total_asc":
		orderSQL = "ORDER BY grand_total_sek ASC"
	case "total_desc":
		orderSQL = "ORDER BY grand_total_sek DESC"
	}

	countSQL := "SELECT COUNT(*) FROM estimates " + whereSQL
	var total int
	if err := s.db.QueryRow(countSQL, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	rowsSQL := `
SELECT id, contract_hash, profile, quality, tier, grand_total_sek, created_at, contract_json, estimate_json
FROM estimates
` + whereSQL + "\n" + orderSQL + "\nLIMIT ? OFFSET ?"

	rowsArgs := append(append([]any{}, args...), limit, offset)

	rows, err := s.db.Query(rowsSQL, rowsArgs...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []StoredEstimate
	for rows.Next() {
		var e StoredEstimate
		var created string
		if err := rows.Scan(
			&e.ID, &e.ContractHash, &e.Profile, &e.Quality, &e.Tier, &e.GrandTotalSEK,
			&created, &e.ContractJSON, &e.EstimateJSON,
		); err != nil {
			return nil, 0, err
		}
		e.CreatedAt, _ = time.Parse(time.RFC3339Nano, created)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return out, total, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (s *SQLiteStore) scanOne(row rowScanner) (StoredEstimate, error) {
	var e StoredEstimate
	var created string
	err := row.Scan(
		&e.ID, &e.ContractHash, &e.Profile, &e.Quality, &e.Tier, &e.GrandTotalSEK,
		&created, &e.ContractJSON, &e.EstimateJSON,
	)
	if err != nil {
		return StoredEstimate{}, err
	}
	e.CreatedAt, _ = time.Parse(time.RFC3339Nano, created)
	return e, nil
}

package territory

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

const (
	sqlUpsertCluster = `INSERT INTO clusters (owner_id, revision, tiles, pattern, adjustment)
	    VALUES (:owner_id, :revision, :tiles, :pattern, :adjustment)
	    ON CONFLICT (owner_id) DO UPDATE SET
	    revision=EXCLUDED.revision, tiles=EXCLUDED.tiles, pattern=EXCLUDED.pattern, adjustment=EXCLUDED.adjustment;`
	sqlSelectClusters = `SELECT owner_id, revision, tiles, pattern, adjustment FROM clusters`
)

// ErrTileConflict is returned when saving a territory that overlaps
// another owner's.
var ErrTileConflict = errors.New("tile already belongs to another owner")

// Store keeps every owner's saved territory in a sqlite database.
type Store struct {
	filename string
	db       *sqlx.DB
}

// NewStore creates a store with a random name in the os tempdir.
func NewStore() (*Store, error) {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	fname := filepath.Join(os.TempDir(), fmt.Sprintf("territory.%d.sqlite", rng.Intn(1000000)))
	return OpenStore(fname)
}

// OpenStore given it's filename (database file) on disk.
// Will create it (and it's parent dir) if it doesn't exist.
func OpenStore(fname string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(fname), 0755); err != nil {
		return nil, err
	}

	db, err := sqlx.Open("sqlite3", fname)
	if err != nil {
		return nil, err
	}

	s := &Store{db: db, filename: fname}
	if err := s.init(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Filename returns the path to the database on disk
func (s *Store) Filename() string {
	return s.filename
}

// Close the underlying database
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveCluster writes (or overwrites) an owner's territory & returns the new
// revision id. Saving tiles that another owner holds fails with
// ErrTileConflict & writes nothing.
func (s *Store) SaveCluster(rec OwnerRecord) (string, error) {
	if rec.OwnerID == "" {
		return "", fmt.Errorf("owner id is required")
	}

	txn, err := s.db.Beginx()
	if err != nil {
		return "", err
	}

	others := []dbCluster{}
	err = txn.Select(&others, sqlSelectClusters+` WHERE owner_id != ?;`, rec.OwnerID)
	if err != nil {
		txn.Rollback()
		return "", err
	}

	mine := map[int]bool{}
	for _, i := range rec.Tiles {
		mine[i] = true
	}
	for _, o := range others {
		tiles, err := decodeIndices(o.Tiles)
		if err != nil {
			txn.Rollback()
			return "", err
		}
		for _, i := range tiles {
			if mine[i] {
				txn.Rollback()
				return "", fmt.Errorf("tile %d owned by %s: %w", i, o.OwnerID, ErrTileConflict)
			}
		}
	}

	row, err := newDBCluster(rec)
	if err != nil {
		txn.Rollback()
		return "", err
	}

	_, err = txn.NamedExec(sqlUpsertCluster, row)
	if err != nil {
		txn.Rollback()
		return "", err
	}

	return row.Revision, txn.Commit()
}

// Cluster returns an owner's saved territory, nil if they have none.
func (s *Store) Cluster(owner string) (*OwnerRecord, error) {
	row := dbCluster{}
	err := s.db.Get(&row, sqlSelectClusters+` WHERE owner_id = ? LIMIT 1;`, owner)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	return row.record()
}

// Revision returns the revision id of an owner's saved territory ("" if none)
func (s *Store) Revision(owner string) (string, error) {
	var rev string
	err := s.db.Get(&rev, `SELECT revision FROM clusters WHERE owner_id = ? LIMIT 1;`, owner)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return rev, err
}

// Feed returns every saved territory, ordered by owner id. This is the
// assignment feed handed to an Editor.
func (s *Store) Feed() ([]OwnerRecord, error) {
	rows := []dbCluster{}
	if err := s.db.Select(&rows, sqlSelectClusters+` ORDER BY owner_id;`); err != nil {
		return nil, err
	}

	out := make([]OwnerRecord, 0, len(rows))
	for _, r := range rows {
		rec, err := r.record()
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	return out, nil
}

// Owners returns the ids of everyone with a saved territory, sorted
func (s *Store) Owners() ([]string, error) {
	out := []string{}
	err := s.db.Select(&out, `SELECT owner_id FROM clusters ORDER BY owner_id;`)
	return out, err
}

// DeleteCluster removes an owner's territory. Deleting nothing is not an error.
func (s *Store) DeleteCluster(owner string) error {
	_, err := s.db.Exec(`DELETE FROM clusters WHERE owner_id = ?;`, owner)
	return err
}

// init creates our table if it doesn't exist
func (s *Store) init() error {
	createClusters := `CREATE TABLE IF NOT EXISTS clusters(
		owner_id TEXT PRIMARY KEY,
		revision TEXT NOT NULL,
		tiles TEXT NOT NULL,
		pattern TEXT NOT NULL DEFAULT '',
		adjustment TEXT NOT NULL DEFAULT '{}'
	    );`
	_, err := s.db.Exec(createClusters)
	return err
}

// dbCluster is one row of the clusters table.
// Tiles are csv & the adjustment is JSON.
type dbCluster struct {
	OwnerID    string `db:"owner_id"`
	Revision   string `db:"revision"`
	Tiles      string `db:"tiles"`
	Pattern    string `db:"pattern"`
	Adjustment string `db:"adjustment"`
}

// newDBCluster encodes a record with a fresh revision id
func newDBCluster(rec OwnerRecord) (dbCluster, error) {
	adj, err := json.Marshal(orDefault(rec.Adjustment))
	if err != nil {
		return dbCluster{}, err
	}
	return dbCluster{
		OwnerID:    rec.OwnerID,
		Revision:   uuid.New().String(),
		Tiles:      encodeIndices(sortedCopy(rec.Tiles)),
		Pattern:    rec.Pattern,
		Adjustment: string(adj),
	}, nil
}

// record decodes a row back into an OwnerRecord
func (c dbCluster) record() (*OwnerRecord, error) {
	tiles, err := decodeIndices(c.Tiles)
	if err != nil {
		return nil, fmt.Errorf("owner %s: bad tiles: %w", c.OwnerID, err)
	}

	adj := DefaultAdjustment()
	if c.Adjustment != "" {
		if err := json.Unmarshal([]byte(c.Adjustment), &adj); err != nil {
			return nil, fmt.Errorf("owner %s: bad adjustment: %w", c.OwnerID, err)
		}
	}
	adj = orDefault(adj)

	return &OwnerRecord{
		OwnerID:    c.OwnerID,
		Tiles:      tiles,
		Pattern:    c.Pattern,
		Adjustment: adj,
	}, nil
}

// orDefault swaps an unset (zero) adjustment for the neutral one, a zero
// adjustment would draw every pattern black.
func orDefault(adj PatternAdjustment) PatternAdjustment {
	if adj == (PatternAdjustment{}) {
		return DefaultAdjustment()
	}
	return adj
}

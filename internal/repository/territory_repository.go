package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/adventurestreak/territory-backend-go/internal/models"
	"github.com/adventurestreak/territory-backend-go/internal/spatial"
	"github.com/adventurestreak/territory-backend-go/internal/territory"
)

const (
	// maxIDsPerQuery bounds point lookups by id, mirroring document stores
	// that cap "in" queries at 30 ids
	maxIDsPerQuery = 30

	// writeChunkSize bounds cells per write transaction. A chunk boundary
	// never splits one cell's read-decide-write unit.
	writeChunkSize = 200

	busyRetries = 5
)

// TerritoryRepository handles database operations for territory cells
type TerritoryRepository struct {
	db *sql.DB
}

// NewTerritoryRepository creates a new territory repository
func NewTerritoryRepository(db *sql.DB) *TerritoryRepository {
	return &TerritoryRepository{db: db}
}

const cellColumns = "cell_id, center_lat, center_lon, expires_at, last_conquered_at, user_id, activity_id, last_interaction"

func scanCell(row interface{ Scan(...interface{}) error }) (*models.Cell, error) {
	var c models.Cell
	var expiresAt, lastConqueredAt int64
	err := row.Scan(&c.ID, &c.CenterLatitude, &c.CenterLongitude,
		&expiresAt, &lastConqueredAt, &c.UserID, &c.ActivityID, &c.LastInteraction)
	if err != nil {
		return nil, err
	}
	c.ExpiresAt = time.Unix(expiresAt, 0).UTC()
	c.LastConqueredAt = time.Unix(lastConqueredAt, 0).UTC()

	corners := spatial.CellBoundary(c.CenterLatitude, c.CenterLongitude)
	c.Boundary = make([]models.LatLng, 0, len(corners))
	for _, corner := range corners {
		c.Boundary = append(c.Boundary, models.LatLng{Latitude: corner[0], Longitude: corner[1]})
	}
	return &c, nil
}

// GetCell retrieves a single cell by id, returning nil when unclaimed
func (r *TerritoryRepository) GetCell(cellID string) (*models.Cell, error) {
	query := "SELECT " + cellColumns + " FROM territories WHERE cell_id = ?"
	c, err := scanCell(r.db.QueryRow(query, cellID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cell: %w", err)
	}
	return c, nil
}

// GetCellsByIDs retrieves cells for a set of ids, chunking queries to at
// most maxIDsPerQuery ids each. Missing ids are simply absent from the map.
func (r *TerritoryRepository) GetCellsByIDs(ids []string) (map[string]models.Cell, error) {
	cells := make(map[string]models.Cell, len(ids))

	for start := 0; start < len(ids); start += maxIDsPerQuery {
		end := start + maxIDsPerQuery
		if end > len(ids) {
			end = len(ids)
		}
		chunk := ids[start:end]

		placeholders := strings.Repeat("?,", len(chunk))
		placeholders = placeholders[:len(placeholders)-1]
		query := "SELECT " + cellColumns + " FROM territories WHERE cell_id IN (" + placeholders + ")"

		args := make([]interface{}, len(chunk))
		for i, id := range chunk {
			args[i] = id
		}

		rows, err := r.db.Query(query, args...)
		if err != nil {
			return nil, fmt.Errorf("failed to query cells: %w", err)
		}
		for rows.Next() {
			c, err := scanCell(rows)
			if err != nil {
				rows.Close()
				return nil, fmt.Errorf("failed to scan cell: %w", err)
			}
			cells[c.ID] = *c
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to read cells: %w", err)
		}
		rows.Close()
	}

	return cells, nil
}

// GetCellsInBounds retrieves cells whose centers fall inside a bounding box
func (r *TerritoryRepository) GetCellsInBounds(minLat, maxLat, minLon, maxLon float64, limit int) ([]models.Cell, error) {
	if limit <= 0 || limit > 10000 {
		limit = 10000
	}
	query := "SELECT " + cellColumns + ` FROM territories
		WHERE center_lat >= ? AND center_lat <= ? AND center_lon >= ? AND center_lon <= ?
		ORDER BY cell_id LIMIT ?`

	rows, err := r.db.Query(query, minLat, maxLat, minLon, maxLon, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query cells in bounds: %w", err)
	}
	defer rows.Close()

	var cells []models.Cell
	for rows.Next() {
		c, err := scanCell(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cell: %w", err)
		}
		cells = append(cells, *c)
	}
	return cells, rows.Err()
}

// GetCellHistory retrieves the newest history entries for a cell
func (r *TerritoryRepository) GetCellHistory(cellID string, limit int) ([]models.CellHistoryEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.Query(`
		SELECT cell_id, user_id, activity_id, interaction, previous_owner_id, timestamp
		FROM territory_history WHERE cell_id = ?
		ORDER BY timestamp DESC, id DESC LIMIT ?`, cellID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query cell history: %w", err)
	}
	defer rows.Close()

	var entries []models.CellHistoryEntry
	for rows.Next() {
		var e models.CellHistoryEntry
		var ts int64
		if err := rows.Scan(&e.CellID, &e.UserID, &e.ActivityID, &e.Interaction, &e.PreviousOwnerID, &ts); err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}
		e.Timestamp = time.Unix(ts, 0).UTC()
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// ApplyBatch runs the read-decide-write cycle for every candidate cell.
// Candidates are processed in chunks; each chunk runs inside one immediate
// transaction, so every cell's stored record is re-read under the write
// lock and the decision can never act on a stale owner. The decide function
// receives the candidate and the current stored record (nil when unclaimed)
// and returns the resolution to apply; skips write nothing.
//
// On a busy database the chunk transaction is retried from scratch, which
// is safe because deciding is pure and nothing from the failed attempt is
// kept.
func (r *TerritoryRepository) ApplyBatch(ctx context.Context, candidates []models.Cell,
	decide func(candidate models.Cell, existing *models.Cell) territory.Resolution) ([]territory.Resolution, error) {

	resolutions := make([]territory.Resolution, 0, len(candidates))

	for start := 0; start < len(candidates); start += writeChunkSize {
		end := start + writeChunkSize
		if end > len(candidates) {
			end = len(candidates)
		}
		chunk := candidates[start:end]

		var chunkRes []territory.Resolution
		err := r.withBusyRetry(func() error {
			var txErr error
			chunkRes, txErr = r.applyChunk(ctx, chunk, decide)
			return txErr
		})
		if err != nil {
			return nil, err
		}
		resolutions = append(resolutions, chunkRes...)
	}

	return resolutions, nil
}

func (r *TerritoryRepository) applyChunk(ctx context.Context, chunk []models.Cell,
	decide func(models.Cell, *models.Cell) territory.Resolution) ([]territory.Resolution, error) {

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	selectStmt, err := tx.PrepareContext(ctx, "SELECT "+cellColumns+" FROM territories WHERE cell_id = ?")
	if err != nil {
		return nil, fmt.Errorf("failed to prepare select: %w", err)
	}
	defer selectStmt.Close()

	upsertStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO territories (cell_id, center_lat, center_lon, expires_at, last_conquered_at, user_id, activity_id, last_interaction, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, strftime('%s','now'))
		ON CONFLICT(cell_id) DO UPDATE SET
			expires_at = excluded.expires_at,
			last_conquered_at = excluded.last_conquered_at,
			user_id = excluded.user_id,
			activity_id = excluded.activity_id,
			last_interaction = excluded.last_interaction,
			updated_at = excluded.updated_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare upsert: %w", err)
	}
	defer upsertStmt.Close()

	historyStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO territory_history (cell_id, user_id, activity_id, interaction, previous_owner_id, timestamp)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare history insert: %w", err)
	}
	defer historyStmt.Close()

	resolutions := make([]territory.Resolution, 0, len(chunk))
	for _, candidate := range chunk {
		existing, err := scanCell(selectStmt.QueryRow(candidate.ID))
		if err == sql.ErrNoRows {
			existing = nil
		} else if err != nil {
			return nil, fmt.Errorf("failed to read cell %s: %w", candidate.ID, err)
		}

		res := decide(candidate, existing)
		resolutions = append(resolutions, res)
		if res.Outcome == territory.OutcomeSkip || res.Cell == nil {
			continue
		}

		c := res.Cell
		if _, err := upsertStmt.ExecContext(ctx,
			c.ID, c.CenterLatitude, c.CenterLongitude,
			c.ExpiresAt.Unix(), c.LastConqueredAt.Unix(),
			c.UserID, c.ActivityID, string(c.LastInteraction),
		); err != nil {
			return nil, fmt.Errorf("failed to write cell %s: %w", c.ID, err)
		}

		h := res.History
		if _, err := historyStmt.ExecContext(ctx,
			h.CellID, h.UserID, h.ActivityID, string(h.Interaction), h.PreviousOwnerID, h.Timestamp.Unix(),
		); err != nil {
			return nil, fmt.Errorf("failed to write history for %s: %w", h.CellID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit chunk: %w", err)
	}
	return resolutions, nil
}

func (r *TerritoryRepository) withBusyRetry(fn func() error) error {
	var err error
	for attempt := 0; attempt < busyRetries; attempt++ {
		if err = fn(); err == nil || !isBusy(err) {
			return err
		}
		time.Sleep(time.Duration(attempt+1) * 50 * time.Millisecond)
	}
	return err
}

func isBusy(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

// CountCellsByOwner returns how many non-expired cells a user owns at ref
func (r *TerritoryRepository) CountCellsByOwner(userID string, ref time.Time) (int, error) {
	var count int
	err := r.db.QueryRow(
		"SELECT COUNT(*) FROM territories WHERE user_id = ? AND expires_at >= ?",
		userID, ref.Unix(),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count cells: %w", err)
	}
	return count, nil
}

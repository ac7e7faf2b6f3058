package storage

import (
	"database/sql"
	"fmt"

	"evalgo.org/wnbrowser/models"
)

// ListSynsets returns up to limit synsets ordered by wnid, starting at the
// given offset into the ordered result set.
func (s *Storage) ListSynsets(start, limit int) ([]models.Synset, error) {
	rows, err := s.db.Query(
		"SELECT wnid, words, gloss FROM synsets ORDER BY wnid LIMIT ? OFFSET ?",
		limit, start,
	)
	if err != nil {
		return nil, fmt.Errorf("listing synsets: %w", err)
	}
	defer rows.Close()

	return scanSynsets(rows)
}

// GetSynset retrieves one synset by its WordNet ID.
func (s *Storage) GetSynset(wnid string) (*models.Synset, error) {
	var synset models.Synset
	err := s.db.QueryRow(
		"SELECT wnid, words, gloss FROM synsets WHERE wnid = ?", wnid,
	).Scan(&synset.Wnid, &synset.Words, &synset.Gloss)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting synset %s: %w", wnid, err)
	}
	return &synset, nil
}

// CreateSynset inserts a new synset. Returns ErrConflict if the wnid is
// already taken.
func (s *Storage) CreateSynset(synset *models.Synset) error {
	return s.inTx(func(tx *sql.Tx) error {
		var exists bool
		err := tx.QueryRow("SELECT 1 FROM synsets WHERE wnid = ?", synset.Wnid).Scan(&exists)
		if err == nil {
			return ErrConflict
		}
		if err != sql.ErrNoRows {
			return fmt.Errorf("checking synset existence: %w", err)
		}
		if _, err := tx.Exec(
			"INSERT INTO synsets (wnid, words, gloss) VALUES (?, ?, ?)",
			synset.Wnid, synset.Words, synset.Gloss,
		); err != nil {
			return fmt.Errorf("inserting synset %s: %w", synset.Wnid, err)
		}
		return nil
	})
}

// UpdateSynset replaces all fields of the synset identified by wnid. The
// update may rename the primary key itself; the engine cascades the rename
// to dependent image and hyponym rows. Returns ErrNotFound if the target is
// absent and ErrConflict if the new wnid collides with another synset.
func (s *Storage) UpdateSynset(wnid string, synset *models.Synset) error {
	return s.inTx(func(tx *sql.Tx) error {
		var exists bool
		err := tx.QueryRow("SELECT 1 FROM synsets WHERE wnid = ?", wnid).Scan(&exists)
		if err == sql.ErrNoRows {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("checking synset existence: %w", err)
		}

		if synset.Wnid != wnid {
			err := tx.QueryRow("SELECT 1 FROM synsets WHERE wnid = ?", synset.Wnid).Scan(&exists)
			if err == nil {
				return ErrConflict
			}
			if err != sql.ErrNoRows {
				return fmt.Errorf("checking synset collision: %w", err)
			}
		}

		if _, err := tx.Exec(
			"UPDATE synsets SET wnid = ?, words = ?, gloss = ? WHERE wnid = ?",
			synset.Wnid, synset.Words, synset.Gloss, wnid,
		); err != nil {
			return fmt.Errorf("updating synset %s: %w", wnid, err)
		}
		return nil
	})
}

// DeleteSynset removes the synset. The engine cascades to its images and to
// hyponym edges where it appears on either side of the relation.
func (s *Storage) DeleteSynset(wnid string) error {
	return s.inTx(func(tx *sql.Tx) error {
		res, err := tx.Exec("DELETE FROM synsets WHERE wnid = ?", wnid)
		if err != nil {
			return fmt.Errorf("deleting synset %s: %w", wnid, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("deleting synset %s: %w", wnid, err)
		}
		if n == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func scanSynsets(rows *sql.Rows) ([]models.Synset, error) {
	var synsets []models.Synset
	for rows.Next() {
		var synset models.Synset
		if err := rows.Scan(&synset.Wnid, &synset.Words, &synset.Gloss); err != nil {
			return nil, fmt.Errorf("scanning synset: %w", err)
		}
		synsets = append(synsets, synset)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating synsets: %w", err)
	}
	return synsets, nil
}

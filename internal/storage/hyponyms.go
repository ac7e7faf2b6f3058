package storage

import (
	"database/sql"
	"fmt"

	"evalgo.org/wnbrowser/models"
)

// ListHyponyms returns up to limit hyponyms of the synset, ordered by the
// hyponym's wnid, starting at the given offset. The caller is expected to
// have checked that the synset itself exists.
func (s *Storage) ListHyponyms(wnid string, start, limit int) ([]models.Synset, error) {
	rows, err := s.db.Query(
		`SELECT s.wnid, s.words, s.gloss
		   FROM hyponyms h JOIN synsets s ON s.wnid = h.hyponym_wnid
		  WHERE h.synset_wnid = ?
		  ORDER BY s.wnid LIMIT ? OFFSET ?`,
		wnid, limit, start,
	)
	if err != nil {
		return nil, fmt.Errorf("listing hyponyms of %s: %w", wnid, err)
	}
	defer rows.Close()

	return scanSynsets(rows)
}

// HyponymExists reports whether the edge (wnid, hyponymWnid) is present.
// Membership is checked by edge identity, not by content equality.
func (s *Storage) HyponymExists(wnid, hyponymWnid string) (bool, error) {
	var exists bool
	err := s.db.QueryRow(
		"SELECT 1 FROM hyponyms WHERE synset_wnid = ? AND hyponym_wnid = ?",
		wnid, hyponymWnid,
	).Scan(&exists)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking hyponym edge: %w", err)
	}
	return true, nil
}

// AddHyponym appends the edge (wnid, hyponymWnid). Both synsets must exist;
// ErrNotFound names neither, so callers verify existence beforehand to give
// precise messages. Returns ErrConflict if the edge is already present.
func (s *Storage) AddHyponym(wnid, hyponymWnid string) error {
	return s.inTx(func(tx *sql.Tx) error {
		var exists bool
		err := tx.QueryRow(
			"SELECT 1 FROM hyponyms WHERE synset_wnid = ? AND hyponym_wnid = ?",
			wnid, hyponymWnid,
		).Scan(&exists)
		if err == nil {
			return ErrConflict
		}
		if err != sql.ErrNoRows {
			return fmt.Errorf("checking hyponym edge: %w", err)
		}

		if _, err := tx.Exec(
			"INSERT INTO hyponyms (synset_wnid, hyponym_wnid) VALUES (?, ?)",
			wnid, hyponymWnid,
		); err != nil {
			return fmt.Errorf("inserting hyponym edge %s -> %s: %w", wnid, hyponymWnid, err)
		}
		return nil
	})
}

// RemoveHyponym deletes only the edge, never the target synset.
func (s *Storage) RemoveHyponym(wnid, hyponymWnid string) error {
	return s.inTx(func(tx *sql.Tx) error {
		res, err := tx.Exec(
			"DELETE FROM hyponyms WHERE synset_wnid = ? AND hyponym_wnid = ?",
			wnid, hyponymWnid,
		)
		if err != nil {
			return fmt.Errorf("deleting hyponym edge %s -> %s: %w", wnid, hyponymWnid, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("deleting hyponym edge %s -> %s: %w", wnid, hyponymWnid, err)
		}
		if n == 0 {
			return ErrNotFound
		}
		return nil
	})
}

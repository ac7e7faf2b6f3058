package storage

import (
	"database/sql"
	"fmt"

	"evalgo.org/wnbrowser/models"
)

// ListSynsetImages returns up to limit images of the synset ordered by imid,
// starting at the given offset.
func (s *Storage) ListSynsetImages(wnid string, start, limit int) ([]models.Image, error) {
	rows, err := s.db.Query(
		`SELECT synset_wnid, imid, url, COALESCE(date, '')
		   FROM images WHERE synset_wnid = ?
		  ORDER BY imid LIMIT ? OFFSET ?`,
		wnid, limit, start,
	)
	if err != nil {
		return nil, fmt.Errorf("listing images of %s: %w", wnid, err)
	}
	defer rows.Close()

	return scanImages(rows)
}

// ListImages returns up to limit images across all synsets, ordered by
// (synset_wnid, imid), starting at the given offset.
func (s *Storage) ListImages(start, limit int) ([]models.Image, error) {
	rows, err := s.db.Query(
		`SELECT synset_wnid, imid, url, COALESCE(date, '')
		   FROM images ORDER BY synset_wnid, imid LIMIT ? OFFSET ?`,
		limit, start,
	)
	if err != nil {
		return nil, fmt.Errorf("listing images: %w", err)
	}
	defer rows.Close()

	return scanImages(rows)
}

// GetImage retrieves one image by its composite identity.
func (s *Storage) GetImage(wnid string, imid int) (*models.Image, error) {
	var img models.Image
	err := s.db.QueryRow(
		"SELECT synset_wnid, imid, url, COALESCE(date, '') FROM images WHERE synset_wnid = ? AND imid = ?",
		wnid, imid,
	).Scan(&img.SynsetWnid, &img.Imid, &img.URL, &img.Date)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting image %s/%d: %w", wnid, imid, err)
	}
	return &img, nil
}

// CreateImage inserts a new image under the synset. Returns ErrConflict if
// (wnid, imid) is already taken.
func (s *Storage) CreateImage(wnid string, img *models.Image) error {
	return s.inTx(func(tx *sql.Tx) error {
		var exists bool
		err := tx.QueryRow(
			"SELECT 1 FROM images WHERE synset_wnid = ? AND imid = ?", wnid, img.Imid,
		).Scan(&exists)
		if err == nil {
			return ErrConflict
		}
		if err != sql.ErrNoRows {
			return fmt.Errorf("checking image existence: %w", err)
		}
		if _, err := tx.Exec(
			"INSERT INTO images (synset_wnid, imid, url, date) VALUES (?, ?, ?, NULLIF(?, ''))",
			wnid, img.Imid, img.URL, img.Date,
		); err != nil {
			return fmt.Errorf("inserting image %s/%d: %w", wnid, img.Imid, err)
		}
		return nil
	})
}

// UpdateImage replaces the image identified by (wnid, imid). The imid may
// change; an atomic UPDATE preserves the row, it is not delete+recreate.
// Returns ErrNotFound if the target is absent and ErrConflict if the new
// imid collides with a different existing image of the synset.
func (s *Storage) UpdateImage(wnid string, imid int, img *models.Image) error {
	return s.inTx(func(tx *sql.Tx) error {
		var exists bool
		err := tx.QueryRow(
			"SELECT 1 FROM images WHERE synset_wnid = ? AND imid = ?", wnid, imid,
		).Scan(&exists)
		if err == sql.ErrNoRows {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("checking image existence: %w", err)
		}

		if img.Imid != imid {
			err := tx.QueryRow(
				"SELECT 1 FROM images WHERE synset_wnid = ? AND imid = ?", wnid, img.Imid,
			).Scan(&exists)
			if err == nil {
				return ErrConflict
			}
			if err != sql.ErrNoRows {
				return fmt.Errorf("checking image collision: %w", err)
			}
		}

		if _, err := tx.Exec(
			"UPDATE images SET imid = ?, url = ?, date = NULLIF(?, '') WHERE synset_wnid = ? AND imid = ?",
			img.Imid, img.URL, img.Date, wnid, imid,
		); err != nil {
			return fmt.Errorf("updating image %s/%d: %w", wnid, imid, err)
		}
		return nil
	})
}

// DeleteImage removes the image.
func (s *Storage) DeleteImage(wnid string, imid int) error {
	return s.inTx(func(tx *sql.Tx) error {
		res, err := tx.Exec(
			"DELETE FROM images WHERE synset_wnid = ? AND imid = ?", wnid, imid,
		)
		if err != nil {
			return fmt.Errorf("deleting image %s/%d: %w", wnid, imid, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("deleting image %s/%d: %w", wnid, imid, err)
		}
		if n == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func scanImages(rows *sql.Rows) ([]models.Image, error) {
	var images []models.Image
	for rows.Next() {
		var img models.Image
		if err := rows.Scan(&img.SynsetWnid, &img.Imid, &img.URL, &img.Date); err != nil {
			return nil, fmt.Errorf("scanning image: %w", err)
		}
		images = append(images, img)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating images: %w", err)
	}
	return images, nil
}

// Package loader populates the database from the ImageNet release files:
//
//	words.txt         wnid<TAB>words
//	gloss.txt         wnid<TAB>gloss
//	fall11_urls.txt   wnid_imid<TAB>url (Latin-1 encoded)
//	wordnet.is_a.txt  wnid<SPACE>hyponym wnid
//
// words.txt and gloss.txt list the same wnids in the same order and are
// read in lockstep. Rows that fail field validation, refer to unknown
// synsets or duplicate existing ones are counted and skipped rather than
// aborting the load.
package loader

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"evalgo.org/wnbrowser/internal/config"
	"evalgo.org/wnbrowser/internal/storage"
	"evalgo.org/wnbrowser/models"
)

// 2 MiB line buffer; the url file has some very long lines.
const maxLineSize = 2 << 20

// Stats reports what a load run did.
type Stats struct {
	Synsets  int
	Images   int
	Hyponyms int
	Skipped  int
}

// Loader reads the ImageNet flat files from a directory into storage.
type Loader struct {
	store *storage.Storage
	dir   string
	date  func() string
}

// New creates a loader for the configured data directory.
func New(store *storage.Storage, cfg *config.Config) *Loader {
	return &Loader{
		store: store,
		dir:   cfg.Loader.Dir,
		date:  randomUploadDate,
	}
}

// randomUploadDate makes up a date in the fall 2011 crawl window, which is
// when the url list was collected. The files themselves carry no dates.
func randomUploadDate() string {
	t := time.Date(2011, time.Month(9+rand.Intn(4)), 1+rand.Intn(30), 0, 0, 0, 0, time.UTC)
	return t.Format("2006-01-02")
}

// Load reads all four files in dependency order.
func (l *Loader) Load(ctx context.Context) (*Stats, error) {
	stats := &Stats{}

	if err := l.loadSynsets(ctx, stats); err != nil {
		return nil, fmt.Errorf("loading synsets: %w", err)
	}
	if err := l.loadImages(ctx, stats); err != nil {
		return nil, fmt.Errorf("loading images: %w", err)
	}
	if err := l.loadHyponyms(ctx, stats); err != nil {
		return nil, fmt.Errorf("loading hyponyms: %w", err)
	}

	return stats, nil
}

// loadSynsets reads words.txt and gloss.txt in lockstep.
func (l *Loader) loadSynsets(ctx context.Context, stats *Stats) error {
	wordsFile, err := os.Open(filepath.Join(l.dir, "words.txt"))
	if err != nil {
		return err
	}
	defer wordsFile.Close()

	glossFile, err := os.Open(filepath.Join(l.dir, "gloss.txt"))
	if err != nil {
		return err
	}
	defer glossFile.Close()

	words := newLineScanner(wordsFile)
	gloss := newLineScanner(glossFile)

	for words.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !gloss.Scan() {
			return errors.New("gloss.txt is shorter than words.txt")
		}

		wordsWnid, synsetWords, ok := strings.Cut(words.Text(), "\t")
		if !ok {
			stats.Skipped++
			continue
		}
		glossWnid, synsetGloss, ok := strings.Cut(gloss.Text(), "\t")
		if !ok {
			stats.Skipped++
			continue
		}
		if wordsWnid != glossWnid {
			return fmt.Errorf("words.txt and gloss.txt diverge at %s / %s", wordsWnid, glossWnid)
		}

		synset := &models.Synset{Wnid: wordsWnid, Words: synsetWords, Gloss: synsetGloss}
		if err := synset.Validate(); err != nil {
			stats.Skipped++
			continue
		}
		if err := l.store.CreateSynset(synset); err != nil {
			if errors.Is(err, storage.ErrConflict) {
				stats.Skipped++
				continue
			}
			return err
		}
		stats.Synsets++
	}
	if err := words.Err(); err != nil {
		return err
	}
	return gloss.Err()
}

// loadImages reads fall11_urls.txt. Each line names an image as wnid_imid
// followed by its url.
func (l *Loader) loadImages(ctx context.Context, stats *Stats) error {
	urlsFile, err := os.Open(filepath.Join(l.dir, "fall11_urls.txt"))
	if err != nil {
		return err
	}
	defer urlsFile.Close()

	// The file is grouped by wnid, so one existence lookup covers a run
	// of lines.
	lastWnid := ""
	lastKnown := false

	scanner := newLineScanner(urlsFile)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		line := latin1ToUTF8(scanner.Bytes())
		name, url, ok := strings.Cut(line, "\t")
		if !ok {
			stats.Skipped++
			continue
		}
		wnid, imidText, ok := strings.Cut(name, "_")
		if !ok {
			stats.Skipped++
			continue
		}
		imid, err := strconv.Atoi(imidText)
		if err != nil {
			stats.Skipped++
			continue
		}

		img := &models.Image{SynsetWnid: wnid, Imid: imid, URL: url, Date: l.date()}
		if err := img.Validate(); err != nil {
			stats.Skipped++
			continue
		}

		if wnid != lastWnid {
			lastKnown, err = l.synsetExists(wnid)
			if err != nil {
				return err
			}
			lastWnid = wnid
		}
		if !lastKnown {
			stats.Skipped++
			continue
		}

		if err := l.store.CreateImage(wnid, img); err != nil {
			if errors.Is(err, storage.ErrConflict) {
				stats.Skipped++
				continue
			}
			return err
		}
		stats.Images++
	}
	return scanner.Err()
}

// loadHyponyms reads wordnet.is_a.txt, one relation per line.
func (l *Loader) loadHyponyms(ctx context.Context, stats *Stats) error {
	hyponymsFile, err := os.Open(filepath.Join(l.dir, "wordnet.is_a.txt"))
	if err != nil {
		return err
	}
	defer hyponymsFile.Close()

	scanner := newLineScanner(hyponymsFile)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		wnid, hyponymWnid, ok := strings.Cut(scanner.Text(), " ")
		if !ok {
			stats.Skipped++
			continue
		}

		known := true
		for _, id := range []string{wnid, hyponymWnid} {
			exists, err := l.synsetExists(id)
			if err != nil {
				return err
			}
			if !exists {
				known = false
				break
			}
		}
		if !known {
			stats.Skipped++
			continue
		}

		if err := l.store.AddHyponym(wnid, hyponymWnid); err != nil {
			if errors.Is(err, storage.ErrConflict) {
				stats.Skipped++
				continue
			}
			return err
		}
		stats.Hyponyms++
	}
	return scanner.Err()
}

func (l *Loader) synsetExists(wnid string) (bool, error) {
	_, err := l.store.GetSynset(wnid)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, storage.ErrNotFound) {
		return false, nil
	}
	return false, err
}

func newLineScanner(f *os.File) *bufio.Scanner {
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)
	return scanner
}

// latin1ToUTF8 converts a Latin-1 byte sequence, mapping each byte to the
// code point of the same value.
func latin1ToUTF8(data []byte) string {
	var sb strings.Builder
	sb.Grow(len(data))
	for _, b := range data {
		sb.WriteRune(rune(b))
	}
	return sb.String()
}

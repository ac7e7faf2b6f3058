//go:build integration
// +build integration

package integration

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"evalgo.org/wnbrowser/internal/config"
	"evalgo.org/wnbrowser/internal/loader"
	"evalgo.org/wnbrowser/internal/storage"
	"evalgo.org/wnbrowser/models"
)

// TestLoadAndBrowse loads a generated ImageNet file set and verifies the
// stored hierarchy page by page.
func TestLoadAndBrowse(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	dataDir := t.TempDir()

	// 120 synsets, the first carrying 35 images and all others as its
	// hyponyms, to cross both page size boundaries.
	var words, gloss, urls, isa string
	for i := 1; i <= 120; i++ {
		wnid := fmt.Sprintf("n%08d", i)
		words += fmt.Sprintf("%s\tsynset %d\n", wnid, i)
		gloss += fmt.Sprintf("%s\tgloss of synset %d\n", wnid, i)
		if i > 1 {
			isa += fmt.Sprintf("n00000001 %s\n", wnid)
		}
	}
	for i := 1; i <= 35; i++ {
		urls += fmt.Sprintf("n00000001_%d\thttp://static.flickr.com/%d/%d.jpg\n", i, i, i)
	}
	for name, content := range map[string]string{
		"words.txt":        words,
		"gloss.txt":        gloss,
		"fall11_urls.txt":  urls,
		"wordnet.is_a.txt": isa,
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dataDir, name), []byte(content), 0o644))
	}

	cfg := &config.Config{}
	cfg.Database.Path = filepath.Join(t.TempDir(), "integration.db")
	cfg.Loader.Dir = dataDir

	store, err := storage.New(cfg)
	require.NoError(t, err, "Failed to initialize storage")
	defer store.Close()

	stats, err := loader.New(store, cfg).Load(context.Background())
	require.NoError(t, err, "Failed to load data")
	require.Equal(t, 120, stats.Synsets)
	require.Equal(t, 35, stats.Images)
	require.Equal(t, 119, stats.Hyponyms)
	require.Zero(t, stats.Skipped)

	t.Run("Synset Pages", func(t *testing.T) {
		page, err := store.ListSynsets(0, 51)
		require.NoError(t, err)
		require.Len(t, page, 51)
		require.Equal(t, "n00000001", page[0].Wnid)

		page, err = store.ListSynsets(100, 51)
		require.NoError(t, err)
		require.Len(t, page, 20)
		require.Equal(t, "n00000120", page[19].Wnid)
	})

	t.Run("Image Pages", func(t *testing.T) {
		page, err := store.ListSynsetImages("n00000001", 0, 31)
		require.NoError(t, err)
		require.Len(t, page, 31)

		page, err = store.ListSynsetImages("n00000001", 30, 31)
		require.NoError(t, err)
		require.Len(t, page, 5)
	})

	t.Run("Hyponym Pages", func(t *testing.T) {
		page, err := store.ListHyponyms("n00000001", 0, 51)
		require.NoError(t, err)
		require.Len(t, page, 51)
		require.Equal(t, "n00000002", page[0].Wnid)
	})

	t.Run("Rename Cascade", func(t *testing.T) {
		renamed := &models.Synset{Wnid: "n99999999", Words: "synset 1", Gloss: "gloss of synset 1"}
		require.NoError(t, store.UpdateSynset("n00000001", renamed))

		_, err := store.GetImage("n99999999", 35)
		require.NoError(t, err, "Image did not follow the rename")

		page, err := store.ListHyponyms("n99999999", 0, 200)
		require.NoError(t, err)
		require.Len(t, page, 119)
	})

	t.Run("Delete Cascade", func(t *testing.T) {
		require.NoError(t, store.DeleteSynset("n99999999"))

		_, err := store.GetImage("n99999999", 1)
		require.ErrorIs(t, err, storage.ErrNotFound)

		// The hyponym synsets themselves stay.
		_, err = store.GetSynset("n00000002")
		require.NoError(t, err)
	})
}

// Package catalog holds the in-memory podcast catalog. Data is seeded from
// an embedded YAML file and read-only afterwards.
package catalog

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/podhaven/backend/internal/models"
)

//go:embed seed.yaml
var seedYAML []byte

type seedFile struct {
	Podcasts []models.Podcast `yaml:"podcasts"`
}

// Store is the read-only catalog. Safe for concurrent use: nothing mutates
// after construction.
type Store struct {
	podcasts []models.Podcast
	byID     map[string]*models.Podcast
	episodes map[string]episodeRef
}

type episodeRef struct {
	podcast *models.Podcast
	index   int
}

// NewStore builds the catalog from the embedded seed.
func NewStore() (*Store, error) {
	return NewStoreFrom(seedYAML)
}

// NewStoreFrom builds a catalog from YAML seed data.
func NewStoreFrom(data []byte) (*Store, error) {
	var seed seedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("parse catalog seed: %w", err)
	}
	s := &Store{
		podcasts: seed.Podcasts,
		byID:     make(map[string]*models.Podcast, len(seed.Podcasts)),
		episodes: make(map[string]episodeRef),
	}
	for i := range s.podcasts {
		p := &s.podcasts[i]
		if p.ID == "" {
			return nil, fmt.Errorf("catalog seed: podcast %d missing id", i)
		}
		s.byID[p.ID] = p
		for j := range p.Episodes {
			s.episodes[p.Episodes[j].ID] = episodeRef{podcast: p, index: j}
		}
	}
	return s, nil
}

// List returns every podcast.
func (s *Store) List() []models.Podcast {
	return s.podcasts
}

// Get returns a podcast by ID.
func (s *Store) Get(id string) (*models.Podcast, bool) {
	p, ok := s.byID[id]
	return p, ok
}

// Search filters podcasts by case-insensitive substring match across title,
// topic, and host. An empty query returns everything.
func (s *Store) Search(query string) []models.Podcast {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return s.podcasts
	}
	var out []models.Podcast
	for _, p := range s.podcasts {
		if strings.Contains(strings.ToLower(p.Title), q) ||
			strings.Contains(strings.ToLower(p.Topic), q) ||
			strings.Contains(strings.ToLower(p.Host), q) {
			out = append(out, p)
		}
	}
	return out
}

// Episode resolves an episode ID to the episode and its podcast.
func (s *Store) Episode(id string) (models.Episode, *models.Podcast, bool) {
	ref, ok := s.episodes[id]
	if !ok {
		return models.Episode{}, nil, false
	}
	return ref.podcast.Episodes[ref.index], ref.podcast, true
}

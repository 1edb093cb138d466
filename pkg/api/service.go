// CLAUDE:SUMMARY Swappable normalizer/classifier state shared by the HTTP and MCP transports; Swap supports SIGHUP lexicon reload.
package api

import (
	"log/slog"
	"sync"

	"github.com/hazyhaar/vegantree/pkg/ingredient"
	"github.com/hazyhaar/vegantree/pkg/lexicon"
	"github.com/hazyhaar/vegantree/pkg/vegan"
)

// Service holds the tables the endpoints work against. The normalizer and
// classifier are replaced together on Swap; in-flight calls keep the pair
// they started with.
type Service struct {
	mu      sync.RWMutex
	norm    *ingredient.Normalizer
	cls     *vegan.Classifier
	workers int
	logger  *slog.Logger
}

// NewService builds a Service around norm (nil selects the default
// normalizer). workers bounds the decompose worker pool; <= 0 means
// GOMAXPROCS.
func NewService(norm *ingredient.Normalizer, workers int, logger *slog.Logger) *Service {
	if norm == nil {
		norm = ingredient.Default()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		norm:    norm,
		cls:     vegan.New(norm.Lexicon()),
		workers: workers,
		logger:  logger,
	}
}

// Swap installs a new normalizer and a classifier over its lexicon.
func (s *Service) Swap(norm *ingredient.Normalizer) {
	cls := vegan.New(norm.Lexicon())
	s.mu.Lock()
	s.norm, s.cls = norm, cls
	s.mu.Unlock()
	info := norm.Lexicon().Info()
	s.logger.Info("lexicon swapped", "id", info.ID, "version", info.Version)
}

func (s *Service) current() (*ingredient.Normalizer, *vegan.Classifier) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.norm, s.cls
}

// Lexicon returns the lexicon currently in use.
func (s *Service) Lexicon() *lexicon.Lexicon {
	norm, _ := s.current()
	return norm.Lexicon()
}

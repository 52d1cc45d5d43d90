// Package suggestionservice gates model category suggestions. Requests are
// debounced per owner so that only the latest description a user typed
// reaches the model, and low quality suggestions are suppressed before they
// ever leave the service.
package suggestionservice

import (
	"context"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/Vitaliy-tsuper/hatafinance.github.io/internal/domain"
	"github.com/Vitaliy-tsuper/hatafinance.github.io/pkg/categorypkg"
)

// confidenceFloor is the minimum model confidence for a suggestion to be
// surfaced. Suggestions at or below it are discarded.
const confidenceFloor = 0.6

// Classifier provides access to the model classifying descriptions.
type Classifier interface {
	Classify(ctx context.Context, description string) (domain.Suggestion, error)
}

//go:generate mockgen -source=service.go -destination=service_mock.go -package=suggestionservice

// ownerSeqs tracks the requests of one owner. The entry lives only while
// at least one request is in flight, so idle owners cost no memory.
type ownerSeqs struct {
	latest   uint64
	inflight int
}

// Service provides debounced category suggestions.
type Service struct {
	classifier Classifier
	debounce   time.Duration
	minLength  int

	mu   sync.Mutex
	seqs map[string]*ownerSeqs
}

// New returns a suggestion Service. debounce is how long a request waits
// for a newer one from the same owner before calling the model, minLength
// is the minimum description length in runes.
func New(classifier Classifier, debounce time.Duration, minLength int) *Service {
	return &Service{
		classifier: classifier,
		debounce:   debounce,
		minLength:  minLength,
		seqs:       make(map[string]*ownerSeqs),
	}
}

// claim registers a new request for owner and returns its sequence number.
// A later claim for the same owner makes every earlier one stale. Every
// claim must be paired with a release.
func (s *Service) claim(owner string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	seqs, ok := s.seqs[owner]
	if !ok {
		seqs = &ownerSeqs{}
		s.seqs[owner] = seqs
	}

	seqs.latest++
	seqs.inflight++

	return seqs.latest
}

// release drops the owner's entry once no request of theirs is in flight.
// The sequence restarting at zero is safe exactly because nothing holds an
// older number at that point.
func (s *Service) release(owner string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seqs := s.seqs[owner]
	seqs.inflight--

	if seqs.inflight == 0 {
		delete(s.seqs, owner)
	}
}

func (s *Service) stale(owner string, seq uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	seqs, ok := s.seqs[owner]

	return !ok || seqs.latest != seq
}

// Suggest returns a category suggestion for the description the owner is
// typing. selected is the category currently chosen in the form; a
// suggestion equal to it is suppressed. The call waits out the debounce
// window first and returns domain.ErrSuggestionSuperseded if a newer
// request from the same owner arrives at any point, including while the
// model call is in flight.
func (s *Service) Suggest(ctx context.Context, owner, description, selected string) (domain.Suggestion, error) {
	l := zerolog.Ctx(ctx)

	description = strings.TrimSpace(description)
	if utf8.RuneCountInString(description) < s.minLength {
		return domain.Suggestion{}, domain.ErrDescriptionTooShort
	}

	seq := s.claim(owner)
	defer s.release(owner)

	timer := time.NewTimer(s.debounce)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return domain.Suggestion{}, ctx.Err()
	case <-timer.C:
	}

	if s.stale(owner, seq) {
		return domain.Suggestion{}, domain.ErrSuggestionSuperseded
	}

	suggestion, err := s.classifier.Classify(ctx, description)
	if err != nil {
		return domain.Suggestion{}, err
	}

	// The model call may have taken long enough for a newer request to
	// arrive, its result wins.
	if s.stale(owner, seq) {
		return domain.Suggestion{}, domain.ErrSuggestionSuperseded
	}

	if suggestion.Confidence <= confidenceFloor {
		l.Info().
			Str("category", suggestion.Category).
			Float64("confidence", suggestion.Confidence).
			Msg("suggestion below confidence floor")

		return domain.Suggestion{}, domain.ErrNoSuggestion
	}

	if !categorypkg.IsSupportedCategory(suggestion.Category) {
		l.Warn().Str("category", suggestion.Category).Msg("model returned unsupported category")

		return domain.Suggestion{}, domain.ErrNoSuggestion
	}

	if suggestion.Category == selected {
		return domain.Suggestion{}, domain.ErrNoSuggestion
	}

	return suggestion, nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"travelrec/internal/catalog"
	"travelrec/internal/config"
	"travelrec/internal/model"
)

// Evaluator answers one query with the external result object. It never
// returns a Go error: failures are reported through Success and Error.
type Evaluator interface {
	Evaluate(ctx context.Context, query string) *model.RecommendationResponse
}

// RecommendationService runs the full pipeline against an immutable catalog
// snapshot. It holds no mutable state and is safe for concurrent use.
type RecommendationService struct {
	snapshot   *catalog.Snapshot
	extractor  *Extractor
	classifier *IntentClassifier
	table      *FilterTable
	cascade    *Cascade
	ranker     *Ranker
	logger     zerolog.Logger
}

// NewRecommendationService wires the pipeline components for a snapshot
func NewRecommendationService(
	snapshot *catalog.Snapshot,
	vocab *Vocabulary,
	cfg config.EngineConfig,
	logger zerolog.Logger,
) (*RecommendationService, error) {
	if snapshot == nil {
		return nil, ErrCatalogUnavailable
	}
	if vocab == nil {
		vocab = DefaultVocabulary()
	}

	table, err := NewFilterTable()
	if err != nil {
		return nil, fmt.Errorf("invalid filter table: %w", err)
	}

	return &RecommendationService{
		snapshot:   snapshot,
		extractor:  NewExtractor(vocab, snapshot.Names()),
		classifier: NewIntentClassifier(cfg.Thresholds, logger),
		table:      table,
		cascade:    NewCascade(vocab.VehicleSynonyms),
		ranker:     NewRanker(cfg.MaxResults, cfg.MinResults, cfg.MaxAlternatives),
		logger:     logger,
	}, nil
}

// Snapshot returns the catalog the service evaluates against
func (s *RecommendationService) Snapshot() *catalog.Snapshot {
	return s.snapshot
}

// Recommend classifies the query, runs its filter cascade and ranks the
// survivors. Errors are ErrEmptyQuery or ErrCategoryUndetermined.
func (s *RecommendationService) Recommend(query string) (*model.Recommendation, error) {
	startTime := time.Now()

	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}

	extraction := s.extractor.Extract(query)
	intent, err := s.classifier.Classify(extraction)
	if err != nil {
		return nil, err
	}

	spec, ok := s.table.Spec(intent.Category, intent.CaseType)
	if !ok {
		// every case selectCase can return is in the table
		return nil, fmt.Errorf("no filter spec for %s/%s", intent.Category, intent.CaseType)
	}

	items := s.snapshot.Items(intent.Category)
	result := s.cascade.Run(items, spec, intent.Params)
	ranked := s.ranker.Rank(result.Candidates, intent.CaseType)
	alternatives := s.ranker.Alternatives(items, ranked, intent)

	rec := &model.Recommendation{
		Intent:       intent,
		RankedItems:  ranked,
		Alternatives: alternatives,
		Exhausted:    result.Exhausted,
		Trace:        result.Trace,
		Took:         time.Since(startTime).Milliseconds(),
	}

	s.logRecommendation(query, rec)
	return rec, nil
}

// Evaluate is the single entry point used by the HTTP and CLI boundaries.
// The context is unused: evaluation is a bounded in-memory scan.
func (s *RecommendationService) Evaluate(_ context.Context, query string) *model.RecommendationResponse {
	rec, err := s.Recommend(query)
	if err != nil {
		return FailureResponse(query, err)
	}
	return AssembleResponse(query, rec)
}

// AssembleResponse packages a recommendation into the external contract
func AssembleResponse(query string, rec *model.Recommendation) *model.RecommendationResponse {
	names := rec.Names()
	return &model.RecommendationResponse{
		Success:         true,
		Query:           query,
		Category:        string(rec.Intent.Category),
		Count:           len(names),
		Recommendations: names,
		Alternatives:    rec.Alternatives,
	}
}

// FailureResponse builds the success=false result for err. Catalog failures
// are reported with a generic message.
func FailureResponse(query string, err error) *model.RecommendationResponse {
	msg := err.Error()
	if errors.Is(err, ErrCatalogUnavailable) {
		msg = "recommendation data is currently unavailable"
	}
	return &model.RecommendationResponse{
		Success:         false,
		Query:           query,
		Recommendations: []string{},
		Error:           msg,
	}
}

func (s *RecommendationService) logRecommendation(query string, rec *model.Recommendation) {
	if s.logger.GetLevel() > zerolog.DebugLevel {
		return
	}

	evt := s.logger.Debug().
		Str("query", query).
		Str("category", string(rec.Intent.Category)).
		Str("case_type", string(rec.Intent.CaseType)).
		Bool("degraded", rec.Intent.Degraded).
		Bool("exhausted", rec.Exhausted).
		Int("count", len(rec.RankedItems)).
		Int("alternatives", len(rec.Alternatives)).
		Int64("took_ms", rec.Took)

	for _, t := range rec.Trace {
		if t.Outcome == model.LevelRelaxed {
			evt = evt.Str(fmt.Sprintf("level_%d_relaxed", t.Level), t.Constraint)
		}
	}
	evt.Msg("Evaluated query")
}

// UnavailableService answers every query with a catalog failure. The
// boundaries use it when the catalog could not be loaded at startup.
type UnavailableService struct {
	Err error
}

// Evaluate implements Evaluator
func (u UnavailableService) Evaluate(_ context.Context, query string) *model.RecommendationResponse {
	err := u.Err
	if err == nil {
		err = ErrCatalogUnavailable
	} else if !errors.Is(err, ErrCatalogUnavailable) {
		err = fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}
	return FailureResponse(query, err)
}

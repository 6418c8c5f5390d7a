package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/UnknownOlympus/treemap/internal/events"
	"github.com/UnknownOlympus/treemap/internal/geometry"
	"github.com/UnknownOlympus/treemap/internal/metrics"
	"github.com/UnknownOlympus/treemap/internal/models"
	"github.com/UnknownOlympus/treemap/internal/repository"
	"github.com/UnknownOlympus/treemap/internal/treeform"
	"github.com/jonboulle/clockwork"
)

// ErrUnknownEditor is returned when the acting username has no user record.
var ErrUnknownEditor = errors.New("unknown editor")

// TreeService validates tree submissions and saves accepted ones as new
// records attributed to the submitting user.
type TreeService struct {
	log       *slog.Logger
	repo      repository.Interface
	validator *treeform.Validator
	publisher events.Publisher
	metrics   *metrics.Metrics
	clock     clockwork.Clock
}

// NewTreeService creates a TreeService. The clock supplies creation and
// update timestamps and the import-event date.
func NewTreeService(
	log *slog.Logger,
	repo repository.Interface,
	validator *treeform.Validator,
	publisher events.Publisher,
	metrics *metrics.Metrics,
	clock clockwork.Clock,
) *TreeService {
	return &TreeService{
		log:       log,
		repo:      repo,
		validator: validator,
		publisher: publisher,
		metrics:   metrics,
		clock:     clock,
	}
}

// AddTree runs one validate-and-save cycle for a submission made by editor.
// On success it returns the saved tree, with its new ID, and the page the
// submitter asked to continue to.
//
// Rejections come back as treeform.FieldErrors or *treeform.ValidationError;
// any other error means the submission could not be checked or stored.
func (ts *TreeService) AddTree(
	ctx context.Context,
	in treeform.Input,
	editor string,
) (*models.Tree, treeform.Target, error) {
	user, err := ts.repo.FindUserByUsername(ctx, editor)
	if err != nil {
		ts.outcome(metrics.OutcomeError)
		return nil, "", fmt.Errorf("failed to resolve editor: %w", err)
	}
	if user == nil {
		ts.outcome(metrics.OutcomeRejected)
		return nil, "", fmt.Errorf("%w: %q", ErrUnknownEditor, editor)
	}

	cleaned, err := treeform.Parse(in)
	if err != nil {
		ts.outcome(metrics.OutcomeInvalid)
		return nil, "", err
	}

	point, err := ts.validator.Validate(ctx, cleaned)
	if err != nil {
		var vErr *treeform.ValidationError
		if errors.As(err, &vErr) {
			ts.metrics.ValidationFailures.WithLabelValues(string(vErr.Kind)).Inc()
			ts.outcome(metrics.OutcomeInvalid)
			ts.log.InfoContext(ctx, "Tree submission rejected", "editor", editor, "kind", vErr.Kind)
		} else {
			ts.outcome(metrics.OutcomeError)
		}
		return nil, "", err
	}

	tree, err := ts.save(ctx, cleaned, point, user)
	if err != nil {
		ts.outcome(metrics.OutcomeError)
		return nil, "", err
	}
	ts.outcome(metrics.OutcomeSaved)
	ts.log.InfoContext(ctx, "Tree added", "id", tree.ID, "editor", editor, "target", cleaned.Target)

	ts.publish(ctx, tree)

	return tree, cleaned.Target, nil
}

// save assembles the record from validated values and persists it.
func (ts *TreeService) save(
	ctx context.Context,
	cleaned *treeform.Cleaned,
	point geometry.Point,
	user *models.User,
) (*models.Tree, error) {
	start := ts.clock.Now()
	defer func() {
		ts.metrics.SaveSeconds.Observe(ts.clock.Since(start).Seconds())
	}()

	tree := models.NewTree()

	if cleaned.SpeciesSymbol != "" {
		spp, err := ts.repo.FindSpeciesBySymbol(ctx, cleaned.SpeciesSymbol)
		if err != nil {
			return nil, err
		}
		if spp == nil {
			ts.log.DebugContext(ctx, "Saving tree without species", "symbol", cleaned.SpeciesSymbol)
		}
		tree.Species = spp
	}

	treeform.PatchFromCleaned(cleaned).Apply(tree)

	now := ts.clock.Now().UTC()
	event, err := ts.repo.GetOrCreateImportEvent(ctx, models.SiteAddImportKey, now)
	if err != nil {
		return nil, err
	}
	tree.ImportEventID = event.ID

	tree.Geometry = point
	tree.LastUpdatedBy = user.ID
	tree.DateCreated = now
	tree.LastUpdated = now

	id, err := ts.repo.CreateTree(ctx, tree)
	if err != nil {
		return nil, err
	}
	tree.ID = id

	return tree, nil
}

// publish announces the saved tree. The record is already stored, so a broker
// failure is only logged.
func (ts *TreeService) publish(ctx context.Context, tree *models.Tree) {
	if err := ts.publisher.PublishTreeCreated(ctx, tree); err != nil {
		ts.metrics.EventsPublished.WithLabelValues("failure").Inc()
		ts.log.WarnContext(ctx, "Failed to publish tree event", "id", tree.ID, "error", err)
		return
	}
	ts.metrics.EventsPublished.WithLabelValues("success").Inc()
}

func (ts *TreeService) outcome(outcome string) {
	ts.metrics.TreeSubmissions.WithLabelValues(outcome).Inc()
}

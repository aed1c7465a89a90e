package service

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/phrazzld/task-tracker/internal/domain"
	"github.com/phrazzld/task-tracker/internal/patch"
	"github.com/phrazzld/task-tracker/internal/platform/logger"
	"github.com/phrazzld/task-tracker/internal/store"
)

// LabelService provides label operations.
type LabelService interface {
	List(ctx context.Context) ([]LabelView, error)
	Get(ctx context.Context, id int64) (LabelView, error)
	Create(ctx context.Context, in LabelCreate) (LabelView, error)
	Update(ctx context.Context, id int64, in LabelUpdate) (LabelView, error)

	// Delete removes a label. Tasks carrying it lose the label and are otherwise kept.
	Delete(ctx context.Context, id int64) error
}

// LabelServiceImpl implements the LabelService interface
type LabelServiceImpl struct {
	db     *sql.DB
	labels store.LabelStore
	logger *slog.Logger
}

// NewLabelService creates a new LabelService
func NewLabelService(db *sql.DB, labels store.LabelStore, logger *slog.Logger) (LabelService, error) {
	if db == nil {
		return nil, domain.NewValidationError("db", "cannot be nil", nil)
	}
	if labels == nil {
		return nil, domain.NewValidationError("labels", "cannot be nil", nil)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &LabelServiceImpl{
		db:     db,
		labels: labels,
		logger: logger.With(slog.String("component", "label_service")),
	}, nil
}

func newLabelView(l *domain.Label) LabelView {
	return LabelView{ID: l.ID, Name: l.Name, CreatedAt: l.CreatedAt}
}

// List implements the LabelService interface
func (s *LabelServiceImpl) List(ctx context.Context) ([]LabelView, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	labels, err := s.labels.List(ctx)
	if err != nil {
		return nil, fail(log, "list_labels", "failed to list labels", err)
	}

	views := make([]LabelView, 0, len(labels))
	for _, l := range labels {
		views = append(views, newLabelView(l))
	}
	return views, nil
}

// Get implements the LabelService interface
func (s *LabelServiceImpl) Get(ctx context.Context, id int64) (LabelView, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	label, err := s.labels.GetByID(ctx, id)
	if err != nil {
		return LabelView{}, fail(log, "get_label", "failed to retrieve label", err,
			slog.Int64("label_id", id))
	}
	return newLabelView(label), nil
}

// Create implements the LabelService interface
func (s *LabelServiceImpl) Create(ctx context.Context, in LabelCreate) (LabelView, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := validatePayload(in); err != nil {
		return LabelView{}, fail(log, "create_label", "invalid label", err)
	}
	label := &domain.Label{Name: in.Name}
	if err := label.Validate(); err != nil {
		return LabelView{}, fail(log, "create_label", "invalid label", err)
	}

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.labels.WithTx(tx).Create(ctx, label)
	})
	if err != nil {
		return LabelView{}, fail(log, "create_label", "failed to create label", err)
	}

	log.Info("label created", slog.Int64("label_id", label.ID))
	return newLabelView(label), nil
}

// Update implements the LabelService interface
func (s *LabelServiceImpl) Update(ctx context.Context, id int64, in LabelUpdate) (LabelView, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	label, err := store.InTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) (*domain.Label, error) {
		txLabels := s.labels.WithTx(tx)

		label, err := txLabels.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}

		p := patch.NewPlan()
		patch.SetRequired(p, "name", in.Name, &label.Name, domain.ValidateLabelName)
		if err := p.Apply(); err != nil {
			return nil, err
		}

		if err := txLabels.Update(ctx, label); err != nil {
			return nil, err
		}
		return label, nil
	})
	if err != nil {
		return LabelView{}, fail(log, "update_label", "failed to update label", err,
			slog.Int64("label_id", id))
	}

	log.Info("label updated", slog.Int64("label_id", id))
	return newLabelView(label), nil
}

// Delete implements the LabelService interface
func (s *LabelServiceImpl) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.labels.WithTx(tx).Delete(ctx, id)
	})
	if err != nil {
		return fail(log, "delete_label", "failed to delete label", err,
			slog.Int64("label_id", id))
	}

	log.Info("label deleted", slog.Int64("label_id", id))
	return nil
}

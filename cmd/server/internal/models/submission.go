package models

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Submission is the sole persistent entity: one record per successful
// intake, never updated, never deleted.
type Submission struct {
	Name    string                      `json:"name"`
	Age     string                      `json:"age"`
	Message string                      `json:"message"`
	Email   string                      `json:"email"`
	Images  datatypes.JSONSlice[string] `json:"images"`
	Model
}

var _ IntakeAPIModel = (*Submission)(nil)

func (Submission) TableName() string {
	return "submission"
}

func (s Submission) GetID() uuid.UUID {
	return s.ID
}

// SubmissionRepository is the sole writer of submission records.
type SubmissionRepository struct {
	db *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

// Save appends the record. The store assigns the id and creation timestamp.
func (r *SubmissionRepository) Save(ctx context.Context, s *Submission) error {
	ctx, span := tracer.Start(ctx, "SubmissionRepository.Save")
	defer span.End()

	span.SetAttributes(
		attribute.String("name", s.Name),
		attribute.Int("images", len(s.Images)),
	)

	err := r.db.WithContext(ctx).Create(s).Error
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to insert submission")
		return fmt.Errorf("failed to insert submission: %w", err)
	}

	span.SetAttributes(attribute.String("submission.id", s.ID.String()))
	span.RecordError(nil)
	span.SetStatus(codes.Ok, "inserted submission")
	return nil
}

// FindAll returns every stored submission in insertion order.
func (r *SubmissionRepository) FindAll(ctx context.Context) ([]Submission, error) {
	ctx, span := tracer.Start(ctx, "SubmissionRepository.FindAll")
	defer span.End()

	// initialized so an empty store serializes as [] rather than null
	subs := []Submission{}
	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&subs).Error
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch submissions")
		return nil, fmt.Errorf("failed to fetch submissions: %w", err)
	}

	span.SetAttributes(attribute.Int("count", len(subs)))
	span.RecordError(nil)
	span.SetStatus(codes.Ok, "fetched submissions")
	return subs, nil
}

package models

import (
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
)

const name string = "github.com/formintake/intake-api/cmd/server/internal/models"

var tracer = otel.Tracer(name)

// Derived from gorm.Model
type Model struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	ID        uuid.UUID `json:"id"         gorm:"primaryKey;default:uuidv7_sub_ms()"`
}

type IntakeAPIModel interface {
	GetID() uuid.UUID
}

package utils

import (
	"github.com/google/uuid"

	"github.com/MKhiriev/go-school-agenda/models"
)

// ManualIDGenerator produces identifiers for manually created tasks.
// Every identifier carries [models.ManualTaskPrefix], keeping the manual
// namespace disjoint from the numeric identifiers the remote portal
// assigns. UUIDv7 suffixes are time-ordered, so identifiers created in
// sequence also sort in creation order.
type ManualIDGenerator struct {
}

func NewManualIDGenerator() *ManualIDGenerator {
	return &ManualIDGenerator{}
}

func (g *ManualIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return models.ManualTaskPrefix + uuid.NewString()
	}

	return models.ManualTaskPrefix + v7.String()
}

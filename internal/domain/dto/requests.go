package dto

import (
	"github.com/google/uuid"
	"github.com/ougirez/agrorating/internal/domain"
)

type BackfillRequest struct {
	// URL overrides the configured quotes page.
	URL string `json:"url" validate:"omitempty,url"`
}

type PlantedAreaRequest struct {
	ID           uuid.UUID           `json:"id"`
	CultureID    uuid.UUID           `json:"culture_id" validate:"required"`
	SystemID     uuid.UUID           `json:"system_id" validate:"required"`
	CycleID      uuid.UUID           `json:"cycle_id"`
	PropertyID   uuid.UUID           `json:"property_id"`
	CommodityKey domain.CommodityKey `json:"commodity_key" validate:"omitempty,uppercase"`
	Hectares     domain.YearValues   `json:"hectares_by_harvest" validate:"required"`
}

func (r PlantedAreaRequest) PlantedArea(organizationID uuid.UUID) *domain.PlantedArea {
	return &domain.PlantedArea{
		ID:             r.ID,
		OrganizationID: organizationID,
		CultureID:      r.CultureID,
		SystemID:       r.SystemID,
		CycleID:        r.CycleID,
		PropertyID:     r.PropertyID,
		CommodityKey:   r.CommodityKey,
		Hectares:       r.Hectares,
	}
}

package domain

import "time"

// ServiceMenu catalog entry of an offered repair service
type ServiceMenu struct {
	ID                int64
	Name              string
	Description       string
	EstimatedDuration int   // minutes
	PriceEstimate     int64 // yen
	PriceDisplay      string
	IsActive          bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Ref returns the short form embedded into reservations
func (m *ServiceMenu) Ref() *ServiceMenuRef {
	return &ServiceMenuRef{
		ID:            m.ID,
		Name:          m.Name,
		PriceEstimate: m.PriceEstimate,
		PriceDisplay:  m.PriceDisplay,
	}
}

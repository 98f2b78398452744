package response

import (
	"booking-platform/internal/data/entity"
)

type ServiceMeta struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	DurationMinutes int    `json:"duration_minutes"`
	PriceCents      int64  `json:"price_cents"`
	DepositCents    int64  `json:"deposit_cents"`
}

type SlotMeta struct {
	Weekday   int    `json:"weekday"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type ProviderMeta struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Schedule []SlotMeta `json:"schedule,omitempty"`
}

// WorkspaceMetaResponse feeds the public booking page: the workspace plus
// everything selectable on it.
type WorkspaceMetaResponse struct {
	Slug      string         `json:"slug"`
	Name      string         `json:"name"`
	Timezone  string         `json:"timezone"`
	Services  []ServiceMeta  `json:"services"`
	Providers []ProviderMeta `json:"providers"`
}

func ServiceToMeta(service *entity.Service) ServiceMeta {
	return ServiceMeta{
		ID:              service.ID.String(),
		Name:            service.Name,
		DurationMinutes: service.DurationMinutes,
		PriceCents:      service.PriceCents,
		DepositCents:    service.DepositCents(),
	}
}

func ProviderToMeta(provider *entity.Provider, slots []*entity.Slot) ProviderMeta {
	meta := ProviderMeta{
		ID:   provider.ID.String(),
		Name: provider.Name,
	}
	for _, slot := range slots {
		meta.Schedule = append(meta.Schedule, SlotMeta{
			Weekday:   slot.Weekday,
			StartTime: slot.StartTime,
			EndTime:   slot.EndTime,
		})
	}
	return meta
}

package models

import (
	"time"

	"github.com/m04kA/Marina-SlipService/internal/domain"
)

// Request модели

// JoinWaitlistRequest запрос на постановку в лист ожидания
type JoinWaitlistRequest struct {
	Actor         domain.ActorContext `json:"-"`
	BoatID        int64               `json:"boatId"`
	PreferredSize int                 `json:"preferredSize"`
	StartDate     time.Time           `json:"startDate"`
	EndDate       time.Time           `json:"endDate"`
}

// CancelEntryRequest запрос на отмену записи листа ожидания
type CancelEntryRequest struct {
	Actor domain.ActorContext `json:"-"`
}

// Response модели

// WaitlistEntryResponse ответ с данными записи листа ожидания
type WaitlistEntryResponse struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"userId"`
	BoatID        int64     `json:"boatId"`
	PreferredSize int       `json:"preferredSize"`
	StartDate     string    `json:"startDate"` // "2026-05-01"
	EndDate       string    `json:"endDate"`
	Position      int       `json:"position"`
	CreatedAt     time.Time `json:"createdAt"`
}

// WaitlistEntryListResponse ответ со списком записей листа ожидания
type WaitlistEntryListResponse struct {
	Entries []WaitlistEntryResponse `json:"entries"`
}

// EligibilityResponse ответ проверки "этот запрос все еще в листе ожидания?"
// Запись считается разрешимой, если среди подходящих слипов есть хотя бы
// один без пересечений с активными бронированиями на её интервале
type EligibilityResponse struct {
	EntryID       int64  `json:"entryId"`
	StillWaiting  bool   `json:"stillWaiting"`
	AvailableSlip *int64 `json:"availableSlip,omitempty"`
}

// Методы конвертации

// FromDomainEntry конвертирует domain модель в DTO
func FromDomainEntry(e *domain.WaitlistEntry) *WaitlistEntryResponse {
	if e == nil {
		return nil
	}

	return &WaitlistEntryResponse{
		ID:            e.ID,
		UserID:        e.UserID,
		BoatID:        e.BoatID,
		PreferredSize: e.PreferredSize,
		StartDate:     e.StartDate.Format(domain.DateFormat),
		EndDate:       e.EndDate.Format(domain.DateFormat),
		Position:      e.Position,
		CreatedAt:     e.CreatedAt,
	}
}

// FromDomainEntryList конвертирует список domain моделей в DTO
func FromDomainEntryList(entries []*domain.WaitlistEntry) *WaitlistEntryListResponse {
	if entries == nil {
		return &WaitlistEntryListResponse{
			Entries: []WaitlistEntryResponse{},
		}
	}

	resp := &WaitlistEntryListResponse{
		Entries: make([]WaitlistEntryResponse, len(entries)),
	}

	for i, entry := range entries {
		if e := FromDomainEntry(entry); e != nil {
			resp.Entries[i] = *e
		}
	}

	return resp
}

package entity

import (
	"time"

	"github.com/lfarias/juris-api/internal/domain"
)

// Tipos de compromisso da agenda.
const (
	EventHearing  = "Audiência"
	EventDeadline = "Prazo"
	EventMeeting  = "Reunião"
)

// CalendarEvent representa um compromisso da agenda, normalmente vinculado
// a um processo. Prazos não concluídos alimentam o alerta de vencimento.
type CalendarEvent struct {
	ID        string    `json:"id"`
	Title     string    `json:"titulo"`
	ProcessID string    `json:"processoId,omitempty"`
	Type      string    `json:"tipo"`
	Date      time.Time `json:"data"`
	Done      bool      `json:"concluido"`
	CreatedAt time.Time `json:"criadoEm"`
}

// RecordID devolve o identificador do registro.
func (e *CalendarEvent) RecordID() string { return e.ID }

// AssignIdentity carimba id e timestamp de criação.
func (e *CalendarEvent) AssignIdentity(id string, now time.Time) {
	if e.ID == "" {
		e.ID = id
	}
	e.CreatedAt = now
}

// Validate verifica campos obrigatórios e enumerações.
func (e *CalendarEvent) Validate() error {
	if e.Title == "" || e.Date.IsZero() {
		return domain.ErrInvalidInput
	}
	switch e.Type {
	case EventHearing, EventDeadline, EventMeeting:
	default:
		return domain.ErrInvalidInput
	}
	return nil
}

package entity

import (
	"slices"
	"time"

	"github.com/lfarias/juris-api/internal/domain"
)

// Eventos de domínio reconhecidos pelas assinaturas de webhook.
// Enumeração fechada: assinaturas com nomes fora desta lista são rejeitadas.
const (
	EventClientCreated       = "client.created"
	EventClientUpdated       = "client.updated"
	EventClientDeleted       = "client.deleted"
	EventProcessCreated      = "process.created"
	EventProcessUpdated      = "process.updated"
	EventProcessStatus       = "process.status_changed"
	EventProcessDeadline     = "process.deadline_approaching"
	EventTransactionCreated  = "financial.transaction_created"
	EventPaymentReceived     = "financial.payment_received"
	EventPaymentOverdue      = "financial.payment_overdue"
	EventTeamMemberAdded     = "team.member_added"
	EventDocumentUploaded    = "document.uploaded"
	EventDocumentShared      = "document.shared"
)

// KnownEvents lista todos os eventos reconhecidos, na ordem de documentação.
func KnownEvents() []string {
	return []string{
		EventClientCreated, EventClientUpdated, EventClientDeleted,
		EventProcessCreated, EventProcessUpdated, EventProcessStatus, EventProcessDeadline,
		EventTransactionCreated, EventPaymentReceived, EventPaymentOverdue,
		EventTeamMemberAdded,
		EventDocumentUploaded, EventDocumentShared,
	}
}

// KnownEvent informa se o nome pertence à enumeração de eventos.
func KnownEvent(name string) bool {
	return slices.Contains(KnownEvents(), name)
}

// WebhookConfig configuração de um webhook de saída.
// O segredo, quando presente, é enviado em claro num header próprio e
// também assina o corpo via HMAC-SHA256.
type WebhookConfig struct {
	ID            string            `json:"id"`
	Name          string            `json:"nome"`
	URL           string            `json:"url"`
	Events        []string          `json:"eventos"`
	Active        bool              `json:"ativo"`
	Secret        string            `json:"segredo,omitempty"`
	Headers       map[string]string `json:"headers,omitempty"`
	LastTriggered *time.Time        `json:"ultimoDisparo,omitempty"`
	CreatedAt     time.Time         `json:"criadoEm"`
	UpdatedAt     time.Time         `json:"atualizadoEm"`
}

// Validate verifica URL e que todos os eventos assinados são reconhecidos.
func (w *WebhookConfig) Validate() error {
	if w.Name == "" || w.URL == "" || len(w.Events) == 0 {
		return domain.ErrInvalidInput
	}
	for _, ev := range w.Events {
		if !KnownEvent(ev) {
			return domain.ErrUnknownEvent
		}
	}
	return nil
}

// SubscribedTo informa se o webhook assina o evento.
func (w *WebhookConfig) SubscribedTo(event string) bool {
	return slices.Contains(w.Events, event)
}

// IntegrationConfig configuração nomeada de uma integração externa.
// A sincronização real é responsabilidade de um cliente por provedor,
// fora do escopo desta camada.
type IntegrationConfig struct {
	ID        string            `json:"id"`
	Name      string            `json:"nome"`
	Provider  string            `json:"provedor"`
	Active    bool              `json:"ativo"`
	Settings  map[string]string `json:"configuracoes,omitempty"`
	LastSync  *time.Time        `json:"ultimaSincronizacao,omitempty"`
	CreatedAt time.Time         `json:"criadoEm"`
	UpdatedAt time.Time         `json:"atualizadoEm"`
}

// Validate verifica campos obrigatórios.
func (i *IntegrationConfig) Validate() error {
	if i.Name == "" || i.Provider == "" {
		return domain.ErrInvalidInput
	}
	return nil
}

// DeadLetter registro de uma entrega de webhook que esgotou as tentativas.
type DeadLetter struct {
	WebhookID string    `json:"webhookId"`
	URL       string    `json:"url"`
	Event     string    `json:"evento"`
	Error     string    `json:"erro"`
	At        time.Time `json:"em"`
}

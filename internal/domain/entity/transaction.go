package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/lfarias/juris-api/internal/domain"
)

// Tipos de lançamento financeiro.
const (
	TransactionRevenue = "Receita"
	TransactionExpense = "Despesa"
)

// Status de um lançamento.
const (
	TransactionPaid    = "Pago"
	TransactionPending = "Pendente"
	TransactionOverdue = "Vencido"
)

// Categorias geradas pelas regras de automação.
const (
	CategoryFees       = "Honorários"
	CategoryCommission = "Comissão"
	CategoryCourtCosts = "Atos Processuais"
)

// Transaction representa um lançamento do livro-caixa (receita ou despesa).
// As referências a cliente/processo/parceiro são por identificador.
type Transaction struct {
	ID          string          `json:"id"`
	Kind        string          `json:"tipo"`
	Amount      decimal.Decimal `json:"valor"`
	Date        time.Time       `json:"data"`
	DueDate     *time.Time      `json:"vencimento,omitempty"`
	Category    string          `json:"categoria,omitempty"`
	Status      string          `json:"status"`
	Description string          `json:"descricao,omitempty"`
	ClientID    string          `json:"clienteId,omitempty"`
	ProcessID   string          `json:"processoId,omitempty"`
	PartnerID   string          `json:"parceiroId,omitempty"`
	CreatedBy   string          `json:"criadoPor,omitempty"`
	CreatedAt   time.Time       `json:"criadoEm"`
}

// RecordID devolve o identificador do registro.
func (t *Transaction) RecordID() string { return t.ID }

// AssignIdentity carimba id e timestamps. Lançamentos gerados por automação
// chegam com id determinístico próprio e o mantêm.
func (t *Transaction) AssignIdentity(id string, now time.Time) {
	if t.ID == "" {
		t.ID = id
	}
	t.CreatedAt = now
	if t.Date.IsZero() {
		t.Date = now
	}
}

// Validate verifica enumerações e que o valor não é negativo.
func (t *Transaction) Validate() error {
	switch t.Kind {
	case TransactionRevenue, TransactionExpense:
	default:
		return domain.ErrInvalidInput
	}
	switch t.Status {
	case TransactionPaid, TransactionPending, TransactionOverdue:
	default:
		return domain.ErrInvalidInput
	}
	if t.Amount.IsNegative() {
		return domain.ErrInvalidInput
	}
	return nil
}

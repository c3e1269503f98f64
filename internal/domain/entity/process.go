package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/lfarias/juris-api/internal/domain"
)

// Status possíveis de um processo judicial.
const (
	ProcessStatusInProgress = "Em Andamento"
	ProcessStatusAwaiting   = "Aguardando"
	ProcessStatusFinalized  = "Finalizado"
	ProcessStatusSuspended  = "Suspenso"
)

// Urgência do processo.
const (
	UrgencyNormal = "Normal"
	UrgencyHigh   = "Alta"
	UrgencyUrgent = "Urgente"
)

// Modalidades de cobrança. Exatamente uma modalidade por processo.
const (
	BillingFixed       = "Fixo"
	BillingContingency = "Êxito"
	BillingMixed       = "Misto"
)

// Process representa um processo/ação judicial vinculado a um cliente.
//
// Os parâmetros monetários acompanham a modalidade de cobrança:
//   - Fixo:  FixedAmount (parcelável via Installments)
//   - Êxito: ContingencyPct sobre o proveito econômico
//   - Misto: entrada + fixo parcelado + percentual de êxito
//
// ActsAmount cobre custas de atos processuais e gera despesa, não receita.
type Process struct {
	ID             string          `json:"id"`
	Number         string          `json:"numero"` // numeração CNJ ou interna
	ClientID       string          `json:"clienteId"`
	LegalArea      string          `json:"area"`
	Court          string          `json:"vara,omitempty"`
	District       string          `json:"comarca,omitempty"`
	Instance       string          `json:"instancia,omitempty"`
	Status         string          `json:"status"`
	Urgency        string          `json:"urgencia"`
	BillingMode    string          `json:"modalidadeCobranca"`
	FixedAmount    decimal.Decimal `json:"valorFixo"`
	ContingencyPct decimal.Decimal `json:"percentualExito"`
	EntryAmount    decimal.Decimal `json:"valorEntrada"`
	ActsAmount     decimal.Decimal `json:"valorAtosProcessuais"`
	Installments   int             `json:"numParcelas"`
	CreatedAt      time.Time       `json:"criadoEm"`
}

// RecordID devolve o identificador do registro.
func (p *Process) RecordID() string { return p.ID }

// AssignIdentity carimba id e timestamp de criação.
func (p *Process) AssignIdentity(id string, now time.Time) {
	if p.ID == "" {
		p.ID = id
	}
	p.CreatedAt = now
}

// Validate verifica campos obrigatórios, enumerações e coerência da cobrança.
func (p *Process) Validate() error {
	if p.Number == "" || p.ClientID == "" || p.LegalArea == "" {
		return domain.ErrInvalidInput
	}
	switch p.Status {
	case ProcessStatusInProgress, ProcessStatusAwaiting, ProcessStatusFinalized, ProcessStatusSuspended:
	default:
		return domain.ErrInvalidInput
	}
	switch p.Urgency {
	case UrgencyNormal, UrgencyHigh, UrgencyUrgent:
	default:
		return domain.ErrInvalidInput
	}
	switch p.BillingMode {
	case BillingFixed, BillingMixed:
		if !p.FixedAmount.IsPositive() {
			return domain.ErrInvalidInput
		}
	case BillingContingency:
		if !p.ContingencyPct.IsPositive() {
			return domain.ErrInvalidInput
		}
	default:
		return domain.ErrInvalidInput
	}
	if p.Installments < 0 {
		return domain.ErrInvalidInput
	}
	if p.EntryAmount.IsNegative() || p.ActsAmount.IsNegative() {
		return domain.ErrInvalidInput
	}
	return nil
}

// Parcelado informa se o honorário fixo será cobrado em parcelas.
func (p *Process) Parcelado() bool {
	return (p.BillingMode == BillingFixed || p.BillingMode == BillingMixed) && p.Installments >= 1
}

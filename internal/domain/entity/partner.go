package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/lfarias/juris-api/internal/domain"
)

// Tipos de parceiro.
const (
	PartnerLawyer      = "Advogado"
	PartnerReferrer    = "Indicador"
	PartnerSocialMedia = "Rede Social"
	PartnerAds         = "Anúncios"
	PartnerOther       = "Outro"
)

// Partner representa um parceiro comercial (advogado indicador, canal de
// marketing etc.). Percentual e valor fixo de comissão podem coexistir;
// a regra de comissão decide qual aplicar.
type Partner struct {
	ID              string          `json:"id"`
	Name            string          `json:"nome"`
	Type            string          `json:"tipo"`
	CommissionPct   decimal.Decimal `json:"percentualComissao"`
	CommissionFixed decimal.Decimal `json:"valorFixoComissao"`
	LTV             decimal.Decimal `json:"ltv"` // receita acumulada atribuída ao parceiro
	ReferredClients int             `json:"clientesIndicados"`
	Active          bool            `json:"ativo"`
	CreatedAt       time.Time       `json:"criadoEm"`
}

// RecordID devolve o identificador do registro.
func (p *Partner) RecordID() string { return p.ID }

// AssignIdentity carimba id e timestamp de criação.
func (p *Partner) AssignIdentity(id string, now time.Time) {
	if p.ID == "" {
		p.ID = id
	}
	p.CreatedAt = now
}

// Validate verifica campos obrigatórios e enumerações.
func (p *Partner) Validate() error {
	if p.Name == "" {
		return domain.ErrInvalidInput
	}
	switch p.Type {
	case PartnerLawyer, PartnerReferrer, PartnerSocialMedia, PartnerAds, PartnerOther:
	default:
		return domain.ErrInvalidInput
	}
	if p.CommissionPct.IsNegative() || p.CommissionFixed.IsNegative() {
		return domain.ErrInvalidInput
	}
	return nil
}

// Package calculator implementa as calculadoras de honorários usadas nas
// simulações de contratação.
package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/lfarias/juris-api/internal/domain/entity"
)

// BillingProjection projeção de receita de um processo por modalidade.
type BillingProjection struct {
	Mode             string          `json:"modalidade"`
	EntryAmount      decimal.Decimal `json:"valorEntrada"`
	FixedTotal       decimal.Decimal `json:"totalFixo"`
	Installments     int             `json:"numParcelas"`
	InstallmentValue decimal.Decimal `json:"valorParcela"` // 0 quando à vista
	ContingencyShare decimal.Decimal `json:"parcelaExito"` // percentual sobre o proveito esperado
	ProjectedTotal   decimal.Decimal `json:"totalProjetado"`
}

// SimulateBilling projeta a receita total do processo. expectedOutcome é o
// proveito econômico estimado, usado apenas nas modalidades com êxito.
//
// A projeção espelha a geração de lançamentos: parcela arredondada a 2 casas,
// última absorvendo a sobra, então o total fixo fecha exato.
func SimulateBilling(p *entity.Process, expectedOutcome decimal.Decimal) BillingProjection {
	proj := BillingProjection{
		Mode:             p.BillingMode,
		EntryAmount:      p.EntryAmount,
		FixedTotal:       decimal.Zero,
		InstallmentValue: decimal.Zero,
		ContingencyShare: decimal.Zero,
	}

	if p.BillingMode == entity.BillingFixed || p.BillingMode == entity.BillingMixed {
		proj.FixedTotal = p.FixedAmount
		if p.Parcelado() {
			proj.Installments = p.Installments
			proj.InstallmentValue = p.FixedAmount.DivRound(decimal.NewFromInt(int64(p.Installments)), 2)
		}
	}

	if p.BillingMode == entity.BillingContingency || p.BillingMode == entity.BillingMixed {
		if expectedOutcome.IsPositive() && p.ContingencyPct.IsPositive() {
			proj.ContingencyShare = expectedOutcome.
				Mul(p.ContingencyPct).
				Div(decimal.NewFromInt(100)).
				Round(2)
		}
	}

	proj.ProjectedTotal = proj.EntryAmount.
		Add(proj.FixedTotal).
		Add(proj.ContingencyShare)
	return proj
}

package automation

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/lfarias/juris-api/internal/domain/entity"
)

// PartnerCommission calcula a comissão de parceiro sobre um lançamento.
//
// Só dispara sobre receita efetivamente paga; qualquer outro lançamento
// devolve nil. O percentual tem precedência sobre o valor fixo; ambos
// zerados também devolvem nil.
//
// O lançamento resultante é sempre uma despesa de categoria "Comissão",
// pendente, com id composto a partir do lançamento de origem.
func PartnerCommission(src *entity.Transaction, pct, fixed decimal.Decimal, now time.Time) *entity.Transaction {
	if src == nil || src.Kind != entity.TransactionRevenue || src.Status != entity.TransactionPaid {
		return nil
	}

	var amount decimal.Decimal
	switch {
	case pct.IsPositive():
		amount = src.Amount.Mul(pct).Div(decimal.NewFromInt(100)).Round(2)
	case fixed.IsPositive():
		amount = fixed
	default:
		return nil
	}

	return &entity.Transaction{
		ID:          src.ID + "-comissao",
		Kind:        entity.TransactionExpense,
		Amount:      amount,
		Date:        now,
		Category:    entity.CategoryCommission,
		Status:      entity.TransactionPending,
		Description: fmt.Sprintf("Comissão sobre lançamento %s", src.ID),
		ClientID:    src.ClientID,
		ProcessID:   src.ProcessID,
		PartnerID:   src.PartnerID,
	}
}

// CommissionForPartner aplica PartnerCommission com os parâmetros de
// compensação cadastrados no parceiro. Parceiro inativo não comissiona.
func CommissionForPartner(src *entity.Transaction, partner *entity.Partner, now time.Time) *entity.Transaction {
	if partner == nil || !partner.Active {
		return nil
	}
	c := PartnerCommission(src, partner.CommissionPct, partner.CommissionFixed, now)
	if c != nil && c.PartnerID == "" {
		c.PartnerID = partner.ID
	}
	return c
}

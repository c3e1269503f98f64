package automation

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/lfarias/juris-api/internal/domain/entity"
)

// GenerateProcessTransactions deriva, de forma determinística, os lançamentos
// financeiros de um processo recém-contratado:
//
//   - uma receita de entrada, se valorEntrada > 0         (id "<pid>-entrada")
//   - numParcelas receitas de honorário fixo parcelado    (id "<pid>-parcela-N"),
//     vencendo a +1, +2, ... meses de now
//   - uma despesa de atos processuais, se valor > 0       (id "<pid>-atos")
//
// Os ids sintéticos derivam do id do processo mais uma marca de papel, de modo
// que regenerar produz exatamente as mesmas chaves (o store rejeita a
// duplicata). O rateio das parcelas arredonda cada uma para 2 casas e a última
// absorve a sobra, garantindo que a soma feche com o honorário fixo.
func GenerateProcessTransactions(p *entity.Process, now time.Time) []*entity.Transaction {
	var out []*entity.Transaction

	if p.EntryAmount.IsPositive() {
		out = append(out, &entity.Transaction{
			ID:          p.ID + "-entrada",
			Kind:        entity.TransactionRevenue,
			Amount:      p.EntryAmount,
			Date:        now,
			Category:    entity.CategoryFees,
			Status:      entity.TransactionPending,
			Description: fmt.Sprintf("Entrada — processo %s", p.Number),
			ClientID:    p.ClientID,
			ProcessID:   p.ID,
		})
	}

	if p.Parcelado() {
		n := int64(p.Installments)
		per := p.FixedAmount.DivRound(decimal.NewFromInt(n), 2)
		for i := int64(1); i <= n; i++ {
			amount := per
			if i == n {
				amount = p.FixedAmount.Sub(per.Mul(decimal.NewFromInt(n - 1)))
			}
			due := now.AddDate(0, int(i), 0)
			out = append(out, &entity.Transaction{
				ID:          fmt.Sprintf("%s-parcela-%d", p.ID, i),
				Kind:        entity.TransactionRevenue,
				Amount:      amount,
				Date:        now,
				DueDate:     &due,
				Category:    entity.CategoryFees,
				Status:      entity.TransactionPending,
				Description: fmt.Sprintf("Parcela %d/%d — processo %s", i, n, p.Number),
				ClientID:    p.ClientID,
				ProcessID:   p.ID,
			})
		}
	}

	if p.ActsAmount.IsPositive() {
		out = append(out, &entity.Transaction{
			ID:          p.ID + "-atos",
			Kind:        entity.TransactionExpense,
			Amount:      p.ActsAmount,
			Date:        now,
			Category:    entity.CategoryCourtCosts,
			Status:      entity.TransactionPending,
			Description: fmt.Sprintf("Atos processuais — processo %s", p.Number),
			ClientID:    p.ClientID,
			ProcessID:   p.ID,
		})
	}

	return out
}

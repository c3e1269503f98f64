// Package metrics calcula o resumo consolidado exibido no painel gerencial.
//
// Compute é uma função pura das quatro coleções: recomputação total, sem
// estado incremental. Mesmas entradas produzem saída estruturalmente
// idêntica.
package metrics

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/lfarias/juris-api/internal/domain/entity"
)

// ratioPlaces casas decimais das razões (taxa de sucesso, margem).
const ratioPlaces = 4

// BestPartner referência ao parceiro com maior LTV.
type BestPartner struct {
	ID   string          `json:"id"`
	Name string          `json:"nome"`
	LTV  decimal.Decimal `json:"ltv"`
}

// Snapshot resumo derivado das coleções; nunca persistido.
type Snapshot struct {
	TotalClients    int `json:"totalClientes"`
	ActiveClients   int `json:"clientesAtivos"`
	ProspectClients int `json:"clientesProspectos"`
	InactiveClients int `json:"clientesInativos"`
	NewThisMonth    int `json:"novosEsteMes"`

	TotalProcesses     int             `json:"totalProcessos"`
	ProcessesActive    int             `json:"processosEmAndamento"`
	ProcessesFinalized int             `json:"processosFinalizados"`
	SuccessRate        decimal.Decimal `json:"taxaSucesso"`

	TotalRevenue decimal.Decimal `json:"receitaTotal"`
	TotalExpense decimal.Decimal `json:"despesaTotal"`
	Profit       decimal.Decimal `json:"lucro"`
	ProfitMargin decimal.Decimal `json:"margemLucro"`
	Receivable   decimal.Decimal `json:"contasAReceber"`
	Payable      decimal.Decimal `json:"contasAPagar"`

	BestPartner *BestPartner `json:"melhorParceiro,omitempty"`
}

// Compute agrega as quatro coleções num Snapshot. now define o mês corrente
// para a contagem de clientes novos (mês calendário, não 30 dias corridos).
func Compute(
	clients []*entity.Client,
	processes []*entity.Process,
	transactions []*entity.Transaction,
	partners []*entity.Partner,
	now time.Time,
) Snapshot {
	snap := Snapshot{
		SuccessRate:  decimal.Zero,
		TotalRevenue: decimal.Zero,
		TotalExpense: decimal.Zero,
		Profit:       decimal.Zero,
		ProfitMargin: decimal.Zero,
		Receivable:   decimal.Zero,
		Payable:      decimal.Zero,
	}

	// ── Clientes ──────────────────────────────────────────────────────────────
	snap.TotalClients = len(clients)
	for _, c := range clients {
		switch c.Status {
		case entity.ClientStatusActive:
			snap.ActiveClients++
		case entity.ClientStatusProspect:
			snap.ProspectClients++
		case entity.ClientStatusInactive:
			snap.InactiveClients++
		}
		if c.RegisteredAt.Month() == now.Month() && c.RegisteredAt.Year() == now.Year() {
			snap.NewThisMonth++
		}
	}

	// ── Processos ─────────────────────────────────────────────────────────────
	snap.TotalProcesses = len(processes)
	for _, p := range processes {
		switch p.Status {
		case entity.ProcessStatusInProgress:
			snap.ProcessesActive++
		case entity.ProcessStatusFinalized:
			snap.ProcessesFinalized++
		}
	}
	if snap.TotalProcesses > 0 {
		snap.SuccessRate = decimal.NewFromInt(int64(snap.ProcessesFinalized)).
			DivRound(decimal.NewFromInt(int64(snap.TotalProcesses)), ratioPlaces)
	}

	// ── Financeiro ────────────────────────────────────────────────────────────
	// Totais de receita/despesa consideram apenas lançamentos pagos;
	// contas a receber/pagar somam os pendentes por tipo.
	for _, t := range transactions {
		switch {
		case t.Status == entity.TransactionPaid && t.Kind == entity.TransactionRevenue:
			snap.TotalRevenue = snap.TotalRevenue.Add(t.Amount)
		case t.Status == entity.TransactionPaid && t.Kind == entity.TransactionExpense:
			snap.TotalExpense = snap.TotalExpense.Add(t.Amount)
		case t.Status == entity.TransactionPending && t.Kind == entity.TransactionRevenue:
			snap.Receivable = snap.Receivable.Add(t.Amount)
		case t.Status == entity.TransactionPending && t.Kind == entity.TransactionExpense:
			snap.Payable = snap.Payable.Add(t.Amount)
		}
	}
	snap.Profit = snap.TotalRevenue.Sub(snap.TotalExpense)
	if snap.TotalRevenue.IsPositive() {
		snap.ProfitMargin = snap.Profit.DivRound(snap.TotalRevenue, ratioPlaces)
	}

	// ── Parceiros ─────────────────────────────────────────────────────────────
	// Melhor parceiro por LTV; empate fica com o primeiro na ordem de inserção.
	for _, p := range partners {
		if snap.BestPartner == nil || p.LTV.GreaterThan(snap.BestPartner.LTV) {
			snap.BestPartner = &BestPartner{ID: p.ID, Name: p.Name, LTV: p.LTV}
		}
	}

	return snap
}

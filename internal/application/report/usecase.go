// Package report monta o relatório gerencial mensal a partir do resumo de
// métricas e dos alertas ativos. A renderização (PDF) fica atrás da porta
// Generator; os valores monetários são formatados em pt-BR.
package report

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/lfarias/juris-api/internal/application/automation"
	"github.com/lfarias/juris-api/internal/application/metrics"
)

// Line um rótulo e o valor formatado.
type Line struct {
	Label string
	Value string
}

// Section bloco do relatório com título e linhas.
type Section struct {
	Title string
	Lines []Line
}

// Report modelo pronto para renderização.
type Report struct {
	Title       string
	Period      string
	GeneratedAt time.Time
	Sections    []Section
	Alerts      []automation.Alert
}

// Generator porta de saída para a renderização do relatório.
type Generator interface {
	Generate(rep Report) ([]byte, error)
}

// UseCase monta e renderiza relatórios.
type UseCase struct {
	gen     Generator
	printer *message.Printer
}

// NewUseCase constrói o caso de uso com o renderizador injetado.
func NewUseCase(gen Generator) *UseCase {
	return &UseCase{
		gen:     gen,
		printer: message.NewPrinter(language.BrazilianPortuguese),
	}
}

// Monthly monta o relatório do mês de referência e devolve os bytes do PDF.
func (uc *UseCase) Monthly(snap metrics.Snapshot, alerts []automation.Alert, now time.Time) ([]byte, error) {
	rep := uc.Build(snap, alerts, now)
	out, err := uc.gen.Generate(rep)
	if err != nil {
		return nil, fmt.Errorf("relatório: renderizar: %w", err)
	}
	return out, nil
}

// Build monta o modelo do relatório sem renderizá-lo (útil em testes).
func (uc *UseCase) Build(snap metrics.Snapshot, alerts []automation.Alert, now time.Time) Report {
	clientSection := Section{
		Title: "Clientes",
		Lines: []Line{
			{Label: "Total de clientes", Value: uc.count(snap.TotalClients)},
			{Label: "Ativos", Value: uc.count(snap.ActiveClients)},
			{Label: "Prospectos", Value: uc.count(snap.ProspectClients)},
			{Label: "Inativos", Value: uc.count(snap.InactiveClients)},
			{Label: "Novos este mês", Value: uc.count(snap.NewThisMonth)},
		},
	}
	processSection := Section{
		Title: "Processos",
		Lines: []Line{
			{Label: "Total de processos", Value: uc.count(snap.TotalProcesses)},
			{Label: "Em andamento", Value: uc.count(snap.ProcessesActive)},
			{Label: "Finalizados", Value: uc.count(snap.ProcessesFinalized)},
			{Label: "Taxa de sucesso", Value: uc.percent(snap.SuccessRate)},
		},
	}
	financeSection := Section{
		Title: "Financeiro",
		Lines: []Line{
			{Label: "Receita (paga)", Value: uc.money(snap.TotalRevenue)},
			{Label: "Despesa (paga)", Value: uc.money(snap.TotalExpense)},
			{Label: "Lucro", Value: uc.money(snap.Profit)},
			{Label: "Margem de lucro", Value: uc.percent(snap.ProfitMargin)},
			{Label: "Contas a receber", Value: uc.money(snap.Receivable)},
			{Label: "Contas a pagar", Value: uc.money(snap.Payable)},
		},
	}
	if snap.BestPartner != nil {
		financeSection.Lines = append(financeSection.Lines, Line{
			Label: "Melhor parceiro (LTV)",
			Value: fmt.Sprintf("%s — %s", snap.BestPartner.Name, uc.money(snap.BestPartner.LTV)),
		})
	}

	return Report{
		Title:       "Relatório Gerencial",
		Period:      monthLabel(now),
		GeneratedAt: now,
		Sections:    []Section{clientSection, processSection, financeSection},
		Alerts:      alerts,
	}
}

func (uc *UseCase) count(n int) string {
	return uc.printer.Sprintf("%d", n)
}

// money formata em reais com separadores pt-BR (ex.: R$ 1.234,56).
func (uc *UseCase) money(d decimal.Decimal) string {
	f, _ := d.Round(2).Float64()
	return uc.printer.Sprintf("R$ %.2f", f)
}

// percent formata razão [0,1] como percentual com 1 casa.
func (uc *UseCase) percent(d decimal.Decimal) string {
	f, _ := d.Mul(decimal.NewFromInt(100)).Float64()
	return uc.printer.Sprintf("%.1f%%", f)
}

// monthLabel devolve uma etiqueta legível do mês, ex.: "Agosto 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
		"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}

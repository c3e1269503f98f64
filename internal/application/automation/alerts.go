// Package automation reúne as regras de automação do escritório: alertas
// derivados (clientes sem contato, processos sem cobrança, lançamentos
// vencidos, prazos próximos), geração de lançamentos a partir do processo,
// comissão de parceiro e vínculo cliente↔processo.
//
// Todas as regras são funções puras sobre as coleções; o efeito de
// notificação é responsabilidade de quem chama.
package automation

import (
	"fmt"
	"time"

	"github.com/lfarias/juris-api/internal/domain/entity"
)

// staleAfterDays dias corridos sem contato a partir dos quais o cliente
// entra no alerta (fronteira estrita: 30 dias exatos não alertam).
const staleAfterDays = 30

// defaultDeadlineWindow janela padrão para prazos próximos.
const defaultDeadlineWindow = 7 * 24 * time.Hour

// Níveis de alerta.
const (
	AlertInfo    = "info"
	AlertWarning = "atencao"
	AlertError   = "erro"
)

// Alert resumo agregado de uma regra de alerta (contagem, nunca por item).
type Alert struct {
	Level   string `json:"nivel"`
	Code    string `json:"codigo"`
	Message string `json:"mensagem"`
	Count   int    `json:"total"`
}

// StaleClients devolve os clientes sem contato há mais de 30 dias
// (diferença em dias corridos, truncada) ou que nunca foram contatados.
func StaleClients(clients []*entity.Client, now time.Time) []*entity.Client {
	var out []*entity.Client
	for _, c := range clients {
		if c.LastContactAt == nil {
			out = append(out, c)
			continue
		}
		days := int(now.Sub(*c.LastContactAt).Hours() / 24)
		if days > staleAfterDays {
			out = append(out, c)
		}
	}
	return out
}

// UnbilledProcesses devolve os processos em andamento sem nenhum lançamento
// financeiro vinculado.
func UnbilledProcesses(processes []*entity.Process, transactions []*entity.Transaction) []*entity.Process {
	billed := make(map[string]bool, len(transactions))
	for _, t := range transactions {
		if t.ProcessID != "" {
			billed[t.ProcessID] = true
		}
	}

	var out []*entity.Process
	for _, p := range processes {
		if p.Status == entity.ProcessStatusInProgress && !billed[p.ID] {
			out = append(out, p)
		}
	}
	return out
}

// OverdueTransactions devolve os lançamentos pendentes com vencimento
// estritamente anterior a now.
func OverdueTransactions(transactions []*entity.Transaction, now time.Time) []*entity.Transaction {
	var out []*entity.Transaction
	for _, t := range transactions {
		if t.Status == entity.TransactionPending && t.DueDate != nil && t.DueDate.Before(now) {
			out = append(out, t)
		}
	}
	return out
}

// UpcomingDeadlines devolve os compromissos não concluídos dentro da janela
// [now, now+window). window <= 0 usa a janela padrão de 7 dias.
func UpcomingDeadlines(events []*entity.CalendarEvent, now time.Time, window time.Duration) []*entity.CalendarEvent {
	if window <= 0 {
		window = defaultDeadlineWindow
	}
	limit := now.Add(window)

	var out []*entity.CalendarEvent
	for _, e := range events {
		if e.Done {
			continue
		}
		if !e.Date.Before(now) && e.Date.Before(limit) {
			out = append(out, e)
		}
	}
	return out
}

// BuildAlerts roda todas as regras de alerta e devolve o resumo agregado.
// Regras sem itens sinalizados não produzem alerta.
func BuildAlerts(
	clients []*entity.Client,
	processes []*entity.Process,
	transactions []*entity.Transaction,
	events []*entity.CalendarEvent,
	now time.Time,
) []Alert {
	var alerts []Alert

	if stale := StaleClients(clients, now); len(stale) > 0 {
		alerts = append(alerts, Alert{
			Level:   AlertWarning,
			Code:    "clientes_sem_contato",
			Message: fmt.Sprintf("%d cliente(s) sem contato há mais de %d dias", len(stale), staleAfterDays),
			Count:   len(stale),
		})
	}
	if unbilled := UnbilledProcesses(processes, transactions); len(unbilled) > 0 {
		alerts = append(alerts, Alert{
			Level:   AlertInfo,
			Code:    "processos_sem_cobranca",
			Message: fmt.Sprintf("%d processo(s) em andamento sem lançamento financeiro", len(unbilled)),
			Count:   len(unbilled),
		})
	}
	if overdue := OverdueTransactions(transactions, now); len(overdue) > 0 {
		alerts = append(alerts, Alert{
			Level:   AlertError,
			Code:    "lancamentos_vencidos",
			Message: fmt.Sprintf("%d lançamento(s) pendente(s) com vencimento ultrapassado", len(overdue)),
			Count:   len(overdue),
		})
	}
	if deadlines := UpcomingDeadlines(events, now, 0); len(deadlines) > 0 {
		alerts = append(alerts, Alert{
			Level:   AlertWarning,
			Code:    "prazos_proximos",
			Message: fmt.Sprintf("%d compromisso(s) nos próximos 7 dias", len(deadlines)),
			Count:   len(deadlines),
		})
	}

	return alerts
}

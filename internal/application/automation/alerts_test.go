package automation_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lfarias/juris-api/internal/application/automation"
	"github.com/lfarias/juris-api/internal/domain/entity"
)

var testNow = time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)

func contactAt(t time.Time) *time.Time { return &t }

func TestStaleClients_FronteiraDe30Dias(t *testing.T) {
	exactly30 := testNow.AddDate(0, 0, -30)
	days31 := testNow.AddDate(0, 0, -31)

	clients := []*entity.Client{
		{ID: "nunca", Name: "Nunca Contatado"},
		{ID: "30dias", Name: "Trinta", LastContactAt: contactAt(exactly30)},
		{ID: "31dias", Name: "Trinta e Um", LastContactAt: contactAt(days31)},
		{ID: "ontem", Name: "Recente", LastContactAt: contactAt(testNow.AddDate(0, 0, -1))},
	}

	stale := automation.StaleClients(clients, testNow)

	ids := make([]string, 0, len(stale))
	for _, c := range stale {
		ids = append(ids, c.ID)
	}
	assert.Contains(t, ids, "nunca", "sem ultimoContato conta como nunca contatado")
	assert.Contains(t, ids, "31dias")
	assert.NotContains(t, ids, "30dias", "a fronteira é estrita: exatamente 30 dias não alerta")
	assert.NotContains(t, ids, "ontem")
}

func TestUnbilledProcesses_SomenteEmAndamentoSemLancamento(t *testing.T) {
	processes := []*entity.Process{
		{ID: "p1", Status: entity.ProcessStatusInProgress},
		{ID: "p2", Status: entity.ProcessStatusInProgress},
		{ID: "p3", Status: entity.ProcessStatusFinalized},
	}
	transactions := []*entity.Transaction{
		{ID: "t1", ProcessID: "p1"},
	}

	unbilled := automation.UnbilledProcesses(processes, transactions)

	require.Len(t, unbilled, 1)
	assert.Equal(t, "p2", unbilled[0].ID, "finalizado sem lançamento não entra no alerta")
}

func TestOverdueTransactions_VencimentoEstritamenteAnterior(t *testing.T) {
	yesterday := testNow.AddDate(0, 0, -1)
	tomorrow := testNow.AddDate(0, 0, 1)

	transactions := []*entity.Transaction{
		{ID: "vencido", Status: entity.TransactionPending, DueDate: &yesterday},
		{ID: "no-prazo", Status: entity.TransactionPending, DueDate: &tomorrow},
		{ID: "exato", Status: entity.TransactionPending, DueDate: &testNow},
		{ID: "pago", Status: entity.TransactionPaid, DueDate: &yesterday},
		{ID: "sem-vencimento", Status: entity.TransactionPending},
	}

	overdue := automation.OverdueTransactions(transactions, testNow)

	require.Len(t, overdue, 1)
	assert.Equal(t, "vencido", overdue[0].ID)
}

func TestUpcomingDeadlines_JanelaPadrao(t *testing.T) {
	events := []*entity.CalendarEvent{
		{ID: "em3dias", Date: testNow.AddDate(0, 0, 3)},
		{ID: "em10dias", Date: testNow.AddDate(0, 0, 10)},
		{ID: "passado", Date: testNow.AddDate(0, 0, -1)},
		{ID: "concluido", Date: testNow.AddDate(0, 0, 2), Done: true},
	}

	upcoming := automation.UpcomingDeadlines(events, testNow, 0)

	require.Len(t, upcoming, 1)
	assert.Equal(t, "em3dias", upcoming[0].ID)
}

func TestBuildAlerts_ResumoAgregadoPorRegra(t *testing.T) {
	yesterday := testNow.AddDate(0, 0, -1)
	clients := []*entity.Client{
		{ID: "c1"},
		{ID: "c2"},
	}
	transactions := []*entity.Transaction{
		{ID: "t1", Status: entity.TransactionPending, DueDate: &yesterday},
	}

	alerts := automation.BuildAlerts(clients, nil, transactions, nil, testNow)

	require.Len(t, alerts, 2, "uma entrada por regra sinalizada, nunca por item")
	assert.Equal(t, "clientes_sem_contato", alerts[0].Code)
	assert.Equal(t, automation.AlertWarning, alerts[0].Level)
	assert.Equal(t, 2, alerts[0].Count)
	assert.Equal(t, "lancamentos_vencidos", alerts[1].Code)
	assert.Equal(t, automation.AlertError, alerts[1].Level)
}

func TestBuildAlerts_SemItensSemAlerta(t *testing.T) {
	alerts := automation.BuildAlerts(nil, nil, nil, nil, testNow)
	assert.Empty(t, alerts)
}

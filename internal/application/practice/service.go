// Package practice é a fachada da gestão do escritório: compõe os stores de
// entidade, as regras de automação, o agregador de métricas e o serviço de
// integrações. É esta camada que transforma mutações de store em eventos de
// webhook.
package practice

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/lfarias/juris-api/internal/application/automation"
	"github.com/lfarias/juris-api/internal/application/integration"
	"github.com/lfarias/juris-api/internal/application/metrics"
	"github.com/lfarias/juris-api/internal/application/store"
	"github.com/lfarias/juris-api/internal/domain"
	"github.com/lfarias/juris-api/internal/domain/entity"
	"github.com/lfarias/juris-api/pkg/logger"
)

// Service fachada sobre os stores e as regras do escritório.
type Service struct {
	clients      *store.Store[*entity.Client]
	processes    *store.Store[*entity.Process]
	transactions *store.Store[*entity.Transaction]
	partners     *store.Store[*entity.Partner]
	team         *store.Store[*entity.TeamMember]
	events       *store.Store[*entity.CalendarEvent]

	hooks    *integration.Service
	notifier store.Notifier
	log      *logger.Logger
	nowFn    func() time.Time
}

// NewService constrói a fachada com stores vazios.
func NewService(hooks *integration.Service, notifier store.Notifier, log *logger.Logger) *Service {
	if notifier == nil {
		notifier = store.NopNotifier{}
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Service{
		clients:      store.New[*entity.Client]("cliente", notifier),
		processes:    store.New[*entity.Process]("processo", notifier),
		transactions: store.New[*entity.Transaction]("lançamento", notifier),
		partners:     store.New[*entity.Partner]("parceiro", notifier),
		team:         store.New[*entity.TeamMember]("membro da equipe", notifier),
		events:       store.New[*entity.CalendarEvent]("compromisso", notifier),
		hooks:        hooks,
		notifier:     notifier,
		log:          log,
		nowFn:        time.Now,
	}
}

// WithClock troca a fonte de tempo (testes).
func (s *Service) WithClock(now func() time.Time) *Service {
	s.nowFn = now
	return s
}

// Drain aguarda as entregas de webhook em voo (shutdown e testes).
func (s *Service) Drain() {
	if s.hooks != nil {
		s.hooks.Drain()
	}
}

// trigger dispara o evento quando há serviço de integrações configurado.
func (s *Service) trigger(ctx context.Context, event string, data any) {
	if s.hooks != nil {
		s.hooks.Trigger(ctx, event, data)
	}
}

// ── Clientes ──────────────────────────────────────────────────────────────────

// CreateClient cadastra o cliente e dispara client.created.
func (s *Service) CreateClient(ctx context.Context, c *entity.Client) (*entity.Client, error) {
	out, err := s.clients.Add(c)
	if err != nil {
		return nil, err
	}
	s.trigger(ctx, entity.EventClientCreated, out)
	return out, nil
}

// UpdateClient aplica a mutação e dispara client.updated quando houve alteração.
func (s *Service) UpdateClient(ctx context.Context, id string, mutate func(*entity.Client)) bool {
	if !s.clients.Update(id, mutate) {
		return false
	}
	c, _ := s.clients.Get(id)
	s.trigger(ctx, entity.EventClientUpdated, c)
	return true
}

// DeleteClient remove o cliente (idempotente) e dispara client.deleted.
func (s *Service) DeleteClient(ctx context.Context, id string) {
	if _, ok := s.clients.Get(id); !ok {
		return
	}
	s.clients.Remove(id)
	s.trigger(ctx, entity.EventClientDeleted, map[string]string{"id": id})
}

// RegisterContact anota o último contato com o cliente.
func (s *Service) RegisterContact(ctx context.Context, id string, when time.Time) bool {
	return s.UpdateClient(ctx, id, func(c *entity.Client) {
		c.LastContactAt = &when
	})
}

// ── Processos ─────────────────────────────────────────────────────────────────

// CreateProcess cadastra o processo e dispara process.created. Com
// generateBilling, deriva e registra os lançamentos do processo.
func (s *Service) CreateProcess(ctx context.Context, p *entity.Process, generateBilling bool) (*entity.Process, error) {
	if _, ok := s.clients.Get(p.ClientID); !ok {
		return nil, fmt.Errorf("processo %s: cliente %s: %w", p.Number, p.ClientID, domain.ErrNotFound)
	}
	out, err := s.processes.Add(p)
	if err != nil {
		return nil, err
	}
	s.trigger(ctx, entity.EventProcessCreated, out)

	if generateBilling {
		if _, err := s.GenerateProcessBilling(ctx, out.ID); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// UpdateProcess aplica a mutação e dispara process.updated.
func (s *Service) UpdateProcess(ctx context.Context, id string, mutate func(*entity.Process)) bool {
	if !s.processes.Update(id, mutate) {
		return false
	}
	p, _ := s.processes.Get(id)
	s.trigger(ctx, entity.EventProcessUpdated, p)
	return true
}

// ChangeProcessStatus troca o status e dispara process.status_changed.
func (s *Service) ChangeProcessStatus(ctx context.Context, id, status string) bool {
	if !s.processes.Update(id, func(p *entity.Process) { p.Status = status }) {
		return false
	}
	s.trigger(ctx, entity.EventProcessStatus, map[string]string{
		"processoId": id,
		"status":     status,
	})
	return true
}

// LinkClientProcess vincula cliente e processo segundo a regra de automação.
// Cliente fora do status Ativo recusa com notificação bloqueante e nenhuma
// mutação.
func (s *Service) LinkClientProcess(ctx context.Context, clientID, processID string) error {
	c, ok := s.clients.Get(clientID)
	if !ok {
		return fmt.Errorf("cliente %s: %w", clientID, domain.ErrNotFound)
	}
	p, ok := s.processes.Get(processID)
	if !ok {
		return fmt.Errorf("processo %s: %w", processID, domain.ErrNotFound)
	}

	// A regra roda sobre cópias; as escritas passam pelos stores, sob lock.
	clientCopy := *c
	clientCopy.Tags = slices.Clone(c.Tags)
	processCopy := *p
	if err := automation.LinkClientProcess(&clientCopy, &processCopy); err != nil {
		s.notifier.Error(fmt.Sprintf("não foi possível vincular: cliente %s não está ativo", c.Name))
		return err
	}

	s.processes.Update(processID, func(proc *entity.Process) {
		proc.ClientID = clientID
	})
	s.clients.Update(clientID, func(cl *entity.Client) {
		cl.AddTag(processCopy.LegalArea)
	})
	s.trigger(ctx, entity.EventProcessUpdated, p)
	return nil
}

// GenerateProcessBilling deriva os lançamentos do processo e os registra.
// Chaves sintéticas já registradas são puladas (regeneração idempotente).
func (s *Service) GenerateProcessBilling(ctx context.Context, processID string) ([]*entity.Transaction, error) {
	p, ok := s.processes.Get(processID)
	if !ok {
		return nil, fmt.Errorf("processo %s: %w", processID, domain.ErrNotFound)
	}

	var added []*entity.Transaction
	for _, t := range automation.GenerateProcessTransactions(p, s.nowFn()) {
		out, err := s.transactions.Add(t)
		if err != nil {
			if err == domain.ErrDuplicate {
				continue
			}
			return added, err
		}
		added = append(added, out)
		s.trigger(ctx, entity.EventTransactionCreated, out)
	}
	return added, nil
}

// ── Financeiro ────────────────────────────────────────────────────────────────

// RegisterTransaction registra o lançamento e dispara financial.transaction_created.
func (s *Service) RegisterTransaction(ctx context.Context, t *entity.Transaction) (*entity.Transaction, error) {
	out, err := s.transactions.Add(t)
	if err != nil {
		return nil, err
	}
	s.trigger(ctx, entity.EventTransactionCreated, out)
	return out, nil
}

// MarkTransactionPaid marca o lançamento como pago, dispara
// financial.payment_received e, quando há parceiro envolvido, gera a despesa
// de comissão e acumula o LTV do parceiro. Lançamento já pago é no-op:
// repetir a baixa não recomissiona nem reacumula LTV.
func (s *Service) MarkTransactionPaid(ctx context.Context, id string) bool {
	if current, ok := s.transactions.Get(id); !ok || current.Status == entity.TransactionPaid {
		return false
	}
	if !s.transactions.Update(id, func(t *entity.Transaction) { t.Status = entity.TransactionPaid }) {
		return false
	}
	t, _ := s.transactions.Get(id)
	s.trigger(ctx, entity.EventPaymentReceived, t)

	if t.Kind == entity.TransactionRevenue {
		s.settleCommission(ctx, t)
	}
	return true
}

// settleCommission resolve o parceiro do lançamento (direto ou via cliente
// indicado) e registra a comissão derivada.
func (s *Service) settleCommission(ctx context.Context, t *entity.Transaction) {
	partnerID := t.PartnerID
	if partnerID == "" && t.ClientID != "" {
		if c, ok := s.clients.Get(t.ClientID); ok {
			partnerID = c.PartnerID
		}
	}
	if partnerID == "" {
		return
	}
	partner, ok := s.partners.Get(partnerID)
	if !ok {
		return
	}

	s.partners.Update(partnerID, func(p *entity.Partner) {
		p.LTV = p.LTV.Add(t.Amount)
	})

	commission := automation.CommissionForPartner(t, partner, s.nowFn())
	if commission == nil {
		return
	}
	out, err := s.transactions.Add(commission)
	if err != nil {
		if err != domain.ErrDuplicate {
			s.log.Error().Err(err).Str("lancamento", t.ID).Msg("registrar comissão")
		}
		return
	}
	s.trigger(ctx, entity.EventTransactionCreated, out)
}

// FlagOverdueTransactions marca como vencidos os pendentes com vencimento
// ultrapassado e dispara financial.payment_overdue para cada um.
func (s *Service) FlagOverdueTransactions(ctx context.Context, now time.Time) int {
	overdue := automation.OverdueTransactions(s.transactions.All(), now)
	for _, t := range overdue {
		s.transactions.Update(t.ID, func(tx *entity.Transaction) {
			tx.Status = entity.TransactionOverdue
		})
		s.trigger(ctx, entity.EventPaymentOverdue, t)
	}
	return len(overdue)
}

// ── Equipe e agenda ───────────────────────────────────────────────────────────

// AddTeamMember cadastra o membro e dispara team.member_added.
func (s *Service) AddTeamMember(ctx context.Context, m *entity.TeamMember) (*entity.TeamMember, error) {
	out, err := s.team.Add(m)
	if err != nil {
		return nil, err
	}
	s.trigger(ctx, entity.EventTeamMemberAdded, out)
	return out, nil
}

// ScheduleEvent cadastra o compromisso.
func (s *Service) ScheduleEvent(ctx context.Context, e *entity.CalendarEvent) (*entity.CalendarEvent, error) {
	return s.events.Add(e)
}

// NotifyUpcomingDeadlines dispara process.deadline_approaching para cada
// compromisso não concluído dentro da janela.
func (s *Service) NotifyUpcomingDeadlines(ctx context.Context, now time.Time, window time.Duration) int {
	upcoming := automation.UpcomingDeadlines(s.events.All(), now, window)
	for _, e := range upcoming {
		s.trigger(ctx, entity.EventProcessDeadline, e)
	}
	return len(upcoming)
}

// ── Parceiros ─────────────────────────────────────────────────────────────────

// AddPartner cadastra o parceiro.
func (s *Service) AddPartner(_ context.Context, p *entity.Partner) (*entity.Partner, error) {
	return s.partners.Add(p)
}

// ── Visões derivadas ──────────────────────────────────────────────────────────

// Metrics recalcula o resumo consolidado a partir das coleções atuais.
func (s *Service) Metrics(now time.Time) metrics.Snapshot {
	return metrics.Compute(
		s.clients.All(),
		s.processes.All(),
		s.transactions.All(),
		s.partners.All(),
		now,
	)
}

// Alerts roda as regras de alerta sobre as coleções atuais.
func (s *Service) Alerts(now time.Time) []automation.Alert {
	return automation.BuildAlerts(
		s.clients.All(),
		s.processes.All(),
		s.transactions.All(),
		s.events.All(),
		now,
	)
}

// ── Acesso às coleções (leitura) ──────────────────────────────────────────────

func (s *Service) Clients() []*entity.Client           { return s.clients.All() }
func (s *Service) Processes() []*entity.Process        { return s.processes.All() }
func (s *Service) Transactions() []*entity.Transaction { return s.transactions.All() }
func (s *Service) Partners() []*entity.Partner         { return s.partners.All() }
func (s *Service) Team() []*entity.TeamMember          { return s.team.All() }
func (s *Service) Events() []*entity.CalendarEvent     { return s.events.All() }

// Client devolve o cliente pelo id.
func (s *Service) Client(id string) (*entity.Client, bool) { return s.clients.Get(id) }

// Process devolve o processo pelo id.
func (s *Service) Process(id string) (*entity.Process, bool) { return s.processes.Get(id) }

// Transaction devolve o lançamento pelo id.
func (s *Service) Transaction(id string) (*entity.Transaction, bool) { return s.transactions.Get(id) }

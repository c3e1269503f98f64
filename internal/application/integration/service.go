// Package integration gerencia as configurações de webhook e integração e o
// disparo de eventos de domínio para os destinos assinados.
//
// As duas coleções são carregadas do repositório na construção e regravadas
// a cada escrita (transacionalidade na granularidade da coleção). A entrega
// em si é delegada ao Dispatcher da infraestrutura; falhas de transporte são
// registradas e nunca se propagam além desta camada.
package integration

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lfarias/juris-api/internal/domain"
	"github.com/lfarias/juris-api/internal/domain/entity"
	"github.com/lfarias/juris-api/internal/domain/repository"
	"github.com/lfarias/juris-api/pkg/logger"
)

// Envelope corpo JSON enviado a cada webhook.
type Envelope struct {
	Event     string `json:"event"`
	Timestamp string `json:"timestamp"` // RFC 3339
	Data      any    `json:"data"`
	Source    string `json:"source"`
}

// Dispatcher porta de saída para a entrega HTTP de um envelope.
type Dispatcher interface {
	Deliver(ctx context.Context, webhook entity.WebhookConfig, env Envelope) error
}

// Service estado em memória das configurações mais o fan-out de eventos.
type Service struct {
	mu           sync.Mutex
	webhooks     []entity.WebhookConfig
	integrations []entity.IntegrationConfig

	webhookRepo     repository.WebhookRepository
	integrationRepo repository.IntegrationRepository
	deadLetterRepo  repository.DeadLetterRepository
	dispatcher      Dispatcher

	source string
	log    *logger.Logger
	nowFn  func() time.Time
	wg     sync.WaitGroup
}

// NewService carrega as coleções persistidas e constrói o serviço.
// source é o valor do campo "source" do envelope.
func NewService(
	webhookRepo repository.WebhookRepository,
	integrationRepo repository.IntegrationRepository,
	deadLetterRepo repository.DeadLetterRepository,
	dispatcher Dispatcher,
	source string,
	log *logger.Logger,
) (*Service, error) {
	webhooks, err := webhookRepo.Load()
	if err != nil {
		return nil, fmt.Errorf("carregar webhooks: %w", err)
	}
	integrations, err := integrationRepo.Load()
	if err != nil {
		return nil, fmt.Errorf("carregar integrações: %w", err)
	}

	return &Service{
		webhooks:        webhooks,
		integrations:    integrations,
		webhookRepo:     webhookRepo,
		integrationRepo: integrationRepo,
		deadLetterRepo:  deadLetterRepo,
		dispatcher:      dispatcher,
		source:          source,
		log:             log,
		nowFn:           time.Now,
	}, nil
}

// WithClock troca a fonte de tempo (testes).
func (s *Service) WithClock(now func() time.Time) *Service {
	s.nowFn = now
	return s
}

// ── CRUD de webhooks ──────────────────────────────────────────────────────────

// CreateWebhook valida, atribui identidade e persiste a coleção.
func (s *Service) CreateWebhook(cfg entity.WebhookConfig) (entity.WebhookConfig, error) {
	if err := cfg.Validate(); err != nil {
		return entity.WebhookConfig{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.nowFn()
	cfg.ID = uuid.New().String()
	cfg.CreatedAt = now
	cfg.UpdatedAt = now
	s.webhooks = append(s.webhooks, cfg)

	if err := s.webhookRepo.Save(s.webhooks); err != nil {
		s.webhooks = s.webhooks[:len(s.webhooks)-1]
		return entity.WebhookConfig{}, fmt.Errorf("persistir webhooks: %w", err)
	}
	return cfg, nil
}

// UpdateWebhook aplica a mutação sobre uma cópia, valida e persiste; mutação
// inválida ou falha de gravação deixam a coleção intacta. O identificador
// nunca muda.
func (s *Service) UpdateWebhook(id string, mutate func(*entity.WebhookConfig)) (entity.WebhookConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.webhooks {
		if s.webhooks[i].ID != id {
			continue
		}
		updated := s.webhooks[i]
		mutate(&updated)
		updated.ID = id
		updated.UpdatedAt = s.nowFn()
		if err := updated.Validate(); err != nil {
			return entity.WebhookConfig{}, err
		}
		prev := s.webhooks[i]
		s.webhooks[i] = updated
		if err := s.webhookRepo.Save(s.webhooks); err != nil {
			s.webhooks[i] = prev
			return entity.WebhookConfig{}, fmt.Errorf("persistir webhooks: %w", err)
		}
		return updated, nil
	}
	return entity.WebhookConfig{}, domain.ErrNotFound
}

// DeleteWebhook remove por id (idempotente) e persiste.
func (s *Service) DeleteWebhook(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.webhooks {
		if s.webhooks[i].ID == id {
			s.webhooks = append(s.webhooks[:i], s.webhooks[i+1:]...)
			if err := s.webhookRepo.Save(s.webhooks); err != nil {
				return fmt.Errorf("persistir webhooks: %w", err)
			}
			return nil
		}
	}
	return nil
}

// Webhooks devolve uma cópia da coleção.
func (s *Service) Webhooks() []entity.WebhookConfig {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]entity.WebhookConfig, len(s.webhooks))
	copy(out, s.webhooks)
	return out
}

// ── CRUD de integrações ───────────────────────────────────────────────────────

// CreateIntegration valida, atribui identidade e persiste a coleção.
func (s *Service) CreateIntegration(cfg entity.IntegrationConfig) (entity.IntegrationConfig, error) {
	if err := cfg.Validate(); err != nil {
		return entity.IntegrationConfig{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.nowFn()
	cfg.ID = uuid.New().String()
	cfg.CreatedAt = now
	cfg.UpdatedAt = now
	s.integrations = append(s.integrations, cfg)

	if err := s.integrationRepo.Save(s.integrations); err != nil {
		s.integrations = s.integrations[:len(s.integrations)-1]
		return entity.IntegrationConfig{}, fmt.Errorf("persistir integrações: %w", err)
	}
	return cfg, nil
}

// UpdateIntegration aplica a mutação sobre uma cópia, valida e persiste;
// mutação inválida ou falha de gravação deixam a coleção intacta.
func (s *Service) UpdateIntegration(id string, mutate func(*entity.IntegrationConfig)) (entity.IntegrationConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.integrations {
		if s.integrations[i].ID != id {
			continue
		}
		updated := s.integrations[i]
		mutate(&updated)
		updated.ID = id
		updated.UpdatedAt = s.nowFn()
		if err := updated.Validate(); err != nil {
			return entity.IntegrationConfig{}, err
		}
		prev := s.integrations[i]
		s.integrations[i] = updated
		if err := s.integrationRepo.Save(s.integrations); err != nil {
			s.integrations[i] = prev
			return entity.IntegrationConfig{}, fmt.Errorf("persistir integrações: %w", err)
		}
		return updated, nil
	}
	return entity.IntegrationConfig{}, domain.ErrNotFound
}

// DeleteIntegration remove por id (idempotente) e persiste.
func (s *Service) DeleteIntegration(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.integrations {
		if s.integrations[i].ID == id {
			s.integrations = append(s.integrations[:i], s.integrations[i+1:]...)
			if err := s.integrationRepo.Save(s.integrations); err != nil {
				return fmt.Errorf("persistir integrações: %w", err)
			}
			return nil
		}
	}
	return nil
}

// Integrations devolve uma cópia da coleção.
func (s *Service) Integrations() []entity.IntegrationConfig {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]entity.IntegrationConfig, len(s.integrations))
	copy(out, s.integrations)
	return out
}

// SyncIntegration carimba lastSync e persiste. Sincronização simulada:
// um cliente por provedor substituiria este stub.
func (s *Service) SyncIntegration(id string) error {
	_, err := s.UpdateIntegration(id, func(cfg *entity.IntegrationConfig) {
		now := s.nowFn()
		cfg.LastSync = &now
	})
	return err
}

// ── Disparo de eventos ────────────────────────────────────────────────────────

// Trigger dispara o evento para todos os webhooks ativos que o assinam e
// devolve quantos destinos foram selecionados. Cada entrega roda na sua
// própria goroutine: falha num destino não bloqueia os demais, e quem chama
// não espera a entrega. Drain aguarda as entregas em voo.
func (s *Service) Trigger(ctx context.Context, event string, data any) int {
	if !entity.KnownEvent(event) {
		s.log.Warn().Str("evento", event).Msg("evento de webhook desconhecido ignorado")
		return 0
	}

	env := Envelope{
		Event:     event,
		Timestamp: s.nowFn().UTC().Format(time.RFC3339),
		Data:      data,
		Source:    s.source,
	}

	s.mu.Lock()
	var targets []entity.WebhookConfig
	for _, w := range s.webhooks {
		if w.Active && w.SubscribedTo(event) {
			targets = append(targets, w)
		}
	}
	s.mu.Unlock()

	for _, w := range targets {
		s.wg.Add(1)
		go func(w entity.WebhookConfig) {
			defer s.wg.Done()
			s.deliver(ctx, w, env)
		}(w)
	}
	return len(targets)
}

// Drain aguarda as entregas em voo (shutdown e testes).
func (s *Service) Drain() {
	s.wg.Wait()
}

// deliver entrega a um destino e registra o resultado. Erros de transporte
// são não-fatais: log + dead letter, sem propagação.
func (s *Service) deliver(ctx context.Context, w entity.WebhookConfig, env Envelope) {
	if err := s.dispatcher.Deliver(ctx, w, env); err != nil {
		s.log.Error().
			Err(err).
			Str("webhook", w.ID).
			Str("url", w.URL).
			Str("evento", env.Event).
			Msg("entrega de webhook falhou")
		s.recordDeadLetter(w, env.Event, err)
		return
	}
	s.markTriggered(w.ID)
}

// markTriggered atualiza ultimoDisparo apenas em entrega bem-sucedida.
func (s *Service) markTriggered(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.webhooks {
		if s.webhooks[i].ID == id {
			now := s.nowFn()
			s.webhooks[i].LastTriggered = &now
			if err := s.webhookRepo.Save(s.webhooks); err != nil {
				s.log.Error().Err(err).Msg("persistir ultimoDisparo")
			}
			return
		}
	}
}

func (s *Service) recordDeadLetter(w entity.WebhookConfig, event string, cause error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	letters, err := s.deadLetterRepo.Load()
	if err != nil {
		s.log.Error().Err(err).Msg("carregar dead letters")
		return
	}
	letters = append(letters, entity.DeadLetter{
		WebhookID: w.ID,
		URL:       w.URL,
		Event:     event,
		Error:     cause.Error(),
		At:        s.nowFn(),
	})
	if err := s.deadLetterRepo.Save(letters); err != nil {
		s.log.Error().Err(err).Msg("persistir dead letters")
	}
}

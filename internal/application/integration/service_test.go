package integration_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lfarias/juris-api/internal/application/integration"
	"github.com/lfarias/juris-api/internal/domain"
	"github.com/lfarias/juris-api/internal/domain/entity"
	"github.com/lfarias/juris-api/internal/infrastructure/storage"
	"github.com/lfarias/juris-api/pkg/logger"
)

// fakeDispatcher registra os envelopes entregues por URL e falha nas URLs
// listadas em failing.
type fakeDispatcher struct {
	mu        sync.Mutex
	delivered map[string][]integration.Envelope
	failing   map[string]error
}

func newFakeDispatcher() *fakeDispatcher {
	return &fakeDispatcher{
		delivered: map[string][]integration.Envelope{},
		failing:   map[string]error{},
	}
}

func (d *fakeDispatcher) Deliver(_ context.Context, w entity.WebhookConfig, env integration.Envelope) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err, ok := d.failing[w.URL]; ok {
		return err
	}
	d.delivered[w.URL] = append(d.delivered[w.URL], env)
	return nil
}

func (d *fakeDispatcher) count(url string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.delivered[url])
}

type fixture struct {
	svc         *integration.Service
	dispatcher  *fakeDispatcher
	webhooks    *storage.WebhookRepository
	deadLetters *storage.DeadLetterRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	fs := afero.NewMemMapFs()
	webhooks := storage.NewWebhookRepository(fs, "/dados")
	integrations := storage.NewIntegrationRepository(fs, "/dados")
	deadLetters := storage.NewDeadLetterRepository(fs, "/dados")
	d := newFakeDispatcher()

	svc, err := integration.NewService(webhooks, integrations, deadLetters, d, "juris-api", logger.NewNop())
	require.NoError(t, err)
	svc.WithClock(func() time.Time {
		return time.Date(2026, time.August, 15, 12, 0, 0, 0, time.UTC)
	})

	return &fixture{svc: svc, dispatcher: d, webhooks: webhooks, deadLetters: deadLetters}
}

func validWebhook(url string, events ...string) entity.WebhookConfig {
	return entity.WebhookConfig{
		Name:   "destino",
		URL:    url,
		Events: events,
		Active: true,
	}
}

func TestCreateWebhook_PersisteEAtribuiIdentidade(t *testing.T) {
	f := newFixture(t)

	created, err := f.svc.CreateWebhook(validWebhook("https://a.example/hook", entity.EventClientCreated))
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	saved, err := f.webhooks.Load()
	require.NoError(t, err)
	require.Len(t, saved, 1, "a criação grava a coleção imediatamente")
	assert.Equal(t, created.ID, saved[0].ID)
}

func TestCreateWebhook_RejeitaEventoDesconhecido(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.CreateWebhook(validWebhook("https://a.example/hook", "cliente.criado"))
	assert.ErrorIs(t, err, domain.ErrUnknownEvent)

	saved, err := f.webhooks.Load()
	require.NoError(t, err)
	assert.Empty(t, saved, "nada é persistido quando a validação falha")
}

func TestUpdateWebhook_MutaEPersiste(t *testing.T) {
	f := newFixture(t)
	created, err := f.svc.CreateWebhook(validWebhook("https://a.example/hook", entity.EventClientCreated))
	require.NoError(t, err)

	updated, err := f.svc.UpdateWebhook(created.ID, func(w *entity.WebhookConfig) {
		w.Active = false
		w.ID = "tentativa-de-troca"
	})
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID, "o identificador nunca muda")
	assert.False(t, updated.Active)

	_, err = f.svc.UpdateWebhook("inexistente", func(w *entity.WebhookConfig) {})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateWebhook_MutacaoInvalidaNaoMuta(t *testing.T) {
	f := newFixture(t)
	created, err := f.svc.CreateWebhook(validWebhook("https://a.example/hook", entity.EventClientCreated))
	require.NoError(t, err)

	_, err = f.svc.UpdateWebhook(created.ID, func(w *entity.WebhookConfig) {
		w.Events = []string{"evento.invalido"}
		w.Active = false
	})
	require.ErrorIs(t, err, domain.ErrUnknownEvent)

	got := f.svc.Webhooks()
	require.Len(t, got, 1)
	assert.Equal(t, []string{entity.EventClientCreated}, got[0].Events,
		"mutação rejeitada não pode vazar para a coleção em memória")
	assert.True(t, got[0].Active)

	saved, err := f.webhooks.Load()
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, []string{entity.EventClientCreated}, saved[0].Events)
	assert.True(t, saved[0].Active)
}

// flakyWebhookRepo falha a gravação sob demanda.
type flakyWebhookRepo struct {
	*storage.WebhookRepository
	failSave bool
}

func (r *flakyWebhookRepo) Save(webhooks []entity.WebhookConfig) error {
	if r.failSave {
		return errors.New("disco cheio")
	}
	return r.WebhookRepository.Save(webhooks)
}

func TestUpdateWebhook_FalhaDeGravacaoRestauraColecao(t *testing.T) {
	fs := afero.NewMemMapFs()
	repo := &flakyWebhookRepo{WebhookRepository: storage.NewWebhookRepository(fs, "/dados")}
	svc, err := integration.NewService(
		repo,
		storage.NewIntegrationRepository(fs, "/dados"),
		storage.NewDeadLetterRepository(fs, "/dados"),
		newFakeDispatcher(), "juris-api", logger.NewNop(),
	)
	require.NoError(t, err)
	created, err := svc.CreateWebhook(validWebhook("https://a.example/hook", entity.EventClientCreated))
	require.NoError(t, err)

	repo.failSave = true
	_, err = svc.UpdateWebhook(created.ID, func(w *entity.WebhookConfig) { w.Active = false })
	require.Error(t, err)

	got := svc.Webhooks()
	require.Len(t, got, 1)
	assert.True(t, got[0].Active, "falha de gravação restaura o valor anterior")
}

func TestUpdateIntegration_MutacaoInvalidaNaoMuta(t *testing.T) {
	f := newFixture(t)
	created, err := f.svc.CreateIntegration(entity.IntegrationConfig{
		Name:     "Agenda do fórum",
		Provider: "google-calendar",
		Active:   true,
	})
	require.NoError(t, err)

	_, err = f.svc.UpdateIntegration(created.ID, func(cfg *entity.IntegrationConfig) {
		cfg.Provider = ""
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	got := f.svc.Integrations()
	require.Len(t, got, 1)
	assert.Equal(t, "google-calendar", got[0].Provider)
}

func TestDeleteWebhook_Idempotente(t *testing.T) {
	f := newFixture(t)
	created, err := f.svc.CreateWebhook(validWebhook("https://a.example/hook", entity.EventClientCreated))
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteWebhook(created.ID))
	require.NoError(t, f.svc.DeleteWebhook(created.ID))
	assert.Empty(t, f.svc.Webhooks())
}

func TestTrigger_EntregaATodosOsAssinantesAtivos(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.CreateWebhook(validWebhook("https://a.example/hook", entity.EventClientCreated))
	require.NoError(t, err)
	_, err = f.svc.CreateWebhook(validWebhook("https://b.example/hook", entity.EventClientCreated))
	require.NoError(t, err)

	inactive := validWebhook("https://c.example/hook", entity.EventClientCreated)
	inactive.Active = false
	_, err = f.svc.CreateWebhook(inactive)
	require.NoError(t, err)

	_, err = f.svc.CreateWebhook(validWebhook("https://d.example/hook", entity.EventPaymentReceived))
	require.NoError(t, err)

	n := f.svc.Trigger(context.Background(), entity.EventClientCreated, map[string]string{"id": "cli-1"})
	f.svc.Drain()

	assert.Equal(t, 2, n)
	assert.Equal(t, 1, f.dispatcher.count("https://a.example/hook"))
	assert.Equal(t, 1, f.dispatcher.count("https://b.example/hook"))
	assert.Zero(t, f.dispatcher.count("https://c.example/hook"), "webhook inativo não recebe")
	assert.Zero(t, f.dispatcher.count("https://d.example/hook"), "webhook de outro evento não recebe")

	env := f.dispatcher.delivered["https://a.example/hook"][0]
	assert.Equal(t, entity.EventClientCreated, env.Event)
	assert.Equal(t, "2026-08-15T12:00:00Z", env.Timestamp)
	assert.Equal(t, "juris-api", env.Source)
}

func TestTrigger_EventoDesconhecidoNaoDispara(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.CreateWebhook(validWebhook("https://a.example/hook", entity.EventClientCreated))
	require.NoError(t, err)

	n := f.svc.Trigger(context.Background(), "cliente.criado", nil)
	f.svc.Drain()

	assert.Zero(t, n)
	assert.Zero(t, f.dispatcher.count("https://a.example/hook"))
}

func TestTrigger_FalhaNumDestinoNaoBloqueiaOsDemais(t *testing.T) {
	f := newFixture(t)
	broken, err := f.svc.CreateWebhook(validWebhook("https://quebrado.example/hook", entity.EventClientCreated))
	require.NoError(t, err)
	healthy, err := f.svc.CreateWebhook(validWebhook("https://saudavel.example/hook", entity.EventClientCreated))
	require.NoError(t, err)

	f.dispatcher.failing["https://quebrado.example/hook"] = errors.New("connection refused")

	n := f.svc.Trigger(context.Background(), entity.EventClientCreated, nil)
	f.svc.Drain()
	require.Equal(t, 2, n)

	assert.Equal(t, 1, f.dispatcher.count("https://saudavel.example/hook"))

	var brokenCfg, healthyCfg entity.WebhookConfig
	for _, w := range f.svc.Webhooks() {
		switch w.ID {
		case broken.ID:
			brokenCfg = w
		case healthy.ID:
			healthyCfg = w
		}
	}
	assert.Nil(t, brokenCfg.LastTriggered, "ultimoDisparo só avança em entrega bem-sucedida")
	require.NotNil(t, healthyCfg.LastTriggered)
	assert.Equal(t, time.Date(2026, time.August, 15, 12, 0, 0, 0, time.UTC), *healthyCfg.LastTriggered)

	letters, err := f.deadLetters.Load()
	require.NoError(t, err)
	require.Len(t, letters, 1)
	assert.Equal(t, broken.ID, letters[0].WebhookID)
	assert.Equal(t, entity.EventClientCreated, letters[0].Event)
	assert.Contains(t, letters[0].Error, "connection refused")
}

func TestIntegration_CRUDESincronizacao(t *testing.T) {
	f := newFixture(t)

	created, err := f.svc.CreateIntegration(entity.IntegrationConfig{
		Name:     "Agenda do fórum",
		Provider: "google-calendar",
		Active:   true,
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.Nil(t, created.LastSync)

	_, err = f.svc.CreateIntegration(entity.IntegrationConfig{Name: "sem provedor"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	require.NoError(t, f.svc.SyncIntegration(created.ID))
	got := f.svc.Integrations()
	require.Len(t, got, 1)
	require.NotNil(t, got[0].LastSync)
	assert.Equal(t, time.Date(2026, time.August, 15, 12, 0, 0, 0, time.UTC), *got[0].LastSync)

	assert.ErrorIs(t, f.svc.SyncIntegration("inexistente"), domain.ErrNotFound)

	require.NoError(t, f.svc.DeleteIntegration(created.ID))
	assert.Empty(t, f.svc.Integrations())
}

func TestNewService_RecarregaColecoesPersistidas(t *testing.T) {
	fs := afero.NewMemMapFs()
	webhooks := storage.NewWebhookRepository(fs, "/dados")
	integrations := storage.NewIntegrationRepository(fs, "/dados")
	deadLetters := storage.NewDeadLetterRepository(fs, "/dados")

	first, err := integration.NewService(webhooks, integrations, deadLetters, newFakeDispatcher(), "juris-api", logger.NewNop())
	require.NoError(t, err)
	created, err := first.CreateWebhook(validWebhook("https://a.example/hook", entity.EventClientCreated))
	require.NoError(t, err)

	second, err := integration.NewService(webhooks, integrations, deadLetters, newFakeDispatcher(), "juris-api", logger.NewNop())
	require.NoError(t, err)

	got := second.Webhooks()
	require.Len(t, got, 1)
	assert.Equal(t, created.ID, got[0].ID)
}

package main

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/afero"

	"github.com/lfarias/juris-api/internal/application/integration"
	"github.com/lfarias/juris-api/internal/application/practice"
	"github.com/lfarias/juris-api/internal/application/report"
	"github.com/lfarias/juris-api/internal/domain/entity"
	"github.com/lfarias/juris-api/internal/infrastructure/notify"
	"github.com/lfarias/juris-api/internal/infrastructure/pdf"
	"github.com/lfarias/juris-api/internal/infrastructure/storage"
	infrawebhook "github.com/lfarias/juris-api/internal/infrastructure/webhook"
	"github.com/lfarias/juris-api/pkg/config"
	"github.com/lfarias/juris-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicação")

	fs := afero.NewOsFs()
	webhookRepo := storage.NewWebhookRepository(fs, cfg.Storage.DataDir)
	integrationRepo := storage.NewIntegrationRepository(fs, cfg.Storage.DataDir)
	deadLetterRepo := storage.NewDeadLetterRepository(fs, cfg.Storage.DataDir)

	dispatcher := infrawebhook.NewDispatcher(
		time.Duration(cfg.Webhook.TimeoutSeconds)*time.Second,
		cfg.Webhook.MaxRetries,
	)
	hooks, err := integration.NewService(
		webhookRepo, integrationRepo, deadLetterRepo,
		dispatcher, cfg.Webhook.Source, log,
	)
	if err != nil {
		log.Fatal().Err(err).Msg("carregar configurações de integração")
	}

	notifier := notify.New(log)
	svc := practice.NewService(hooks, notifier, log)

	ctx := context.Background()
	now := time.Now()
	seed(ctx, svc, log, now)

	// Visões derivadas do dia
	snap := svc.Metrics(now)
	log.Info().
		Int("clientes", snap.TotalClients).
		Int("processos", snap.TotalProcesses).
		Str("receita", snap.TotalRevenue.StringFixed(2)).
		Str("despesa", snap.TotalExpense.StringFixed(2)).
		Str("margem", snap.ProfitMargin.StringFixed(4)).
		Msg("métricas consolidadas")

	alerts := svc.Alerts(now)
	for _, a := range alerts {
		log.Warn().Str("codigo", a.Code).Int("total", a.Count).Msg(a.Message)
	}
	svc.FlagOverdueTransactions(ctx, now)
	svc.NotifyUpcomingDeadlines(ctx, now, 0)

	// Relatório gerencial do mês
	reportUC := report.NewUseCase(pdf.NewMarotoReportGenerator())
	out, err := reportUC.Monthly(snap, alerts, now)
	if err != nil {
		log.Fatal().Err(err).Msg("gerar relatório")
	}
	if err := os.MkdirAll(cfg.Report.OutputDir, 0o755); err != nil {
		log.Fatal().Err(err).Msg("criar diretório de relatórios")
	}
	path := filepath.Join(cfg.Report.OutputDir, "relatorio-"+now.Format("2006-01")+".pdf")
	if err := os.WriteFile(path, out, 0o644); err != nil {
		log.Fatal().Err(err).Msg("gravar relatório")
	}
	log.Info().Str("arquivo", path).Msg("relatório gerado")

	// Aguarda entregas de webhook em voo antes de encerrar
	svc.Drain()
}

// seed carrega um conjunto mínimo de dados de demonstração.
func seed(ctx context.Context, svc *practice.Service, log *logger.Logger, now time.Time) {
	partner, err := svc.AddPartner(ctx, &entity.Partner{
		Name:          "Dra. Helena Prado",
		Type:          entity.PartnerLawyer,
		CommissionPct: decimal.NewFromInt(10),
		Active:        true,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("seed: parceiro")
	}

	client, err := svc.CreateClient(ctx, &entity.Client{
		Name:       "Transportadora Boa Vista Ltda",
		PersonType: entity.PersonTypeOrganization,
		Document:   "12.345.678/0001-90",
		Status:     entity.ClientStatusActive,
		Origin:     "Indicação",
		PartnerID:  partner.ID,
		Priority:   entity.PriorityHigh,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("seed: cliente")
	}

	process, err := svc.CreateProcess(ctx, &entity.Process{
		Number:         "0001234-56.2026.8.26.0100",
		ClientID:       client.ID,
		LegalArea:      "Trabalhista",
		Court:          "2ª Vara do Trabalho",
		District:       "São Paulo",
		Status:         entity.ProcessStatusInProgress,
		Urgency:        entity.UrgencyNormal,
		BillingMode:    entity.BillingMixed,
		FixedAmount:    decimal.NewFromInt(12000),
		EntryAmount:    decimal.NewFromInt(3000),
		Installments:   6,
		ContingencyPct: decimal.NewFromInt(15),
	}, true)
	if err != nil {
		log.Fatal().Err(err).Msg("seed: processo")
	}

	if err := svc.LinkClientProcess(ctx, client.ID, process.ID); err != nil {
		log.Fatal().Err(err).Msg("seed: vínculo cliente-processo")
	}

	deadline := now.AddDate(0, 0, 3)
	if _, err := svc.ScheduleEvent(ctx, &entity.CalendarEvent{
		Title:     "Prazo: contestação",
		ProcessID: process.ID,
		Type:      entity.EventDeadline,
		Date:      deadline,
	}); err != nil {
		log.Fatal().Err(err).Msg("seed: compromisso")
	}
}

package repository

import "github.com/lfarias/juris-api/internal/domain/entity"

// Repositórios de configuração: coleções inteiras lidas e gravadas de uma
// vez (granularidade transacional por coleção). A implementação concreta
// usa arquivos JSON; para testes injeta-se um filesystem em memória.

// WebhookRepository persiste as configurações de webhook.
type WebhookRepository interface {
	Load() ([]entity.WebhookConfig, error)
	Save(webhooks []entity.WebhookConfig) error
}

// IntegrationRepository persiste as configurações de integração.
type IntegrationRepository interface {
	Load() ([]entity.IntegrationConfig, error)
	Save(integrations []entity.IntegrationConfig) error
}

// DeadLetterRepository persiste o registro de entregas que esgotaram
// as tentativas.
type DeadLetterRepository interface {
	Load() ([]entity.DeadLetter, error)
	Save(letters []entity.DeadLetter) error
}

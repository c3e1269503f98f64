// Package storage implementa os repositórios de configuração sobre arquivos
// JSON, atrás de um afero.Fs (em produção o filesystem do SO, nos testes um
// filesystem em memória).
//
// Cada coleção vive num arquivo próprio contendo um array JSON com o mesmo
// formato das entidades (campos opcionais omitidos, nunca null). A escrita é
// feita em arquivo temporário seguido de rename, mantendo a gravação
// transacional na granularidade da coleção.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/lfarias/juris-api/internal/domain/entity"
)

// Nomes dos slots persistidos.
const (
	webhooksFile     = "webhooks.json"
	integrationsFile = "integracoes.json"
	deadLettersFile  = "deadletters.json"
)

type collection[T any] struct {
	fs   afero.Fs
	path string
}

// load devolve a coleção gravada; arquivo inexistente equivale a coleção vazia.
func (c collection[T]) load() ([]T, error) {
	data, err := afero.ReadFile(c.fs, c.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("ler %s: %w", c.path, err)
	}
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decodificar %s: %w", c.path, err)
	}
	return items, nil
}

// save grava a coleção inteira: temporário + rename.
func (c collection[T]) save(items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("codificar %s: %w", c.path, err)
	}

	if err := c.fs.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("criar diretório de dados: %w", err)
	}
	tmp := c.path + ".tmp"
	if err := afero.WriteFile(c.fs, tmp, data, 0o644); err != nil {
		return fmt.Errorf("gravar %s: %w", tmp, err)
	}
	if err := c.fs.Rename(tmp, c.path); err != nil {
		return fmt.Errorf("renomear %s: %w", tmp, err)
	}
	return nil
}

// WebhookRepository repositório de configurações de webhook.
type WebhookRepository struct {
	col collection[entity.WebhookConfig]
}

// NewWebhookRepository constrói o repositório sobre fs, gravando em dir.
func NewWebhookRepository(fs afero.Fs, dir string) *WebhookRepository {
	return &WebhookRepository{col: collection[entity.WebhookConfig]{fs: fs, path: filepath.Join(dir, webhooksFile)}}
}

func (r *WebhookRepository) Load() ([]entity.WebhookConfig, error) { return r.col.load() }

func (r *WebhookRepository) Save(webhooks []entity.WebhookConfig) error {
	return r.col.save(webhooks)
}

// IntegrationRepository repositório de configurações de integração.
type IntegrationRepository struct {
	col collection[entity.IntegrationConfig]
}

// NewIntegrationRepository constrói o repositório sobre fs, gravando em dir.
func NewIntegrationRepository(fs afero.Fs, dir string) *IntegrationRepository {
	return &IntegrationRepository{col: collection[entity.IntegrationConfig]{fs: fs, path: filepath.Join(dir, integrationsFile)}}
}

func (r *IntegrationRepository) Load() ([]entity.IntegrationConfig, error) { return r.col.load() }

func (r *IntegrationRepository) Save(integrations []entity.IntegrationConfig) error {
	return r.col.save(integrations)
}

// DeadLetterRepository repositório do registro de entregas esgotadas.
type DeadLetterRepository struct {
	col collection[entity.DeadLetter]
}

// NewDeadLetterRepository constrói o repositório sobre fs, gravando em dir.
func NewDeadLetterRepository(fs afero.Fs, dir string) *DeadLetterRepository {
	return &DeadLetterRepository{col: collection[entity.DeadLetter]{fs: fs, path: filepath.Join(dir, deadLettersFile)}}
}

func (r *DeadLetterRepository) Load() ([]entity.DeadLetter, error) { return r.col.load() }

func (r *DeadLetterRepository) Save(letters []entity.DeadLetter) error {
	return r.col.save(letters)
}

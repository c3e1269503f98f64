package entity

import (
	"slices"
	"time"

	"github.com/lfarias/juris-api/internal/domain"
)

// Tipos de pessoa aceitos no cadastro de clientes.
const (
	PersonTypeIndividual   = "Física"
	PersonTypeOrganization = "Jurídica"
)

// Status possíveis de um cliente. Não há máquina de estados: qualquer
// transição é permitida.
const (
	ClientStatusActive   = "Ativo"
	ClientStatusProspect = "Prospecto"
	ClientStatusInactive = "Inativo"
)

// Prioridades de atendimento.
const (
	PriorityLow    = "Baixa"
	PriorityMedium = "Média"
	PriorityHigh   = "Alta"
)

// Address endereço estruturado opcional do cliente.
type Address struct {
	Street  string `json:"logradouro,omitempty"`
	City    string `json:"cidade,omitempty"`
	State   string `json:"uf,omitempty"`
	ZipCode string `json:"cep,omitempty"`
}

// Client representa um cliente do escritório (pessoa física ou jurídica).
// UltimoContato ausente significa "nunca contatado".
type Client struct {
	ID            string     `json:"id"`
	Name          string     `json:"nome"`
	PersonType    string     `json:"tipoPessoa"`
	Document      string     `json:"documento"` // CPF ou CNPJ
	Email         string     `json:"email,omitempty"`
	Phone         string     `json:"telefone,omitempty"`
	Status        string     `json:"status"`
	Origin        string     `json:"origem,omitempty"` // canal de captação
	PartnerID     string     `json:"parceiroId,omitempty"`
	Priority      string     `json:"prioridade,omitempty"`
	Tags          []string   `json:"tags,omitempty"`
	Address       *Address   `json:"endereco,omitempty"`
	RegisteredAt  time.Time  `json:"dataCadastro"`
	LastContactAt *time.Time `json:"ultimoContato,omitempty"`
	CreatedAt     time.Time  `json:"criadoEm"`
}

// RecordID devolve o identificador do registro.
func (c *Client) RecordID() string { return c.ID }

// AssignIdentity carimba id e timestamps de criação. Se a data de cadastro
// não foi informada, assume o momento da criação.
func (c *Client) AssignIdentity(id string, now time.Time) {
	if c.ID == "" {
		c.ID = id
	}
	c.CreatedAt = now
	if c.RegisteredAt.IsZero() {
		c.RegisteredAt = now
	}
}

// Validate verifica campos obrigatórios e valores de enumeração.
func (c *Client) Validate() error {
	if c.Name == "" || c.Document == "" {
		return domain.ErrInvalidInput
	}
	switch c.PersonType {
	case PersonTypeIndividual, PersonTypeOrganization:
	default:
		return domain.ErrInvalidInput
	}
	switch c.Status {
	case ClientStatusActive, ClientStatusProspect, ClientStatusInactive:
	default:
		return domain.ErrInvalidInput
	}
	switch c.Priority {
	case "", PriorityLow, PriorityMedium, PriorityHigh:
	default:
		return domain.ErrInvalidInput
	}
	return nil
}

// HasTag informa se a tag já está presente.
func (c *Client) HasTag(tag string) bool {
	return slices.Contains(c.Tags, tag)
}

// AddTag insere a tag com semântica de conjunto (sem duplicatas).
func (c *Client) AddTag(tag string) {
	if tag == "" || c.HasTag(tag) {
		return
	}
	c.Tags = append(c.Tags, tag)
}

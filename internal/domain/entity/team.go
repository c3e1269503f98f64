package entity

import (
	"time"

	"github.com/lfarias/juris-api/internal/domain"
)

// Permissões de equipe verificadas por flag (não há autenticação real).
const (
	PermAdmin     = "admin"
	PermFinancial = "financeiro"
	PermProcesses = "processos"
)

// TeamMember representa um membro da equipe do escritório.
type TeamMember struct {
	ID          string    `json:"id"`
	Name        string    `json:"nome"`
	Email       string    `json:"email"`
	Role        string    `json:"cargo,omitempty"` // advogado, estagiário, secretaria...
	Permissions []string  `json:"permissoes,omitempty"`
	Active      bool      `json:"ativo"`
	CreatedAt   time.Time `json:"criadoEm"`
}

// RecordID devolve o identificador do registro.
func (m *TeamMember) RecordID() string { return m.ID }

// AssignIdentity carimba id e timestamp de criação.
func (m *TeamMember) AssignIdentity(id string, now time.Time) {
	if m.ID == "" {
		m.ID = id
	}
	m.CreatedAt = now
}

// Validate verifica campos obrigatórios.
func (m *TeamMember) Validate() error {
	if m.Name == "" || m.Email == "" {
		return domain.ErrInvalidInput
	}
	return nil
}

// Can verifica a flag de permissão. Admin implica todas as demais.
func (m *TeamMember) Can(perm string) bool {
	if !m.Active {
		return false
	}
	for _, p := range m.Permissions {
		if p == PermAdmin || p == perm {
			return true
		}
	}
	return false
}

package automation

import (
	"fmt"

	"github.com/lfarias/juris-api/internal/domain"
	"github.com/lfarias/juris-api/internal/domain/entity"
)

// LinkClientProcess vincula o processo ao cliente.
//
// Recusa clientes que não estejam ativos (erro tipado, nenhuma mutação
// parcial). No sucesso, a área jurídica do processo entra no conjunto de
// tags do cliente, com semântica de conjunto (sem duplicatas).
func LinkClientProcess(client *entity.Client, process *entity.Process) error {
	if client == nil || process == nil {
		return domain.ErrInvalidInput
	}
	if client.Status != entity.ClientStatusActive {
		return fmt.Errorf("vincular processo %s: %w", process.Number, domain.ErrClientInactive)
	}

	process.ClientID = client.ID
	client.AddTag(process.LegalArea)
	return nil
}

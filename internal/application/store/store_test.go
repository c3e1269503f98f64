package store_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lfarias/juris-api/internal/application/store"
	"github.com/lfarias/juris-api/internal/domain"
	"github.com/lfarias/juris-api/internal/domain/entity"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func newClient() *entity.Client {
	return &entity.Client{
		Name:       "Maria Souza",
		PersonType: entity.PersonTypeIndividual,
		Document:   "123.456.789-00",
		Status:     entity.ClientStatusProspect,
	}
}

func TestAdd_AtribuiIdentidadeETimestamp(t *testing.T) {
	now := time.Date(2026, 8, 10, 12, 0, 0, 0, time.UTC)
	s := store.New[*entity.Client]("cliente", nil).WithClock(fixedClock(now))

	out, err := s.Add(newClient())
	require.NoError(t, err)

	assert.NotEmpty(t, out.ID, "o store deve atribuir um id")
	assert.Equal(t, now, out.CreatedAt)
	assert.Equal(t, now, out.RegisteredAt, "data de cadastro ausente assume o momento da criação")
	assert.Equal(t, 1, s.Len())
}

func TestAdd_RegistroInvalidoNaoMuta(t *testing.T) {
	s := store.New[*entity.Client]("cliente", nil)

	c := newClient()
	c.Name = "" // obrigatório
	_, err := s.Add(c)

	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 0, s.Len(), "validação rejeita antes de qualquer mutação")
}

func TestAdd_MantemIdDeterministicoERejeitaDuplicata(t *testing.T) {
	s := store.New[*entity.Client]("cliente", nil)

	c := newClient()
	c.ID = "cliente-semente"
	out, err := s.Add(c)
	require.NoError(t, err)
	assert.Equal(t, "cliente-semente", out.ID, "id pré-atribuído é mantido")

	dup := newClient()
	dup.ID = "cliente-semente"
	_, err = s.Add(dup)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.Equal(t, 1, s.Len())
}

func TestUpdate_MesclaCamposSemTrocarId(t *testing.T) {
	s := store.New[*entity.Client]("cliente", nil)
	out, err := s.Add(newClient())
	require.NoError(t, err)

	ok := s.Update(out.ID, func(c *entity.Client) {
		c.Status = entity.ClientStatusActive
		c.Email = "maria@exemplo.com.br"
	})
	require.True(t, ok)

	got, found := s.Get(out.ID)
	require.True(t, found)
	assert.Equal(t, entity.ClientStatusActive, got.Status)
	assert.Equal(t, "maria@exemplo.com.br", got.Email)
	assert.Equal(t, out.ID, got.ID)
}

func TestUpdate_IdInexistenteENoOpSilencioso(t *testing.T) {
	s := store.New[*entity.Client]("cliente", nil)

	ok := s.Update("nao-existe", func(c *entity.Client) { c.Name = "x" })
	assert.False(t, ok, "update de id ausente não é erro, apenas no-op")
}

func TestRemove_Idempotente(t *testing.T) {
	s := store.New[*entity.Client]("cliente", nil)
	out, err := s.Add(newClient())
	require.NoError(t, err)

	s.Remove(out.ID)
	assert.Equal(t, 0, s.Len())

	// Remover de novo não é erro
	s.Remove(out.ID)
	s.Remove("nunca-existiu")
	assert.Equal(t, 0, s.Len())
}

func TestAll_DevolveCopiaNaOrdemDeInsercao(t *testing.T) {
	s := store.New[*entity.Client]("cliente", nil)

	a := newClient()
	a.Name = "Primeiro"
	b := newClient()
	b.Name = "Segundo"
	_, err := s.Add(a)
	require.NoError(t, err)
	_, err = s.Add(b)
	require.NoError(t, err)

	all := s.All()
	require.Len(t, all, 2)
	assert.Equal(t, "Primeiro", all[0].Name)
	assert.Equal(t, "Segundo", all[1].Name)

	// Mutar o slice devolvido não afeta o store
	all[0] = nil
	again := s.All()
	assert.Equal(t, "Primeiro", again[0].Name)
}

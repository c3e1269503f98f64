// Package store implementa o armazém em memória genérico usado por todos os
// tipos de registro do domínio (clientes, processos, lançamentos, parceiros...).
//
// Cada store é dono exclusivo da sua coleção; referências cruzadas entre
// entidades são sempre por identificador. Não há paginação nem linguagem de
// consulta: quem chama filtra a coleção completa.
package store

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lfarias/juris-api/internal/domain"
)

// Record contrato mínimo que todo registro armazenável cumpre.
type Record interface {
	RecordID() string
	AssignIdentity(id string, now time.Time)
	Validate() error
}

// Store coleção em memória de um tipo de registro, protegida por RWMutex.
// T é sempre um tipo ponteiro (ex.: *entity.Client).
type Store[T Record] struct {
	name     string
	mu       sync.RWMutex
	items    []T
	notifier Notifier
	nowFn    func() time.Time
}

// New constrói um store vazio. name identifica a coleção nas notificações.
func New[T Record](name string, notifier Notifier) *Store[T] {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &Store[T]{
		name:     name,
		notifier: notifier,
		nowFn:    time.Now,
	}
}

// WithClock troca a fonte de tempo (testes).
func (s *Store[T]) WithClock(now func() time.Time) *Store[T] {
	s.nowFn = now
	return s
}

// Add valida o registro, atribui identidade (uuid quando o registro chega sem
// id; ids determinísticos de automação são mantidos) e o anexa à coleção.
// Rejeita antes de qualquer mutação: validação inválida ou id duplicado
// deixam o store intacto.
func (s *Store[T]) Add(rec T) (T, error) {
	var zero T
	if err := rec.Validate(); err != nil {
		s.notifier.Error(fmt.Sprintf("%s: registro inválido", s.name))
		return zero, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if id := rec.RecordID(); id != "" && s.indexOf(id) >= 0 {
		return zero, domain.ErrDuplicate
	}
	rec.AssignIdentity(uuid.New().String(), s.nowFn())
	s.items = append(s.items, rec)

	s.notifier.Success(fmt.Sprintf("%s cadastrado com sucesso", s.name))
	return rec, nil
}

// Update aplica a mutação sob lock se o id existir. Id ausente é no-op
// silencioso; o retorno indica se algo foi alterado. O identificador do
// registro nunca muda.
func (s *Store[T]) Update(id string, mutate func(T)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	mutate(s.items[i])
	return true
}

// Remove exclui por identificador. Idempotente: remover id inexistente
// não é erro.
func (s *Store[T]) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
}

// Get devolve o registro pelo id.
func (s *Store[T]) Get(id string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexOf(id); i >= 0 {
		return s.items[i], true
	}
	var zero T
	return zero, false
}

// All devolve uma cópia do slice da coleção, na ordem de inserção.
func (s *Store[T]) All() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}

// Len devolve o tamanho da coleção.
func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// indexOf exige lock já adquirido.
func (s *Store[T]) indexOf(id string) int {
	for i, it := range s.items {
		if it.RecordID() == id {
			return i
		}
	}
	return -1
}

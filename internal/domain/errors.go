package domain

import "errors"

// Erros de domínio (sem dependências externas).
var (
	ErrNotFound       = errors.New("recurso não encontrado")
	ErrInvalidInput   = errors.New("entrada inválida")
	ErrDuplicate      = errors.New("recurso duplicado")
	ErrClientInactive = errors.New("cliente não está ativo")
	ErrUnknownEvent   = errors.New("evento de webhook desconhecido")
)

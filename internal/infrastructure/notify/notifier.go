// Package notify implementa a porta de notificação ao usuário sobre o
// logger estruturado. Numa interface gráfica estas mensagens virariam
// toasts; aqui viram eventos de log com nível equivalente.
package notify

import "github.com/lfarias/juris-api/pkg/logger"

// LogNotifier implementa store.Notifier via zerolog.
type LogNotifier struct {
	log *logger.Logger
}

// New constrói o notificador.
func New(log *logger.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Success(msg string) {
	n.log.Info().Str("tipo", "sucesso").Msg(msg)
}

func (n *LogNotifier) Info(msg string) {
	n.log.Info().Str("tipo", "info").Msg(msg)
}

func (n *LogNotifier) Warning(msg string) {
	n.log.Warn().Str("tipo", "atencao").Msg(msg)
}

func (n *LogNotifier) Error(msg string) {
	n.log.Error().Str("tipo", "erro").Msg(msg)
}

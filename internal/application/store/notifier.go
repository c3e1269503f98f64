package store

// Notifier porta de saída para notificações ao usuário (toast/log).
// A implementação concreta vive na infraestrutura; NopNotifier serve
// para testes.
type Notifier interface {
	Success(msg string)
	Info(msg string)
	Warning(msg string)
	Error(msg string)
}

// NopNotifier descarta todas as notificações.
type NopNotifier struct{}

func (NopNotifier) Success(string) {}
func (NopNotifier) Info(string)    {}
func (NopNotifier) Warning(string) {}
func (NopNotifier) Error(string)   {}

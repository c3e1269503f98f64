// Package webhook implementa a entrega HTTP dos envelopes de evento.
//
// Política de entrega: POST JSON com timeout por tentativa, no máximo um
// reenvio com backoff exponencial e um circuit breaker por URL de destino.
// Destinos reiteradamente fora do ar param de ser tentados por um intervalo
// em vez de atrasar os demais.
package webhook

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sony/gobreaker"

	"github.com/lfarias/juris-api/internal/application/integration"
	"github.com/lfarias/juris-api/internal/domain/entity"
)

// Headers adicionados pelo dispatcher.
const (
	headerToken     = "X-Webhook-Token"     // segredo em claro (compatibilidade)
	headerSignature = "X-Webhook-Signature" // assinatura HMAC-SHA256 do corpo
)

// Dispatcher cliente HTTP de saída com resiliência por destino.
type Dispatcher struct {
	client     *http.Client
	timeout    time.Duration
	maxRetries uint64

	mu       sync.Mutex
	breakers map[string]*gobreaker.CircuitBreaker
}

// NewDispatcher constrói o dispatcher. timeout vale por tentativa;
// maxRetries são reenvios além da primeira tentativa (0 ou 1).
func NewDispatcher(timeout time.Duration, maxRetries int) *Dispatcher {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &Dispatcher{
		client:     &http.Client{Timeout: timeout},
		timeout:    timeout,
		maxRetries: uint64(maxRetries),
		breakers:   make(map[string]*gobreaker.CircuitBreaker),
	}
}

// Deliver entrega o envelope ao destino, aplicando retry e circuit breaker.
// Devolve erro apenas quando todas as tentativas se esgotam ou o breaker
// está aberto.
func (d *Dispatcher) Deliver(ctx context.Context, w entity.WebhookConfig, env integration.Envelope) error {
	body, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("codificar envelope: %w", err)
	}

	br := d.breaker(w.URL)
	bo := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), d.maxRetries),
		ctx,
	)

	return backoff.Retry(func() error {
		_, err := br.Execute(func() (any, error) {
			return nil, d.post(ctx, w, body)
		})
		// Breaker aberto: não adianta reenviar agora.
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return backoff.Permanent(err)
		}
		return err
	}, bo)
}

// post executa uma tentativa de POST.
func (d *Dispatcher) post(ctx context.Context, w entity.WebhookConfig, body []byte) error {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("montar requisição: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range w.Headers {
		req.Header.Set(k, v)
	}
	if w.Secret != "" {
		req.Header.Set(headerToken, w.Secret)
		req.Header.Set(headerSignature, Sign(w.Secret, body))
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("POST %s: %w", w.URL, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("POST %s: status %d", w.URL, resp.StatusCode)
	}
	return nil
}

// Sign devolve a assinatura "sha256=<hex>" do corpo com o segredo.
func Sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return "sha256=" + hex.EncodeToString(mac.Sum(nil))
}

// breaker devolve (criando se preciso) o circuit breaker do destino.
func (d *Dispatcher) breaker(url string) *gobreaker.CircuitBreaker {
	d.mu.Lock()
	defer d.mu.Unlock()

	if br, ok := d.breakers[url]; ok {
		return br
	}
	br := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        url,
		MaxRequests: 3,                // half-open: permite 3 requisições
		Interval:    30 * time.Second, // fechado: zera contadores a cada 30s
		Timeout:     10 * time.Second, // aberto -> half-open após 10s
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 5 && failureRatio >= 0.6
		},
	})
	d.breakers[url] = br
	return br
}

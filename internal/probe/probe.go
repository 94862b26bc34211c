package probe

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Prober keeps the process visible to its hosting platform: it serves a
// trivial health endpoint and, when a ping URL is configured, periodically
// requests it so a free-tier host does not idle the service out.
type Prober struct {
	addr         string
	pingURL      string
	pingInterval time.Duration
	client       *http.Client
	logger       *zap.Logger

	server *http.Server
}

func New(addr, pingURL string, pingInterval time.Duration, logger *zap.Logger) *Prober {
	return &Prober{
		addr:         addr,
		pingURL:      pingURL,
		pingInterval: pingInterval,
		client:       &http.Client{Timeout: 10 * time.Second},
		logger:       logger,
	}
}

// Run serves /healthz and drives the self-ping loop until ctx is cancelled.
func (p *Prober) Run(ctx context.Context) {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	p.server = &http.Server{Addr: p.addr, Handler: mux}

	go func() {
		p.logger.Info("health endpoint listening", zap.String("addr", p.addr))
		if err := p.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			p.logger.Warn("health endpoint stopped", zap.Error(err))
		}
	}()

	if p.pingURL != "" {
		go p.pingLoop(ctx)
	}

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = p.server.Shutdown(shutdownCtx)
}

func (p *Prober) pingLoop(ctx context.Context) {
	ticker := time.NewTicker(p.pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.ping(ctx)
		}
	}
}

func (p *Prober) ping(ctx context.Context) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, p.pingURL, nil)
	if err != nil {
		p.logger.Warn("ping request build failed", zap.Error(err))
		return
	}
	response, err := p.client.Do(request)
	if err != nil {
		p.logger.Warn("ping failed", zap.String("url", p.pingURL), zap.Error(err))
		return
	}
	response.Body.Close()
	p.logger.Debug("ping sent", zap.String("url", p.pingURL), zap.Int("status", response.StatusCode))
}

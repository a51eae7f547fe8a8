package siblings

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/wys-platform/project-service/config"
	"github.com/wys-platform/project-service/internal/projects/domain"
)

// ProbeStatus is the last known reachability of one sibling module.
type ProbeStatus struct {
	State     string    `json:"state"`
	CheckedAt time.Time `json:"checked_at,omitempty"`
	Error     string    `json:"error,omitempty"`
}

// Prober periodically checks that each sibling module answers HTTP at all.
// Its results feed the health endpoint only; lookups never consult them.
type Prober struct {
	endpoints  map[domain.Kind]config.Endpoint
	httpClient *http.Client

	mu     sync.RWMutex
	status map[domain.Kind]ProbeStatus
}

func NewProber(cfg config.SiblingsConfig) *Prober {
	endpoints := make(map[domain.Kind]config.Endpoint, len(cfg.Endpoints))
	status := make(map[domain.Kind]ProbeStatus, len(cfg.Endpoints))
	for kind, ep := range cfg.Endpoints {
		endpoints[domain.Kind(kind)] = ep
		status[domain.Kind(kind)] = ProbeStatus{State: "unknown"}
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Prober{
		endpoints:  endpoints,
		httpClient: &http.Client{Timeout: timeout},
		status:     status,
	}
}

// ProbeOnce checks every endpoint. Any HTTP answer counts as up.
func (p *Prober) ProbeOnce(ctx context.Context) {
	var wg sync.WaitGroup
	for kind, ep := range p.endpoints {
		wg.Add(1)
		go func(kind domain.Kind, ep config.Endpoint) {
			defer wg.Done()
			st := p.check(ctx, ep)
			p.mu.Lock()
			p.status[kind] = st
			p.mu.Unlock()
		}(kind, ep)
	}
	wg.Wait()
}

func (p *Prober) check(ctx context.Context, ep config.Endpoint) ProbeStatus {
	now := time.Now().UTC()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ep.BaseURL()+ep.PathPrefix, nil)
	if err != nil {
		return ProbeStatus{State: "down", CheckedAt: now, Error: err.Error()}
	}
	resp, err := p.httpClient.Do(req)
	if err != nil {
		return ProbeStatus{State: "down", CheckedAt: now, Error: err.Error()}
	}
	resp.Body.Close()
	return ProbeStatus{State: "up", CheckedAt: now}
}

// Statuses returns a copy of the last results keyed by kind name.
func (p *Prober) Statuses() map[string]ProbeStatus {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make(map[string]ProbeStatus, len(p.status))
	for k, v := range p.status {
		out[string(k)] = v
	}
	return out
}

// Start schedules ProbeOnce with a cron expression such as "@every 1m" and runs it
// once immediately. The caller stops the returned scheduler on shutdown.
func (p *Prober) Start(schedule string) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), p.httpClient.Timeout+time.Second)
		defer cancel()
		p.ProbeOnce(ctx)
	})
	if err != nil {
		return nil, err
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), p.httpClient.Timeout+time.Second)
		defer cancel()
		p.ProbeOnce(ctx)
	}()
	c.Start()
	return c, nil
}

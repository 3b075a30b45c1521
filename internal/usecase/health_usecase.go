package usecase

import "context"

// Pinger is anything the health check can probe, e.g. the Postgres pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error {
	return f(ctx)
}

type HealthUsecase interface {
	// Check reports per-dependency status and whether all of them are up.
	Check(ctx context.Context) (map[string]string, bool)
}

type healthUsecase struct {
	deps map[string]Pinger
}

func NewHealthUsecase(deps map[string]Pinger) HealthUsecase {
	return &healthUsecase{deps: deps}
}

func (u *healthUsecase) Check(ctx context.Context) (map[string]string, bool) {
	status := map[string]string{"status": "ok"}
	healthy := true
	for name, dep := range u.deps {
		if err := dep.Ping(ctx); err != nil {
			status[name] = "down"
			healthy = false
			continue
		}
		status[name] = "up"
	}
	if !healthy {
		status["status"] = "degraded"
	}
	return status, healthy
}

package health

import (
	"context"
	"fmt"
	"time"

	"github.com/hellofresh/health-go/v5"
	healthRedis "github.com/hellofresh/health-go/v5/checks/redis"
	"github.com/lmoralesdev/storefront-gateway/internal/config"
	"github.com/lmoralesdev/storefront-gateway/pkg/storeapi"
)

type Endpoints struct {
	StoreClient storeapi.Client
}

func NewHealthHandler(cfg *config.Config, endpoints *Endpoints) (*health.Health, error) {

	h, err := health.New(
		health.WithComponent(health.Component{

			Name:    "storefront-gateway",
			Version: "1.0.0",
		}),
		health.WithSystemInfo(),
		health.WithChecks(
			health.Config{
				Name:      "redis",
				Timeout:   2 * time.Second,
				SkipOnErr: false,
				Check: healthRedis.New(
					healthRedis.Config{
						DSN: cfg.RedisConnect.GetDSN(),
					},
				),
			},
			health.Config{
				Name:      "store",
				Timeout:   5 * time.Second,
				SkipOnErr: false,
				Check: func(ctx context.Context) error {
					if endpoints.StoreClient == nil {
						return fmt.Errorf("store client is not initialized")
					}
					_, err := endpoints.StoreClient.Health(ctx)
					if err != nil {
						return fmt.Errorf("failed to connect to the store: %w", err)
					}
					return nil
				},
			},
		),
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create health instance: %w", err)
	}

	return h, nil
}

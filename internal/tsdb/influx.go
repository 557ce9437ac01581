// Package tsdb подключает сервис к InfluxDB v2 и выполняет синхронную запись точек.
package tsdb

import (
	"context"
	"fmt"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api/write"
	"github.com/influxdata/influxdb-client-go/v2/domain"

	"github.com/magabrotheeeer/motion-gateway/internal/config"
)

// Client обертка над клиентом InfluxDB с фиксированной организацией.
type Client struct {
	db  influxdb2.Client
	org string
}

// InitClient создает клиента и проверяет доступность сервера через /health.
func InitClient(ctx context.Context, cfg config.InfluxDB) (*Client, error) {
	const op = "tsdb.InitClient"
	db := influxdb2.NewClient(cfg.InfluxHost, cfg.InfluxToken)

	pingCtx := ctx
	if cfg.TimeoutInflux > 0 {
		var cancel context.CancelFunc
		pingCtx, cancel = context.WithTimeout(ctx, cfg.TimeoutInflux)
		defer cancel()
	}

	health, err := db.Health(pingCtx)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if health.Status != domain.HealthCheckStatusPass {
		db.Close()
		return nil, fmt.Errorf("%s: influxdb status %s", op, health.Status)
	}
	return &Client{db: db, org: cfg.InfluxOrg}, nil
}

// WritePoint записывает одну точку в bucket и ждет ответа сервера.
// Повторов нет; таймаут определяется только переданным контекстом.
func (c *Client) WritePoint(ctx context.Context, bucket string, p *write.Point) error {
	const op = "tsdb.WritePoint"
	if err := c.db.WriteAPIBlocking(c.org, bucket).WritePoint(ctx, p); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Close освобождает ресурсы клиента.
func (c *Client) Close() {
	c.db.Close()
}

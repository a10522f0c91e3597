package containers

import (
	"context"
	"log"

	"github.com/testcontainers/testcontainers-go/modules/redis"
)

const redisImage = "redis:7.2-alpine"

type RedisContainer struct {
	container *redis.RedisContainer
}

func NewRedisContainer() *RedisContainer {
	ctx := context.Background()

	container, err := redis.Run(ctx, redisImage)
	if err != nil {
		log.Fatalf("error starting redis container: %v", err)
	}

	return &RedisContainer{
		container: container,
	}
}

func (c *RedisContainer) Shutdown() {
	err := c.container.Terminate(context.Background())
	if err != nil {
		log.Fatalf("error terminating redis container: %v", err)
	}
}

func (c *RedisContainer) Addr() string {
	// ConnectionString returns a redis:// URL, but go-redis options want a
	// bare host:port.
	connStr, err := c.container.ConnectionString(context.Background())
	if err != nil {
		log.Fatalf("error getting redis connection string: %v", err)
	}
	const scheme = "redis://"
	if len(connStr) > len(scheme) && connStr[:len(scheme)] == scheme {
		return connStr[len(scheme):]
	}
	return connStr
}

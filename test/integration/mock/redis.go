package mock

import (
	"context"
	"sync"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

var redisOnce sync.Once
var redisConn *redis.Client

// NewRedis returns a client connected to an embedded Redis server.
func NewRedis() *redis.Client {
	redisOnce.Do(func() {
		mini, err := miniredis.Run()
		if err != nil {
			panic(err)
		}
		redisConn = redis.NewClient(&redis.Options{Addr: mini.Addr()})
	})
	return redisConn
}

// ClearRedis flushes all keys.
func ClearRedis(client *redis.Client) error {
	return client.FlushAll(context.TODO()).Err()
}

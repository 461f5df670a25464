package realtime

import (
	"context"
	"encoding/json"
	"log"

	"github.com/redis/go-redis/v9"
)

const activityChannel = "agency:activity"

// NewRedis creates a new Redis client
func NewRedis(addr, password string) *redis.Client {
	if addr == "" {
		addr = "localhost:6379"
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	log.Printf("Redis client created (addr: %s)\n", addr)
	return rdb
}

// Bridge relays activity events through redis pub/sub so every API instance
// broadcasts the same feed to its own websocket clients.
type Bridge struct {
	RDB *redis.Client
	Hub *Hub
}

func NewBridge(rdb *redis.Client, hub *Hub) *Bridge {
	return &Bridge{RDB: rdb, Hub: hub}
}

// BroadcastJSON publishes to redis; the subscriber loop rebroadcasts into
// the local hub (including our own instance).
func (b *Bridge) BroadcastJSON(v interface{}) {
	ctx := context.Background()
	payload, err := json.Marshal(v)
	if err != nil {
		log.Printf("Error marshaling activity event: %v", err)
		return
	}
	if err := b.RDB.Publish(ctx, activityChannel, payload).Err(); err != nil {
		log.Printf("Error publishing activity event: %v", err)
		// redis down: fall back to the local hub so this instance still sees it
		b.Hub.broadcast <- payload
	}
}

// Run subscribes and forwards until ctx is done.
func (b *Bridge) Run(ctx context.Context) {
	sub := b.RDB.Subscribe(ctx, activityChannel)
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			b.Hub.broadcast <- []byte(msg.Payload)
		}
	}
}

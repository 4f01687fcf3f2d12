package flash

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

// SessionCookieName is the cookie carrying the Redis flash id.
const SessionCookieName = "fyyur_flash_id"

const sessionKey = "flash.session"

// RedisStore keeps flashes in a Redis list keyed by a random id that the
// browser carries in a cookie.  Nothing but the id leaves the server.
type RedisStore struct {
	rdb    redis.Cmdable
	ttl    time.Duration
	prefix string
}

// NewRedisStore returns a Redis backed store.  Lists expire after ttl if
// never popped.
func NewRedisStore(rdb redis.Cmdable, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl, prefix: "flash"}
}

func (s *RedisStore) key(id string) string {
	return s.prefix + ":" + id
}

// sessionID returns the id for this browser, minting one if needed.
func (s *RedisStore) sessionID(c echo.Context) string {
	if id, ok := c.Get(sessionKey).(string); ok {
		return id
	}
	if ck, err := c.Cookie(SessionCookieName); err == nil {
		if _, err := uuid.Parse(ck.Value); err == nil {
			c.Set(sessionKey, ck.Value)
			return ck.Value
		}
	}
	id := uuid.NewString()
	c.Set(sessionKey, id)
	return id
}

func (s *RedisStore) Add(c echo.Context, m Message) error {
	id := s.sessionID(c)
	b, err := json.Marshal(m)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	pipe := s.rdb.TxPipeline()
	pipe.RPush(ctx, s.key(id), b)
	pipe.Expire(ctx, s.key(id), s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return err
	}
	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int(s.ttl / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (s *RedisStore) Pop(c echo.Context) ([]Message, error) {
	ck, err := c.Cookie(SessionCookieName)
	if err != nil {
		return nil, nil
	}
	if _, err := uuid.Parse(ck.Value); err != nil {
		expire(c, SessionCookieName)
		return nil, nil
	}
	return s.pop(c.Request().Context(), ck.Value)
}

func (s *RedisStore) pop(ctx context.Context, id string) ([]Message, error) {
	pipe := s.rdb.TxPipeline()
	rng := pipe.LRange(ctx, s.key(id), 0, -1)
	pipe.Del(ctx, s.key(id))
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, err
	}
	raw := rng.Val()
	msgs := make([]Message, 0, len(raw))
	for _, r := range raw {
		var m Message
		if err := json.Unmarshal([]byte(r), &m); err != nil {
			continue
		}
		msgs = append(msgs, m)
	}
	return msgs, nil
}

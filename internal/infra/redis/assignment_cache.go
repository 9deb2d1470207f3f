package redis

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"math/rand"
	"sync"
	"time"

	"daily-trivia-service/internal/app"
	"daily-trivia-service/internal/domain"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// AssignmentCache is a read-through cache in front of an assignment
// repository. Resolved questions are stored as JSON under
// daily:{date}:question. Only hits are cached and only hits are shared
// between concurrent callers; "not assigned yet" always comes from the
// caller's own backing read so the insert race stays in the database.
type AssignmentCache struct {
	client *redis.Client
	next   app.AssignmentRepository
	ttl    time.Duration
	sf     singleflight.Group

	mu  sync.Mutex
	rnd *rand.Rand
}

func NewAssignmentCache(client *redis.Client, next app.AssignmentRepository, ttl time.Duration) *AssignmentCache {
	return &AssignmentCache{
		client: client,
		next:   next,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (c *AssignmentCache) QuestionFor(ctx context.Context, date string) (domain.Question, error) {
	if q, ok := c.cached(ctx, date); ok {
		return q, nil
	}

	result, err, shared := c.sf.Do(date, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if q, ok := c.cached(ctx, date); ok {
			return q, nil
		}
		q, err := c.next.QuestionFor(ctx, date)
		if err != nil {
			return domain.Question{}, err
		}
		c.store(ctx, date, q)
		return q, nil
	})
	if shared && errors.Is(err, domain.ErrAssignmentNotFound) {
		// The joined lookup may predate a concurrent insert; a miss must be our own.
		return c.next.QuestionFor(ctx, date)
	}
	if err != nil {
		return domain.Question{}, err
	}
	return result.(domain.Question), nil
}

// Create always goes to the backing store.
func (c *AssignmentCache) Create(ctx context.Context, a domain.DailyAssignment) error {
	return c.next.Create(ctx, a)
}

func (c *AssignmentCache) cached(ctx context.Context, date string) (domain.Question, bool) {
	raw, err := c.client.Get(ctx, c.key(date)).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("redis get %s: %v", c.key(date), err)
		}
		return domain.Question{}, false
	}
	var q domain.Question
	if err := json.Unmarshal(raw, &q); err != nil {
		return domain.Question{}, false
	}
	return q, true
}

func (c *AssignmentCache) store(ctx context.Context, date string, q domain.Question) {
	raw, err := json.Marshal(q)
	if err != nil {
		return
	}
	// best-effort; a failed write only costs a database read later
	if err := c.client.Set(ctx, c.key(date), raw, c.ttlWithJitter()).Err(); err != nil {
		log.Printf("redis set %s: %v", c.key(date), err)
	}
}

func (c *AssignmentCache) key(date string) string {
	return "daily:" + date + ":question"
}

func (c *AssignmentCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	c.mu.Lock()
	defer c.mu.Unlock()
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}

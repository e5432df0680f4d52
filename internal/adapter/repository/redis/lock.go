package redis

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/oklog/ulid/v2"
	"github.com/redis/go-redis/v9"

	"github.com/yucheng-ou/kaleido-coin/internal/domain"
	"github.com/yucheng-ou/kaleido-coin/internal/usecase"
)

// releaseScript deletes the lock key only when it still holds our token,
// so an expired lock reacquired by another process is never released by us.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// AccountLocker implements usecase.AccountLocker with per-account Redis locks.
type AccountLocker struct {
	client  *redis.Client
	prefix  string
	ttl     time.Duration
	maxWait time.Duration
}

// NewAccountLocker creates a new AccountLocker. ttl bounds how long a
// crashed holder can block an account; maxWait bounds how long Acquire
// spins before giving up with domain.ErrLockTimeout.
func NewAccountLocker(client *redis.Client, ttl, maxWait time.Duration) *AccountLocker {
	return &AccountLocker{
		client:  client,
		prefix:  "coin:lock:",
		ttl:     ttl,
		maxWait: maxWait,
	}
}

// Acquire takes the lock for a user's account, waiting with backoff while
// another holder is active.
func (l *AccountLocker) Acquire(ctx context.Context, userID string) (usecase.AccountLock, error) {
	key := l.prefix + userID
	token := ulid.Make().String()

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 5 * time.Millisecond
	b.MaxInterval = 100 * time.Millisecond
	b.MaxElapsedTime = l.maxWait

	err := backoff.Retry(func() error {
		set, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return backoff.Permanent(err)
		}
		if !set {
			return domain.ErrLockTimeout
		}
		return nil
	}, backoff.WithContext(b, ctx))
	if err != nil {
		return nil, err
	}

	return &accountLock{client: l.client, key: key, token: token}, nil
}

type accountLock struct {
	client *redis.Client
	key    string
	token  string
}

// Release frees the lock if this holder still owns it.
func (l *accountLock) Release(ctx context.Context) error {
	return releaseScript.Run(ctx, l.client, []string{l.key}, l.token).Err()
}

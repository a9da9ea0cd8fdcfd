package tasklist

import (
	"testing"
	"time"

	"github.com/Ting-WeiTimHsu/DailyTaskManagement/internal/identity"
	"github.com/Ting-WeiTimHsu/DailyTaskManagement/internal/notify"
	"github.com/Ting-WeiTimHsu/DailyTaskManagement/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildController(q *notify.Queue) *Controller {
	return New(store.NewMemoryStore(), store.Anonymous, q)
}

func TestRegistry_GetReusesSession(t *testing.T) {
	r := NewRegistry(nil)

	s1 := r.Get("demo:1", buildController)
	s2 := r.Get("demo:1", buildController)
	assert.Same(t, s1, s2)

	s3 := r.Get("demo:2", buildController)
	assert.NotSame(t, s1, s3)
}

func TestRegistry_EvictDropsSession(t *testing.T) {
	r := NewRegistry(nil)
	s1 := r.Get("user:abc", buildController)
	r.Evict("user:abc")
	s2 := r.Get("user:abc", buildController)
	assert.NotSame(t, s1, s2)
}

func TestRegistry_IdentityEventEvicts(t *testing.T) {
	broker := identity.NewBroker()
	r := NewRegistry(broker.Subscribe())

	s1 := r.Get("user:abc", buildController)
	broker.Publish(identity.Event{SessionKey: "user:abc", UserID: 0})

	// The evict loop runs on its own goroutine.
	require.Eventually(t, func() bool {
		return r.Get("user:abc", buildController) != s1
	}, time.Second, 5*time.Millisecond)
}

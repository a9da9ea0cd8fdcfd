package handlers

import (
	"sync"

	"github.com/Ting-WeiTimHsu/DailyTaskManagement/internal/auth"
	"github.com/Ting-WeiTimHsu/DailyTaskManagement/internal/notify"
	"github.com/Ting-WeiTimHsu/DailyTaskManagement/internal/store"
	"github.com/Ting-WeiTimHsu/DailyTaskManagement/internal/tasklist"

	"github.com/gin-gonic/gin"
)

// SessionSource binds a request to its task-list session and to the
// store the session persists into. The two implementations are the two
// manager modes: anonymous demo (per-visitor in-memory store) and
// authenticated (shared Postgres store scoped by user ID).
type SessionSource interface {
	Session(c *gin.Context) *tasklist.Session
	Store(c *gin.Context) (store.Store, store.Scope)
}

// DemoSource gives every demo visitor an isolated MemoryStore, the
// server-side analogue of per-browser local storage.
type DemoSource struct {
	reg *tasklist.Registry

	mu     sync.Mutex
	stores map[string]*store.MemoryStore
}

func NewDemoSource(reg *tasklist.Registry) *DemoSource {
	return &DemoSource{reg: reg, stores: make(map[string]*store.MemoryStore)}
}

func (d *DemoSource) Session(c *gin.Context) *tasklist.Session {
	id := auth.DemoIDFromContext(c)
	st := d.storeFor(id)
	return d.reg.Get("demo:"+id, func(q *notify.Queue) *tasklist.Controller {
		return tasklist.New(st, store.Anonymous, q)
	})
}

func (d *DemoSource) Store(c *gin.Context) (store.Store, store.Scope) {
	return d.storeFor(auth.DemoIDFromContext(c)), store.Anonymous
}

func (d *DemoSource) storeFor(id string) *store.MemoryStore {
	d.mu.Lock()
	defer d.mu.Unlock()
	st, ok := d.stores[id]
	if !ok {
		st = store.NewMemoryStore()
		d.stores[id] = st
	}
	return st
}

// AuthSource serves authenticated sessions from one shared store,
// scoping every operation by the user bound to the session.
type AuthSource struct {
	reg *tasklist.Registry
	st  store.Store
}

func NewAuthSource(reg *tasklist.Registry, st store.Store) *AuthSource {
	return &AuthSource{reg: reg, st: st}
}

func (a *AuthSource) Session(c *gin.Context) *tasklist.Session {
	userID := auth.UserIDFromContext(c)
	key := "user:" + auth.SessionIDFromContext(c)
	return a.reg.Get(key, func(q *notify.Queue) *tasklist.Controller {
		return tasklist.New(a.st, store.Scope(userID), q)
	})
}

func (a *AuthSource) Store(c *gin.Context) (store.Store, store.Scope) {
	return a.st, store.Scope(auth.UserIDFromContext(c))
}

package game

import (
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"cubechess/internal/cubechess"
	"cubechess/internal/storage"
)

var ErrGameNotFound = errors.New("game not found")

// Store 持久化接口；storage.Store 实现了它
type Store interface {
	SaveGame(rec *storage.GameRecord) error
	LoadGame(id string) (*storage.GameRecord, error)
	ListGames() ([]*storage.GameRecord, error)
}

type Manager struct {
	mu    sync.RWMutex
	games map[string]*GameState
	store Store
}

// NewManager store 可以为 nil（只存内存）。有 store 时先把已存的对局读回来。
func NewManager(store Store) *Manager {
	m := &Manager{games: make(map[string]*GameState), store: store}
	if store == nil {
		return m
	}
	recs, err := store.ListGames()
	if err != nil {
		log.Printf("restore games: %v", err)
		return m
	}
	for _, rec := range recs {
		g, err := fromRecord(rec)
		if err != nil {
			log.Printf("restore game %s: %v", rec.ID, err)
			continue
		}
		m.games[g.ID] = g
	}
	if len(m.games) > 0 {
		log.Printf("restored %d games", len(m.games))
	}
	return m
}

func (m *Manager) NewGame() Snapshot {
	now := time.Now()
	g := &GameState{
		ID:        uuid.NewString(),
		Session:   NewSession(),
		CreatedAt: now,
		UpdatedAt: now,
	}

	m.mu.Lock()
	m.games[g.ID] = g
	m.mu.Unlock()

	m.persist(g)
	return g.snapshot()
}

// lookup 先查内存；没有时再去 store 里找（例如别的进程写入的对局）
func (m *Manager) lookup(id string) (*GameState, error) {
	m.mu.RLock()
	g, ok := m.games[id]
	m.mu.RUnlock()
	if ok {
		return g, nil
	}
	if m.store == nil {
		return nil, ErrGameNotFound
	}

	rec, err := m.store.LoadGame(id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrGameNotFound
	}
	if err != nil {
		return nil, err
	}
	loaded, err := fromRecord(rec)
	if err != nil {
		log.Printf("load game %s: %v", id, err)
		return nil, ErrGameNotFound
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if g, ok := m.games[id]; ok {
		return g, nil
	}
	m.games[id] = loaded
	return loaded, nil
}

func (m *Manager) Get(id string) (Snapshot, error) {
	g, err := m.lookup(id)
	if err != nil {
		return Snapshot{}, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.snapshot(), nil
}

// Do 在该局的锁内执行 fn。fn 返回错误时会话不变。
func (m *Manager) Do(id string, fn func(Session) (Session, cubechess.Effects, error)) (Snapshot, cubechess.Effects, error) {
	g, err := m.lookup(id)
	if err != nil {
		return Snapshot{}, cubechess.Effects{Winner: cubechess.NoSide}, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	next, eff, err := fn(g.Session)
	if err != nil {
		return g.snapshot(), eff, err
	}
	changed := next.Board.Hash != g.Session.Board.Hash || next.Pending != g.Session.Pending
	g.Session = next
	g.UpdatedAt = time.Now()
	if changed {
		m.persist(g)
	}
	return g.snapshot(), eff, nil
}

func (m *Manager) Click(id string, at cubechess.Coord) (Snapshot, cubechess.Effects, error) {
	return m.Do(id, func(s Session) (Session, cubechess.Effects, error) {
		return s.Click(at)
	})
}

func (m *Manager) Promote(id string, role cubechess.Role) (Snapshot, cubechess.Effects, error) {
	return m.Do(id, func(s Session) (Session, cubechess.Effects, error) {
		return s.Promote(role)
	})
}

// 存盘失败只记日志，内存里的对局照常进行
func (m *Manager) persist(g *GameState) {
	if m.store == nil {
		return
	}
	if err := m.store.SaveGame(g.record()); err != nil {
		log.Printf("save game %s: %v", g.ID, err)
	}
}

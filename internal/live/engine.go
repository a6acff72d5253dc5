package live

import (
	"log"
	"sync"
	"time"

	"terreiro-backend/internal/models"

	"gorm.io/gorm"
)

// DashboardState: todo o estado derivado que alimenta o dashboard.
// Cada campo é substituído por inteiro quando a coleção correspondente
// muda, nunca remendado em cima do valor anterior.
type DashboardState struct {
	Cash       CashSummary       `json:"cash"`
	Membership MembershipSummary `json:"membership"`
	Stock      StockSummary      `json:"stock"`
	Events     EventsSummary     `json:"events"`
	Focus      []FocusEntry      `json:"focus"`
	Actions    []ActionEntry     `json:"actions"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

// Engine mantém uma assinatura por coleção no Bus. A cada mudança
// recarrega o snapshot completo do banco, agrega e publica o estado
// novo no hub.
type Engine struct {
	db  *gorm.DB
	bus *Bus
	hub *Hub

	mu    sync.RWMutex
	state DashboardState
	subs  []*Subscription

	loadsMu sync.Mutex
	loads   map[string]*sync.Mutex
}

func NewEngine(db *gorm.DB, bus *Bus, hub *Hub) *Engine {
	return &Engine{db: db, bus: bus, hub: hub, loads: make(map[string]*sync.Mutex)}
}

// lockFor devolve o mutex que serializa recarga+gravação da coleção.
// Duas notificações simultâneas da mesma coleção rodando em paralelo
// poderiam gravar um snapshot velho por cima de um mais novo.
func (e *Engine) lockFor(collection string) *sync.Mutex {
	e.loadsMu.Lock()
	defer e.loadsMu.Unlock()

	m := e.loads[collection]
	if m == nil {
		m = &sync.Mutex{}
		e.loads[collection] = m
	}
	return m
}

// Start faz a recomputação inicial e assina as coleções. Chamar Stop
// para liberar as assinaturas.
func (e *Engine) Start() {
	recomputes := []struct {
		collection string
		fn         SnapshotFunc
	}{
		{ColCashTransactions, e.recomputeCash},
		{ColMemberships, e.recomputeMembership},
		{ColStockItems, e.recomputeStock},
		{ColEvents, e.recomputeEvents},
		{ColFocusNotes, e.recomputeFocus},
		{ColActionItems, e.recomputeActions},
	}

	for _, r := range recomputes {
		r.fn()
		e.subs = append(e.subs, e.bus.Subscribe(r.collection, r.fn))
	}
}

func (e *Engine) Stop() {
	for _, s := range e.subs {
		s.Cancel()
	}
	e.subs = nil
}

// State devolve uma cópia do estado corrente.
func (e *Engine) State() DashboardState {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.state
}

func (e *Engine) recomputeCash() {
	lock := e.lockFor(ColCashTransactions)
	lock.Lock()
	defer lock.Unlock()

	var txs []models.CashTransaction
	if err := e.db.Find(&txs).Error; err != nil {
		log.Printf("Snapshot do caixa falhou: %v", err)
		return
	}
	summary := AggregateCash(txs, time.Now())

	e.mu.Lock()
	e.state.Cash = summary
	e.state.UpdatedAt = time.Now()
	e.mu.Unlock()

	e.publish()
}

func (e *Engine) recomputeMembership() {
	lock := e.lockFor(ColMemberships)
	lock.Lock()
	defer lock.Unlock()

	var members []models.Membership
	if err := e.db.Find(&members).Error; err != nil {
		log.Printf("Snapshot das mensalidades falhou: %v", err)
		return
	}
	summary := AggregateMembership(members, time.Now())

	e.mu.Lock()
	e.state.Membership = summary
	e.state.UpdatedAt = time.Now()
	e.mu.Unlock()

	e.publish()
}

func (e *Engine) recomputeStock() {
	lock := e.lockFor(ColStockItems)
	lock.Lock()
	defer lock.Unlock()

	var items []models.StockItem
	if err := e.db.Find(&items).Error; err != nil {
		log.Printf("Snapshot do estoque falhou: %v", err)
		return
	}
	summary := AggregateStock(items)

	e.mu.Lock()
	e.state.Stock = summary
	e.state.UpdatedAt = time.Now()
	e.mu.Unlock()

	e.publish()
}

func (e *Engine) recomputeEvents() {
	lock := e.lockFor(ColEvents)
	lock.Lock()
	defer lock.Unlock()

	var events []models.Event
	if err := e.db.Find(&events).Error; err != nil {
		log.Printf("Snapshot dos eventos falhou: %v", err)
		return
	}
	summary := AggregateEvents(events)

	e.mu.Lock()
	e.state.Events = summary
	e.state.UpdatedAt = time.Now()
	e.mu.Unlock()

	e.publish()
}

func (e *Engine) recomputeFocus() {
	lock := e.lockFor(ColFocusNotes)
	lock.Lock()
	defer lock.Unlock()

	var notes []models.FocusNote
	if err := e.db.Find(&notes).Error; err != nil {
		log.Printf("Snapshot dos recados falhou: %v", err)
		return
	}
	entries := AggregateFocus(notes)

	e.mu.Lock()
	e.state.Focus = entries
	e.state.UpdatedAt = time.Now()
	e.mu.Unlock()

	e.publish()
}

func (e *Engine) recomputeActions() {
	lock := e.lockFor(ColActionItems)
	lock.Lock()
	defer lock.Unlock()

	var items []models.ActionItem
	if err := e.db.Find(&items).Error; err != nil {
		log.Printf("Snapshot das tarefas falhou: %v", err)
		return
	}
	entries := AggregateActions(items)

	e.mu.Lock()
	e.state.Actions = entries
	e.state.UpdatedAt = time.Now()
	e.mu.Unlock()

	e.publish()
}

func (e *Engine) publish() {
	if e.hub == nil {
		return
	}
	if err := e.hub.Broadcast(e.State()); err != nil {
		log.Printf("Broadcast do dashboard falhou: %v", err)
	}
}

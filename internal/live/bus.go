package live

import "sync"

// Nomes das coleções acompanhadas pelo motor do dashboard.
const (
	ColCashTransactions = "cash_transactions"
	ColMemberships      = "memberships"
	ColStockItems       = "stock_items"
	ColEvents           = "events"
	ColFocusNotes       = "focus_notes"
	ColActionItems      = "action_items"
	ColCantigas         = "cantigas"
)

// SnapshotFunc é chamado a cada mudança na coleção assinada. O callback
// recarrega o snapshot completo por conta própria, então entrega repetida
// é inofensiva (pelo menos uma vez).
type SnapshotFunc func()

// Bus: barramento de mudanças por coleção. Os handlers de escrita chamam
// Notify depois do commit; não existe garantia de ordem entre coleções
// diferentes.
type Bus struct {
	mu   sync.RWMutex
	subs map[string]map[*Subscription]SnapshotFunc
}

type Subscription struct {
	bus        *Bus
	collection string
}

func NewBus() *Bus {
	return &Bus{subs: make(map[string]map[*Subscription]SnapshotFunc)}
}

func (b *Bus) Subscribe(collection string, fn SnapshotFunc) *Subscription {
	s := &Subscription{bus: b, collection: collection}

	b.mu.Lock()
	if b.subs[collection] == nil {
		b.subs[collection] = make(map[*Subscription]SnapshotFunc)
	}
	b.subs[collection][s] = fn
	b.mu.Unlock()

	return s
}

// Cancel desliga a assinatura. Depois do Cancel o callback não é mais
// invocado, mesmo que a coleção continue recebendo Notify.
func (s *Subscription) Cancel() {
	s.bus.mu.Lock()
	if m := s.bus.subs[s.collection]; m != nil {
		delete(m, s)
	}
	s.bus.mu.Unlock()
}

func (b *Bus) Notify(collection string) {
	b.mu.RLock()
	fns := make([]SnapshotFunc, 0, len(b.subs[collection]))
	for _, fn := range b.subs[collection] {
		fns = append(fns, fn)
	}
	b.mu.RUnlock()

	for _, fn := range fns {
		fn()
	}
}

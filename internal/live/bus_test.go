package live

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBusNotifyReachesSubscribers(t *testing.T) {
	bus := NewBus()

	var cash, stock int
	bus.Subscribe(ColCashTransactions, func() { cash++ })
	bus.Subscribe(ColStockItems, func() { stock++ })

	bus.Notify(ColCashTransactions)
	bus.Notify(ColCashTransactions)

	require.Equal(t, 2, cash)
	require.Zero(t, stock, "notificação de uma coleção não pode vazar para outra")
}

func TestBusCancelStopsDelivery(t *testing.T) {
	bus := NewBus()

	var calls int
	sub := bus.Subscribe(ColEvents, func() { calls++ })

	bus.Notify(ColEvents)
	sub.Cancel()
	bus.Notify(ColEvents)
	bus.Notify(ColEvents)

	require.Equal(t, 1, calls)
}

func TestBusCancelIsIdempotent(t *testing.T) {
	bus := NewBus()

	sub := bus.Subscribe(ColMemberships, func() {})
	sub.Cancel()
	sub.Cancel()

	bus.Notify(ColMemberships)
}

func TestBusNotifyWithoutSubscribers(t *testing.T) {
	bus := NewBus()
	bus.Notify(ColCantigas)
}

func TestBusConcurrentNotify(t *testing.T) {
	bus := NewBus()

	var mu sync.Mutex
	var calls int
	bus.Subscribe(ColFocusNotes, func() {
		mu.Lock()
		calls++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			bus.Notify(ColFocusNotes)
		}()
	}
	wg.Wait()

	require.Equal(t, 16, calls)
}

func TestBusMultipleSubscribersSameCollection(t *testing.T) {
	bus := NewBus()

	var a, b int
	subA := bus.Subscribe(ColActionItems, func() { a++ })
	bus.Subscribe(ColActionItems, func() { b++ })

	bus.Notify(ColActionItems)
	subA.Cancel()
	bus.Notify(ColActionItems)

	require.Equal(t, 1, a)
	require.Equal(t, 2, b)
}

package live

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLockForSameCollectionIsSameMutex(t *testing.T) {
	e := NewEngine(nil, NewBus(), nil)

	require.Same(t, e.lockFor(ColCashTransactions), e.lockFor(ColCashTransactions))
	require.NotSame(t, e.lockFor(ColCashTransactions), e.lockFor(ColEvents))
}

func TestLockForSerializesSameCollection(t *testing.T) {
	e := NewEngine(nil, NewBus(), nil)

	lock := e.lockFor(ColCashTransactions)
	lock.Lock()

	released := make(chan struct{})
	go func() {
		other := e.lockFor(ColCashTransactions)
		other.Lock()
		other.Unlock()
		close(released)
	}()

	select {
	case <-released:
		t.Fatal("duas recargas da mesma coleção não podem rodar em paralelo")
	case <-time.After(100 * time.Millisecond):
	}

	lock.Unlock()
	select {
	case <-released:
	case <-time.After(time.Second):
		t.Fatal("recarga não destravou depois do unlock")
	}
}

func TestLockForDifferentCollectionsDoNotBlock(t *testing.T) {
	e := NewEngine(nil, NewBus(), nil)

	e.lockFor(ColCashTransactions).Lock()
	defer e.lockFor(ColCashTransactions).Unlock()

	acquired := make(chan struct{})
	go func() {
		other := e.lockFor(ColMemberships)
		other.Lock()
		other.Unlock()
		close(acquired)
	}()

	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("coleções diferentes não podem se bloquear")
	}
}

package live

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// fakeConn registra o que o hub escreve; fail simula cliente caído.
type fakeConn struct {
	mu     sync.Mutex
	writes [][]byte
	fail   bool
	closed bool
}

func (f *fakeConn) WriteMessage(messageType int, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errors.New("conexão fechada")
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	f.writes = append(f.writes, cp)
	return nil
}

func (f *fakeConn) SetWriteDeadline(time.Time) error { return nil }

func (f *fakeConn) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeConn) messageCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.writes)
}

func (f *fakeConn) lastMessage() []byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.writes) == 0 {
		return nil
	}
	return f.writes[len(f.writes)-1]
}

func (f *fakeConn) isClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

func startHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)
	return hub
}

func TestHubDeliversInitialStateFromRunLoop(t *testing.T) {
	hub := startHub(t)

	conn := &fakeConn{}
	hub.register <- registration{conn: conn, initial: []byte(`{"cash":{}}`)}

	// o primeiro write sai do goroutine do Run, não de quem registrou
	require.Eventually(t, func() bool { return conn.messageCount() == 1 }, time.Second, 10*time.Millisecond)
	require.Equal(t, []byte(`{"cash":{}}`), conn.lastMessage())
}

func TestHubBroadcastReachesAllClients(t *testing.T) {
	hub := startHub(t)

	a := &fakeConn{}
	b := &fakeConn{}
	hub.register <- registration{conn: a}
	hub.register <- registration{conn: b}

	require.Eventually(t, func() bool {
		hub.mu.RLock()
		defer hub.mu.RUnlock()
		return len(hub.clients) == 2
	}, time.Second, 10*time.Millisecond)

	require.NoError(t, hub.Broadcast(map[string]int{"total": 240}))

	require.Eventually(t, func() bool {
		return a.messageCount() == 1 && b.messageCount() == 1
	}, time.Second, 10*time.Millisecond)
}

func TestHubDropsFailedInitialWrite(t *testing.T) {
	hub := startHub(t)

	broken := &fakeConn{fail: true}
	hub.register <- registration{conn: broken, initial: []byte(`{}`)}

	require.Eventually(t, broken.isClosed, time.Second, 10*time.Millisecond)

	// cliente removido não recebe broadcast
	require.NoError(t, hub.Broadcast(map[string]int{"total": 1}))
	time.Sleep(50 * time.Millisecond)
	require.Zero(t, broken.messageCount())
}

func TestHubSurvivesManyFailedClientsInOneBroadcast(t *testing.T) {
	hub := startHub(t)

	// bem mais clientes quebrados do que o buffer dos canais comporta
	broken := make([]*fakeConn, 0, 32)
	for i := 0; i < 32; i++ {
		conn := &fakeConn{fail: true}
		broken = append(broken, conn)
		hub.register <- registration{conn: conn}
	}
	healthy := &fakeConn{}
	hub.register <- registration{conn: healthy}

	require.Eventually(t, func() bool {
		hub.mu.RLock()
		defer hub.mu.RUnlock()
		return len(hub.clients) == 33
	}, time.Second, 10*time.Millisecond)

	require.NoError(t, hub.Broadcast(map[string]int{"rodada": 1}))
	require.NoError(t, hub.Broadcast(map[string]int{"rodada": 2}))

	// o loop continua vivo e entregando para quem está saudável
	require.Eventually(t, func() bool { return healthy.messageCount() == 2 }, time.Second, 10*time.Millisecond)

	for _, conn := range broken {
		require.Eventually(t, conn.isClosed, time.Second, 10*time.Millisecond)
	}
}

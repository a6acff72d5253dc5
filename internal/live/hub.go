package live

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"
)

const (
	wsWriteDeadline   = 5 * time.Second
	wsChannelBuffer   = 8
	wsBroadcastBuffer = 64
)

// wsConn: o que o hub precisa de uma conexão. *websocket.Conn satisfaz.
type wsConn interface {
	WriteMessage(messageType int, data []byte) error
	SetWriteDeadline(t time.Time) error
	Close() error
}

// registration carrega o estado inicial junto com a conexão para o
// primeiro WriteMessage sair do mesmo goroutine do Run. A conexão só
// aceita um escritor por vez; escrever direto no Serve disputaria com
// um broadcast em andamento.
type registration struct {
	conn    wsConn
	initial []byte
}

// Hub gerencia as conexões websocket do dashboard e repassa cada novo
// DashboardState para todos os clientes conectados.
type Hub struct {
	clients    map[wsConn]bool
	register   chan registration
	unregister chan wsConn
	broadcast  chan []byte

	mu sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[wsConn]bool),
		register:   make(chan registration, wsChannelBuffer),
		unregister: make(chan wsConn, wsChannelBuffer),
		broadcast:  make(chan []byte, wsBroadcastBuffer),
	}
}

// Run roda o loop principal do hub até o contexto ser cancelado. Todo
// WriteMessage acontece aqui dentro, nunca em outro goroutine.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for conn := range h.clients {
				conn.Close()
			}
			h.mu.Unlock()
			return
		case r := <-h.register:
			h.mu.Lock()
			h.clients[r.conn] = true
			count := len(h.clients)
			h.mu.Unlock()

			if len(r.initial) > 0 {
				r.conn.SetWriteDeadline(time.Now().Add(wsWriteDeadline))
				if err := r.conn.WriteMessage(websocket.TextMessage, r.initial); err != nil {
					log.Printf("Erro no envio do estado inicial: %v", err)
					h.drop(r.conn)
					continue
				}
			}
			log.Printf("Dashboard conectado (total: %d)", count)
		case conn := <-h.unregister:
			h.drop(conn)
		case message := <-h.broadcast:
			h.mu.RLock()
			conns := make([]wsConn, 0, len(h.clients))
			for conn := range h.clients {
				conns = append(conns, conn)
			}
			h.mu.RUnlock()

			for _, conn := range conns {
				conn.SetWriteDeadline(time.Now().Add(wsWriteDeadline))
				if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
					log.Printf("Erro escrevendo no websocket: %v", err)
					h.drop(conn)
				}
			}
		}
	}
}

// drop remove e fecha a conexão na hora, sem passar pelo canal de
// unregister: reenfileirar a partir do próprio Run travaria o loop
// quando o canal enchesse.
func (h *Hub) drop(conn wsConn) {
	h.mu.Lock()
	removed := false
	if _, ok := h.clients[conn]; ok {
		delete(h.clients, conn)
		removed = true
	}
	count := len(h.clients)
	h.mu.Unlock()

	if removed {
		conn.Close()
		log.Printf("Dashboard desconectado (total: %d)", count)
	}
}

// Broadcast envia para todos os clientes; canal cheio descarta a mensagem
// em vez de bloquear o caminho de escrita.
func (h *Hub) Broadcast(v any) error {
	message, err := json.Marshal(v)
	if err != nil {
		return err
	}

	select {
	case h.broadcast <- message:
		return nil
	default:
		log.Printf("Canal de broadcast cheio, mensagem descartada")
		return nil
	}
}

// Serve atende uma conexão do dashboard: entrega o estado atual via
// hub e depois só fica lendo até o cliente fechar.
func (h *Hub) Serve(e *Engine) func(*websocket.Conn) {
	return func(conn *websocket.Conn) {
		initial, err := json.Marshal(e.State())
		if err != nil {
			initial = nil
		}
		h.register <- registration{conn: conn, initial: initial}
		defer func() {
			h.unregister <- conn
		}()

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
	}
}

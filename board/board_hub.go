package board

import (
	"sync"

	"github.com/gorilla/websocket"

	"github.com/thalisfel/sistema-de-gerenciamento-de-pedidos/models"
	"github.com/thalisfel/sistema-de-gerenciamento-de-pedidos/utils"
)

// Eventos do painel de pedidos
const (
	EventOrderCreated   = "order_created"
	EventOrderUpdated   = "order_updated"
	EventOrderDeleted   = "order_deleted"
	EventHistoryCleared = "history_cleared"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub guarda as conexoes do painel (cozinha, balcao, admin) e faz o
// broadcast dos eventos de pedido.
type Hub struct {
	clients map[*websocket.Conn]string // conn -> role
	mutex   sync.Mutex
}

var hub = Hub{
	clients: make(map[*websocket.Conn]string),
}

// RegisterClient -> adiciona a conexao ao hub com a role do usuario
func RegisterClient(conn *websocket.Conn, role string) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	hub.clients[conn] = role
}

// UnregisterClient -> remove e fecha a conexao
func UnregisterClient(conn *websocket.Conn) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	delete(hub.clients, conn)
	conn.Close()
}

// BroadcastOrderCreated -> novo pedido no painel
func BroadcastOrderCreated(order models.Order) {
	broadcast(Message{Event: EventOrderCreated, Data: order})
}

// BroadcastOrderUpdated -> mudanca de status
func BroadcastOrderUpdated(order models.Order) {
	broadcast(Message{Event: EventOrderUpdated, Data: order})
}

// BroadcastOrderDeleted -> pedido removido
func BroadcastOrderDeleted(orderID uint) {
	broadcast(Message{Event: EventOrderDeleted, Data: map[string]uint{"order_id": orderID}})
}

// BroadcastHistoryCleared -> historico zerado
func BroadcastHistoryCleared(count int64) {
	broadcast(Message{Event: EventHistoryCleared, Data: map[string]int64{"removed": count}})
}

func broadcast(msg Message) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()

	for conn := range hub.clients {
		if err := conn.WriteJSON(msg); err != nil {
			utils.ErrorLogger.Printf("board: dropping client: %v", err)
			delete(hub.clients, conn)
			conn.Close()
		}
	}
}

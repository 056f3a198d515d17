package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/thalisfel/sistema-de-gerenciamento-de-pedidos/board"
	"github.com/thalisfel/sistema-de-gerenciamento-de-pedidos/utils"
)

var boardUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// BoardHandler -> GET /ws/board?token=...
// Browsers nao mandam header em websocket, entao o token vem na query.
func BoardHandler(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("token missing"))
		return
	}

	claims, err := utils.ParseToken(token)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	conn, err := boardUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		utils.ErrorLogger.Printf("board: upgrade failed: %v", err)
		return
	}

	board.RegisterClient(conn, claims.Role)
	utils.InfoLogger.Printf("board: client connected (role=%s)", claims.Role)

	// loop de leitura so para detectar o close
	go func() {
		defer board.UnregisterClient(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

/*
 *  Copyright (c) 2026, APIBlaze, Inc. All Rights Reserved.
 *
 *  Licensed under the Apache License, Version 2.0 (the "License");
 *  you may not use this file except in compliance with the License.
 *  You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 *  Unless required by applicable law or agreed to in writing, software
 *  distributed under the License is distributed on an "AS IS" BASIS,
 *  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *  See the License for the specific language governing permissions and
 *  limitations under the License.
 *
 */

package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"dashboard-api/internal/dto"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	// writeWait is the deadline for a single frame write
	writeWait = 10 * time.Second
	// pongWait is how long a connection may stay silent before it is
	// considered dead
	pongWait = 30 * time.Second
	// pingPeriod must be shorter than pongWait
	pingPeriod = 20 * time.Second
	// sendBuffer is the per-connection outbound queue; a full queue drops
	// the connection rather than blocking the broadcaster
	sendBuffer = 16
)

// Hub fans deployment status events out to the dashboard sessions of each
// team. Connections are registered per team; events for one team never reach
// another team's sessions.
type Hub struct {
	mu    sync.RWMutex
	conns map[string]map[string]*connection // teamID -> connectionID

	shutdownCtx context.Context
	shutdownFn  context.CancelFunc
	wg          sync.WaitGroup
}

type connection struct {
	id     string
	teamID string
	ws     *websocket.Conn
	// send is never closed; teardown signals done instead, so a concurrent
	// publisher can always send without racing the close
	send chan []byte
	done chan struct{}
	once sync.Once
}

// NewHub creates an empty status-stream hub
func NewHub() *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		conns:       make(map[string]map[string]*connection),
		shutdownCtx: ctx,
		shutdownFn:  cancel,
	}
}

// Register attaches an upgraded websocket connection to a team's stream and
// starts its pumps. The call returns immediately.
func (h *Hub) Register(teamID string, ws *websocket.Conn) {
	conn := &connection{
		id:     uuid.New().String(),
		teamID: teamID,
		ws:     ws,
		send:   make(chan []byte, sendBuffer),
		done:   make(chan struct{}),
	}

	h.mu.Lock()
	if h.conns[teamID] == nil {
		h.conns[teamID] = make(map[string]*connection)
	}
	h.conns[teamID][conn.id] = conn
	h.mu.Unlock()

	log.Printf("[INFO] status stream connected: team=%s conn=%s\n", teamID, conn.id)

	h.wg.Add(2)
	go h.writePump(conn)
	go h.readPump(conn)
}

// PublishStatus sends one deployment status event to every session of the
// event's team. Slow consumers are disconnected, never waited on.
func (h *Hub) PublishStatus(event dto.StatusEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("[ERROR] failed to encode status event: %v\n", err)
		return
	}

	h.mu.RLock()
	team := h.conns[event.TeamID]
	targets := make([]*connection, 0, len(team))
	for _, c := range team {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	for _, c := range targets {
		select {
		case c.send <- payload:
		default:
			log.Printf("[WARN] status stream backlogged, dropping: team=%s conn=%s\n", c.teamID, c.id)
			h.drop(c)
		}
	}
}

// ConnectionCount returns the total number of active sessions
func (h *Hub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	n := 0
	for _, team := range h.conns {
		n += len(team)
	}
	return n
}

// Shutdown closes every connection and waits for the pumps to exit
func (h *Hub) Shutdown() {
	h.shutdownFn()

	h.mu.Lock()
	for _, team := range h.conns {
		for _, c := range team {
			h.closeConn(c)
		}
	}
	h.conns = make(map[string]map[string]*connection)
	h.mu.Unlock()

	h.wg.Wait()
}

// drop removes a connection from the registry and closes it
func (h *Hub) drop(c *connection) {
	h.mu.Lock()
	if team, ok := h.conns[c.teamID]; ok {
		delete(team, c.id)
		if len(team) == 0 {
			delete(h.conns, c.teamID)
		}
	}
	h.mu.Unlock()
	h.closeConn(c)
}

func (h *Hub) closeConn(c *connection) {
	c.once.Do(func() {
		close(c.done)
		c.ws.Close()
	})
}

// writePump drains the send queue onto the wire and keeps the connection
// alive with pings
func (h *Hub) writePump(c *connection) {
	defer h.wg.Done()
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case payload := <-c.send:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.TextMessage, payload); err != nil {
				h.drop(c)
				return
			}
		case <-ticker.C:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				h.drop(c)
				return
			}
		case <-c.done:
			return
		case <-h.shutdownCtx.Done():
			return
		}
	}
}

// readPump discards inbound frames; the stream is one-way. Its job is pong
// handling and noticing the peer going away.
func (h *Hub) readPump(c *connection) {
	defer h.wg.Done()
	defer h.drop(c)

	c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		c.ws.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.ws.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[WARN] status stream read error: team=%s conn=%s err=%v\n", c.teamID, c.id, err)
			}
			return
		}
	}
}

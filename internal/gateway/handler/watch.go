package handler

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"docpulse/internal/gateway/runtime"
)

const (
	watchWSWriteWait = 10 * time.Second
	watchWSPongWait  = 60 * time.Second
	watchWSPingEvery = (watchWSPongWait * 9) / 10
)

var watchWSUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(_ *http.Request) bool {
		return true
	},
}

type watchWSOutbound struct {
	Type      string                    `json:"type"`
	Dashboard *runtime.DashboardSummary `json:"dashboard,omitempty"`
	Message   string                    `json:"message,omitempty"`
}

// handleWatchWS streams a dashboard summary to the client after every
// completed rescan, with an initial summary on connect.
func (s *Service) handleWatchWS(w http.ResponseWriter, r *http.Request) {
	conn, err := watchWSUpgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	if err := conn.SetReadDeadline(time.Now().Add(watchWSPongWait)); err != nil {
		log.Printf("watch ws set read deadline failed: %v", err)
		return
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(watchWSPongWait))
	})

	writeCh := make(chan watchWSOutbound, 8)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		ticker := time.NewTicker(watchWSPingEvery)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case out := <-writeCh:
				if err := conn.SetWriteDeadline(time.Now().Add(watchWSWriteWait)); err != nil {
					return
				}
				if err := conn.WriteJSON(out); err != nil {
					return
				}
			case <-ticker.C:
				if err := conn.SetWriteDeadline(time.Now().Add(watchWSWriteWait)); err != nil {
					return
				}
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			}
		}
	}()

	updates, unsubscribe := s.app.Subscribe(ctx)
	defer unsubscribe()

	initial := s.app.Dashboard()
	pushWatchWS(writeCh, watchWSOutbound{Type: "dashboard", Dashboard: &initial})

	// Reader goroutine: the client sends nothing meaningful, but reads are
	// required to process pong frames and detect closure.
	readerDone := make(chan struct{})
	go func() {
		defer close(readerDone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				cancel()
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			<-writerDone
			return
		case <-readerDone:
			cancel()
			<-writerDone
			return
		case sum, ok := <-updates:
			if !ok {
				cancel()
				<-writerDone
				return
			}
			pushWatchWS(writeCh, watchWSOutbound{Type: "dashboard", Dashboard: &sum})
		}
	}
}

func pushWatchWS(ch chan watchWSOutbound, out watchWSOutbound) {
	select {
	case ch <- out:
	default:
		log.Printf("watch ws: dropping %s frame (slow client)", out.Type)
	}
}

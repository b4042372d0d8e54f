package mirror

import (
	"context"
	"time"

	"github.com/sidecast/sidecast/pkg/com"
	"github.com/sidecast/sidecast/pkg/logger"
	"github.com/sidecast/sidecast/pkg/network/websocket"
)

// pace returns how long a delivery loop should sleep after spending
// elapsed time on a frame to hold the target interval.
func pace(interval, elapsed time.Duration) time.Duration {
	if d := interval - elapsed; d > 0 {
		return d
	}
	return 0
}

// Session streams frames to one websocket viewer.
type Session struct {
	id   com.Uid
	conn *websocket.Connection
	log  *logger.Logger
}

func NewSession(conn *websocket.Connection, log *logger.Logger) *Session {
	id := com.NewUid()
	return &Session{
		id:   id,
		conn: conn,
		log:  log.Extend(log.With().Str("sid", id.Short())),
	}
}

func (s *Session) Id() com.Uid         { return s.id }
func (s *Session) Disconnect()         { s.conn.Close() }
func (s *Session) Log() *logger.Logger { return s.log }

// Stream pushes frames to the viewer until it goes away or ctx ends.
//
// The next frame is already being produced while the current one is on
// the wire, so capture and encode latency hide behind the send. On the
// way out the in-flight cycle is cancelled and drained before control
// returns to the caller, who releases the shared source only then.
func (s *Session) Stream(ctx context.Context, prod *Producer, interval time.Duration) {
	ctx, cancel := context.WithCancel(ctx)
	pending := prod.ProduceAsync(ctx)
	defer func() {
		cancel()
		<-pending
	}()

	for {
		start := time.Now()
		var data []byte
		select {
		case data = <-pending:
		case <-s.conn.Done():
			return
		case <-ctx.Done():
			return
		}
		pending = prod.ProduceAsync(ctx)

		if len(data) > 0 {
			if err := s.conn.WriteBinary(data); err != nil {
				s.log.Debug().Err(err).Msg("viewer write failed")
				return
			}
		}

		select {
		case <-time.After(pace(interval, time.Since(start))):
		case <-s.conn.Done():
			return
		case <-ctx.Done():
			return
		}
	}
}

package mirror

import (
	"context"
	"encoding/binary"
	"errors"
	"io"
	"net"
	"sync"
	"time"

	"github.com/sidecast/sidecast/pkg/com"
	"github.com/sidecast/sidecast/pkg/config"
	"github.com/sidecast/sidecast/pkg/logger"
	"github.com/sidecast/sidecast/pkg/network/socket"
)

const tcpWriteWait = 10 * time.Second

// WriteFrame writes one frame as a 4-byte big-endian length prefix
// followed by the payload.
func WriteFrame(w io.Writer, data []byte) error {
	var prefix [4]byte
	binary.BigEndian.PutUint32(prefix[:], uint32(len(data)))
	if _, err := w.Write(prefix[:]); err != nil {
		return err
	}
	_, err := w.Write(data)
	return err
}

// ReadFrame reads one length-prefixed frame, the way client apps do.
func ReadFrame(r io.Reader) ([]byte, error) {
	var prefix [4]byte
	if _, err := io.ReadFull(r, prefix[:]); err != nil {
		return nil, err
	}
	data := make([]byte, binary.BigEndian.Uint32(prefix[:]))
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, err
	}
	return data, nil
}

// TCPServer streams length-prefixed frames to companion client apps.
// There is no handshake, a client connects and frames start flowing.
type TCPServer struct {
	listener *net.TCPListener
	source   *Source
	interval time.Duration
	done     chan struct{}
	wg       sync.WaitGroup
	log      *logger.Logger
}

func NewTCPServer(conf config.TCP, src *Source, fps int, log *logger.Logger) (*TCPServer, error) {
	l, err := socket.NewTCPSocketPortRoll(conf.Port)
	if err != nil {
		return nil, err
	}
	return &TCPServer{
		listener: l,
		source:   src,
		interval: time.Second / time.Duration(fps),
		done:     make(chan struct{}),
		log:      log.Extend(log.With().Str("c", "tcp")),
	}, nil
}

func (s *TCPServer) Addr() net.Addr { return s.listener.Addr() }

func (s *TCPServer) Run() { go s.accept() }

func (s *TCPServer) accept() {
	s.log.Info().Msgf("tcp stream on %v", s.listener.Addr())
	for {
		conn, err := s.listener.AcceptTCP()
		if err != nil {
			select {
			case <-s.done:
				return
			default:
			}
			if errors.Is(err, net.ErrClosed) {
				return
			}
			s.log.Error().Err(err).Msg("tcp accept failed")
			continue
		}
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.serve(conn)
		}()
	}
}

// serve drives one client until its connection breaks or the server
// stops. The shared source is held for exactly that long.
func (s *TCPServer) serve(conn *net.TCPConn) {
	log := s.log.Extend(s.log.With().Str("sid", com.NewUid().Short()))
	log.Info().Msgf("client %v connected", conn.RemoteAddr())
	defer log.Info().Msgf("client %v disconnected", conn.RemoteAddr())
	defer func() { _ = conn.Close() }()
	_ = conn.SetNoDelay(true)

	prod, err := s.source.Acquire()
	if err != nil {
		log.Error().Err(err).Msg("capture unavailable")
		return
	}
	defer s.source.Release()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	for {
		start := time.Now()
		data := <-prod.ProduceAsync(ctx)
		if len(data) > 0 {
			_ = conn.SetWriteDeadline(time.Now().Add(tcpWriteWait))
			if err := WriteFrame(conn, data); err != nil {
				log.Debug().Err(err).Msg("client write failed")
				return
			}
		}
		select {
		case <-time.After(pace(s.interval, time.Since(start))):
		case <-s.done:
			return
		}
	}
}

func (s *TCPServer) Shutdown(ctx context.Context) error {
	close(s.done)
	err := s.listener.Close()
	drained := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(drained)
	}()
	select {
	case <-drained:
	case <-ctx.Done():
		return ctx.Err()
	}
	return err
}

func (s *TCPServer) String() string { return "tcp::" + s.listener.Addr().String() }

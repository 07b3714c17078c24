package logging

import (
	"errors"
	"io"
	"log"
	"net"
	"os"
	"strings"
	"sync"
	"time"
)

const (
	defaultDialTimeout  = 2 * time.Second
	defaultWriteTimeout = time.Second
	defaultRetryBackoff = 5 * time.Second
)

// TCPMirror forwards log lines to a Logstash-style TCP input without ever
// blocking the caller. While the collector is unreachable, lines are dropped
// and reconnects are rate-limited by a backoff window.
type TCPMirror struct {
	addr         string
	dialTimeout  time.Duration
	writeTimeout time.Duration
	retryBackoff time.Duration

	mu        sync.Mutex
	conn      net.Conn
	nextRetry time.Time
	closed    bool
}

func NewTCPMirror(addr string) (*TCPMirror, error) {
	if strings.TrimSpace(addr) == "" {
		return nil, errors.New("logging: empty mirror address")
	}
	return &TCPMirror{
		addr:         addr,
		dialTimeout:  defaultDialTimeout,
		writeTimeout: defaultWriteTimeout,
		retryBackoff: defaultRetryBackoff,
	}, nil
}

// Attach wires the standard logger to stderr plus a TCP mirror when addr is
// set. It returns a closer for the mirror, which may be nil.
func Attach(addr string) io.Closer {
	if strings.TrimSpace(addr) == "" {
		return nil
	}
	mirror, err := NewTCPMirror(addr)
	if err != nil {
		log.Printf("log mirror disabled: %v", err)
		return nil
	}
	log.SetOutput(io.MultiWriter(os.Stderr, mirror))
	return mirror
}

// Write implements io.Writer. Delivery is best effort: a down collector never
// surfaces an error to the log call site.
func (m *TCPMirror) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	line := make([]byte, len(p))
	copy(line, p)
	if line[len(line)-1] != '\n' {
		line = append(line, '\n')
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return 0, io.ErrClosedPipe
	}
	if !m.dialLocked() {
		return len(p), nil
	}

	if m.writeTimeout > 0 {
		_ = m.conn.SetWriteDeadline(time.Now().Add(m.writeTimeout))
	}
	if _, err := m.conn.Write(line); err != nil {
		_ = m.dropConnLocked()
		m.nextRetry = time.Now().Add(m.retryBackoff)
	}
	return len(p), nil
}

func (m *TCPMirror) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil
	}
	m.closed = true
	return m.dropConnLocked()
}

func (m *TCPMirror) dialLocked() bool {
	if m.conn != nil {
		return true
	}
	if !m.nextRetry.IsZero() && time.Now().Before(m.nextRetry) {
		return false
	}
	conn, err := net.DialTimeout("tcp", m.addr, m.dialTimeout)
	if err != nil {
		m.nextRetry = time.Now().Add(m.retryBackoff)
		return false
	}
	m.conn = conn
	m.nextRetry = time.Time{}
	return true
}

func (m *TCPMirror) dropConnLocked() error {
	if m.conn == nil {
		return nil
	}
	err := m.conn.Close()
	m.conn = nil
	return err
}

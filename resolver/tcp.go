package resolver

import (
	"context"
	"encoding/binary"
	"errors"
	"io"
	"net"
	"sync"
	"time"

	"github.com/KarpelesLab/dnsresolver/dnsmsg"
	"golang.org/x/sync/errgroup"
)

// idleTimeout is how long a pipelined TCP connection waits with no
// pending work before it closes itself (§4.3).
const idleTimeout = 50 * time.Millisecond

type tcpState int

const (
	tcpDisconnected tcpState = iota
	tcpConnecting
	tcpConnected
)

type tcpPending struct {
	id       uint16
	query    Query
	framed   []byte
	resultCh chan tcpResult
	done     bool
}

type tcpResult struct {
	msg *dnsmsg.Message
	err error
}

func (p *tcpPending) deliver(msg *dnsmsg.Message, err error) {
	if p.done {
		return
	}
	p.done = true
	p.resultCh <- tcpResult{msg: msg, err: err}
}

// TCPExecutor maintains at most one persistent TCP connection to its
// nameserver and multiplexes every outstanding query over it, matching
// responses to queries by transaction ID regardless of arrival order
// (§4.3).
type TCPExecutor struct {
	Addr NameserverAddr

	mu            sync.Mutex
	state         tcpState
	conn          net.Conn
	queue         []*tcpPending
	pending       map[uint16]*tcpPending
	epoch         uint64
	connectCancel context.CancelFunc
	pendingEmpty  chan struct{}
	workArrived   chan struct{}
}

// NewTCPExecutor builds a TCPExecutor for the given nameserver address.
// addr must not force the udp transport.
func NewTCPExecutor(addr NameserverAddr) (*TCPExecutor, error) {
	if addr.Transport == TransportUDP {
		return nil, &InvalidConfiguration{Reason: "tcp transport given a udp:// nameserver address"}
	}
	return &TCPExecutor{Addr: addr, pending: make(map[uint16]*tcpPending)}, nil
}

func (t *TCPExecutor) Exec(ctx context.Context, q Query) (*dnsmsg.Message, error) {
	msg, err := dnsmsg.NewQuery(dnsmsg.Question{Name: q.Name, Type: q.Type, Class: q.Class})
	if err != nil {
		return nil, &QueryFailed{Op: "build query", Cause: err}
	}

	raw, err := msg.MarshalBinary()
	if err != nil {
		return nil, &QueryFailed{Op: "encode query", Cause: err}
	}
	if len(raw) > 65535 {
		return nil, &InvalidConfiguration{Reason: "query packet too large for tcp transport"}
	}

	framed := make([]byte, 2+len(raw))
	binary.BigEndian.PutUint16(framed, uint16(len(raw)))
	copy(framed[2:], raw)

	p := &tcpPending{id: msg.ID, query: q, framed: framed, resultCh: make(chan tcpResult, 1)}

	if err := t.enqueue(p); err != nil {
		return nil, err
	}

	select {
	case res := <-p.resultCh:
		return res.msg, res.err
	case <-ctx.Done():
		t.cancelPending(p)
		return nil, &Cancelled{Cause: ctx.Err()}
	}
}

func (t *TCPExecutor) enqueue(p *tcpPending) error {
	t.mu.Lock()

	// assign a transaction ID unique within this connection (§4.3); the ID
	// drawn by dnsmsg.NewQuery collides only by chance.
	for t.idInUseLocked(p.id) {
		id, err := dnsmsg.RandomID()
		if err != nil {
			t.mu.Unlock()
			return &QueryFailed{Op: "generate transaction id", Cause: err}
		}
		p.id = id
		binary.BigEndian.PutUint16(p.framed[2:4], id)
	}

	switch t.state {
	case tcpDisconnected:
		t.queue = append(t.queue, p)
		t.state = tcpConnecting
		t.epoch++
		epoch := t.epoch
		connectCtx, cancel := context.WithCancel(context.Background())
		t.connectCancel = cancel
		t.mu.Unlock()
		go t.connect(connectCtx, epoch)
		return nil

	case tcpConnecting:
		t.queue = append(t.queue, p)
		t.mu.Unlock()
		return nil

	default: // tcpConnected
		t.pending[p.id] = p
		t.notifyWorkArrivedLocked()
		conn := t.conn
		epoch := t.epoch
		t.mu.Unlock()

		if _, err := conn.Write(p.framed); err != nil {
			t.failConnection(epoch, err)
			return nil // the failed connection already delivers QueryFailed to p
		}
		return nil
	}
}

func (t *TCPExecutor) idInUseLocked(id uint16) bool {
	if _, ok := t.pending[id]; ok {
		return true
	}
	for _, q := range t.queue {
		if q.id == id {
			return true
		}
	}
	return false
}

func (t *TCPExecutor) notifyWorkArrivedLocked() {
	if t.workArrived != nil {
		select {
		case t.workArrived <- struct{}{}:
		default:
		}
	}
}

func (t *TCPExecutor) notifyPendingEmptyLocked() {
	if t.pendingEmpty != nil && len(t.pending) == 0 {
		select {
		case t.pendingEmpty <- struct{}{}:
		default:
		}
	}
}

// cancelPending removes p from whichever list currently holds it. If the
// connect attempt has no queued work left, it is aborted; if the pending
// map becomes empty, the idle timer starts as usual.
func (t *TCPExecutor) cancelPending(p *tcpPending) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for i, q := range t.queue {
		if q == p {
			t.queue = append(t.queue[:i], t.queue[i+1:]...)
			if t.state == tcpConnecting && len(t.queue) == 0 && t.connectCancel != nil {
				t.connectCancel()
			}
			return
		}
	}

	if _, ok := t.pending[p.id]; ok {
		delete(t.pending, p.id)
		t.notifyPendingEmptyLocked()
	}
}

func (t *TCPExecutor) connect(ctx context.Context, epoch uint64) {
	d := net.Dialer{Control: controlSetRecvBuffer}
	conn, err := d.DialContext(ctx, "tcp", t.Addr.HostPort)

	t.mu.Lock()
	if epoch != t.epoch {
		t.mu.Unlock()
		if conn != nil {
			conn.Close()
		}
		return
	}

	if err != nil {
		queued := t.queue
		t.queue = nil
		t.state = tcpDisconnected
		t.connectCancel = nil
		t.mu.Unlock()
		for _, p := range queued {
			p.deliver(nil, &QueryFailed{Op: "connect to " + t.Addr.HostPort, Cause: err})
		}
		return
	}

	flushed := t.queue
	t.queue = nil
	t.state = tcpConnected
	t.conn = conn
	t.connectCancel = nil
	for _, p := range flushed {
		t.pending[p.id] = p
	}
	pendingEmpty := make(chan struct{}, 1)
	workArrived := make(chan struct{}, 1)
	t.pendingEmpty = pendingEmpty
	t.workArrived = workArrived
	t.mu.Unlock()

	for _, p := range flushed {
		if _, err := conn.Write(p.framed); err != nil {
			t.failConnection(epoch, err)
			return
		}
	}

	eg, egCtx := errgroup.WithContext(context.Background())
	eg.Go(func() error { return t.readLoop(conn, epoch) })
	eg.Go(func() error { return t.idleSupervisor(egCtx, conn, epoch, pendingEmpty, workArrived) })
	eg.Wait()
}

func (t *TCPExecutor) readLoop(conn net.Conn, epoch uint64) error {
	var buf []byte
	chunk := make([]byte, 4096)

	for {
		n, err := conn.Read(chunk)
		if n > 0 {
			buf = append(buf, chunk[:n]...)
		}
		if err != nil {
			if err == io.EOF {
				t.failConnection(epoch, errors.New("connection closed by peer"))
			} else {
				t.failConnection(epoch, err)
			}
			return err
		}

		for {
			if len(buf) < 2 {
				break
			}
			l := int(binary.BigEndian.Uint16(buf))
			if len(buf) < l+2 {
				break
			}
			frame := buf[2 : 2+l]
			buf = buf[2+l:]

			resp, perr := dnsmsg.Parse(frame)
			if perr != nil {
				// stream sync is lost: the length prefix we trusted no
				// longer lines up with real message boundaries.
				t.failConnection(epoch, perr)
				return perr
			}

			t.dispatch(resp)
		}
	}
}

func (t *TCPExecutor) dispatch(resp *dnsmsg.Message) {
	t.mu.Lock()
	p, ok := t.pending[resp.ID]
	if ok {
		delete(t.pending, resp.ID)
		t.notifyPendingEmptyLocked()
	}
	t.mu.Unlock()

	if !ok {
		// unknown ID: never sent, or cancelled already. Drop silently.
		return
	}
	p.deliver(resp, nil)
}

func (t *TCPExecutor) idleSupervisor(ctx context.Context, conn net.Conn, epoch uint64, pendingEmpty, workArrived <-chan struct{}) error {
	var timer *time.Timer
	var timerC <-chan time.Time

	stop := func() {
		if timer != nil {
			timer.Stop()
			timer = nil
			timerC = nil
		}
	}

	for {
		select {
		case <-pendingEmpty:
			stop()
			timer = time.NewTimer(idleTimeout)
			timerC = timer.C
		case <-workArrived:
			stop()
		case <-timerC:
			t.closeIdle(epoch)
			return nil
		case <-ctx.Done():
			stop()
			return ctx.Err()
		}
	}
}

func (t *TCPExecutor) closeIdle(epoch uint64) {
	t.mu.Lock()
	if epoch != t.epoch || t.state != tcpConnected || len(t.pending) != 0 {
		t.mu.Unlock()
		return
	}
	conn := t.conn
	t.conn = nil
	t.state = tcpDisconnected
	t.pendingEmpty = nil
	t.workArrived = nil
	t.mu.Unlock()

	if conn != nil {
		conn.Close()
	}
}

// failConnection tears down the connection for the given epoch and
// rejects every outstanding pending query with QueryFailed. Called from
// whichever goroutine first observes the failure; the epoch guard makes
// it safe to call more than once for the same failure.
func (t *TCPExecutor) failConnection(epoch uint64, cause error) {
	t.mu.Lock()
	if epoch != t.epoch {
		t.mu.Unlock()
		return
	}

	conn := t.conn
	failed := make([]*tcpPending, 0, len(t.pending))
	for id, p := range t.pending {
		failed = append(failed, p)
		delete(t.pending, id)
	}
	t.conn = nil
	t.state = tcpDisconnected
	t.pendingEmpty = nil
	t.workArrived = nil
	t.mu.Unlock()

	if conn != nil {
		conn.Close()
	}
	for _, p := range failed {
		p.deliver(nil, &QueryFailed{Op: "tcp connection to " + t.Addr.HostPort, Cause: cause})
	}
}

// Close tears down any active connection and rejects every outstanding
// query with "executor closed" (§4.3 destruction rule).
func (t *TCPExecutor) Close() error {
	t.mu.Lock()
	epoch := t.epoch
	t.epoch++ // invalidate any in-flight connect/reader/idle goroutines
	conn := t.conn
	queued := t.queue
	pending := make([]*tcpPending, 0, len(t.pending))
	for _, p := range t.pending {
		pending = append(pending, p)
	}
	t.queue = nil
	t.pending = make(map[uint16]*tcpPending)
	t.conn = nil
	t.state = tcpDisconnected
	if t.connectCancel != nil {
		t.connectCancel()
	}
	t.mu.Unlock()
	_ = epoch

	if conn != nil {
		conn.Close()
	}
	closed := &QueryFailed{Op: "tcp executor closed"}
	for _, p := range queued {
		p.deliver(nil, closed)
	}
	for _, p := range pending {
		p.deliver(nil, closed)
	}
	return nil
}

package resolver

import (
	"context"
	"encoding/binary"
	"io"
	"net"
	"testing"
	"time"

	"github.com/KarpelesLab/dnsresolver/dnsmsg"
)

func readFrame(t *testing.T, c net.Conn) (uint16, []byte) {
	t.Helper()
	var l uint16
	if err := binary.Read(c, binary.BigEndian, &l); err != nil {
		t.Fatalf("read length prefix: %s", err)
	}
	buf := make([]byte, l)
	if _, err := io.ReadFull(c, buf); err != nil {
		t.Fatalf("read frame body: %s", err)
	}
	msg, err := dnsmsg.Parse(buf)
	if err != nil {
		t.Fatalf("parse frame: %s", err)
	}
	return msg.ID, buf
}

func writeFrame(t *testing.T, c net.Conn, id uint16) {
	t.Helper()
	m, err := dnsmsg.NewQuery(dnsmsg.Question{Name: "example.com", Type: dnsmsg.A, Class: dnsmsg.IN})
	if err != nil {
		t.Fatalf("build response: %s", err)
	}
	m.ID = id
	m.Bits.SetResponse(true)
	raw, err := m.MarshalBinary()
	if err != nil {
		t.Fatalf("marshal response: %s", err)
	}
	framed := make([]byte, 2+len(raw))
	binary.BigEndian.PutUint16(framed, uint16(len(raw)))
	copy(framed[2:], raw)
	if _, err := c.Write(framed); err != nil {
		t.Fatalf("write response: %s", err)
	}
}

// TestTCPPipeliningOutOfOrder is scenario S7: three concurrent queries
// over one connection, answered in reverse order. The peer accepts a
// single connection and must read all three queries from it; every caller
// must get back a response carrying one of the issued transaction IDs.
func TestTCPPipeliningOutOfOrder(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %s", err)
	}
	defer ln.Close()

	connectCount := make(chan net.Conn, 1)
	go func() {
		c, err := ln.Accept()
		if err != nil {
			return
		}
		connectCount <- c
	}()

	addr, err := ParseNameserverAddr(ln.Addr().String())
	if err != nil {
		t.Fatalf("parse addr: %s", err)
	}
	tcp, err := NewTCPExecutor(addr)
	if err != nil {
		t.Fatalf("new tcp executor: %s", err)
	}
	defer tcp.Close()

	const n = 3
	results := make(chan *dnsmsg.Message, n)
	errsCh := make(chan error, n)
	for i := 0; i < n; i++ {
		go func() {
			msg, err := tcp.Exec(context.Background(), Query{Name: "example.com", Type: dnsmsg.A, Class: dnsmsg.IN})
			results <- msg
			errsCh <- err
		}()
	}

	var peer net.Conn
	select {
	case peer = <-connectCount:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for the connection")
	}
	defer peer.Close()

	ids := make([]uint16, 0, n)
	for i := 0; i < n; i++ {
		id, _ := readFrame(t, peer)
		ids = append(ids, id)
	}

	// respond in reverse order of receipt
	for i := n - 1; i >= 0; i-- {
		writeFrame(t, peer, ids[i])
	}

	for i := 0; i < n; i++ {
		if err := <-errsCh; err != nil {
			t.Fatalf("query %d: unexpected error %s", i, err)
		}
		msg := <-results
		found := false
		for _, id := range ids {
			if msg.ID == id {
				found = true
			}
		}
		if !found {
			t.Fatalf("response id %d did not match any issued query", msg.ID)
		}
	}
}

func TestTCPIdleCloseWithinBudget(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %s", err)
	}
	defer ln.Close()

	acceptedConn := make(chan net.Conn, 1)
	go func() {
		c, err := ln.Accept()
		if err != nil {
			return
		}
		acceptedConn <- c
	}()

	addr, err := ParseNameserverAddr(ln.Addr().String())
	if err != nil {
		t.Fatalf("parse addr: %s", err)
	}
	tcp, err := NewTCPExecutor(addr)
	if err != nil {
		t.Fatalf("new tcp executor: %s", err)
	}
	defer tcp.Close()

	done := make(chan struct{})
	go func() {
		tcp.Exec(context.Background(), Query{Name: "example.com", Type: dnsmsg.A, Class: dnsmsg.IN})
		close(done)
	}()

	var peer net.Conn
	select {
	case peer = <-acceptedConn:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for connection")
	}
	defer peer.Close()

	id, _ := readFrame(t, peer)
	writeFrame(t, peer, id)
	<-done

	// after the lone query settles, the connection should close on its
	// own within idleTimeout plus scheduling slack.
	peer.SetReadDeadline(time.Now().Add(idleTimeout + 200*time.Millisecond))
	buf := make([]byte, 1)
	_, err = peer.Read(buf)
	if err != io.EOF {
		t.Fatalf("expected io.EOF from idle closure, got %v", err)
	}
}

package singleinstance

import (
	"bufio"
	"context"
	"io"
	"net"
	"strconv"
	"time"
)

// DetectResidentPort returns the first port in range whose listener answers PING.
func DetectResidentPort(ctx context.Context, ports PortRange) (int, bool) {
	return detect(ctx, ports.normalize())
}

func detect(ctx context.Context, ports PortRange) (int, bool) {
	deadline := 300 * time.Millisecond
	if dl, ok := ctx.Deadline(); ok {
		if d := time.Until(dl); d > 0 && d < deadline {
			deadline = d
		}
	}
	for port := ports.Start; port <= ports.End; port++ {
		if ctx.Err() != nil {
			return 0, false
		}
		addr := net.JoinHostPort(residentHost, strconv.Itoa(port))
		if ping(addr, deadline) {
			return port, true
		}
	}
	return 0, false
}

func ping(addr string, timeout time.Duration) bool {
	conn, br, err := send(addr, pingRequest, timeout)
	if err != nil {
		return false
	}
	defer conn.Close()
	resp, err := br.ReadString('\n')
	return err == nil && resp == pongResponse
}

// send dials addr, writes one request line and returns the open connection
// with a reader positioned at the reply. The caller closes conn.
func send(addr, line string, timeout time.Duration) (net.Conn, *bufio.Reader, error) {
	conn, err := net.DialTimeout("tcp", addr, timeout)
	if err != nil {
		return nil, nil, err
	}
	_ = conn.SetDeadline(time.Now().Add(timeout))
	if _, err := io.WriteString(conn, line); err != nil {
		conn.Close()
		return nil, nil, err
	}
	return conn, bufio.NewReader(conn), nil
}

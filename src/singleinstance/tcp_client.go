package singleinstance

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"time"

	"ctrl-ai/src/ai"
)

type tcpClient struct {
	ports PortRange
}

func newTcpClient(ports PortRange) *tcpClient { return &tcpClient{ports: ports} }

// Trigger scans the range for a resident and asks it to run mode.
func (c *tcpClient) Trigger(ctx context.Context, mode ai.Mode) error {
	deadline := 2 * time.Second
	if dl, ok := ctx.Deadline(); ok {
		if d := time.Until(dl); d > 0 {
			deadline = d
		}
	}
	port, ok := detect(ctx, c.ports)
	if !ok {
		return ErrNoResident
	}

	addr := net.JoinHostPort(residentHost, strconv.Itoa(port))
	conn, br, err := send(addr, strings.ToUpper(mode.String())+"\n", deadline)
	if err != nil {
		return fmt.Errorf("send %s to resident: %w", mode, err)
	}
	defer conn.Close()

	status, err := br.ReadString('\n')
	if err != nil {
		return fmt.Errorf("read resident response: %w", err)
	}
	switch status {
	case okResponse:
		return nil
	case errorStatus:
		msg, _ := io.ReadAll(br)
		return errors.New(string(msg))
	default:
		return fmt.Errorf("unexpected resident response %q", status)
	}
}

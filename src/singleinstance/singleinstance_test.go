package singleinstance

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"
	"time"

	"ctrl-ai/src/ai"
)

func freePort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Skipf("loopback unavailable in this environment: %v", err)
	}
	port := l.Addr().(*net.TCPAddr).Port
	_ = l.Close()
	return port
}

func startServer(t *testing.T, ctx context.Context) (Server, PortRange) {
	t.Helper()
	port := freePort(t)
	ports := PortRange{Start: port, End: port}
	srv := NewServer(ports)
	if err := srv.Start(ctx); err != nil {
		t.Skipf("loopback unavailable in this environment: %v", err)
	}
	t.Cleanup(func() { _ = srv.Close() })
	return srv, ports
}

func TestServerClientRoundTrip(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	srv, ports := startServer(t, ctx)

	if p, ok := DetectResidentPort(ctx, ports); !ok || p != srv.Port() {
		t.Fatalf("DetectResidentPort = %d, %v; want %d", p, ok, srv.Port())
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- NewClient(ports).Trigger(ctx, ai.ModeExplain)
	}()

	conn, err := srv.Next(ctx)
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if got := conn.Request().Mode; got != ai.ModeExplain {
		t.Errorf("mode = %q, want explain", got)
	}
	if err := conn.RespondOK(); err != nil {
		t.Fatalf("respond: %v", err)
	}
	_ = conn.Close()

	if err := <-errCh; err != nil {
		t.Errorf("client: %v", err)
	}
}

func TestClientReceivesError(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	srv, ports := startServer(t, ctx)

	errCh := make(chan error, 1)
	go func() {
		errCh <- NewClient(ports).Trigger(ctx, ai.ModeCommander)
	}()

	conn, err := srv.Next(ctx)
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if got := conn.Request().Mode; got != ai.ModeCommander {
		t.Errorf("mode = %q, want commander", got)
	}
	_ = conn.RespondError("Busy, please retry")
	_ = conn.Close()

	err = <-errCh
	if err == nil || err.Error() != "Busy, please retry" {
		t.Errorf("expected busy error, got %v", err)
	}
}

func TestSecondServerFails(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	_, ports := startServer(t, ctx)

	second := NewServer(ports)
	if err := second.Start(ctx); err == nil {
		_ = second.Close()
		t.Fatal("expected second resident to fail binding")
	}
}

func TestNoResident(t *testing.T) {
	port := freePort(t)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	err := NewClient(PortRange{Start: port, End: port}).Trigger(ctx, ai.ModeCommander)
	if !errors.Is(err, ErrNoResident) {
		t.Errorf("expected ErrNoResident, got %v", err)
	}
}

func TestNextAfterClose(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	srv, _ := startServer(t, ctx)
	_ = srv.Close()

	if _, err := srv.Next(ctx); err == nil {
		t.Error("expected error from Next after Close")
	}
}

func TestPortRangeNormalize(t *testing.T) {
	tests := []struct {
		in, want PortRange
	}{
		{PortRange{}, PortRange{DefaultPortStart, DefaultPortEnd}},
		{PortRange{80, 90}, PortRange{1024, 1024}},
		{PortRange{50000, 49000}, PortRange{49000, 50000}},
		{PortRange{60000, 70000}, PortRange{60000, 65535}},
	}
	for _, tt := range tests {
		if got := tt.in.normalize(); got != tt.want {
			t.Errorf("%v.normalize() = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSilentClientDoesNotBlockOthers(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	srv, ports := startServer(t, ctx)

	silent, err := net.Dial("tcp", fmt.Sprintf("%s:%d", residentHost, srv.Port()))
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer silent.Close()

	start := time.Now()
	if !ping(fmt.Sprintf("%s:%d", residentHost, srv.Port()), time.Second) {
		t.Fatal("ping failed while another client held a connection open")
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- NewClient(ports).Trigger(ctx, ai.ModeExplain)
	}()
	conn, err := srv.Next(ctx)
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	_ = conn.RespondOK()
	_ = conn.Close()
	if err := <-errCh; err != nil {
		t.Errorf("client: %v", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("requests took %v behind a silent client", elapsed)
	}
}

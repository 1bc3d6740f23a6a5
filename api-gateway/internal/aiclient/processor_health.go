package aiclient

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ProcessorHealth probes the video processor's gRPC health service.
type ProcessorHealth struct {
	conn    *grpc.ClientConn
	client  healthpb.HealthClient
	Timeout time.Duration
}

// NewProcessorHealth creates the client; no connection is made until the
// first Check.
func NewProcessorHealth(serverAddr string) (*ProcessorHealth, error) {
	conn, err := grpc.NewClient(serverAddr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, err
	}
	return &ProcessorHealth{
		conn:    conn,
		client:  healthpb.NewHealthClient(conn),
		Timeout: 2 * time.Second,
	}, nil
}

// Check returns the serving status reported by the processor, e.g. "SERVING".
func (p *ProcessorHealth) Check(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.Timeout)
	defer cancel()

	resp, err := p.client.Check(ctx, &healthpb.HealthCheckRequest{})
	if err != nil {
		return "UNREACHABLE", err
	}
	return resp.GetStatus().String(), nil
}

// Close closes the gRPC connection.
func (p *ProcessorHealth) Close() error {
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

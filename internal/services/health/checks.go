package health

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/shirou/gopsutil/v3/disk"
)

// Pinger something with a connection to check
type Pinger interface {
	Ping(ctx context.Context) error
}

// Readiness something which knows if it is ready
type Readiness interface {
	IsReady(ctx context.Context) bool
}

// ReadyFunc a function as Readiness
type ReadyFunc func(ctx context.Context) bool

// IsReady calling the function
func (f ReadyFunc) IsReady(ctx context.Context) bool {
	return f(ctx)
}

// ReadyCheck checks the readiness, e.g. of the extractor
type ReadyCheck struct {
	CheckName string
	Ready     Readiness
}

// Name name of the check
func (c *ReadyCheck) Name() string {
	return c.CheckName
}

// Check error if not ready
func (c *ReadyCheck) Check(ctx context.Context) error {
	if !c.Ready.IsReady(ctx) {
		return errors.New("not ready")
	}
	return nil
}

// PingCheck checks a connection, e.g. of the database
type PingCheck struct {
	CheckName string
	Conn      Pinger
}

// Name name of the check
func (c *PingCheck) Name() string {
	return c.CheckName
}

// Check pinging the connection
func (c *PingCheck) Check(ctx context.Context) error {
	return c.Conn.Ping(ctx)
}

// DiskCheck checks the free space of the volume of a path
type DiskCheck struct {
	Path string
	// minimal free space in MB
	MinFree int
}

// Name name of the check
func (c *DiskCheck) Name() string {
	return "disk"
}

// Check error if the free space is below the minimum
func (c *DiskCheck) Check(_ context.Context) error {
	if err := os.MkdirAll(c.Path, os.ModePerm); err != nil {
		return err
	}
	du, err := disk.Usage(c.Path)
	if err != nil {
		return err
	}
	free := du.Free / (1024 * 1024)
	if free < uint64(c.MinFree) {
		return fmt.Errorf("only %d MB free on %s", free, c.Path)
	}
	return nil
}

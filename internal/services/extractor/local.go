package extractor

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/pkg/errors"
	"github.com/willie68/GoTikaMeta/internal/dao/interfaces"
)

// Local runs the tika app jar as a local process
type Local struct {
	java string
	path string
	deps []string
}

// NewLocal creates a new local backend
func NewLocal(cfg Config) *Local {
	cfg = cfg.withDefaults()
	return &Local{
		java: cfg.JavaPath,
		path: cfg.TikaPath,
		deps: cfg.Dependencies,
	}
}

// IsReady checks the path of the jar, the dependencies and finally calls the jar with --help
func (l *Local) IsReady(ctx context.Context) bool {
	if l.path == "" {
		return false
	}
	if len(missing(l.deps)) > 0 {
		return false
	}
	if _, err := os.Stat(l.path); err != nil {
		return false
	}
	out, err := l.run(ctx, "--help")
	if err != nil {
		log.Debugf("tika help probe failed: %v", err)
		return false
	}
	return strings.TrimSpace(out) != ""
}

// Run runs one tika invocation with all options on the content of the stream,
// an empty output is no result
func (l *Local) Run(ctx context.Context, stream interfaces.ResourceStream, opts []Option) (string, error) {
	path := stream.LocalPath()
	if path == "" {
		tmp, err := spool(stream)
		if err != nil {
			return "", err
		}
		defer os.Remove(tmp)
		path = tmp
	}
	args := make([]string, 0, len(opts)+1)
	for _, o := range opts {
		args = append(args, string(o))
	}
	args = append(args, path)
	return l.run(ctx, args...)
}

func (l *Local) run(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, l.java, append([]string{"-jar", l.path}, args...)...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		if ctx.Err() != nil {
			return "", errors.Wrap(ctx.Err(), "tika process")
		}
		return "", errors.Wrapf(err, "tika process: %s", strings.TrimSpace(stderr.String()))
	}
	return string(out), nil
}

// spool writes the stream into a temporary file, returning the file name
func spool(r io.Reader) (string, error) {
	f, err := os.CreateTemp("", "tika-*")
	if err != nil {
		return "", err
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}

// missing returns all commands not found in the path
func missing(deps []string) []string {
	m := make([]string, 0)
	for _, d := range deps {
		if _, err := exec.LookPath(d); err != nil {
			m = append(m, d)
		}
	}
	return m
}

package audio

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sync"

	"go.uber.org/zap"
)

// DefaultCommand plays a file once without a window.
var DefaultCommand = []string{"ffplay", "-nodisp", "-autoexit", "-loglevel", "quiet"}

// Process is a running playback.
type Process interface {
	// Stop terminates playback.
	Stop() error
	// Done is closed when playback ends on its own or after Stop.
	Done() <-chan struct{}
}

// Runner starts playback processes.
type Runner interface {
	Start(ctx context.Context, name string, args ...string) (Process, error)
}

// Resolver maps a key to a playable file path.
type Resolver interface {
	Resolve(ctx context.Context, key string) (string, error)
}

// ExecPlayer plays files with an external command such as ffplay or afplay.
type ExecPlayer struct {
	resolver Resolver
	runner   Runner
	command  []string
	logger   *zap.Logger

	mu      sync.Mutex
	current Process
}

// ExecOption configures an ExecPlayer.
type ExecOption func(*ExecPlayer)

// WithCommand sets the player command; the file path is appended as the
// last argument.
func WithCommand(argv []string) ExecOption {
	return func(p *ExecPlayer) {
		if len(argv) > 0 {
			p.command = argv
		}
	}
}

// WithRunner overrides how processes are started.
func WithRunner(r Runner) ExecOption {
	return func(p *ExecPlayer) { p.runner = r }
}

// WithLogger sets the player's logger.
func WithLogger(l *zap.Logger) ExecOption {
	return func(p *ExecPlayer) {
		if l != nil {
			p.logger = l
		}
	}
}

// NewExecPlayer returns a player resolving keys through resolver.
func NewExecPlayer(resolver Resolver, opts ...ExecOption) *ExecPlayer {
	p := &ExecPlayer{
		resolver: resolver,
		runner:   execRunner{},
		command:  DefaultCommand,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *ExecPlayer) Play(ctx context.Context, key string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.releaseLocked(); err != nil {
		return err
	}

	path, err := p.resolver.Resolve(ctx, key)
	if err != nil {
		return fmt.Errorf("resolve %q: %w", key, err)
	}

	args := append(append([]string{}, p.command[1:]...), path)
	proc, err := p.runner.Start(context.WithoutCancel(ctx), p.command[0], args...)
	if err != nil {
		return fmt.Errorf("start %s: %w", p.command[0], err)
	}
	p.current = proc
	p.logger.Debug("audio playing", zap.String("key", key), zap.String("path", path))

	go func() {
		<-proc.Done()
		p.mu.Lock()
		if p.current == proc {
			p.current = nil
		}
		p.mu.Unlock()
	}()
	return nil
}

func (p *ExecPlayer) Release(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.releaseLocked()
}

// Playing reports whether a sound is loaded.
func (p *ExecPlayer) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current != nil
}

func (p *ExecPlayer) releaseLocked() error {
	if p.current == nil {
		return nil
	}
	proc := p.current
	p.current = nil
	if err := proc.Stop(); err != nil {
		return fmt.Errorf("stop playback: %w", err)
	}
	return nil
}

// execRunner starts real OS processes.
type execRunner struct{}

func (execRunner) Start(ctx context.Context, name string, args ...string) (Process, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	if err := cmd.Start(); err != nil {
		return nil, err
	}
	proc := &execProcess{cmd: cmd, done: make(chan struct{})}
	go func() {
		_ = cmd.Wait()
		close(proc.done)
	}()
	return proc, nil
}

type execProcess struct {
	cmd  *exec.Cmd
	done chan struct{}
}

func (e *execProcess) Stop() error {
	select {
	case <-e.done:
		return nil
	default:
	}
	if err := e.cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return err
	}
	<-e.done
	return nil
}

func (e *execProcess) Done() <-chan struct{} {
	return e.done
}

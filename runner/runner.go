// Package runner owns the PTY side of a wrapped CLI: it spawns the
// child process, pumps its output into a terminal, and writes probe
// responses back so clients that poll the terminal (Codex polls DSR)
// keep working.
package runner

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"sync"

	"github.com/creack/pty"

	actcliterm "github.com/llm-case-studies/go-actcli-term"
)

// Runner wraps one child process under a PTY and one terminal.
//
// The terminal itself takes no locks; Runner serializes all access with
// its own mutex, so Snapshot and Resize are safe to call from a UI
// goroutine while the read loop is feeding.
type Runner struct {
	command []string

	cmd   *exec.Cmd
	ptmx  *os.File
	term  *actcliterm.Terminal
	queue *actcliterm.ResponseQueue

	mu   sync.Mutex
	stop chan struct{}
	done chan struct{}

	// OnUpdate, if set, is called after each chunk of output is applied.
	// Called from the read goroutine; keep it cheap.
	OnUpdate func()
}

// New creates a runner for the given command line. Terminal options are
// passed through; the runner installs its own response queue.
func New(command []string, opts ...actcliterm.Option) *Runner {
	queue := actcliterm.NewResponseQueue(64)
	opts = append(opts, actcliterm.WithResponse(queue))

	return &Runner{
		command: command,
		term:    actcliterm.New(opts...),
		queue:   queue,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// Start spawns the child under a PTY sized rows x cols and begins the
// read loop.
func (r *Runner) Start(rows, cols int) error {
	if len(r.command) == 0 {
		return fmt.Errorf("runner: empty command")
	}

	r.cmd = exec.Command(r.command[0], r.command[1:]...)
	r.cmd.Env = append(os.Environ(), "TERM=xterm-256color")

	ptmx, err := pty.StartWithSize(r.cmd, &pty.Winsize{
		Rows: uint16(rows),
		Cols: uint16(cols),
	})
	if err != nil {
		return fmt.Errorf("runner: start %q: %w", r.command[0], err)
	}
	r.ptmx = ptmx

	r.mu.Lock()
	r.term.Resize(rows, cols)
	r.mu.Unlock()

	go r.readLoop()
	return nil
}

// readLoop alternates between reading the PTY and feeding the terminal,
// the canonical single-threaded embedding.
func (r *Runner) readLoop() {
	defer close(r.done)

	buf := make([]byte, 4096)
	for {
		select {
		case <-r.stop:
			return
		default:
		}

		n, err := r.ptmx.Read(buf)
		if n > 0 {
			r.mu.Lock()
			r.term.Write(buf[:n])
			r.mu.Unlock()

			r.flushResponses()

			if r.OnUpdate != nil {
				r.OnUpdate()
			}
		}
		if err != nil {
			// EIO is the normal end: the child closed its side.
			return
		}
	}
}

// flushResponses writes pending probe responses back to the PTY,
// verbatim and in order.
func (r *Runner) flushResponses() {
	for {
		resp := r.queue.Next()
		if resp == nil {
			return
		}
		if _, err := r.ptmx.Write(resp); err != nil {
			log.Printf("runner: response write: %v", err)
			return
		}
	}
}

// SendText writes user input to the child.
func (r *Runner) SendText(s string) error {
	if r.ptmx == nil {
		return fmt.Errorf("runner: not started")
	}
	_, err := r.ptmx.WriteString(s)
	return err
}

// Resize propagates a new size to both the PTY and the terminal.
func (r *Runner) Resize(rows, cols int) error {
	r.mu.Lock()
	r.term.Resize(rows, cols)
	r.mu.Unlock()

	if r.ptmx == nil {
		return nil
	}
	return pty.Setsize(r.ptmx, &pty.Winsize{
		Rows: uint16(rows),
		Cols: uint16(cols),
	})
}

// Snapshot returns a frame of the wrapped terminal.
func (r *Runner) Snapshot(detail actcliterm.SnapshotDetail) *actcliterm.Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.term.Snapshot(detail)
}

// Generation returns the terminal's mutation counter, for cheap redraw
// checks.
func (r *Runner) Generation() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.term.Generation()
}

// Metrics returns the terminal's diagnostic counters.
func (r *Runner) Metrics() actcliterm.Metrics {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.term.Metrics()
}

// Title returns the wrapped application's window title.
func (r *Runner) Title() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.term.Title()
}

// Stop terminates the child and waits for the read loop to exit.
func (r *Runner) Stop() {
	select {
	case <-r.stop:
	default:
		close(r.stop)
	}

	if r.ptmx == nil {
		return
	}
	r.ptmx.Close()
	if r.cmd != nil && r.cmd.Process != nil {
		r.cmd.Process.Kill()
		r.cmd.Wait()
	}
	<-r.done
}

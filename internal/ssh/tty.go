// Package ssh adapts gliderlabs SSH sessions into tcell screens so the game
// can be played over a remote terminal.
package ssh

import (
	"sync"

	"github.com/gdamore/tcell/v2"
	gossh "github.com/gliderlabs/ssh"
)

// Tty implements tcell.Tty on top of an SSH channel. The first window size
// comes from the PTY request; later ones arrive on the window-change channel.
type Tty struct {
	session gossh.Session

	mu       sync.Mutex
	window   gossh.Window
	onResize func()

	watch sync.Once
	winCh <-chan gossh.Window
}

// NewTty wraps s. pty holds the initial window size; winCh delivers resizes.
func NewTty(s gossh.Session, pty gossh.Pty, winCh <-chan gossh.Window) *Tty {
	return &Tty{session: s, window: pty.Window, winCh: winCh}
}

func (t *Tty) Read(b []byte) (int, error)  { return t.session.Read(b) }
func (t *Tty) Write(b []byte) (int, error) { return t.session.Write(b) }

// Close closes the SSH channel.
func (t *Tty) Close() error { return t.session.Close() }

// Start, Stop and Drain are no-ops: the channel is already open and
// writes go straight to the client.
func (t *Tty) Start() error { return nil }
func (t *Tty) Stop() error  { return nil }
func (t *Tty) Drain() error { return nil }

// WindowSize returns the current terminal dimensions.
func (t *Tty) WindowSize() (tcell.WindowSize, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return tcell.WindowSize{Width: t.window.Width, Height: t.window.Height}, nil
}

// NotifyResize registers cb for window changes. tcell calls it again with
// nil on shutdown, so only the callback is swapped; the channel is drained
// by a single goroutine for the life of the session.
func (t *Tty) NotifyResize(cb func()) {
	t.mu.Lock()
	t.onResize = cb
	t.mu.Unlock()

	t.watch.Do(func() {
		go func() {
			for win := range t.winCh {
				t.resize(win)
			}
		}()
	})
}

func (t *Tty) resize(win gossh.Window) {
	t.mu.Lock()
	t.window = win
	cb := t.onResize
	t.mu.Unlock()
	if cb != nil {
		cb()
	}
}

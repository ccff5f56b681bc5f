package ssh

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/gdamore/tcell/v2"
	"github.com/gdamore/tcell/v2/terminfo"
	gossh "github.com/gliderlabs/ssh"
)

// DefaultTerm is used when the client sends no TERM or one we don't trust.
const DefaultTerm = "xterm-256color"

// maxNameBytes bounds a sanitized user name.
const maxNameBytes = 16

// ErrNoPTY means the client connected without requesting a terminal.
var ErrNoPTY = errors.New("a PTY is required; connect with ssh -t")

// AllowedTerms lists the terminal types clients may select. Anything else
// falls back to DefaultTerm.
var AllowedTerms = map[string]bool{
	"xterm":                 true,
	"xterm-256color":        true,
	"screen":                true,
	"screen-256color":       true,
	"tmux":                  true,
	"tmux-256color":         true,
	"linux":                 true,
	"vt100":                 true,
	"rxvt-unicode-256color": true,
}

// SessionTerm picks the client's TERM from its environment, restricted to
// AllowedTerms.
func SessionTerm(environ []string) string {
	for _, kv := range environ {
		if term, ok := strings.CutPrefix(kv, "TERM="); ok {
			if AllowedTerms[term] {
				return term
			}
			break
		}
	}
	return DefaultTerm
}

// NewScreen builds and initializes a tcell screen backed by s.
func NewScreen(s gossh.Session) (tcell.Screen, error) {
	pty, winCh, ok := s.Pty()
	if !ok {
		return nil, ErrNoPTY
	}
	term := pty.Term
	if !AllowedTerms[term] {
		term = SessionTerm(s.Environ())
	}
	ti, err := terminfo.LookupTerminfo(term)
	if err != nil {
		return nil, fmt.Errorf("terminfo %s: %w", term, err)
	}
	screen, err := tcell.NewTerminfoScreenFromTtyTerminfo(NewTty(s, pty, winCh), ti)
	if err != nil {
		return nil, fmt.Errorf("terminal setup: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("screen init: %w", err)
	}
	return screen, nil
}

// SanitizeName strips control characters from an SSH user name and bounds
// it to maxNameBytes without splitting a rune.
func SanitizeName(name string) string {
	var b strings.Builder
	for _, r := range name {
		if unicode.IsControl(r) || r == unicode.ReplacementChar {
			continue
		}
		if b.Len()+len(string(r)) > maxNameBytes {
			break
		}
		b.WriteRune(r)
	}
	return b.String()
}

package ssh

import (
	"testing"
	"time"

	gossh "github.com/gliderlabs/ssh"
)

func TestSanitizeName(t *testing.T) {
	cases := []struct {
		name   string
		input  string
		expect string
	}{
		{"normal short name", "Alice", "Alice"},
		{"exactly 16 chars", "1234567890123456", "1234567890123456"},
		{"long name truncated", "ThisIsAVeryLongUsername", "ThisIsAVeryLongU"},
		{"control chars stripped", "he\x00ll\x1bo", "hello"},
		{"ansi escape partial", "he\x1b[31mllo", "he[31mllo"},
		{"empty input", "", ""},
		{"pure control chars", "\x00\x01\x02\x1b", ""},
		{"multi-byte runes not split", "日本語のテスト名前", "日本語のテ"},
		{"tabs stripped", "hello\tworld", "helloworld"},
		{"invalid utf-8 dropped", "ab\xffcd", "abcd"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := SanitizeName(tc.input); got != tc.expect {
				t.Errorf("SanitizeName(%q) = %q, want %q", tc.input, got, tc.expect)
			}
		})
	}
}

func TestSessionTerm(t *testing.T) {
	cases := []struct {
		name    string
		environ []string
		want    string
	}{
		{"allowed", []string{"LANG=C", "TERM=tmux"}, "tmux"},
		{"unknown falls back", []string{"TERM=evil-term"}, DefaultTerm},
		{"path traversal", []string{"TERM=../../../etc/passwd"}, DefaultTerm},
		{"missing", []string{"LANG=C"}, DefaultTerm},
		{"empty", []string{"TERM="}, DefaultTerm},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := SessionTerm(tc.environ); got != tc.want {
				t.Errorf("SessionTerm = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestTtyResize(t *testing.T) {
	winCh := make(chan gossh.Window, 1)
	tty := NewTty(nil, gossh.Pty{Window: gossh.Window{Width: 80, Height: 24}}, winCh)

	ws, err := tty.WindowSize()
	if err != nil || ws.Width != 80 || ws.Height != 24 {
		t.Fatalf("initial size = %+v, %v", ws, err)
	}

	called := make(chan struct{}, 4)
	tty.NotifyResize(func() { called <- struct{}{} })
	// A second registration swaps the callback without a second reader.
	tty.NotifyResize(func() { called <- struct{}{} })

	winCh <- gossh.Window{Width: 120, Height: 40}
	select {
	case <-called:
	case <-time.After(2 * time.Second):
		t.Fatal("resize callback not invoked")
	}
	ws, _ = tty.WindowSize()
	if ws.Width != 120 || ws.Height != 40 {
		t.Errorf("size after resize = %+v", ws)
	}

	tty.NotifyResize(nil)
	close(winCh)
}

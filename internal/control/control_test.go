package control

import (
	"bufio"
	"net"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	tests := []struct {
		line    string
		want    Command
		wantErr bool
	}{
		{"left", Command{Kind: Prev}, false},
		{"PREV", Command{Kind: Prev}, false},
		{" next \r", Command{Kind: Next}, false},
		{"right", Command{Kind: Next}, false},
		{"tab", Command{Kind: ToggleCalibration}, false},
		{"calibrate", Command{Kind: ToggleCalibration}, false},
		{"f", Command{Kind: ToggleFPS}, false},
		{"save", Command{Kind: Save}, false},
		{"l", Command{Kind: Load}, false},
		{"exit", Command{Kind: Quit}, false},
		{"effect 12", Command{Kind: SelectEffect, Effect: 12}, false},
		{"Effect  3", Command{Kind: SelectEffect, Effect: 3}, false},
		{"7", Command{Kind: SelectEffect, Effect: 7}, false},
		{"effect", Command{}, true},
		{"-1", Command{}, true},
		{"dance", Command{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := Parse(tt.line)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("Parse(%q) = %v, want %v", tt.line, got, tt.want)
			}
		})
	}
}

func TestQueueDropsOldest(t *testing.T) {
	q := NewQueue(3)
	for i := range 5 {
		q.Push(Command{Kind: SelectEffect, Effect: i})
	}
	if q.Len() != 3 || q.Dropped() != 2 {
		t.Fatalf("len %d, dropped %d", q.Len(), q.Dropped())
	}
	got := q.Drain(nil)
	for i, c := range got {
		if c.Effect != i+2 {
			t.Errorf("got[%d] = %v, want effect %d", i, c, i+2)
		}
	}
	if q.Len() != 0 || len(q.Drain(nil)) != 0 {
		t.Error("queue not empty after drain")
	}

	q.Push(Command{Kind: Quit})
	if got := q.Drain(nil); len(got) != 1 || got[0].Kind != Quit {
		t.Errorf("after wrap = %v", got)
	}
}

func TestHandleReplies(t *testing.T) {
	q := NewQueue(8)
	var out strings.Builder
	Handle(strings.NewReader("next\n\nbogus\neffect 4\n"), &out, q)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("replies = %q", lines)
	}
	if lines[0] != "ok" || !strings.HasPrefix(lines[1], "error: ") || lines[2] != "ok" {
		t.Errorf("replies = %q", lines)
	}
	cmds := q.Drain(nil)
	if len(cmds) != 2 || cmds[0].Kind != Next || cmds[1] != (Command{Kind: SelectEffect, Effect: 4}) {
		t.Errorf("queued = %v", cmds)
	}
}

func TestServerRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ctl.sock")
	q := NewQueue(4)
	s, err := Listen(path, q)
	if err != nil {
		t.Fatalf("Listen: %v", err)
	}
	go s.Serve()
	defer s.Close()

	conn, err := net.Dial("unix", path)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer conn.Close()
	conn.SetDeadline(time.Now().Add(5 * time.Second))

	if _, err := conn.Write([]byte("fps\n")); err != nil {
		t.Fatalf("write: %v", err)
	}
	reply, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if reply != "ok\n" {
		t.Errorf("reply = %q", reply)
	}
	if got := q.Drain(nil); len(got) != 1 || got[0].Kind != ToggleFPS {
		t.Errorf("queued = %v", got)
	}
}

package present

import (
	"errors"
	"fmt"
	"image"
	"io"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/gliderlabs/ssh"
)

// previewInterval caps how often a viewer is redrawn.
const previewInterval = time.Second / 15

type frame struct {
	pix  []byte
	w, h int
}

// SSHView serves a read-only, half-block preview of the wall to anyone who
// connects with an SSH client. Slow viewers miss frames rather than holding
// up the frame loop.
type SSHView struct {
	srv  *ssh.Server
	addr string

	mu      sync.Mutex
	viewers map[int]chan frame
	nextID  int
}

// NewSSHView prepares a server on addr. hostKey is a PEM private key file;
// when empty an ephemeral key is generated on start.
func NewSSHView(addr, hostKey string) (*SSHView, error) {
	v := &SSHView{addr: addr, viewers: make(map[int]chan frame)}
	v.srv = &ssh.Server{
		Addr:    addr,
		Handler: v.handleSession,
	}
	if hostKey != "" {
		if err := v.srv.SetOption(ssh.HostKeyFile(hostKey)); err != nil {
			return nil, fmt.Errorf("present: ssh host key %s: %w", hostKey, err)
		}
	}
	return v, nil
}

// Serve listens until Close.
func (v *SSHView) Serve() error {
	log.Printf("present: ssh preview listening on %s", v.addr)
	err := v.srv.ListenAndServe()
	if errors.Is(err, ssh.ErrServerClosed) {
		return nil
	}
	return err
}

func (v *SSHView) Close() error { return v.srv.Close() }

// Viewers reports how many sessions are attached.
func (v *SSHView) Viewers() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.viewers)
}

func (v *SSHView) attach() (int, <-chan frame) {
	v.mu.Lock()
	defer v.mu.Unlock()
	id := v.nextID
	v.nextID++
	ch := make(chan frame, 1)
	v.viewers[id] = ch
	return id, ch
}

func (v *SSHView) detach(id int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	delete(v.viewers, id)
}

// Broadcast offers a copy of the frame to every viewer. A viewer still busy
// with the previous frame skips this one.
func (v *SSHView) Broadcast(pix []byte, w, h int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if len(v.viewers) == 0 || len(pix) < w*h*4 {
		return
	}
	f := frame{pix: append([]byte(nil), pix[:w*h*4]...), w: w, h: h}
	for _, ch := range v.viewers {
		select {
		case ch <- f:
		default:
		}
	}
}

func (v *SSHView) handleSession(sess ssh.Session) {
	ptyReq, winCh, ok := sess.Pty()
	if !ok {
		fmt.Fprintln(sess, "Error: PTY required. Use: ssh -t ...")
		return
	}
	id, frames := v.attach()
	log.Printf("present: ssh viewer %s connected", sess.RemoteAddr())
	defer func() {
		v.detach(id)
		log.Printf("present: ssh viewer %s disconnected", sess.RemoteAddr())
	}()

	var termMu sync.Mutex
	cols, rows := ptyReq.Window.Width, ptyReq.Window.Height

	io.WriteString(sess, "\x1b[?1049h\x1b[?25l\x1b[2J")
	defer io.WriteString(sess, "\x1b[0m\x1b[?25h\x1b[?1049l")

	quit := make(chan struct{})
	go func() {
		defer close(quit)
		buf := make([]byte, 64)
		for {
			n, err := sess.Read(buf)
			if err != nil {
				return
			}
			for _, b := range buf[:n] {
				if b == 'q' || b == 'Q' || b == 3 {
					return
				}
			}
		}
	}()
	go func() {
		for win := range winCh {
			termMu.Lock()
			cols, rows = win.Width, win.Height
			termMu.Unlock()
		}
	}()

	var scaled *image.NRGBA
	var sb strings.Builder
	var last time.Time
	for {
		select {
		case <-quit:
			return
		case <-sess.Context().Done():
			return
		case f := <-frames:
			if time.Since(last) < previewInterval {
				continue
			}
			last = time.Now()
			termMu.Lock()
			c, r := cols, rows
			termMu.Unlock()
			if c <= 0 || r <= 0 {
				continue
			}
			scaled = downsample(f.pix, f.w, f.h, c, r, scaled)
			sb.Reset()
			writeANSI(&sb, scaled)
			if _, err := io.WriteString(sess, sb.String()); err != nil {
				return
			}
		}
	}
}

// Mirror presents every frame to p and also broadcasts it to view.
func Mirror(p Presenter, view *SSHView) Presenter {
	return &mirror{Presenter: p, view: view}
}

type mirror struct {
	Presenter
	view *SSHView
}

func (m *mirror) Present(pix []byte, w, h int) error {
	m.view.Broadcast(pix, w, h)
	return m.Presenter.Present(pix, w, h)
}

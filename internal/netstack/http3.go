// Package netstack serves symbol lookups over HTTP/3.
package netstack

import (
	"crypto/tls"
	"net"
	"net/http"
	"time"

	http3 "github.com/quic-go/quic-go/http3"
)

// HTTP3Server wraps http3.Server lifecycle.
type HTTP3Server struct {
	srv  *http3.Server
	pc   net.PacketConn
	addr string
	done chan struct{}
}

// NewHTTP3Server creates a server bound to addr with given TLS config and handler.
func NewHTTP3Server(addr string, tlsCfg *tls.Config, h http.Handler) *HTTP3Server {
	s := &http3.Server{Addr: addr, TLSConfig: tlsCfg, Handler: h}
	return &HTTP3Server{srv: s, addr: addr}
}

// Start listens on addr and serves in the background. It returns the bound
// address, which differs from addr when addr ends with ":0".
func (s *HTTP3Server) Start() (string, error) {
	pc, err := net.ListenPacket("udp", s.addr)
	if err != nil {
		return "", err
	}
	s.pc = pc
	s.done = make(chan struct{})
	go func() {
		_ = s.srv.Serve(pc)
		close(s.done)
	}()
	return pc.LocalAddr().String(), nil
}

// Stop closes the listener and waits up to a second for Serve to return.
func (s *HTTP3Server) Stop() error {
	if s.pc == nil {
		return nil
	}
	_ = s.srv.Close()
	err := s.pc.Close()
	select {
	case <-s.done:
	case <-time.After(time.Second):
	}
	s.pc = nil
	return err
}

// HTTP3Client returns an http.Client using HTTP/3 round tripper with given TLS config.
func HTTP3Client(tlsCfg *tls.Config, timeout time.Duration) *http.Client {
	tr := &http3.Transport{TLSClientConfig: tlsCfg}
	return &http.Client{Transport: tr, Timeout: timeout}
}

// ShutdownHTTP3 closes the client's HTTP/3 transport, if it has one.
func ShutdownHTTP3(c *http.Client) {
	if tr, ok := c.Transport.(*http3.Transport); ok {
		_ = tr.Close()
	}
}

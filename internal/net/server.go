package net

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"sync"

	"go.uber.org/zap"
)

// Server hosts battles for TCP clients. Every connection plays its own
// battle against the shared service.
type Server struct {
	Handler *Handler
	Addr    string
	Logger  *zap.Logger

	// Local also plays a battle from this terminal with the given start
	// message. The server stops when the local player quits.
	Local      bool
	LocalStart ClientMessage
}

// Run listens on Addr and serves connections until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	logger := s.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	logger.Info("listening", zap.String("addr", ln.Addr().String()))

	errCh := make(chan error, 1)
	if s.Local {
		go func() {
			errCh <- RunLocal(ctx, s.Handler, s.LocalStart, os.Stdin, os.Stdout)
			cancel()
		}()
	}

	var wg sync.WaitGroup
	defer wg.Wait()
	for {
		c, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				break
			}
			return fmt.Errorf("accept: %w", err)
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer c.Close()
			remote := c.RemoteAddr().String()
			logger.Info("player connected", zap.String("remote", remote))
			if err := s.Handler.Serve(ctx, c); err != nil && !errors.Is(err, context.Canceled) {
				logger.Warn("connection ended", zap.String("remote", remote), zap.Error(err))
			}
		}()
	}

	if s.Local {
		return <-errCh
	}
	return nil
}

// RunLocal plays a battle against h over an in-process pipe, reading
// commands from in and drawing the table to out.
func RunLocal(ctx context.Context, h *Handler, start ClientMessage, in io.Reader, out io.Writer) error {
	clientConn, serverConn := net.Pipe()
	defer clientConn.Close()

	done := make(chan error, 1)
	go func() {
		defer serverConn.Close()
		done <- h.Serve(ctx, serverConn)
	}()

	err := NewClient(clientConn, in, out).Run(ctx, start)
	clientConn.Close()
	if serveErr := <-done; err == nil && serveErr != nil && !errors.Is(serveErr, io.ErrClosedPipe) {
		err = serveErr
	}
	return err
}

// Package server implements the newline-delimited TCP protocol in front of
// the validation components. One command per line, responses prefixed with
// OK or ERR.
package server

import (
	"bufio"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/veridian-dev/veridian/internal/account"
	"github.com/veridian-dev/veridian/pkg/normalize"
	"github.com/veridian-dev/veridian/pkg/validate"
)

const maxConcurrentConns = 100

// Router serves the line protocol over TCP, optionally wrapped in TLS.
type Router struct {
	emails    *validate.EmailValidator
	passwords validate.PasswordPolicy
	records   *normalize.Normalizer
	accounts  *account.Service
	cert      *tls.Certificate

	mu       sync.Mutex
	listener net.Listener
	closed   bool
}

// NewRouter wires a protocol router over the given components.
func NewRouter(emails *validate.EmailValidator, passwords validate.PasswordPolicy, records *normalize.Normalizer, accounts *account.Service) *Router {
	return &Router{
		emails:    emails,
		passwords: passwords,
		records:   records,
		accounts:  accounts,
	}
}

// SetCertificate enables TLS on the listener.
func (r *Router) SetCertificate(cert tls.Certificate) {
	r.cert = &cert
}

// Listen starts accepting connections on the given port. It blocks until
// Stop is called or the listener fails.
func (r *Router) Listen(port string) error {
	var listener net.Listener
	var err error

	if r.cert != nil {
		config := &tls.Config{Certificates: []tls.Certificate{*r.cert}}
		listener, err = tls.Listen("tcp", ":"+port, config)
	} else {
		listener, err = net.Listen("tcp", ":"+port)
	}
	if err != nil {
		return err
	}

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		listener.Close()
		return nil
	}
	r.listener = listener
	r.mu.Unlock()

	defer listener.Close()

	semaphore := make(chan struct{}, maxConcurrentConns)

	for {
		conn, err := listener.Accept()
		if err != nil {
			r.mu.Lock()
			closed := r.closed
			r.mu.Unlock()
			if closed {
				return nil
			}
			continue
		}

		// Idle connections may not be held open indefinitely.
		conn.SetDeadline(time.Now().Add(5 * time.Minute))

		go func(c net.Conn) {
			semaphore <- struct{}{}
			defer func() {
				<-semaphore
				c.Close()
			}()
			r.handleConnection(c)
		}(conn)
	}
}

// Addr returns the listener address, or nil before Listen has bound.
func (r *Router) Addr() net.Addr {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listener == nil {
		return nil
	}
	return r.listener.Addr()
}

// Stop closes the listener and causes Listen to return.
func (r *Router) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	if r.listener != nil {
		r.listener.Close()
	}
}

func (r *Router) handleConnection(conn net.Conn) {
	reader := bufio.NewReader(conn)

	for {
		conn.SetReadDeadline(time.Now().Add(30 * time.Second))

		line, err := reader.ReadString('\n')
		if err != nil {
			return
		}

		line = strings.TrimSpace(line)
		command, rest, _ := strings.Cut(line, " ")
		if command == "" {
			continue
		}

		switch strings.ToUpper(command) {
		case "EMAIL":
			// An empty argument is still an answerable question: every
			// EMAIL command gets a verdict, matching the in-process
			// validator.
			writeJSON(conn, r.emails.Validate(rest))

		case "PASSWORD":
			// The rest of the line is the password verbatim, spaces included.
			writeJSON(conn, r.passwords.Assess(rest))

		case "NORMALIZE":
			if rest == "" {
				continue
			}
			var items []any
			if err := json.Unmarshal([]byte(rest), &items); err != nil {
				fmt.Fprintln(conn, "ERR invalid json value")
				continue
			}
			writeJSON(conn, r.records.Normalize(items))

		case "REGISTER":
			if rest == "" {
				continue
			}
			var input struct {
				Name  string `json:"name"`
				Email string `json:"email"`
				Age   int    `json:"age"`
			}
			if err := json.Unmarshal([]byte(rest), &input); err != nil {
				fmt.Fprintln(conn, "ERR invalid json value")
				continue
			}
			user, err := r.accounts.Register(input.Name, input.Email, input.Age)
			if err != nil {
				fmt.Fprintln(conn, "ERR", err)
				continue
			}
			writeJSON(conn, user)

		case "PING":
			fmt.Fprintln(conn, "PONG")

		case "QUIT":
			return
		}
	}
}

func writeJSON(conn net.Conn, v any) {
	res, err := json.Marshal(v)
	if err != nil {
		fmt.Fprintln(conn, "ERR internal error")
		return
	}
	fmt.Fprintln(conn, "OK", string(res))
}

// Package sdk provides the client-side library for the Veridian service.
// It supports remote connections via TCP/TLS and a local in-process mode.
package sdk

import (
	"bufio"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/veridian-dev/veridian/pkg/normalize"
	"github.com/veridian-dev/veridian/pkg/schema"
	"github.com/veridian-dev/veridian/pkg/validate"
)

// Client is a remote client speaking the Veridian line protocol.
// It implements the Veridian interface.
type Client struct {
	addr   string
	conn   net.Conn
	reader *bufio.Reader
	mu     sync.Mutex // Protects concurrent access to the connection
}

// Connect establishes a TLS-encrypted connection to a remote daemon.
// If VERIDIAN_DISABLE_TLS is set to "true", it falls back to plain TCP.
func Connect(addr string) (*Client, error) {
	c := &Client{addr: addr}
	if err := c.reconnect(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Client) reconnect() error {
	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}

	var conn net.Conn
	var err error

	dialer := &net.Dialer{
		Timeout:   10 * time.Second,
		KeepAlive: 60 * time.Second,
	}

	if os.Getenv("VERIDIAN_DISABLE_TLS") == "true" {
		conn, err = dialer.Dial("tcp", c.addr)
	} else {
		config := &tls.Config{
			InsecureSkipVerify: true, // The daemon serves a self-signed cert for internal traffic
		}
		conn, err = tls.DialWithDialer(dialer, "tcp", c.addr, config)
	}

	if err != nil {
		return err
	}

	c.conn = conn
	c.reader = bufio.NewReader(conn)
	return nil
}

// sendAndReceive writes one command line and reads one response line,
// reconnecting with backoff on transport errors.
func (c *Client) sendAndReceive(cmd string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var err error
	var resp string

	for i := 0; i < 3; i++ {
		if c.conn == nil {
			if reconnectErr := c.reconnect(); reconnectErr != nil {
				err = fmt.Errorf("reconnect failed: %w", reconnectErr)
				time.Sleep(time.Duration(i*100) * time.Millisecond)
				continue
			}
		}

		c.conn.SetDeadline(time.Now().Add(30 * time.Second))

		_, err = fmt.Fprint(c.conn, cmd+"\n")
		if err == nil {
			resp, err = c.reader.ReadString('\n')
			if err == nil {
				resp = strings.TrimSpace(resp)
				if strings.HasPrefix(resp, "ERR") {
					return "", fmt.Errorf("%s", strings.TrimPrefix(resp, "ERR "))
				}
				return resp, nil
			}
		}

		if closeErr := c.reconnect(); closeErr != nil {
			fmt.Fprintf(os.Stderr, "[Veridian SDK] Reconnect attempt failed: %v\n", closeErr)
		}

		time.Sleep(time.Duration((i+1)*200) * time.Millisecond)
	}

	return "", fmt.Errorf("failed after 3 attempts. last error: %v", err)
}

// decodeOK strips the OK prefix and unmarshals the payload into target.
func decodeOK(resp string, target any) error {
	payload := strings.TrimPrefix(resp, "OK ")
	return json.Unmarshal([]byte(payload), target)
}

// ValidateEmail asks the daemon to classify an email address.
func (c *Client) ValidateEmail(address string) (bool, error) {
	resp, err := c.sendAndReceive("EMAIL " + address)
	if err != nil {
		return false, err
	}
	var valid bool
	err = decodeOK(resp, &valid)
	return valid, err
}

// AssessPassword asks the daemon for a full strength assessment.
func (c *Client) AssessPassword(candidate string) (validate.Assessment, error) {
	resp, err := c.sendAndReceive("PASSWORD " + candidate)
	if err != nil {
		return validate.Assessment{}, err
	}
	var assessment validate.Assessment
	err = decodeOK(resp, &assessment)
	return assessment, err
}

// NormalizeRecords asks the daemon to clean a batch of loose records.
func (c *Client) NormalizeRecords(items []any) ([]normalize.Record, error) {
	payload, err := json.Marshal(items)
	if err != nil {
		return nil, err
	}
	resp, err := c.sendAndReceive("NORMALIZE " + string(payload))
	if err != nil {
		return nil, err
	}
	var records []normalize.Record
	err = decodeOK(resp, &records)
	return records, err
}

// Register asks the daemon to register a user.
func (c *Client) Register(name, email string, age int) (schema.UserRecord, error) {
	payload, err := json.Marshal(map[string]any{
		"name":  name,
		"email": email,
		"age":   age,
	})
	if err != nil {
		return schema.UserRecord{}, err
	}
	resp, err := c.sendAndReceive("REGISTER " + string(payload))
	if err != nil {
		return schema.UserRecord{}, err
	}
	var user schema.UserRecord
	err = decodeOK(resp, &user)
	return user, err
}

// Ping checks the connection.
func (c *Client) Ping() error {
	resp, err := c.sendAndReceive("PING")
	if err != nil {
		return err
	}
	if resp != "PONG" {
		return fmt.Errorf("unexpected ping response %q", resp)
	}
	return nil
}

// Close terminates the session. It is a no-op when the connection is
// already gone, such as after a failed reconnect.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return nil
	}
	fmt.Fprintln(c.conn, "QUIT")
	return c.conn.Close()
}

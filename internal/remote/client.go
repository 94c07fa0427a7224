// Package remote serves files from a host reached over SSH. Listings run a
// remote ls; file contents move over SCP.
package remote

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bramvdbogaerde/go-scp"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/agent"
	"golang.org/x/crypto/ssh/knownhosts"
)

// DefaultTimeout bounds dialing when Options.Timeout is zero.
const DefaultTimeout = 10 * time.Second

// Options describes how to reach the remote host.
type Options struct {
	Host            string
	Port            string
	User            string
	Auth            []ssh.AuthMethod
	HostKeyCallback ssh.HostKeyCallback
	Timeout         time.Duration
}

// Client wraps an SSH connection.
type Client struct {
	client  *ssh.Client
	address string
}

// Dial connects and authenticates.
func Dial(ctx context.Context, opts Options) (*Client, error) {
	if opts.Port == "" {
		opts.Port = "22"
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.HostKeyCallback == nil {
		return nil, errors.New("no host key callback")
	}
	cfg := &ssh.ClientConfig{
		User:            opts.User,
		Auth:            opts.Auth,
		HostKeyCallback: opts.HostKeyCallback,
		Timeout:         opts.Timeout,
	}
	address := net.JoinHostPort(opts.Host, opts.Port)

	d := net.Dialer{Timeout: opts.Timeout}
	conn, err := d.DialContext(ctx, "tcp", address)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", address, err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}
	c, chans, reqs, err := ssh.NewClientConn(conn, address, cfg)
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("handshake %s: %w", address, err)
	}
	_ = conn.SetDeadline(time.Time{})
	return &Client{client: ssh.NewClient(c, chans, reqs), address: address}, nil
}

// Address returns host:port.
func (c *Client) Address() string { return c.address }

// Close closes the SSH connection.
func (c *Client) Close() error {
	return c.client.Close()
}

// PubKeyAuth returns an AuthMethod for public key authentication from a key file.
func PubKeyAuth(keyPath string) (ssh.AuthMethod, error) {
	key, err := os.ReadFile(keyPath)
	if err != nil {
		return nil, err
	}
	signer, err := ssh.ParsePrivateKey(key)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", keyPath, err)
	}
	return ssh.PublicKeys(signer), nil
}

// AgentAuth returns an AuthMethod backed by the agent at SSH_AUTH_SOCK. The
// returned closer releases the agent socket.
func AgentAuth() (ssh.AuthMethod, io.Closer, error) {
	sock := os.Getenv("SSH_AUTH_SOCK")
	if sock == "" {
		return nil, nil, errors.New("SSH_AUTH_SOCK not set")
	}
	conn, err := net.Dial("unix", sock)
	if err != nil {
		return nil, nil, fmt.Errorf("connect agent: %w", err)
	}
	return ssh.PublicKeysCallback(agent.NewClient(conn).Signers), conn, nil
}

// DefaultKeyPaths lists the conventional private keys under home/.ssh.
func DefaultKeyPaths(home string) []string {
	names := []string{"id_ed25519", "id_ecdsa", "id_rsa"}
	paths := make([]string, 0, len(names))
	for _, n := range names {
		paths = append(paths, filepath.Join(home, ".ssh", n))
	}
	return paths
}

// HostKeyCallback verifies host keys against knownHosts. With strict off any
// host key is accepted.
func HostKeyCallback(knownHosts string, strict bool) (ssh.HostKeyCallback, error) {
	if !strict {
		return ssh.InsecureIgnoreHostKey(), nil
	}
	cb, err := knownhosts.New(knownHosts)
	if err != nil {
		return nil, fmt.Errorf("load known hosts: %w", err)
	}
	return cb, nil
}

// Output runs cmd on the remote host and returns its stdout. Cancelling ctx
// closes the session.
func (c *Client) Output(ctx context.Context, cmd string) (out []byte, retErr error) {
	session, err := c.client.NewSession()
	if err != nil {
		return nil, fmt.Errorf("new session: %w", err)
	}
	defer func() {
		if cErr := session.Close(); cErr != nil && !errors.Is(cErr, io.EOF) {
			retErr = errors.Join(retErr, fmt.Errorf("close session: %w", cErr))
		}
	}()

	type result struct {
		out []byte
		err error
	}
	done := make(chan result, 1)
	go func() {
		o, err := session.Output(cmd)
		done <- result{o, err}
	}()
	select {
	case r := <-done:
		return r.out, r.err
	case <-ctx.Done():
		_ = session.Close()
		return nil, ctx.Err()
	}
}

// Download returns the contents of remotePath.
func (c *Client) Download(ctx context.Context, remotePath string) ([]byte, error) {
	scpClient, err := scp.NewClientBySSH(c.client)
	if err != nil {
		return nil, fmt.Errorf("scp session: %w", err)
	}
	defer scpClient.Close()

	var buf bytes.Buffer
	if err := scpClient.CopyFromRemotePassThru(ctx, &buf, remotePath, nil); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Upload replaces remotePath with data.
func (c *Client) Upload(ctx context.Context, remotePath string, data []byte, mode os.FileMode) error {
	scpClient, err := scp.NewClientBySSH(c.client)
	if err != nil {
		return fmt.Errorf("scp session: %w", err)
	}
	defer scpClient.Close()

	return scpClient.CopyFile(ctx, bytes.NewReader(data), remotePath, fmt.Sprintf("%#o", mode.Perm()))
}

// shellQuote wraps a path in single quotes and escapes any single quotes within it,
// preventing shell injection when the path is used in a remote command.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "'\\''") + "'"
}

package config

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// SSHHost represents a single Host block from ~/.ssh/config.
type SSHHost struct {
	Alias                 string // the Host alias (e.g. "handheld")
	HostName              string
	Port                  string
	User                  string
	IdentityFile          string // ~ expanded
	UserKnownHostsFile    string // ~ expanded
	StrictHostKeyChecking string // "yes", "no", "accept-new", ...
}

// DisplayHost returns the effective hostname (HostName if set, otherwise Alias).
func (h SSHHost) DisplayHost() string {
	if h.HostName != "" {
		return h.HostName
	}
	return h.Alias
}

// Apply fills the fields of r that were left empty from h.
func (h SSHHost) Apply(r Remote) Remote {
	r.Host = h.DisplayHost()
	if h.Port != "" {
		r.Port = h.Port
	}
	if r.User == "" {
		r.User = h.User
	}
	if r.IdentityFile == "" {
		r.IdentityFile = h.IdentityFile
	}
	if h.UserKnownHostsFile != "" {
		r.KnownHosts = h.UserKnownHostsFile
	}
	if strings.EqualFold(h.StrictHostKeyChecking, "no") {
		r.StrictHostKeyChecking = false
	}
	return r
}

// sshConfigPath returns the default SSH config file path.
func sshConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".ssh", "config")
}

// LoadSSHConfig reads and parses ~/.ssh/config. A missing or unreadable file
// yields no hosts.
func LoadSSHConfig() []SSHHost {
	return LoadSSHConfigFrom(sshConfigPath())
}

// LoadSSHConfigFrom reads and parses an SSH config file at the given path.
func LoadSSHConfigFrom(path string) []SSHHost {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer func() { _ = f.Close() }()

	return ParseSSHConfig(f)
}

// ParseSSHConfig returns the non-wildcard Host blocks read from r. A block
// listing several aliases yields one SSHHost per alias.
func ParseSSHConfig(r io.Reader) []SSHHost {
	home, _ := os.UserHomeDir()

	var hosts []SSHHost
	var block []SSHHost
	flush := func() {
		for _, h := range block {
			if !isWildcard(h.Alias) {
				hosts = append(hosts, h)
			}
		}
		block = nil
	}
	set := func(fn func(h *SSHHost)) {
		for i := range block {
			fn(&block[i])
		}
	}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value := splitSSHConfigLine(line)
		if key == "" {
			continue
		}
		value = strings.Trim(value, `"`)

		switch strings.ToLower(key) {
		case "host":
			flush()
			for _, alias := range strings.Fields(value) {
				block = append(block, SSHHost{Alias: alias})
			}
		case "match":
			flush()
		case "hostname":
			set(func(h *SSHHost) { h.HostName = value })
		case "port":
			set(func(h *SSHHost) { h.Port = value })
		case "user":
			set(func(h *SSHHost) { h.User = value })
		case "identityfile":
			set(func(h *SSHHost) { h.IdentityFile = expandTilde(value, home) })
		case "userknownhostsfile":
			set(func(h *SSHHost) { h.UserKnownHostsFile = expandTilde(value, home) })
		case "stricthostkeychecking":
			set(func(h *SSHHost) { h.StrictHostKeyChecking = value })
		}
	}
	flush()
	return hosts
}

// MatchSSHHost returns the host whose alias is name, or nil.
func MatchSSHHost(hosts []SSHHost, name string) *SSHHost {
	for i := range hosts {
		if hosts[i].Alias == name {
			return &hosts[i]
		}
	}
	return nil
}

// ResolveRemote turns a --remote target into connection settings on top of
// base. The target is an ssh config alias or [user@]host[:port].
func ResolveRemote(target string, hosts []SSHHost, base Remote) Remote {
	target = strings.TrimSpace(target)
	if target == "" {
		return base
	}
	if match := MatchSSHHost(hosts, target); match != nil {
		return match.Apply(base)
	}

	var user, host, port string
	if at := strings.LastIndex(target, "@"); at >= 0 {
		user = target[:at]
		target = target[at+1:]
	}
	switch {
	case strings.HasPrefix(target, "["):
		if end := strings.Index(target, "]:"); end >= 0 {
			host, port = target[1:end], target[end+2:]
		} else {
			host = strings.Trim(target, "[]")
		}
	case strings.Count(target, ":") == 1:
		colon := strings.IndexByte(target, ':')
		host, port = target[:colon], target[colon+1:]
	default:
		host = target
	}

	r := base
	r.Host = host
	if match := MatchSSHHost(hosts, host); match != nil {
		r = match.Apply(r)
	}
	if user != "" {
		r.User = user
	}
	if port != "" {
		r.Port = port
	}
	if r.Port == "" {
		r.Port = "22"
	}
	return r
}

// splitSSHConfigLine splits a line like "HostName example.com" or
// "HostName=example.com" into key and value.
func splitSSHConfigLine(line string) (string, string) {
	i := strings.IndexAny(line, " \t=")
	if i < 0 {
		return line, ""
	}
	key := line[:i]
	val := strings.TrimLeft(line[i:], " \t")
	val = strings.TrimPrefix(val, "=")
	return key, strings.TrimSpace(val)
}

// isWildcard returns true if the host alias contains glob characters.
func isWildcard(alias string) bool {
	return strings.ContainsAny(alias, "*?!")
}

// expandTilde replaces a leading ~ with the user's home directory.
func expandTilde(path, home string) string {
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	if path == "~" {
		return home
	}
	return path
}

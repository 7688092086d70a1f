// internal/netid/resolver.go
package netid

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"
)

// ErrNotFound means the neighbour table has no usable entry for the ip.
var ErrNotFound = errors.New("netid: hardware address not found")

// Resolver maps an IPv4 address to the hardware address behind it.
type Resolver interface {
	Lookup(ip string) (net.HardwareAddr, error)
}

// DeviceID builds the stable entry id: <prefix>_<mac hex without colons>.
func DeviceID(prefix string, mac net.HardwareAddr) string {
	return prefix + "_" + strings.ReplaceAll(mac.String(), ":", "")
}

// ARPTable resolves through the operating system neighbour cache.
type ARPTable struct {
	// ProcPath is the Linux ARP table. Defaults to /proc/net/arp.
	ProcPath string
	// Timeout bounds the priming send and the arp command.
	Timeout time.Duration
	// NoPrime skips the UDP send that populates the cache.
	NoPrime bool
}

const (
	defaultProcPath = "/proc/net/arp"
	primePort       = "55555"
)

func (a *ARPTable) Lookup(ip string) (net.HardwareAddr, error) {
	if !a.NoPrime {
		a.prime(ip)
	}

	if runtime.GOOS == "linux" {
		path := a.ProcPath
		if path == "" {
			path = defaultProcPath
		}
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("netid: %w", err)
		}
		defer f.Close()
		return ParseProcARP(f, ip)
	}

	return a.lookupCommand(ip)
}

// prime sends one datagram so the kernel resolves the neighbour.
// Errors are irrelevant: the table read decides.
func (a *ARPTable) prime(ip string) {
	conn, err := net.DialTimeout("udp", net.JoinHostPort(ip, primePort), a.timeout())
	if err != nil {
		return
	}
	defer conn.Close()
	_, _ = conn.Write([]byte{0})
	time.Sleep(50 * time.Millisecond)
}

func (a *ARPTable) lookupCommand(ip string) (net.HardwareAddr, error) {
	ctx, cancel := context.WithTimeout(context.Background(), a.timeout())
	defer cancel()

	args := []string{"-n", ip}
	if runtime.GOOS == "windows" {
		args = []string{"-a", ip}
	}

	out, err := exec.CommandContext(ctx, "arp", args...).Output()
	if err != nil {
		return nil, fmt.Errorf("netid: arp %s: %w", ip, err)
	}
	return ParseARPOutput(string(out), ip)
}

func (a *ARPTable) timeout() time.Duration {
	if a.Timeout > 0 {
		return a.Timeout
	}
	return 2 * time.Second
}

// ---- PARSERS ----

// ParseProcARP finds ip in the Linux /proc/net/arp format.
// Incomplete entries (flags 0x0 or all-zero address) are skipped.
func ParseProcARP(r io.Reader, ip string) (net.HardwareAddr, error) {
	sc := bufio.NewScanner(r)

	first := true
	for sc.Scan() {
		if first {
			first = false // header
			continue
		}
		f := strings.Fields(sc.Text())
		if len(f) < 4 || f[0] != ip {
			continue
		}
		if f[2] == "0x0" {
			continue
		}
		mac, err := parseMACLoose(f[3])
		if err != nil || isZero(mac) {
			continue
		}
		return mac, nil
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("netid: %w", err)
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, ip)
}

// ParseARPOutput scans `arp -n` (BSD/macOS) or `arp -a` (Windows) output
// for the line naming ip and returns the first address-looking field.
func ParseARPOutput(out, ip string) (net.HardwareAddr, error) {
	for _, line := range strings.Split(out, "\n") {
		f := strings.Fields(line)
		if !mentions(f, ip) {
			continue
		}
		for _, tok := range f {
			mac, err := parseMACLoose(tok)
			if err == nil && !isZero(mac) {
				return mac, nil
			}
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, ip)
}

func mentions(fields []string, ip string) bool {
	for _, tok := range fields {
		if tok == ip || tok == "("+ip+")" {
			return true
		}
	}
	return false
}

// parseMACLoose accepts six ':' or '-' separated octets, including the
// single-digit octets macOS prints (0:1b:...).
func parseMACLoose(s string) (net.HardwareAddr, error) {
	sep := ":"
	if strings.Contains(s, "-") {
		sep = "-"
	}
	parts := strings.Split(s, sep)
	if len(parts) != 6 {
		return nil, fmt.Errorf("netid: not a mac: %q", s)
	}
	for i, p := range parts {
		if len(p) == 1 {
			parts[i] = "0" + p
		}
	}
	return net.ParseMAC(strings.Join(parts, ":"))
}

func isZero(mac net.HardwareAddr) bool {
	for _, b := range mac {
		if b != 0 {
			return false
		}
	}
	return true
}

package netlinkdev

import (
	"bufio"
	"fmt"
	"net"
	"os"
	"path/filepath"
)

// writeResolvConf replaces path with one nameserver line per server. The
// file is written beside the target and renamed into place.
func writeResolvConf(path string, servers []net.IP) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".resolv-*")
	if err != nil {
		return fmt.Errorf("create resolver config: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := bufio.NewWriter(tmp)
	fmt.Fprintln(w, "# generated by netbringup")
	for _, ip := range servers {
		if ip == nil || ip.IsUnspecified() {
			continue
		}
		fmt.Fprintf(w, "nameserver %s\n", ip)
	}

	if err := w.Flush(); err != nil {
		tmp.Close()
		return fmt.Errorf("write resolver config: %w", err)
	}
	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod resolver config: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close resolver config: %w", err)
	}

	return os.Rename(tmp.Name(), path)
}

// Package device reads the identity this client registers with the server.
package device

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"

	"github.com/yhkl-dev/navistream/domain"
)

// DefaultIDPath returns $XDG_CONFIG_HOME/navistream/device_id.
func DefaultIDPath() string {
	return filepath.Join(xdg.ConfigHome, "navistream", "device_id")
}

// LoadID reads the device id from path, or from DefaultIDPath when path is
// empty. A missing or blank file is a domain.ErrDeviceIdentity.
func LoadID(path string) (string, error) {
	if path == "" {
		path = DefaultIDPath()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", domain.Wrap(domain.ErrDeviceIdentity, err)
	}
	id := strings.TrimSpace(string(data))
	if id == "" {
		return "", domain.Wrap(domain.ErrDeviceIdentity, &os.PathError{Op: "read", Path: path, Err: os.ErrInvalid})
	}
	return id, nil
}

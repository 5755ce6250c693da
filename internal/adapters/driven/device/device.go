// Package device resolves which compute device the vector index should
// target.
package device

import (
	"os"
	"os/exec"
	"runtime"

	"github.com/finlit-labs/finrag-cli/internal/core/domain"
	"github.com/finlit-labs/finrag-cli/internal/logger"
)

// EnvVar overrides device auto-detection when set to a valid device name.
const EnvVar = "RAG_DEVICE"

// Resolve picks the device to use, in order of precedence: an explicit
// valid choice, the RAG_DEVICE environment variable, detected hardware,
// and finally the CPU. An invalid explicit or environment value falls
// through with a warning rather than failing.
func Resolve(explicit domain.Device) domain.Device {
	if explicit != "" {
		if explicit.IsValid() {
			return explicit
		}
		logger.Warn("ignoring invalid device %q", explicit)
	}

	if env := os.Getenv(EnvVar); env != "" {
		d := domain.Device(env)
		if d.IsValid() {
			return d
		}
		logger.Warn("ignoring invalid %s value %q", EnvVar, env)
	}

	return Detect()
}

// Detect probes the host for accelerator hardware.
func Detect() domain.Device {
	if isMPS() {
		return domain.DeviceMPS
	}
	if isCUDA() {
		return domain.DeviceCUDA
	}
	return domain.DeviceCPU
}

func isMPS() bool {
	return runtime.GOOS == "darwin" && runtime.GOARCH == "arm64"
}

func isCUDA() bool {
	if _, err := os.Stat("/dev/nvidia0"); err == nil {
		return true
	}
	if _, err := exec.LookPath("nvidia-smi"); err == nil {
		return true
	}
	return false
}

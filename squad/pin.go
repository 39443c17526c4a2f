package squad

import (
	"github.com/momentics/threadsquad/api"
	"github.com/momentics/threadsquad/internal/affinity"
)

// checkPinSupported implements spec section 4.7's "pin failure when
// pinning was requested -> construction fails with a not-supported
// error". This is a static, platform-level capability check performed at
// New(); workers do not exist yet, so a real bind attempt is impossible
// this early. A pin call that fails later, at first fork, despite the
// platform reporting support is a dynamic failure and degrades instead
// (see squad/worker.go, and DESIGN.md's note on this gap between the
// spec's synchronous-construction framing and Go's lazy-fork mapping).
func checkPinSupported() *api.Error {
	if !affinity.Supported {
		return api.PlatformUnsupported("hardware-thread pinning is not supported on this platform/build")
	}
	return nil
}

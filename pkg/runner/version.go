package runner

import (
	"fmt"
	goruntime "runtime"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/aretw0/argtree/pkg/domain"
)

// CheckRuntime verifies that the running Go toolchain satisfies constraint
// (e.g. ">= 1.22"). An empty constraint always passes.
func CheckRuntime(constraint string) error {
	return CheckVersion(constraint, goruntime.Version())
}

// CheckVersion verifies that a Go version string ("go1.22.3", "go1.23rc1",
// "devel go1.24-abc") satisfies constraint. Development builds always pass.
func CheckVersion(constraint, version string) error {
	if strings.TrimSpace(constraint) == "" {
		return nil
	}

	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return fmt.Errorf("invalid version constraint %q: %w", constraint, err)
	}

	if strings.HasPrefix(version, "devel") {
		return nil
	}

	v, err := semver.NewVersion(normalizeGoVersion(version))
	if err != nil {
		return fmt.Errorf("%w: cannot parse runtime version %q: %v", domain.ErrRuntimeVersion, version, err)
	}
	if !c.Check(v) {
		return fmt.Errorf("%w: %s does not satisfy %s", domain.ErrRuntimeVersion, version, constraint)
	}
	return nil
}

// normalizeGoVersion turns "go1.23rc1 X:exp" into "1.23".
// Pre-releases count as their final release so ">= 1.23" accepts go1.23rc1.
func normalizeGoVersion(version string) string {
	if fields := strings.Fields(version); len(fields) > 0 {
		version = fields[0]
	}
	version = strings.TrimPrefix(version, "go")
	if i := strings.IndexAny(version, "abr-"); i > 0 {
		version = version[:i]
	}
	return version
}

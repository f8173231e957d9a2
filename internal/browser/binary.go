package browser

import (
	"fmt"
	"os"
)

// CheckBinary verifies that an explicitly configured browser binary exists
// and is executable. It is called once before any session starts so a bad
// path fails the whole run immediately instead of failing every session.
//
// An empty path is valid: it means the rod launcher manages its own browser,
// so there is nothing to check.
func CheckBinary(path string) error {
	if path == "" {
		return nil
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrBinaryNotFound, path)
		}
		return fmt.Errorf("stat browser binary %s: %w", path, err)
	}

	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", ErrBinaryNotFound, path)
	}

	if info.Mode().Perm()&0o111 == 0 {
		return fmt.Errorf("%w: %s", ErrBinaryNotExecutable, path)
	}

	return nil
}

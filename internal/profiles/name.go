package profiles

import (
	"fmt"
	"regexp"
)

// NamePattern is the accepted profile name: letters and digits only, in
// any script.
var NamePattern = regexp.MustCompile(`^[\p{L}\p{N}]+$`)

// ValidateName checks a profile name before it is used as a directory name.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidName)
	}
	if !NamePattern.MatchString(name) {
		return fmt.Errorf("%w: %q can only contain letters and digits", ErrInvalidName, name)
	}
	return nil
}

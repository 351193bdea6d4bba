package threadbook

import (
	"regexp"
	"strconv"
)

var (
	bareIDRe    = regexp.MustCompile(`^\d+$`)
	threadURLRe = regexp.MustCompile(`^https?://[^/]+/(?:show|print)thread\.php\?(?:t=)?(\d+)(?:&\S*)?$`)
)

// ParseReference extracts a thread id from a user-supplied reference:
// either a bare all-digit id or a showthread.php / printthread.php URL
// with the id as a t= query parameter or a bare numeric parameter.
// Anything else is an EINVALID error.
func ParseReference(ref string) (int, error) {
	if bareIDRe.MatchString(ref) {
		id, err := strconv.Atoi(ref)
		if err != nil {
			return 0, Errorf(EINVALID, "%q is not a thread number or valid URL", ref)
		}
		return id, nil
	}

	m := threadURLRe.FindStringSubmatch(ref)
	if m == nil {
		return 0, Errorf(EINVALID, "%q is not a thread number or valid URL", ref)
	}
	id, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, Errorf(EINVALID, "%q is not a thread number or valid URL", ref)
	}
	return id, nil
}

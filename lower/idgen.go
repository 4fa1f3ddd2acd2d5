package lower

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

var sanitizeRunPattern = regexp.MustCompile(`[^a-z0-9_-]+`)
var sanitizeCollapsePattern = regexp.MustCompile(`_{2,}`)

// generateUniqueID returns a synthetic node ID in the form
// node_<base36-timestamp>_<6-char-random>, unique across calls regardless
// of node name collisions (§4.5).
func generateUniqueID() string {
	ts := strconv.FormatInt(time.Now().UnixNano(), 36)
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:6]
	return "node_" + ts + "_" + suffix
}

// sanitizeID derives a node ID from name: lowercase, non-identifier runs
// replaced with "_", repeated underscores collapsed, leading/trailing
// underscores trimmed (§4.5). The result may collide across distinct
// names; callers must check for that.
func sanitizeID(name string) string {
	s := strings.ToLower(name)
	s = sanitizeRunPattern.ReplaceAllString(s, "_")
	s = sanitizeCollapsePattern.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_-")
	if s == "" {
		s = "node"
	}
	return s
}

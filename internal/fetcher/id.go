package fetcher

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"PulseBriefing/internal/ports"
)

// UUIDGenerator mints production identifiers. RSS entries and manual tweets
// have no stable upstream ID, so each run produces fresh ones.
type UUIDGenerator struct{}

var _ ports.IDGenerator = UUIDGenerator{}

// NewID returns "<prefix>-<short uuid>".
func (UUIDGenerator) NewID(prefix string) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return fmt.Sprintf("%s-%s", prefix, suffix)
}

// Slug lowercases a source name and joins its words with dashes, for use in
// generated IDs.
func Slug(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "-")
}

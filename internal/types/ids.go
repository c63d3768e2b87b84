package types

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Identifier prefixes, one per kind of record.
const (
	PrefixCV            = "cv"
	PrefixExperience    = "exp"
	PrefixEducation     = "edu"
	PrefixSkill         = "skill"
	PrefixLanguage      = "lang"
	PrefixCertification = "cert"
	PrefixProject       = "proj"
)

// IDFunc generates a new identifier for the given prefix.
type IDFunc func(prefix string) string

// NewID returns an identifier of the form <prefix>_<unix millis>_<random hex>.
// Uniqueness is best effort: two calls in the same millisecond still differ by
// the random suffix.
func NewID(prefix string) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:10]
	return fmt.Sprintf("%s_%d_%s", prefix, time.Now().UnixMilli(), suffix)
}

// Package ids generates sortable unique identifiers for items.
package ids

import (
	"crypto/rand"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

type randReader struct{}

func (randReader) Read(p []byte) (int, error) { return rand.Read(p) }

// Generator hands out ULIDs that sort by creation time. Ids created within the
// same millisecond are still strictly increasing.
type Generator struct {
	mu      sync.Mutex
	Now     func() time.Time
	entropy io.Reader
}

// NewGenerator returns a Generator reading from crypto/rand.
func NewGenerator() *Generator {
	return &Generator{entropy: ulid.Monotonic(randReader{}, 0)}
}

// New returns the next id.
func (g *Generator) New() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := time.Now
	if g.Now != nil {
		now = g.Now
	}
	if g.entropy == nil {
		g.entropy = ulid.Monotonic(randReader{}, 0)
	}
	id, err := ulid.New(ulid.Timestamp(now()), g.entropy)
	if err != nil {
		// monotonic entropy overflowed within one millisecond
		return fmt.Sprintf("%d", now().UnixNano())
	}
	return id.String()
}

var defaultGenerator = NewGenerator()

// New returns an id from the package generator.
func New() string {
	return defaultGenerator.New()
}

// Time reports the creation time encoded in id.
func Time(id string) (time.Time, bool) {
	u, err := ulid.ParseStrict(id)
	if err != nil {
		return time.Time{}, false
	}
	return ulid.Time(u.Time()), true
}

package intent

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"sync"

	"github.com/runoshun/secbot/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalogYAML []byte

// Polarity tags a sentiment trigger.
type Polarity string

// Sentiment polarities.
const (
	PolarityPositive Polarity = "positive"
	PolarityNegative Polarity = "negative"
	PolarityNeutral  Polarity = "neutral"
)

// SentimentEntry maps a sentiment word to its two reply variants.
// Only Supportive is returned today; Polarity and Encouraging are carried for callers.
type SentimentEntry struct {
	Trigger     string   `yaml:"trigger"`
	Polarity    Polarity `yaml:"polarity"`
	Supportive  string   `yaml:"supportive"`
	Encouraging string   `yaml:"encouraging"`
}

// ReplySet maps a topic or keyword phrase to equally valid replies.
type ReplySet struct {
	Trigger string   `yaml:"trigger"`
	Replies []string `yaml:"replies"`
}

// ExactReply maps a whole normalized question to one canned answer.
type ExactReply struct {
	Trigger string `yaml:"trigger"`
	Reply   string `yaml:"reply"`
}

// CatalogSpec is the decoded, not yet validated, form of a catalog file.
type CatalogSpec struct {
	Sentiments []SentimentEntry `yaml:"sentiments"`
	Topics     []ReplySet       `yaml:"topics"`
	Keywords   []ReplySet       `yaml:"keywords"`
	Exact      []ExactReply     `yaml:"exact"`
}

// Catalog is the immutable, ordered set of reply tiers.
// It is safe for concurrent use; accessors return copies.
type Catalog struct {
	exactIndex map[string]string
	sentiments []SentimentEntry
	topics     []ReplySet
	keywords   []ReplySet
	exact      []ExactReply
}

// NewCatalog validates spec and builds a Catalog.
// Triggers are normalized; a trigger repeated within a tier is rejected.
func NewCatalog(spec CatalogSpec) (*Catalog, error) {
	c := &Catalog{exactIndex: make(map[string]string, len(spec.Exact))}

	seen := make(map[string]bool)
	for i, s := range spec.Sentiments {
		key, err := tierKey("sentiments", i, s.Trigger, seen)
		if err != nil {
			return nil, err
		}
		switch s.Polarity {
		case PolarityPositive, PolarityNegative, PolarityNeutral:
		default:
			return nil, fmt.Errorf("%w: sentiments[%d] %q: polarity %q", domain.ErrInvalidCatalog, i, key, s.Polarity)
		}
		if s.Supportive == "" || s.Encouraging == "" {
			return nil, fmt.Errorf("%w: sentiments[%d] %q: both replies are required", domain.ErrInvalidCatalog, i, key)
		}
		s.Trigger = key
		c.sentiments = append(c.sentiments, s)
	}

	var err error
	if c.topics, err = buildReplySets("topics", spec.Topics); err != nil {
		return nil, err
	}
	if c.keywords, err = buildReplySets("keywords", spec.Keywords); err != nil {
		return nil, err
	}

	seen = make(map[string]bool)
	for i, e := range spec.Exact {
		key, err := tierKey("exact", i, e.Trigger, seen)
		if err != nil {
			return nil, err
		}
		if e.Reply == "" {
			return nil, fmt.Errorf("%w: exact[%d] %q: reply is required", domain.ErrInvalidCatalog, i, key)
		}
		e.Trigger = key
		c.exact = append(c.exact, e)
		c.exactIndex[key] = e.Reply
	}

	return c, nil
}

func buildReplySets(tier string, in []ReplySet) ([]ReplySet, error) {
	out := make([]ReplySet, 0, len(in))
	seen := make(map[string]bool)
	for i, rs := range in {
		key, err := tierKey(tier, i, rs.Trigger, seen)
		if err != nil {
			return nil, err
		}
		if len(rs.Replies) == 0 {
			return nil, fmt.Errorf("%w: %s[%d] %q: at least one reply is required", domain.ErrInvalidCatalog, tier, i, key)
		}
		out = append(out, ReplySet{Trigger: key, Replies: slices.Clone(rs.Replies)})
	}
	return out, nil
}

func tierKey(tier string, i int, trigger string, seen map[string]bool) (string, error) {
	key := Normalize(strings.TrimSpace(trigger))
	if key == "" {
		return "", fmt.Errorf("%w: %s[%d]: empty trigger", domain.ErrInvalidCatalog, tier, i)
	}
	if seen[key] {
		return "", fmt.Errorf("%w: %s: %q", domain.ErrDuplicateTrigger, tier, key)
	}
	seen[key] = true
	return key, nil
}

// LoadCatalog decodes a YAML catalog. Unknown fields are rejected.
func LoadCatalog(data []byte) (*Catalog, error) {
	var spec CatalogSpec
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&spec); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidCatalog, err)
	}
	return NewCatalog(spec)
}

// LoadCatalogFile reads and decodes a YAML catalog file.
func LoadCatalogFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	c, err := LoadCatalog(data)
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", path, err)
	}
	return c, nil
}

var defaultCatalog = sync.OnceValue(func() *Catalog {
	c, err := LoadCatalog(defaultCatalogYAML)
	if err != nil {
		// Should never happen with embedded catalog
		panic(fmt.Sprintf("failed to load embedded catalog: %v", err))
	}
	return c
})

// DefaultCatalog returns the built-in catalog.
func DefaultCatalog() *Catalog {
	return defaultCatalog()
}

// Sentiments returns the sentiment tier in evaluation order.
func (c *Catalog) Sentiments() []SentimentEntry {
	return slices.Clone(c.sentiments)
}

// Topics returns the topic tier in evaluation order.
func (c *Catalog) Topics() []ReplySet {
	return cloneReplySets(c.topics)
}

// Keywords returns the keyword tier in evaluation order.
func (c *Catalog) Keywords() []ReplySet {
	return cloneReplySets(c.keywords)
}

// Exact returns the exact-match tier in declaration order.
func (c *Catalog) Exact() []ExactReply {
	return slices.Clone(c.exact)
}

// LookupExact returns the canned reply for a normalized question.
func (c *Catalog) LookupExact(question string) (string, bool) {
	reply, ok := c.exactIndex[question]
	return reply, ok
}

func cloneReplySets(in []ReplySet) []ReplySet {
	out := make([]ReplySet, len(in))
	for i, rs := range in {
		out[i] = ReplySet{Trigger: rs.Trigger, Replies: slices.Clone(rs.Replies)}
	}
	return out
}

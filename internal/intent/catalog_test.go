package intent

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/runoshun/secbot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	c := DefaultCatalog()

	sentiments := c.Sentiments()
	require.Len(t, sentiments, 5)
	assert.Equal(t, "worried", sentiments[0].Trigger)
	assert.Equal(t, PolarityNegative, sentiments[0].Polarity)
	assert.Equal(t, PolarityNeutral, sentiments[1].Polarity)

	topics := c.Topics()
	require.Len(t, topics, 3)
	assert.Equal(t, []string{"phishing tips", "malware advice", "safe browse habits"},
		[]string{topics[0].Trigger, topics[1].Trigger, topics[2].Trigger})
	for _, tp := range topics {
		assert.Len(t, tp.Replies, 5, tp.Trigger)
	}

	keywords := c.Keywords()
	require.Len(t, keywords, 3)
	assert.Equal(t, "password", keywords[0].Trigger)

	assert.Len(t, c.Exact(), 21)
	reply, ok := c.LookupExact("hello")
	assert.True(t, ok)
	assert.Equal(t, "Hello there!", reply)
}

func TestCatalog_AccessorsReturnCopies(t *testing.T) {
	c := DefaultCatalog()

	topics := c.Topics()
	topics[0].Trigger = "mutated"
	topics[0].Replies[0] = "mutated"

	fresh := c.Topics()
	assert.Equal(t, "phishing tips", fresh[0].Trigger)
	assert.NotEqual(t, "mutated", fresh[0].Replies[0])
}

func TestNewCatalog_NormalizesTriggers(t *testing.T) {
	c, err := NewCatalog(CatalogSpec{
		Keywords: []ReplySet{{Trigger: "  VPN ", Replies: []string{"Use a VPN on public Wi-Fi."}}},
		Exact:    []ExactReply{{Trigger: "Good Morning", Reply: "Good morning!"}},
	})
	require.NoError(t, err)

	assert.Equal(t, "vpn", c.Keywords()[0].Trigger)
	_, ok := c.LookupExact("good morning")
	assert.True(t, ok)
}

func TestNewCatalog_Errors(t *testing.T) {
	tests := []struct {
		name    string
		spec    CatalogSpec
		wantErr error
	}{
		{
			name: "duplicate keyword after normalization",
			spec: CatalogSpec{Keywords: []ReplySet{
				{Trigger: "scam", Replies: []string{"a"}},
				{Trigger: "SCAM", Replies: []string{"b"}},
			}},
			wantErr: domain.ErrDuplicateTrigger,
		},
		{
			name: "duplicate exact",
			spec: CatalogSpec{Exact: []ExactReply{
				{Trigger: "hi", Reply: "Hi!"},
				{Trigger: "hi", Reply: "Hello!"},
			}},
			wantErr: domain.ErrDuplicateTrigger,
		},
		{
			name:    "empty trigger",
			spec:    CatalogSpec{Topics: []ReplySet{{Trigger: " ", Replies: []string{"a"}}}},
			wantErr: domain.ErrInvalidCatalog,
		},
		{
			name:    "topic without replies",
			spec:    CatalogSpec{Topics: []ReplySet{{Trigger: "vpn tips"}}},
			wantErr: domain.ErrInvalidCatalog,
		},
		{
			name: "bad polarity",
			spec: CatalogSpec{Sentiments: []SentimentEntry{
				{Trigger: "angry", Polarity: "furious", Supportive: "a", Encouraging: "b"},
			}},
			wantErr: domain.ErrInvalidCatalog,
		},
		{
			name: "missing encouraging variant",
			spec: CatalogSpec{Sentiments: []SentimentEntry{
				{Trigger: "angry", Polarity: PolarityNegative, Supportive: "a"},
			}},
			wantErr: domain.ErrInvalidCatalog,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCatalog(tt.spec)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNewCatalog_SameTriggerAcrossTiers(t *testing.T) {
	_, err := NewCatalog(CatalogSpec{
		Keywords: []ReplySet{{Trigger: "malware", Replies: []string{"a"}}},
		Exact:    []ExactReply{{Trigger: "malware", Reply: "b"}},
	})
	assert.NoError(t, err)
}

func TestLoadCatalog_RejectsUnknownFields(t *testing.T) {
	_, err := LoadCatalog([]byte("keywords:\n  - trigger: vpn\n    answers: [x]\n"))
	assert.ErrorIs(t, err, domain.ErrInvalidCatalog)
}

func TestLoadCatalogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	content := `
keywords:
  - trigger: vpn
    replies:
      - "Use a VPN on public Wi-Fi."
exact:
  - trigger: ping
    reply: "pong"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	c, err := LoadCatalogFile(path)
	require.NoError(t, err)
	assert.Empty(t, c.Sentiments())
	assert.Len(t, c.Keywords(), 1)

	_, err = LoadCatalogFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

package genealacart

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helix-tools/genedex-cli/internal/core/domain"
)

func newTestProvider(handler http.HandlerFunc) (*Provider, *httptest.Server) {
	srv := httptest.NewServer(handler)
	return New(Config{BaseURL: srv.URL}), srv
}

func TestResolve_ExactMatch(t *testing.T) {
	p, srv := newTestProvider(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "BRCA1", r.URL.Query().Get("geneList"))
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"Genes": [{
			"Symbol": "BRCA1",
			"EntrezGeneID": 672,
			"Description": "BRCA1 DNA repair associated",
			"GeneCardsSummary": "Tumor suppressor involved in DNA repair.",
			"Chromosome": "17",
			"MapLocation": "17q21.31"
		}]}`))
	})
	defer srv.Close()

	rec, err := p.Resolve(context.Background(), "BRCA1")
	require.NoError(t, err)
	assert.Equal(t, "BRCA1", rec.Symbol)
	assert.Equal(t, "672", rec.EntrezID)
	assert.Equal(t, "17", rec.Chromosome)
	assert.Equal(t, "17q21.31", rec.MapLocation)
	assert.Equal(t, Name, rec.SourceTier)
}

// TestResolve_AuthWall: a 200 HTML login page is an authentication
// gate, classified transient, never a record.
func TestResolve_AuthWall(t *testing.T) {
	p, srv := newTestProvider(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte("<html><body>Please log in</body></html>"))
	})
	defer srv.Close()

	_, err := p.Resolve(context.Background(), "BRCA1")
	require.Error(t, err)
	assert.True(t, domain.IsTransient(err))
	assert.ErrorIs(t, err, domain.ErrAuthRequired)
	assert.False(t, domain.IsNotFound(err))
}

func TestResolve_UnauthorizedStatus(t *testing.T) {
	p, srv := newTestProvider(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	defer srv.Close()

	_, err := p.Resolve(context.Background(), "BRCA1")
	require.Error(t, err)
	assert.True(t, domain.IsTransient(err))
	assert.ErrorIs(t, err, domain.ErrAuthRequired)
}

func TestResolve_NoExactMatch(t *testing.T) {
	p, srv := newTestProvider(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"Genes": [{"Symbol": "BRCA2", "EntrezGeneID": 675}]}`))
	})
	defer srv.Close()

	_, err := p.Resolve(context.Background(), "BRCA1")
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
	assert.False(t, domain.IsTransient(err))
}

// TestResolve_MatchWithoutIdentifier: an entry that cannot be confirmed
// (no id) reports not-found rather than an uncertain record.
func TestResolve_MatchWithoutIdentifier(t *testing.T) {
	p, srv := newTestProvider(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"Genes": [{"Symbol": "BRCA1", "GeneCardsSummary": "partial entry"}]}`))
	})
	defer srv.Close()

	_, err := p.Resolve(context.Background(), "BRCA1")
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
}

func TestResolve_SummaryTruncated(t *testing.T) {
	long := strings.Repeat("a long sentence ", 40)
	p, srv := newTestProvider(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"Genes": [{"Symbol": "BRCA1", "EntrezGeneID": "672", "GeneCardsSummary": "` + long + `"}]}`))
	})
	defer srv.Close()

	rec, err := p.Resolve(context.Background(), "BRCA1")
	require.NoError(t, err)
	assert.LessOrEqual(t, utf8.RuneCountInString(rec.Summary), domain.MaxSummaryLen)
	assert.True(t, strings.HasSuffix(rec.Summary, "..."))
}

func TestResolve_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	p := New(Config{BaseURL: srv.URL})
	srv.Close() // connection refused from here on

	_, err := p.Resolve(context.Background(), "BRCA1")
	require.Error(t, err)
	assert.True(t, domain.IsTransient(err))
}

// TestResolve_Timeout: a hanging provider resolves to transient within
// the adapter timeout instead of stalling the fallback chain.
func TestResolve_Timeout(t *testing.T) {
	p, srv := newTestProvider(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"Genes": []}`))
	})
	defer srv.Close()
	p.client.Timeout = 20 * time.Millisecond

	_, err := p.Resolve(context.Background(), "BRCA1")
	require.Error(t, err)
	assert.True(t, domain.IsTransient(err))
}

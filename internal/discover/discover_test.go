package discover

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	prompts  []string
	response string
	err      error
}

func (f *fakeClient) GenerateContent(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.response, f.err
}

func (f *fakeClient) GenerateJSON(_ context.Context, prompt string) (string, error) {
	return f.GenerateContent(context.Background(), prompt)
}

func (f *fakeClient) Close() error { return nil }

const boardPage = `<html><body>
<ul>
  <li class="job">
    <h3>Senior Go Engineer</h3>
    <span class="company">Acme Corp</span>
    <span class="location">Berlin</span>
    <a href="/jobs/go-engineer-123">View</a>
  </li>
  <li class="job">
    <h3>Data Engineer</h3>
    <span class="company">Initech</span>
    <a href="https://example.com/jobs/data-engineer">View</a>
  </li>
  <li class="job">
    <span class="company">No Title Inc</span>
  </li>
</ul>
</body></html>`

func TestSearch(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.String()
		_, _ = w.Write([]byte(boardPage))
	}))
	defer srv.Close()

	client := &fakeClient{response: "1. Senior Go Engineer is the best fit."}
	s := NewSearcher(client, WithSource(srv.URL))

	result, err := s.Search(context.Background(), Query{
		Role:     "Go Engineer",
		Location: "Berlin",
		Skills:   []string{"Go", "Kubernetes"},
	})
	require.NoError(t, err)

	assert.Equal(t, "/remote-jobs/search?query=Go+Engineer+Berlin", gotPath)

	// The row without a title is dropped.
	require.Len(t, result.Listings, 2)
	assert.Equal(t, Listing{
		Title:    "Senior Go Engineer",
		Company:  "Acme Corp",
		Location: "Berlin",
		URL:      srv.URL + "/jobs/go-engineer-123",
	}, result.Listings[0])
	assert.Equal(t, "https://example.com/jobs/data-engineer", result.Listings[1].URL)

	assert.Equal(t, "1. Senior Go Engineer is the best fit.", result.Advice)

	require.Len(t, client.prompts, 1)
	assert.Contains(t, client.prompts[0], "Go Engineer")
	assert.Contains(t, client.prompts[0], "Go, Kubernetes")
	assert.Contains(t, client.prompts[0], "1. Senior Go Engineer at Acme Corp (Berlin)")
}

func TestSearch_RequiresRole(t *testing.T) {
	s := NewSearcher(&fakeClient{})

	_, err := s.Search(context.Background(), Query{Location: "Berlin"})

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "role", ve.Field)
}

func TestSearch_BoardUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := &fakeClient{}
	s := NewSearcher(client, WithSource(srv.URL))

	_, err := s.Search(context.Background(), Query{Role: "Go Engineer"})

	var fe *FetchError
	require.ErrorAs(t, err, &fe)
	assert.Contains(t, fe.Message, "503")
	assert.Empty(t, client.prompts, "model must not be called when the fetch fails")
}

func TestSearch_NoListings(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html><body><p>Nothing here</p></body></html>"))
	}))
	defer srv.Close()

	client := &fakeClient{}
	s := NewSearcher(client, WithSource(srv.URL))

	_, err := s.Search(context.Background(), Query{Role: "Go Engineer"})

	var nle *NoListingsError
	require.ErrorAs(t, err, &nle)
	assert.Empty(t, client.prompts)
}

package beautify

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	html, err := Render(Input{
		FullName:   "Jane Doe",
		Contact:    "jane@example.com / +49 123",
		Summary:    "Backend engineer with a data focus.",
		Experience: "Shipped the billing service\n\nCut query latency by 40%\n",
		Education:  "BSc Computer Science",
		Skills:     "Go, SQL, Kubernetes",
	})
	require.NoError(t, err)

	assert.Contains(t, html, "<h1 style=\"color:#FAFAFA; margin:0;\">Jane Doe</h1>")
	assert.Contains(t, html, "<li>Shipped the billing service</li>")
	assert.Contains(t, html, "<li>Cut query latency by 40%</li>")
	assert.Contains(t, html, "BSc Computer Science")
	assert.Contains(t, html, "Go, SQL, Kubernetes")
	// Blank experience lines must not produce empty bullets.
	assert.Equal(t, 2, strings.Count(html, "<li>"))
}

func TestRender_EscapesUserContent(t *testing.T) {
	html, err := Render(Input{
		FullName: "Jane <script>alert(1)</script>",
		Summary:  "likes <b>bold</b> claims",
	})
	require.NoError(t, err)

	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, "&lt;script&gt;")
	assert.NotContains(t, html, "<b>bold</b>")
}

func TestRender_RequiresName(t *testing.T) {
	_, err := Render(Input{Summary: "no name"})

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "full_name", ve.Field)
}

package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderReviewRequest(t *testing.T) {
	subject, body, err := RenderReviewRequest(ReviewRequestData{
		ContactName:  "John Doe",
		BusinessName: "Joe's Diner",
		PlatformLinks: []PlatformLink{
			{Name: "Google", URL: "https://g.page/joes-diner/review"},
			{Name: "Yelp", URL: "https://yelp.com/biz/joes-diner"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "We'd love your feedback, John Doe!", subject)
	assert.Contains(t, body, "John Doe")
	assert.Contains(t, body, "Joe&#39;s Diner")
	assert.Contains(t, body, "https://g.page/joes-diner/review")
	assert.Contains(t, body, "https://yelp.com/biz/joes-diner")
	assert.Contains(t, body, "Yelp")
}

func TestRenderReviewRequest_EscapesHTML(t *testing.T) {
	_, body, err := RenderReviewRequest(ReviewRequestData{
		ContactName:  "<script>alert(1)</script>",
		BusinessName: "Shop",
	})
	require.NoError(t, err)
	assert.NotContains(t, body, "<script>alert(1)</script>")
}

func TestRenderTestEmail(t *testing.T) {
	subject, body := RenderTestEmail()
	assert.Equal(t, "Test Email from ReviewCraft", subject)
	assert.Contains(t, body, "working correctly")
}

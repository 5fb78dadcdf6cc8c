package messaging_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dreammattress/storefront/internal/messaging"
)

func TestDemoLink(t *testing.T) {
	tests := []struct {
		name    string
		number  string
		product string
		message string
	}{
		{"generic", "1234567890", "", "Hi! I'd like to request a mattress demo."},
		{"product", "1234567890", "Cloud Hybrid", "Hi! I'd like to request a demo for the Cloud Hybrid."},
		{"formatted number", "+1 (234) 567-890", "", "Hi! I'd like to request a mattress demo."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			link := messaging.DemoLink(tt.number, tt.product)
			u, err := url.Parse(link)
			require.NoError(t, err)
			assert.Equal(t, "wa.me", u.Host)
			assert.Equal(t, "/1234567890", u.Path)
			assert.Equal(t, tt.message, u.Query().Get("text"))
		})
	}
}

func TestWhatsAppLinkEncodesText(t *testing.T) {
	link := messaging.WhatsAppLink("1", "a&b c")
	assert.Equal(t, "https://wa.me/1?text=a%26b+c", link)
}

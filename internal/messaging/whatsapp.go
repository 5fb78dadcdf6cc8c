// Package messaging builds outbound chat deep links. It only constructs
// URLs; nothing is sent from the server.
package messaging

import (
	"fmt"
	"net/url"
	"strings"
)

// GenericDemoMessage is used when no product is in context.
const GenericDemoMessage = "Hi! I'd like to request a mattress demo."

// ProductDemoMessage returns the prefilled text for a product demo request.
func ProductDemoMessage(productName string) string {
	return fmt.Sprintf("Hi! I'd like to request a demo for the %s.", productName)
}

// WhatsAppLink returns https://wa.me/<number>?text=<message>. Non-digit
// characters in number are dropped, as wa.me expects bare digits.
func WhatsAppLink(number, message string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, number)
	return "https://wa.me/" + digits + "?text=" + url.QueryEscape(message)
}

// DemoLink builds the demo request link, product specific when productName
// is non-empty.
func DemoLink(number, productName string) string {
	if strings.TrimSpace(productName) == "" {
		return WhatsAppLink(number, GenericDemoMessage)
	}
	return WhatsAppLink(number, ProductDemoMessage(productName))
}

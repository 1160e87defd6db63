// Package contact builds outbound contact links for listing owners.
package contact

import (
	"net/url"
	"strings"
)

const whatsAppBase = "https://wa.me/"

// WhatsAppMessage is the prefilled chat text for a listing.
func WhatsAppMessage(title string) string {
	return "Hi, I saw your listing on Makadi Heights Marketplace:\n\"" + title + "\"\nI'm interested, please contact me."
}

// WhatsAppLink returns a wa.me deep link to phone with a message about the listing title.
// Every non-digit in phone is dropped.
func WhatsAppLink(phone, title string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)
	return whatsAppBase + digits + "?text=" + escape(WhatsAppMessage(title))
}

// escape percent-encodes s the way browsers encode URI components: spaces become %20.
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

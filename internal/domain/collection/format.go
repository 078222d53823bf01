package collection

import (
	"debt-ledger/internal/domain/debt"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	whatsAppBaseURL = "https://wa.me/"
	countryPrefix   = "55"
)

// FormatBRL renders an amount the way pt-BR shows reais, e.g. "R$ 1.234,56".
func FormatBRL(v decimal.Decimal) string {
	rounded := v.Round(2)
	fixed := rounded.Abs().StringFixed(2)
	intPart, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}

	sign := ""
	if rounded.IsNegative() {
		sign = "-"
	}
	return sign + "R$ " + b.String() + "," + frac
}

func FormatDate(d debt.Date) string {
	if d.IsZero() {
		return ""
	}
	return d.Format("02/01/2006")
}

func DigitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// WhatsAppLink opens a chat with number with message already typed.
func WhatsAppLink(number, message string) string {
	return WhatsAppChatLink(number) + "?text=" + strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
}

func WhatsAppChatLink(number string) string {
	return whatsAppBaseURL + countryPrefix + DigitsOnly(number)
}

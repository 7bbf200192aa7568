package domain

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// FormatNumber — целое с разделителями тысяч: 56400 -> "56,400".
// Printer не потокобезопасен, поэтому создаём на каждый вызов.
func FormatNumber(n int64) string {
	return message.NewPrinter(language.English).Sprintf("%d", n)
}

// FormatMoney — сумма для показа: "$56,400"
func FormatMoney(n int64) string {
	return "$" + FormatNumber(n)
}

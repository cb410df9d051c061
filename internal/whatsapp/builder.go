// Package whatsapp builds the prefilled outbound message and the wa.me deep
// link for the contact fallback path. Building is pure; opening the link is
// the caller's responsibility.
package whatsapp

import (
	"net/url"
	"strings"

	"funnel_backend/internal/attribution"
)

// MessageContext carries the optional event details interpolated into the
// message. Absent fields are omitted cleanly.
type MessageContext struct {
	EventType string
	CityUF    string
	EventDate string
}

// LinkMeta carries correlation metadata embedded in the deep link.
type LinkMeta struct {
	SourcePage string
}

var segmentTemplates = map[string]string{
	"personal":    "Olá! Gostaria de um orçamento de show pirotécnico para a minha festa.",
	"corporate":   "Olá! Represento uma empresa e gostaria de um orçamento de show pirotécnico para o nosso evento.",
	"specialized": "Olá! Sou produtor de eventos e gostaria de falar sobre um projeto pirotécnico de grande porte.",
}

var eventTypeLabels = map[string]string{
	"casamento":        "casamento",
	"aniversario":      "aniversário",
	"formatura":        "formatura",
	"pedido":           "pedido de casamento",
	"confraternizacao": "confraternização de fim de ano",
	"inauguracao":      "inauguração",
	"lancamento":       "lançamento de produto",
	"premiacao":        "premiação",
	"reveillon":        "Réveillon",
	"festival":         "festival",
	"festa_junina":     "festa junina",
	"evento_esportivo": "evento esportivo",
}

// BuildMessage renders the per-segment template with the optional context
// fields appended as full sentences. Unknown segments fall back to the
// personal template.
func BuildMessage(segment string, ctx MessageContext) string {
	base, ok := segmentTemplates[segment]
	if !ok {
		base = segmentTemplates["personal"]
	}

	var b strings.Builder
	b.WriteString(base)

	if ctx.EventType != "" {
		label := eventTypeLabels[ctx.EventType]
		if label == "" {
			label = ctx.EventType
		}
		b.WriteString(" O evento é: ")
		b.WriteString(label)
		b.WriteString(".")
	}
	if ctx.CityUF != "" {
		b.WriteString(" Local: ")
		b.WriteString(ctx.CityUF)
		b.WriteString(".")
	}
	if ctx.EventDate != "" {
		b.WriteString(" Data: ")
		b.WriteString(ctx.EventDate)
		b.WriteString(".")
	}

	return b.String()
}

// BuildDeepLink produces the fully encoded wa.me URL embedding the message
// body and, in the query string, the attribution signals for later
// correlation.
func BuildDeepLink(number, message string, snap attribution.Snapshot, meta LinkMeta) string {
	values := url.Values{}
	values.Set("text", message)

	for _, key := range []string{"utm_source", "utm_medium", "utm_campaign"} {
		if v, ok := snap.UTM[key]; ok {
			values.Set(key, v)
		}
	}
	if snap.ClickIDs.AdsClickID != "" {
		values.Set("gclid", snap.ClickIDs.AdsClickID)
	}
	if meta.SourcePage != "" {
		values.Set("src", meta.SourcePage)
	}

	return "https://wa.me/" + strings.TrimPrefix(number, "+") + "?" + values.Encode()
}

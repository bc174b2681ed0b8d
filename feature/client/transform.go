package client

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"subscriber-desk/core/textutil"
	"subscriber-desk/feature/client/models"
)

var emailRe = regexp.MustCompile(`(?i)[A-Z0-9._%+\-]+@[A-Z0-9.\-]+\.[A-Z]{2,}`)

// emailObfuscations are the spellings operators use to hide addresses
// in free-text fields, replaced before scanning for an email pattern.
var emailObfuscations = strings.NewReplacer(
	" at ", "@", "[at]", "@", "(at)", "@", " arroba ", "@",
	" dot ", ".", "[dot]", ".", "(dot)", ".",
	",", " ", ";", " ", "|", " ",
)

// explicitEmailKeys are the upstream fields checked for an address
// before falling back to scanning every string field.
var explicitEmailKeys = []string{"Email", "email", "Mail", "MAIL", "E-mail", "UsuarioAutogestion", "Autogestion_User"}

// transform normalizes a raw upstream record into the shape the rest of
// the service works with.
func transform(raw map[string]any) models.Record {
	nameBase := stringField(raw, "RS")
	if nameBase == "" {
		nameBase = strings.TrimSpace(stringField(raw, "Apellido") + " " + stringField(raw, "Nombre"))
	}
	fullName := strings.Join(strings.Fields(strings.ReplaceAll(nameBase, ",", " ")), " ")

	nationalID := stringField(raw, "Documento")
	if nationalID == "" {
		nationalID = stringField(raw, "CUIT")
	}

	email := stringField(raw, "Email")
	if email == "" {
		email = extractEmail(raw)
	}

	var initials strings.Builder
	for _, word := range strings.Fields(fullName) {
		first, _ := utf8.DecodeRuneInString(word)
		initials.WriteString(strings.ToLower(string(first)))
	}

	products := stringField(raw, "Television")
	if products == "" {
		products = stringField(raw, "Productos")
	}
	hasTV, hasHBO, hasSports := productFlags(products)

	statusText := strings.TrimSpace(stringField(raw, "Estado"))
	if statusText == "" {
		statusText = strings.TrimSpace(stringField(raw, "estado"))
	}

	return models.Record{
		ID:                recordID(raw),
		FullName:          fullName,
		NationalID:        nationalID,
		Email:             strings.TrimSpace(email),
		GeneratedPassword: strings.TrimSpace(initials.String() + nationalID),
		HasTV:             hasTV,
		HasHBO:            hasHBO,
		HasSportsPackage:  hasSports,
		StatusText:        statusText,
		StatusCode:        statusCode(statusText),
	}
}

// recordID extracts a record's own identifier, trying the known field
// names in order.
func recordID(raw map[string]any) string {
	if id := stringField(raw, "ID"); id != "" {
		return id
	}
	return stringField(raw, "IDA")
}

// stringField renders a field as a trimmed string. Numbers arrive from
// JSON as float64; integral ones must not grow a decimal point.
func stringField(raw map[string]any, key string) string {
	val, ok := raw[key]
	if !ok || val == nil {
		return ""
	}
	switch v := val.(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v))
		}
		return fmt.Sprintf("%v", v)
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", v))
	}
}

// extractEmail finds an address in the record: explicit email-like
// fields first, then every string field, each de-obfuscated before
// matching. The first hit wins, lowercased.
func extractEmail(raw map[string]any) string {
	var candidates []string
	for _, key := range explicitEmailKeys {
		if v := stringField(raw, key); v != "" {
			candidates = append(candidates, v)
		}
	}
	if len(candidates) == 0 {
		// sorted keys keep the winner stable when several fields carry
		// an address
		keys := make([]string, 0, len(raw))
		for key := range raw {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			if s, ok := raw[key].(string); ok {
				candidates = append(candidates, s)
			}
		}
	}
	for _, candidate := range candidates {
		if match := emailRe.FindString(emailObfuscations.Replace(candidate)); match != "" {
			return strings.ToLower(match)
		}
	}
	return ""
}

// productFlags derives the service flags from the semicolon-delimited
// product list.
func productFlags(products string) (hasTV, hasHBO, hasSports bool) {
	for _, item := range strings.Split(products, ";") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		folded := textutil.Fold(item)
		if strings.Contains(folded, "SERVICIO TV") || strings.Contains(folded, "BASICO") || strings.Contains(folded, "BASIC") {
			hasTV = true
		}
		if strings.Contains(folded, "HBO") {
			hasHBO = true
		}
		if strings.Contains(folded, "PACK FUTB") || strings.Contains(folded, "FUTBOL") || strings.Contains(folded, "DEPORTIVO") {
			hasSports = true
		}
	}
	return hasTV, hasHBO, hasSports
}

// statusCode maps the folded status text prefix onto the normalized
// status. Total: anything unrecognized is StatusUnknown, never an error.
func statusCode(statusText string) models.Status {
	folded := textutil.Fold(statusText)
	switch {
	case strings.HasPrefix(folded, "ACT"):
		return models.StatusActive
	case strings.HasPrefix(folded, "SUS"):
		return models.StatusSuspended
	case strings.HasPrefix(folded, "BAJ"):
		return models.StatusTerminated
	default:
		return models.StatusUnknown
	}
}

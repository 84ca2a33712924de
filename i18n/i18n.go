// Package i18n holds the label catalog used on generated quotations.
package i18n

import "strings"

// DefaultLanguage is used when nothing better is known.
const DefaultLanguage = "en"

var catalogs = map[string]map[string]string{
	"en": {
		"quotation":            "QUOTATION",
		"issue_date":           "ISSUE DATE",
		"quote_number":         "QUOTE #",
		"valid_until":          "VALID UNTIL",
		"customer_id":          "CUSTOMER ID",
		"customer_details":     "CUSTOMER DETAILS",
		"customer_name":        "Customer Name:",
		"phone":                "Phone:",
		"address":              "Address:",
		"no_customer_details":  "No customer details provided",
		"item_details":         "ITEM DETAILS",
		"col_no":               "No.",
		"col_description":      "Description",
		"col_qty":              "Qty",
		"col_unit_price":       "Unit Price (%s)",
		"col_amount":           "Amount (%s)",
		"no_items":             "No items added",
		"subtotal":             "Subtotal:",
		"discount":             "Discount:",
		"net_amount":           "Net Amount:",
		"tax":                  "Tax (%s%%):",
		"total":                "TOTAL:",
		"terms":                "TERMS AND CONDITIONS",
		"authorized_signature": "Authorized Signature",
		"customer_signature":   "Customer Signature",
		"date_line":            "Date: ________________",
		"quote_number_missing": "Quote number is required",
	},
	"fr": {
		"quotation":            "DEVIS",
		"issue_date":           "DATE D'ÉMISSION",
		"quote_number":         "DEVIS N°",
		"valid_until":          "VALABLE JUSQU'AU",
		"customer_id":          "N° CLIENT",
		"customer_details":     "INFORMATIONS CLIENT",
		"customer_name":        "Nom du client :",
		"phone":                "Téléphone :",
		"address":              "Adresse :",
		"no_customer_details":  "Aucune information client",
		"item_details":         "DÉTAIL DES ARTICLES",
		"col_no":               "N°",
		"col_description":      "Désignation",
		"col_qty":              "Qté",
		"col_unit_price":       "Prix unitaire (%s)",
		"col_amount":           "Montant (%s)",
		"no_items":             "Aucun article",
		"subtotal":             "Sous-total :",
		"discount":             "Remise :",
		"net_amount":           "Montant net :",
		"tax":                  "TVA (%s%%) :",
		"total":                "TOTAL :",
		"terms":                "CONDITIONS GÉNÉRALES",
		"authorized_signature": "Signature autorisée",
		"customer_signature":   "Signature du client",
		"date_line":            "Date : ________________",
		"quote_number_missing": "Le numéro de devis est requis",
	},
}

// Supported reports whether a catalog exists for lang.
func Supported(lang string) bool {
	_, ok := catalogs[lang]
	return ok
}

// T returns the label for code in lang, falling back to the default
// language and finally to the code itself.
func T(lang, code string) string {
	if c, ok := catalogs[lang]; ok {
		if s, ok := c[code]; ok {
			return s
		}
	}
	if s, ok := catalogs[DefaultLanguage][code]; ok {
		return s
	}
	return code
}

// DetectLanguage extracts a supported language from an Accept-Language
// style list or a POSIX locale such as "fr_FR.UTF-8".
func DetectLanguage(value string) string {
	for _, part := range strings.Split(value, ",") {
		tag := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		tag = strings.ToLower(tag)
		if i := strings.IndexAny(tag, "-_."); i >= 0 {
			tag = tag[:i]
		}
		if Supported(tag) {
			return tag
		}
	}
	return DefaultLanguage
}

// NumberFormat describes how amounts are grouped for a language.
type NumberFormat struct {
	Thousands string
	Decimal   string
}

// Numbers returns the amount format for lang.
func Numbers(lang string) NumberFormat {
	if lang == "fr" {
		return NumberFormat{Thousands: " ", Decimal: ","}
	}
	return NumberFormat{Thousands: ",", Decimal: "."}
}

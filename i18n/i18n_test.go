package i18n

import "testing"

func TestDetectLanguage(t *testing.T) {
	if DetectLanguage("en-US,en;q=0.9") != "en" {
		t.Fatalf("expected en")
	}
	if DetectLanguage("FR-fr") != "fr" {
		t.Fatalf("expected fr for FR-fr")
	}
	if DetectLanguage("fr_FR.UTF-8") != "fr" {
		t.Fatalf("expected fr for POSIX locale")
	}
	if DetectLanguage("de-DE,fr;q=0.8") != "fr" {
		t.Fatalf("expected first supported language")
	}
	if DetectLanguage("") != "en" {
		t.Fatalf("expected default en")
	}
}

func TestTranslations(t *testing.T) {
	if T("en", "quote_number_missing") != "Quote number is required" {
		t.Fatalf("expected en message")
	}
	if T("fr", "quote_number_missing") != "Le numéro de devis est requis" {
		t.Fatalf("expected fr message")
	}
	// unknown code -> fallback to code
	if T("en", "__nope__") != "__nope__" {
		t.Fatalf("expected fallback to code")
	}
	// unknown language -> fallback to en translation
	if T("es", "total") != "TOTAL:" {
		t.Fatalf("expected en fallback for es lang")
	}
}

func TestCatalogsHaveSameKeys(t *testing.T) {
	for code := range catalogs[DefaultLanguage] {
		if _, ok := catalogs["fr"][code]; !ok {
			t.Errorf("fr catalog misses %q", code)
		}
	}
}

func TestNumbers(t *testing.T) {
	if n := Numbers("en"); n.Thousands != "," || n.Decimal != "." {
		t.Fatalf("en format = %+v", n)
	}
	if n := Numbers("fr"); n.Decimal != "," {
		t.Fatalf("fr format = %+v", n)
	}
}

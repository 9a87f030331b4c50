// Package checkout validates the checkout form without any rendering
// concerns, so the rules stay testable on their own. Validation failures are
// returned as per-field messages, never as errors.
package checkout

import (
	"regexp"
	"strings"

	"verdora/internal/domain"
)

var (
	reEmail  = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	rePhone  = regexp.MustCompile(`^\+?[0-9 ]{6,20}$`)
	reCAP    = regexp.MustCompile(`^[0-9]{5}$`)
	reExpiry = regexp.MustCompile(`^(0[1-9]|1[0-2])/[0-9]{2}$`)
	reCVV    = regexp.MustCompile(`^[0-9]{3,4}$`)
)

// Form carries the submitted checkout fields, named as the form posts them.
type Form struct {
	Name          string
	Surname       string
	Email         string
	Phone         string
	DeliveryMode  string
	Street        string
	StreetNo      string
	PostalCode    string
	City          string
	Province      string
	PaymentMethod string
	CardNumber    string
	Expiry        string
	CVV           string
}

// Required returns the field set the given delivery and payment modes demand.
// Re-deriving the set on every change is what clears errors on fields that
// are no longer required.
func Required(deliveryMode, paymentMethod string) []string {
	fields := []string{"nome", "cognome", "email", "telefono", "modalitaConsegna", "metodoPagamento"}
	if deliveryMode == domain.DeliveryShipping {
		fields = append(fields, "via", "civico", "cap", "citta", "provincia")
	}
	if paymentMethod == domain.PaymentCreditCard {
		fields = append(fields, "numeroCarta", "scadenza", "cvv")
	}
	return fields
}

// Validate checks every required field and returns all failures at once, so
// the form can mark each of them instead of stopping at the first.
func Validate(f Form) (map[string]string, bool) {
	errs := map[string]string{}
	for _, field := range Required(f.DeliveryMode, f.PaymentMethod) {
		if msg := checkField(f, field); msg != "" {
			errs[field] = msg
		}
	}
	return errs, len(errs) == 0
}

func checkField(f Form, field string) string {
	switch field {
	case "nome":
		return required(f.Name)
	case "cognome":
		return required(f.Surname)
	case "email":
		if msg := required(f.Email); msg != "" {
			return msg
		}
		if !reEmail.MatchString(strings.TrimSpace(f.Email)) {
			return "Email non valida"
		}
	case "telefono":
		if msg := required(f.Phone); msg != "" {
			return msg
		}
		if !rePhone.MatchString(strings.TrimSpace(f.Phone)) {
			return "Telefono non valido"
		}
	case "modalitaConsegna":
		if f.DeliveryMode != domain.DeliveryPickup && f.DeliveryMode != domain.DeliveryShipping {
			return "Seleziona una modalità di consegna"
		}
	case "metodoPagamento":
		switch f.PaymentMethod {
		case domain.PaymentCreditCard, domain.PaymentPayPal, domain.PaymentStaysPay:
		default:
			return "Seleziona un metodo di pagamento"
		}
	case "via":
		return required(f.Street)
	case "civico":
		return required(f.StreetNo)
	case "cap":
		if msg := required(f.PostalCode); msg != "" {
			return msg
		}
		if !reCAP.MatchString(strings.TrimSpace(f.PostalCode)) {
			return "CAP non valido"
		}
	case "citta":
		return required(f.City)
	case "provincia":
		return required(f.Province)
	case "numeroCarta":
		if !Luhn(f.CardNumber) {
			return "Numero carta non valido"
		}
	case "scadenza":
		if !reExpiry.MatchString(strings.TrimSpace(f.Expiry)) {
			return "Scadenza non valida (MM/AA)"
		}
	case "cvv":
		if !reCVV.MatchString(strings.TrimSpace(f.CVV)) {
			return "CVV non valido"
		}
	}
	return ""
}

func required(s string) string {
	if strings.TrimSpace(s) == "" {
		return "Campo obbligatorio"
	}
	return ""
}

// Luhn reports whether the digit string passes the checksum: double every
// second digit from the right, subtract 9 when the double exceeds 9, sum,
// valid iff sum mod 10 is 0. Empty or non-digit input is invalid.
func Luhn(number string) bool {
	number = strings.ReplaceAll(strings.TrimSpace(number), " ", "")
	if number == "" {
		return false
	}
	sum := 0
	double := false
	for i := len(number) - 1; i >= 0; i-- {
		d := number[i]
		if d < '0' || d > '9' {
			return false
		}
		n := int(d - '0')
		if double {
			n *= 2
			if n > 9 {
				n -= 9
			}
		}
		sum += n
		double = !double
	}
	return sum%10 == 0
}

// MaskCard keeps only the last four digits. The full number never leaves the
// checkout flow.
func MaskCard(number string) string {
	number = strings.ReplaceAll(strings.TrimSpace(number), " ", "")
	if len(number) < 4 {
		return ""
	}
	return "****-****-****-" + number[len(number)-4:]
}

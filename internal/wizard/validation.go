package wizard

import (
	"errors"
	"strings"
	"unicode"
)

// Validation rules are pure functions of the current field values. They
// never contact the backend; a failing rule blocks the call entirely.
// Messages are the exact user-facing strings, in the product language.

var (
	ErrFINLength      = errors.New("FİN kodu 7 simvol olmalıdır")
	ErrPhoneLength    = errors.New("Telefon nömrəsi 9 rəqəm olmalıdır")
	ErrOTPLength      = errors.New("OTP 6 rəqəm olmalıdır")
	ErrFieldsMissing  = errors.New("Bütün sahələri doldurun")
	ErrConsentMissing = errors.New("ASAN Finance və AKB razılıq ərizələrini qəbul etməlisiniz")
	ErrAmountRange    = errors.New("Məbləğ 100 və 50000 AZN aralığında olmalıdır")
	ErrTermRange      = errors.New("Müddət 6 və 59 ay aralığında olmalıdır")
	ErrCardNumber     = errors.New("Kart nömrəsi 16 rəqəm olmalıdır")
	ErrBranchMissing  = errors.New("Filial seçin")
	ErrAddressMissing = errors.New("Çatdırılma ünvanını daxil edin")
)

// NormalizeFIN uppercases the input and truncates it to the FIN length.
func NormalizeFIN(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) > 7 {
		s = s[:7]
	}
	return s
}

// NormalizePhone strips every non-digit and truncates to 9 digits, the
// local number without country prefix.
func NormalizePhone(s string) string {
	digits := keepDigits(s)
	if len(digits) > 9 {
		digits = digits[:9]
	}
	return digits
}

// NormalizeCardNumber strips every non-digit and truncates to 16 digits.
func NormalizeCardNumber(s string) string {
	digits := keepDigits(s)
	if len(digits) > 16 {
		digits = digits[:16]
	}
	return digits
}

func keepDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidateFIN requires exactly 7 characters.
func ValidateFIN(fin string) error {
	if len(fin) != 7 {
		return ErrFINLength
	}
	return nil
}

// ValidatePhone requires exactly 9 digits.
func ValidatePhone(phone string) error {
	if len(phone) != 9 || keepDigits(phone) != phone {
		return ErrPhoneLength
	}
	return nil
}

// ValidateOTPCode requires exactly 6 digits.
func ValidateOTPCode(code string) error {
	if len(code) != 6 || keepDigits(code) != code {
		return ErrOTPLength
	}
	return nil
}

// ValidatePersonalInfo requires every personal field to be filled in.
func ValidatePersonalInfo(info PersonalInfo) error {
	if info.FirstName == "" || info.LastName == "" || info.FIN == "" ||
		info.DateOfBirth == "" || info.Address == "" || info.MonthlyIncome <= 0 {
		return ErrFieldsMissing
	}
	return nil
}

// ValidateConsent requires both agreements.
func ValidateConsent(terms, privacy bool) error {
	if !terms || !privacy {
		return ErrConsentMissing
	}
	return nil
}

// ValidateLoanRequest bounds the requested amount and term.
func ValidateLoanRequest(req LoanRequest) error {
	if req.Amount < MinAmount || req.Amount > MaxAmount {
		return ErrAmountRange
	}
	if req.TermMonths < MinTermMonths || req.TermMonths > MaxTermMonths {
		return ErrTermRange
	}
	return nil
}

// ValidateDelivery requires the detail field matching the chosen method.
func ValidateDelivery(d Delivery) error {
	switch d.Method {
	case DeliveryCard:
		if len(d.CardNumber) != 16 || keepDigits(d.CardNumber) != d.CardNumber {
			return ErrCardNumber
		}
	case DeliveryBranch:
		if d.BranchID == "" {
			return ErrBranchMissing
		}
	case DeliveryCourier:
		if strings.TrimSpace(d.CourierAddress) == "" {
			return ErrAddressMissing
		}
	}
	return nil
}

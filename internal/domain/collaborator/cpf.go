package collaborator

const cpfLength = 11

// NormalizeCPF drops every character that is not an ASCII digit.
func NormalizeCPF(raw string) string {
	digits := make([]byte, 0, cpfLength)
	for i := 0; i < len(raw); i++ {
		if raw[i] >= '0' && raw[i] <= '9' {
			digits = append(digits, raw[i])
		}
	}
	return string(digits)
}

func ValidateCPF(raw string) error {
	cpf := NormalizeCPF(raw)
	if len(cpf) != cpfLength || allSameDigit(cpf) {
		return ErrCPFInvalidFormat
	}

	for pos := 9; pos < cpfLength; pos++ {
		if cpf[pos]-'0' != checkDigit(cpf[:pos]) {
			return ErrCPFChecksumMismatch
		}
	}
	return nil
}

// checkDigit weights the prefix from len(prefix)+1 down to 2.
func checkDigit(prefix string) byte {
	sum := 0
	weight := len(prefix) + 1
	for i := 0; i < len(prefix); i++ {
		sum += int(prefix[i]-'0') * weight
		weight--
	}

	rem := sum % 11
	if rem < 2 {
		return 0
	}
	return byte(11 - rem)
}

func allSameDigit(cpf string) bool {
	for i := 1; i < len(cpf); i++ {
		if cpf[i] != cpf[0] {
			return false
		}
	}
	return true
}

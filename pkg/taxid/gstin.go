// Package taxid valida identificadores fiscales de clientes de India (GSTIN y PAN).
package taxid

import (
	"fmt"
	"strings"
)

// alfabeto del GSTIN: cada carácter vale su posición (0-9, luego A=10 … Z=35).
const gstinCharset = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// GSTINLength largo fijo del GSTIN: 2 estado + 10 PAN + entidad + 'Z' + verificador.
const GSTINLength = 15

// Normalize quita espacios y pasa a mayúsculas.
func Normalize(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// ValidateGSTIN valida formato y carácter de verificación (módulo 36) de un GSTIN.
// Acepta minúsculas y espacios alrededor.
func ValidateGSTIN(gstin string) error {
	g := Normalize(gstin)
	if len(g) != GSTINLength {
		return fmt.Errorf("taxid: GSTIN debe tener %d caracteres, se recibieron %d", GSTINLength, len(g))
	}
	if g[0] < '0' || g[0] > '9' || g[1] < '0' || g[1] > '9' {
		return fmt.Errorf("taxid: GSTIN debe iniciar con el código de estado (2 dígitos)")
	}
	if err := ValidatePAN(g[2:12]); err != nil {
		return fmt.Errorf("taxid: GSTIN con PAN inválido: %w", err)
	}
	expected, err := ComputeGSTINCheckChar(g[:14])
	if err != nil {
		return err
	}
	if g[14] != expected {
		return fmt.Errorf("taxid: carácter de verificación del GSTIN inválido: esperado %c, recibido %c", expected, g[14])
	}
	return nil
}

// ComputeGSTINCheckChar calcula el carácter de verificación para los 14 primeros caracteres.
// Los factores alternan 1 y 2; cada producto suma cociente y resto en base 36.
func ComputeGSTINCheckChar(base string) (byte, error) {
	b := Normalize(base)
	if len(b) < GSTINLength-1 {
		return 0, fmt.Errorf("taxid: se requieren %d caracteres para calcular el verificador, se recibieron %d", GSTINLength-1, len(b))
	}
	sum := 0
	for i := 0; i < GSTINLength-1; i++ {
		v := strings.IndexByte(gstinCharset, b[i])
		if v < 0 {
			return 0, fmt.Errorf("taxid: carácter inválido %q en la posición %d", b[i], i+1)
		}
		p := v * (1 + i%2)
		sum += p/36 + p%36
	}
	return gstinCharset[(36-sum%36)%36], nil
}

// ValidatePAN valida el formato del PAN: 5 letras, 4 dígitos, 1 letra.
func ValidatePAN(pan string) error {
	p := Normalize(pan)
	if len(p) != 10 {
		return fmt.Errorf("taxid: PAN debe tener 10 caracteres, se recibieron %d", len(p))
	}
	for i := 0; i < 10; i++ {
		c := p[i]
		isLetter := c >= 'A' && c <= 'Z'
		isDigit := c >= '0' && c <= '9'
		if (i < 5 || i == 9) && !isLetter {
			return fmt.Errorf("taxid: PAN debe tener una letra en la posición %d", i+1)
		}
		if i >= 5 && i < 9 && !isDigit {
			return fmt.Errorf("taxid: PAN debe tener un dígito en la posición %d", i+1)
		}
	}
	return nil
}

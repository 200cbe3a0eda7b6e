package utils

import "math"

// RoundWithTwoDecimalPlace arredonda métricas derivadas para duas casas.
func RoundWithTwoDecimalPlace(f float64) float64 {
	if f == 0 {
		return 0
	}

	return math.Round(f*100) / 100
}

// SafeDivide retorna a/b, ou zero quando o divisor é zero. Evita NaN e
// infinito nas razões derivadas (CTR, CPC, ROAS).
func SafeDivide(a, b float64) float64 {
	if b == 0 {
		return 0
	}

	return a / b
}

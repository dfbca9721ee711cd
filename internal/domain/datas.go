package domain

import (
	"strings"
	"time"
)

// FormatarDataHora normaliza os vários formatos de data/hora da API para
// exibição em DD/MM/YYYY[ HH:MM]. Valores vazios viram "N/D" e valores
// irreconhecíveis são devolvidos truncados, como a fonte os mandou.
func FormatarDataHora(valor string) string {
	if valor == "" {
		return NaoDisponivel
	}
	if t, err := time.Parse(time.RFC3339, strings.Replace(valor, "Z", "+00:00", 1)); err == nil {
		return t.Format("02/01/2006 15:04")
	}
	sem, _, _ := strings.Cut(valor, "+")
	for _, layout := range []string{"2006-01-02T15:04:05", "2006-01-02T15:04", "2006-01-02"} {
		if t, err := time.Parse(layout, sem); err == nil {
			return t.Format("02/01/2006 15:04")
		}
	}
	if t, err := time.Parse("02/01/2006", valor); err == nil {
		return t.Format("02/01/2006")
	}
	if len(valor) >= 16 {
		return strings.ReplaceAll(valor[:16], "T", " ")
	}
	return valor
}

// FormatarDataCurta renormaliza datas DD/MM/YYYY das tabelas raspadas,
// preservando o texto original quando a data não parseia.
func FormatarDataCurta(valor string) string {
	if valor == "" {
		return NaoDisponivel
	}
	if t, err := time.Parse("02/01/2006", valor); err == nil {
		return t.Format("02/01/2006")
	}
	return valor
}

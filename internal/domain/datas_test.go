package domain

import "testing"

func TestFormatarDataHora(t *testing.T) {
	casos := []struct {
		entrada  string
		esperado string
	}{
		{"2024-03-12T14:00:00", "12/03/2024 14:00"},
		{"2024-03-12T14:00:00Z", "12/03/2024 14:00"},
		{"2024-03-12T14:00:00+03:00", "12/03/2024 14:00"},
		{"2024-03-12T14:00", "12/03/2024 14:00"},
		{"2024-03-12", "12/03/2024 00:00"},
		{"12/03/2024", "12/03/2024"},
		{"", "N/D"},
		{"texto irreconhecível longo", "texto irreconhec"},
		{"curto", "curto"},
	}
	for _, c := range casos {
		if got := FormatarDataHora(c.entrada); got != c.esperado {
			t.Errorf("FormatarDataHora(%q) = %q, esperava %q", c.entrada, got, c.esperado)
		}
	}
}

func TestFormatarDataCurta(t *testing.T) {
	if got := FormatarDataCurta("05/03/2024"); got != "05/03/2024" {
		t.Fatalf("data válida deveria se manter, veio %q", got)
	}
	if got := FormatarDataCurta("ontem"); got != "ontem" {
		t.Fatalf("texto não parseável deveria voltar bruto, veio %q", got)
	}
	if got := FormatarDataCurta(""); got != NaoDisponivel {
		t.Fatalf("vazio deveria virar N/D, veio %q", got)
	}
}

package pauta

import "pauta-plenario/internal/domain"

// Siglas e códigos numéricos de tipo que marcam embrulhos procedimentais
// (proposições-ponte PPP e PEP). Os códigos valem quando a sigla vem
// ausente ou com caixa diferente; são a referência autoritativa.
var siglasProcedurais = map[string]bool{"PPP": true, "PEP": true}

var codigosProcedurais = map[int64]bool{192: true, 442: true}

// principalDoItem resolve a proposição principal e a ementa de um item de
// pauta, desembrulhando PPP/PEP para a proposição relacionada quando ela
// vem junto. O id devolvido só é zero quando o item não carrega nenhuma
// identidade de proposição.
func principalDoItem(item domain.ItemPautaBruto) (int64, string) {
	prop := item.Proposicao
	if prop == nil {
		return 0, ""
	}
	embrulho := siglasProcedurais[prop.SiglaTipo] || codigosProcedurais[prop.CodTipo.Int64()]
	if embrulho && item.ProposicaoRelacionada != nil {
		rel := item.ProposicaoRelacionada
		return rel.ID.Int64(), rel.Ementa
	}
	return prop.ID.Int64(), prop.Ementa
}

package domain

import "errors"

// ErrUpstream indica falha de transporte ou status não-2xx na fonte.
var ErrUpstream = errors.New("falha na fonte de dados")

// ErrFormato indica que nem o JSON nem o XML da resposta puderam ser lidos.
var ErrFormato = errors.New("resposta da fonte em formato inesperado")

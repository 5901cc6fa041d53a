// Package validade calcula data de validade e status de vencimento dos
// documentos. Todas as funções recebem "hoje" como argumento — nada aqui lê
// o relógio, o status nunca é gravado no banco.
package validade

import (
	"time"

	"rh-documentos/internal/models"
)

type Status string

const (
	StatusValido        Status = "válido"
	StatusVencido       Status = "vencido"
	StatusProximoVencer Status = "proximo_vencer"
)

// documentos a até 30 dias do vencimento contam como "próximos a vencer"
const DiasAviso = 30

// Truncar descarta a hora e o fuso, mantendo só a data do calendário.
// Reconstruir em UTC faz datas vindas de formulário (meia-noite UTC) e as
// derivadas do relógio local caírem no mesmo instante comparável.
func Truncar(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// CalcularDataValidade deriva a data de validade a partir do tipo.
// Os prazos 3/6/12 meses são aproximados em dias corridos (90/180/365).
// Tipo desconhecido ou personalizado sem data devolvem nil.
func CalcularDataValidade(tipo models.TipoValidade, personalizada *time.Time, hoje time.Time) *time.Time {
	hoje = Truncar(hoje)

	switch tipo {
	case models.TipoIndeterminado:
		return nil
	case models.Tipo3Meses:
		d := hoje.AddDate(0, 0, 90)
		return &d
	case models.Tipo6Meses:
		d := hoje.AddDate(0, 0, 180)
		return &d
	case models.Tipo12Meses:
		d := hoje.AddDate(0, 0, 365)
		return &d
	case models.TipoPersonalizado:
		if personalizada == nil {
			return nil
		}
		d := Truncar(*personalizada)
		return &d
	}
	return nil
}

// StatusDocumento classifica o documento na data de referência:
// indeterminado é sempre válido; validade < hoje → vencido;
// hoje ≤ validade ≤ hoje+30d → próximo de vencer; senão válido.
func StatusDocumento(tipo models.TipoValidade, dataValidade *time.Time, hoje time.Time) Status {
	if tipo == models.TipoIndeterminado || dataValidade == nil {
		return StatusValido
	}

	hoje = Truncar(hoje)
	validade := Truncar(*dataValidade)

	if validade.Before(hoje) {
		return StatusVencido
	}
	if !validade.After(hoje.AddDate(0, 0, DiasAviso)) {
		return StatusProximoVencer
	}
	return StatusValido
}

package database

import (
	"time"

	"rh-documentos/internal/models"
	"rh-documentos/internal/validade"
)

// DocumentosVencidos devolve os documentos com validade anterior à data de
// referência, ignorando os de prazo indeterminado.
func DocumentosVencidos(hoje time.Time) ([]models.Documento, error) {
	hoje = validade.Truncar(hoje)

	var docs []models.Documento
	err := DB.Preload("Colaborador").
		Where("tipo_validade <> ? AND data_validade < ?", models.TipoIndeterminado, hoje).
		Order("data_validade asc").
		Find(&docs).Error
	return docs, err
}

// DocumentosProximosVencer devolve os documentos vencendo entre hoje e
// hoje+30 dias, inclusive nas duas pontas.
func DocumentosProximosVencer(hoje time.Time) ([]models.Documento, error) {
	hoje = validade.Truncar(hoje)
	limite := hoje.AddDate(0, 0, validade.DiasAviso)

	var docs []models.Documento
	err := DB.Preload("Colaborador").
		Where("tipo_validade <> ? AND data_validade >= ? AND data_validade <= ?",
			models.TipoIndeterminado, hoje, limite).
		Order("data_validade asc").
		Find(&docs).Error
	return docs, err
}

// DocumentoArquivos lista as chaves de arquivo referenciadas por algum
// documento, usadas na varredura de órfãos do storage.
func DocumentoArquivos() (map[string]bool, error) {
	var keys []string
	if err := DB.Model(&models.Documento{}).Pluck("arquivo", &keys).Error; err != nil {
		return nil, err
	}
	inUse := make(map[string]bool, len(keys))
	for _, k := range keys {
		inUse[k] = true
	}
	return inUse, nil
}

package validade

import (
	"testing"
	"time"

	"rh-documentos/internal/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCalcularDataValidadePrazosFixos(t *testing.T) {
	hoje := date(2024, time.January, 1)
	custom := date(2030, time.May, 10)

	cases := map[models.TipoValidade]time.Time{
		models.Tipo3Meses:  hoje.AddDate(0, 0, 90),
		models.Tipo6Meses:  hoje.AddDate(0, 0, 180),
		models.Tipo12Meses: hoje.AddDate(0, 0, 365),
	}

	for tipo, expected := range cases {
		// data personalizada não pode influenciar os prazos fixos
		got := CalcularDataValidade(tipo, &custom, hoje)
		if got == nil || !got.Equal(expected) {
			t.Fatalf("tipo %s: expected %v, got %v", tipo, expected, got)
		}
	}
}

func TestCalcularDataValidadeIndeterminado(t *testing.T) {
	hoje := date(2024, time.January, 1)
	custom := date(2030, time.May, 10)

	if got := CalcularDataValidade(models.TipoIndeterminado, nil, hoje); got != nil {
		t.Fatalf("expected nil for indeterminado, got %v", got)
	}
	if got := CalcularDataValidade(models.TipoIndeterminado, &custom, hoje); got != nil {
		t.Fatalf("expected nil for indeterminado with custom date, got %v", got)
	}
}

func TestCalcularDataValidadePersonalizado(t *testing.T) {
	hoje := date(2024, time.January, 1)
	custom := date(2025, time.March, 15)

	got := CalcularDataValidade(models.TipoPersonalizado, &custom, hoje)
	if got == nil || !got.Equal(custom) {
		t.Fatalf("expected %v, got %v", custom, got)
	}

	if got := CalcularDataValidade(models.TipoPersonalizado, nil, hoje); got != nil {
		t.Fatalf("expected nil for personalizado without date, got %v", got)
	}
}

func TestCalcularDataValidadeTipoDesconhecido(t *testing.T) {
	hoje := date(2024, time.January, 1)
	if got := CalcularDataValidade(models.TipoValidade("24"), nil, hoje); got != nil {
		t.Fatalf("expected nil for unknown tipo, got %v", got)
	}
}

func TestStatusDocumentoIndeterminado(t *testing.T) {
	hoje := date(2024, time.June, 1)
	passado := date(2020, time.January, 1)

	// indeterminado é válido mesmo com data de validade no passado
	if got := StatusDocumento(models.TipoIndeterminado, &passado, hoje); got != StatusValido {
		t.Fatalf("expected válido, got %s", got)
	}
	if got := StatusDocumento(models.TipoIndeterminado, nil, hoje); got != StatusValido {
		t.Fatalf("expected válido, got %s", got)
	}
}

func TestStatusDocumentoLimites(t *testing.T) {
	hoje := date(2024, time.June, 1)

	cases := []struct {
		name     string
		validade time.Time
		expected Status
	}{
		{"ontem", hoje.AddDate(0, 0, -1), StatusVencido},
		{"hoje", hoje, StatusProximoVencer},
		{"em 30 dias", hoje.AddDate(0, 0, 30), StatusProximoVencer},
		{"em 31 dias", hoje.AddDate(0, 0, 31), StatusValido},
		{"ano passado", hoje.AddDate(-1, 0, 0), StatusVencido},
	}

	for _, tc := range cases {
		v := tc.validade
		if got := StatusDocumento(models.Tipo12Meses, &v, hoje); got != tc.expected {
			t.Fatalf("%s: expected %s, got %s", tc.name, tc.expected, got)
		}
	}
}

func TestStatusDocumentoCenarioContrato(t *testing.T) {
	criacao := date(2024, time.January, 1)

	validade := CalcularDataValidade(models.Tipo12Meses, nil, criacao)
	if validade == nil || !validade.Equal(criacao.AddDate(0, 0, 365)) {
		t.Fatalf("expected %v, got %v", criacao.AddDate(0, 0, 365), validade)
	}

	if got := StatusDocumento(models.Tipo12Meses, validade, date(2024, time.December, 15)); got != StatusProximoVencer {
		t.Fatalf("expected proximo_vencer em 2024-12-15, got %s", got)
	}
	if got := StatusDocumento(models.Tipo12Meses, validade, validade.AddDate(0, 0, 1)); got != StatusVencido {
		t.Fatalf("expected vencido no dia seguinte ao vencimento, got %s", got)
	}
}

func TestStatusNaoDependeDoFusoLocal(t *testing.T) {
	// data como chega do formulário: meia-noite UTC
	vencimento := date(2024, time.June, 1)
	brt := time.FixedZone("BRT", -3*60*60)
	agora := time.Date(2024, time.June, 1, 9, 0, 0, 0, brt)

	// vencendo hoje, visto de um fuso a oeste de UTC, continua proximo_vencer
	if got := StatusDocumento(models.TipoPersonalizado, &vencimento, agora); got != StatusProximoVencer {
		t.Fatalf("expiry == today deve ser proximo_vencer, got %s", got)
	}

	ontem := date(2024, time.May, 31)
	if got := StatusDocumento(models.TipoPersonalizado, &ontem, agora); got != StatusVencido {
		t.Fatalf("véspera deve ser vencido, got %s", got)
	}

	// o cálculo a partir do relógio local produz uma data UTC comparável
	validade := CalcularDataValidade(models.Tipo3Meses, nil, agora)
	if validade == nil || !validade.Equal(date(2024, time.June, 1).AddDate(0, 0, 90)) {
		t.Fatalf("expected %v, got %v", date(2024, time.June, 1).AddDate(0, 0, 90), validade)
	}
}

func TestStatusIgnoraHora(t *testing.T) {
	validade := date(2024, time.June, 1)
	agora := time.Date(2024, time.June, 1, 23, 59, 0, 0, time.UTC)

	if got := StatusDocumento(models.TipoPersonalizado, &validade, agora); got != StatusProximoVencer {
		t.Fatalf("expected proximo_vencer, got %s", got)
	}
}

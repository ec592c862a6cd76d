package schedule

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	domain "github.com/ZapAtende01/whatsapp-crm/internal/domain/schedule"
)

// ======================================================
// LOAD (aggregate builder)
// ======================================================

type LoadSchedule struct {
	repo domain.Repository
}

func NewLoadSchedule(repo domain.Repository) *LoadSchedule {
	return &LoadSchedule{repo: repo}
}

// Execute monta a visão de 7 dias + regras + dias especiais futuros.
// Tenants sem linhas recebem os padrões só em memória: nada é gravado
// antes de um save explícito. Qualquer falha de leitura devolve erro
// sem aggregate parcial.
func (uc *LoadSchedule) Execute(
	ctx context.Context,
	tenantID string,
) (*domain.Aggregate, error) {

	rows, err := uc.repo.ListDayHours(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	settings, err := uc.repo.GetSettings(ctx, tenantID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		defaults := domain.DefaultSettings(tenantID)
		settings = &defaults
	}

	today := time.Now().Format("2006-01-02")
	specials, err := uc.repo.ListSpecialDaysFrom(ctx, tenantID, today)
	if err != nil {
		return nil, err
	}

	edits := make([]domain.SpecialDayEdit, 0, len(specials))
	for _, sd := range specials {
		edits = append(edits, domain.SpecialDayEdit{SpecialDay: sd})
	}

	return &domain.Aggregate{
		TenantID:    tenantID,
		Days:        domain.WeekFromRows(tenantID, rows),
		Settings:    *settings,
		SpecialDays: edits,
	}, nil
}

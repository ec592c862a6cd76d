package schedule

import (
	"context"
	"time"

	"github.com/ZapAtende01/whatsapp-crm/internal/audit"
	domain "github.com/ZapAtende01/whatsapp-crm/internal/domain/schedule"
	"github.com/ZapAtende01/whatsapp-crm/internal/models"
)

// ======================================================
// SAVE (editor controller, lado da persistência)
// ======================================================

const (
	GroupBusinessHours   = "business_hours"
	GroupBookingSettings = "booking_settings"
	GroupSpecialDays     = "special_days"
)

type GroupError struct {
	Group string `json:"group"`
	Err   error  `json:"-"`
}

// SaveResult descreve o desfecho de um save. Violations não vazio
// significa que nada foi escrito; Failed identifica os grupos que
// falharam — os restantes ficaram persistidos (sem rollback entre
// grupos, por desenho).
type SaveResult struct {
	Violations []domain.FieldViolation
	Failed     []GroupError
}

func (r *SaveResult) Ok() bool {
	return len(r.Violations) == 0 && len(r.Failed) == 0
}

func (r *SaveResult) FailedGroups() []string {
	out := make([]string, 0, len(r.Failed))
	for _, f := range r.Failed {
		out = append(out, f.Group)
	}
	return out
}

type SaveSchedule struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewSaveSchedule(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *SaveSchedule {
	return &SaveSchedule{
		repo:  repo,
		audit: audit,
	}
}

// Execute valida e grava o aggregate em três grupos independentes:
// 7 upserts de business_hours, 1 upsert de booking_settings e um
// upsert/delete por linha de special_days. A falha de um grupo não
// interrompe os seguintes.
func (uc *SaveSchedule) Execute(
	ctx context.Context,
	profileID string,
	agg *domain.Aggregate,
) *SaveResult {

	result := &SaveResult{}

	// --------------------------------------------------
	// 1️⃣ Validação local (nenhuma escrita em caso de erro)
	// --------------------------------------------------
	if v := domain.Validate(agg, time.Now()); len(v) > 0 {
		result.Violations = v
		return result
	}

	// --------------------------------------------------
	// 2️⃣ Horários semanais
	// --------------------------------------------------
	for i := range agg.Days {
		day := agg.Days[i]
		day.TenantID = agg.TenantID

		if err := uc.repo.UpsertDayHours(ctx, &day); err != nil {
			result.Failed = append(result.Failed, GroupError{
				Group: GroupBusinessHours,
				Err:   err,
			})
			break
		}
	}

	// --------------------------------------------------
	// 3️⃣ Regras de agendamento
	// --------------------------------------------------
	settings := agg.Settings
	settings.TenantID = agg.TenantID

	if err := uc.repo.UpsertSettings(ctx, &settings); err != nil {
		result.Failed = append(result.Failed, GroupError{
			Group: GroupBookingSettings,
			Err:   err,
		})
	}

	// --------------------------------------------------
	// 4️⃣ Dias especiais (upsert + delete explícito dos removidos)
	// --------------------------------------------------
	if err := uc.saveSpecialDays(ctx, agg); err != nil {
		result.Failed = append(result.Failed, GroupError{
			Group: GroupSpecialDays,
			Err:   err,
		})
	}

	if result.Ok() {
		uc.audit.Dispatch(audit.Event{
			TenantID:  agg.TenantID,
			ProfileID: &profileID,
			Action:    "schedule_saved",
			Entity:    "schedule",
		})
	}

	return result
}

func (uc *SaveSchedule) saveSpecialDays(
	ctx context.Context,
	agg *domain.Aggregate,
) error {

	for _, sd := range agg.SpecialDays {
		// Linhas novas descartadas antes do save nunca chegam aqui;
		// linhas persistidas removidas geram um DELETE real.
		if sd.Deleted {
			if !sd.IsNew && sd.Date != "" {
				if err := uc.repo.DeleteSpecialDay(ctx, agg.TenantID, sd.Date); err != nil {
					return err
				}
			}
			continue
		}

		if sd.Date == "" {
			continue
		}

		row := models.SpecialDay{
			TenantID: agg.TenantID,
			Date:     sd.Date,
			IsClosed: sd.IsClosed,
			Reason:   sd.Reason,
		}

		if err := uc.repo.UpsertSpecialDay(ctx, &row); err != nil {
			return err
		}
	}

	return nil
}

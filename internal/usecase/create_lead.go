package usecase

import (
	"context"
	"fmt"

	"leadflow/internal/entity"
)

type CreateLeadUseCase struct {
	Leads      entity.LeadRepositoryInterface
	Activities entity.ActivityRepositoryInterface
}

func NewCreateLeadUseCase(
	leads entity.LeadRepositoryInterface,
	activities entity.ActivityRepositoryInterface,
) *CreateLeadUseCase {
	return &CreateLeadUseCase{Leads: leads, Activities: activities}
}

func (uc *CreateLeadUseCase) Execute(ctx context.Context, input CreateLeadInput) (*entity.Lead, error) {
	lead, err := entity.NewLead(
		input.Company,
		input.ContactName,
		input.Email,
		input.Title,
		input.Website,
		input.Notes,
	)
	if err != nil {
		return nil, &DomainError{Code: CodeValidation, Message: err.Error()}
	}

	if err := uc.Leads.Create(ctx, lead); err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to create lead: " + err.Error()}
	}

	detail := fmt.Sprintf("Lead created for %s at %s", lead.ContactName, lead.Company)
	if err := uc.Activities.Create(ctx, entity.NewActivity(lead.ID, entity.ActivityCreated, detail)); err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to record activity: " + err.Error()}
	}

	return lead, nil
}

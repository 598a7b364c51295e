package usecase

import (
	"context"
	"errors"
	"fmt"

	"leadflow/internal/entity"
)

// SendOutreachUseCase emails a previously generated draft to the lead.
type SendOutreachUseCase struct {
	Leads      entity.LeadRepositoryInterface
	Messages   entity.MessageRepositoryInterface
	Activities entity.ActivityRepositoryInterface
	Mailer     OutreachMailer
}

func NewSendOutreachUseCase(
	leads entity.LeadRepositoryInterface,
	messages entity.MessageRepositoryInterface,
	activities entity.ActivityRepositoryInterface,
	mailer OutreachMailer,
) *SendOutreachUseCase {
	return &SendOutreachUseCase{Leads: leads, Messages: messages, Activities: activities, Mailer: mailer}
}

func (uc *SendOutreachUseCase) Execute(ctx context.Context, leadID, messageID string) error {
	if uc.Mailer == nil {
		return &DomainError{Code: CodeMailFailed, Message: "outbound email is not configured"}
	}

	lead, err := uc.Leads.FindByID(ctx, leadID)
	if err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			return NewLeadNotFoundError(leadID)
		}
		return &TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()}
	}

	msg, err := uc.Messages.FindByID(ctx, messageID)
	if err != nil {
		if errors.Is(err, entity.ErrMessageNotFound) {
			return &DomainError{Code: CodeLeadNotFound, Message: "message not found: " + messageID}
		}
		return &TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()}
	}
	if msg.LeadID != lead.ID {
		return &DomainError{Code: CodeLeadNotFound, Message: "message does not belong to lead"}
	}

	if err := uc.Mailer.SendDraft(lead.Email, lead.ContactName, lead.Company, msg.Content); err != nil {
		return &DomainError{Code: CodeMailFailed, Message: "failed to send email: " + err.Error()}
	}

	detail := fmt.Sprintf("Outreach email sent to %s", lead.Email)
	if err := uc.Activities.Create(ctx, entity.NewActivity(lead.ID, entity.ActivityMessaged, detail)); err != nil {
		return &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to record activity: " + err.Error()}
	}

	return nil
}

package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"

	"github.com/adharshSciPy/DenStack-Superadmin/components/console"
)

// UpdateCriteriaInput replaces the active section's search term and field
// filters. Omitted fields fall back to "All".
type UpdateCriteriaInput struct {
	SearchTerm string            `json:"searchTerm"`
	Fields     map[string]string `json:"fields,omitempty"`
}

// Criteria converts the input into filter criteria.
func (in UpdateCriteriaInput) Criteria() console.FilterCriteria {
	criteria := console.DefaultCriteria()
	criteria.SearchTerm = in.SearchTerm
	if len(in.Fields) > 0 {
		criteria.Fields = make(map[string]string, len(in.Fields))
		for k, v := range in.Fields {
			criteria.Fields[k] = v
		}
	}
	return criteria
}

type criteriaService interface {
	SetCriteria(ctx context.Context, criteria console.FilterCriteria) error
}

// UpdateCriteriaCommand validates and applies filter criteria.
type UpdateCriteriaCommand struct {
	service   criteriaService
	telemetry Telemetry
}

// NewUpdateCriteriaCommand creates a command instance.
func NewUpdateCriteriaCommand(service criteriaService, telemetry Telemetry) *UpdateCriteriaCommand {
	return &UpdateCriteriaCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[UpdateCriteriaInput] = (*UpdateCriteriaCommand)(nil)

// Execute applies the criteria.
func (c *UpdateCriteriaCommand) Execute(ctx context.Context, msg UpdateCriteriaInput) error {
	if c.service == nil {
		return errors.New("update criteria command requires service")
	}
	criteria := msg.Criteria()
	if err := c.service.SetCriteria(ctx, criteria); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "console.command.criteria", map[string]any{
		"search": criteria.SearchTerm != "",
		"fields": len(msg.Fields),
	})
	return nil
}

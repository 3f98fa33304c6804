package usecase

import (
	"context"

	"github.com/go-playground/validator/v10"
)

// RecordValidator checks normalized bundles against the record schemas before
// anything reaches the sink.
type RecordValidator struct {
	validate *validator.Validate
}

func NewRecordValidator() *RecordValidator {
	return &RecordValidator{validate: validator.New()}
}

// ValidateBundle returns the first schema violation found, as a *SchemaError.
func (v *RecordValidator) ValidateBundle(ctx context.Context, bundle *MatchBundle) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.RecordValidator.ValidateBundle")
	defer span.End()

	matchID := bundle.Match.MatchID
	if err := v.check(ctx, "match", matchID, bundle.Match); err != nil {
		return err
	}
	for i := range bundle.Events {
		if err := v.check(ctx, "event", matchID, bundle.Events[i]); err != nil {
			return err
		}
	}
	for i := range bundle.Players {
		if err := v.check(ctx, "player", matchID, bundle.Players[i]); err != nil {
			return err
		}
	}
	for i := range bundle.Lineups {
		if err := v.check(ctx, "lineup", matchID, bundle.Lineups[i]); err != nil {
			return err
		}
	}

	return nil
}

func (v *RecordValidator) check(ctx context.Context, kind string, matchID int, rec any) error {
	err := v.validate.StructCtx(ctx, rec)
	if err == nil {
		return nil
	}

	field := ""
	if fieldErrs, ok := err.(validator.ValidationErrors); ok && len(fieldErrs) > 0 {
		field = fieldErrs[0].Field()
	}

	return &SchemaError{Kind: kind, Field: field, MatchID: matchID, Err: err}
}

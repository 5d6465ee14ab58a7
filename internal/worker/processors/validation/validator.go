package validation

import (
	"errors"
	"fmt"

	"promfeed/internal/logger"
	"promfeed/internal/models"

	"github.com/go-playground/validator/v10"
)

// Issue is a single failed rule on a resolved offer.
type Issue struct {
	OfferID string
	Field   string
	Rule    string
	Value   interface{}
}

func (i *Issue) Error() string {
	return fmt.Sprintf("offer %s: field %s failed %q (value %q)", i.OfferID, i.Field, i.Rule, fmt.Sprint(i.Value))
}

// Validator checks offers against the marketplace field rules declared on
// models.Offer.
type Validator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func New(logger *logger.Logger) *Validator {
	return &Validator{
		validate: validator.New(),
		logger:   logger,
	}
}

// ValidateOffer returns one Issue per failed rule, or nil.
func (v *Validator) ValidateOffer(offer *models.Offer) []*Issue {
	err := v.validate.Struct(offer)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []*Issue{{OfferID: offer.ID, Rule: err.Error()}}
	}

	issues := make([]*Issue, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		issues = append(issues, &Issue{
			OfferID: offer.ID,
			Field:   fe.Field(),
			Rule:    fe.Tag(),
			Value:   fe.Value(),
		})
	}
	return issues
}

// ValidateOffers checks every offer and returns the issues as errors.
func (v *Validator) ValidateOffers(offers []models.Offer) []error {
	var problems []error
	for i := range offers {
		for _, issue := range v.ValidateOffer(&offers[i]) {
			problems = append(problems, issue)
		}
	}
	v.logger.Debug("Validated %d offers, %d issues", len(offers), len(problems))
	return problems
}

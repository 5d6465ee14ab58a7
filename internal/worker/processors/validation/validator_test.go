package validation

import (
	"errors"
	"io"
	"testing"

	"promfeed/internal/logger"
	"promfeed/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validOffer() models.Offer {
	return models.Offer{
		ID:         "1410065411",
		GroupID:    "1410065411",
		Name:       "Shirt A",
		URL:        "https://rubaska.com/products/shirt-a",
		Price:      "500.00",
		Currency:   "UAH",
		CategoryID: "129880800",
		VendorCode: "SH-A",
	}
}

func TestValidateOfferValid(t *testing.T) {
	v := New(logger.NewWithWriter(io.Discard, "info", "text"))
	offer := validOffer()
	assert.Empty(t, v.ValidateOffer(&offer))

	offer.URL = ""
	assert.Empty(t, v.ValidateOffer(&offer), "url is optional")
}

func TestValidateOfferIssues(t *testing.T) {
	v := New(logger.NewWithWriter(io.Discard, "info", "text"))

	offer := validOffer()
	offer.Price = ""
	offer.Currency = "UAHS"
	offer.URL = "not a url"

	issues := v.ValidateOffer(&offer)
	require.Len(t, issues, 3)

	rules := map[string]string{}
	for _, issue := range issues {
		assert.Equal(t, "1410065411", issue.OfferID)
		rules[issue.Field] = issue.Rule
	}
	assert.Equal(t, map[string]string{"Price": "required", "Currency": "len", "URL": "url"}, rules)
}

func TestValidateOffers(t *testing.T) {
	v := New(logger.NewWithWriter(io.Discard, "info", "text"))

	bad := validOffer()
	bad.ID = "abc"
	problems := v.ValidateOffers([]models.Offer{validOffer(), bad})
	require.Len(t, problems, 1)

	var issue *Issue
	require.True(t, errors.As(problems[0], &issue))
	assert.Equal(t, "ID", issue.Field)
	assert.Equal(t, "numeric", issue.Rule)
	assert.Contains(t, problems[0].Error(), `offer abc: field ID failed "numeric"`)
}

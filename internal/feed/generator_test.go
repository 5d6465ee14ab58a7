package feed

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"promfeed/internal/logger"
	"promfeed/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	products []models.Product
	err      error
	calls    int
}

func (s *fakeSource) FetchCatalog(ctx context.Context) ([]models.Product, error) {
	s.calls++
	return s.products, s.err
}

type fakeValidator struct {
	seen int
}

func (v *fakeValidator) ValidateOffers(offers []models.Offer) []error {
	v.seen += len(offers)
	return []error{errors.New("offer 1: Price failed required")}
}

func TestGenerate(t *testing.T) {
	var logs bytes.Buffer
	source := &fakeSource{products: trickyProducts()}
	validator := &fakeValidator{}
	g := NewGenerator(source, testOptions(DialectHybrid), validator, logger.NewWithWriter(&logs, "info", "text"))

	res, err := g.Generate(context.Background(), Override{})
	require.NoError(t, err)

	assert.NotEmpty(t, res.RunID)
	assert.Equal(t, DialectHybrid, res.Dialect)
	assert.Equal(t, 2, res.Products)
	assert.Equal(t, 2, res.Offers)
	assert.Equal(t, 2, validator.seen)
	assert.Equal(t, encode(t, DialectHybrid, trickyProducts()), res.Data)

	assert.Contains(t, logs.String(), "run_id="+res.RunID)
	assert.Contains(t, logs.String(), "Offer failed validation")
}

func TestGenerateOverride(t *testing.T) {
	source := &fakeSource{products: []models.Product{shirtA()}}
	g := NewGenerator(source, testOptions(DialectHybrid), nil, logger.NewWithWriter(io.Discard, "info", "text"))

	res, err := g.Generate(context.Background(), Override{Dialect: DialectRSS})
	require.NoError(t, err)
	assert.Equal(t, DialectRSS, res.Dialect)
	assert.Contains(t, string(res.Data), "<channel>")

	res2, err := g.Generate(context.Background(), Override{})
	require.NoError(t, err)
	assert.Equal(t, DialectHybrid, res2.Dialect, "overrides do not stick")
	assert.NotEqual(t, res.RunID, res2.RunID)
}

func TestGenerateFetchFailure(t *testing.T) {
	source := &fakeSource{err: errors.New("upstream down")}
	g := NewGenerator(source, testOptions(DialectYML), nil, logger.NewWithWriter(io.Discard, "info", "text"))

	res, err := g.Generate(context.Background(), Override{})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "upstream down"))
	assert.NotEmpty(t, res.RunID)
	assert.Nil(t, res.Data)
}

func TestParseOverride(t *testing.T) {
	o, err := ParseOverride("", "")
	require.NoError(t, err)
	assert.Equal(t, Override{}, o)

	o, err = ParseOverride("yml", "variant")
	require.NoError(t, err)
	assert.Equal(t, Override{Dialect: DialectYML, Mode: OfferPerVariant}, o)

	_, err = ParseOverride("json", "")
	assert.Error(t, err)
	_, err = ParseOverride("", "sku")
	assert.Error(t, err)
}

package adapters_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MALLLAG/Domain-Modeling-Made-Functional/internal/order/adapters"
)

func TestLetterRendererIncludesOrderDetails(t *testing.T) {
	letter := adapters.NewLetterRenderer().Create(samplePriced(t))

	assert.True(t, strings.Contains(letter.Body, "Dear Ada Lovelace"))
	assert.True(t, strings.Contains(letter.Body, "order order-1"))
	assert.True(t, strings.Contains(letter.Body, "W1234"))
	assert.True(t, strings.Contains(letter.Body, "G123"))
	assert.True(t, strings.Contains(letter.Body, "Amount to bill: 47.50"))
	assert.True(t, strings.Contains(letter.Body, "Springfield 12345"))
}

func TestLetterRendererIsDeterministic(t *testing.T) {
	renderer := adapters.NewLetterRenderer()
	priced := samplePriced(t)

	assert.Equal(t, renderer.Create(priced), renderer.Create(priced))
}

package flow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogGraphClosure(t *testing.T) {
	source := &fakeSource{accounts: makeOptions("act", 3), pages: makeOptions("page", 3)}
	catalog := NewCatalog(source, 1)

	// Every transition target must exist, for both the step-by-step and the
	// template traversal.
	variants := []Fields{
		{},
		{StepStart: EnumValue(templateMode)},
	}

	for _, step := range catalog.Steps() {
		for _, fields := range variants {
			next := step.Next(fields)
			assert.True(t, catalog.Has(next), "step %s points at unknown step %s", step.Name(), next)
		}
	}
}

func TestCatalogStart(t *testing.T) {
	source := &fakeSource{}
	catalog := NewCatalog(source, 1)

	assert.Equal(t, StepStart, catalog.Start())

	step, ok := catalog.Get(StepStart)
	require.True(t, ok)
	assert.Equal(t, StepStart, step.Name())
}

func TestCatalogHasTerminal(t *testing.T) {
	catalog := NewCatalog(&fakeSource{}, 1)

	assert.True(t, catalog.Has(StepComplete))
	assert.False(t, catalog.Has(StepName("nonexistent")))

	_, ok := catalog.Get(StepComplete)
	assert.False(t, ok, "the terminal pseudo-step has no definition")
}

func TestCatalogTemplateBranch(t *testing.T) {
	catalog := NewCatalog(&fakeSource{}, 1)

	fanpage, ok := catalog.Get(StepFanpage)
	require.True(t, ok)

	assert.Equal(t, StepCampaignName, fanpage.Next(Fields{}))
	assert.Equal(t, StepTemplateBulk, fanpage.Next(Fields{StepStart: EnumValue(templateMode)}))
}

package cleaner

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestLoader(t *testing.T) {
	svc, _ := newTestService(t)
	feature := NewFeature(svc)

	assert.Equal(t, "cleaner", feature.Name())
	assert.True(t, feature.IsEnabled())

	app := fiber.New()
	assert.NoError(t, feature.Load(app))
	assert.False(t, NewFeature(nil).IsEnabled())
}

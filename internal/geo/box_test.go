package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_BoundingBoxAround_ShouldContainEveryPointInRadius(t *testing.T) {
	box, ok := BoundingBoxAround(atlanta, 600)
	assert.True(t, ok)

	candidates := []Point{atlanta, newYork, chicago, marietta, NewPoint(25.76, -80.19), NewPoint(47.6, -122.3)}
	for _, p := range candidates {
		if d, _ := Distance(atlanta, p); d <= 600 {
			assert.True(t, box.Contains(p), "point at %.1f miles must be inside the box", d)
		}
	}
	assert.False(t, box.Contains(NewPoint(47.6, -122.3)))
	assert.False(t, box.Contains(Point{}))
}

func Test_BoundingBoxAround_NearAntimeridian_ShouldWrap(t *testing.T) {
	box, ok := BoundingBoxAround(NewPoint(0, 179.9), 50)
	assert.True(t, ok)
	assert.True(t, box.WrapsAntimeridian)
	assert.True(t, box.Contains(NewPoint(0, -179.9)))
	assert.True(t, box.Contains(NewPoint(0, 179.5)))
	assert.False(t, box.Contains(NewPoint(0, 0)))
}

func Test_BoundingBoxAround_WhenUnbounded_ShouldReportFalse(t *testing.T) {
	_, ok := BoundingBoxAround(Point{}, 10)
	assert.False(t, ok)

	_, ok = BoundingBoxAround(atlanta, 0)
	assert.False(t, ok)

	_, ok = BoundingBoxAround(NewPoint(89.5, 0), 100)
	assert.False(t, ok)
}

package waste

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"liyu1981.xyz/prioribin-service/pkg/models"
)

func TestClassifyThresholds(t *testing.T) {
	cases := []struct {
		fillLevel int
		want      models.Status
	}{
		{0, models.StatusNormal},
		{69, models.StatusNormal},
		{70, models.StatusWarning},
		{89, models.StatusWarning},
		{90, models.StatusCritical},
		{100, models.StatusCritical},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, Classify(c.fillLevel), "fill level %d", c.fillLevel)
	}
}

func TestClassifyOutOfRangeIsPermissive(t *testing.T) {
	assert.Equal(t, models.StatusNormal, Classify(-20))
	assert.Equal(t, models.StatusCritical, Classify(250))
}

func TestClassifyIsMonotonic(t *testing.T) {
	prev := Classify(-1000)
	for level := -999; level <= 1000; level++ {
		current := Classify(level)
		if current.Rank() < prev.Rank() {
			t.Fatalf("severity dropped from %s to %s at fill level %d", prev, current, level)
		}
		prev = current
	}
}

package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvironmentVariables(t *testing.T) {
	t.Setenv("METRO_TEST_VALUE", "a=b")
	t.Setenv("OTHER_TEST_VALUE", "ignored")

	env := GetEnvironmentVariables("METRO_")

	assert.Equal(t, "a=b", env["METRO_TEST_VALUE"])
	assert.NotContains(t, env, "OTHER_TEST_VALUE")
}

func TestClockOnDate(t *testing.T) {
	tehran := time.FixedZone("IRST", 3*3600+1800)
	date := time.Date(2024, time.June, 3, 1, 2, 3, 0, tehran)
	clock := time.Date(0, time.January, 1, 17, 45, 30, 0, time.UTC)

	assert.Equal(t, time.Date(2024, time.June, 3, 17, 45, 0, 0, tehran), ClockOnDate(date, clock))
}

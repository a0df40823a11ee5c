package db

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeExprPadsWithoutTruncating(t *testing.T) {
	assert.Equal(t,
		"lpad(NULLIF(t.station_code, ''), greatest(char_length(NULLIF(t.station_code, '')), 4), '0')",
		codeExpr("t.station_code"))
}

func TestCodeExprDropsEmptyCodes(t *testing.T) {
	// A blank stored code must normalize to SQL NULL, never to '0000':
	// NULL = NULL is not true, so blank-coded rows can neither join each
	// other nor match a padded lookup key. Every query that compares codes
	// goes through codeExpr on both sides.
	for _, col := range []string{"t.station_code", "m.station_code", "station_code"} {
		expr := codeExpr(col)
		assert.True(t, strings.HasPrefix(expr, "lpad(NULLIF("+col+", '')"), expr)
	}

	for _, sql := range []string{
		vitalitySQL,
		timelapseSQL,
		clusterFeaturesSQL,
		stationsWithTrafficSQL,
		stationBasicSQL,
		stationHourlySQL,
		stationDayTypeSQL,
	} {
		assert.NotContains(t, sql, "lpad(t.station_code")
		assert.NotContains(t, sql, "lpad(m.station_code")
		assert.NotContains(t, sql, "lpad(station_code")
	}
}

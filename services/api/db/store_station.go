package db

import "context"

// StationInfo is one distinct (station, line) pair that has traffic rows.
type StationInfo struct {
	StationName string
	LineName    string
	StationCode string
}

var stationsWithTrafficSQL = `
	SELECT DISTINCT m.station_name, m.line_name, ` + codeExpr("m.station_code") + ` AS station_code
	FROM station_meta m
	JOIN tap_log t ON ` + codeExpr("m.station_code") + ` = ` + codeExpr("t.station_code") + `
	ORDER BY m.station_name, m.line_name
`

// StationsWithTraffic lists distinct stations that actually appear in the
// current traffic log.
func (s *Store) StationsWithTraffic(ctx context.Context) ([]StationInfo, error) {
	rows, err := s.pool.Query(ctx, stationsWithTrafficSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]StationInfo, 0)
	for rows.Next() {
		var r StationInfo
		if err := rows.Scan(&r.StationName, &r.LineName, &r.StationCode); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// StationBasic is the headline aggregate of a single-station lookup.
type StationBasic struct {
	StationName string
	TotalVol    int64
	SeniorVol   int64
}

var stationBasicSQL = `
	SELECT MAX(station_name) AS station_name,
	       COALESCE(SUM(boardings + alightings), 0) AS total_vol,
	       COALESCE(SUM(CASE WHEN ` + elderlyPred + ` THEN boardings + alightings ELSE 0 END), 0) AS senior_vol
	FROM tap_log
	WHERE ` + codeExpr("station_code") + ` = $1
`

// StationBasic returns name and total/elderly volume for one normalized
// station code. A nil result means the code matched no rows.
func (s *Store) StationBasic(ctx context.Context, code string) (*StationBasic, error) {
	var name *string
	var b StationBasic
	if err := s.pool.QueryRow(ctx, stationBasicSQL, code).Scan(&name, &b.TotalVol, &b.SeniorVol); err != nil {
		return nil, err
	}
	if name == nil {
		return nil, nil
	}
	b.StationName = *name
	return &b, nil
}

// HourVolume is one hour-of-day elderly volume for a single station.
type HourVolume struct {
	Hour   int
	Volume int64
}

var stationHourlySQL = `
	SELECT hour_of_day, SUM(boardings + alightings) AS volume
	FROM tap_log
	WHERE ` + codeExpr("station_code") + ` = $1 AND ` + elderlyPred + `
	GROUP BY hour_of_day
	ORDER BY hour_of_day
`

// StationHourly returns the elderly hourly pattern for one normalized code.
func (s *Store) StationHourly(ctx context.Context, code string) ([]HourVolume, error) {
	rows, err := s.pool.Query(ctx, stationHourlySQL, code)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]HourVolume, 0)
	for rows.Next() {
		var r HourVolume
		if err := rows.Scan(&r.Hour, &r.Volume); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// DayTypeVolume is a weekday/weekend elderly volume split for one station.
type DayTypeVolume struct {
	DayType string
	Volume  int64
}

var stationDayTypeSQL = `
	SELECT CASE WHEN extract(isodow FROM to_date(travel_date, 'YYYYMMDD')) IN (6, 7)
	            THEN 'Weekend' ELSE 'Weekday' END AS day_type,
	       SUM(boardings + alightings) AS volume
	FROM tap_log
	WHERE ` + codeExpr("station_code") + ` = $1 AND ` + elderlyPred + `
	GROUP BY 1
`

// StationDayType returns the weekday/weekend elderly split for one
// normalized code.
func (s *Store) StationDayType(ctx context.Context, code string) ([]DayTypeVolume, error) {
	rows, err := s.pool.Query(ctx, stationDayTypeSQL, code)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]DayTypeVolume, 0)
	for rows.Next() {
		var r DayTypeVolume
		if err := rows.Scan(&r.DayType, &r.Volume); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

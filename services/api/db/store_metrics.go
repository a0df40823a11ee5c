package db

import "context"

// VitalityRow is one station's raw volume aggregates for the vitality index.
type VitalityRow struct {
	StationName string
	StationCode string
	Lat         float64
	Lon         float64
	TotalVol    int64
	SeniorVol   int64
	MorningVol  int64
	EveningVol  int64
}

var vitalitySQL = `
	SELECT t.station_name, ` + codeExpr("t.station_code") + ` AS station_code,
	       m.lat, m.lon,
	       SUM(t.boardings + t.alightings) AS total_vol,
	       SUM(CASE WHEN ` + elderlyPred + ` THEN t.boardings + t.alightings ELSE 0 END) AS senior_vol,
	       SUM(CASE WHEN t.hour_of_day BETWEEN 7 AND 10 THEN t.boardings + t.alightings ELSE 0 END) AS morning_vol,
	       SUM(CASE WHEN t.hour_of_day BETWEEN 17 AND 20 THEN t.boardings + t.alightings ELSE 0 END) AS evening_vol
	FROM tap_log t
	JOIN station_meta m ON ` + codeExpr("t.station_code") + ` = ` + codeExpr("m.station_code") + `
	GROUP BY 1, 2, 3, 4
`

// VitalityAggregates returns per-station total, elderly, morning-window and
// evening-window volumes joined to station coordinates.
func (s *Store) VitalityAggregates(ctx context.Context) ([]VitalityRow, error) {
	rows, err := s.pool.Query(ctx, vitalitySQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]VitalityRow, 0)
	for rows.Next() {
		var r VitalityRow
		if err := rows.Scan(
			&r.StationName,
			&r.StationCode,
			&r.Lat,
			&r.Lon,
			&r.TotalVol,
			&r.SeniorVol,
			&r.MorningVol,
			&r.EveningVol,
		); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// YearStationVolume is a (year, station) volume aggregate. Year is the first
// four characters of the stored travel date, or the literal "Current" tag for
// rows taken from the live log.
type YearStationVolume struct {
	Year        string
	StationName string
	Volume      int64
}

const yearlyElderlyHistorySQL = `
	SELECT substr(travel_date, 1, 4) AS year, station_name,
	       SUM(boardings + alightings) AS total_vol
	FROM tap_log_history
	GROUP BY 1, 2
`

// YearlyElderlyHistory returns elderly-rider volume per (year, station) from
// the historical table. The history table only holds elderly-group rows.
func (s *Store) YearlyElderlyHistory(ctx context.Context) ([]YearStationVolume, error) {
	return s.yearStationVolumes(ctx, yearlyElderlyHistorySQL)
}

var yearlyElderlyCurrentSQL = `
	SELECT substr(travel_date, 1, 4) AS year, station_name,
	       SUM(boardings + alightings) AS total_vol
	FROM tap_log
	WHERE ` + elderlyPred + `
	GROUP BY 1, 2
`

// YearlyElderlyCurrent is the fallback source for growth analysis when the
// history table is absent: elderly-group rows of the live log, by year.
func (s *Store) YearlyElderlyCurrent(ctx context.Context) ([]YearStationVolume, error) {
	return s.yearStationVolumes(ctx, yearlyElderlyCurrentSQL)
}

const daytimeRankHistorySQL = `
	SELECT substr(travel_date, 1, 4) AS year, station_name,
	       SUM(boardings + alightings) AS volume
	FROM tap_log_history
	WHERE hour_of_day BETWEEN 10 AND 16
	GROUP BY 1, 2
`

// DaytimeRankHistory returns per-year daytime (10-16h) station volumes from
// the history table.
func (s *Store) DaytimeRankHistory(ctx context.Context) ([]YearStationVolume, error) {
	return s.yearStationVolumes(ctx, daytimeRankHistorySQL)
}

var daytimeRankCurrentSQL = `
	SELECT 'Current' AS year, station_name,
	       SUM(boardings + alightings) AS volume
	FROM tap_log
	WHERE ` + elderlyPred + ` AND hour_of_day BETWEEN 10 AND 16
	GROUP BY 1, 2
`

// DaytimeRankCurrent returns daytime (10-16h) elderly-group station volumes
// from the live log, tagged "Current".
func (s *Store) DaytimeRankCurrent(ctx context.Context) ([]YearStationVolume, error) {
	return s.yearStationVolumes(ctx, daytimeRankCurrentSQL)
}

func (s *Store) yearStationVolumes(ctx context.Context, sql string) ([]YearStationVolume, error) {
	rows, err := s.pool.Query(ctx, sql)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]YearStationVolume, 0)
	for rows.Next() {
		var r YearStationVolume
		if err := rows.Scan(&r.Year, &r.StationName, &r.Volume); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// YearHourVolume is a (year, hour) volume aggregate for the rhythm series.
type YearHourVolume struct {
	Year   string
	Hour   int
	Volume int64
}

const rhythmHistorySQL = `
	SELECT substr(travel_date, 1, 4) AS year, hour_of_day,
	       SUM(boardings + alightings) AS volume
	FROM tap_log_history
	GROUP BY 1, 2
`

var rhythmCurrentSQL = `
	SELECT 'Current' AS year, hour_of_day,
	       SUM(boardings + alightings) AS volume
	FROM tap_log
	WHERE ` + elderlyPred + `
	GROUP BY 1, 2
`

// RhythmHistory returns hourly volume per historical year.
func (s *Store) RhythmHistory(ctx context.Context) ([]YearHourVolume, error) {
	return s.yearHourVolumes(ctx, rhythmHistorySQL)
}

// RhythmCurrent returns hourly elderly-group volume of the live log, tagged
// "Current".
func (s *Store) RhythmCurrent(ctx context.Context) ([]YearHourVolume, error) {
	return s.yearHourVolumes(ctx, rhythmCurrentSQL)
}

func (s *Store) yearHourVolumes(ctx context.Context, sql string) ([]YearHourVolume, error) {
	rows, err := s.pool.Query(ctx, sql)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]YearHourVolume, 0)
	for rows.Next() {
		var r YearHourVolume
		if err := rows.Scan(&r.Year, &r.Hour, &r.Volume); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// StationCoord is one station name with its coordinate, for name-keyed joins.
type StationCoord struct {
	StationName string
	Lat         float64
	Lon         float64
}

const stationCoordsSQL = `
	SELECT station_name, lat, lon
	FROM station_meta
`

// StationCoords returns every metadata row's name and coordinate. Names may
// repeat across lines; callers deduplicate after suffix normalization.
func (s *Store) StationCoords(ctx context.Context) ([]StationCoord, error) {
	rows, err := s.pool.Query(ctx, stationCoordsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]StationCoord, 0)
	for rows.Next() {
		var r StationCoord
		if err := rows.Scan(&r.StationName, &r.Lat, &r.Lon); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// HourStationVolume is an (hour, station) elderly volume with one
// representative coordinate, for the timelapse view.
type HourStationVolume struct {
	Hour        int
	StationName string
	Lat         float64
	Lon         float64
	Volume      int64
}

var timelapseSQL = `
	SELECT t.hour_of_day, t.station_name, MAX(m.lat) AS lat, MAX(m.lon) AS lon,
	       SUM(t.boardings + t.alightings) AS volume
	FROM tap_log t
	JOIN station_meta m ON ` + codeExpr("t.station_code") + ` = ` + codeExpr("m.station_code") + `
	WHERE ` + elderlyPred + `
	GROUP BY 1, 2
`

// TimelapseRows returns elderly-group volume per (hour, station) with one
// coordinate per station.
func (s *Store) TimelapseRows(ctx context.Context) ([]HourStationVolume, error) {
	rows, err := s.pool.Query(ctx, timelapseSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]HourStationVolume, 0)
	for rows.Next() {
		var r HourStationVolume
		if err := rows.Scan(&r.Hour, &r.StationName, &r.Lat, &r.Lon, &r.Volume); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// ClusterFeatureRow is one station's day-part volume profile used as
// clustering input. Stations at or below the 500-tap noise floor are
// filtered in SQL.
type ClusterFeatureRow struct {
	StationName string
	StationCode string
	Total       int64
	Morning     int64
	Afternoon   int64
	Evening     int64
	Lat         float64
	Lon         float64
}

var clusterFeaturesSQL = `
	SELECT f.station_name, f.station_code, f.total, f.morning, f.afternoon, f.evening,
	       m.lat, m.lon
	FROM (
		SELECT t.station_name, ` + codeExpr("t.station_code") + ` AS station_code,
		       SUM(t.boardings + t.alightings) AS total,
		       SUM(CASE WHEN t.hour_of_day BETWEEN 6 AND 11 THEN t.boardings + t.alightings ELSE 0 END) AS morning,
		       SUM(CASE WHEN t.hour_of_day BETWEEN 12 AND 17 THEN t.boardings + t.alightings ELSE 0 END) AS afternoon,
		       SUM(CASE WHEN t.hour_of_day >= 18 THEN t.boardings + t.alightings ELSE 0 END) AS evening
		FROM tap_log t
		WHERE ` + elderlyPred + `
		GROUP BY 1, 2
		HAVING SUM(t.boardings + t.alightings) > 500
	) f
	JOIN (
		SELECT DISTINCT ON (` + codeExpr("station_code") + `)
		       ` + codeExpr("station_code") + ` AS station_code, lat, lon
		FROM station_meta
		ORDER BY 1, station_name
	) m USING (station_code)
`

// ClusterFeatures returns per-station elderly day-part volumes joined to one
// coordinate per normalized code.
func (s *Store) ClusterFeatures(ctx context.Context) ([]ClusterFeatureRow, error) {
	rows, err := s.pool.Query(ctx, clusterFeaturesSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]ClusterFeatureRow, 0)
	for rows.Next() {
		var r ClusterFeatureRow
		if err := rows.Scan(
			&r.StationName,
			&r.StationCode,
			&r.Total,
			&r.Morning,
			&r.Afternoon,
			&r.Evening,
			&r.Lat,
			&r.Lon,
		); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Package importer parses flat-file exports into validated records.
// Malformed rows are collected per line rather than aborting the import.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"pulse/internal/records"
)

// Result reports how an import went, with one error string per rejected row.
type Result struct {
	Total    int
	Accepted int
	Rejected int
	Errors   []string
}

func (r *Result) reject(line int, err error) {
	r.Rejected++
	r.Errors = append(r.Errors, fmt.Sprintf("line %d: %v", line, err))
}

// ReadHeartRateCSV parses a heart-rate export. Expected columns:
// date, time, heart_rate.
func ReadHeartRateCSV(r io.Reader) ([]records.HeartRateSample, *Result, error) {
	cols, rows, err := readAll(r, []string{"date", "time", "heart_rate"})
	if err != nil {
		return nil, nil, err
	}

	result := &Result{}
	var samples []records.HeartRateSample
	for i, row := range rows {
		line := i + 2 // 1-based, after the header
		result.Total++

		hr, err := strconv.Atoi(strings.TrimSpace(row[cols["heart_rate"]]))
		if err != nil {
			result.reject(line, fmt.Errorf("heart_rate: %w", err))
			continue
		}

		rec := records.HeartRateSample{
			Date:      strings.TrimSpace(row[cols["date"]]),
			Time:      strings.TrimSpace(row[cols["time"]]),
			HeartRate: hr,
		}
		if err := rec.Validate(); err != nil {
			result.reject(line, err)
			continue
		}

		samples = append(samples, rec)
		result.Accepted++
	}

	return samples, result, nil
}

// ReadSleepCSV parses a sleep export. Expected columns: date, deep_minutes,
// light_minutes, rem_minutes, wake_minutes, start, end (RFC 3339).
func ReadSleepCSV(r io.Reader) ([]records.SleepNight, *Result, error) {
	required := []string{"date", "deep_minutes", "light_minutes", "rem_minutes", "wake_minutes", "start", "end"}
	cols, rows, err := readAll(r, required)
	if err != nil {
		return nil, nil, err
	}

	result := &Result{}
	var nights []records.SleepNight
	for i, row := range rows {
		line := i + 2
		result.Total++

		stages, err := parseStageMinutes(row, cols)
		if err != nil {
			result.reject(line, err)
			continue
		}

		start, err := time.Parse(time.RFC3339, strings.TrimSpace(row[cols["start"]]))
		if err != nil {
			result.reject(line, fmt.Errorf("start: %w", err))
			continue
		}
		end, err := time.Parse(time.RFC3339, strings.TrimSpace(row[cols["end"]]))
		if err != nil {
			result.reject(line, fmt.Errorf("end: %w", err))
			continue
		}

		rec := records.SleepNight{
			Date:         strings.TrimSpace(row[cols["date"]]),
			DeepMinutes:  stages[0],
			LightMinutes: stages[1],
			REMMinutes:   stages[2],
			WakeMinutes:  stages[3],
			Start:        start,
			End:          end,
		}
		if err := rec.Validate(); err != nil {
			result.reject(line, err)
			continue
		}

		nights = append(nights, rec)
		result.Accepted++
	}

	return nights, result, nil
}

// ReadActivityCSV parses a per-minute activity export. Expected columns:
// date, time, steps, active_calories.
func ReadActivityCSV(r io.Reader) ([]records.ActivityMinute, *Result, error) {
	cols, rows, err := readAll(r, []string{"date", "time", "steps", "active_calories"})
	if err != nil {
		return nil, nil, err
	}

	result := &Result{}
	var minutes []records.ActivityMinute
	for i, row := range rows {
		line := i + 2
		result.Total++

		steps, err := strconv.Atoi(strings.TrimSpace(row[cols["steps"]]))
		if err != nil {
			result.reject(line, fmt.Errorf("steps: %w", err))
			continue
		}
		calories, err := strconv.ParseFloat(strings.TrimSpace(row[cols["active_calories"]]), 64)
		if err != nil {
			result.reject(line, fmt.Errorf("active_calories: %w", err))
			continue
		}

		rec := records.ActivityMinute{
			Date:           strings.TrimSpace(row[cols["date"]]),
			Time:           strings.TrimSpace(row[cols["time"]]),
			Steps:          steps,
			ActiveCalories: calories,
		}
		if err := rec.Validate(); err != nil {
			result.reject(line, err)
			continue
		}

		minutes = append(minutes, rec)
		result.Accepted++
	}

	return minutes, result, nil
}

// readAll reads header and rows, returning a lower-cased column index map.
// Rows shorter than the header are padded so column lookups never panic.
func readAll(r io.Reader, required []string) (map[string]int, [][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil, fmt.Errorf("empty file")
	}
	if err != nil {
		return nil, nil, fmt.Errorf("reading csv header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, name := range required {
		if _, ok := cols[name]; !ok {
			return nil, nil, fmt.Errorf("missing required column %q", name)
		}
	}

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("reading csv rows: %w", err)
	}
	for i, row := range rows {
		for len(row) < len(header) {
			row = append(row, "")
		}
		rows[i] = row
	}

	return cols, rows, nil
}

func parseStageMinutes(row []string, cols map[string]int) ([4]int, error) {
	var stages [4]int
	for i, name := range []string{"deep_minutes", "light_minutes", "rem_minutes", "wake_minutes"} {
		v, err := strconv.Atoi(strings.TrimSpace(row[cols[name]]))
		if err != nil {
			return stages, fmt.Errorf("%s: %w", name, err)
		}
		stages[i] = v
	}
	return stages, nil
}

package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
)

func formatScore(score float64) string {
	return strconv.FormatFloat(score, 'g', -1, 64)
}

// WriteAllTime writes the all-time ranking with the fixed schema
// team,league,score. Rows are written in the order given.
func WriteAllTime(path string, rows []AllTimeRow) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create all-time output: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"team", "league", "score"}); err != nil {
		return err
	}
	for _, row := range rows {
		if err := writer.Write([]string{row.Team, row.League, formatScore(row.Score)}); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteYearly writes the yearly ranking with the fixed schema
// team,year,score. Rows are written in the order given.
func WriteYearly(path string, rows []YearlyRow) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create yearly output: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"team", "year", "score"}); err != nil {
		return err
	}
	for _, row := range rows {
		record := []string{row.Team, strconv.Itoa(row.Year), formatScore(row.Score)}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteMatches writes match records in the extractor/loader schema.
func WriteMatches(path string, matches []Match) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create matches output: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(matchColumns); err != nil {
		return err
	}
	for _, m := range matches {
		record := []string{
			strconv.Itoa(m.Year),
			m.League,
			m.Country,
			m.HomeTeam,
			m.AwayTeam,
			strconv.Itoa(m.HomeScore),
			strconv.Itoa(m.AwayScore),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// ReadAllTime reads a previously written all-time ranking file.
// The serving layer's only contract with the pipeline is this schema.
func ReadAllTime(path string) ([]AllTimeRow, error) {
	records, err := readTable(path, []string{"team", "league", "score"})
	if err != nil {
		return nil, err
	}

	rows := make([]AllTimeRow, 0, len(records))
	for _, record := range records {
		score, err := strconv.ParseFloat(record[2], 64)
		if err != nil {
			return nil, fmt.Errorf("all-time row for %q: bad score %q", record[0], record[2])
		}
		rows = append(rows, AllTimeRow{Team: record[0], League: record[1], Score: score})
	}
	return rows, nil
}

// ReadYearly reads a previously written yearly ranking file.
func ReadYearly(path string) ([]YearlyRow, error) {
	records, err := readTable(path, []string{"team", "year", "score"})
	if err != nil {
		return nil, err
	}

	rows := make([]YearlyRow, 0, len(records))
	for _, record := range records {
		year, err := strconv.Atoi(record[1])
		if err != nil {
			return nil, fmt.Errorf("yearly row for %q: bad year %q", record[0], record[1])
		}
		score, err := strconv.ParseFloat(record[2], 64)
		if err != nil {
			return nil, fmt.Errorf("yearly row for %q: bad score %q", record[0], record[2])
		}
		rows = append(rows, YearlyRow{Team: record[0], Year: year, Score: score})
	}
	return rows, nil
}

func readTable(path string, wantHeader []string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open ranking file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("read ranking header: %w", err)
	}
	if len(header) != len(wantHeader) {
		return nil, fmt.Errorf("ranking file %s: unexpected header %v", path, header)
	}
	for i, col := range wantHeader {
		if header[i] != col {
			return nil, fmt.Errorf("ranking file %s: unexpected header %v", path, header)
		}
	}

	var records [][]string
	for {
		record, err := reader.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read ranking row: %w", err)
		}
		records = append(records, record)
	}
	return records, nil
}

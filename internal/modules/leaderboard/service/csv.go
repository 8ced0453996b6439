package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"strconv"
)

var csvHeader = []string{
	"Position", "Username", "Total Solved", "Easy", "Medium", "Hard",
	"Accuracy %", "Rank", "Rank Delta",
}

// ExportCSV serializes the current leaderboard table. The output is a
// stable, byte-for-byte function of the rows so downloads are reproducible.
func (s *leaderboardService) ExportCSV(ctx context.Context) ([]byte, error) {
	snapshot, err := s.Snapshot(ctx, nil)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, row := range snapshot.Board.Rows {
		record := []string{
			strconv.Itoa(row.Position),
			row.Username,
			strconv.Itoa(row.TotalSolved),
			strconv.Itoa(row.EasySolved),
			strconv.Itoa(row.MediumSolved),
			strconv.Itoa(row.HardSolved),
			strconv.FormatFloat(row.AccuracyPct, 'f', 2, 64),
			row.Rank,
			row.RankDelta,
		}
		if err := writer.Write(record); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

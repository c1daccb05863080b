package output

import (
	"encoding/csv"
	"os"
	"testing"
)

func TestCSVHistoryWriter_Write(t *testing.T) {
	report := sampleReport()

	tmpFile := t.TempDir() + "/history.csv"
	options := Options{Format: FormatCSV, OutputPath: tmpFile}

	writer := &CSVHistoryWriter{}
	if err := writer.Write(report, options); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	file, err := os.Open(tmpFile)
	if err != nil {
		t.Fatalf("Failed to open output: %v", err)
	}
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("Failed to parse CSV: %v", err)
	}

	// Header plus one row per change; the changeless revision still gets a row.
	if len(rows) != 7 {
		t.Fatalf("expected 7 rows, got %d", len(rows))
	}
	if rows[0][0] != "Revision" || rows[0][4] != "Path" {
		t.Errorf("unexpected header row: %v", rows[0])
	}

	// r1 fans out into two rows
	if rows[1][0] != "1" || rows[1][4] != "/trunk" {
		t.Errorf("row 1 = %v, want r1 /trunk", rows[1])
	}
	if rows[2][0] != "1" || rows[2][4] != "/trunk/main.c" {
		t.Errorf("row 2 = %v, want r1 /trunk/main.c", rows[2])
	}

	// the changeless revision keeps its metadata columns
	if rows[4][0] != "3" {
		t.Errorf("row 4 = %v, want r3", rows[4])
	}
	for col := 4; col < 9; col++ {
		if rows[4][col] != "" {
			t.Errorf("row 4 column %d = %q, want empty", col, rows[4][col])
		}
	}

	// the copy row carries its source columns
	if rows[5][5] != "copy" || rows[5][7] != "/trunk" || rows[5][8] != "2" {
		t.Errorf("row 5 = %v, want copy of /trunk@2", rows[5])
	}
}

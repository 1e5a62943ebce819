package sensorlog

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/netcreators/occupancy-audit-worker/internal/model"
	"github.com/netcreators/occupancy-audit-worker/tools/timeparser"
)

// roomNoPattern repairs log lines where the room number is glued to the
// "Room no." label, e.g. "Room no.101" -> "Room no. 101".
var roomNoPattern = regexp.MustCompile(`(Room no\.)(\d+)`)

// ParseResult holds the extracted events plus a count of light lines that
// could not be parsed and were dropped.
type ParseResult struct {
	Events       []model.SensorEvent
	DroppedLines int
}

// Parse reads a raw sensor log and extracts the light transition events.
// Only lines mentioning "light is ON"/"light is OFF" are considered; each
// is tab-delimited with the timestamp in the first field and the room
// number as the third whitespace token of the room-info field. Events are
// returned in file order, unsorted and possibly duplicated. Malformed
// light lines are dropped and counted, never fatal.
func Parse(r io.Reader) (ParseResult, error) {
	var result ParseResult

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := roomNoPattern.ReplaceAllString(scanner.Text(), "$1 $2")

		if !strings.Contains(line, "light is ON") && !strings.Contains(line, "light is OFF") {
			continue
		}

		parts := strings.Split(line, "\t")
		if len(parts) < 2 {
			result.DroppedLines++
			continue
		}

		roomInfo := strings.TrimSpace(parts[1])
		fields := strings.Split(roomInfo, " ")
		if len(fields) < 3 {
			result.DroppedLines++
			continue
		}

		timestamp, err := timeparser.ParseSensorTimestamp(parts[0])
		if err != nil {
			result.DroppedLines++
			continue
		}

		status := model.LightOff
		if strings.Contains(roomInfo, "ON") {
			status = model.LightOn
		}

		result.Events = append(result.Events, model.SensorEvent{
			Room:      fields[2],
			Timestamp: timestamp,
			Status:    status,
		})
	}

	if err := scanner.Err(); err != nil {
		return ParseResult{}, fmt.Errorf("failed to read sensor log: %w", err)
	}

	return result, nil
}

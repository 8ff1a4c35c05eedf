package territory

import (
	"strconv"
	"strings"
)

// indicesPerRow is how many tile indices go on one line of encoded csv
const indicesPerRow = 16

// encodeIndices turns a list of tile indices into csv, wrapped in rows so
// large territories stay readable in a db browser.
func encodeIndices(in []int) string {
	if len(in) == 0 {
		return ""
	}

	rows := []string{}
	for start := 0; start < len(in); start += indicesPerRow {
		end := start + indicesPerRow
		if end > len(in) {
			end = len(in)
		}
		row := make([]string, end-start)
		for j, i := range in[start:end] {
			row[j] = strconv.Itoa(i)
		}
		rows = append(rows, strings.Join(row, ","))
	}

	return strings.Join(rows, ",\n")
}

// decodeIndices reads csv encoded tile indices. Whitespace around values is
// ignored, anything else that isn't an integer is an error.
func decodeIndices(data string) ([]int, error) {
	out := []int{}
	for _, s := range strings.Split(data, ",") {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		i, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, err
		}
		out = append(out, int(i))
	}
	return out, nil
}

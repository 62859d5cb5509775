package export

import (
	"fmt"
	"strconv"
)

// Dataset defines tabular export content.
type Dataset struct {
	Headers []string
	Rows    []map[string]string
}

// NewDataset starts an empty dataset with the given column headers.
func NewDataset(headers ...string) Dataset {
	return Dataset{Headers: headers}
}

// AddRow appends a row whose values are positional with respect to Headers.
// Missing trailing values are left blank; extra values are ignored.
func (d *Dataset) AddRow(values ...interface{}) {
	row := make(map[string]string, len(d.Headers))
	for i, header := range d.Headers {
		if i < len(values) {
			row[header] = formatValue(values[i])
		}
	}
	d.Rows = append(d.Rows, row)
}

// Record returns the row values ordered by Headers.
func (d Dataset) Record(i int) []string {
	record := make([]string, len(d.Headers))
	for j, header := range d.Headers {
		record[j] = d.Rows[i][header]
	}
	return record
}

func formatValue(v interface{}) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(value), 'f', -1, 32)
	default:
		return fmt.Sprint(value)
	}
}
